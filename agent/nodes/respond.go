package routernode

import (
	"context"
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	respondx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/respond"
)

const replyHistoryWindow = 10

// GenerateReply turns the dispatched data into user-facing text. The
// generator never fails, so this node only guards its own preconditions.
func GenerateReply(ctx context.Context, in *GraphState, generator *respondx.Generator) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Generated = generator.Generate(ctx, respondx.Input{
		SessionID: in.SessionID,
		Message:   in.Text,
		Intent:    in.Intent,
		History:   in.Session.RecentMessages(replyHistoryWindow),
		Retrieved: in.Retrieved,
	})
	return in, nil
}
