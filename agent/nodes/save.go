package routernode

import (
	"context"
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

// AppendAndSave records the user turn and the agent turn, then persists the
// session. Every handled message adds exactly two entries.
func AppendAndSave(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.AppendMessage(contractx.ConversationMessage{
		Role:       contractx.RoleUser,
		Text:       in.Text,
		Timestamp:  in.Now,
		IntentType: in.Intent.Type,
		Confidence: in.Intent.Confidence,
	})
	in.Session.AppendMessage(contractx.ConversationMessage{
		Role:      contractx.RoleAgent,
		Text:      in.Generated.Text,
		Timestamp: in.Now,
	})
	in.Session.Touch(in.Now)

	if err := store.Save(ctx, in.Session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return in, nil
}
