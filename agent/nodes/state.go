package routernode

import (
	"strings"
	"time"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	respondx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/respond"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply contractx.Reply
}

// GraphState threads one message through the pipeline: validate -> load
// session -> classify -> dispatch -> generate -> append/save -> finalize.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session   *statex.Session
	Intent    contractx.Intent
	Retrieved respondx.Retrieved
	Generated respondx.Output
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, contractx.ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, contractx.ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
