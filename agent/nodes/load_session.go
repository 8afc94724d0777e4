package routernode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

// LoadOrCreateSession fetches existing state or lazily creates it on the
// first message for a new session id.
func LoadOrCreateSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	sess, err := store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrSessionNotFound) {
			return nil, err
		}
		sess = statex.NewSession(in.SessionID, in.Now)
	}
	in.Session = sess
	return in, nil
}
