package routernode

import (
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	intentx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/intent"
)

// ClassifyIntent runs the rule cascade with slot back-fill from the session.
func ClassifyIntent(in *GraphState, classifier *intentx.Classifier) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Intent = classifier.Classify(in.Text, in.Session)
	return in, nil
}
