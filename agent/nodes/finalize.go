package routernode

import (
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// FinalizeReply shapes the outward reply. Domain problems were already
// explained in the generated text, so success is true whenever the pipeline
// itself completed.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	return GraphOutput{Reply: contractx.Reply{
		Success:    true,
		SessionID:  in.SessionID,
		Text:       in.Generated.Text,
		IntentType: in.Intent.Type,
		Confidence: in.Intent.Confidence,
		Actions:    in.Generated.Actions,
	}}, nil
}
