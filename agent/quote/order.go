package quote

import (
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

// ResolveOrder picks the quote line a company number refers to. The number is
// the line's 1-based position in rank order, the only identifier an order
// placement needs. The caller clears the session's quote after the placement
// collaborator confirms, not here.
func ResolveOrder(sess *statex.Session, companyNumber int) (contractx.QuoteLine, error) {
	if sess == nil || sess.Resolved.LastQuote == nil {
		return contractx.QuoteLine{}, contractx.ErrNoActiveQuote
	}

	q := sess.Resolved.LastQuote
	if companyNumber < 1 || companyNumber > len(q.Lines) {
		return contractx.QuoteLine{}, fmt.Errorf("%w: company=%d lines=%d",
			contractx.ErrInvalidCompanyNumber, companyNumber, len(q.Lines))
	}
	return q.Lines[companyNumber-1], nil
}
