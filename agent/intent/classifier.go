// Package intent classifies a message into an intent with filled slots.
// Classification is an ordered cascade of keyword rules; ambiguity is never
// an error, only a routing fallback to GENERAL.
package intent

import (
	"regexp"
	"strings"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	extractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/extract"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

// Rule is one row of the classification cascade. Rules are evaluated in
// order; the first whose keyword pattern matches decides the intent type and
// its fixed base confidence.
type Rule struct {
	Type       contractx.IntentType
	Confidence float64
	Keywords   []string

	pattern *regexp.Regexp
}

// DefaultRules is the standard cascade. More specific intents come first so
// "send rfq" is not swallowed by the supplier-search rule.
func DefaultRules() []Rule {
	return []Rule{
		{Type: contractx.IntentRFQGeneration, Confidence: 0.9, Keywords: []string{"rfq", "quote", "quotes", "quotation", "send"}},
		{Type: contractx.IntentOrderPlacement, Confidence: 0.9, Keywords: []string{"order", "buy", "purchase", "place"}},
		{Type: contractx.IntentSupplierSearch, Confidence: 0.85, Keywords: []string{"supplier", "suppliers", "vendor", "vendors", "find", "search"}},
		{Type: contractx.IntentInventoryCheck, Confidence: 0.85, Keywords: []string{"stock", "inventory", "warehouse"}},
		{Type: contractx.IntentSemanticSearch, Confidence: 0.8, Keywords: []string{"similar", "semantic", "alternative", "alternatives"}},
	}
}

type Classifier struct {
	rules []Rule
}

// NewClassifier compiles the rule table. Passing no rules uses DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	compiled := make([]Rule, len(rules))
	for i, r := range rules {
		quoted := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			quoted[j] = regexp.QuoteMeta(kw)
		}
		r.pattern = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		compiled[i] = r
	}
	return &Classifier{rules: compiled}
}

// Classify returns a fresh Intent for the message. Slots are filled from the
// message first via the extractor, then back-filled from the session's
// resolved context so a bare "5 units" after an RFQ discussion resolves to
// the previously discussed material.
func (c *Classifier) Classify(text string, sess *statex.Session) contractx.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	var history []contractx.ConversationMessage
	if sess != nil {
		history = sess.RecentMessages(extractx.HistoryWindow)
	}
	bag := extractx.Extract(text, history)

	params := contractx.Parameters{
		Material:      bag.Material(),
		Quantity:      bag.Quantity(),
		Region:        extractx.Region(text),
		Category:      extractx.Category(text),
		MinRating:     extractx.MinRating(text),
		SupplierNames: bag.SupplierNames,
		CompanyNumber: extractx.CompanyNumber(text),
		Limit:         extractx.Limit(text),
	}
	if sess != nil {
		backfill(&params, sess.Resolved)
	}

	for _, rule := range c.rules {
		if rule.pattern.MatchString(lower) {
			return contractx.Intent{
				Type:       rule.Type,
				Confidence: clamp01(rule.Confidence),
				Parameters: params,
			}
		}
	}

	return contractx.Intent{
		Type:       contractx.IntentGeneral,
		Confidence: 0,
		Parameters: params,
	}
}

// backfill fills empty slots from conversational memory, most recent first.
func backfill(params *contractx.Parameters, resolved statex.Resolved) {
	if params.Material == "" {
		params.Material = resolved.LastMaterial
	}
	if params.Quantity == 0 {
		params.Quantity = resolved.LastQuantity
	}
	if len(params.SupplierNames) == 0 {
		params.SupplierNames = append([]string(nil), resolved.LastSuppliers...)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
