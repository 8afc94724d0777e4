// Package extract pulls slot values out of free-text messages. Everything in
// here is pure: no I/O, no mutation of inputs, idempotent on the same inputs.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

const (
	// HistoryWindow is the number of recent turns the extractor considers.
	HistoryWindow = 10

	minQuantity = 1
	maxQuantity = 9999
)

// materialKeywords is the fixed synonym table. Matching is longest-first so
// "steel beam" wins over "steel".
var materialKeywords = []string{
	"stainless steel sheet",
	"steel beam",
	"steel rod",
	"steel plate",
	"aluminum sheet",
	"copper wire",
	"pvc pipe",
	"glass panel",
	"insulation foam",
	"cement",
	"concrete",
	"timber",
	"lumber",
	"rebar",
	"brick",
	"gravel",
	"sand",
	"copper",
	"aluminum",
	"steel",
	"glass",
	"paint",
}

var regionKeywords = []string{
	"north america",
	"south america",
	"middle east",
	"asia",
	"europe",
	"africa",
	"oceania",
	"domestic",
}

var categoryKeywords = []string{
	"metals",
	"electrical",
	"construction",
	"plumbing",
	"chemicals",
	"logistics",
}

var (
	bracketPattern   = regexp.MustCompile(`\[([^\[\]]+)\]`)
	numberPattern    = regexp.MustCompile(`\b(\d{1,4})\b`)
	companyPattern   = regexp.MustCompile(`(?:company|supplier|vendor|option)\s*#?\s*(\d{1,3})\b`)
	limitPattern     = regexp.MustCompile(`\btop\s+(\d{1,2})\b`)
	ratingPattern    = regexp.MustCompile(`(?:rated\s+(?:above|over|at\s+least)|min(?:imum)?\s+rating(?:\s+of)?)\s+(\d(?:\.\d)?)`)
	starsPattern     = regexp.MustCompile(`\b(\d(?:\.\d)?)\s*\+?\s*stars?\b`)
	digitRuns        = regexp.MustCompile(`\d+`)
	actionTagPrefix  = "ACTION:"
)

func init() {
	// Guard the longest-match-first invariant against table edits.
	sort.SliceStable(materialKeywords, func(i, j int) bool {
		return len(materialKeywords[i]) > len(materialKeywords[j])
	})
}

// Bag is the structured result of one extraction pass. Materials are ordered
// best-first (longest match in the most recent source); SupplierNames are
// most-recent-first; Quantities keep first-appearance order.
type Bag struct {
	Materials     []string
	SupplierNames []string
	Quantities    []int
}

// Material returns the winning material, or "".
func (b Bag) Material() string {
	if len(b.Materials) == 0 {
		return ""
	}
	return b.Materials[0]
}

// Quantity returns the first plausible quantity, or 0.
func (b Bag) Quantity() int {
	if len(b.Quantities) == 0 {
		return 0
	}
	return b.Quantities[0]
}

// Extract scans the current message and up to HistoryWindow recent turns.
// Materials are searched in the message first, then history newest-first, so
// the most recently mentioned and most specific keyword wins. Supplier names
// are bracket tokens emitted by the agent in earlier replies. Quantities come
// from the current message only; older quantities live in the session's
// resolved context instead.
func Extract(text string, history []contractx.ConversationMessage) Bag {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	bag := Bag{
		Materials:     materialsIn(strings.ToLower(text), nil),
		SupplierNames: supplierMentions(text, history),
		Quantities:    quantities(text),
	}

	for i := len(history) - 1; i >= 0; i-- {
		bag.Materials = materialsIn(strings.ToLower(history[i].Text), bag.Materials)
	}
	return bag
}

// materialsIn appends matches from one source, longest keyword first, ties
// broken by later position in the text. Already-collected materials from a
// more recent source keep precedence.
func materialsIn(lower string, acc []string) []string {
	type match struct {
		keyword string
		pos     int
	}
	var found []match
	for _, kw := range materialKeywords {
		if pos := strings.LastIndex(lower, kw); pos >= 0 {
			found = append(found, match{keyword: kw, pos: pos})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if len(found[i].keyword) != len(found[j].keyword) {
			return len(found[i].keyword) > len(found[j].keyword)
		}
		return found[i].pos > found[j].pos
	})

	for _, m := range found {
		if !containsFold(acc, m.keyword) && !isSubsumed(acc, m.keyword) {
			acc = append(acc, m.keyword)
		}
	}
	return acc
}

// isSubsumed drops generic terms already covered by a collected specific one,
// e.g. "steel" when "steel beam" is present.
func isSubsumed(acc []string, keyword string) bool {
	for _, have := range acc {
		if strings.Contains(have, keyword) {
			return true
		}
	}
	return false
}

// supplierMentions collects bracket-delimited tokens from prior agent replies
// (newest first) and the current message, deduplicated. Action tags share the
// bracket syntax and are skipped.
func supplierMentions(text string, history []contractx.ConversationMessage) []string {
	var names []string
	collect := func(src string) {
		for _, m := range bracketPattern.FindAllStringSubmatch(src, -1) {
			token := strings.TrimSpace(m[1])
			if token == "" || strings.HasPrefix(token, actionTagPrefix) {
				continue
			}
			if !containsFold(names, token) {
				names = append(names, token)
			}
		}
	}

	collect(text)
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == contractx.RoleAgent {
			collect(history[i].Text)
		}
	}
	return names
}

// quantities returns numeric tokens in the plausible range, deduplicated, in
// first-appearance order. Numbers already claimed by a company reference, a
// "top N" limit, or a rating are not quantities.
func quantities(text string) []int {
	lower := strings.ToLower(text)
	claimed := make(map[string]struct{})
	for _, pat := range []*regexp.Regexp{companyPattern, limitPattern, ratingPattern, starsPattern} {
		for _, m := range pat.FindAllStringSubmatch(lower, -1) {
			claimed[m[1]] = struct{}{}
			// A fractional match like "4.5" surfaces as the separate tokens
			// "4" and "5" under numberPattern; claim those too.
			for _, part := range digitRuns.FindAllString(m[1], -1) {
				claimed[part] = struct{}{}
			}
		}
	}

	var out []int
	seen := make(map[int]struct{})
	for _, m := range numberPattern.FindAllStringSubmatch(lower, -1) {
		if _, taken := claimed[m[1]]; taken {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < minQuantity || n > maxQuantity {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Region returns the first region keyword mentioned, or "".
func Region(text string) string {
	lower := strings.ToLower(text)
	for _, r := range regionKeywords {
		if strings.Contains(lower, r) {
			return r
		}
	}
	return ""
}

// Category returns the first category keyword mentioned, or "".
func Category(text string) string {
	lower := strings.ToLower(text)
	for _, c := range categoryKeywords {
		if strings.Contains(lower, c) {
			return c
		}
	}
	return ""
}

// MinRating parses phrases like "rated above 4" or "4.5+ stars".
func MinRating(text string) float64 {
	lower := strings.ToLower(text)
	for _, pat := range []*regexp.Regexp{ratingPattern, starsPattern} {
		if m := pat.FindStringSubmatch(lower); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 1.0 && v <= 5.0 {
				return v
			}
		}
	}
	return 0
}

// CompanyNumber parses "company 2" style references, or 0.
func CompanyNumber(text string) int {
	if m := companyPattern.FindStringSubmatch(strings.ToLower(text)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// Limit parses "top 3" style result limits, or 0.
func Limit(text string) int {
	if m := limitPattern.FindStringSubmatch(strings.ToLower(text)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
