package backoffice

import (
	"context"
	"sort"
	"strings"
	"sync"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

type document struct {
	ID       string
	Tokens   map[string]struct{}
	Metadata map[string]string
}

// SemanticIndex is a token-overlap similarity searcher standing in for the
// external vector service. Scores are Jaccard overlap in [0,1]; zero-score
// documents are dropped.
type SemanticIndex struct {
	mu   sync.RWMutex
	docs []document
}

func NewSemanticIndex() *SemanticIndex {
	return &SemanticIndex{}
}

// IndexSuppliers adds one document per supplier, combining name, region,
// category, and material into the searchable text.
func (idx *SemanticIndex) IndexSuppliers(suppliers []contractx.SupplierCandidate) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, s := range suppliers {
		text := strings.Join([]string{s.Name, s.Region, s.Category, s.Material}, " ")
		idx.docs = append(idx.docs, document{
			ID:     s.ID,
			Tokens: tokenize(text),
			Metadata: map[string]string{
				"name":     s.Name,
				"region":   s.Region,
				"category": s.Category,
				"material": s.Material,
			},
		})
	}
}

func (idx *SemanticIndex) SimilaritySearch(ctx context.Context, query string, topK int) ([]contractx.SearchHit, error) {
	if topK <= 0 {
		topK = 5
	}
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var hits []contractx.SearchHit
	for _, doc := range idx.docs {
		score := jaccard(queryTokens, doc.Tokens)
		if score <= 0 {
			continue
		}
		hits = append(hits, contractx.SearchHit{
			ID:       doc.ID,
			Score:    score,
			Metadata: doc.Metadata,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,;:!?()[]\"'")
		if len(f) > 2 {
			tokens[f] = struct{}{}
		}
	}
	return tokens
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
