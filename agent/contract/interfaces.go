package contract

import "context"

// SupplierDirectory is the supplier lookup collaborator. An empty result is
// not an error; only transport failures are.
type SupplierDirectory interface {
	Search(ctx context.Context, filters SupplierFilters) ([]SupplierCandidate, error)
}

// InventoryService exposes a read-only inventory snapshot.
type InventoryService interface {
	GetStatus(ctx context.Context, filters InventoryFilters) (InventoryStatus, error)
}

// OrderService places an order for a single quote line. A rejected placement
// is reported as ErrPlacementRejected, never retried silently.
type OrderService interface {
	Place(ctx context.Context, line QuoteLine) (OrderConfirmation, error)
}

// SemanticSearcher is the vector-similarity collaborator, used as an
// alternate path when structured filtering yields nothing.
type SemanticSearcher interface {
	SimilaritySearch(ctx context.Context, query string, topK int) ([]SearchHit, error)
}

// PrimaryProvider is the main text-generation upstream. The secret is the
// rotated credential selected per call.
type PrimaryProvider interface {
	Complete(ctx context.Context, secret, prompt string, history []ConversationMessage) (string, error)
}

// SecondaryProvider is the alternate text-generation upstream used when the
// primary is exhausted.
type SecondaryProvider interface {
	Complete(ctx context.Context, prompt string, history []ConversationMessage) (string, error)
}
