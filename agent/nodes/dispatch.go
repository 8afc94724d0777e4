package routernode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	quotex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/quote"
)

const (
	defaultSupplierLimit = 5
	defaultQuoteLines    = 3
	defaultSemanticTopK  = 5
)

// Collaborators bundles the back-office dependencies the dispatch step calls
// out to. Semantic may be nil; the other three are required.
type Collaborators struct {
	Directory contractx.SupplierDirectory
	Inventory contractx.InventoryService
	Orders    contractx.OrderService
	Semantic  contractx.SemanticSearcher
}

func (c Collaborators) Validate() error {
	if c.Directory == nil {
		return fmt.Errorf("%w: supplier directory is required", contractx.ErrValidation)
	}
	if c.Inventory == nil {
		return fmt.Errorf("%w: inventory service is required", contractx.ErrValidation)
	}
	if c.Orders == nil {
		return fmt.Errorf("%w: order service is required", contractx.ErrValidation)
	}
	return nil
}

// DispatchIntent runs the handler for the classified intent and fills
// in.Retrieved. Domain sentinels land in Retrieved.DomainErr so the reply can
// explain them; only component failures propagate as errors.
func DispatchIntent(ctx context.Context, in *GraphState, collab Collaborators, engine *quotex.Engine) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	switch in.Intent.Type {
	case contractx.IntentSupplierSearch:
		return in, handleSupplierSearch(ctx, in, collab)
	case contractx.IntentRFQGeneration:
		return in, handleRFQ(ctx, in, engine)
	case contractx.IntentOrderPlacement:
		return in, handleOrder(ctx, in, collab)
	case contractx.IntentInventoryCheck:
		return in, handleInventory(ctx, in, collab)
	case contractx.IntentSemanticSearch:
		return in, handleSemantic(ctx, in, collab)
	default:
		return in, nil
	}
}

func handleSupplierSearch(ctx context.Context, in *GraphState, collab Collaborators) error {
	params := in.Intent.Parameters
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSupplierLimit
	}

	suppliers, err := collab.Directory.Search(ctx, contractx.SupplierFilters{
		Material:  params.Material,
		Region:    params.Region,
		Category:  params.Category,
		MinRating: params.MinRating,
		Limit:     limit,
	})
	if err != nil {
		return fmt.Errorf("supplier search: %w", err)
	}

	if len(suppliers) == 0 && collab.Semantic != nil {
		hits, serr := collab.Semantic.SimilaritySearch(ctx, in.Text, limit)
		if serr != nil {
			return fmt.Errorf("semantic fallback: %w", serr)
		}
		if len(hits) == 0 {
			in.Retrieved.DomainErr = contractx.ErrNoSuppliersFound
			return nil
		}
		in.Retrieved.Hits = hits
		return nil
	}
	if len(suppliers) == 0 {
		in.Retrieved.DomainErr = contractx.ErrNoSuppliersFound
		return nil
	}

	in.Retrieved.Suppliers = suppliers
	if params.Material != "" {
		in.Session.RememberMaterial(params.Material)
	}
	names := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		names = append(names, s.Name)
	}
	in.Session.RememberSuppliers(names...)
	return nil
}

func handleRFQ(ctx context.Context, in *GraphState, engine *quotex.Engine) error {
	params := in.Intent.Parameters
	if params.Material == "" {
		in.Retrieved.MissingSlot = "material"
		return nil
	}
	if params.Quantity <= 0 {
		in.Retrieved.MissingSlot = "quantity"
		return nil
	}

	supplierCount := params.Limit
	if supplierCount <= 0 {
		supplierCount = len(in.Session.Resolved.LastSuppliers)
	}
	if supplierCount <= 0 {
		supplierCount = defaultQuoteLines
	}

	quote, err := engine.Generate(ctx, params.Material, params.Quantity, supplierCount, params.Region)
	if err != nil {
		if errors.Is(err, contractx.ErrNoSuppliersFound) {
			in.Retrieved.DomainErr = err
			return nil
		}
		return fmt.Errorf("rfq generation: %w", err)
	}

	in.Retrieved.Quote = quote
	in.Session.SetQuote(quote)
	in.Session.RememberMaterial(params.Material)
	in.Session.RememberQuantity(params.Quantity)
	names := make([]string, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		names = append(names, line.Supplier.Name)
	}
	in.Session.RememberSuppliers(names...)
	return nil
}

func handleOrder(ctx context.Context, in *GraphState, collab Collaborators) error {
	companyNumber := in.Intent.Parameters.CompanyNumber
	if companyNumber <= 0 {
		in.Retrieved.MissingSlot = "company number"
		return nil
	}

	line, err := quotex.ResolveOrder(in.Session, companyNumber)
	if err != nil {
		in.Retrieved.DomainErr = err
		return nil
	}

	confirmation, err := collab.Orders.Place(ctx, line)
	if err != nil {
		if errors.Is(err, contractx.ErrPlacementRejected) {
			in.Retrieved.DomainErr = err
			return nil
		}
		return fmt.Errorf("order placement: %w", err)
	}

	in.Retrieved.Order = &confirmation
	in.Session.ClearQuote()
	return nil
}

func handleInventory(ctx context.Context, in *GraphState, collab Collaborators) error {
	params := in.Intent.Parameters
	status, err := collab.Inventory.GetStatus(ctx, contractx.InventoryFilters{
		Material: params.Material,
		Category: params.Category,
	})
	if err != nil {
		return fmt.Errorf("inventory check: %w", err)
	}
	in.Retrieved.Inventory = &status
	return nil
}

func handleSemantic(ctx context.Context, in *GraphState, collab Collaborators) error {
	if collab.Semantic == nil {
		in.Retrieved.DomainErr = contractx.ErrNoSuppliersFound
		return nil
	}

	query := in.Intent.Parameters.Material
	if query == "" {
		query = in.Text
	}
	topK := in.Intent.Parameters.Limit
	if topK <= 0 {
		topK = defaultSemanticTopK
	}

	hits, err := collab.Semantic.SimilaritySearch(ctx, query, topK)
	if err != nil {
		return fmt.Errorf("semantic search: %w", err)
	}
	if len(hits) == 0 {
		in.Retrieved.DomainErr = contractx.ErrNoSuppliersFound
		return nil
	}
	in.Retrieved.Hits = hits
	return nil
}
