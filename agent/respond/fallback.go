package respond

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// fallbackText synthesizes a templated reply from the intent type and the
// data already retrieved. This tier never fails and never calls a network;
// templates follow the same bracket conventions as generated text so entity
// mentions and action tags survive the fallback path.
func fallbackText(in Input) string {
	if in.Retrieved.MissingSlot != "" {
		return fmt.Sprintf("I still need the %s to continue. What %s should I use?",
			in.Retrieved.MissingSlot, in.Retrieved.MissingSlot)
	}
	if in.Retrieved.DomainErr != nil {
		return domainFailureText(in.Retrieved.DomainErr)
	}

	switch in.Intent.Type {
	case contractx.IntentSupplierSearch:
		return supplierListText(in.Retrieved)
	case contractx.IntentRFQGeneration:
		return quoteText(in.Retrieved.Quote)
	case contractx.IntentOrderPlacement:
		return orderText(in.Retrieved.Order)
	case contractx.IntentInventoryCheck:
		return inventoryText(in.Retrieved.Inventory)
	case contractx.IntentSemanticSearch:
		return hitsText(in.Retrieved)
	default:
		return "I can find suppliers, prepare RFQs with per-supplier pricing, " +
			"check inventory, and place orders against an active quote. " +
			"Tell me the material you are sourcing to get started."
	}
}

func domainFailureText(err error) string {
	switch {
	case errors.Is(err, contractx.ErrNoActiveQuote):
		return "There is no active quote for this conversation. Generate an RFQ before placing an order."
	case errors.Is(err, contractx.ErrInvalidCompanyNumber):
		return "That company number is not on the current quote. Pick one of the numbered companies from the RFQ."
	case errors.Is(err, contractx.ErrNoSuppliersFound):
		return "No suppliers matched that material, even after widening the region. Try a different material or region."
	case errors.Is(err, contractx.ErrPlacementRejected):
		return "The order could not be placed because the back office rejected it. The quote is still active, so you can try another company."
	default:
		return "That request could not be completed. Please try again."
	}
}

func supplierListText(r Retrieved) string {
	if len(r.Suppliers) == 0 {
		if len(r.Hits) > 0 {
			return hitsText(r)
		}
		return "No suppliers matched those filters. Try widening the region or dropping the rating requirement."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d suppliers:\n", len(r.Suppliers))
	for _, s := range r.Suppliers {
		fmt.Fprintf(&b, "- [%s] in %s, %s, rated %.1f [ACTION:view_supplier:%s]\n",
			s.Name, s.Region, s.Category, s.Rating, s.Name)
	}
	b.WriteString("Say how many units you need and I can prepare an RFQ.")
	return b.String()
}

func quoteText(q *contractx.Quote) string {
	if q == nil {
		return "I could not prepare a quote from the current request."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "RFQ for %d x %s, %d companies: [ACTION:view_quote:%s]\n",
		q.Quantity, q.ProductName, len(q.Lines), q.QuoteID)
	for i, line := range q.Lines {
		fmt.Fprintf(&b, "- company %d: [%s] total %.2f (unit %.2f, tax %.2f, shipping %.2f), lead time %s\n",
			i+1, line.Supplier.Name, line.Total, line.UnitPrice, line.TaxAmount,
			line.ShippingAmount, line.LeadTimeDescriptor)
	}
	b.WriteString("Reply with \"place order with company N\" to order.")
	return b.String()
}

func orderText(o *contractx.OrderConfirmation) string {
	if o == nil {
		return "The order was not placed."
	}
	return fmt.Sprintf("Order %s placed, confirmed total %.2f. [ACTION:track_order:%s]",
		o.OrderNumber, o.ConfirmedTotal, o.OrderNumber)
}

func inventoryText(inv *contractx.InventoryStatus) string {
	if inv == nil {
		return "Inventory data is unavailable right now."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Inventory: %d items tracked, %d running low, across %s.\n",
		inv.TotalCount, inv.LowStockCount, strings.Join(inv.Categories, ", "))
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "- %s (%s): %d in stock\n", item.Name, item.Category, item.Stock)
	}
	return strings.TrimRight(b.String(), "\n")
}

func hitsText(r Retrieved) string {
	if len(r.Hits) == 0 {
		return "Nothing similar turned up in the catalog."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Closest matches (%d):\n", len(r.Hits))
	for _, hit := range r.Hits {
		name := hit.Metadata["name"]
		if name == "" {
			name = hit.ID
		}
		fmt.Fprintf(&b, "- [%s] similarity %.2f\n", name, hit.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}
