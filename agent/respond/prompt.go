package respond

import (
	"fmt"
	"strings"
)

const maxPromptHistory = 10

// formattingContract is embedded in every prompt so generated replies stay
// parseable by the action extractor and the entity-mention scanner.
const formattingContract = `Formatting rules:
- Plain text only. No markdown emphasis (*, _, #).
- Wrap supplier names in square brackets, e.g. [Nippon Steelworks].
- Use at most one decorative symbol in the whole reply.
- To offer a follow-up action, embed a tag like [ACTION:view_supplier:<name>]
  or [ACTION:view_quote:<quote id>]. Tags are removed before display.`

// BuildPrompt assembles the structured prompt for the upstream provider:
// role, formatting contract, recent history, the classified intent, and the
// data already retrieved for it.
func BuildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("You are a procurement assistant for industrial buyers.\n")
	b.WriteString("Answer the user's latest message using only the retrieved data below.\n\n")
	b.WriteString(formattingContract)
	b.WriteString("\n\n")

	history := in.History
	if len(history) > maxPromptHistory {
		history = history[len(history)-maxPromptHistory:]
	}
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range history {
			fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Intent: %s (confidence %.2f)\n", in.Intent.Type, in.Intent.Confidence)
	writeRetrieved(&b, in.Retrieved)

	fmt.Fprintf(&b, "\nUser message: %s\n", in.Message)
	return b.String()
}

func writeRetrieved(b *strings.Builder, r Retrieved) {
	if r.MissingSlot != "" {
		fmt.Fprintf(b, "Missing information: the %s. Ask only for that.\n", r.MissingSlot)
	}
	if r.DomainErr != nil {
		fmt.Fprintf(b, "Problem to explain: %s\n", r.DomainErr.Error())
	}
	if len(r.Suppliers) > 0 {
		b.WriteString("Suppliers found:\n")
		for _, s := range r.Suppliers {
			fmt.Fprintf(b, "- [%s] region=%s category=%s material=%s rating=%.1f\n",
				s.Name, s.Region, s.Category, s.Material, s.Rating)
		}
	}
	if r.Quote != nil {
		fmt.Fprintf(b, "Quote %s for %d x %s:\n", r.Quote.QuoteID, r.Quote.Quantity, r.Quote.ProductName)
		for i, line := range r.Quote.Lines {
			fmt.Fprintf(b, "- company %d: [%s] unit=%.2f subtotal=%.2f tax=%.2f shipping=%.2f total=%.2f lead=%s\n",
				i+1, line.Supplier.Name, line.UnitPrice, line.Subtotal, line.TaxAmount,
				line.ShippingAmount, line.Total, line.LeadTimeDescriptor)
		}
	}
	if r.Order != nil {
		fmt.Fprintf(b, "Order confirmed: number=%s total=%.2f\n", r.Order.OrderNumber, r.Order.ConfirmedTotal)
	}
	if r.Inventory != nil {
		fmt.Fprintf(b, "Inventory snapshot: total=%d low_stock=%d categories=%s\n",
			r.Inventory.TotalCount, r.Inventory.LowStockCount, strings.Join(r.Inventory.Categories, ", "))
		for _, item := range r.Inventory.Items {
			fmt.Fprintf(b, "- %s (%s): %d in stock\n", item.Name, item.Category, item.Stock)
		}
	}
	if len(r.Hits) > 0 {
		b.WriteString("Similarity matches:\n")
		for _, hit := range r.Hits {
			fmt.Fprintf(b, "- %s score=%.2f name=%s\n", hit.ID, hit.Score, hit.Metadata["name"])
		}
	}
}
