package backoffice

import (
	"context"
	"fmt"
	"sync"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// Orders is the order-placement collaborator. A placement that the backing
// inventory cannot cover fails with ErrPlacementRejected and is never
// retried here.
type Orders struct {
	mu        sync.Mutex
	inventory *Inventory
	next      int
}

func NewOrders(inventory *Inventory) *Orders {
	return &Orders{inventory: inventory, next: 1}
}

func (o *Orders) Place(ctx context.Context, line contractx.QuoteLine) (contractx.OrderConfirmation, error) {
	if line.Quantity <= 0 {
		return contractx.OrderConfirmation{}, fmt.Errorf("%w: quantity=%d", contractx.ErrPlacementRejected, line.Quantity)
	}

	if o.inventory != nil && !o.inventory.reserve(line.ProductName, line.Quantity) {
		return contractx.OrderConfirmation{}, fmt.Errorf("%w: insufficient stock for %s",
			contractx.ErrPlacementRejected, line.ProductName)
	}

	o.mu.Lock()
	number := fmt.Sprintf("PO-%05d", o.next)
	o.next++
	o.mu.Unlock()

	return contractx.OrderConfirmation{
		OrderNumber:    number,
		ConfirmedTotal: line.Total,
	}, nil
}
