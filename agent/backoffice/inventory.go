package backoffice

import (
	"context"
	"sort"
	"strings"
	"sync"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

const lowStockThreshold = 25

type stockRecord struct {
	Name     string
	Category string
	Stock    int
}

// Inventory is the read-only inventory snapshot collaborator. The same
// records back order placement, so a confirmed order draws stock down.
type Inventory struct {
	mu    sync.RWMutex
	items map[string]*stockRecord
}

func NewInventory() *Inventory {
	inv := &Inventory{items: make(map[string]*stockRecord)}
	for _, r := range []stockRecord{
		{Name: "steel beam", Category: "metals", Stock: 1200},
		{Name: "steel rod", Category: "metals", Stock: 180},
		{Name: "aluminum sheet", Category: "metals", Stock: 95},
		{Name: "copper wire", Category: "electrical", Stock: 18},
		{Name: "cement", Category: "construction", Stock: 800},
		{Name: "timber", Category: "construction", Stock: 60},
		{Name: "pvc pipe", Category: "plumbing", Stock: 12},
		{Name: "glass panel", Category: "construction", Stock: 40},
	} {
		rec := r
		inv.items[rec.Name] = &rec
	}
	return inv
}

func (inv *Inventory) GetStatus(ctx context.Context, filters contractx.InventoryFilters) (contractx.InventoryStatus, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	status := contractx.InventoryStatus{}
	categories := make(map[string]struct{})
	for _, rec := range inv.items {
		if filters.Material != "" && !strings.EqualFold(rec.Name, filters.Material) {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(rec.Category, filters.Category) {
			continue
		}
		low := rec.Stock < lowStockThreshold
		status.TotalCount++
		if low {
			status.LowStockCount++
		}
		categories[rec.Category] = struct{}{}
		status.Items = append(status.Items, contractx.InventoryItem{
			Name:     rec.Name,
			Category: rec.Category,
			Stock:    rec.Stock,
			LowStock: low,
		})
	}

	sort.Slice(status.Items, func(i, j int) bool {
		return status.Items[i].Name < status.Items[j].Name
	})
	for c := range categories {
		status.Categories = append(status.Categories, c)
	}
	sort.Strings(status.Categories)
	return status, nil
}

// reserve draws stock down for an order, reporting whether enough was held.
// Unknown products are accepted; only tracked products can run short.
func (inv *Inventory) reserve(product string, quantity int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	rec, ok := inv.items[strings.ToLower(product)]
	if !ok {
		return true
	}
	if rec.Stock < quantity {
		return false
	}
	rec.Stock -= quantity
	return true
}
