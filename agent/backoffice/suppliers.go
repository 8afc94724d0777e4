// Package backoffice carries seeded in-process implementations of the
// external collaborators (supplier lookup, inventory, order placement,
// similarity search) so the service and its end-to-end tests run without a
// real back office. Durable storage for these records is out of scope.
package backoffice

import (
	"context"
	"sort"
	"strings"
	"sync"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// Directory is a static supplier catalog implementing the supplier lookup
// boundary. An empty result is a normal outcome, never an error.
type Directory struct {
	mu        sync.RWMutex
	suppliers []contractx.SupplierCandidate
}

func NewDirectory(suppliers ...contractx.SupplierCandidate) *Directory {
	if len(suppliers) == 0 {
		suppliers = SeedSuppliers()
	}
	return &Directory{suppliers: suppliers}
}

func (d *Directory) Search(ctx context.Context, filters contractx.SupplierFilters) ([]contractx.SupplierCandidate, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []contractx.SupplierCandidate
	for _, s := range d.suppliers {
		if filters.Material != "" && !strings.EqualFold(s.Material, filters.Material) {
			continue
		}
		if filters.Region != "" && !strings.EqualFold(s.Region, filters.Region) {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(s.Category, filters.Category) {
			continue
		}
		if filters.MinRating > 0 && s.Rating < filters.MinRating {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

// SeedSuppliers is the demo catalog used when no records are injected.
func SeedSuppliers() []contractx.SupplierCandidate {
	return []contractx.SupplierCandidate{
		{ID: "sup-001", Name: "Nippon Steelworks", Region: "asia", Category: "metals", Material: "steel beam", Rating: 4.8, LeadTimeDescriptor: "5 days", Contact: "sales@nipponsteelworks.example"},
		{ID: "sup-002", Name: "Hanoi Metal Supply", Region: "asia", Category: "metals", Material: "steel beam", Rating: 4.5, LeadTimeDescriptor: "6 days", Contact: "quotes@hanoimetal.example"},
		{ID: "sup-003", Name: "Ruhr Stahl GmbH", Region: "europe", Category: "metals", Material: "steel beam", Rating: 4.7, LeadTimeDescriptor: "8 days", Contact: "vertrieb@ruhrstahl.example"},
		{ID: "sup-004", Name: "Shenzhen Alloy Traders", Region: "asia", Category: "metals", Material: "aluminum sheet", Rating: 4.2, LeadTimeDescriptor: "4 days", Contact: "rfq@szalloy.example"},
		{ID: "sup-005", Name: "Mumbai Copper Exchange", Region: "asia", Category: "electrical", Material: "copper wire", Rating: 4.0, LeadTimeDescriptor: "5 days", Contact: "desk@mumbaicopper.example"},
		{ID: "sup-006", Name: "Gulf Cement Corp", Region: "middle east", Category: "construction", Material: "cement", Rating: 4.4, LeadTimeDescriptor: "9 days", Contact: "orders@gulfcement.example"},
		{ID: "sup-007", Name: "Lakeside Lumber Co", Region: "north america", Category: "construction", Material: "timber", Rating: 4.1, LeadTimeDescriptor: "7 days", Contact: "sales@lakesidelumber.example"},
		{ID: "sup-008", Name: "Baltic Timber Union", Region: "europe", Category: "construction", Material: "timber", Rating: 3.9, LeadTimeDescriptor: "10 days", Contact: "export@baltictimber.example"},
		{ID: "sup-009", Name: "Andes Rebar SA", Region: "south america", Category: "metals", Material: "rebar", Rating: 4.3, LeadTimeDescriptor: "11 days", Contact: "ventas@andesrebar.example"},
		{ID: "sup-010", Name: "Cairo Glassworks", Region: "africa", Category: "construction", Material: "glass panel", Rating: 3.8, LeadTimeDescriptor: "12 days", Contact: "info@cairoglass.example"},
		{ID: "sup-011", Name: "Osaka PVC Industries", Region: "asia", Category: "plumbing", Material: "pvc pipe", Rating: 4.6, LeadTimeDescriptor: "3 days", Contact: "sales@osakapvc.example"},
		{ID: "sup-012", Name: "Great Plains Concrete", Region: "north america", Category: "construction", Material: "concrete", Rating: 4.0, LeadTimeDescriptor: "6 days", Contact: "dispatch@gpconcrete.example"},
	}
}
