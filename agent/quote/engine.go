// Package quote computes per-supplier RFQ pricing and resolves orders
// against the last issued quote.
package quote

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// Config holds the pricing tables. The sampled figures have no documented
// business justification, so everything is configuration rather than a hard
// invariant; DefaultConfig carries the values currently in use.
type Config struct {
	TaxRate     float64
	VariancePct float64 // vendor-specific unit price variance band

	BaseShippingFee         float64
	ShippingPerUnitOver10   float64
	ShippingPerUnitOver50   float64
	RegionMultipliers       map[string]float64
	DefaultRegionMultiplier float64

	BasePrices       map[string]float64
	DefaultUnitPrice float64

	CategoryLeadDays map[string]int
	DefaultLeadDays  int
	LeadJitterDays   int
}

func DefaultConfig() Config {
	return Config{
		TaxRate:     0.10,
		VariancePct: 0.15,

		BaseShippingFee:       50,
		ShippingPerUnitOver10: 2.0,
		ShippingPerUnitOver50: 1.5,
		RegionMultipliers: map[string]float64{
			"asia":          1.0,
			"europe":        1.3,
			"north america": 1.25,
			"south america": 1.35,
			"middle east":   1.2,
			"africa":        1.4,
			"oceania":       1.45,
			"domestic":      0.9,
		},
		DefaultRegionMultiplier: 1.2,

		BasePrices: map[string]float64{
			"steel beam":            120,
			"steel rod":             45,
			"steel plate":           95,
			"stainless steel sheet": 160,
			"aluminum sheet":        85,
			"aluminum":              70,
			"copper wire":           30,
			"copper":                55,
			"cement":                12,
			"concrete":              18,
			"timber":                25,
			"lumber":                25,
			"pvc pipe":              8,
			"glass panel":           140,
			"brick":                 2,
			"rebar":                 38,
		},
		DefaultUnitPrice: 60,

		CategoryLeadDays: map[string]int{
			"metals":       5,
			"electrical":   4,
			"construction": 7,
			"plumbing":     3,
			"chemicals":    10,
			"logistics":    2,
		},
		DefaultLeadDays: 6,
		LeadJitterDays:  2,
	}
}

// Engine computes quotes from supplier candidates and pricing tables.
type Engine struct {
	directory contractx.SupplierDirectory
	cfg       Config
	now       func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(directory contractx.SupplierDirectory, cfg Config) (*Engine, error) {
	if directory == nil {
		return nil, fmt.Errorf("%w: supplier directory is required", contractx.ErrValidation)
	}
	if cfg.VariancePct < 0 || cfg.VariancePct >= 1 {
		return nil, fmt.Errorf("%w: variance must be in [0,1)", contractx.ErrValidation)
	}
	return &Engine{
		directory: directory,
		cfg:       cfg,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// WithNow overrides the clock, for tests.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Generate builds a quote for the product and quantity across the top-rated
// suppliers. The region filter is relaxed once when it yields nothing; zero
// candidates after that is ErrNoSuppliersFound.
func (e *Engine) Generate(ctx context.Context, product string, quantity, supplierCount int, region string) (*contractx.Quote, error) {
	product = strings.ToLower(strings.TrimSpace(product))
	if product == "" {
		return nil, fmt.Errorf("%w: product is required", contractx.ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", contractx.ErrValidation)
	}
	if supplierCount < 1 {
		supplierCount = 1
	}

	candidates, err := e.directory.Search(ctx, contractx.SupplierFilters{
		Material: product,
		Region:   region,
	})
	if err != nil {
		return nil, fmt.Errorf("supplier lookup: %w", err)
	}
	if len(candidates) == 0 && region != "" {
		candidates, err = e.directory.Search(ctx, contractx.SupplierFilters{Material: product})
		if err != nil {
			return nil, fmt.Errorf("supplier lookup: %w", err)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: product=%s region=%s", contractx.ErrNoSuppliersFound, product, region)
	}

	ranked := append([]contractx.SupplierCandidate(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	if len(ranked) > supplierCount {
		ranked = ranked[:supplierCount]
	}

	q := &contractx.Quote{
		QuoteID:     uuid.NewString(),
		ProductName: product,
		Quantity:    quantity,
		Lines:       make([]contractx.QuoteLine, 0, len(ranked)),
		CreatedAt:   e.now().UTC(),
	}
	for _, supplier := range ranked {
		q.Lines = append(q.Lines, e.priceLine(supplier, product, quantity))
	}
	return q, nil
}

func (e *Engine) priceLine(supplier contractx.SupplierCandidate, product string, quantity int) contractx.QuoteLine {
	base, ok := e.cfg.BasePrices[product]
	if !ok {
		base = e.cfg.DefaultUnitPrice
	}

	unit := round2(base * (1 + e.variance()))
	subtotal := round2(unit * float64(quantity))
	tax := round2(subtotal * e.cfg.TaxRate)
	shipping := round2(e.shipping(quantity, supplier.Region))

	return contractx.QuoteLine{
		Supplier:           supplier,
		ProductName:        product,
		Quantity:           quantity,
		UnitPrice:          unit,
		Subtotal:           subtotal,
		TaxAmount:          tax,
		ShippingAmount:     shipping,
		Total:              round2(subtotal + tax + shipping),
		LeadTimeDescriptor: e.leadTime(supplier.Category, quantity),
	}
}

// variance returns a vendor draw within the configured band.
func (e *Engine) variance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return (e.rng.Float64()*2 - 1) * e.cfg.VariancePct
}

func (e *Engine) shipping(quantity int, region string) float64 {
	fee := e.cfg.BaseShippingFee
	if quantity > 10 {
		fee += e.cfg.ShippingPerUnitOver10 * float64(quantity-10)
	}
	if quantity > 50 {
		fee += e.cfg.ShippingPerUnitOver50 * float64(quantity-50)
	}

	mult, ok := e.cfg.RegionMultipliers[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		mult = e.cfg.DefaultRegionMultiplier
	}
	return fee * mult
}

// leadTime derives category base days + 1 day per 10 units + bounded jitter,
// bucketed into human ranges.
func (e *Engine) leadTime(category string, quantity int) string {
	days, ok := e.cfg.CategoryLeadDays[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		days = e.cfg.DefaultLeadDays
	}
	days += quantity / 10
	if e.cfg.LeadJitterDays > 0 {
		e.mu.Lock()
		days += e.rng.Intn(e.cfg.LeadJitterDays + 1)
		e.mu.Unlock()
	}

	switch {
	case days <= 7:
		return fmt.Sprintf("%d days", days)
	case days <= 14:
		return "1-2 weeks"
	case days <= 30:
		return "2-4 weeks"
	default:
		return "1-2 months"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
