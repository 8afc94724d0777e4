package quote

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

type fakeDirectory struct {
	byRegion map[string][]contractx.SupplierCandidate
	all      []contractx.SupplierCandidate
	err      error
	searches []contractx.SupplierFilters
}

func (f *fakeDirectory) Search(ctx context.Context, filters contractx.SupplierFilters) ([]contractx.SupplierCandidate, error) {
	f.searches = append(f.searches, filters)
	if f.err != nil {
		return nil, f.err
	}
	if filters.Region != "" {
		return append([]contractx.SupplierCandidate(nil), f.byRegion[filters.Region]...), nil
	}
	return append([]contractx.SupplierCandidate(nil), f.all...), nil
}

func supplier(id, name, region string, rating float64) contractx.SupplierCandidate {
	return contractx.SupplierCandidate{ID: id, Name: name, Region: region, Category: "metals", Material: "steel beam", Rating: rating}
}

func newTestEngine(t *testing.T, dir contractx.SupplierDirectory, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(dir, cfg)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e.WithNow(func() time.Time {
		return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	})
}

func TestGenerateRanksAndLimitsSuppliers(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{
		byRegion: map[string][]contractx.SupplierCandidate{
			"asia": {
				supplier("s2", "Hanoi Metal Supply", "asia", 4.5),
				supplier("s1", "Nippon Steelworks", "asia", 4.8),
				supplier("s3", "Busan Alloy Co", "asia", 4.1),
			},
		},
	}
	e := newTestEngine(t, dir, DefaultConfig())

	q, err := e.Generate(context.Background(), "Steel Beam", 500, 2, "asia")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(q.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(q.Lines))
	}
	if q.Lines[0].Supplier.Name != "Nippon Steelworks" || q.Lines[1].Supplier.Name != "Hanoi Metal Supply" {
		t.Fatalf("lines not in rating order: %s, %s", q.Lines[0].Supplier.Name, q.Lines[1].Supplier.Name)
	}
	if q.ProductName != "steel beam" {
		t.Fatalf("ProductName = %q, want normalized %q", q.ProductName, "steel beam")
	}
	if q.QuoteID == "" {
		t.Fatal("QuoteID is empty")
	}
}

func TestGenerateLineInvariants(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{all: []contractx.SupplierCandidate{supplier("s1", "Nippon Steelworks", "asia", 4.8)}}
	cfg := DefaultConfig()
	e := newTestEngine(t, dir, cfg)

	q, err := e.Generate(context.Background(), "steel beam", 500, 1, "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	line := q.Lines[0]
	base := cfg.BasePrices["steel beam"]
	lo, hi := base*(1-cfg.VariancePct), base*(1+cfg.VariancePct)
	if line.UnitPrice < lo-0.01 || line.UnitPrice > hi+0.01 {
		t.Fatalf("UnitPrice %.2f outside variance band [%.2f, %.2f]", line.UnitPrice, lo, hi)
	}
	if got, want := line.Subtotal, math.Round(line.UnitPrice*500*100)/100; math.Abs(got-want) > 0.01 {
		t.Fatalf("Subtotal = %.2f, want unit*quantity = %.2f", got, want)
	}
	if got, want := line.TaxAmount, math.Round(line.Subtotal*cfg.TaxRate*100)/100; math.Abs(got-want) > 0.01 {
		t.Fatalf("TaxAmount = %.2f, want %.2f", got, want)
	}
	if line.ShippingAmount <= 0 {
		t.Fatalf("ShippingAmount = %.2f, want positive", line.ShippingAmount)
	}
	if got, want := line.Total, math.Round((line.Subtotal+line.TaxAmount+line.ShippingAmount)*100)/100; math.Abs(got-want) > 0.005 {
		t.Fatalf("Total = %.2f, want subtotal+tax+shipping = %.2f", got, want)
	}
}

func TestGenerateRelaxesRegionOnce(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{
		byRegion: map[string][]contractx.SupplierCandidate{},
		all:      []contractx.SupplierCandidate{supplier("s1", "Ruhr Stahl GmbH", "europe", 4.7)},
	}
	e := newTestEngine(t, dir, DefaultConfig())

	q, err := e.Generate(context.Background(), "steel beam", 100, 3, "oceania")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(q.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1 from relaxed search", len(q.Lines))
	}
	if len(dir.searches) != 2 {
		t.Fatalf("expected region search then relaxed search, got %d searches", len(dir.searches))
	}
	if dir.searches[1].Region != "" {
		t.Fatalf("second search should drop the region, got %q", dir.searches[1].Region)
	}
}

func TestGenerateNoSuppliersFound(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{}
	e := newTestEngine(t, dir, DefaultConfig())

	_, err := e.Generate(context.Background(), "unobtainium", 10, 3, "asia")
	if !errors.Is(err, contractx.ErrNoSuppliersFound) {
		t.Fatalf("error = %v, want ErrNoSuppliersFound", err)
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{all: []contractx.SupplierCandidate{supplier("s1", "X", "asia", 4.0)}}
	e := newTestEngine(t, dir, DefaultConfig())

	if _, err := e.Generate(context.Background(), "   ", 10, 1, ""); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("empty product: error = %v, want ErrValidation", err)
	}
	if _, err := e.Generate(context.Background(), "steel beam", 0, 1, ""); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("zero quantity: error = %v, want ErrValidation", err)
	}
}

func TestGenerateDefaultPriceForUnknownProduct(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{all: []contractx.SupplierCandidate{supplier("s1", "X", "asia", 4.0)}}
	cfg := DefaultConfig()
	cfg.VariancePct = 0
	e := newTestEngine(t, dir, cfg)

	q, err := e.Generate(context.Background(), "mystery widget", 1, 1, "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if q.Lines[0].UnitPrice != cfg.DefaultUnitPrice {
		t.Fatalf("UnitPrice = %.2f, want default %.2f", q.Lines[0].UnitPrice, cfg.DefaultUnitPrice)
	}
}

func TestShippingTiersAndRegionMultiplier(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	dir := &fakeDirectory{}
	e := newTestEngine(t, dir, cfg)

	// 100 units: 50 + 2.0*90 + 1.5*50 = 305, europe multiplier 1.3.
	got := e.shipping(100, "europe")
	want := 305.0 * 1.3
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("shipping(100, europe) = %.2f, want %.2f", got, want)
	}

	// Unknown region takes the default multiplier.
	got = e.shipping(5, "atlantis")
	want = cfg.BaseShippingFee * cfg.DefaultRegionMultiplier
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("shipping(5, atlantis) = %.2f, want %.2f", got, want)
	}
}

func TestLeadTimeBuckets(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LeadJitterDays = 0
	e := newTestEngine(t, &fakeDirectory{}, cfg)

	// metals base 5 + 0 = "5 days"
	if got := e.leadTime("metals", 5); got != "5 days" {
		t.Fatalf("leadTime(metals, 5) = %q", got)
	}
	// metals base 5 + 50/10 = 10 -> "1-2 weeks"
	if got := e.leadTime("metals", 50); got != "1-2 weeks" {
		t.Fatalf("leadTime(metals, 50) = %q", got)
	}
	// chemicals base 10 + 100/10 = 20 -> "2-4 weeks"
	if got := e.leadTime("chemicals", 100); got != "2-4 weeks" {
		t.Fatalf("leadTime(chemicals, 100) = %q", got)
	}
	// chemicals base 10 + 500/10 = 60 -> "1-2 months"
	if got := e.leadTime("chemicals", 500); got != "1-2 months" {
		t.Fatalf("leadTime(chemicals, 500) = %q", got)
	}
}

func TestNewEngineRejectsBadVariance(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.VariancePct = 1.5
	if _, err := NewEngine(&fakeDirectory{}, cfg); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if _, err := NewEngine(nil, DefaultConfig()); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("nil directory: error = %v, want ErrValidation", err)
	}
}
