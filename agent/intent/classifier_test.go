package intent

import (
	"testing"
	"time"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestClassifyCascadeOrder(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	cases := []struct {
		text string
		want contractx.IntentType
		conf float64
	}{
		{"find steel beam suppliers in asia", contractx.IntentSupplierSearch, 0.85},
		{"generate an RFQ for 500 units", contractx.IntentRFQGeneration, 0.9},
		{"place an order with company 1", contractx.IntentOrderPlacement, 0.9},
		{"send it to those two companies", contractx.IntentRFQGeneration, 0.9},
		{"place it with company 1", contractx.IntentOrderPlacement, 0.9},
		{"send an rfq to both", contractx.IntentRFQGeneration, 0.9},
		{"check warehouse stock for cement", contractx.IntentInventoryCheck, 0.85},
		{"show me similar materials", contractx.IntentSemanticSearch, 0.8},
		{"hello there", contractx.IntentGeneral, 0},
	}

	for _, tc := range cases {
		got := c.Classify(tc.text, nil)
		if got.Type != tc.want {
			t.Fatalf("Classify(%q).Type = %s, want %s", tc.text, got.Type, tc.want)
		}
		if got.Confidence != tc.conf {
			t.Fatalf("Classify(%q).Confidence = %v, want %v", tc.text, got.Confidence, tc.conf)
		}
	}
}

func TestClassifyRFQWinsOverSupplierKeywords(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	got := c.Classify("send an rfq to those suppliers", nil)
	if got.Type != contractx.IntentRFQGeneration {
		t.Fatalf("rfq keyword should outrank supplier keyword, got %s", got.Type)
	}
}

func TestClassifyBackfillsFromResolvedContext(t *testing.T) {
	t.Parallel()

	sess := statex.NewSession("s1", baseTime)
	sess.RememberMaterial("steel beam")
	sess.RememberSuppliers("Nippon Steelworks", "Hanoi Metal Supply")

	c := NewClassifier()
	got := c.Classify("generate an RFQ for 500 units", sess)

	if got.Type != contractx.IntentRFQGeneration {
		t.Fatalf("Type = %s, want RFQ_GENERATION", got.Type)
	}
	if got.Parameters.Material != "steel beam" {
		t.Fatalf("Material = %q, want back-filled %q", got.Parameters.Material, "steel beam")
	}
	if got.Parameters.Quantity != 500 {
		t.Fatalf("Quantity = %d, want 500", got.Parameters.Quantity)
	}
	if len(got.Parameters.SupplierNames) != 2 {
		t.Fatalf("SupplierNames = %v, want 2 back-filled names", got.Parameters.SupplierNames)
	}
}

func TestClassifyResolvesSlotsFromHistoryTurns(t *testing.T) {
	t.Parallel()

	sess := statex.NewSession("s1", baseTime)
	sess.AppendMessage(contractx.ConversationMessage{
		Role: contractx.RoleUser, Text: "I need Steel Beam for a project", Timestamp: baseTime,
	})
	sess.AppendMessage(contractx.ConversationMessage{
		Role: contractx.RoleAgent, Text: "Sure, how many units?", Timestamp: baseTime,
	})

	c := NewClassifier()
	got := c.Classify("5 units, send RFQ", sess)
	if got.Type != contractx.IntentRFQGeneration {
		t.Fatalf("Type = %s, want RFQ_GENERATION", got.Type)
	}
	if got.Parameters.Material != "steel beam" {
		t.Fatalf("Material = %q, want %q from the prior turn", got.Parameters.Material, "steel beam")
	}
	if got.Parameters.Quantity != 5 {
		t.Fatalf("Quantity = %d, want 5", got.Parameters.Quantity)
	}
}

func TestClassifyMessageBeatsBackfill(t *testing.T) {
	t.Parallel()

	sess := statex.NewSession("s1", baseTime)
	sess.RememberMaterial("cement")
	sess.RememberQuantity(10)

	c := NewClassifier()
	got := c.Classify("generate an RFQ for 500 units of copper wire", sess)

	if got.Parameters.Material != "copper wire" {
		t.Fatalf("Material = %q, explicit mention should win", got.Parameters.Material)
	}
	if got.Parameters.Quantity != 500 {
		t.Fatalf("Quantity = %d, explicit mention should win", got.Parameters.Quantity)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	sess := statex.NewSession("s1", baseTime)
	sess.RememberMaterial("steel beam")

	c := NewClassifier()
	first := c.Classify("quote 500 units", sess)
	second := c.Classify("quote 500 units", sess)

	if first.Type != second.Type || first.Parameters.Material != second.Parameters.Material {
		t.Fatalf("classification not stable: %+v vs %+v", first, second)
	}
	if sess.Resolved.LastMaterial != "steel beam" {
		t.Fatalf("classification must not mutate the session, resolved = %+v", sess.Resolved)
	}
}

func TestClassifyFillsFilterSlots(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	got := c.Classify("find top 2 steel beam suppliers in asia rated above 4", nil)

	p := got.Parameters
	if p.Material != "steel beam" || p.Region != "asia" || p.Limit != 2 || p.MinRating != 4.0 {
		t.Fatalf("unexpected parameters: %+v", p)
	}
	if p.Quantity != 0 {
		t.Fatalf("Quantity = %d, filter numbers must not become quantities", p.Quantity)
	}
}

func TestClassifyCustomRules(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Rule{
		Type:       contractx.IntentInventoryCheck,
		Confidence: 1.4,
		Keywords:   []string{"audit"},
	})
	got := c.Classify("run the audit", nil)
	if got.Type != contractx.IntentInventoryCheck {
		t.Fatalf("Type = %s, want INVENTORY_CHECK", got.Type)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("Confidence = %v, want clamped to 1.0", got.Confidence)
	}
}
