package router

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	backofficex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/backoffice"
	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	intentx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/intent"
	quotex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/quote"
	respondx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/respond"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

type failingStore struct {
	statex.Store
	saveErr error
}

func (f *failingStore) Save(ctx context.Context, s *statex.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, s)
}

// newTestRouter wires a router over the seeded back office with no upstream
// providers, so every reply comes from the deterministic template tier.
func newTestRouter(t *testing.T, store statex.Store) *Router {
	t.Helper()

	suppliers := backofficex.SeedSuppliers()
	directory := backofficex.NewDirectory(suppliers...)
	inventory := backofficex.NewInventory()
	semantic := backofficex.NewSemanticIndex()
	semantic.IndexSuppliers(suppliers)

	engine, err := quotex.NewEngine(directory, quotex.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	rt, err := New(store, intentx.NewClassifier(), engine,
		respondx.NewGenerator(nil, nil, nil),
		Collaborators{
			Directory: directory,
			Inventory: inventory,
			Orders:    backofficex.NewOrders(inventory),
			Semantic:  semantic,
		},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return rt.WithNow(func() time.Time {
		return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	})
}

func TestHandleMessageInvalidInput(t *testing.T) {
	t.Parallel()

	rt := newTestRouter(t, statex.NewMemoryStore())

	reply := rt.HandleMessage(context.Background(), "   ", "hello")
	if reply.Success {
		t.Fatal("blank session id should fail")
	}
	if reply.FallbackText == "" {
		t.Fatal("failure reply needs fallback text")
	}

	reply = rt.HandleMessage(context.Background(), "s1", "   ")
	if reply.Success {
		t.Fatal("blank message should fail")
	}
	if !strings.Contains(reply.Error, contractx.ErrInvalidMessage.Error()) {
		t.Fatalf("Error = %q, want a message-validation error", reply.Error)
	}
}

func TestHandleMessageFullProcurementFlow(t *testing.T) {
	t.Parallel()

	store := statex.NewMemoryStore()
	rt := newTestRouter(t, store)
	ctx := context.Background()
	const sid = "flow-1"

	// Turn 1: supplier search with region and limit.
	reply := rt.HandleMessage(ctx, sid, "find top 2 steel beam suppliers in asia")
	if !reply.Success {
		t.Fatalf("turn 1 failed: %+v", reply)
	}
	if reply.IntentType != contractx.IntentSupplierSearch {
		t.Fatalf("turn 1 intent = %s", reply.IntentType)
	}
	if !strings.Contains(reply.Text, "[Nippon Steelworks]") || !strings.Contains(reply.Text, "[Hanoi Metal Supply]") {
		t.Fatalf("turn 1 text missing suppliers: %q", reply.Text)
	}

	// Turn 2: RFQ with material carried over from turn 1.
	reply = rt.HandleMessage(ctx, sid, "generate an RFQ for 500 units")
	if !reply.Success {
		t.Fatalf("turn 2 failed: %+v", reply)
	}
	if reply.IntentType != contractx.IntentRFQGeneration {
		t.Fatalf("turn 2 intent = %s", reply.IntentType)
	}
	if !strings.Contains(reply.Text, "500 x steel beam") {
		t.Fatalf("turn 2 text should carry the resolved material: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "company 1") || !strings.Contains(reply.Text, "company 2") {
		t.Fatalf("turn 2 should price both remembered suppliers: %q", reply.Text)
	}

	sess, err := store.Load(ctx, sid)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.Resolved.LastQuote == nil || len(sess.Resolved.LastQuote.Lines) != 2 {
		t.Fatalf("quote not stored with 2 lines: %+v", sess.Resolved.LastQuote)
	}

	// Turn 3: order against line 1.
	reply = rt.HandleMessage(ctx, sid, "place an order with company 1")
	if !reply.Success {
		t.Fatalf("turn 3 failed: %+v", reply)
	}
	if reply.IntentType != contractx.IntentOrderPlacement {
		t.Fatalf("turn 3 intent = %s", reply.IntentType)
	}
	if !strings.Contains(reply.Text, "PO-") {
		t.Fatalf("turn 3 text missing order number: %q", reply.Text)
	}
	found := false
	for _, a := range reply.Actions {
		if a.Name == "track_order" {
			found = true
		}
	}
	if !found {
		t.Fatalf("turn 3 actions = %v, want track_order", reply.Actions)
	}

	sess, _ = store.Load(ctx, sid)
	if sess.Resolved.LastQuote != nil {
		t.Fatal("quote must be cleared after a confirmed order")
	}
	if len(sess.Messages) != 6 {
		t.Fatalf("len(Messages) = %d, want 6 after 3 exchanges", len(sess.Messages))
	}

	// Turn 4: ordering again has no quote to order against, but the reply
	// is still a successful, explanatory one.
	reply = rt.HandleMessage(ctx, sid, "place an order with company 1")
	if !reply.Success {
		t.Fatalf("turn 4 should succeed with an explanation: %+v", reply)
	}
	if !strings.Contains(reply.Text, "Generate an RFQ before placing an order") {
		t.Fatalf("turn 4 text = %q", reply.Text)
	}
}

func TestHandleMessageMissingSlotAsksBack(t *testing.T) {
	t.Parallel()

	rt := newTestRouter(t, statex.NewMemoryStore())
	reply := rt.HandleMessage(context.Background(), "s1", "generate an rfq")
	if !reply.Success {
		t.Fatalf("reply = %+v", reply)
	}
	if !strings.Contains(reply.Text, "material") {
		t.Fatalf("clarifying question should name the missing slot: %q", reply.Text)
	}
}

func TestHandleMessageInventoryAndSemantic(t *testing.T) {
	t.Parallel()

	rt := newTestRouter(t, statex.NewMemoryStore())
	ctx := context.Background()

	reply := rt.HandleMessage(ctx, "s1", "check warehouse stock")
	if !reply.Success || reply.IntentType != contractx.IntentInventoryCheck {
		t.Fatalf("inventory reply = %+v", reply)
	}
	if !strings.Contains(reply.Text, "running low") {
		t.Fatalf("inventory text = %q", reply.Text)
	}

	reply = rt.HandleMessage(ctx, "s2", "show me similar materials to steel beam")
	if !reply.Success || reply.IntentType != contractx.IntentSemanticSearch {
		t.Fatalf("semantic reply = %+v", reply)
	}
	if !strings.Contains(reply.Text, "Closest matches") {
		t.Fatalf("semantic text = %q", reply.Text)
	}
}

func TestHandleMessageGeneralFallthrough(t *testing.T) {
	t.Parallel()

	rt := newTestRouter(t, statex.NewMemoryStore())
	reply := rt.HandleMessage(context.Background(), "s1", "good morning")
	if !reply.Success || reply.IntentType != contractx.IntentGeneral {
		t.Fatalf("reply = %+v", reply)
	}
	if reply.Confidence != 0 {
		t.Fatalf("Confidence = %v, want 0 for GENERAL", reply.Confidence)
	}
}

func TestHandleMessageStoreFailure(t *testing.T) {
	t.Parallel()

	store := &failingStore{Store: statex.NewMemoryStore(), saveErr: errors.New("disk full")}
	rt := newTestRouter(t, store)

	reply := rt.HandleMessage(context.Background(), "s1", "hello")
	if reply.Success {
		t.Fatal("save failure must surface as an unsuccessful reply")
	}
	if !strings.Contains(reply.Error, "disk full") {
		t.Fatalf("Error = %q", reply.Error)
	}
	if reply.FallbackText == "" {
		t.Fatal("failure reply needs fallback text")
	}
}

func TestHandleMessageConcurrentSessions(t *testing.T) {
	t.Parallel()

	store := statex.NewMemoryStore()
	rt := newTestRouter(t, store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := "conc-" + string(rune('a'+i))
			for j := 0; j < 5; j++ {
				reply := rt.HandleMessage(ctx, sid, "find steel beam suppliers")
				if !reply.Success {
					t.Errorf("session %s turn %d failed: %+v", sid, j, reply)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		sid := "conc-" + string(rune('a'+i))
		sess, err := store.Load(ctx, sid)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", sid, err)
		}
		if len(sess.Messages) != 10 {
			t.Fatalf("session %s has %d messages, want 10", sid, len(sess.Messages))
		}
	}
}

func TestNewValidatesDependencies(t *testing.T) {
	t.Parallel()

	directory := backofficex.NewDirectory()
	inventory := backofficex.NewInventory()
	engine, _ := quotex.NewEngine(directory, quotex.DefaultConfig())
	gen := respondx.NewGenerator(nil, nil, nil)
	collab := Collaborators{
		Directory: directory,
		Inventory: inventory,
		Orders:    backofficex.NewOrders(inventory),
	}

	if _, err := New(nil, intentx.NewClassifier(), engine, gen, collab); err == nil {
		t.Fatal("nil store accepted")
	}
	if _, err := New(statex.NewMemoryStore(), nil, engine, gen, collab); err == nil {
		t.Fatal("nil classifier accepted")
	}
	if _, err := New(statex.NewMemoryStore(), intentx.NewClassifier(), engine, gen, Collaborators{}); err == nil {
		t.Fatal("empty collaborators accepted")
	}
}
