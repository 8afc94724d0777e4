package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	s := NewSession("s1", t0)
	s.RememberMaterial("steel beam")

	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Resolved.LastMaterial != "steel beam" {
		t.Fatalf("LastMaterial = %q", loaded.Resolved.LastMaterial)
	}

	// The store must hand out copies, not the stored pointer.
	loaded.RememberMaterial("cement")
	again, _ := store.Load(context.Background(), "s1")
	if again.Resolved.LastMaterial != "steel beam" {
		t.Fatal("loaded session aliases the stored one")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreValidation(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilSession) {
		t.Fatalf("nil session: error = %v", err)
	}
	if err := store.Save(context.Background(), NewSession("  ", t0)); !errors.Is(err, ErrEmptySessionID) {
		t.Fatalf("blank id: error = %v", err)
	}
	if _, err := store.Load(context.Background(), ""); !errors.Is(err, ErrEmptySessionID) {
		t.Fatalf("blank id load: error = %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_ = store.Save(context.Background(), NewSession("s1", t0))
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("error after delete = %v, want ErrSessionNotFound", err)
	}
	// deleting a missing session is a no-op
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
}

func TestMemoryStoreEvictIdle(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	old := NewSession("old", t0)
	fresh := NewSession("fresh", t0.Add(2*time.Hour))
	_ = store.Save(context.Background(), old)
	_ = store.Save(context.Background(), fresh)

	evicted := store.EvictIdle(time.Hour, t0.Add(3*time.Hour))
	if evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}
	if _, err := store.Load(context.Background(), "fresh"); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}

func TestMemoryStoreConcurrentDistinctSessions(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "sess-" + string(rune('a'+i))
			s := NewSession(id, t0)
			for j := 0; j < 20; j++ {
				_ = store.Save(context.Background(), s)
				_, _ = store.Load(context.Background(), id)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", store.Len())
	}
}
