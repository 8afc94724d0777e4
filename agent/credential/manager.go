// Package credential tracks a pool of upstream-provider credentials and
// rotates away from quota-exhausted slots.
package credential

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

type SlotState string

const (
	SlotAvailable     SlotState = "AVAILABLE"
	SlotActive        SlotState = "ACTIVE"
	SlotQuotaExceeded SlotState = "QUOTA_EXCEEDED"
)

const (
	DefaultCooldown = 24 * time.Hour

	maxRecentErrors = 5
)

// Slot is one credential in the pool. Owned exclusively by the Manager and
// mutated only under its lock.
type Slot struct {
	Index        int
	SecretRef    string
	State        SlotState
	RequestCount int
	LastUsed     time.Time
	RecentErrors []string
}

// Manager is process-wide shared state: initialized once at startup, never
// torn down. Exactly one slot is ACTIVE at a time and only one rotation
// decision may be in flight per process.
type Manager struct {
	mu           sync.Mutex
	slots        []*Slot
	active       int
	lastRotation time.Time
	cooldown     time.Duration
	now          func() time.Time
}

type Option func(*Manager)

func WithCooldown(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.cooldown = d
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager builds the pool from the configured secrets. Zero usable
// secrets is a fatal configuration failure.
func NewManager(secrets []string, opts ...Option) (*Manager, error) {
	m := &Manager{
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, secret := range secrets {
		secret = strings.TrimSpace(secret)
		if secret == "" {
			continue
		}
		m.slots = append(m.slots, &Slot{
			Index:     len(m.slots),
			SecretRef: secret,
			State:     SlotAvailable,
		})
	}
	if len(m.slots) == 0 {
		return nil, contractx.ErrNoCredentials
	}

	m.slots[0].State = SlotActive
	m.lastRotation = m.now()
	return m, nil
}

func (m *Manager) PoolSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// Active returns the current secret and its slot index. Reads outside a
// rotation decision may be stale by one rotation; the next provider call
// simply observes the updated slot.
func (m *Manager) Active() (string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cooldownReset()
	slot := m.slots[m.active]
	slot.RequestCount++
	slot.LastUsed = m.now()
	return slot.SecretRef, slot.Index
}

// ReportFailure classifies the error and rotates. A quota failure marks the
// active slot QUOTA_EXCEEDED and advances round-robin to the next
// non-excluded slot, wrapping once; false means every slot is excluded.
// Non-quota errors rotate without excluding the slot, so one bad network
// blip does not wedge it without retry.
func (m *Manager) ReportFailure(err error) bool {
	if err == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cooldownReset()

	cur := m.slots[m.active]
	cur.RecentErrors = append(cur.RecentErrors, err.Error())
	if len(cur.RecentErrors) > maxRecentErrors {
		cur.RecentErrors = cur.RecentErrors[len(cur.RecentErrors)-maxRecentErrors:]
	}

	quota := IsQuotaError(err)
	if quota {
		cur.State = SlotQuotaExceeded
	} else {
		cur.State = SlotAvailable
	}

	for i := 1; i <= len(m.slots); i++ {
		cand := (m.active + i) % len(m.slots)
		if m.slots[cand].State == SlotQuotaExceeded {
			continue
		}
		m.slots[cand].State = SlotActive
		m.active = cand
		m.lastRotation = m.now()
		log.Info().
			Int("slot", cand).
			Bool("quota", quota).
			Msg("credential rotated")
		return true
	}

	log.Warn().Int("pool_size", len(m.slots)).Msg("credential pool exhausted")
	return false
}

// Reset manually returns every slot to AVAILABLE, keeping the active index.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, slot := range m.slots {
		slot.State = SlotAvailable
		slot.RecentErrors = nil
	}
	m.slots[m.active].State = SlotActive
	m.lastRotation = m.now()
}

// Snapshot copies slot state for inspection without exposing internals.
func (m *Manager) Snapshot() []Slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Slot, len(m.slots))
	for i, slot := range m.slots {
		out[i] = Slot{
			Index:        slot.Index,
			SecretRef:    slot.SecretRef,
			State:        slot.State,
			RequestCount: slot.RequestCount,
			LastUsed:     slot.LastUsed,
			RecentErrors: append([]string(nil), slot.RecentErrors...),
		}
	}
	return out
}

// cooldownReset clears quota exclusions once the cool-down since the last
// rotation event has elapsed. Caller holds the lock.
func (m *Manager) cooldownReset() {
	if m.now().Sub(m.lastRotation) < m.cooldown {
		return
	}
	cleared := false
	for _, slot := range m.slots {
		if slot.State == SlotQuotaExceeded {
			slot.State = SlotAvailable
			cleared = true
		}
	}
	if cleared {
		// The pool may have exhausted with no slot left ACTIVE; re-promote
		// the round-robin cursor so exactly one slot serves again.
		m.slots[m.active].State = SlotActive
		m.lastRotation = m.now()
		log.Info().Msg("credential cool-down elapsed, quota slots reset")
	}
}

// IsQuotaError reports whether an upstream failure looks like quota or
// rate-limit exhaustion. Timeouts and cancellations are transient, never
// quota, even though Go's deadline error also says "exceeded".
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "quota", "rate limit", "rate-limit", "too many requests", "exceeded"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
