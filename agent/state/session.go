package state

import (
	"strings"
	"time"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

// Resolved is the conversational memory carried between turns. Slots missing
// from a message are back-filled from here, most recent value first.
type Resolved struct {
	LastMaterial  string          `json:"last_material,omitempty"`
	LastQuantity  int             `json:"last_quantity,omitempty"`
	LastSuppliers []string        `json:"last_suppliers,omitempty"` // most-recent-first
	LastQuote     *contractx.Quote `json:"last_quote,omitempty"`
}

// Session is the per-conversation state. The agent router exclusively owns
// creation and mutation; there is exactly one Session per session id.
type Session struct {
	SessionID    string                          `json:"session_id"`
	Messages     []contractx.ConversationMessage `json:"messages"`
	Resolved     Resolved                        `json:"resolved_context"`
	LastActivity time.Time                       `json:"last_activity"`
}

func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID:    sessionID,
		Messages:     make([]contractx.ConversationMessage, 0, 8),
		LastActivity: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.LastActivity = now.UTC()
}

// AppendMessage inserts in timestamp order, stable for equal stamps. A reply
// for a superseded turn may land late; ordering is by timestamp, not arrival.
func (s *Session) AppendMessage(msg contractx.ConversationMessage) {
	i := len(s.Messages)
	for i > 0 && s.Messages[i-1].Timestamp.After(msg.Timestamp) {
		i--
	}
	s.Messages = append(s.Messages, contractx.ConversationMessage{})
	copy(s.Messages[i+1:], s.Messages[i:])
	s.Messages[i] = msg
}

// RecentMessages returns up to n most recent messages in chronological order.
func (s *Session) RecentMessages(n int) []contractx.ConversationMessage {
	if n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	if n > len(s.Messages) {
		n = len(s.Messages)
	}
	out := make([]contractx.ConversationMessage, n)
	copy(out, s.Messages[len(s.Messages)-n:])
	return out
}

func (s *Session) RememberMaterial(material string) {
	if v := strings.TrimSpace(material); v != "" {
		s.Resolved.LastMaterial = v
	}
}

func (s *Session) RememberQuantity(quantity int) {
	if quantity > 0 {
		s.Resolved.LastQuantity = quantity
	}
}

// RememberSuppliers prepends names, deduplicated, keeping most-recent-first.
func (s *Session) RememberSuppliers(names ...string) {
	if len(names) == 0 {
		return
	}
	merged := make([]string, 0, len(names)+len(s.Resolved.LastSuppliers))
	seen := make(map[string]struct{}, len(names)+len(s.Resolved.LastSuppliers))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, name)
	}
	for _, name := range s.Resolved.LastSuppliers {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, name)
	}
	s.Resolved.LastSuppliers = merged
}

func (s *Session) SetQuote(q *contractx.Quote) {
	s.Resolved.LastQuote = q
}

// ClearQuote invalidates the active quote. This is the one deliberate state
// transition preventing a double order against a stale price.
func (s *Session) ClearQuote() {
	s.Resolved.LastQuote = nil
}

// Clone deep-copies the session so store callers never alias shared state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		SessionID:    s.SessionID,
		Messages:     append([]contractx.ConversationMessage(nil), s.Messages...),
		LastActivity: s.LastActivity,
		Resolved: Resolved{
			LastMaterial:  s.Resolved.LastMaterial,
			LastQuantity:  s.Resolved.LastQuantity,
			LastSuppliers: append([]string(nil), s.Resolved.LastSuppliers...),
		},
	}
	if s.Resolved.LastQuote != nil {
		q := *s.Resolved.LastQuote
		q.Lines = append([]contractx.QuoteLine(nil), s.Resolved.LastQuote.Lines...)
		out.Resolved.LastQuote = &q
	}
	return out
}
