package contract

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type IntentType string

const (
	IntentSupplierSearch IntentType = "SUPPLIER_SEARCH"
	IntentRFQGeneration  IntentType = "RFQ_GENERATION"
	IntentOrderPlacement IntentType = "ORDER_PLACEMENT"
	IntentInventoryCheck IntentType = "INVENTORY_CHECK"
	IntentSemanticSearch IntentType = "SEMANTIC_SEARCH"
	IntentGeneral        IntentType = "GENERAL"
)

// ConversationMessage is a single turn in a session. It is immutable once
// appended; insertion order within a session follows the timestamp.
type ConversationMessage struct {
	Role       Role       `json:"role"`
	Text       string     `json:"text"`
	Timestamp  time.Time  `json:"timestamp"`
	IntentType IntentType `json:"intent_type,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
}

// Parameters are the slots an intent may carry. Zero values mean "not set".
type Parameters struct {
	Material      string   `json:"material,omitempty"`
	Quantity      int      `json:"quantity,omitempty"`
	Region        string   `json:"region,omitempty"`
	Category      string   `json:"category,omitempty"`
	MinRating     float64  `json:"min_rating,omitempty"`
	SupplierNames []string `json:"supplier_names,omitempty"`
	CompanyNumber int      `json:"company_number,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// Intent is produced fresh per message and never mutated after creation.
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
	Parameters Parameters `json:"parameters"`
}

// SupplierCandidate is a read-only record fetched from the supplier lookup
// collaborator. The agent ranks candidates but never mutates them.
type SupplierCandidate struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Region             string  `json:"region"`
	Category           string  `json:"category"`
	Material           string  `json:"material"`
	Rating             float64 `json:"rating"`
	LeadTimeDescriptor string  `json:"lead_time,omitempty"`
	Contact            string  `json:"contact,omitempty"`
}

type SupplierFilters struct {
	Material  string
	Region    string
	Category  string
	MinRating float64
	Limit     int
}

// QuoteLine holds the computed pricing breakdown for one supplier.
// Invariants: Subtotal = UnitPrice * Quantity, Total = Subtotal + TaxAmount +
// ShippingAmount, all monetary values >= 0.
type QuoteLine struct {
	Supplier           SupplierCandidate `json:"supplier"`
	ProductName        string            `json:"product_name"`
	Quantity           int               `json:"quantity"`
	UnitPrice          float64           `json:"unit_price"`
	Subtotal           float64           `json:"subtotal"`
	TaxAmount          float64           `json:"tax_amount"`
	ShippingAmount     float64           `json:"shipping_amount"`
	Total              float64           `json:"total"`
	LeadTimeDescriptor string            `json:"lead_time"`
}

// Quote is an RFQ result. Lines are ordered by supplier rank; a line's 1-based
// position is the company number used by a later order placement.
type Quote struct {
	QuoteID     string      `json:"quote_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	Lines       []QuoteLine `json:"lines"`
	CreatedAt   time.Time   `json:"created_at"`
}

type InventoryItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	LowStock bool   `json:"low_stock"`
}

type InventoryStatus struct {
	TotalCount    int             `json:"total_count"`
	LowStockCount int             `json:"low_stock_count"`
	Categories    []string        `json:"categories"`
	Items         []InventoryItem `json:"items"`
}

type InventoryFilters struct {
	Material string
	Category string
}

type OrderConfirmation struct {
	OrderNumber    string  `json:"order_number"`
	ConfirmedTotal float64 `json:"confirmed_total"`
}

// SearchHit is one result from the semantic search collaborator.
type SearchHit struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Action is a directive extracted from a generated reply, e.g.
// [ACTION:view_supplier:Nippon Steelworks].
type Action struct {
	Name  string `json:"name"`
	Param string `json:"param"`
}

// Reply is the structured result of handling one inbound message.
type Reply struct {
	Success      bool       `json:"success"`
	SessionID    string     `json:"session_id"`
	Text         string     `json:"text,omitempty"`
	IntentType   IntentType `json:"intent_type,omitempty"`
	Confidence   float64    `json:"confidence,omitempty"`
	Actions      []Action   `json:"actions,omitempty"`
	Error        string     `json:"error,omitempty"`
	FallbackText string     `json:"fallback_text,omitempty"`
}
