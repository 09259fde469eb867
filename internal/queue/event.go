// Package queue defines the order events exchanged over the message
// broker and the background consumer that records them.
package queue

// Event types carried in the envelope's "event" field.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status.changed"
)

// OrderEvent is the envelope published for every order lifecycle
// change. It carries enough context for downstream consumers to log
// or notify without querying the primary database. Status fields are
// only set for status-change events.
type OrderEvent struct {
	Event       string `json:"event"`
	OrderID     uint64 `json:"order_id"`
	UserID      uint64 `json:"user_id"`
	SupplierID  uint64 `json:"supplier_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Currency    string `json:"currency"`
	OldStatus   string `json:"old_status,omitempty"`
	NewStatus   string `json:"new_status,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
