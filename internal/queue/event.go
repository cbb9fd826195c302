// Package queue defines message payloads exchanged over the message broker.
package queue

// Event names carried in OrderEvent.Event.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderDelivered = "order.delivered"
)

// OrderEvent is published when an order is placed or delivered.  It
// carries enough information for downstream consumers to log, notify, or
// feed analytics without reading the snapshot.
type OrderEvent struct {
	Event         string   `json:"event"`
	OrderID       string   `json:"order_id"`
	CustomerID    string   `json:"customer_id"`
	AgentID       string   `json:"agent_id"`
	FactoryID     string   `json:"factory_id"`
	Items         []string `json:"items"`
	TotalAmount   float64  `json:"total_amount"`
	DeliveryDate  string   `json:"delivery_date"`
	BottleReturns int      `json:"bottle_returns,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}
