package model

// Order statuses as stored in the snapshot.  An order moves forward
// through these states; delivered and cancelled are terminal.
const (
	OrderPending        = "pending"
	OrderProcessing     = "processing"
	OrderOutForDelivery = "out-for-delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Payment statuses as stored in the snapshot.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// OrderItem is one line of an order.  ProductName and UnitPrice are copied
// from the product at placement time so that later price changes do not
// rewrite history.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Order represents a customer water order.  Orders are records of the
// "orders" collection; the collection is seeded empty and grows as
// customers place orders.
//
// Fields:
//  ID              – unique record identifier.
//  CustomerID      – user who placed the order.
//  AgentID         – agent responsible for fulfilment.
//  FactoryID       – factory supplying the water.
//  Items           – ordered line items.
//  TotalAmount     – sum over Items of Quantity×UnitPrice, computed server side.
//  DeliveryDate    – requested delivery date (YYYY-MM-DD).
//  Status          – one of the order status constants.
//  PaymentStatus   – "unpaid" or "paid".
//  DeliveryAddress – where the driver drops the bottles.
//  BottleReturns   – empty bottles collected at delivery.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customerId"`
	AgentID         string      `json:"agentId"`
	FactoryID       string      `json:"factoryId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryDate    string      `json:"deliveryDate"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	DeliveryAddress string      `json:"deliveryAddress"`
	BottleReturns   int         `json:"bottleReturns"`
}
