package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/queue"
	queue_publisher "github.com/moewai/aquaflow/internal/service"
	"github.com/moewai/aquaflow/internal/store"
)

// OrderHandler implements the ordering flow: customers build a cart and
// place an order, staff advance its status.  All pricing happens server
// side against the products collection; the client only sends product ids
// and quantities.
type OrderHandler struct {
	Reg *store.Registry
}

func NewOrderHandler(reg *store.Registry) *OrderHandler {
	return &OrderHandler{Reg: reg}
}

type orderItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type placeOrderReq struct {
	Items           []orderItemReq `json:"items"`
	DeliveryDate    string         `json:"delivery_date"`
	DeliveryAddress string         `json:"delivery_address"`
}

// Place handles POST /v1/orders and creates an order for the
// authenticated user.
func (h *OrderHandler) Place(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items required"})
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
		}
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delivery_address required"})
	}
	if req.DeliveryDate == "" {
		// Default to next-day delivery, matching the ordering screen.
		req.DeliveryDate = time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	products, err := h.Reg.Products.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load products failed"})
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// A product may appear on several cart lines, so stock is checked and
	// reserved against the summed quantity per product, never per line.
	needed := make(map[string]int, len(req.Items))
	for _, item := range req.Items {
		needed[item.ProductID] += item.Quantity
	}

	// Price the cart: copy product name and unit price into the order so
	// later catalogue changes do not rewrite history.
	var (
		items   []model.OrderItem
		total   float64
		factory string
	)
	for _, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("unknown product %q", item.ProductID)})
		}
		if p.Stock < needed[item.ProductID] {
			return c.JSON(http.StatusConflict, echo.Map{"error": fmt.Sprintf("insufficient stock for %s", p.Name)})
		}
		if factory == "" {
			factory = p.FactoryID
		}
		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
		})
		total += p.Price * float64(item.Quantity)
	}

	// Assign the factory's township agent when one exists.
	agentID := ""
	agents, err := h.Reg.Agents.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load agents failed"})
	}
	for _, a := range agents {
		if a.FactoryID == factory {
			agentID = a.ID
			break
		}
	}

	order := model.Order{
		CustomerID:      uid,
		AgentID:         agentID,
		FactoryID:       factory,
		Items:           items,
		TotalAmount:     total,
		DeliveryDate:    req.DeliveryDate,
		Status:          model.OrderPending,
		PaymentStatus:   model.PaymentUnpaid,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
	}
	created, err := h.Reg.Orders.Create(ctx, order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}

	// Reserve stock once per product from the aggregated quantities.
	for pid, qty := range needed {
		p := byID[pid]
		if _, _, err := h.Reg.Products.Update(ctx, p.ID, map[string]any{"stock": p.Stock - qty}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "adjust stock failed"})
		}
	}

	// Publish the placement event; delivery of the event is best effort
	// and never blocks the order.
	go func(o model.Order) {
		_ = queue_publisher.PublishOrderEvent(context.Background(), orderEvent(queue.EventOrderPlaced, o))
	}(created)

	return c.JSON(http.StatusCreated, created)
}

// Catalog handles GET /v1/catalog and returns the sellable products for
// the ordering screen.  Unlike the inventory CRUD this is readable by
// every role that may place orders.
func (h *OrderHandler) Catalog(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	products, err := h.Reg.Products.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load products failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": products})
}

// List handles GET /v1/orders and returns the orders visible to the
// authenticated user's role.
func (h *OrderHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	user, err := currentUser(ctx, c, h.Reg.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.Reg.Orders.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load orders failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": scopeOrders(orders, user)})
}

type orderStatusReq struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// validOrderStatus lists the statuses staff may set directly.  Delivered
// is excluded: orders become delivered only through route completion.
var validOrderStatus = map[string]bool{
	model.OrderPending:        true,
	model.OrderProcessing:     true,
	model.OrderOutForDelivery: true,
	model.OrderCancelled:      true,
}

// UpdateStatus handles PATCH /v1/orders/:id for staff roles, advancing
// order and payment status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req orderStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	patch := map[string]any{}
	if req.Status != "" {
		if !validOrderStatus[req.Status] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		patch["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		if req.PaymentStatus != model.PaymentUnpaid && req.PaymentStatus != model.PaymentPaid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment_status"})
		}
		patch["paymentStatus"] = req.PaymentStatus
	}
	if len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	updated, ok, err := h.Reg.Orders.Update(ctx, c.Param("id"), patch)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	return c.JSON(http.StatusOK, updated)
}

// orderEvent builds the broker payload for an order.
func orderEvent(name string, o model.Order) queue.OrderEvent {
	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fmt.Sprintf("%dx %s", it.Quantity, it.ProductName))
	}
	return queue.OrderEvent{
		Event:         name,
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		AgentID:       o.AgentID,
		FactoryID:     o.FactoryID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		DeliveryDate:  o.DeliveryDate,
		BottleReturns: o.BottleReturns,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
