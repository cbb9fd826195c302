package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/queue"
	queue_publisher "github.com/moewai/aquaflow/internal/service"
	"github.com/moewai/aquaflow/internal/store"
)

// RouteHandler serves the driver's daily checklist.  Stops are derived
// from the orders collection: every out-for-delivery order due today is a
// stop, and completing a stop is the one path that marks an order
// delivered.
type RouteHandler struct {
	Reg *store.Registry
}

func NewRouteHandler(reg *store.Registry) *RouteHandler {
	return &RouteHandler{Reg: reg}
}

// routeStop is one entry of the checklist.
type routeStop struct {
	OrderID       string  `json:"order_id"`
	Address       string  `json:"address"`
	WaterDue      int     `json:"water_due"`
	BottlesDue    int     `json:"bottles_due"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentStatus string  `json:"payment_status"`
}

// today returns the route date in the snapshot's date format.
func today() string { return time.Now().UTC().Format("2006-01-02") }

// Stops handles GET /v1/route.  The response carries the remaining stops
// plus completion counters ("3/5 delivered") for the day.
func (h *RouteHandler) Stops(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	orders, err := h.Reg.Orders.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load orders failed"})
	}

	day := today()
	stops := make([]routeStop, 0)
	completed, total := 0, 0
	for _, o := range orders {
		if o.DeliveryDate != day {
			continue
		}
		switch o.Status {
		case model.OrderDelivered:
			completed++
			total++
		case model.OrderOutForDelivery:
			total++
			due := 0
			for _, it := range o.Items {
				due += it.Quantity
			}
			stops = append(stops, routeStop{
				OrderID:       o.ID,
				Address:       o.DeliveryAddress,
				WaterDue:      due,
				BottlesDue:    due, // one empty expected back per bottle out
				TotalAmount:   o.TotalAmount,
				PaymentStatus: o.PaymentStatus,
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":      day,
		"stops":     stops,
		"completed": completed,
		"total":     total,
	})
}

type completeReq struct {
	BottleReturns int  `json:"bottle_returns"`
	Paid          bool `json:"paid"`
}

// Complete handles POST /v1/route/:id/complete.  It marks an
// out-for-delivery order delivered, records the empties collected, and
// returns them to the product's empty-bottle stock.
func (h *RouteHandler) Complete(c echo.Context) error {
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.BottleReturns < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bottle_returns must not be negative"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	patch := map[string]any{
		"status":        model.OrderDelivered,
		"bottleReturns": req.BottleReturns,
	}
	if req.Paid {
		patch["paymentStatus"] = model.PaymentPaid
	}
	// Guarding the update on the current status keeps completion
	// one-shot: of two racing drivers only one flips the order.
	updated, ok, err := h.Reg.Orders.UpdateIf(ctx, c.Param("id"), "status", model.OrderOutForDelivery, patch)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "order is not out for delivery"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update order failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}

	// Hand collected empties back line by line, each line's product
	// credited up to the bottles it sent out; any surplus lands on the
	// last line.
	remaining := req.BottleReturns
	for i, it := range updated.Items {
		credit := it.Quantity
		if i == len(updated.Items)-1 || credit > remaining {
			credit = remaining
		}
		if credit == 0 {
			continue
		}
		remaining -= credit
		p, found, err := h.Reg.Products.Get(ctx, it.ProductID)
		if err != nil || !found {
			c.Logger().Errorf("route: empty-bottle credit lookup for product %s failed: %v", it.ProductID, err)
			continue
		}
		if _, _, err := h.Reg.Products.Update(ctx, p.ID, map[string]any{
			"emptyBottleStock": p.EmptyBottleStock + credit,
		}); err != nil {
			c.Logger().Errorf("route: empty-bottle credit for product %s failed: %v", p.ID, err)
		}
	}

	go func(o model.Order) {
		_ = queue_publisher.PublishOrderEvent(context.Background(), orderEvent(queue.EventOrderDelivered, o))
	}(updated)

	return c.JSON(http.StatusOK, updated)
}
