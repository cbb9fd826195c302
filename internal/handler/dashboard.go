package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/store"
)

// DashboardHandler aggregates the metrics shown on the landing view.
// Every figure is computed over the caller's order scope, so a factory
// owner and the platform admin see different totals from the same data.
type DashboardHandler struct {
	Reg *store.Registry
}

func NewDashboardHandler(reg *store.Registry) *DashboardHandler {
	return &DashboardHandler{Reg: reg}
}

// productStat is one row of the stock table on the dashboard.
type productStat struct {
	ProductID        string `json:"product_id"`
	Name             string `json:"name"`
	Stock            int    `json:"stock"`
	EmptyBottleStock int    `json:"empty_bottle_stock"`
}

// Metrics handles GET /v1/dashboard.
func (h *DashboardHandler) Metrics(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := currentUser(ctx, c, h.Reg.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown identity"})
	}

	all, err := h.Reg.Orders.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load orders failed"})
	}
	orders := scopeOrders(all, u)

	var pending, outFor, delivered int
	var revenue, unpaid float64
	for _, o := range orders {
		switch o.Status {
		case model.OrderPending, model.OrderProcessing:
			pending++
		case model.OrderOutForDelivery:
			outFor++
		case model.OrderDelivered:
			delivered++
			revenue += o.TotalAmount
		}
		if o.PaymentStatus == model.PaymentUnpaid && o.Status != model.OrderCancelled {
			unpaid += o.TotalAmount
		}
	}

	products, err := h.Reg.Products.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load products failed"})
	}
	stats := make([]productStat, 0, len(products))
	for _, p := range products {
		// Factory staff only see their own factory's stock.
		if u.Role != model.RolePlatformAdmin && u.FactoryID != "" && p.FactoryID != u.FactoryID {
			continue
		}
		stats = append(stats, productStat{
			ProductID:        p.ID,
			Name:             p.Name,
			Stock:            p.Stock,
			EmptyBottleStock: p.EmptyBottleStock,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders": echo.Map{
			"total":            len(orders),
			"pending":          pending,
			"out_for_delivery": outFor,
			"delivered":        delivered,
		},
		"revenue":       revenue,
		"unpaid_amount": unpaid,
		"products":      stats,
	})
}
