package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardMetricsScopedByRole(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewDashboardHandler(reg)
	seedRouteDay(t, reg) // one out-for-delivery (7.50 unpaid), one delivered (1.20 paid), both f1

	metrics := func(uid string) (orders map[string]int, revenue, unpaid float64, products int) {
		c, rec := jsonCtx(echo.New(), http.MethodGet, "/v1/dashboard", "")
		c.Set("user_id", uid)
		require.NoError(t, h.Metrics(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Orders       map[string]int `json:"orders"`
			Revenue      float64        `json:"revenue"`
			UnpaidAmount float64        `json:"unpaid_amount"`
			Products     []productStat  `json:"products"`
		}
		decodeBody(t, rec, &resp)
		return resp.Orders, resp.Revenue, resp.UnpaidAmount, len(resp.Products)
	}

	// Platform admin sees both orders and the whole catalogue.
	orders, revenue, unpaid, products := metrics("u1")
	assert.Equal(t, 2, orders["total"])
	assert.Equal(t, 1, orders["out_for_delivery"])
	assert.Equal(t, 1, orders["delivered"])
	assert.InDelta(t, 1.20, revenue, 1e-9)
	assert.InDelta(t, 7.50, unpaid, 1e-9)
	assert.Equal(t, 3, products)

	// The f1 owner sees the same two orders but only f1 products.
	_, _, _, products = metrics("u2")
	assert.Equal(t, 2, products)

	// Bob sees only his own order and no revenue.
	orders, revenue, unpaid, _ = metrics("u5")
	assert.Equal(t, 1, orders["total"])
	assert.InDelta(t, 0, revenue, 1e-9)
	assert.InDelta(t, 7.50, unpaid, 1e-9)
}

func TestDashboardUnknownIdentity(t *testing.T) {
	h := NewDashboardHandler(newTestRegistry(t))
	c, rec := jsonCtx(echo.New(), http.MethodGet, "/v1/dashboard", "")
	c.Set("user_id", "u99")
	require.NoError(t, h.Metrics(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
