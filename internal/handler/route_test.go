package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/store"
)

// seedRouteDay inserts one out-for-delivery order due today and one already
// delivered today.
func seedRouteDay(t *testing.T, reg *store.Registry) model.Order {
	t.Helper()
	ctx := context.Background()
	open, err := reg.Orders.Create(ctx, model.Order{
		CustomerID: "u5", AgentID: "a1", FactoryID: "f1",
		Items:       []model.OrderItem{{ProductID: "p1", ProductName: "20L Drinking Water", Quantity: 3, UnitPrice: 2.50}},
		TotalAmount: 7.50, DeliveryDate: today(),
		Status: model.OrderOutForDelivery, PaymentStatus: model.PaymentUnpaid, DeliveryAddress: "12 Lake Rd",
	})
	require.NoError(t, err)
	_, err = reg.Orders.Create(ctx, model.Order{
		CustomerID: "u9", FactoryID: "f1",
		Items:       []model.OrderItem{{ProductID: "p2", ProductName: "5L Refill Pack", Quantity: 1, UnitPrice: 1.20}},
		TotalAmount: 1.20, DeliveryDate: today(),
		Status: model.OrderDelivered, PaymentStatus: model.PaymentPaid, DeliveryAddress: "9 East Bank",
	})
	require.NoError(t, err)
	return open
}

func TestRouteStopsForToday(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewRouteHandler(reg)
	open := seedRouteDay(t, reg)

	// An order due tomorrow never appears on today's route.
	_, err := reg.Orders.Create(context.Background(), model.Order{
		CustomerID: "u5", FactoryID: "f1", DeliveryDate: "2099-01-01",
		Status: model.OrderOutForDelivery, DeliveryAddress: "later",
	})
	require.NoError(t, err)

	c, rec := jsonCtx(echo.New(), http.MethodGet, "/v1/route", "")
	require.NoError(t, h.Stops(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date  string `json:"date"`
		Stops []struct {
			OrderID    string `json:"order_id"`
			Address    string `json:"address"`
			WaterDue   int    `json:"water_due"`
			BottlesDue int    `json:"bottles_due"`
		} `json:"stops"`
		Completed int `json:"completed"`
		Total     int `json:"total"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, today(), resp.Date)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Stops, 1)
	assert.Equal(t, open.ID, resp.Stops[0].OrderID)
	assert.Equal(t, "12 Lake Rd", resp.Stops[0].Address)
	assert.Equal(t, 3, resp.Stops[0].WaterDue)
	assert.Equal(t, 3, resp.Stops[0].BottlesDue)
}

func TestRouteCompleteDeliversOrder(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewRouteHandler(reg)
	open := seedRouteDay(t, reg)

	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/route/"+open.ID+"/complete",
		`{"bottle_returns":2,"paid":true}`)
	c.SetParamNames("id")
	c.SetParamValues(open.ID)
	require.NoError(t, h.Complete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Order
	decodeBody(t, rec, &got)
	assert.Equal(t, model.OrderDelivered, got.Status)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, 2, got.BottleReturns)

	// Collected empties return to the product's empty stock.
	p1, _, err := reg.Products.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 452, p1.EmptyBottleStock)

	// A delivered order cannot be completed twice.
	c, rec = jsonCtx(echo.New(), http.MethodPost, "/v1/route/"+open.ID+"/complete", `{"bottle_returns":0}`)
	c.SetParamNames("id")
	c.SetParamValues(open.ID)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouteCompleteSpreadsBottleReturns(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewRouteHandler(reg)
	open, err := reg.Orders.Create(context.Background(), model.Order{
		CustomerID: "u5", AgentID: "a1", FactoryID: "f1",
		Items: []model.OrderItem{
			{ProductID: "p1", ProductName: "20L Drinking Water", Quantity: 3, UnitPrice: 2.50},
			{ProductID: "p2", ProductName: "5L Refill Pack", Quantity: 1, UnitPrice: 1.20},
		},
		TotalAmount: 8.70, DeliveryDate: today(),
		Status: model.OrderOutForDelivery, PaymentStatus: model.PaymentUnpaid, DeliveryAddress: "12 Lake Rd",
	})
	require.NoError(t, err)

	// Five empties came back for four bottles out: the first line takes
	// its full three, the last line absorbs the rest.
	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/route/"+open.ID+"/complete", `{"bottle_returns":5}`)
	c.SetParamNames("id")
	c.SetParamValues(open.ID)
	require.NoError(t, h.Complete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx := context.Background()
	p1, _, err := reg.Products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 453, p1.EmptyBottleStock)
	p2, _, err := reg.Products.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 102, p2.EmptyBottleStock)
}

func TestRouteCompleteValidation(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewRouteHandler(reg)

	// Unknown order.
	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/route/o99/complete", `{"bottle_returns":0}`)
	c.SetParamNames("id")
	c.SetParamValues("o99")
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Pending orders are not on the route yet.
	pending, err := reg.Orders.Create(context.Background(), model.Order{
		CustomerID: "u5", FactoryID: "f1", DeliveryDate: today(),
		Status: model.OrderPending, DeliveryAddress: "12 Lake Rd",
	})
	require.NoError(t, err)
	c, rec = jsonCtx(echo.New(), http.MethodPost, "/v1/route/"+pending.ID+"/complete", `{"bottle_returns":0}`)
	c.SetParamNames("id")
	c.SetParamValues(pending.ID)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Negative returns are rejected before any lookup.
	c, rec = jsonCtx(echo.New(), http.MethodPost, "/v1/route/"+pending.ID+"/complete", `{"bottle_returns":-1}`)
	c.SetParamNames("id")
	c.SetParamValues(pending.ID)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
