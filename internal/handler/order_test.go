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

func TestPlaceOrderPricesCartServerSide(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewOrderHandler(reg)

	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/orders",
		`{"items":[{"product_id":"p1","quantity":2},{"product_id":"p2","quantity":1}],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Order
	decodeBody(t, rec, &got)
	require.NotEmpty(t, got.ID)
	assert.Equal(t, "u5", got.CustomerID)
	assert.Equal(t, "f1", got.FactoryID)
	assert.Equal(t, "a1", got.AgentID)
	assert.Equal(t, model.OrderPending, got.Status)
	assert.Equal(t, model.PaymentUnpaid, got.PaymentStatus)
	assert.InDelta(t, 6.20, got.TotalAmount, 1e-9)
	require.Len(t, got.Items, 2)
	// Name and unit price are copied from the catalogue at placement time.
	assert.Equal(t, "20L Drinking Water", got.Items[0].ProductName)
	assert.InDelta(t, 2.50, got.Items[0].UnitPrice, 1e-9)

	// Stock was reserved per line.
	ctx := context.Background()
	p1, _, err := reg.Products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1198, p1.Stock)
	p2, _, err := reg.Products.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 799, p2.Stock)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	h := NewOrderHandler(newTestRegistry(t))
	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/orders",
		`{"items":[{"product_id":"p99","quantity":1}],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	h := NewOrderHandler(newTestRegistry(t))
	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/orders",
		`{"items":[{"product_id":"p1","quantity":5000}],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlaceOrderDuplicateLineCart(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewOrderHandler(reg)
	ctx := context.Background()

	// Two lines of the same product sum past its stock of 1200; neither
	// line alone would trip the check.
	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/orders",
		`{"items":[{"product_id":"p1","quantity":700},{"product_id":"p1","quantity":700}],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	p1, _, err := reg.Products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1200, p1.Stock)

	// A duplicate cart that fits reserves the summed quantity exactly.
	c, rec = jsonCtx(echo.New(), http.MethodPost, "/v1/orders",
		`{"items":[{"product_id":"p1","quantity":2},{"product_id":"p1","quantity":3}],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.Order
	decodeBody(t, rec, &got)
	assert.InDelta(t, 12.50, got.TotalAmount, 1e-9)
	require.Len(t, got.Items, 2)
	p1, _, err = reg.Products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1195, p1.Stock)
}

func TestPlaceOrderValidation(t *testing.T) {
	h := NewOrderHandler(newTestRegistry(t))

	// No items.
	c, rec := jsonCtx(echo.New(), http.MethodPost, "/v1/orders", `{"items":[],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing address.
	c, rec = jsonCtx(echo.New(), http.MethodPost, "/v1/orders", `{"items":[{"product_id":"p1","quantity":1}]}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-positive quantity.
	c, rec = jsonCtx(echo.New(), http.MethodPost, "/v1/orders",
		`{"items":[{"product_id":"p1","quantity":0}],"delivery_address":"12 Lake Rd"}`)
	c.Set("user_id", "u5")
	require.NoError(t, h.Place(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// seedOrders inserts one order for Bob at Everest Springs and one foreign
// order at Crystal Blue with no agent.
func seedOrders(t *testing.T, reg *store.Registry) (mine, foreign model.Order) {
	t.Helper()
	ctx := context.Background()
	var err error
	mine, err = reg.Orders.Create(ctx, model.Order{
		CustomerID: "u5", AgentID: "a1", FactoryID: "f1",
		Items:       []model.OrderItem{{ProductID: "p1", ProductName: "20L Drinking Water", Quantity: 2, UnitPrice: 2.50}},
		TotalAmount: 5.00, DeliveryDate: "2026-09-02",
		Status: model.OrderPending, PaymentStatus: model.PaymentUnpaid, DeliveryAddress: "12 Lake Rd",
	})
	require.NoError(t, err)
	foreign, err = reg.Orders.Create(ctx, model.Order{
		CustomerID: "u9", FactoryID: "f2",
		Items:       []model.OrderItem{{ProductID: "p3", ProductName: "20L Drinking Water", Quantity: 1, UnitPrice: 2.60}},
		TotalAmount: 2.60, DeliveryDate: "2026-09-02",
		Status: model.OrderPending, PaymentStatus: model.PaymentUnpaid, DeliveryAddress: "9 East Bank",
	})
	require.NoError(t, err)
	return mine, foreign
}

func TestCatalogListsProducts(t *testing.T) {
	h := NewOrderHandler(newTestRegistry(t))
	c, rec := jsonCtx(echo.New(), http.MethodGet, "/v1/catalog", "")
	require.NoError(t, h.Catalog(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []model.Product `json:"items"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "p1", resp.Items[0].ID)
	assert.InDelta(t, 2.50, resp.Items[0].Price, 1e-9)
}

func TestListOrdersScopedByRole(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewOrderHandler(reg)
	mine, foreign := seedOrders(t, reg)

	list := func(uid string) []model.Order {
		c, rec := jsonCtx(echo.New(), http.MethodGet, "/v1/orders", "")
		c.Set("user_id", uid)
		require.NoError(t, h.List(c))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Items []model.Order `json:"items"`
		}
		decodeBody(t, rec, &resp)
		return resp.Items
	}

	// Platform admin sees everything.
	assert.Len(t, list("u1"), 2)
	// Factory owner and driver see their factory's orders.
	owner := list("u2")
	require.Len(t, owner, 1)
	assert.Equal(t, mine.ID, owner[0].ID)
	assert.Len(t, list("u4"), 1)
	// Agent sees assigned orders only.
	agent := list("u3")
	require.Len(t, agent, 1)
	assert.Equal(t, mine.ID, agent[0].ID)
	// Customer sees own orders only.
	bob := list("u5")
	require.Len(t, bob, 1)
	assert.NotEqual(t, foreign.ID, bob[0].ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	reg := newTestRegistry(t)
	h := NewOrderHandler(reg)
	mine, _ := seedOrders(t, reg)

	c, rec := jsonCtx(echo.New(), http.MethodPatch, "/v1/orders/"+mine.ID, `{"status":"out-for-delivery"}`)
	c.SetParamNames("id")
	c.SetParamValues(mine.ID)
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Order
	decodeBody(t, rec, &got)
	assert.Equal(t, model.OrderOutForDelivery, got.Status)

	// Delivered is reserved for route completion.
	c, rec = jsonCtx(echo.New(), http.MethodPatch, "/v1/orders/"+mine.ID, `{"status":"delivered"}`)
	c.SetParamNames("id")
	c.SetParamValues(mine.ID)
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown order.
	c, rec = jsonCtx(echo.New(), http.MethodPatch, "/v1/orders/o99", `{"status":"processing"}`)
	c.SetParamNames("id")
	c.SetParamValues("o99")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Empty patch.
	c, rec = jsonCtx(echo.New(), http.MethodPatch, "/v1/orders/"+mine.ID, `{}`)
	c.SetParamNames("id")
	c.SetParamValues(mine.ID)
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
