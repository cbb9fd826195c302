package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/planner"
	"github.com/moewai/aquaflow/internal/store"
)

// ProductionHandler manages production batches and the AI-assisted daily
// plan.  All operations are scoped to the caller's factory; only the
// platform admin crosses factory lines.
type ProductionHandler struct {
	Reg     *store.Registry
	Planner *planner.Planner
}

func NewProductionHandler(reg *store.Registry, p *planner.Planner) *ProductionHandler {
	return &ProductionHandler{Reg: reg, Planner: p}
}

// ListBatches handles GET /v1/production/batches.
func (h *ProductionHandler) ListBatches(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := currentUser(ctx, c, h.Reg.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown identity"})
	}

	all, err := h.Reg.Batches.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load batches failed"})
	}
	if u.Role == model.RolePlatformAdmin {
		return c.JSON(http.StatusOK, all)
	}
	out := make([]model.ProductionBatch, 0, len(all))
	for _, b := range all {
		if b.FactoryID == u.FactoryID {
			out = append(out, b)
		}
	}
	return c.JSON(http.StatusOK, out)
}

type createBatchReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date"`
}

// CreateBatch handles POST /v1/production/batches.  The batch lands in
// draft status; the factory confirms and completes it later through the
// generic collection PATCH.
func (h *ProductionHandler) CreateBatch(c echo.Context) error {
	var req createBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and a positive quantity are required"})
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := currentUser(ctx, c, h.Reg.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown identity"})
	}

	p, ok, err := h.Reg.Products.Get(ctx, req.ProductID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load product failed"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product: " + req.ProductID})
	}
	factoryID := u.FactoryID
	if u.Role == model.RolePlatformAdmin {
		factoryID = p.FactoryID
	}
	if p.FactoryID != factoryID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product belongs to another factory"})
	}

	batch, err := h.Reg.Batches.Create(ctx, model.ProductionBatch{
		FactoryID: factoryID,
		Date:      req.Date,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    model.BatchDraft,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create batch failed"})
	}
	return c.JSON(http.StatusCreated, batch)
}

// Plan handles POST /v1/production/plan.  It aggregates the past seven
// days of demand for the caller's factory and asks the planner for
// tomorrow's batch list.
func (h *ProductionHandler) Plan(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := currentUser(ctx, c, h.Reg.Users)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown identity"})
	}

	factory, ok, err := h.Reg.Factories.Get(ctx, u.FactoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load factory failed"})
	}
	factoryName := "all factories"
	if ok {
		factoryName = factory.Name
	} else if u.Role != model.RolePlatformAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no factory assigned"})
	}

	orders, err := h.Reg.Orders.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load orders failed"})
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")
	totals := map[string]int{}
	names := make([]string, 0)
	for _, o := range orders {
		if o.Status == model.OrderCancelled || o.DeliveryDate < cutoff {
			continue
		}
		if u.Role != model.RolePlatformAdmin && o.FactoryID != u.FactoryID {
			continue
		}
		for _, it := range o.Items {
			if _, seen := totals[it.ProductName]; !seen {
				names = append(names, it.ProductName)
			}
			totals[it.ProductName] += it.Quantity
		}
	}
	demand := make([]planner.DemandEntry, 0, len(names))
	for _, n := range names {
		demand = append(demand, planner.DemandEntry{ProductName: n, Quantity: totals[n]})
	}

	plan, err := h.Planner.GeneratePlan(c.Request().Context(), factoryName, demand)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "plan generation failed: " + strings.TrimSpace(err.Error())})
	}
	return c.JSON(http.StatusOK, plan)
}
