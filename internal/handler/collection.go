package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moewai/aquaflow/internal/middleware"
	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/store"
)

// RegisterCollection mounts the generic management CRUD for one typed
// collection under /<name>, gated by the given role set.  This is the
// server-side counterpart of the management tables: list, fetch, create,
// shallow-merge patch, and delete, all statically typed per collection.
func RegisterCollection[T any](g *echo.Group, col *store.Collection[T], roles []model.Role) {
	crud := g.Group("/"+col.Name(), middleware.RequireRole(roles...))
	crud.GET("", listRecords(col))
	crud.GET("/:id", getRecord(col))
	crud.POST("", createRecord(col))
	crud.PATCH("/:id", patchRecord(col))
	crud.DELETE("/:id", deleteRecord(col))
}

func listRecords[T any](col *store.Collection[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := reqContext(c)
		defer cancel()
		items, err := col.All(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
}

func getRecord[T any](col *store.Collection[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := reqContext(c)
		defer cancel()
		rec, ok, err := col.Get(ctx, c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusOK, rec)
	}
}

func createRecord[T any](col *store.Collection[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var rec T
		if err := c.Bind(&rec); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		ctx, cancel := reqContext(c)
		defer cancel()
		created, err := col.Create(ctx, rec)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
		return c.JSON(http.StatusCreated, created)
	}
}

func patchRecord[T any](col *store.Collection[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch map[string]any
		if err := c.Bind(&patch); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		if len(patch) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty patch"})
		}
		// The record id is taken from the path, never from the body.
		delete(patch, "id")
		ctx, cancel := reqContext(c)
		defer cancel()
		updated, ok, err := col.Update(ctx, c.Param("id"), patch)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusOK, updated)
	}
}

func deleteRecord[T any](col *store.Collection[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := reqContext(c)
		defer cancel()
		deleted, err := col.Delete(ctx, c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				return c.JSON(http.StatusConflict, echo.Map{"error": strings.TrimSpace(err.Error())})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
	}
}
