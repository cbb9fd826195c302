package handler // handler defines http handlers

import (
	"context" // context carries deadlines into store calls
	"errors"  // errors provides sentinel values used below
	"time"    // time bounds each request's store access

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/moewai/aquaflow/internal/model" // model defines the domain records
	"github.com/moewai/aquaflow/internal/store" // store holds the persisted collections
)

// storeTimeout bounds every store access made on behalf of one request.
const storeTimeout = 5 * time.Second

// errNoIdentity is returned when the JWT middleware did not leave a usable
// user id in the context.
var errNoIdentity = errors.New("invalid user_id in context")

// reqContext derives a bounded context for store calls from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// getUserID extracts the authenticated user id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errNoIdentity
}

// currentUser resolves the authenticated user's record from the users
// collection.
func currentUser(ctx context.Context, c echo.Context, users *store.Collection[model.User]) (model.User, error) {
	uid, err := getUserID(c)
	if err != nil {
		return model.User{}, err
	}
	u, ok, err := users.Get(ctx, uid)
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		return model.User{}, errNoIdentity
	}
	return u, nil
}

// scopeOrders filters orders down to what the given user may see: the
// platform admin sees everything, factory staff see their factory's
// orders, agents see their assigned orders, customers and drivers see
// orders they placed or deliver for their factory.
func scopeOrders(orders []model.Order, u model.User) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		switch u.Role {
		case model.RolePlatformAdmin:
			out = append(out, o)
		case model.RoleFactoryOwner, model.RoleFactoryAdmin, model.RoleDeliveryMan:
			if o.FactoryID == u.FactoryID {
				out = append(out, o)
			}
		case model.RoleAgent:
			if o.AgentID != "" && o.AgentID == u.AgentID {
				out = append(out, o)
			}
		case model.RolePublicCustomer:
			if o.CustomerID == u.ID {
				out = append(out, o)
			}
		}
	}
	return out
}
