package session

import (
	"fmt"

	"github.com/moewai/aquaflow/internal/model"
)

// View identifiers used by initial-view selection.  The delivery-man
// landing view ("route", the driver's stop checklist) is distinct from the
// "delivery" navigation entry that opens route planning for office roles.
const (
	ViewDashboard = "dashboard"
	ViewOrders    = "orders"
	ViewRoute     = "route"
)

// NavEntry is one row of the navigation table: a view id, its label, and
// the roles allowed to see it.  Roles is not serialized; API responses
// expose only id and label.
type NavEntry struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Roles []model.Role `json:"-"`
}

// navTable is the single source of truth for which roles see which
// navigation entries.  Declaration order is the order entries appear in
// menus, and the role sets double as the route-level allow-lists enforced
// by the server.
var navTable = []NavEntry{
	{ID: "dashboard", Label: "Dashboard", Roles: []model.Role{model.RolePlatformAdmin, model.RoleFactoryOwner, model.RoleFactoryAdmin, model.RoleAgent}},
	{ID: "factories", Label: "Factories", Roles: []model.Role{model.RolePlatformAdmin}},
	{ID: "production", Label: "Production", Roles: []model.Role{model.RoleFactoryOwner, model.RoleFactoryAdmin}},
	{ID: "inventory", Label: "Inventory", Roles: []model.Role{model.RoleFactoryOwner, model.RoleFactoryAdmin, model.RoleAgent}},
	{ID: "orders", Label: "Water Orders", Roles: []model.Role{model.RoleFactoryOwner, model.RoleFactoryAdmin, model.RoleAgent, model.RolePublicCustomer}},
	{ID: "delivery", Label: "Route Plan", Roles: []model.Role{model.RoleFactoryAdmin, model.RoleAgent, model.RoleDeliveryMan}},
	{ID: "users", Label: "Team", Roles: []model.Role{model.RoleFactoryOwner, model.RoleAgent}},
	{ID: "outlets", Label: "Outlets", Roles: []model.Role{model.RoleAgent}},
}

// VisibleNavigationEntries filters the navigation table down to the
// entries whose allowed-role set contains role, preserving declaration
// order.
func VisibleNavigationEntries(role model.Role) []NavEntry {
	out := make([]NavEntry, 0, len(navTable))
	for _, entry := range navTable {
		for _, r := range entry.Roles {
			if r == role {
				out = append(out, entry)
				break
			}
		}
	}
	return out
}

// RolesForEntry returns the allowed-role set of a navigation entry.  The
// router uses it to gate the entry's routes with the same allow-list the
// menu is built from.  Unknown entry ids panic at wiring time.
func RolesForEntry(id string) []model.Role {
	for _, entry := range navTable {
		if entry.ID == id {
			return entry.Roles
		}
	}
	panic(fmt.Sprintf("session: no navigation entry %q", id))
}

// InitialView maps a role to the view shown right after login.  The
// mapping is total over the closed role set: customers land on ordering,
// drivers on their route, everyone else on the dashboard.  A role outside
// the set is a configuration error and is reported loudly instead of
// silently defaulting.
func InitialView(role model.Role) (string, error) {
	switch role {
	case model.RolePublicCustomer:
		return ViewOrders, nil
	case model.RoleDeliveryMan:
		return ViewRoute, nil
	case model.RolePlatformAdmin, model.RoleFactoryOwner, model.RoleFactoryAdmin, model.RoleAgent:
		return ViewDashboard, nil
	default:
		return "", fmt.Errorf("session: no initial view for role %q", role)
	}
}
