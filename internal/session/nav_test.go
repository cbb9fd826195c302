package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moewai/aquaflow/internal/model"
)

func entryIDs(entries []NavEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestVisibleNavigationEntriesPerRole(t *testing.T) {
	cases := []struct {
		role model.Role
		want []string
	}{
		{model.RolePlatformAdmin, []string{"dashboard", "factories"}},
		{model.RoleFactoryOwner, []string{"dashboard", "production", "inventory", "orders", "users"}},
		{model.RoleFactoryAdmin, []string{"dashboard", "production", "inventory", "orders", "delivery"}},
		{model.RoleAgent, []string{"dashboard", "inventory", "orders", "delivery", "users", "outlets"}},
		{model.RoleDeliveryMan, []string{"delivery"}},
		{model.RolePublicCustomer, []string{"orders"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.want, entryIDs(VisibleNavigationEntries(tc.role)))
		})
	}
}

func TestVisibleNavigationEntriesUnknownRole(t *testing.T) {
	assert.Empty(t, VisibleNavigationEntries(model.Role("Ghost")))
}

func TestVisibleNavigationKeepsDeclarationOrder(t *testing.T) {
	// Agent sees most entries, so its result exercises ordering across
	// almost the whole table.
	got := entryIDs(VisibleNavigationEntries(model.RoleAgent))
	assert.Equal(t, []string{"dashboard", "inventory", "orders", "delivery", "users", "outlets"}, got)
}

func TestRolesForEntry(t *testing.T) {
	assert.Equal(t, []model.Role{model.RolePlatformAdmin}, RolesForEntry("factories"))
	assert.Contains(t, RolesForEntry("delivery"), model.RoleDeliveryMan)
	assert.NotContains(t, RolesForEntry("orders"), model.RolePlatformAdmin)
}

func TestRolesForEntryUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { RolesForEntry("reports") })
}

func TestInitialViewTotalOverRoleSet(t *testing.T) {
	want := map[model.Role]string{
		model.RolePlatformAdmin:  ViewDashboard,
		model.RoleFactoryOwner:   ViewDashboard,
		model.RoleFactoryAdmin:   ViewDashboard,
		model.RoleAgent:          ViewDashboard,
		model.RoleDeliveryMan:    ViewRoute,
		model.RolePublicCustomer: ViewOrders,
	}
	require.Len(t, want, len(model.AllRoles))
	for _, role := range model.AllRoles {
		view, err := InitialView(role)
		require.NoError(t, err, "role %s", role)
		assert.Equal(t, want[role], view, "role %s", role)
	}
}

func TestInitialViewUnknownRole(t *testing.T) {
	_, err := InitialView(model.Role("Ghost"))
	assert.Error(t, err)
}
