package model

// Role identifies one of the fixed user categories of the platform.  The
// set is closed: every user carries exactly one role, the role never
// changes after the user is created, and all role-based behaviour (initial
// view, navigation visibility, route access) is keyed off these values.
// The string values match what is stored inside the snapshot.
type Role string

const (
	RolePlatformAdmin  Role = "PlatformAdmin"  // operates the whole platform
	RoleFactoryOwner   Role = "FactoryOwner"   // owns one or more factories
	RoleFactoryAdmin   Role = "FactoryAdmin"   // runs day-to-day factory operations
	RoleAgent          Role = "Agent"          // distributes in a township on commission
	RoleDeliveryMan    Role = "DeliveryMan"    // drives the daily delivery route
	RolePublicCustomer Role = "PublicCustomer" // orders water for home delivery
)

// AllRoles lists every role in the closed set.  Code that maps over roles
// (initial views, tests) ranges over this slice so that adding a role
// without extending the dependent mappings fails loudly.
var AllRoles = []Role{
	RolePlatformAdmin,
	RoleFactoryOwner,
	RoleFactoryAdmin,
	RoleAgent,
	RoleDeliveryMan,
	RolePublicCustomer,
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}
