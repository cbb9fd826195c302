package model

// Agent represents a township distribution agent working for a factory on
// commission.  Agents are records of the "agents" collection.  A user with
// RoleAgent points at its agent record through User.AgentID.
//
// Fields:
//  ID             – unique record identifier.
//  Name           – agent business name.
//  FactoryID      – factory the agent distributes for.
//  Township       – area the agent covers.
//  CommissionRate – fraction of order value paid as commission (0.10 = 10%).
type Agent struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	FactoryID      string  `json:"factoryId"`
	Township       string  `json:"township"`
	CommissionRate float64 `json:"commissionRate"`
}
