package store

import (
	"encoding/json"

	"github.com/moewai/aquaflow/internal/model"
)

// Seed fixtures written on first run.  These are the sample businesses the
// platform demos with; order within each list is meaningful and preserved
// by the snapshot.

var seedUsers = []model.User{
	{ID: "u1", Name: "Super Admin", Email: "admin@aquaflow.com", Role: model.RolePlatformAdmin},
	{ID: "u2", Name: "John Owner", Email: "john@everest.com", Role: model.RoleFactoryOwner, FactoryID: "f1"},
	{ID: "u3", Name: "Alice Agent", Email: "alice@agent.com", Role: model.RoleAgent, FactoryID: "f1", AgentID: "a1"},
	{ID: "u4", Name: "Mike Driver", Email: "mike@delivery.com", Role: model.RoleDeliveryMan, FactoryID: "f1"},
	{ID: "u5", Name: "Casual Bob", Email: "bob@gmail.com", Role: model.RolePublicCustomer},
}

var seedFactories = []model.Factory{
	{ID: "f1", Name: "Everest Springs", Location: "Industrial Zone 1", OwnerID: "u2", Status: model.FactoryActive},
	{ID: "f2", Name: "Crystal Blue", Location: "East Riverside", OwnerID: "u2", Status: model.FactoryActive},
}

var seedProducts = []model.Product{
	{ID: "p1", Name: "20L Drinking Water", Price: 2.50, FactoryID: "f1", Stock: 1200, EmptyBottleStock: 450},
	{ID: "p2", Name: "5L Refill Pack", Price: 1.20, FactoryID: "f1", Stock: 800, EmptyBottleStock: 100},
	{ID: "p3", Name: "20L Drinking Water", Price: 2.60, FactoryID: "f2", Stock: 950, EmptyBottleStock: 300},
}

var seedAgents = []model.Agent{
	{ID: "a1", Name: "Alice Distribution", FactoryID: "f1", Township: "North District", CommissionRate: 0.10},
}

var seedOutlets = []model.Outlet{
	{ID: "out-1", Name: "Downtown Market", Code: "DT01", Address: "123 Main St", OwnerName: "Sam Shopkeeper", Phone: "555-0101"},
}

// seedSnapshot builds the first-run snapshot.  Orders start empty; the
// productionBatches collection is created lazily on first write.
func seedSnapshot() snapshot {
	return snapshot{
		CollectionUsers:     marshalSeed(seedUsers),
		CollectionFactories: marshalSeed(seedFactories),
		CollectionProducts:  marshalSeed(seedProducts),
		CollectionAgents:    marshalSeed(seedAgents),
		CollectionOrders:    []json.RawMessage{},
		CollectionOutlets:   marshalSeed(seedOutlets),
	}
}

// marshalSeed encodes a fixture slice into raw snapshot records.  The
// fixtures are literals under our control, so a marshal failure is a
// programming error and panics at startup.
func marshalSeed[T any](recs []T) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(recs))
	for _, rec := range recs {
		raw, err := json.Marshal(rec)
		if err != nil {
			panic(err)
		}
		out = append(out, raw)
	}
	return out
}
