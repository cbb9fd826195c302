package store

import "github.com/moewai/aquaflow/internal/model"

// Collection names inside the snapshot.
const (
	CollectionUsers             = "users"
	CollectionFactories         = "factories"
	CollectionProducts          = "products"
	CollectionAgents            = "agents"
	CollectionOrders            = "orders"
	CollectionOutlets           = "outlets"
	CollectionProductionBatches = "productionBatches"
)

// Registry bundles one typed collection per known record type over a
// single store.  Handlers receive the registry instead of the raw store,
// so every read and write is statically checked against the collection's
// concrete type.
type Registry struct {
	Users     *Collection[model.User]
	Factories *Collection[model.Factory]
	Products  *Collection[model.Product]
	Agents    *Collection[model.Agent]
	Orders    *Collection[model.Order]
	Outlets   *Collection[model.Outlet]
	Batches   *Collection[model.ProductionBatch]
}

// NewRegistry builds the typed collections over s.
func NewRegistry(s *Store) *Registry {
	return &Registry{
		Users:     NewCollection[model.User](s, CollectionUsers),
		Factories: NewCollection[model.Factory](s, CollectionFactories),
		Products:  NewCollection[model.Product](s, CollectionProducts),
		Agents:    NewCollection[model.Agent](s, CollectionAgents),
		Orders:    NewCollection[model.Order](s, CollectionOrders),
		Outlets:   NewCollection[model.Outlet](s, CollectionOutlets),
		Batches:   NewCollection[model.ProductionBatch](s, CollectionProductionBatches),
	}
}
