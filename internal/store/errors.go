// This file defines sentinel errors and the referential-integrity policy
// shared across store operations.  Not-found is deliberately not an error:
// reads and updates against a missing id report an absent result and the
// caller must check before using, so only persistence failures and
// integrity refusals ever surface as errors.
package store

import "errors"

// ErrConflict is returned when a delete is refused because other records
// still reference the target and the store runs with IntegrityRestrict.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict: record is still referenced")

// IntegrityPolicy decides what happens when a record that other records
// point at is deleted.  The platform's data has never enforced references
// between collections; that looseness stays the default, with an opt-in
// strict mode for deployments that want deletes blocked instead of
// silently orphaning dependents.
type IntegrityPolicy int

const (
	// IntegrityOrphan deletes the record and leaves dependents pointing at
	// a now-missing id.  This is the historical behaviour of the data.
	IntegrityOrphan IntegrityPolicy = iota
	// IntegrityRestrict refuses the delete with ErrConflict while any
	// record in the reference table still points at the target.
	IntegrityRestrict
)

// Reference declares that records of collection From point at records of
// collection To through Field.  Field is the JSON field holding the id; a
// single "array.field" form reaches one level into a list field, which is
// how order line items reference products.
type Reference struct {
	From  string
	Field string
	To    string
}

// DefaultReferences is the reference table of the platform's snapshot
// layout.  It is consulted only under IntegrityRestrict.
var DefaultReferences = []Reference{
	{From: "orders", Field: "customerId", To: "users"},
	{From: "orders", Field: "agentId", To: "agents"},
	{From: "orders", Field: "factoryId", To: "factories"},
	{From: "orders", Field: "items.productId", To: "products"},
	{From: "products", Field: "factoryId", To: "factories"},
	{From: "agents", Field: "factoryId", To: "factories"},
	{From: "users", Field: "factoryId", To: "factories"},
	{From: "productionBatches", Field: "factoryId", To: "factories"},
	{From: "productionBatches", Field: "productId", To: "products"},
}
