package model

// Factory statuses as stored in the snapshot.
const (
	FactoryActive    = "active"
	FactorySuspended = "suspended"
)

// Factory represents a water bottling plant on the platform.  Factories
// are records of the "factories" collection.
//
// Fields:
//  ID       – unique record identifier.
//  Name     – factory display name.
//  Location – human readable site description.
//  OwnerID  – id of the FactoryOwner user running this factory.
//  Status   – "active" or "suspended".
type Factory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	OwnerID  string `json:"ownerId"`
	Status   string `json:"status"`
}
