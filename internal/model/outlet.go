package model

// Outlet represents a retail shop served by an agent.  Outlets are records
// of the "outlets" collection and are managed through the generic
// management endpoints.
//
// Fields:
//  ID        – unique record identifier.
//  Name      – shop display name.
//  Code      – short outlet code used on route sheets.
//  Address   – street address of the shop.
//  OwnerName – name of the shopkeeper.
//  Phone     – contact number.
type Outlet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Address   string `json:"address"`
	OwnerName string `json:"ownerName"`
	Phone     string `json:"phone"`
}
