package model

// Product represents one sellable water item produced by a factory.
// Products are records of the "products" collection.  Stock counts both
// filled bottles ready to ship and empty bottles returned by customers
// awaiting refill.
//
// Fields:
//  ID               – unique record identifier.
//  Name             – product display name (e.g. "20L Drinking Water").
//  Price            – unit price; orders copy this value at placement time.
//  FactoryID        – factory producing this product.
//  Stock            – filled bottles on hand.
//  EmptyBottleStock – returned empty bottles on hand.
type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	FactoryID        string  `json:"factoryId"`
	Stock            int     `json:"stock"`
	EmptyBottleStock int     `json:"emptyBottleStock"`
}
