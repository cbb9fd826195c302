package model

// Production batch statuses.
const (
	BatchDraft     = "draft"
	BatchConfirmed = "confirmed"
	BatchCompleted = "completed"
)

// ProductionBatch represents one planned or executed production run of a
// product at a factory.  Batches are records of the "productionBatches"
// collection, which is not part of the seed and is created on first write.
//
// Fields:
//  ID        – unique record identifier.
//  FactoryID – factory running the batch.
//  Date      – production date (YYYY-MM-DD).
//  ProductID – product being produced.
//  Quantity  – units to produce.
//  Status    – "draft", "confirmed" or "completed".
type ProductionBatch struct {
	ID        string `json:"id"`
	FactoryID string `json:"factoryId"`
	Date      string `json:"date"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
}
