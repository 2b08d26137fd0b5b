package domain

// StockHold is a committed-but-unsold reservation. It has the shape of a
// Sale minus the price. RevertedFrom and OriginalSaleID are set when the
// hold was produced by reverting a sale.
type StockHold struct {
	ID             int64   `db:"id" json:"id"`
	Customer       string  `db:"customer" json:"customer"`
	Country        string  `db:"country" json:"country"`
	Size           string  `db:"size" json:"size"`
	BatchNumber    string  `db:"batch_number" json:"batch_number"`
	Units          int64   `db:"units" json:"units"`
	RevertedFrom   *string `db:"reverted_from" json:"reverted_from,omitempty"`
	OriginalSaleID *int64  `db:"original_sale_id" json:"original_sale_id,omitempty"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
}
