package domain

import "github.com/shopspring/decimal"

// Sale is a shipped order, priced per pack. ConvertedFrom and
// OriginalHoldID are set when the sale was produced by converting a
// stock hold, so the audit trail survives the move between collections.
type Sale struct {
	ID             int64           `db:"id" json:"id"`
	Customer       string          `db:"customer" json:"customer"`
	Country        string          `db:"country" json:"country"`
	Size           string          `db:"size" json:"size"`
	BatchNumber    string          `db:"batch_number" json:"batch_number"`
	Units          int64           `db:"units" json:"units"`
	Price          decimal.Decimal `db:"price" json:"price"`
	ConvertedFrom  *string         `db:"converted_from" json:"converted_from,omitempty"`
	OriginalHoldID *int64          `db:"original_hold_id" json:"original_hold_id,omitempty"`
	CreatedAt      string          `db:"created_at" json:"created_at"`
}
