package domain

import "github.com/shopspring/decimal"

// Purchase is a received batch from a supplier. Units are packs, cost is
// per pack.
type Purchase struct {
	ID          int64           `db:"id" json:"id"`
	Supplier    string          `db:"supplier" json:"supplier"`
	Size        string          `db:"size" json:"size"`
	BatchNumber string          `db:"batch_number" json:"batch_number"`
	ExpiryDate  string          `db:"expiry_date" json:"expiry_date"`
	Units       int64           `db:"units" json:"units"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
}
