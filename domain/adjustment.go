package domain

import "github.com/shopspring/decimal"

// StockAdjustment is a write-off: samples, damage, corrections. Cost is
// the per-pack average cost snapshotted at the time of the adjustment.
type StockAdjustment struct {
	ID          int64           `db:"id" json:"id"`
	BatchNumber string          `db:"batch_number" json:"batch_number"`
	Size        string          `db:"size" json:"size"`
	Units       int64           `db:"units" json:"units"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Reason      string          `db:"reason" json:"reason"`
	Recipient   string          `db:"recipient" json:"recipient"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
}
