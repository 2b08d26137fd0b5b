package domain

// Pipeline purchase statuses.
const (
	StatusOrdered   = "Ordered"
	StatusInTransit = "In Transit"
	StatusDelayed   = "Delayed"
	StatusReceived  = "Received"
)

// ValidStatus reports whether s is a known pipeline status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOrdered, StatusInTransit, StatusDelayed, StatusReceived:
		return true
	}
	return false
}

// PipelinePurchase is an incoming purchase order that has not arrived yet.
type PipelinePurchase struct {
	ID           int64  `db:"id" json:"id"`
	Supplier     string `db:"supplier" json:"supplier"`
	Size         string `db:"size" json:"size"`
	Units        int64  `db:"units" json:"units"`
	BatchNumber  string `db:"batch_number" json:"batch_number"`
	ExpectedDate string `db:"expected_date" json:"expected_date"`
	Status       string `db:"status" json:"status"`
	Notes        string `db:"notes" json:"notes"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}
