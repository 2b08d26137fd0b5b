package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"batchboard/b/domain"
	"batchboard/b/internal/metrics"
)

type adjustmentRequest struct {
	BatchNumber string          `json:"batch_number"`
	Size        string          `json:"size"`
	Units       int64           `json:"units"`
	Cost        decimal.Decimal `json:"cost"`
	Reason      string          `json:"reason"`
	Recipient   string          `json:"recipient"`
}

func (req *adjustmentRequest) validate() string {
	if strings.TrimSpace(req.Size) == "" {
		return "size is required"
	}
	if req.Units <= 0 {
		return "units must be greater than zero"
	}
	if req.Cost.IsNegative() {
		return "cost must not be negative"
	}
	return ""
}

func (h *Handler) listAdjustments(w http.ResponseWriter, r *http.Request) {
	adjustments := []domain.StockAdjustment{}
	if err := h.db.Select(&adjustments, `SELECT * FROM adjustments ORDER BY created_at DESC, id DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list adjustments")
		return
	}
	respondJSON(w, http.StatusOK, adjustments)
}

func (h *Handler) createAdjustment(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	// When no cost is supplied, snapshot the current average purchase
	// cost of the size so the write-off value survives later purchases.
	cost := req.Cost
	if cost.IsZero() {
		var purchases []domain.Purchase
		if err := h.db.Select(&purchases, `SELECT * FROM purchases`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load purchases")
			return
		}
		cost = metrics.AverageCosts(purchases)[req.Size]
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO adjustments (batch_number, size, units, cost, reason, recipient) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.BatchNumber, req.Size, req.Units, cost, req.Reason, req.Recipient).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create adjustment")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "cost": cost})
}

func (h *Handler) updateAdjustment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid adjustment id")
		return
	}
	var req adjustmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	query := h.db.Rebind(`UPDATE adjustments SET batch_number = ?, size = ?, units = ?, cost = ?, reason = ?, recipient = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.BatchNumber, req.Size, req.Units, req.Cost, req.Reason, req.Recipient, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update adjustment")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteAdjustment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid adjustment id")
		return
	}
	query := h.db.Rebind(`DELETE FROM adjustments WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete adjustment")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
