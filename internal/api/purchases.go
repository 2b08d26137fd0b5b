package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"batchboard/b/domain"
)

type purchaseRequest struct {
	Supplier    string          `json:"supplier"`
	Size        string          `json:"size"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  string          `json:"expiry_date"`
	Units       int64           `json:"units"`
	Cost        decimal.Decimal `json:"cost"`
}

func (req *purchaseRequest) validate() string {
	if strings.TrimSpace(req.Supplier) == "" {
		return "supplier is required"
	}
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

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	purchases := []domain.Purchase{}
	if err := h.db.Select(&purchases, `SELECT * FROM purchases ORDER BY created_at DESC, id DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list purchases")
		return
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO purchases (supplier, size, batch_number, expiry_date, units, cost) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Supplier, req.Size, req.BatchNumber, req.ExpiryDate, req.Units, req.Cost).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create purchase")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	query := h.db.Rebind(`UPDATE purchases SET supplier = ?, size = ?, batch_number = ?, expiry_date = ?, units = ?, cost = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.Supplier, req.Size, req.BatchNumber, req.ExpiryDate, req.Units, req.Cost, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update purchase")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	query := h.db.Rebind(`DELETE FROM purchases WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete purchase")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
