package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"batchboard/b/domain"
)

type pipelineRequest struct {
	Supplier     string `json:"supplier"`
	Size         string `json:"size"`
	Units        int64  `json:"units"`
	BatchNumber  string `json:"batch_number"`
	ExpectedDate string `json:"expected_date"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

func (req *pipelineRequest) validate() string {
	if strings.TrimSpace(req.Supplier) == "" {
		return "supplier is required"
	}
	if strings.TrimSpace(req.Size) == "" {
		return "size is required"
	}
	if req.Units <= 0 {
		return "units must be greater than zero"
	}
	if req.Status == "" {
		req.Status = domain.StatusOrdered
	}
	if !domain.ValidStatus(req.Status) {
		return "status must be one of Ordered, In Transit, Delayed, Received"
	}
	return ""
}

func (h *Handler) listPipeline(w http.ResponseWriter, r *http.Request) {
	orders := []domain.PipelinePurchase{}
	if err := h.db.Select(&orders, `SELECT * FROM pipeline_purchases ORDER BY created_at DESC, id DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list pipeline orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) createPipeline(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO pipeline_purchases (supplier, size, units, batch_number, expected_date, status, notes) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Supplier, req.Size, req.Units, req.BatchNumber, req.ExpectedDate, req.Status, req.Notes).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create pipeline order")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "status": req.Status})
}

func (h *Handler) updatePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pipeline id")
		return
	}
	var req pipelineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	query := h.db.Rebind(`UPDATE pipeline_purchases SET supplier = ?, size = ?, units = ?, batch_number = ?, expected_date = ?, status = ?, notes = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.Supplier, req.Size, req.Units, req.BatchNumber, req.ExpectedDate, req.Status, req.Notes, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update pipeline order")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deletePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pipeline id")
		return
	}
	query := h.db.Rebind(`DELETE FROM pipeline_purchases WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete pipeline order")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) updatePipelineStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pipeline id")
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !domain.ValidStatus(payload.Status) {
		respondError(w, http.StatusBadRequest, "status must be one of Ordered, In Transit, Delayed, Received")
		return
	}
	query := h.db.Rebind(`UPDATE pipeline_purchases SET status = ? WHERE id = ?`)
	res, err := h.db.Exec(query, payload.Status, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update status")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		respondError(w, http.StatusNotFound, "pipeline order not found")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

// receivePipeline marks an order Received and books the corresponding
// purchase in the same transaction. The request carries the landed cost
// per pack.
func (h *Handler) receivePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pipeline id")
		return
	}
	var payload struct {
		Cost       decimal.Decimal `json:"cost"`
		ExpiryDate string          `json:"expiry_date"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Cost.IsNegative() {
		respondError(w, http.StatusBadRequest, "cost must not be negative")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	var order domain.PipelinePurchase
	query := tx.Rebind(`SELECT * FROM pipeline_purchases WHERE id = ?`)
	if err := tx.Get(&order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "pipeline order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load pipeline order")
		return
	}
	if order.Status == domain.StatusReceived {
		respondError(w, http.StatusConflict, "order already received")
		return
	}

	var purchaseID int64
	query = tx.Rebind(`INSERT INTO purchases (supplier, size, batch_number, expiry_date, units, cost) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := tx.QueryRowx(query, order.Supplier, order.Size, order.BatchNumber, payload.ExpiryDate, order.Units, payload.Cost).Scan(&purchaseID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to book purchase")
		return
	}

	query = tx.Rebind(`UPDATE pipeline_purchases SET status = ? WHERE id = ?`)
	if _, err := tx.Exec(query, domain.StatusReceived, order.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update status")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize receipt")
		return
	}

	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{
		"purchase_id": purchaseID,
		"status":      domain.StatusReceived,
	})
}
