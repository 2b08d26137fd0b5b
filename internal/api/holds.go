package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"batchboard/b/domain"
)

type holdRequest struct {
	Customer    string `json:"customer"`
	Country     string `json:"country"`
	Size        string `json:"size"`
	BatchNumber string `json:"batch_number"`
	Units       int64  `json:"units"`
}

func (req *holdRequest) validate() string {
	if strings.TrimSpace(req.Customer) == "" {
		return "customer is required"
	}
	if strings.TrimSpace(req.Size) == "" {
		return "size is required"
	}
	if req.Units <= 0 {
		return "units must be greater than zero"
	}
	return ""
}

func (h *Handler) listHolds(w http.ResponseWriter, r *http.Request) {
	holds := []domain.StockHold{}
	if err := h.db.Select(&holds, `SELECT * FROM stock_holds ORDER BY created_at DESC, id DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list holds")
		return
	}
	respondJSON(w, http.StatusOK, holds)
}

func (h *Handler) createHold(w http.ResponseWriter, r *http.Request) {
	var req holdRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO stock_holds (customer, country, size, batch_number, units) VALUES (?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Customer, req.Country, req.Size, req.BatchNumber, req.Units).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create hold")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) updateHold(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hold id")
		return
	}
	var req holdRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	query := h.db.Rebind(`UPDATE stock_holds SET customer = ?, country = ?, size = ?, batch_number = ?, units = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.Customer, req.Country, req.Size, req.BatchNumber, req.Units, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update hold")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteHold(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hold id")
		return
	}
	query := h.db.Rebind(`DELETE FROM stock_holds WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete hold")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// convertHold turns a stock hold into a sale at the given price. The new
// sale keeps the hold's fields and records when and from which hold it
// was converted. Insert and delete commit together.
func (h *Handler) convertHold(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid hold id")
		return
	}

	var payload struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	var hold domain.StockHold
	query := tx.Rebind(`SELECT * FROM stock_holds WHERE id = ?`)
	if err := tx.Get(&hold, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "hold not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load hold")
		return
	}

	convertedAt := time.Now().UTC().Format(time.RFC3339)
	var saleID int64
	query = tx.Rebind(`INSERT INTO sales (customer, country, size, batch_number, units, price, converted_from, original_hold_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := tx.QueryRowx(query, hold.Customer, hold.Country, hold.Size, hold.BatchNumber, hold.Units, payload.Price, convertedAt, hold.ID).Scan(&saleID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create sale")
		return
	}

	query = tx.Rebind(`DELETE FROM stock_holds WHERE id = ?`)
	if _, err := tx.Exec(query, hold.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to remove hold")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize conversion")
		return
	}

	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{
		"sale_id":          saleID,
		"original_hold_id": hold.ID,
		"converted_from":   convertedAt,
	})
}
