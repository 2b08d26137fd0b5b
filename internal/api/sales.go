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

type saleRequest struct {
	Customer    string          `json:"customer"`
	Country     string          `json:"country"`
	Size        string          `json:"size"`
	BatchNumber string          `json:"batch_number"`
	Units       int64           `json:"units"`
	Price       decimal.Decimal `json:"price"`
}

func (req *saleRequest) validate() string {
	if strings.TrimSpace(req.Customer) == "" {
		return "customer is required"
	}
	if strings.TrimSpace(req.Size) == "" {
		return "size is required"
	}
	if req.Units <= 0 {
		return "units must be greater than zero"
	}
	if req.Price.IsNegative() {
		return "price must not be negative"
	}
	return ""
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales := []domain.Sale{}
	if err := h.db.Select(&sales, `SELECT * FROM sales ORDER BY created_at DESC, id DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list sales")
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO sales (customer, country, size, batch_number, units, price) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Customer, req.Country, req.Size, req.BatchNumber, req.Units, req.Price).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create sale")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) updateSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	query := h.db.Rebind(`UPDATE sales SET customer = ?, country = ?, size = ?, batch_number = ?, units = ?, price = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.Customer, req.Country, req.Size, req.BatchNumber, req.Units, req.Price, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update sale")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	query := h.db.Rebind(`DELETE FROM sales WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete sale")
		return
	}
	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// revertSale moves a sale back into the stock-hold collection. The new
// hold keeps the sale's fields (price is dropped) and records when and
// from which sale it was reverted. Insert and delete commit together.
func (h *Handler) revertSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer tx.Rollback()

	var sale domain.Sale
	query := tx.Rebind(`SELECT * FROM sales WHERE id = ?`)
	if err := tx.Get(&sale, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "sale not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load sale")
		return
	}

	revertedAt := time.Now().UTC().Format(time.RFC3339)
	var holdID int64
	query = tx.Rebind(`INSERT INTO stock_holds (customer, country, size, batch_number, units, reverted_from, original_sale_id)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := tx.QueryRowx(query, sale.Customer, sale.Country, sale.Size, sale.BatchNumber, sale.Units, revertedAt, sale.ID).Scan(&holdID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create hold")
		return
	}

	query = tx.Rebind(`DELETE FROM sales WHERE id = ?`)
	if _, err := tx.Exec(query, sale.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to remove sale")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize reversion")
		return
	}

	h.invalidateReports(r.Context())
	respondJSON(w, http.StatusCreated, map[string]any{
		"hold_id":          holdID,
		"original_sale_id": sale.ID,
		"reverted_from":    revertedAt,
	})
}
