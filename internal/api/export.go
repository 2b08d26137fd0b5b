package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"batchboard/b/domain"
	"batchboard/b/internal/export"
)

// exportCSV streams one collection as a CSV attachment.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	write := func(fn func() error) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", collection+".csv"))
		if err := fn(); err != nil {
			h.log.Error("csv export failed", "collection", collection, "error", err)
		}
	}

	switch collection {
	case "sales":
		rows := []domain.Sale{}
		if err := h.db.Select(&rows, `SELECT * FROM sales ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load sales")
			return
		}
		write(func() error { return export.Sales(w, rows) })
	case "purchases":
		rows := []domain.Purchase{}
		if err := h.db.Select(&rows, `SELECT * FROM purchases ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load purchases")
			return
		}
		write(func() error { return export.Purchases(w, rows) })
	case "holds":
		rows := []domain.StockHold{}
		if err := h.db.Select(&rows, `SELECT * FROM stock_holds ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load holds")
			return
		}
		write(func() error { return export.Holds(w, rows) })
	case "adjustments":
		rows := []domain.StockAdjustment{}
		if err := h.db.Select(&rows, `SELECT * FROM adjustments ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load adjustments")
			return
		}
		write(func() error { return export.Adjustments(w, rows) })
	case "customers":
		rows := []domain.Customer{}
		if err := h.db.Select(&rows, `SELECT * FROM customers ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load customers")
			return
		}
		write(func() error { return export.Customers(w, rows) })
	case "suppliers":
		rows := []domain.Supplier{}
		if err := h.db.Select(&rows, `SELECT * FROM suppliers ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load suppliers")
			return
		}
		write(func() error { return export.Suppliers(w, rows) })
	case "pipeline":
		rows := []domain.PipelinePurchase{}
		if err := h.db.Select(&rows, `SELECT * FROM pipeline_purchases ORDER BY id`); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to load pipeline orders")
			return
		}
		write(func() error { return export.Pipeline(w, rows) })
	default:
		respondError(w, http.StatusNotFound, "unknown collection")
	}
}
