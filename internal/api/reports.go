package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"batchboard/b/domain"
	"batchboard/b/internal/metrics"
)

const dashboardCacheKey = "reports:dashboard"

func (h *Handler) invalidateReports(ctx context.Context) {
	h.cache.Invalidate(ctx, dashboardCacheKey)
}

// dashboard serves the derived summary, from Redis when a fresh copy is
// cached.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	var cached metrics.Summary
	if h.cache.Get(r.Context(), dashboardCacheKey, &cached) {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	purchases, sales, holds, adjustments, pipeline, err := h.loadCollections()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load collections")
		return
	}

	summary := metrics.BuildSummary(purchases, sales, holds, adjustments, pipeline)
	h.cache.Set(r.Context(), dashboardCacheKey, summary)
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) stockReport(w http.ResponseWriter, r *http.Request) {
	purchases, sales, holds, adjustments, _, err := h.loadCollections()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load collections")
		return
	}
	respondJSON(w, http.StatusOK, metrics.ComputeStock(purchases, sales, holds, adjustments))
}

func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	var (
		args    []any
		clauses []string
	)

	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	if startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, startDate)
		clauses = append(clauses, "DATE(created_at) >= ?")
	}

	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return
		}
		args = append(args, endDate)
		clauses = append(clauses, "DATE(created_at) <= ?")
	}

	customer := strings.TrimSpace(r.URL.Query().Get("customer"))
	if customer != "" {
		args = append(args, customer)
		clauses = append(clauses, "customer = ?")
	}

	query := `SELECT * FROM sales`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	sales := []domain.Sale{}
	if err := h.db.Select(&sales, h.db.Rebind(query), args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales report")
		return
	}

	purchases := []domain.Purchase{}
	if err := h.db.Select(&purchases, `SELECT * FROM purchases`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load purchases")
		return
	}

	respondJSON(w, http.StatusOK, metrics.AnnotateSales(sales, metrics.AverageCosts(purchases)))
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	purchases, sales, _, _, _, err := h.loadCollections()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load collections")
		return
	}
	respondJSON(w, http.StatusOK, metrics.MonthlyRevenue(sales, metrics.AverageCosts(purchases)))
}

func (h *Handler) loadCollections() ([]domain.Purchase, []domain.Sale, []domain.StockHold, []domain.StockAdjustment, []domain.PipelinePurchase, error) {
	purchases := []domain.Purchase{}
	sales := []domain.Sale{}
	holds := []domain.StockHold{}
	adjustments := []domain.StockAdjustment{}
	pipeline := []domain.PipelinePurchase{}

	steps := []struct {
		dest  any
		query string
	}{
		{&purchases, `SELECT * FROM purchases ORDER BY id`},
		{&sales, `SELECT * FROM sales ORDER BY id`},
		{&holds, `SELECT * FROM stock_holds ORDER BY id`},
		{&adjustments, `SELECT * FROM adjustments ORDER BY id`},
		{&pipeline, `SELECT * FROM pipeline_purchases ORDER BY id`},
	}
	for _, step := range steps {
		if err := h.db.Select(step.dest, step.query); err != nil {
			return nil, nil, nil, nil, nil, err
		}
	}
	return purchases, sales, holds, adjustments, pipeline, nil
}
