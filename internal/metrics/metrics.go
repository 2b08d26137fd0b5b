// Package metrics computes the derived figures the dashboard and reports
// are built from. Everything here is pure arithmetic over loaded rows:
// stock per size is purchased minus sold minus adjusted (in packs), vials
// follow the per-size multiplier, and margins are measured against the
// weighted average purchase cost of the size.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"batchboard/b/domain"
)

// StockRow is the per-size stock position.
type StockRow struct {
	Size       string          `json:"size"`
	Packs      int64           `json:"packs"`
	Vials      int64           `json:"vials"`
	HeldPacks  int64           `json:"held_packs"`
	FreePacks  int64           `json:"free_packs"`
	AvgCost    decimal.Decimal `json:"avg_cost"`
	StockValue decimal.Decimal `json:"stock_value"`
}

// SaleWithMargin is a sale annotated with revenue and margin against the
// average cost of its size.
type SaleWithMargin struct {
	domain.Sale
	Revenue       decimal.Decimal `json:"revenue"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// MonthRow aggregates sales per calendar month (YYYY-MM).
type MonthRow struct {
	Month   string          `json:"month"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
	Margin  decimal.Decimal `json:"margin"`
}

// Summary is the dashboard payload.
type Summary struct {
	Stock         []StockRow       `json:"stock"`
	TotalRevenue  decimal.Decimal  `json:"total_revenue"`
	TotalCOGS     decimal.Decimal  `json:"total_cogs"`
	TotalMargin   decimal.Decimal  `json:"total_margin"`
	TotalWriteOff decimal.Decimal  `json:"total_write_off"`
	PendingPacks  map[string]int64 `json:"pending_packs"`
	Counts        map[string]int   `json:"counts"`
}

// AverageCosts returns the weighted average purchase cost per pack for
// each size. Sizes with no purchases are absent from the map.
func AverageCosts(purchases []domain.Purchase) map[string]decimal.Decimal {
	totalCost := map[string]decimal.Decimal{}
	totalUnits := map[string]int64{}
	for _, p := range purchases {
		totalCost[p.Size] = totalCost[p.Size].Add(p.Cost.Mul(decimal.NewFromInt(p.Units)))
		totalUnits[p.Size] += p.Units
	}

	avg := make(map[string]decimal.Decimal, len(totalCost))
	for size, cost := range totalCost {
		if units := totalUnits[size]; units > 0 {
			avg[size] = cost.Div(decimal.NewFromInt(units)).Truncate(4)
		}
	}
	return avg
}

// ComputeStock derives the per-size stock position. Known sizes appear
// first in display order; any size only present in the data follows,
// sorted by name. Negative stock is reported as-is.
func ComputeStock(purchases []domain.Purchase, sales []domain.Sale, holds []domain.StockHold, adjustments []domain.StockAdjustment) []StockRow {
	packs := map[string]int64{}
	held := map[string]int64{}
	for _, p := range purchases {
		packs[p.Size] += p.Units
	}
	for _, s := range sales {
		packs[s.Size] -= s.Units
	}
	for _, a := range adjustments {
		packs[a.Size] -= a.Units
	}
	for _, h := range holds {
		held[h.Size] += h.Units
	}

	avgCosts := AverageCosts(purchases)

	rows := make([]StockRow, 0, len(packs))
	for _, size := range sizeOrder(packs, held) {
		p := packs[size]
		avg := avgCosts[size]
		rows = append(rows, StockRow{
			Size:       size,
			Packs:      p,
			Vials:      p * domain.VialsPerPack(size),
			HeldPacks:  held[size],
			FreePacks:  p - held[size],
			AvgCost:    avg,
			StockValue: avg.Mul(decimal.NewFromInt(p)).Round(2),
		})
	}
	return rows
}

// AnnotateSales computes revenue and margin for each sale.
func AnnotateSales(sales []domain.Sale, avgCosts map[string]decimal.Decimal) []SaleWithMargin {
	out := make([]SaleWithMargin, 0, len(sales))
	for _, s := range sales {
		units := decimal.NewFromInt(s.Units)
		revenue := s.Price.Mul(units).Round(2)
		margin := s.Price.Sub(avgCosts[s.Size]).Mul(units).Round(2)

		pct := decimal.Zero
		if !revenue.IsZero() {
			pct = margin.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, SaleWithMargin{Sale: s, Revenue: revenue, Margin: margin, MarginPercent: pct})
	}
	return out
}

// MonthlyRevenue groups sales by the YYYY-MM prefix of their creation
// timestamp, oldest month first.
func MonthlyRevenue(sales []domain.Sale, avgCosts map[string]decimal.Decimal) []MonthRow {
	byMonth := map[string]*MonthRow{}
	for _, s := range AnnotateSales(sales, avgCosts) {
		month := monthOf(s.CreatedAt)
		row, ok := byMonth[month]
		if !ok {
			row = &MonthRow{Month: month}
			byMonth[month] = row
		}
		row.Units += s.Units
		row.Revenue = row.Revenue.Add(s.Revenue)
		row.Margin = row.Margin.Add(s.Margin)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	rows := make([]MonthRow, 0, len(months))
	for _, m := range months {
		rows = append(rows, *byMonth[m])
	}
	return rows
}

// BuildSummary assembles the dashboard summary from all collections.
func BuildSummary(purchases []domain.Purchase, sales []domain.Sale, holds []domain.StockHold, adjustments []domain.StockAdjustment, pipeline []domain.PipelinePurchase) Summary {
	avgCosts := AverageCosts(purchases)

	totalRevenue := decimal.Zero
	totalMargin := decimal.Zero
	for _, s := range AnnotateSales(sales, avgCosts) {
		totalRevenue = totalRevenue.Add(s.Revenue)
		totalMargin = totalMargin.Add(s.Margin)
	}

	writeOff := decimal.Zero
	for _, a := range adjustments {
		writeOff = writeOff.Add(a.Cost.Mul(decimal.NewFromInt(a.Units)))
	}

	pending := map[string]int64{}
	for _, p := range pipeline {
		if p.Status != domain.StatusReceived {
			pending[p.Size] += p.Units
		}
	}

	return Summary{
		Stock:         ComputeStock(purchases, sales, holds, adjustments),
		TotalRevenue:  totalRevenue.Round(2),
		TotalCOGS:     totalRevenue.Sub(totalMargin).Round(2),
		TotalMargin:   totalMargin.Round(2),
		TotalWriteOff: writeOff.Round(2),
		PendingPacks:  pending,
		Counts: map[string]int{
			"purchases":   len(purchases),
			"sales":       len(sales),
			"holds":       len(holds),
			"adjustments": len(adjustments),
			"pipeline":    len(pipeline),
		},
	}
}

// sizeOrder returns the known sizes first, then any extra sizes seen in
// the data, sorted.
func sizeOrder(maps ...map[string]int64) []string {
	seen := map[string]bool{}
	for _, m := range maps {
		for size := range m {
			seen[size] = true
		}
	}

	order := make([]string, 0, len(seen))
	for _, size := range domain.Sizes {
		order = append(order, size)
		delete(seen, size)
	}

	extras := make([]string, 0, len(seen))
	for size := range seen {
		extras = append(extras, size)
	}
	sort.Strings(extras)
	return append(order, extras...)
}

func monthOf(createdAt string) string {
	if len(createdAt) >= 7 {
		return createdAt[:7]
	}
	return createdAt
}
