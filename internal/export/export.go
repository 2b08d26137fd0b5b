// Package export renders collections as CSV for the download endpoints.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"batchboard/b/domain"
)

func Sales(w io.Writer, rows []domain.Sale) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "customer", "country", "size", "batch_number", "units", "price", "converted_from", "original_hold_id", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.Customer, r.Country, r.Size, r.BatchNumber,
			formatUnits(r.Units), r.Price.String(),
			orEmpty(r.ConvertedFrom), formatOptID(r.OriginalHoldID), r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func Purchases(w io.Writer, rows []domain.Purchase) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "supplier", "size", "batch_number", "expiry_date", "units", "cost", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.Supplier, r.Size, r.BatchNumber, r.ExpiryDate,
			formatUnits(r.Units), r.Cost.String(), r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func Holds(w io.Writer, rows []domain.StockHold) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "customer", "country", "size", "batch_number", "units", "reverted_from", "original_sale_id", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.Customer, r.Country, r.Size, r.BatchNumber,
			formatUnits(r.Units), orEmpty(r.RevertedFrom), formatOptID(r.OriginalSaleID), r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func Adjustments(w io.Writer, rows []domain.StockAdjustment) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "batch_number", "size", "units", "cost", "reason", "recipient", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.BatchNumber, r.Size,
			formatUnits(r.Units), r.Cost.String(), r.Reason, r.Recipient, r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func Customers(w io.Writer, rows []domain.Customer) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "country", "contact_person", "email", "phone", "notes", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.Name, r.Country, r.ContactPerson, r.Email, r.Phone, r.Notes, r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func Suppliers(w io.Writer, rows []domain.Supplier) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "country", "contact_person", "email", "phone", "notes", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.Name, r.Country, r.ContactPerson, r.Email, r.Phone, r.Notes, r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func Pipeline(w io.Writer, rows []domain.PipelinePurchase) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "supplier", "size", "units", "batch_number", "expected_date", "status", "notes", "created_at"})
	for _, r := range rows {
		_ = cw.Write([]string{
			formatID(r.ID), r.Supplier, r.Size, formatUnits(r.Units),
			r.BatchNumber, r.ExpectedDate, r.Status, r.Notes, r.CreatedAt,
		})
	}
	cw.Flush()
	return cw.Error()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatUnits(units int64) string {
	return strconv.FormatInt(units, 10)
}

func formatOptID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
