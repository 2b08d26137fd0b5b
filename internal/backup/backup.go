// Package backup dumps and restores every collection as one JSON
// snapshot. Restore is wholesale: existing rows are replaced inside a
// single transaction, keeping the snapshot's ids.
package backup

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"batchboard/b/domain"
)

type Snapshot struct {
	ID          string                    `json:"id"`
	CreatedAt   string                    `json:"created_at"`
	Customers   []domain.Customer         `json:"customers"`
	Suppliers   []domain.Supplier         `json:"suppliers"`
	Purchases   []domain.Purchase         `json:"purchases"`
	Sales       []domain.Sale             `json:"sales"`
	Holds       []domain.StockHold        `json:"holds"`
	Adjustments []domain.StockAdjustment  `json:"adjustments"`
	Pipeline    []domain.PipelinePurchase `json:"pipeline"`
	// Users are optional so a data-only snapshot cannot lock everyone out
	// on restore.
	Users []domain.User `json:"users,omitempty"`
}

// Dump reads every collection into a snapshot. User accounts are included
// only when includeUsers is set.
func Dump(db *sqlx.DB, includeUsers bool) (Snapshot, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	steps := []struct {
		dest  any
		query string
	}{
		{&snap.Customers, `SELECT * FROM customers ORDER BY id`},
		{&snap.Suppliers, `SELECT * FROM suppliers ORDER BY id`},
		{&snap.Purchases, `SELECT * FROM purchases ORDER BY id`},
		{&snap.Sales, `SELECT * FROM sales ORDER BY id`},
		{&snap.Holds, `SELECT * FROM stock_holds ORDER BY id`},
		{&snap.Adjustments, `SELECT * FROM adjustments ORDER BY id`},
		{&snap.Pipeline, `SELECT * FROM pipeline_purchases ORDER BY id`},
	}
	for _, step := range steps {
		if err := db.Select(step.dest, step.query); err != nil {
			return Snapshot{}, err
		}
	}
	if includeUsers {
		if err := db.Select(&snap.Users, `SELECT * FROM users ORDER BY id`); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// Restore replaces all collections with the snapshot contents. Users are
// only touched when the snapshot carries them.
func Restore(db *sqlx.DB, snap Snapshot) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tables := []string{"customers", "suppliers", "purchases", "sales", "stock_holds", "adjustments", "pipeline_purchases"}
	if len(snap.Users) > 0 {
		tables = append(tables, "users")
	}

	for _, table := range tables {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, c := range snap.Customers {
		if _, err := tx.NamedExec(`INSERT INTO customers (id, name, country, contact_person, email, phone, notes, created_at)
			VALUES (:id, :name, :country, :contact_person, :email, :phone, :notes, :created_at)`, c); err != nil {
			return fmt.Errorf("restore customer %d: %w", c.ID, err)
		}
	}
	for _, s := range snap.Suppliers {
		if _, err := tx.NamedExec(`INSERT INTO suppliers (id, name, country, contact_person, email, phone, notes, created_at)
			VALUES (:id, :name, :country, :contact_person, :email, :phone, :notes, :created_at)`, s); err != nil {
			return fmt.Errorf("restore supplier %d: %w", s.ID, err)
		}
	}
	for _, p := range snap.Purchases {
		if _, err := tx.NamedExec(`INSERT INTO purchases (id, supplier, size, batch_number, expiry_date, units, cost, created_at)
			VALUES (:id, :supplier, :size, :batch_number, :expiry_date, :units, :cost, :created_at)`, p); err != nil {
			return fmt.Errorf("restore purchase %d: %w", p.ID, err)
		}
	}
	for _, s := range snap.Sales {
		if _, err := tx.NamedExec(`INSERT INTO sales (id, customer, country, size, batch_number, units, price, converted_from, original_hold_id, created_at)
			VALUES (:id, :customer, :country, :size, :batch_number, :units, :price, :converted_from, :original_hold_id, :created_at)`, s); err != nil {
			return fmt.Errorf("restore sale %d: %w", s.ID, err)
		}
	}
	for _, h := range snap.Holds {
		if _, err := tx.NamedExec(`INSERT INTO stock_holds (id, customer, country, size, batch_number, units, reverted_from, original_sale_id, created_at)
			VALUES (:id, :customer, :country, :size, :batch_number, :units, :reverted_from, :original_sale_id, :created_at)`, h); err != nil {
			return fmt.Errorf("restore hold %d: %w", h.ID, err)
		}
	}
	for _, a := range snap.Adjustments {
		if _, err := tx.NamedExec(`INSERT INTO adjustments (id, batch_number, size, units, cost, reason, recipient, created_at)
			VALUES (:id, :batch_number, :size, :units, :cost, :reason, :recipient, :created_at)`, a); err != nil {
			return fmt.Errorf("restore adjustment %d: %w", a.ID, err)
		}
	}
	for _, p := range snap.Pipeline {
		if _, err := tx.NamedExec(`INSERT INTO pipeline_purchases (id, supplier, size, units, batch_number, expected_date, status, notes, created_at)
			VALUES (:id, :supplier, :size, :units, :batch_number, :expected_date, :status, :notes, :created_at)`, p); err != nil {
			return fmt.Errorf("restore pipeline order %d: %w", p.ID, err)
		}
	}
	for _, u := range snap.Users {
		if _, err := tx.NamedExec(`INSERT INTO users (id, username, password, role, created_at)
			VALUES (:id, :username, :password, :role, :created_at)`, u); err != nil {
			return fmt.Errorf("restore user %d: %w", u.ID, err)
		}
	}

	// Explicit-id inserts leave Postgres sequences behind; bump them so the
	// next insert does not collide. SQLite tracks max rowid on its own.
	if db.DriverName() == "pgx" {
		for _, table := range tables {
			stmt := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)`, table, table)
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}
	}

	return tx.Commit()
}
