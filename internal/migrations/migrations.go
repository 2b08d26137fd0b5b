package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Run creates the database schema and seeds the default admin account
// when the users table is empty.
func Run(db *sqlx.DB, adminPassword string) {
	if err := Apply(db, adminPassword); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

// Apply is Run without the fatal exit.
func Apply(db *sqlx.DB, adminPassword string) error {
	for _, stmt := range schemaFor(db.DriverName()) {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return seedAdmin(db, adminPassword)
}

func schemaFor(driver string) []string {
	id := `INTEGER PRIMARY KEY AUTOINCREMENT`
	ts := `TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP`
	money := `TEXT NOT NULL DEFAULT '0'`
	if driver == "pgx" {
		id = `SERIAL PRIMARY KEY`
		ts = `TIMESTAMPTZ NOT NULL DEFAULT NOW()`
		money = `NUMERIC(14,2) NOT NULL DEFAULT 0`
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id ` + id + `,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id ` + id + `,
			name TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT '',
			contact_person TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id ` + id + `,
			name TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT '',
			contact_person TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id ` + id + `,
			supplier TEXT NOT NULL,
			size TEXT NOT NULL,
			batch_number TEXT NOT NULL DEFAULT '',
			expiry_date TEXT NOT NULL DEFAULT '',
			units INTEGER NOT NULL,
			cost ` + money + `,
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id ` + id + `,
			customer TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT '',
			size TEXT NOT NULL,
			batch_number TEXT NOT NULL DEFAULT '',
			units INTEGER NOT NULL,
			price ` + money + `,
			converted_from TEXT,
			original_hold_id INTEGER,
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS stock_holds (
			id ` + id + `,
			customer TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT '',
			size TEXT NOT NULL,
			batch_number TEXT NOT NULL DEFAULT '',
			units INTEGER NOT NULL,
			reverted_from TEXT,
			original_sale_id INTEGER,
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS adjustments (
			id ` + id + `,
			batch_number TEXT NOT NULL DEFAULT '',
			size TEXT NOT NULL,
			units INTEGER NOT NULL,
			cost ` + money + `,
			reason TEXT NOT NULL DEFAULT '',
			recipient TEXT NOT NULL DEFAULT '',
			created_at ` + ts + `
		);`,
		`CREATE TABLE IF NOT EXISTS pipeline_purchases (
			id ` + id + `,
			supplier TEXT NOT NULL,
			size TEXT NOT NULL,
			units INTEGER NOT NULL,
			batch_number TEXT NOT NULL DEFAULT '',
			expected_date TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Ordered',
			notes TEXT NOT NULL DEFAULT '',
			created_at ` + ts + `
		);`,
	}
}

func seedAdmin(db *sqlx.DB, password string) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query := db.Rebind(`INSERT INTO users (username, password, role) VALUES (?, ?, ?)`)
	if _, err := db.Exec(query, "admin", string(hashed), "admin"); err != nil {
		return err
	}
	log.Println("seeded default admin user")
	return nil
}
