package database

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the backing store. A non-empty DSN selects PostgreSQL;
// otherwise a local SQLite file at sqlitePath is used.
func Connect(dsn, sqlitePath string) *sqlx.DB {
	db, err := Open(dsn, sqlitePath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

// Open is Connect without the fatal exit, for callers that want the error.
func Open(dsn, sqlitePath string) (*sqlx.DB, error) {
	if dsn != "" {
		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		return db, nil
	}

	db, err := sqlx.Connect("sqlite", sqlitePath)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writers; a single connection avoids
	// SQLITE_BUSY on concurrent requests.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}
	return db, nil
}
