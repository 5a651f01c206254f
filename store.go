package finasist

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// ErrNotFound is returned when a record targeted by id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrNoPosition is returned when selling a symbol that is not held.
// Short positions are not supported.
var ErrNoPosition = errors.New("no position held for symbol")

// Store owns the single SQLite handle for the three record sets:
// transactions, positions and the daily net-worth history.
//
// All mutations are single-statement commits, except trade application
// which pairs the position change and its ledger posting in one transaction.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	kind TEXT NOT NULL,
	category TEXT NOT NULL,
	amount TEXT NOT NULL,
	currency TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	position_symbol TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS positions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	asset_class TEXT NOT NULL,
	symbol TEXT NOT NULL UNIQUE,
	quantity TEXT NOT NULL,
	avg_cost TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	date TEXT PRIMARY KEY,
	net_worth TEXT NOT NULL,
	cash_balance TEXT NOT NULL,
	portfolio_value TEXT NOT NULL
);`

// Open opens (creating if needed) the store at path. Use ":memory:" for a
// throwaway store. The caller owns the returned store and must Close it.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset drops all three record sets and recreates them empty. Irreversible.
func (s *Store) Reset() error {
	drops := []string{
		"DROP TABLE IF EXISTS transactions;",
		"DROP TABLE IF EXISTS positions;",
		"DROP TABLE IF EXISTS history;",
	}
	for _, drop := range drops {
		if _, err := s.db.Exec(drop); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to recreate tables: %w", err)
	}
	return nil
}
