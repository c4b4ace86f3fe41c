package palette

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists color assignments to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite color store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS color_assignments (
		ticker TEXT PRIMARY KEY,
		color  TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create color_assignments: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ticker, color FROM color_assignments`)
	if err != nil {
		return nil, fmt.Errorf("load colors: %w", err)
	}
	defer rows.Close()

	colors := make(map[string]string)
	for rows.Next() {
		var ticker, color string
		if err := rows.Scan(&ticker, &color); err != nil {
			return nil, fmt.Errorf("scan color row: %w", err)
		}
		colors[ticker] = color
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load colors: %w", err)
	}
	return colors, nil
}

// Save replaces the whole mapping in one transaction, matching the
// read-modify-write lifecycle the allocator follows.
func (s *SQLiteStore) Save(colors map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save colors: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM color_assignments`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear colors: %w", err)
	}
	for ticker, color := range colors {
		if _, err := tx.Exec(`INSERT INTO color_assignments (ticker, color) VALUES (?, ?)`, ticker, color); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert color %s: %w", ticker, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite color store")
	return s.db.Close()
}
