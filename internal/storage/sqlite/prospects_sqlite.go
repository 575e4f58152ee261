// Package sqlite provides an embedded, single-file SQLite implementation of
// prospects.Store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ProspectsStore keeps the collection in a SQLite database. Save replaces the
// whole table inside one transaction.
type ProspectsStore struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*ProspectsStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &ProspectsStore{db: db}, nil
}

// Close closes the database connection.
func (s *ProspectsStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the saved collection in insertion order. It returns
// prospects.ErrNoData when Save has never been called.
func (s *ProspectsStore) Load(ctx context.Context) ([]prospects.Prospect, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshots WHERE singleton = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, prospects.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("load prospects: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email_address, is_contacted
		FROM prospects
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load prospects: %w", err)
	}
	defer rows.Close()

	people := []prospects.Prospect{}
	for rows.Next() {
		var (
			id        string
			p         prospects.Prospect
			contacted int
		)
		if err := rows.Scan(&id, &p.Name, &p.EmailAddress, &contacted); err != nil {
			return nil, fmt.Errorf("load prospects: %w", err)
		}
		p.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("load prospects: bad id %q: %w", id, err)
		}
		p.IsContacted = contacted != 0
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load prospects: %w", err)
	}
	return people, nil
}

// Save replaces the stored collection.
func (s *ProspectsStore) Save(ctx context.Context, people []prospects.Prospect) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save prospects: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM prospects`); err != nil {
		return fmt.Errorf("save prospects: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prospects (position, id, name, email_address, is_contacted)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save prospects: %w", err)
	}
	defer stmt.Close()

	for i, p := range people {
		contacted := 0
		if p.IsContacted {
			contacted = 1
		}
		if _, err = stmt.ExecContext(ctx, i, p.ID.String(), p.Name, p.EmailAddress, contacted); err != nil {
			return fmt.Errorf("save prospects: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (singleton, saved_at, count) VALUES (1, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET saved_at = excluded.saved_at, count = excluded.count
	`, time.Now().UTC().Format(time.RFC3339Nano), len(people)); err != nil {
		return fmt.Errorf("save prospects: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save prospects: %w", err)
	}
	return nil
}
