package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// SQLiteStore persists plans to a SQLite database so computed plans survive
// restarts. Plans are stored as JSON documents keyed by id.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS takt_plans (
        id TEXT PRIMARY KEY,
        created_at INTEGER,
        plan TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Put writes or replaces the plan row.
func (s *SQLiteStore) Put(ctx context.Context, p *model.Plan) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO takt_plans(id, created_at, plan) VALUES(?,?,?)`,
		p.ID, time.Now().Unix(), string(b))
	return err
}

// Get loads and unmarshals the plan or returns ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Plan, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT plan FROM takt_plans WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p model.Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return &p, nil
}

// Delete removes the plan row.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM takt_plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
