package records

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const SQLiteFileName = "records.db"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS records (
  id TEXT PRIMARY KEY,
  seq INTEGER NOT NULL,
  timestamp REAL NOT NULL,
  distance REAL NOT NULL,
  time REAL NOT NULL,
  speed REAL NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

// Load reads every row in insertion order. Totals are derived from the rows.
func (s *SQLiteStore) Load(ctx context.Context) (Records, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, distance, time, speed FROM records ORDER BY seq`)
	if err != nil {
		return Records{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	r := Empty()
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Timestamp, &rec.Distance, &rec.Time, &rec.Speed); err != nil {
			return Records{}, fmt.Errorf("scan record: %w", err)
		}
		r.Records = append(r.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return Records{}, fmt.Errorf("iterate records: %w", err)
	}
	r.Recompute()
	return r, nil
}

// Save replaces the table contents in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, r Records) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	const stmt = `INSERT INTO records (id, seq, timestamp, distance, time, speed) VALUES (?, ?, ?, ?, ?, ?)`
	for i, rec := range r.Records {
		if _, err := tx.ExecContext(ctx, stmt, uuid.NewString(), i, rec.Timestamp, rec.Distance, rec.Time, rec.Speed); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
