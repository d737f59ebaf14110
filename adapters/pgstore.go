package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// PGStore persists stitched statements to Postgres, for callers that want a
// durable store instead of recomputing a stitch on every request.
type PGStore struct {
	db *sqlx.DB
}

// NewPGStore opens a connection pool against dsn and verifies connectivity.
func NewPGStore(dsn string) (*PGStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("adapters: connect to postgres: %w", err)
	}
	return &PGStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PGStore) Close() error {
	return s.db.Close()
}

// storedStitchedStatement is the row shape for the stitched_statements
// table: one row per (cik, statement_type), with the whole stitched table
// serialized to JSONB rather than normalized, mirroring how the teacher
// stack stores FinancialData as a single JSONB column per statement.
type storedStitchedStatement struct {
	CIK           string `db:"cik"`
	StatementType string `db:"statement_type"`
	Data          []byte `db:"data"`
}

// UpsertStitchedStatement stores stmt, replacing any prior stitch for the
// same (cik, type).
func (s *PGStore) UpsertStitchedStatement(ctx context.Context, cik string, stmt xbrlmodel.StitchedStatement) error {
	data, err := json.Marshal(stmt)
	if err != nil {
		return fmt.Errorf("adapters: marshal stitched statement: %w", err)
	}

	const query = `
		INSERT INTO stitched_statements (cik, statement_type, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (cik, statement_type)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, cik, string(stmt.Type), data); err != nil {
		return fmt.Errorf("adapters: upsert stitched statement: %w", err)
	}
	return nil
}

// GetStitchedStatement loads the most recently stored stitch for (cik, type),
// returning ok=false if none exists.
func (s *PGStore) GetStitchedStatement(ctx context.Context, cik string, statementType xbrlmodel.StatementType) (*xbrlmodel.StitchedStatement, bool, error) {
	var row storedStitchedStatement
	const query = `SELECT cik, statement_type, data FROM stitched_statements WHERE cik = $1 AND statement_type = $2`
	err := s.db.GetContext(ctx, &row, query, cik, string(statementType))
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("adapters: get stitched statement: %w", err)
	}

	var stmt xbrlmodel.StitchedStatement
	if err := json.Unmarshal(row.Data, &stmt); err != nil {
		return nil, false, fmt.Errorf("adapters: unmarshal stitched statement: %w", err)
	}
	return &stmt, true, nil
}
