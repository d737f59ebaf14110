package adapters

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarstitch/xbrlstmt/xbrlmodel"
)

// newMockStore creates a sqlmock-backed PGStore for a single test, along
// with the mock for setting expectations.
func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PGStore{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestUpsertStitchedStatement(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)

		stmt := xbrlmodel.StitchedStatement{Type: xbrlmodel.StatementBalanceSheet}
		mock.ExpectExec(`INSERT INTO stitched_statements`).
			WithArgs("0000320193", string(xbrlmodel.StatementBalanceSheet), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.UpsertStitchedStatement(context.Background(), "0000320193", stmt)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db_error", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectExec(`INSERT INTO stitched_statements`).
			WithArgs("0000320193", string(xbrlmodel.StatementIncomeStatement), sqlmock.AnyArg()).
			WillReturnError(errors.New("connection refused"))

		err := store.UpsertStitchedStatement(context.Background(), "0000320193", xbrlmodel.StitchedStatement{Type: xbrlmodel.StatementIncomeStatement})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStitchedStatement(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)

		row := []byte(`{"Type":"balance_sheet","PeriodsOrderedDesc":null,"Rows":null,"Provenance":null,"Diagnostics":null}`)
		mock.ExpectQuery(`SELECT cik, statement_type, data FROM stitched_statements`).
			WithArgs("0000320193", string(xbrlmodel.StatementBalanceSheet)).
			WillReturnRows(sqlmock.NewRows([]string{"cik", "statement_type", "data"}).
				AddRow("0000320193", string(xbrlmodel.StatementBalanceSheet), row))

		stmt, ok, err := store.GetStitchedStatement(context.Background(), "0000320193", xbrlmodel.StatementBalanceSheet)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, xbrlmodel.StatementBalanceSheet, stmt.Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not_found", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT cik, statement_type, data FROM stitched_statements`).
			WithArgs("0000999999", string(xbrlmodel.StatementCashFlow)).
			WillReturnError(sql.ErrNoRows)

		stmt, ok, err := store.GetStitchedStatement(context.Background(), "0000999999", xbrlmodel.StatementCashFlow)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, stmt)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
