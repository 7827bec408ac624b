package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/resolve-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveSearch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO searches`).
		WithArgs(pgxmock.AnyArg(), "Al Baik", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := &model.SearchRecord{
		Query:  model.SearchQuery{Name: "Al Baik", Mode: model.ModeSingle},
		Result: &model.SearchResult{Success: true, MatchScore: 96.5},
	}
	err := s.SaveSearch(context.Background(), rec)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSearch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	queryJSON, _ := json.Marshal(model.SearchQuery{Name: "Al Baik", Mode: model.ModeSingle})
	resultJSON, _ := json.Marshal(model.SearchResult{Success: true, MatchScore: 96.5})
	created := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, query, result, created_at FROM searches WHERE id = \$1`).
		WithArgs("abc-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "query", "result", "created_at"}).
			AddRow("abc-123", queryJSON, resultJSON, created))

	rec, err := s.GetSearch(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "abc-123", rec.ID)
	assert.Equal(t, "Al Baik", rec.Query.Name)
	require.NotNil(t, rec.Result)
	assert.True(t, rec.Result.Success)
	assert.InDelta(t, 96.5, rec.Result.MatchScore, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSearch_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, query, result, created_at FROM searches WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetSearch(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSearches(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	queryJSON, _ := json.Marshal(model.SearchQuery{Name: "Al Baik", Mode: model.ModeSingle})

	mock.ExpectQuery(`SELECT id, query, result, created_at FROM searches ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "query", "result", "created_at"}).
			AddRow("id-1", queryJSON, []byte(nil), time.Now().UTC()).
			AddRow("id-2", queryJSON, []byte(nil), time.Now().UTC()))

	records, err := s.ListSearches(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Nil(t, records[0].Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSearches_NameFilter(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, query, result, created_at FROM searches WHERE name = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("Al Baik", 10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "query", "result", "created_at"}))

	records, err := s.ListSearches(context.Background(), Filter{Name: "Al Baik", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS searches`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
