package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/resolve-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleRecord(name string) *model.SearchRecord {
	return &model.SearchRecord{
		Query: model.SearchQuery{Name: name, City: "Jeddah", Mode: model.ModeSingle},
		Result: &model.SearchResult{
			Success:    true,
			MatchScore: 96.5,
			Sources:    []string{"directory", "webSearch"},
		},
	}
}

func TestSQLiteSaveAndGetSearch(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := sampleRecord("Al Baik")
	require.NoError(t, s.SaveSearch(ctx, rec))
	require.NotEmpty(t, rec.ID)

	got, err := s.GetSearch(ctx, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Al Baik", got.Query.Name)
	assert.Equal(t, "Jeddah", got.Query.City)
	require.NotNil(t, got.Result)
	assert.True(t, got.Result.Success)
	assert.InDelta(t, 96.5, got.Result.MatchScore, 0.001)
	assert.Equal(t, []string{"directory", "webSearch"}, got.Result.Sources)
}

func TestSQLiteSaveSearchNilResult(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := &model.SearchRecord{Query: model.SearchQuery{Name: "Pending", Mode: model.ModeSingle}}
	require.NoError(t, s.SaveSearch(ctx, rec))

	got, err := s.GetSearch(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Result)
}

func TestSQLiteGetSearchNotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetSearch(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListSearches(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSearch(ctx, sampleRecord("Al Baik")))
	require.NoError(t, s.SaveSearch(ctx, sampleRecord("Al Baik")))
	require.NoError(t, s.SaveSearch(ctx, sampleRecord("Other Shop")))

	all, err := s.ListSearches(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := s.ListSearches(ctx, Filter{Name: "Al Baik"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.Equal(t, "Al Baik", r.Query.Name)
	}
}

func TestSQLiteListSearchesLimitOffset(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for range 5 {
		require.NoError(t, s.SaveSearch(ctx, sampleRecord("Al Baik")))
	}

	page, err := s.ListSearches(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := s.ListSearches(ctx, Filter{Limit: 10, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	s := newTestSQLiteStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}
