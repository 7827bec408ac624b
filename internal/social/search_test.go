package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/pkg/serper"
)

type mockSerper struct {
	resp    *serper.SearchResponse
	err     error
	queries []string
}

func (m *mockSerper) Search(_ context.Context, query string) (*serper.SearchResponse, error) {
	m.queries = append(m.queries, query)
	return m.resp, m.err
}

func TestSearcherFindsProfile(t *testing.T) {
	web := &mockSerper{resp: &serper.SearchResponse{
		Organic: []serper.OrganicResult{
			{Title: "Some blog about Al Baik", Link: "https://example.com/blog"},
			{Title: "Al Baik (@albaik) | Instagram", Link: "https://www.instagram.com/albaik"},
		},
	}}

	s := NewSearcher(web)
	hit, err := s.Search(context.Background(), model.PlatformInstagram, model.SearchQuery{Name: "Al Baik", City: "Jeddah"})
	require.NoError(t, err)

	require.NotNil(t, hit)
	assert.Equal(t, "https://www.instagram.com/albaik", hit.URL)
	assert.Equal(t, "Al Baik", hit.Name)
	require.Len(t, web.queries, 1)
	assert.Equal(t, "site:instagram.com Al Baik Jeddah", web.queries[0])
}

func TestSearcherIgnoresOffPlatformResults(t *testing.T) {
	web := &mockSerper{resp: &serper.SearchResponse{
		Organic: []serper.OrganicResult{
			{Title: "Al Baik", Link: "https://facebook.com/albaik"},
		},
	}}

	s := NewSearcher(web)
	hit, err := s.Search(context.Background(), model.PlatformInstagram, model.SearchQuery{Name: "Al Baik"})
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestSearcherUnsupportedPlatform(t *testing.T) {
	s := NewSearcher(&mockSerper{})
	_, err := s.Search(context.Background(), model.Platform("myspace"), model.SearchQuery{Name: "x"})
	assert.Error(t, err)
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Acme Co", cleanTitle("Acme Co (@acmeco) | Instagram"))
	assert.Equal(t, "Acme Co", cleanTitle("Acme Co | Facebook"))
	assert.Equal(t, "Acme Co", cleanTitle("Acme Co - YouTube"))
	assert.Equal(t, "Plain", cleanTitle("Plain"))
}
