package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Al Baik Jeddah", req.Q)

		w.Write([]byte(`{
			"knowledgeGraph": {"title": "Al Baik", "type": "Restaurant", "website": "https://albaik.com"},
			"organic": [
				{"title": "Al Baik | Home", "link": "https://albaik.com", "snippet": "Official site"},
				{"title": "Al Baik (@albaik)", "link": "https://instagram.com/albaik"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	got, err := c.Search(context.Background(), "Al Baik Jeddah")
	require.NoError(t, err)

	require.NotNil(t, got.KnowledgeGraph)
	assert.Equal(t, "Al Baik", got.KnowledgeGraph.Title)
	assert.Equal(t, "https://albaik.com", got.KnowledgeGraph.Website)
	require.Len(t, got.Organic, 2)
	assert.Equal(t, "https://instagram.com/albaik", got.Organic[1].Link)
}

func TestSearchNoKnowledgeGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"organic": []}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL), WithRateLimit(1000))
	got, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Nil(t, got.KnowledgeGraph)
	assert.Empty(t, got.Organic)
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := c.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
