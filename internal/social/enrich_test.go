package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/resolve-cli/internal/model"
)

const profileHTML = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Al Baik (@albaik) | Instagram">
<meta property="og:description" content="Fried chicken loved across Saudi Arabia.">
</head><body>
<span>1.2M Followers</span>
</body></html>`

func TestEnrich(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/html", r.Header.Get("Accept"))
		w.Write([]byte(profileHTML))
	}))
	defer srv.Close()

	e := NewEnricher()
	p, err := e.Enrich(context.Background(), model.PlatformInstagram, srv.URL)
	require.NoError(t, err)

	assert.Equal(t, model.PlatformInstagram, p.Platform)
	assert.Equal(t, srv.URL, p.URL)
	assert.Equal(t, "Al Baik", p.Name)
	assert.Equal(t, "Fried chicken loved across Saudi Arabia.", p.Bio)
	assert.Equal(t, 1_200_000, p.Followers)
}

func TestEnrichReversedMetaAttributes(t *testing.T) {
	html := `<meta content="Al Baik" property="og:title">`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(html))
	}))
	defer srv.Close()

	e := NewEnricher()
	p, err := e.Enrich(context.Background(), model.PlatformFacebook, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Al Baik", p.Name)
}

func TestEnrichRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(profileHTML))
	}))
	defer srv.Close()

	e := NewEnricher()
	e.retry.InitialBackoff = time.Millisecond

	p, err := e.Enrich(context.Background(), model.PlatformInstagram, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Al Baik", p.Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestEnrichPermanentStatusNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewEnricher()
	_, err := e.Enrich(context.Background(), model.PlatformInstagram, srv.URL)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 12345, parseCount("12,345"))
	assert.Equal(t, 1200, parseCount("1.2K"))
	assert.Equal(t, 3_000_000, parseCount("3M"))
	assert.Equal(t, 500, parseCount("500"))
	assert.Zero(t, parseCount("garbage"))
}

func TestMetaTagsFirstValueWins(t *testing.T) {
	body := `<meta property="og:title" content="First">
<meta property="og:title" content="Second">`
	tags := metaTags(body)
	assert.Equal(t, "First", tags["og:title"])
}
