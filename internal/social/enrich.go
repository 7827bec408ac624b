package social

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/resilience"
)

// maxProfileBody caps how much of a profile page is read. Meta tags sit
// in the head, so 256 KiB is plenty.
const maxProfileBody = 256 << 10

var (
	metaTagRe    = regexp.MustCompile(`<meta[^>]+(?:property|name)=["'](og:title|og:description|description)["'][^>]+content=["']([^"']*)["']`)
	metaTagAltRe = regexp.MustCompile(`<meta[^>]+content=["']([^"']*)["'][^>]+(?:property|name)=["'](og:title|og:description|description)["']`)
	followersRe  = regexp.MustCompile(`([\d,.]+[KkMm]?)\s+[Ff]ollowers`)
)

// Enricher fetches public profile pages and extracts the enrichment
// record from their meta tags. It implements provider.ProfileEnricher.
type Enricher struct {
	http  *http.Client
	retry resilience.RetryConfig
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) EnricherOption {
	return func(e *Enricher) {
		e.http = hc
	}
}

// NewEnricher creates a profile enricher.
func NewEnricher(opts ...EnricherOption) *Enricher {
	e := &Enricher{
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		retry: resilience.RetryConfig{
			MaxAttempts:    2,
			InitialBackoff: time.Second,
			OnRetry:        resilience.RetryLogger("social", "enrich"),
		},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Enrich fetches the profile page and derives a Profile from its meta
// tags. Transient fetch failures are retried once.
func (e *Enricher) Enrich(ctx context.Context, platform model.Platform, url string) (*model.Profile, error) {
	body, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (string, error) {
		return e.fetch(ctx, url)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "social: fetch profile %s", platform)
	}

	p := &model.Profile{Platform: platform, URL: url}

	for key, content := range metaTags(body) {
		switch key {
		case "og:title":
			p.Name = cleanTitle(content)
		case "og:description", "description":
			if p.Bio == "" {
				p.Bio = content
			}
		}
	}

	if m := followersRe.FindStringSubmatch(body); m != nil {
		p.Followers = parseCount(m[1])
	}

	return p, nil
}

func (e *Enricher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "social: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; resolve-cli)")
	req.Header.Set("Accept", "text/html")

	resp, err := e.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resilience.IsTransientHTTPStatus(resp.StatusCode) {
		return "", resilience.NewTransientError(eris.Errorf("social: status %d", resp.StatusCode), resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("social: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBody))
	if err != nil {
		return "", eris.Wrap(err, "social: read body")
	}
	return string(body), nil
}

// metaTags extracts og:/description meta tag contents, handling both
// attribute orders.
func metaTags(body string) map[string]string {
	tags := make(map[string]string)
	for _, m := range metaTagRe.FindAllStringSubmatch(body, -1) {
		if _, exists := tags[m[1]]; !exists {
			tags[m[1]] = m[2]
		}
	}
	for _, m := range metaTagAltRe.FindAllStringSubmatch(body, -1) {
		if _, exists := tags[m[2]]; !exists {
			tags[m[2]] = m[1]
		}
	}
	return tags
}

// parseCount parses follower counts like "12,345", "1.2K" or "3M".
func parseCount(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		mult = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v * mult)
}
