package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/resolver/provider"
	"github.com/sells-group/resolve-cli/pkg/serper"
)

// Searcher locates business profiles on a single platform through
// site-scoped web searches. It implements provider.SocialSearcher.
type Searcher struct {
	web serper.Client
}

// NewSearcher creates a platform searcher backed by a web search client.
func NewSearcher(web serper.Client) *Searcher {
	return &Searcher{web: web}
}

// Search looks for the business profile on the given platform. It
// returns (nil, nil) when no result on the platform's domain is found.
func (s *Searcher) Search(ctx context.Context, platform model.Platform, query model.SearchQuery) (*provider.SocialHit, error) {
	domain := SearchDomain(platform)
	if domain == "" {
		return nil, eris.Errorf("social: unsupported platform %q", platform)
	}

	resp, err := s.web.Search(ctx, fmt.Sprintf("site:%s %s", domain, query.Terms()))
	if err != nil {
		return nil, eris.Wrapf(err, "social: search %s", platform)
	}

	for _, org := range resp.Organic {
		got, ok := PlatformFromURL(org.Link)
		if !ok || got != platform {
			continue
		}
		return &provider.SocialHit{
			URL:  org.Link,
			Name: cleanTitle(org.Title),
		}, nil
	}
	return nil, nil
}

// cleanTitle strips the platform boilerplate search engines append to
// profile page titles ("Acme Co (@acmeco) | Instagram" -> "Acme Co").
func cleanTitle(title string) string {
	for _, sep := range []string{" | ", " - ", " (@", " • "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
		}
	}
	return strings.TrimSpace(title)
}
