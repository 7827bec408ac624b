// Package providers adapts the external API clients to the provider
// contracts consumed by the resolution engine.
package providers

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/resolver/provider"
	"github.com/sells-group/resolve-cli/internal/social"
	"github.com/sells-group/resolve-cli/pkg/places"
	"github.com/sells-group/resolve-cli/pkg/serper"
)

// PlacesDirectory implements the directory tier over a Places client.
type PlacesDirectory struct {
	client places.Client
}

// NewPlacesDirectory creates the directory provider.
func NewPlacesDirectory(client places.Client) *PlacesDirectory {
	return &PlacesDirectory{client: client}
}

// Search returns the top listing for the query, or (nil, nil) when the
// directory has none.
func (d *PlacesDirectory) Search(ctx context.Context, query model.SearchQuery) (*model.Candidate, error) {
	results, err := d.client.TextSearch(ctx, query.Terms(), 1)
	if err != nil {
		return nil, eris.Wrap(err, "providers: directory search")
	}
	if len(results) == 0 {
		return nil, nil
	}
	c := placeToCandidate(results[0])
	return &c, nil
}

// SearchAll returns up to max raw listings for bulk resolution.
func (d *PlacesDirectory) SearchAll(ctx context.Context, query model.SearchQuery, max int) ([]model.Candidate, error) {
	results, err := d.client.TextSearch(ctx, query.Terms(), max)
	if err != nil {
		return nil, eris.Wrap(err, "providers: directory bulk search")
	}
	candidates := make([]model.Candidate, 0, len(results))
	for _, p := range results {
		candidates = append(candidates, placeToCandidate(p))
	}
	return candidates, nil
}

func placeToCandidate(p places.Place) model.Candidate {
	return model.Candidate{
		Name:        p.DisplayName.Text,
		Address:     p.FormattedAddress,
		Rating:      p.Rating,
		ReviewCount: p.UserRatingCount,
		Phone:       p.NationalPhoneNumber,
		Website:     p.WebsiteURI,
		Category:    p.PrimaryTypeDisplayName.Text,
		SourceURL:   p.GoogleMapsURI,
	}
}

// SerperWebSearcher implements the web search tier over a serper client.
type SerperWebSearcher struct {
	client serper.Client
}

// NewSerperWebSearcher creates the web search provider.
func NewSerperWebSearcher(client serper.Client) *SerperWebSearcher {
	return &SerperWebSearcher{client: client}
}

// Search runs a web search and distills the findings: official website,
// a display name when the engine recognizes the entity, and the first
// link per recognized social platform.
func (s *SerperWebSearcher) Search(ctx context.Context, query model.SearchQuery) (*provider.WebFindings, error) {
	resp, err := s.client.Search(ctx, query.Terms())
	if err != nil {
		return nil, eris.Wrap(err, "providers: web search")
	}

	findings := &provider.WebFindings{}

	if kg := resp.KnowledgeGraph; kg != nil {
		findings.Name = kg.Title
		findings.OfficialWebsite = kg.Website
	}

	urls := make([]string, 0, len(resp.Organic))
	for _, org := range resp.Organic {
		urls = append(urls, org.Link)
	}
	findings.SocialLinks = social.ExtractLinks(urls)

	// Fall back to the first organic non-social hit as the website.
	for _, org := range resp.Organic {
		if findings.OfficialWebsite != "" {
			break
		}
		if _, isSocial := social.PlatformFromURL(org.Link); isSocial {
			continue
		}
		findings.OfficialWebsite = org.Link
		findings.SourceURL = org.Link
		if findings.Name == "" {
			findings.Name = org.Title
		}
	}

	if findings.OfficialWebsite == "" && len(findings.SocialLinks) == 0 {
		return nil, nil
	}
	return findings, nil
}
