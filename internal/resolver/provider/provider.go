// Package provider defines the contracts the search orchestrator
// consumes and external data sources implement. Providers return data;
// they never mutate caller state. Every call must return promptly on
// context cancellation or timeout.
package provider

import (
	"context"
	"sync"

	"github.com/sells-group/resolve-cli/internal/model"
)

// WebFindings is the output of a generic web search for a business.
type WebFindings struct {
	Name            string                    `json:"name,omitempty"`
	OfficialWebsite string                    `json:"official_website,omitempty"`
	SourceURL       string                    `json:"source_url,omitempty"`
	SocialLinks     map[model.Platform]string `json:"social_links,omitempty"`
}

// SocialHit is a profile located on one social platform.
type SocialHit struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Directory is the tier-1 authoritative lookup (a maps-style listing).
type Directory interface {
	// Search returns the single best raw candidate for the query, or
	// (nil, nil) when the directory has no plausible listing.
	Search(ctx context.Context, query model.SearchQuery) (*model.Candidate, error)
	// SearchAll returns up to max raw candidates for bulk resolution.
	SearchAll(ctx context.Context, query model.SearchQuery, max int) ([]model.Candidate, error)
}

// WebSearcher is the tier-2 generic web search.
type WebSearcher interface {
	Search(ctx context.Context, query model.SearchQuery) (*WebFindings, error)
}

// SocialSearcher locates a business profile on a single platform.
type SocialSearcher interface {
	Search(ctx context.Context, platform model.Platform, query model.SearchQuery) (*SocialHit, error)
}

// ProfileEnricher fetches the tier-4 enrichment record for a known
// profile URL.
type ProfileEnricher interface {
	Enrich(ctx context.Context, platform model.Platform, url string) (*model.Profile, error)
}

// Registry holds the per-platform social searchers. Platforms are
// resolved by lookup, never by runtime type inspection.
type Registry struct {
	mu        sync.RWMutex
	searchers map[model.Platform]SocialSearcher
	order     []model.Platform
}

// NewRegistry creates an empty social searcher registry.
func NewRegistry() *Registry {
	return &Registry{searchers: make(map[model.Platform]SocialSearcher)}
}

// Register adds a searcher for a platform, replacing any previous one.
// Registration order is preserved for iteration.
func (r *Registry) Register(p model.Platform, s SocialSearcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.searchers[p]; !exists {
		r.order = append(r.order, p)
	}
	r.searchers[p] = s
}

// Get returns the searcher for a platform, or nil if none is registered.
func (r *Registry) Get(p model.Platform) SocialSearcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.searchers[p]
}

// Platforms returns the registered platforms in registration order.
func (r *Registry) Platforms() []model.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Platform, len(r.order))
	copy(out, r.order)
	return out
}

// Supported reports whether a platform has a registered searcher.
func (r *Registry) Supported(p model.Platform) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.searchers[p]
	return ok
}
