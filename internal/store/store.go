// Package store persists search history on behalf of the caller. The
// resolution engine itself never touches persistence.
package store

import (
	"context"

	"github.com/sells-group/resolve-cli/internal/model"
)

// Filter specifies criteria for listing past searches.
type Filter struct {
	Name   string `json:"name,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the search-history persistence interface.
type Store interface {
	SaveSearch(ctx context.Context, rec *model.SearchRecord) error
	GetSearch(ctx context.Context, id string) (*model.SearchRecord, error)
	ListSearches(ctx context.Context, filter Filter) ([]model.SearchRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}
