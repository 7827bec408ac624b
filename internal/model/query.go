package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// SearchMode selects between resolving one entity and collecting many.
type SearchMode string

const (
	// ModeSingle resolves the query to at most one verified entity.
	ModeSingle SearchMode = "single"
	// ModeBulk returns every directory candidate above the bulk bar.
	ModeBulk SearchMode = "bulk"
)

// ErrInvalidQuery is returned when a search query fails validation before
// any tier runs. It is the only error surfaced to callers as an error;
// all other failure modes are encoded in the SearchResult.
var ErrInvalidQuery = eris.New("model: invalid search query")

// SearchQuery describes the business the caller is looking for.
// It is immutable once a search starts.
type SearchQuery struct {
	Name       string     `json:"name"`
	City       string     `json:"city,omitempty"`
	Country    string     `json:"country,omitempty"`
	Activity   string     `json:"activity,omitempty"`
	Mode       SearchMode `json:"mode"`
	MaxResults int        `json:"max_results,omitempty"`
}

// Validate checks required fields and normalizes the mode.
func (q *SearchQuery) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return eris.Wrap(ErrInvalidQuery, "name is required")
	}
	if q.Mode == "" {
		q.Mode = ModeSingle
	}
	if q.Mode != ModeSingle && q.Mode != ModeBulk {
		return eris.Wrapf(ErrInvalidQuery, "unknown mode %q", q.Mode)
	}
	return nil
}

// Terms returns the query text sent to providers: name plus whatever
// location and activity hints are present.
func (q *SearchQuery) Terms() string {
	parts := []string{q.Name}
	if q.Activity != "" {
		parts = append(parts, q.Activity)
	}
	if q.City != "" {
		parts = append(parts, q.City)
	}
	if q.Country != "" {
		parts = append(parts, q.Country)
	}
	return strings.Join(parts, " ")
}
