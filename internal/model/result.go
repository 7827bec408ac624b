package model

import "time"

// ScoredCandidate pairs a bulk-mode candidate with its match score.
type ScoredCandidate struct {
	Candidate Candidate   `json:"candidate"`
	Score     *MatchScore `json:"score"`
}

// SearchResult is the terminal outcome of one search. Every failure mode
// except invalid input is encoded here rather than raised as an error, so
// callers can distinguish "no confident match" from a system error
// without exception handling.
type SearchResult struct {
	Success      bool              `json:"success"`
	Data         *ResultAggregate  `json:"data,omitempty"`
	Matches      []ScoredCandidate `json:"matches,omitempty"`
	MatchScore   float64           `json:"match_score"`
	Sources      []string          `json:"sources"`
	SearchTimeMs int64             `json:"search_time_ms"`
	Aborted      bool              `json:"aborted,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// SearchRecord is one persisted search run in the history store.
type SearchRecord struct {
	ID        string        `json:"id"`
	Query     SearchQuery   `json:"query"`
	Result    *SearchResult `json:"result,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
