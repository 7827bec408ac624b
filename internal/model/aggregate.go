package model

// Tier identifies one ordered stage of the search pipeline.
type Tier string

// Pipeline tiers, in execution order.
const (
	TierDirectory        Tier = "directory"
	TierWebSearch        Tier = "webSearch"
	TierSocialSearch     Tier = "socialSearch"
	TierSocialEnrichment Tier = "socialEnrichment"
)

// ResultAggregate is the accumulated, provenance-tagged business record
// built incrementally across tiers. Each in-flight search owns exactly
// one aggregate; it is mutated in place by merge steps and frozen when
// the search completes or aborts.
type ResultAggregate struct {
	Candidate

	SocialProfiles map[Platform]Profile `json:"social_profiles,omitempty"`
	ProfileSummary string               `json:"profile_summary,omitempty"`

	Sources      []Tier      `json:"sources"`
	MatchScore   *MatchScore `json:"match_score,omitempty"`
	SearchTimeMs int64       `json:"search_time_ms"`
	Aborted      bool        `json:"aborted,omitempty"`
}

// AddSource appends a tier to the provenance list, keeping it an ordered
// set: a tier already recorded is not added again.
func (a *ResultAggregate) AddSource(t Tier) {
	for _, s := range a.Sources {
		if s == t {
			return
		}
	}
	a.Sources = append(a.Sources, t)
}

// SourceNames returns the provenance list as plain strings.
func (a *ResultAggregate) SourceNames() []string {
	names := make([]string, len(a.Sources))
	for i, s := range a.Sources {
		names[i] = string(s)
	}
	return names
}

// LinkCount returns the number of distinct external links known for the
// aggregate: the website plus every social link.
func (a *ResultAggregate) LinkCount() int {
	n := len(a.SocialLinks)
	if a.Website != "" {
		n++
	}
	return n
}

// PopulatedFields counts non-empty scalar fields plus social links.
// Merge steps must never decrease this.
func (a *ResultAggregate) PopulatedFields() int {
	n := 0
	for _, s := range []string{a.Name, a.Address, a.Phone, a.Email, a.Website, a.Category, a.SourceURL} {
		if s != "" {
			n++
		}
	}
	return n + len(a.SocialLinks)
}
