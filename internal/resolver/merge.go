package resolver

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/resolver/provider"
)

// seedFromCandidate copies a candidate into an empty aggregate. The
// link map is cloned so later merges never write back into the
// provider's candidate.
func seedFromCandidate(agg *model.ResultAggregate, c model.Candidate, tier model.Tier) {
	agg.Candidate = c
	agg.SocialLinks = maps.Clone(c.SocialLinks)
	agg.AddSource(tier)
}

// mergeWebFindings enriches the aggregate's website and social links
// from a web search. Merging only adds fields or replaces a field with a
// non-empty value; a populated field is never overwritten by an empty
// one, and existing non-empty values are preferred.
func mergeWebFindings(agg *model.ResultAggregate, f *provider.WebFindings) bool {
	changed := false
	if agg.Website == "" && f.OfficialWebsite != "" {
		agg.Website = f.OfficialWebsite
		changed = true
	}
	if mergeSocialLinks(agg, f.SocialLinks) {
		changed = true
	}
	return changed
}

// mergeSocialLinks adds links for platforms the aggregate does not have
// yet. Existing links win.
func mergeSocialLinks(agg *model.ResultAggregate, links map[model.Platform]string) bool {
	changed := false
	for platform, url := range links {
		if url == "" {
			continue
		}
		if existing := agg.SocialLinks[platform]; existing != "" {
			continue
		}
		if agg.SocialLinks == nil {
			agg.SocialLinks = make(map[model.Platform]string)
		}
		agg.SocialLinks[platform] = url
		changed = true
	}
	return changed
}

// attachProfile records a tier-4 enrichment result. Enrichment never
// changes match status; it only adds data.
func attachProfile(agg *model.ResultAggregate, p model.Profile) {
	if agg.SocialProfiles == nil {
		agg.SocialProfiles = make(map[model.Platform]model.Profile)
	}
	agg.SocialProfiles[p.Platform] = p
}

// profileSummary derives a one-line digest of the enriched profiles.
func profileSummary(profiles map[model.Platform]model.Profile) string {
	if len(profiles) == 0 {
		return ""
	}

	platforms := make([]string, 0, len(profiles))
	followers := 0
	for p, prof := range profiles {
		platforms = append(platforms, string(p))
		followers += prof.Followers
	}
	sort.Strings(platforms)

	s := fmt.Sprintf("%d profile(s) on %s", len(profiles), strings.Join(platforms, ", "))
	if followers > 0 {
		s += fmt.Sprintf(", %d followers combined", followers)
	}
	return s
}
