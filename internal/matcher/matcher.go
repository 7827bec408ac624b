// Package matcher scores how likely a candidate returned by a data
// provider is the business the caller searched for.
package matcher

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/normalize"
	"github.com/sells-group/resolve-cli/internal/similarity"
)

// Factor names as they appear in MatchScore.Factors.
const (
	FactorName     = "name"
	FactorCity     = "city"
	FactorActivity = "activity"
	FactorContact  = "contact"
)

// Score compares a query against a candidate and produces a weighted
// match score. Name scoring is mandatory; city and activity are scored
// only when both sides supply the field; contact presence is always
// scored. The total is renormalized over the weights actually used.
func Score(query model.SearchQuery, c model.Candidate, cfg Config) *model.MatchScore {
	factors := []model.Factor{
		{Name: FactorName, Score: NameScore(query.Name, c.Name), Weight: cfg.Weights.Name},
	}

	if query.City != "" && c.Address != "" {
		factors = append(factors, model.Factor{
			Name: FactorCity, Score: CityScore(query.City, c.Address), Weight: cfg.Weights.City,
		})
	}
	if query.Activity != "" && c.Category != "" {
		factors = append(factors, model.Factor{
			Name: FactorActivity, Score: ActivityScore(query.Activity, c.Category), Weight: cfg.Weights.Activity,
		})
	}

	factors = append(factors, model.Factor{
		Name: FactorContact, Score: ContactScore(c), Weight: cfg.Weights.Contact,
	})

	var weighted, weightSum float64
	for _, f := range factors {
		weighted += f.Score * f.Weight
		weightSum += f.Weight
	}

	total := 0.0
	if weightSum > 0 {
		total = weighted / weightSum
	}
	total = math.Round(clamp(total)*100) / 100

	return &model.MatchScore{
		Total:          total,
		IsMatch:        total >= cfg.Threshold,
		Threshold:      cfg.Threshold,
		Factors:        factors,
		Recommendation: model.RecommendationFor(total),
	}
}

// NameScore rates name similarity 0-100 as the maximum of several
// independent estimators, so any one strong signal passes.
func NameScore(queryName, candidateName string) float64 {
	q := normalize.Normalize(queryName)
	c := normalize.Normalize(candidateName)
	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return 100
	}

	// Spacing variants ("al baik" vs "albaik") compare equal once the
	// spaces are stripped.
	qd := strings.ReplaceAll(q, " ", "")
	cd := strings.ReplaceAll(c, " ", "")
	if qd == cd {
		return 100
	}

	best := 0.0

	// Containment over the space-stripped forms, guarded so trivially
	// short strings can't match.
	shorter := qd
	if len(cd) < len(shorter) {
		shorter = cd
	}
	if len([]rune(shorter)) > 3 {
		if strings.Contains(cd, qd) {
			best = 95
		} else if strings.Contains(qd, cd) {
			best = 90
		}
	}

	if s := similarity.Ratio(q, c) * 100; s > best {
		best = s
	}

	qTokens := normalize.Tokens(queryName, 1)
	cTokens := normalize.Tokens(candidateName, 1)
	if s := similarity.TokenOverlap(qTokens, cTokens) * 100; s > best {
		best = s
	}

	if s := math.Min(similarity.CommonPrefixRatio(q, c)*100, 85); s > best {
		best = s
	}

	return clamp(best)
}

// CityScore rates 0-100 how well an address matches the queried city.
// Missing input is neutral: it neither penalizes nor rewards.
func CityScore(city, address string) float64 {
	nc := normalize.Normalize(city)
	na := normalize.Normalize(address)
	if nc == "" || na == "" {
		return 50
	}
	if strings.Contains(na, nc) || strings.Contains(nc, na) {
		return 100
	}

	tokens := normalize.Tokens(city, 2)
	if len(tokens) == 0 {
		return 30
	}
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(na, tok) {
			matched++
		}
	}
	if matched == 0 {
		return 30
	}
	// Scale the matched fraction into [20,100].
	return 20 + 80*float64(matched)/float64(len(tokens))
}

// ActivityScore rates 0-100 how well a candidate category matches the
// queried activity.
func ActivityScore(activity, category string) float64 {
	na := normalize.Normalize(activity)
	nc := normalize.Normalize(category)
	if na == "" || nc == "" {
		return 50
	}
	if na == nc {
		return 100
	}
	if strings.Contains(nc, na) || strings.Contains(na, nc) {
		return 90
	}
	return clamp(similarity.TokenOverlap(normalize.Tokens(activity, 1), normalize.Tokens(category, 1)) * 100)
}

// ContactScore rates 0-100 the presence of contact data on a candidate.
// Additive and order-independent: phone 40, website 30, email 20,
// address 10, capped at 100. An address with no direct contact channel
// is neutral: the address is already weighed by the city factor.
func ContactScore(c model.Candidate) float64 {
	var s float64
	if c.Phone != "" {
		s += 40
	}
	if c.Website != "" {
		s += 30
	}
	if c.Email != "" {
		s += 20
	}
	if s == 0 {
		if c.Address != "" {
			return 50
		}
		return 0
	}
	if c.Address != "" {
		s += 10
	}
	return math.Min(s, 100)
}

// FilterAndRank scores every candidate, keeps those at or above the
// threshold and sorts them descending by score.
func FilterAndRank(query model.SearchQuery, candidates []model.Candidate, cfg Config, threshold float64) []model.ScoredCandidate {
	var out []model.ScoredCandidate
	for _, c := range candidates {
		s := Score(query, c, cfg)
		if s.Total >= threshold {
			out = append(out, model.ScoredCandidate{Candidate: c, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.Total > out[j].Score.Total
	})
	return out
}

// BestMatch returns the highest-scoring candidate at or above the
// threshold, or nil when none qualifies.
func BestMatch(query model.SearchQuery, candidates []model.Candidate, cfg Config, threshold float64) *model.ScoredCandidate {
	ranked := FilterAndRank(query, candidates, cfg, threshold)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
