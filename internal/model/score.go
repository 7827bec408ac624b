package model

// Recommendation is the categorical verdict derived from a match score.
type Recommendation string

// Recommendation bands on the total score.
const (
	ExactMatch     Recommendation = "exact_match"      // >= 95
	HighConfidence Recommendation = "high_confidence"  // >= 90
	PossibleMatch  Recommendation = "possible_match"   // >= 80
	LowConfidence  Recommendation = "low_confidence"   // >= 70
	NoMatch        Recommendation = "no_match"
)

// Factor is one weighted component of a match score.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// MatchScore is the scored comparison of a query against a candidate.
// It is derived data, recomputed whenever the candidate it describes
// changes materially.
type MatchScore struct {
	Total          float64        `json:"total"`
	IsMatch        bool           `json:"is_match"`
	Threshold      float64        `json:"threshold"`
	Factors        []Factor       `json:"factors"`
	Recommendation Recommendation `json:"recommendation"`
}

// RecommendationFor maps a total score to its categorical band.
func RecommendationFor(total float64) Recommendation {
	switch {
	case total >= 95:
		return ExactMatch
	case total >= 90:
		return HighConfidence
	case total >= 80:
		return PossibleMatch
	case total >= 70:
		return LowConfidence
	default:
		return NoMatch
	}
}
