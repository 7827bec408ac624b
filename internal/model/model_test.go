package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQueryValidate(t *testing.T) {
	q := SearchQuery{Name: "Al Baik"}
	require.NoError(t, q.Validate())
	assert.Equal(t, ModeSingle, q.Mode)

	q = SearchQuery{Name: "Al Baik", Mode: ModeBulk}
	require.NoError(t, q.Validate())

	q = SearchQuery{Name: "   "}
	err := q.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQuery))

	q = SearchQuery{Name: "x", Mode: "streaming"}
	err = q.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestSearchQueryTerms(t *testing.T) {
	q := SearchQuery{Name: "Al Baik"}
	assert.Equal(t, "Al Baik", q.Terms())

	q = SearchQuery{Name: "Al Baik", City: "Jeddah", Country: "Saudi Arabia", Activity: "Restaurant"}
	assert.Equal(t, "Al Baik Restaurant Jeddah Saudi Arabia", q.Terms())
}

func TestRecommendationFor(t *testing.T) {
	assert.Equal(t, ExactMatch, RecommendationFor(100))
	assert.Equal(t, ExactMatch, RecommendationFor(95))
	assert.Equal(t, HighConfidence, RecommendationFor(94.9))
	assert.Equal(t, HighConfidence, RecommendationFor(90))
	assert.Equal(t, PossibleMatch, RecommendationFor(80))
	assert.Equal(t, LowConfidence, RecommendationFor(70))
	assert.Equal(t, NoMatch, RecommendationFor(69.9))
	assert.Equal(t, NoMatch, RecommendationFor(0))
}

func TestAggregateLinkCount(t *testing.T) {
	agg := &ResultAggregate{}
	assert.Zero(t, agg.LinkCount())

	agg.Website = "https://albaik.com"
	assert.Equal(t, 1, agg.LinkCount())

	agg.SocialLinks = map[Platform]string{
		PlatformInstagram: "https://instagram.com/albaik",
		PlatformFacebook:  "https://facebook.com/albaik",
	}
	assert.Equal(t, 3, agg.LinkCount())
}

func TestAggregatePopulatedFields(t *testing.T) {
	agg := &ResultAggregate{}
	assert.Zero(t, agg.PopulatedFields())

	agg.Name = "Al Baik"
	agg.Phone = "012"
	agg.SocialLinks = map[Platform]string{PlatformInstagram: "u"}
	assert.Equal(t, 3, agg.PopulatedFields())
}

func TestAggregateSourceNames(t *testing.T) {
	agg := &ResultAggregate{}
	agg.AddSource(TierDirectory)
	agg.AddSource(TierSocialEnrichment)

	assert.Equal(t, []string{"directory", "socialEnrichment"}, agg.SourceNames())
}
