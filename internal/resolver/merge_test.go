package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/resolver/provider"
)

func TestSeedFromCandidate(t *testing.T) {
	agg := &model.ResultAggregate{}
	seedFromCandidate(agg, model.Candidate{
		Name:    "Al Baik",
		Website: "https://albaik.com",
		SocialLinks: map[model.Platform]string{
			model.PlatformInstagram: "https://instagram.com/albaik",
		},
	}, model.TierDirectory)

	assert.Equal(t, "Al Baik", agg.Name)
	assert.Equal(t, []model.Tier{model.TierDirectory}, agg.Sources)
	assert.Equal(t, 2, agg.LinkCount())
}

func TestSeedFromCandidateClonesLinks(t *testing.T) {
	seeded := model.Candidate{
		Name: "Al Baik",
		SocialLinks: map[model.Platform]string{
			model.PlatformInstagram: "https://instagram.com/albaik",
		},
	}

	agg := &model.ResultAggregate{}
	seedFromCandidate(agg, seeded, model.TierDirectory)

	mergeSocialLinks(agg, map[model.Platform]string{
		model.PlatformFacebook: "https://facebook.com/albaik",
	})

	assert.Len(t, agg.SocialLinks, 2)
	assert.Len(t, seeded.SocialLinks, 1)
	assert.NotContains(t, seeded.SocialLinks, model.PlatformFacebook)
}

func TestMergeWebFindingsNeverOverwrites(t *testing.T) {
	agg := &model.ResultAggregate{}
	seedFromCandidate(agg, model.Candidate{
		Name:    "Al Baik",
		Website: "https://albaik.com",
	}, model.TierDirectory)

	changed := mergeWebFindings(agg, &provider.WebFindings{
		OfficialWebsite: "https://impostor.example.com",
		SocialLinks: map[model.Platform]string{
			model.PlatformFacebook: "https://facebook.com/albaik",
		},
	})

	assert.True(t, changed)
	assert.Equal(t, "https://albaik.com", agg.Website)
	assert.Equal(t, "https://facebook.com/albaik", agg.SocialLinks[model.PlatformFacebook])
}

func TestMergeWebFindingsNoChange(t *testing.T) {
	agg := &model.ResultAggregate{}
	seedFromCandidate(agg, model.Candidate{
		Name:    "Al Baik",
		Website: "https://albaik.com",
		SocialLinks: map[model.Platform]string{
			model.PlatformFacebook: "https://facebook.com/albaik",
		},
	}, model.TierDirectory)

	changed := mergeWebFindings(agg, &provider.WebFindings{
		OfficialWebsite: "https://impostor.example.com",
		SocialLinks: map[model.Platform]string{
			model.PlatformFacebook: "https://facebook.com/fake",
		},
	})

	assert.False(t, changed)
	assert.Equal(t, "https://facebook.com/albaik", agg.SocialLinks[model.PlatformFacebook])
}

func TestMergeSocialLinksExistingWins(t *testing.T) {
	agg := &model.ResultAggregate{}
	agg.SocialLinks = map[model.Platform]string{
		model.PlatformInstagram: "https://instagram.com/albaik",
	}

	changed := mergeSocialLinks(agg, map[model.Platform]string{
		model.PlatformInstagram: "https://instagram.com/fake",
		model.PlatformTikTok:    "https://tiktok.com/@albaik",
		model.PlatformYouTube:   "",
	})

	assert.True(t, changed)
	assert.Equal(t, "https://instagram.com/albaik", agg.SocialLinks[model.PlatformInstagram])
	assert.Equal(t, "https://tiktok.com/@albaik", agg.SocialLinks[model.PlatformTikTok])
	assert.NotContains(t, agg.SocialLinks, model.PlatformYouTube)
}

func TestMergeMonotonicity(t *testing.T) {
	agg := &model.ResultAggregate{}
	seedFromCandidate(agg, model.Candidate{Name: "Al Baik"}, model.TierDirectory)

	before := agg.PopulatedFields()
	mergeWebFindings(agg, &provider.WebFindings{
		OfficialWebsite: "https://albaik.com",
		SocialLinks: map[model.Platform]string{
			model.PlatformInstagram: "https://instagram.com/albaik",
		},
	})
	after := agg.PopulatedFields()
	assert.Greater(t, after, before)

	// Merging empty findings cannot lose anything.
	mergeWebFindings(agg, &provider.WebFindings{})
	assert.Equal(t, after, agg.PopulatedFields())
}

func TestAttachProfileAndSummary(t *testing.T) {
	agg := &model.ResultAggregate{}
	attachProfile(agg, model.Profile{
		Platform:  model.PlatformInstagram,
		URL:       "https://instagram.com/albaik",
		Followers: 120000,
	})
	attachProfile(agg, model.Profile{
		Platform:  model.PlatformFacebook,
		URL:       "https://facebook.com/albaik",
		Followers: 80000,
	})

	summary := profileSummary(agg.SocialProfiles)
	assert.Contains(t, summary, "2 profile(s)")
	assert.Contains(t, summary, "facebook, instagram")
	assert.Contains(t, summary, "200000 followers")
}

func TestProfileSummaryEmpty(t *testing.T) {
	assert.Empty(t, profileSummary(nil))
}

func TestAddSourceOrderedSet(t *testing.T) {
	agg := &model.ResultAggregate{}
	agg.AddSource(model.TierDirectory)
	agg.AddSource(model.TierWebSearch)
	agg.AddSource(model.TierDirectory)

	assert.Equal(t, []model.Tier{model.TierDirectory, model.TierWebSearch}, agg.Sources)
}
