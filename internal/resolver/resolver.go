// Package resolver drives the tiered search pipeline that turns a loose
// business query into a verified, enriched entity record.
package resolver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/resolve-cli/internal/matcher"
	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/resolver/provider"
)

// socialSeedConfidence is the flat score assigned when the social tier
// has to seed the aggregate because nothing else succeeded.
const socialSeedConfidence = 75

// Engine runs searches through the provider tiers. One Engine owns at
// most one in-flight search; independent searches use independent
// engines and share no mutable state.
type Engine struct {
	cfg       Config
	directory provider.Directory
	web       provider.WebSearcher
	social    *provider.Registry
	enricher  provider.ProfileEnricher

	aborted atomic.Bool
}

// New creates an engine. Any provider may be nil; its tier is skipped.
func New(cfg Config, directory provider.Directory, web provider.WebSearcher, social *provider.Registry, enricher provider.ProfileEnricher) *Engine {
	if social == nil {
		social = provider.NewRegistry()
	}
	return &Engine{
		cfg:       cfg,
		directory: directory,
		web:       web,
		social:    social,
		enricher:  enricher,
	}
}

// Abort requests cooperative cancellation of the in-flight search. The
// flag transition is one-way: once set, no further tier starts, but the
// tier currently running completes and its output is still merged.
func (e *Engine) Abort() {
	e.aborted.Store(true)
}

func (e *Engine) interrupted(ctx context.Context) bool {
	return e.aborted.Load() || ctx.Err() != nil
}

// Resolve runs the full tier cascade for one query. Only invalid input
// is returned as an error; every other outcome, including "no confident
// match" and cancellation, is encoded in the SearchResult.
func (e *Engine) Resolve(ctx context.Context, query model.SearchQuery, onProgress ProgressFunc) (*model.SearchResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("query", query.Name), zap.String("mode", string(query.Mode)))
	log.Info("resolver: starting search")

	start := time.Now()
	prog := newReporter(onProgress)

	if query.Mode == model.ModeBulk {
		return e.resolveBulk(ctx, query, prog, start, log)
	}

	agg := &model.ResultAggregate{}
	seeded := false
	seedTier := model.Tier("")
	seedBar := 0.0
	bestScore := 0.0

	// Tier 1: authoritative directory lookup.
	if e.cfg.EnableDirectory && e.directory != nil && !e.interrupted(ctx) {
		prog.report(progressStart, "searching business directory")

		candidate, err := e.callDirectory(ctx, query)
		switch {
		case err != nil:
			log.Warn("resolver: tier failed", zap.String("tier", string(model.TierDirectory)), zap.Error(err))
		case candidate != nil:
			score := matcher.Score(query, *candidate, e.cfg.scorerAt(e.cfg.MatchThreshold))
			bestScore = score.Total
			if score.IsMatch {
				seedFromCandidate(agg, *candidate, model.TierDirectory)
				agg.MatchScore = score
				seeded = true
				seedTier = model.TierDirectory
				seedBar = e.cfg.MatchThreshold
				log.Info("resolver: directory match accepted", zap.Float64("score", score.Total))
			} else {
				log.Debug("resolver: directory candidate below threshold",
					zap.String("candidate", candidate.Name),
					zap.Float64("score", score.Total),
				)
			}
		}
	}

	// Tier 2: generic web search. Runs when the directory produced no
	// accepted match, or the aggregate is sparse on links.
	if e.cfg.EnableWebSearch && e.web != nil && !e.interrupted(ctx) &&
		(!seeded || agg.Website == "" || agg.LinkCount() < 2) {
		prog.report(progressWebSearch, "searching the web")

		findings, err := e.callWeb(ctx, query)
		switch {
		case err != nil:
			log.Warn("resolver: tier failed", zap.String("tier", string(model.TierWebSearch)), zap.Error(err))
		case findings != nil:
			if !seeded {
				candidate := candidateFromFindings(query, findings)
				score := matcher.Score(query, candidate, e.cfg.scorerAt(e.cfg.SeedThreshold))
				if score.Total > bestScore {
					bestScore = score.Total
				}
				if score.IsMatch {
					seedFromCandidate(agg, candidate, model.TierWebSearch)
					agg.MatchScore = score
					seeded = true
					seedTier = model.TierWebSearch
					seedBar = e.cfg.SeedThreshold
					log.Info("resolver: web search seeded aggregate", zap.Float64("score", score.Total))
				}
			} else if mergeWebFindings(agg, findings) {
				agg.AddSource(model.TierWebSearch)
			}
		}
	}

	// Tier 3: per-platform social search. Runs when there is no accepted
	// match yet or fewer than two known-platform links.
	if e.cfg.EnableSocialSearch && !e.interrupted(ctx) &&
		(!seeded || e.knownSocialLinks(agg) < 2) {
		prog.report(progressSocial, "searching social platforms")

		hits := e.searchSocialPlatforms(ctx, query, agg, log)
		if len(hits) > 0 {
			links := make(map[model.Platform]string, len(hits))
			name := ""
			for platform, hit := range hits {
				links[platform] = hit.URL
				if name == "" && hit.Name != "" {
					name = hit.Name
				}
			}

			if !seeded {
				if name == "" {
					name = query.Name
				}
				seedFromCandidate(agg, model.Candidate{Name: name, SocialLinks: links}, model.TierSocialSearch)
				agg.MatchScore = &model.MatchScore{
					Total:          socialSeedConfidence,
					IsMatch:        socialSeedConfidence >= e.cfg.SeedThreshold,
					Threshold:      e.cfg.SeedThreshold,
					Recommendation: model.RecommendationFor(socialSeedConfidence),
				}
				seeded = true
				seedTier = model.TierSocialSearch
				seedBar = e.cfg.SeedThreshold
				log.Info("resolver: social search seeded aggregate", zap.Int("links", len(links)))
			} else if mergeSocialLinks(agg, links) {
				agg.AddSource(model.TierSocialSearch)
			}
		}
	}

	// Tier 4: deep profile enrichment. Only runs when a supported social
	// link exists; it attaches profiles but never changes match status.
	if e.cfg.EnableSocialEnrichment && e.enricher != nil && !e.interrupted(ctx) &&
		e.knownSocialLinks(agg) > 0 {
		prog.report(progressEnrichment, "enriching social profiles")
		e.enrichProfiles(ctx, agg, log)
	}

	// Final validation re-scores the completed aggregate so that cheap
	// late enrichment cannot silently lower confidence.
	result := e.finalize(query, agg, seeded, seedTier, seedBar, bestScore, start, log)
	prog.report(progressDone, "done")
	return result, nil
}

// resolveBulk collects every directory candidate above the bulk bar.
// Bulk search returns a collection, not a single resolved entity, so
// tiers 2-4 and final single-record validation do not apply.
func (e *Engine) resolveBulk(ctx context.Context, query model.SearchQuery, prog *reporter, start time.Time, log *zap.Logger) (*model.SearchResult, error) {
	result := &model.SearchResult{Sources: []string{}}

	if e.interrupted(ctx) {
		result.Aborted = true
		result.SearchTimeMs = time.Since(start).Milliseconds()
		return result, nil
	}

	max := query.MaxResults
	if max <= 0 || max > e.cfg.MaxResults {
		max = e.cfg.MaxResults
	}

	if e.cfg.EnableDirectory && e.directory != nil {
		prog.report(progressStart, "searching business directory")

		tctx, cancel := e.withTimeout(ctx)
		candidates, err := e.directory.SearchAll(tctx, query, max)
		cancel()
		if err != nil {
			log.Warn("resolver: tier failed", zap.String("tier", string(model.TierDirectory)), zap.Error(err))
		} else {
			ranked := matcher.FilterAndRank(query, candidates, e.cfg.Scorer, e.cfg.BulkThreshold)
			if len(ranked) > max {
				ranked = ranked[:max]
			}
			result.Matches = ranked
			if len(ranked) > 0 {
				result.Success = true
				result.MatchScore = ranked[0].Score.Total
				result.Sources = []string{string(model.TierDirectory)}
			}
		}
	}

	if !result.Success {
		result.Error = "no candidates above bulk threshold"
	}
	result.Aborted = e.aborted.Load()
	result.SearchTimeMs = time.Since(start).Milliseconds()
	log.Info("resolver: bulk search complete", zap.Int("matches", len(result.Matches)))
	prog.report(progressDone, "done")
	return result, nil
}

func (e *Engine) finalize(query model.SearchQuery, agg *model.ResultAggregate, seeded bool, seedTier model.Tier, seedBar, bestScore float64, start time.Time, log *zap.Logger) *model.SearchResult {
	agg.SearchTimeMs = time.Since(start).Milliseconds()
	agg.Aborted = e.aborted.Load()

	result := &model.SearchResult{
		Sources:      agg.SourceNames(),
		SearchTimeMs: agg.SearchTimeMs,
		Aborted:      agg.Aborted,
	}

	if !seeded {
		result.MatchScore = bestScore
		if agg.Aborted {
			result.Data = agg
		} else {
			result.Error = fmt.Sprintf("no confident match (best score %.0f)", bestScore)
		}
		log.Info("resolver: search ended without a match",
			zap.Float64("best_score", bestScore),
			zap.Bool("aborted", agg.Aborted),
		)
		return result
	}

	// The validation bar is the bar that admitted the seed, unless the
	// caller pinned FinalThreshold explicitly.
	bar := seedBar
	if e.cfg.FinalThreshold > 0 {
		bar = e.cfg.FinalThreshold
	}

	final := matcher.Score(query, agg.Candidate, e.cfg.scorerAt(bar))
	if seedTier == model.TierSocialSearch && agg.MatchScore != nil {
		// A social seed carries flat confidence; re-scoring a record
		// that holds little more than links would be meaningless.
		final = agg.MatchScore
		final.IsMatch = final.Total >= bar
		final.Threshold = bar
	}
	agg.MatchScore = final
	result.MatchScore = final.Total

	if !final.IsMatch {
		result.Error = fmt.Sprintf("final validation failed: score %.0f below threshold %.0f", final.Total, bar)
		log.Info("resolver: final validation rejected aggregate",
			zap.Float64("score", final.Total),
			zap.Float64("threshold", bar),
		)
		return result
	}

	result.Success = true
	result.Data = agg
	log.Info("resolver: search complete",
		zap.Float64("score", final.Total),
		zap.Strings("sources", result.Sources),
	)
	return result
}

// searchSocialPlatforms queries each registered platform the aggregate
// lacks a link for, with a settle delay between platforms. Failures are
// absorbed per platform.
func (e *Engine) searchSocialPlatforms(ctx context.Context, query model.SearchQuery, agg *model.ResultAggregate, log *zap.Logger) map[model.Platform]provider.SocialHit {
	hits := make(map[model.Platform]provider.SocialHit)

	first := true
	for _, platform := range e.social.Platforms() {
		if e.interrupted(ctx) {
			break
		}
		if agg.SocialLinks[platform] != "" {
			continue
		}
		if !first && !e.settle(ctx) {
			break
		}
		first = false

		searcher := e.social.Get(platform)
		if searcher == nil {
			continue
		}

		tctx, cancel := e.withTimeout(ctx)
		hit, err := searcher.Search(tctx, platform, query)
		cancel()
		if err != nil {
			log.Warn("resolver: social lookup failed",
				zap.String("tier", string(model.TierSocialSearch)),
				zap.String("platform", string(platform)),
				zap.Error(err),
			)
			continue
		}
		if hit != nil && hit.URL != "" {
			hits[platform] = *hit
		}
	}
	return hits
}

// enrichProfiles fetches the tier-4 enrichment record for every
// supported social link on the aggregate.
func (e *Engine) enrichProfiles(ctx context.Context, agg *model.ResultAggregate, log *zap.Logger) {
	enriched := false

	first := true
	for _, platform := range e.social.Platforms() {
		if e.interrupted(ctx) {
			break
		}
		url := agg.SocialLinks[platform]
		if url == "" {
			continue
		}
		if !first && !e.settle(ctx) {
			break
		}
		first = false

		tctx, cancel := e.withTimeout(ctx)
		p, err := e.enricher.Enrich(tctx, platform, url)
		cancel()
		if err != nil {
			log.Warn("resolver: profile enrichment failed",
				zap.String("tier", string(model.TierSocialEnrichment)),
				zap.String("platform", string(platform)),
				zap.Error(err),
			)
			continue
		}
		if p != nil {
			attachProfile(agg, *p)
			enriched = true
		}
	}

	if enriched {
		agg.ProfileSummary = profileSummary(agg.SocialProfiles)
		agg.AddSource(model.TierSocialEnrichment)
	}
}

func (e *Engine) callDirectory(ctx context.Context, query model.SearchQuery) (*model.Candidate, error) {
	tctx, cancel := e.withTimeout(ctx)
	defer cancel()
	c, err := e.directory.Search(tctx, query)
	if err != nil {
		return nil, provider.NewError(string(model.TierDirectory), err)
	}
	return c, nil
}

func (e *Engine) callWeb(ctx context.Context, query model.SearchQuery) (*provider.WebFindings, error) {
	tctx, cancel := e.withTimeout(ctx)
	defer cancel()
	f, err := e.web.Search(tctx, query)
	if err != nil {
		return nil, provider.NewError(string(model.TierWebSearch), err)
	}
	return f, nil
}

// knownSocialLinks counts aggregate links on platforms with a registered
// searcher.
func (e *Engine) knownSocialLinks(agg *model.ResultAggregate) int {
	n := 0
	for platform, url := range agg.SocialLinks {
		if url != "" && e.social.Supported(platform) {
			n++
		}
	}
	return n
}

// settle pauses between provider sub-steps. It returns false when the
// search was cancelled during the pause.
func (e *Engine) settle(ctx context.Context) bool {
	if e.cfg.StepDelay <= 0 {
		return !e.interrupted(ctx)
	}
	timer := time.NewTimer(e.cfg.StepDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return !e.interrupted(ctx)
	}
}

// withTimeout bounds a single provider call. Timeouts resolve to an
// empty result at the tier boundary, never to a search failure.
func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.ProviderTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.cfg.ProviderTimeout)
}

func candidateFromFindings(query model.SearchQuery, f *provider.WebFindings) model.Candidate {
	name := f.Name
	if name == "" {
		name = query.Name
	}
	links := f.SocialLinks
	if links == nil {
		links = map[model.Platform]string{}
	}
	return model.Candidate{
		Name:        name,
		Website:     f.OfficialWebsite,
		SourceURL:   f.SourceURL,
		SocialLinks: links,
	}
}
