package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/resolve-cli/internal/matcher"
	"github.com/sells-group/resolve-cli/internal/model"
	"github.com/sells-group/resolve-cli/internal/providers"
	"github.com/sells-group/resolve-cli/internal/resolver"
	"github.com/sells-group/resolve-cli/internal/resolver/provider"
	"github.com/sells-group/resolve-cli/internal/social"
	"github.com/sells-group/resolve-cli/internal/store"
	"github.com/sells-group/resolve-cli/pkg/places"
	"github.com/sells-group/resolve-cli/pkg/serper"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.SQLitePath
		if path == "" {
			path = "resolve.db"
		}
		return store.NewSQLite(path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// engineConfig maps the loaded application config onto a resolver config.
func engineConfig() resolver.Config {
	rc := resolver.DefaultConfig()
	rc.MatchThreshold = cfg.Resolver.MatchThreshold
	rc.SeedThreshold = cfg.Resolver.SeedThreshold
	rc.FinalThreshold = cfg.Resolver.FinalThreshold
	rc.BulkThreshold = cfg.Bulk.Threshold
	rc.MaxResults = cfg.Resolver.MaxResults
	rc.EnableDirectory = cfg.Resolver.EnableDirectory
	rc.EnableWebSearch = cfg.Resolver.EnableWebSearch
	rc.EnableSocialSearch = cfg.Resolver.EnableSocial
	rc.EnableSocialEnrichment = cfg.Resolver.EnableEnrichment && cfg.Social.EnrichProfiles
	if cfg.Resolver.ProviderTimeout > 0 {
		rc.ProviderTimeout = time.Duration(cfg.Resolver.ProviderTimeout) * time.Second
	}
	if cfg.Resolver.StepDelayMs > 0 {
		rc.StepDelay = time.Duration(cfg.Resolver.StepDelayMs) * time.Millisecond
	}
	rc.Scorer = matcher.Config{
		Weights: matcher.Weights{
			Name:     cfg.Matcher.NameWeight,
			City:     cfg.Matcher.CityWeight,
			Activity: cfg.Matcher.ActivityWeight,
			Contact:  cfg.Matcher.ContactWeight,
		},
		Threshold: cfg.Resolver.MatchThreshold,
	}
	return rc
}

// newEngine wires provider clients into a fresh engine. Each search owns
// its engine; callers needing concurrent searches call this per query.
func newEngine() *resolver.Engine {
	var directory provider.Directory
	if cfg.Places.Key != "" {
		directory = providers.NewPlacesDirectory(
			places.NewClient(cfg.Places.Key, places.WithBaseURL(cfg.Places.BaseURL)),
		)
	}

	var web provider.WebSearcher
	registry := provider.NewRegistry()
	if cfg.Serper.Key != "" {
		serperClient := serper.NewClient(cfg.Serper.Key, serper.WithBaseURL(cfg.Serper.BaseURL))
		web = providers.NewSerperWebSearcher(serperClient)

		searcher := social.NewSearcher(serperClient)
		for _, name := range cfg.Social.Platforms {
			registry.Register(model.Platform(name), searcher)
		}
	}

	var enricher provider.ProfileEnricher
	if cfg.Social.EnrichProfiles {
		enricher = social.NewEnricher()
	}

	return resolver.New(engineConfig(), directory, web, registry, enricher)
}
