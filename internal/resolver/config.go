package resolver

import (
	"time"

	"github.com/sells-group/resolve-cli/internal/matcher"
)

// Config controls one resolution engine. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// MatchThreshold is the acceptance bar for the directory tier and
	// the default caller-facing confidence threshold.
	MatchThreshold float64 `yaml:"match_threshold" mapstructure:"match_threshold"`

	// SeedThreshold is the lower bar under which the web-search tier may
	// seed an otherwise empty aggregate. The social tier's flat seed
	// confidence is also validated against this bar.
	SeedThreshold float64 `yaml:"seed_threshold" mapstructure:"seed_threshold"`

	// FinalThreshold, when set above zero, forces final validation to use
	// this bar for every seed path. When zero, validation re-checks
	// against the bar that admitted the seed, so a web-search seed
	// accepted at 70 is not retroactively rejected at 90.
	FinalThreshold float64 `yaml:"final_threshold" mapstructure:"final_threshold"`

	// BulkThreshold is the minimum score for candidates kept in bulk mode.
	BulkThreshold float64 `yaml:"bulk_threshold" mapstructure:"bulk_threshold"`

	EnableDirectory        bool `yaml:"enable_directory" mapstructure:"enable_directory"`
	EnableWebSearch        bool `yaml:"enable_web_search" mapstructure:"enable_web_search"`
	EnableSocialSearch     bool `yaml:"enable_social_search" mapstructure:"enable_social_search"`
	EnableSocialEnrichment bool `yaml:"enable_social_enrichment" mapstructure:"enable_social_enrichment"`

	// MaxResults caps the bulk-mode result list.
	MaxResults int `yaml:"max_results" mapstructure:"max_results"`

	// ProviderTimeout bounds each provider call. Timeouts are soft: the
	// tier contributes nothing and the search continues.
	ProviderTimeout time.Duration `yaml:"provider_timeout" mapstructure:"provider_timeout"`

	// StepDelay is the settle pause between per-platform sub-steps.
	StepDelay time.Duration `yaml:"step_delay" mapstructure:"step_delay"`

	// Scorer is the immutable match-scorer configuration.
	Scorer matcher.Config `yaml:"scorer" mapstructure:"scorer"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		MatchThreshold:         90,
		SeedThreshold:          70,
		BulkThreshold:          70,
		EnableDirectory:        true,
		EnableWebSearch:        true,
		EnableSocialSearch:     true,
		EnableSocialEnrichment: true,
		MaxResults:             30,
		ProviderTimeout:        20 * time.Second,
		StepDelay:              500 * time.Millisecond,
		Scorer:                 matcher.DefaultConfig(),
	}
}

func (c Config) scorerAt(threshold float64) matcher.Config {
	sc := c.Scorer
	sc.Threshold = threshold
	return sc
}
