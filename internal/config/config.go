package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Places   PlacesConfig   `yaml:"places" mapstructure:"places"`
	Serper   SerperConfig   `yaml:"serper" mapstructure:"serper"`
	Social   SocialConfig   `yaml:"social" mapstructure:"social"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Matcher  MatcherConfig  `yaml:"matcher" mapstructure:"matcher"`
	Bulk     BulkConfig     `yaml:"bulk" mapstructure:"bulk"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the search-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// PlacesConfig holds business directory API settings.
type PlacesConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SerperConfig holds web search API settings.
type SerperConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SocialConfig configures social profile search and enrichment.
type SocialConfig struct {
	Platforms      []string `yaml:"platforms" mapstructure:"platforms"`
	EnrichProfiles bool     `yaml:"enrich_profiles" mapstructure:"enrich_profiles"`
}

// ResolverConfig configures the tiered resolution engine.
type ResolverConfig struct {
	MatchThreshold   float64 `yaml:"match_threshold" mapstructure:"match_threshold"`
	SeedThreshold    float64 `yaml:"seed_threshold" mapstructure:"seed_threshold"`
	FinalThreshold   float64 `yaml:"final_threshold" mapstructure:"final_threshold"`
	MaxResults       int     `yaml:"max_results" mapstructure:"max_results"`
	ProviderTimeout  int     `yaml:"provider_timeout_secs" mapstructure:"provider_timeout_secs"`
	StepDelayMs      int     `yaml:"step_delay_ms" mapstructure:"step_delay_ms"`
	EnableDirectory  bool    `yaml:"enable_directory" mapstructure:"enable_directory"`
	EnableWebSearch  bool    `yaml:"enable_web_search" mapstructure:"enable_web_search"`
	EnableSocial     bool    `yaml:"enable_social" mapstructure:"enable_social"`
	EnableEnrichment bool    `yaml:"enable_enrichment" mapstructure:"enable_enrichment"`
}

// MatcherConfig configures match scoring.
type MatcherConfig struct {
	NameWeight     float64 `yaml:"name_weight" mapstructure:"name_weight"`
	CityWeight     float64 `yaml:"city_weight" mapstructure:"city_weight"`
	ActivityWeight float64 `yaml:"activity_weight" mapstructure:"activity_weight"`
	ContactWeight  float64 `yaml:"contact_weight" mapstructure:"contact_weight"`
}

// BulkConfig configures batch resolution.
type BulkConfig struct {
	Threshold     float64 `yaml:"threshold" mapstructure:"threshold"`
	MaxConcurrent int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESOLVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "resolve.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("serper.base_url", "https://google.serper.dev")
	v.SetDefault("social.platforms", []string{"instagram", "facebook", "twitter", "linkedin", "tiktok", "youtube"})
	v.SetDefault("social.enrich_profiles", true)
	v.SetDefault("resolver.match_threshold", 90)
	v.SetDefault("resolver.seed_threshold", 70)
	v.SetDefault("resolver.final_threshold", 0)
	v.SetDefault("resolver.max_results", 30)
	v.SetDefault("resolver.provider_timeout_secs", 20)
	v.SetDefault("resolver.step_delay_ms", 500)
	v.SetDefault("resolver.enable_directory", true)
	v.SetDefault("resolver.enable_web_search", true)
	v.SetDefault("resolver.enable_social", true)
	v.SetDefault("resolver.enable_enrichment", true)
	v.SetDefault("matcher.name_weight", 0.50)
	v.SetDefault("matcher.city_weight", 0.25)
	v.SetDefault("matcher.activity_weight", 0.15)
	v.SetDefault("matcher.contact_weight", 0.10)
	v.SetDefault("bulk.threshold", 70)
	v.SetDefault("bulk.max_concurrent", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
