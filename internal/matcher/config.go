package matcher

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Weights holds the per-factor weights of the match scorer. Absent
// factors contribute neither score nor weight; the total is renormalized
// over the weights actually used.
type Weights struct {
	Name     float64 `yaml:"name"`
	City     float64 `yaml:"city"`
	Activity float64 `yaml:"activity"`
	Contact  float64 `yaml:"contact"`
}

// Config is the immutable scoring configuration passed into each call.
type Config struct {
	Weights   Weights `yaml:"weights"`
	Threshold float64 `yaml:"threshold"`
}

// DefaultConfig returns the standard weights and acceptance threshold.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Name:     0.50,
			City:     0.25,
			Activity: 0.15,
			Contact:  0.10,
		},
		Threshold: 90,
	}
}

// LoadConfig reads scorer configuration from a YAML file. Missing values
// fall back to the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "matcher: read config %s", path)
	}

	// The YAML has a top-level "matcher" key.
	var wrapper struct {
		Matcher struct {
			Weights   *Weights `yaml:"weights"`
			Threshold float64  `yaml:"threshold"`
		} `yaml:"matcher"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return cfg, eris.Wrap(err, "matcher: parse config")
	}

	if wrapper.Matcher.Weights != nil {
		cfg.Weights = *wrapper.Matcher.Weights
	}
	if wrapper.Matcher.Threshold > 0 {
		cfg.Threshold = wrapper.Matcher.Threshold
	}

	return cfg, nil
}
