package matcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.50, cfg.Weights.Name, 0.001)
	assert.InDelta(t, 0.25, cfg.Weights.City, 0.001)
	assert.InDelta(t, 0.15, cfg.Weights.Activity, 0.001)
	assert.InDelta(t, 0.10, cfg.Weights.Contact, 0.001)
	assert.InDelta(t, 90, cfg.Threshold, 0.001)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
matcher:
  weights:
    name: 0.6
    city: 0.2
    activity: 0.1
    contact: 0.1
  threshold: 85
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, cfg.Weights.Name, 0.001)
	assert.InDelta(t, 0.2, cfg.Weights.City, 0.001)
	assert.InDelta(t, 85, cfg.Threshold, 0.001)
}

func TestLoadConfigMissingFileFallsBack(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	// Defaults still returned so the caller can proceed.
	assert.InDelta(t, 90, cfg.Threshold, 0.001)
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("matcher:\n  threshold: 80\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 80, cfg.Threshold, 0.001)
	assert.InDelta(t, 0.50, cfg.Weights.Name, 0.001)
}
