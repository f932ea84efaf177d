package testsupport

import (
	"path/filepath"
	"testing"

	"shortcast/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Generator.APIKey = "test"
	cfgVal.TTS.GoogleAPIKey = "test"
	cfgVal.Upload.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithUploadEnabled turns on the upload phase for the test config.
func WithUploadEnabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Upload.Enabled = true
	}
}

// WithStrictTransitions toggles strict status transition checking.
func WithStrictTransitions(strict bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.StrictTransitions = strict
	}
}

// WithReadingSpeed sets the timing preset on the test config.
func WithReadingSpeed(preset string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Script.ReadingSpeed = preset
	}
}
