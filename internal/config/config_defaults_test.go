package config_test

import (
	"testing"

	"github.com/deskautomate/engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NotNil(t, cfg)
	assert.Equal(t, config.PropertyModeSmart, cfg.Accessibility.DefaultPropertyMode)
	assert.Positive(t, cfg.Locator.DefaultTimeout)
	assert.Less(t, cfg.Locator.PollInterval, cfg.Locator.DefaultTimeout)
	assert.NoError(t, config.Validate(cfg))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/path/config.toml")

	require.NoError(t, err)
	assert.Equal(t, config.Default().Accessibility.DefaultPropertyMode, cfg.Accessibility.DefaultPropertyMode)
}

func TestValidate_RejectsUnknownPropertyMode(t *testing.T) {
	cfg := config.Default()
	cfg.Accessibility.DefaultPropertyMode = "bogus"

	err := config.Validate(cfg)
	require.Error(t, err)
}

func TestValidate_RejectsPollIntervalExceedingTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Locator.PollInterval = cfg.Locator.DefaultTimeout * 2

	err := config.Validate(cfg)
	require.Error(t, err)
}
