package config

import (
	derrors "github.com/deskautomate/engine/internal/errors"
)

// Validate checks a fully-defaulted Config for internally inconsistent values.
func Validate(cfg *Config) error {
	validators := []func(*Config) error{
		validateAccessibility,
		validateLocator,
		validateExecutor,
		validateRecorder,
		validateLogging,
	}

	for _, validate := range validators {
		err := validate(cfg)
		if err != nil {
			return err
		}
	}

	return nil
}

func validateAccessibility(cfg *Config) error {
	switch cfg.Accessibility.DefaultPropertyMode {
	case PropertyModeFast, PropertyModeComplete, PropertyModeSmart:
	default:
		return derrors.Newf(derrors.CodeInvalidConfig,
			"accessibility.default_property_mode must be one of fast|complete|smart, got %q",
			cfg.Accessibility.DefaultPropertyMode)
	}

	if cfg.Accessibility.YieldEveryNElements <= 0 {
		return derrors.New(derrors.CodeInvalidConfig, "accessibility.yield_every_n_elements must be positive")
	}

	if cfg.Accessibility.BatchSize <= 0 {
		return derrors.New(derrors.CodeInvalidConfig, "accessibility.batch_size must be positive")
	}

	return nil
}

func validateLocator(cfg *Config) error {
	if cfg.Locator.DefaultTimeout <= 0 {
		return derrors.New(derrors.CodeInvalidConfig, "locator.default_timeout must be positive")
	}

	if cfg.Locator.PollInterval <= 0 {
		return derrors.New(derrors.CodeInvalidConfig, "locator.poll_interval must be positive")
	}

	if cfg.Locator.PollInterval > cfg.Locator.DefaultTimeout {
		return derrors.New(derrors.CodeInvalidConfig, "locator.poll_interval must not exceed locator.default_timeout")
	}

	return nil
}

func validateExecutor(cfg *Config) error {
	switch cfg.Executor.Verbosity {
	case "quiet", "normal", "verbose":
	default:
		return derrors.Newf(derrors.CodeInvalidConfig,
			"executor.verbosity must be one of quiet|normal|verbose, got %q", cfg.Executor.Verbosity)
	}

	return nil
}

func validateRecorder(cfg *Config) error {
	if cfg.Recorder.MinDragDistance < 0 {
		return derrors.New(derrors.CodeInvalidConfig, "recorder.min_drag_distance must not be negative")
	}

	if cfg.Recorder.TextInputCompletionTimeoutMs <= 0 {
		return derrors.New(derrors.CodeInvalidConfig, "recorder.text_input_completion_timeout_ms must be positive")
	}

	if cfg.Recorder.BroadcastBacklog <= 0 {
		return derrors.New(derrors.CodeInvalidConfig, "recorder.broadcast_backlog must be positive")
	}

	return nil
}

func validateLogging(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return derrors.Newf(derrors.CodeInvalidConfig,
			"logging.level must be one of debug|info|warn|error, got %q", cfg.Logging.Level)
	}

	return nil
}
