package config

import "time"

// Default tuning values, applied by Default and by Load for any zero-valued field.
const (
	DefaultYieldEveryNElements      = 200
	DefaultBatchSize                = 50
	DefaultTimeoutPerOperation      = 500 * time.Millisecond
	DefaultHealthCheckTimeout       = 5 * time.Second
	DefaultNearDistancePx           = 100
	DefaultLocatorTimeout           = 5 * time.Second
	DefaultPollInterval             = 30 * time.Millisecond
	DefaultMaxDepth                 = 50
	DefaultVerbosity                = "normal"
	DefaultMouseMoveThrottleMs      = 50
	DefaultMinDragDistance          = 5
	DefaultTextInputCompletionMs    = 1500
	DefaultBroadcastBacklog         = 256
	DefaultLogLevel                 = "info"
	DefaultMaxFileSizeMB            = 10
	DefaultMaxBackups               = 5
	DefaultMaxAgeDays               = 30
)

// Default returns a Config populated with sensible defaults for all sections.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			ExcludedApps:          []string{},
			RestoreCursorPosition: true,
		},
		Accessibility: AccessibilityConfig{
			DefaultPropertyMode: PropertyModeSmart,
			YieldEveryNElements: DefaultYieldEveryNElements,
			BatchSize:           DefaultBatchSize,
			TimeoutPerOperation: DefaultTimeoutPerOperation,
			HealthCheckTimeout:  DefaultHealthCheckTimeout,
			NearDistancePx:      DefaultNearDistancePx,
		},
		Locator: LocatorConfig{
			DefaultTimeout:  DefaultLocatorTimeout,
			PollInterval:    DefaultPollInterval,
			DefaultMaxDepth: DefaultMaxDepth,
		},
		Executor: ExecutorConfig{
			StopOnError:       true,
			Verbosity:         DefaultVerbosity,
			ExecuteJumpsAtEnd: true,
			FollowFallback:    true,
		},
		Recorder: RecorderConfig{
			MouseMoveThrottleMs:          DefaultMouseMoveThrottleMs,
			MinDragDistance:              DefaultMinDragDistance,
			TextInputCompletionTimeoutMs: DefaultTextInputCompletionMs,
			EnableMultithreading:         true,
			FilterMouseNoise:             true,
			BroadcastBacklog:             DefaultBroadcastBacklog,
		},
		Logging: LoggingConfig{
			Level:         DefaultLogLevel,
			Structured:    false,
			MaxFileSizeMB: DefaultMaxFileSizeMB,
			MaxBackups:    DefaultMaxBackups,
			MaxAgeDays:    DefaultMaxAgeDays,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// applyDefaults fills zero-valued fields of cfg with values from Default().
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Accessibility.DefaultPropertyMode == "" {
		cfg.Accessibility.DefaultPropertyMode = defaults.Accessibility.DefaultPropertyMode
	}

	if cfg.Accessibility.YieldEveryNElements == 0 {
		cfg.Accessibility.YieldEveryNElements = defaults.Accessibility.YieldEveryNElements
	}

	if cfg.Accessibility.BatchSize == 0 {
		cfg.Accessibility.BatchSize = defaults.Accessibility.BatchSize
	}

	if cfg.Accessibility.TimeoutPerOperation == 0 {
		cfg.Accessibility.TimeoutPerOperation = defaults.Accessibility.TimeoutPerOperation
	}

	if cfg.Accessibility.HealthCheckTimeout == 0 {
		cfg.Accessibility.HealthCheckTimeout = defaults.Accessibility.HealthCheckTimeout
	}

	if cfg.Accessibility.NearDistancePx == 0 {
		cfg.Accessibility.NearDistancePx = defaults.Accessibility.NearDistancePx
	}

	if cfg.Locator.DefaultTimeout == 0 {
		cfg.Locator.DefaultTimeout = defaults.Locator.DefaultTimeout
	}

	if cfg.Locator.PollInterval == 0 {
		cfg.Locator.PollInterval = defaults.Locator.PollInterval
	}

	if cfg.Locator.DefaultMaxDepth == 0 {
		cfg.Locator.DefaultMaxDepth = defaults.Locator.DefaultMaxDepth
	}

	if cfg.Executor.Verbosity == "" {
		cfg.Executor.Verbosity = defaults.Executor.Verbosity
	}

	if cfg.Recorder.MouseMoveThrottleMs == 0 {
		cfg.Recorder.MouseMoveThrottleMs = defaults.Recorder.MouseMoveThrottleMs
	}

	if cfg.Recorder.MinDragDistance == 0 {
		cfg.Recorder.MinDragDistance = defaults.Recorder.MinDragDistance
	}

	if cfg.Recorder.TextInputCompletionTimeoutMs == 0 {
		cfg.Recorder.TextInputCompletionTimeoutMs = defaults.Recorder.TextInputCompletionTimeoutMs
	}

	if cfg.Recorder.BroadcastBacklog == 0 {
		cfg.Recorder.BroadcastBacklog = defaults.Recorder.BroadcastBacklog
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}

	if cfg.Logging.MaxFileSizeMB == 0 {
		cfg.Logging.MaxFileSizeMB = defaults.Logging.MaxFileSizeMB
	}

	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = defaults.Logging.MaxBackups
	}

	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = defaults.Logging.MaxAgeDays
	}
}
