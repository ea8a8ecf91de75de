// Package config loads and validates the engine's on-disk configuration.
package config

import "time"

// Config is the complete engine configuration structure.
type Config struct {
	General      GeneralConfig      `json:"general"      toml:"general"`
	Accessibility AccessibilityConfig `json:"accessibility" toml:"accessibility"`
	Locator      LocatorConfig      `json:"locator"       toml:"locator"`
	Executor     ExecutorConfig     `json:"executor"      toml:"executor"`
	Recorder     RecorderConfig     `json:"recorder"      toml:"recorder"`
	Logging      LoggingConfig      `json:"logging"       toml:"logging"`
	Metrics      MetricsConfig      `json:"metrics"       toml:"metrics"`
}

// GeneralConfig holds application-wide settings.
type GeneralConfig struct {
	ExcludedApps          []string `json:"excludedApps"          toml:"excluded_apps"`
	RestoreCursorPosition bool     `json:"restoreCursorPosition" toml:"restore_cursor_position"`
}

// PropertyMode controls how much of an element's attribute set is loaded
// while building a window tree (spec §4.1).
type PropertyMode string

// Supported property-loading modes.
const (
	PropertyModeFast     PropertyMode = "fast"
	PropertyModeComplete PropertyMode = "complete"
	PropertyModeSmart    PropertyMode = "smart"
)

// AccessibilityConfig tunes the platform accessibility facade (C1).
type AccessibilityConfig struct {
	DefaultPropertyMode      PropertyMode  `json:"defaultPropertyMode"      toml:"default_property_mode"`
	YieldEveryNElements      int           `json:"yieldEveryNElements"      toml:"yield_every_n_elements"`
	BatchSize                int           `json:"batchSize"                toml:"batch_size"`
	TimeoutPerOperation      time.Duration `json:"timeoutPerOperation"      toml:"timeout_per_operation"`
	HealthCheckTimeout       time.Duration `json:"healthCheckTimeout"       toml:"health_check_timeout"`
	NearDistancePx           int           `json:"nearDistancePx"           toml:"near_distance_px"`
}

// LocatorConfig tunes the locator resolver's retry jacket (C3).
type LocatorConfig struct {
	DefaultTimeout  time.Duration `json:"defaultTimeout"  toml:"default_timeout"`
	PollInterval    time.Duration `json:"pollInterval"    toml:"poll_interval"`
	DefaultMaxDepth int           `json:"defaultMaxDepth" toml:"default_max_depth"`
}

// ExecutorConfig holds defaults applied to workflows that omit the field (C6).
type ExecutorConfig struct {
	StopOnError        bool   `json:"stopOnError"        toml:"stop_on_error"`
	Verbosity          string `json:"verbosity"          toml:"verbosity"`
	ExecuteJumpsAtEnd  bool   `json:"executeJumpsAtEnd"  toml:"execute_jumps_at_end"`
	FollowFallback     bool   `json:"followFallback"     toml:"follow_fallback"`
}

// RecorderConfig tunes the recorder core and aggregator (C8/C9).
type RecorderConfig struct {
	MouseMoveThrottleMs          int  `json:"mouseMoveThrottleMs"          toml:"mouse_move_throttle_ms"`
	MinDragDistance              int  `json:"minDragDistance"              toml:"min_drag_distance"`
	TextInputCompletionTimeoutMs int  `json:"textInputCompletionTimeoutMs" toml:"text_input_completion_timeout_ms"`
	EnableMultithreading         bool `json:"enableMultithreading"         toml:"enable_multithreading"`
	FilterMouseNoise             bool `json:"filterMouseNoise"             toml:"filter_mouse_noise"`
	PerformanceMode              bool `json:"performanceMode"              toml:"performance_mode"`
	BroadcastBacklog             int  `json:"broadcastBacklog"             toml:"broadcast_backlog"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level               string `json:"level"               toml:"level"`
	FilePath            string `json:"filePath"            toml:"file_path"`
	Structured          bool   `json:"structured"          toml:"structured"`
	DisableFileLogging  bool   `json:"disableFileLogging"  toml:"disable_file_logging"`
	MaxFileSizeMB       int    `json:"maxFileSizeMb"       toml:"max_file_size_mb"`
	MaxBackups          int    `json:"maxBackups"          toml:"max_backups"`
	MaxAgeDays          int    `json:"maxAgeDays"          toml:"max_age_days"`
}

// MetricsConfig enables in-process counters for the dispatcher and facade.
type MetricsConfig struct {
	Enabled bool `json:"enabled" toml:"enabled"`
}
