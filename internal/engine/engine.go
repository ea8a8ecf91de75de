package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/config"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/locator"
	"github.com/deskautomate/engine/internal/logger"
	"github.com/deskautomate/engine/internal/metrics"
	"github.com/deskautomate/engine/internal/outputparser"
	"github.com/deskautomate/engine/internal/recorder"
	"github.com/deskautomate/engine/internal/recorder/eventtap"
	"github.com/deskautomate/engine/internal/recorder/hotkeys"
	"github.com/deskautomate/engine/internal/tools"
	"github.com/deskautomate/engine/internal/workflow"
)

// scriptRuntimeBinary names the external runtime the output parser host
// shells out to for workflow output parsers.
const scriptRuntimeBinary = "node"

// Engine owns one running instance: the accessibility facade (C1), locator
// resolver (C3), output parser host (C5), sequence executor (C6), tool
// dispatcher (C7), and any recording sessions (C8/C9) started against it.
type Engine struct {
	configSvc *config.Service
	logger    *zap.Logger
	metrics   metrics.Collector

	platform accessibility.Platform
	facade   *accessibility.Facade
	resolver *locator.Resolver

	outputHost *outputparser.Host
	dispatcher *tools.Dispatcher
	executor   *workflow.Executor
}

// Option customizes New's construction. Most callers need none; Option
// exists so tests can substitute a fake Platform.
type Option func(*options)

type options struct {
	platform accessibility.Platform
}

// WithPlatform overrides the accessibility backend. Without it, New uses
// accessibility.NullPlatform{}, the pure-Go reference backend.
func WithPlatform(platform accessibility.Platform) Option {
	return func(o *options) { o.platform = platform }
}

// New loads configuration from configPath (the default path if empty),
// initializes the structured logger, and wires C1/C3/C5/C6/C7 into a ready
// Engine.
func New(configPath string, opts ...Option) (*Engine, error) {
	o := &options{platform: accessibility.NullPlatform{}}
	for _, opt := range opts {
		opt(o)
	}

	configSvc, err := config.NewService(configPath)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeInvalidConfig, "loading configuration")
	}

	cfg := configSvc.Get()

	if err := logger.Init(
		cfg.Logging.Level, cfg.Logging.FilePath, cfg.Logging.Structured,
		cfg.Logging.DisableFileLogging, cfg.Logging.MaxFileSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays,
	); err != nil {
		return nil, derrors.Wrap(err, derrors.CodeLoggingFailed, "initializing logger")
	}

	log := logger.Get()

	var collector metrics.Collector = &metrics.NoOpCollector{}
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	facade := accessibility.NewFacade(o.platform, cfg.Accessibility, cfg.General.ExcludedApps, log)
	resolver := locator.NewResolver(facade, cfg.Locator, cfg.Accessibility.NearDistancePx, log)
	outputHost := outputparser.NewHost(scriptRuntimeBinary, cfg.Accessibility.TimeoutPerOperation, log)

	dispatcher := tools.NewDispatcher(facade, resolver, cfg.Locator, cfg.Accessibility, log)
	executor := workflow.NewExecutor(dispatcher, outputHost, cfg.Executor, log)
	dispatcher.SetExecutor(executor)

	return &Engine{
		configSvc:  configSvc,
		logger:     log,
		metrics:    collector,
		platform:   o.platform,
		facade:     facade,
		resolver:   resolver,
		outputHost: outputHost,
		dispatcher: dispatcher,
		executor:   executor,
	}, nil
}

// Config returns the currently loaded configuration.
func (e *Engine) Config() *config.Config { return e.configSvc.Get() }

// Logger returns the engine's shared structured logger.
func (e *Engine) Logger() *zap.Logger { return e.logger }

// Metrics returns the engine's metrics collector (a no-op collector when
// metrics are disabled in configuration).
func (e *Engine) Metrics() metrics.Collector { return e.metrics }

// Port exposes the underlying accessibility facade for callers that need
// direct platform access (the recorder's best-effort element attachment,
// a CLI doctor probe).
func (e *Engine) Port() accessibility.Port { return e.facade }

// ReloadConfig re-reads configuration from disk. The accessibility facade,
// resolver and dispatcher keep the settings they were constructed with
// until the engine is restarted; only the snapshot returned by Config
// changes.
func (e *Engine) ReloadConfig(ctx context.Context) error {
	return e.configSvc.Reload(ctx, e.configSvc.Path())
}

// Run executes doc via the sequence executor (C6).
func (e *Engine) Run(ctx context.Context, doc *workflow.Document, timeout time.Duration) (workflow.Result, error) {
	e.metrics.IncCounter("workflow_runs_total", nil)

	result, err := e.executor.Run(ctx, doc, timeout)
	if err != nil {
		e.metrics.IncCounter("workflow_runs_failed_total", nil)
	}

	return result, err
}

// Health probes the platform accessibility backend (C1).
func (e *Engine) Health(ctx context.Context) (accessibility.HealthStatus, error) {
	return e.facade.Health(ctx)
}

// NewRecordingSession builds a recorder.Session (C8/C9) wired to this
// engine's accessibility facade for best-effort UI element attachment, a
// stop-chord event tap, and a hotkey manager for sessionCfg's HotkeyTable.
// source delivers the raw mouse/keyboard/clipboard stream; pass nil (or
// recorder.NullInputSource{}) where no native capture backend is compiled
// in for the current OS.
func (e *Engine) NewRecordingSession(
	sessionCfg recorder.Config,
	source recorder.InputSource,
	stopSource eventtap.Source,
	hotkeySource hotkeys.Source,
) *recorder.Session {
	e.metrics.IncCounter("recording_sessions_total", nil)

	return recorder.NewSession(sessionCfg, source, stopSource, hotkeySource, e.facade, e.logger)
}

// Close releases resources owned by the engine (the accessibility facade's
// background cache cleanup).
func (e *Engine) Close() {
	e.facade.Close()
}
