package tools

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/action"
	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/locator"
	"github.com/deskautomate/engine/internal/workflow"
)

// Dispatcher implements workflow.Dispatcher over a Port (C1) and a
// Resolver (C3). It is the closed set of tools described in the sequence
// executor's tool table.
type Dispatcher struct {
	port     accessibility.Port
	resolver *locator.Resolver
	cfg      config.LocatorConfig
	accCfg   config.AccessibilityConfig
	logger   *zap.Logger

	executor *workflow.Executor
}

// NewDispatcher builds a Dispatcher over port and resolver. Call
// SetExecutor once the owning workflow.Executor exists, so execute_sequence
// can re-enter the sequence executor for nested workflows.
func NewDispatcher(port accessibility.Port, resolver *locator.Resolver, cfg config.LocatorConfig, accCfg config.AccessibilityConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{port: port, resolver: resolver, cfg: cfg, accCfg: accCfg, logger: logger}
}

// SetExecutor wires the executor that owns this dispatcher, breaking the
// construction cycle between workflow.NewExecutor (which needs a
// Dispatcher) and execute_sequence (which needs an Executor).
func (d *Dispatcher) SetExecutor(executor *workflow.Executor) {
	d.executor = executor
}

// Dispatch routes toolName to its implementation and always returns a
// populated envelope, even on error, so the executor can record it.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, args map[string]any, rc *workflow.RunContext) (workflow.Envelope, error) {
	var (
		env workflow.Envelope
		err error
	)

	switch toolName {
	case "validate_element":
		env, err = d.validateElement(ctx, args, rc)
	case "click_element":
		env, err = d.clickElement(ctx, args, rc)
	case "type_into_element":
		env, err = d.typeIntoElement(ctx, args, rc)
	case "press_key":
		env, err = d.pressKey(ctx, args, false)
	case "press_key_global":
		env, err = d.pressKey(ctx, args, true)
	case "activate_element":
		env, err = d.activateElement(ctx, args, rc)
	case "get_window_tree":
		env, err = d.getWindowTree(ctx, args)
	case "run_command":
		env, err = d.runCommand(ctx, args, rc)
	case "execute_sequence":
		env, err = d.executeSequence(ctx, args)
	default:
		env = errorEnvelope(toolName, derrors.Newf(derrors.CodeInvalidArgument, "unknown tool %q", toolName))
	}

	if err != nil && env.Status == "" {
		env = errorEnvelope(toolName, err)
	}

	env.Action = toolName

	return env, nil
}

func errorEnvelope(action string, err error) workflow.Envelope {
	return workflow.Envelope{
		Action:    action,
		Status:    workflow.StatusError,
		Error:     err.Error(),
		ErrorType: string(derrors.GetCode(err)),
	}
}

func (d *Dispatcher) validateElement(ctx context.Context, args map[string]any, rc *workflow.RunContext) (workflow.Envelope, error) {
	loc, tried, err := d.buildLocator(args, rc)
	if err != nil {
		return workflow.Envelope{}, err
	}

	timeout := argTimeout(args, d.cfg.DefaultTimeout)

	v := loc.Validate(ctx, timeout)
	if v.Err != nil {
		return errorEnvelope("validate_element", v.Err), nil
	}

	return workflow.Envelope{
		Status:         workflow.StatusSuccess,
		Result:         map[string]any{"exists": v.Exists},
		SelectorsTried: tried,
	}, nil
}

func (d *Dispatcher) clickElement(ctx context.Context, args map[string]any, rc *workflow.RunContext) (workflow.Envelope, error) {
	loc, tried, err := d.buildLocator(args, rc)
	if err != nil {
		return workflow.Envelope{}, err
	}

	timeout := argTimeout(args, d.cfg.DefaultTimeout)

	elem, err := loc.First(ctx, timeout)
	if err != nil {
		return errorEnvelope("click_element", err), nil
	}

	wasFocused := elem.IsFocused()

	if err := d.port.PerformAction(ctx, elem, action.TypeLeftClick); err != nil {
		return errorEnvelope("click_element", err), nil
	}

	verified := d.verifyClick(ctx, loc, elem, wasFocused, timeout)

	status := workflow.StatusSuccess
	if !verified {
		status = workflow.StatusSuccessUnverified
	}

	return workflow.Envelope{
		Status:         status,
		Result:         map[string]any{"clicked": true},
		SelectorsTried: tried,
	}, nil
}

// verifyClick gives the click a brief window to either move focus onto the
// target or make the target disappear (common for menu items and dialog
// dismiss buttons), and reports whether either was observed.
func (d *Dispatcher) verifyClick(ctx context.Context, loc *locator.Locator, elem *element.Element, wasFocused bool, timeout time.Duration) bool {
	verifyWindow := 200 * time.Millisecond
	if verifyWindow > timeout {
		verifyWindow = timeout
	}

	deadline := time.Now().Add(verifyWindow)

	for time.Now().Before(deadline) {
		if elem.IsStale() {
			return true
		}

		if !wasFocused && elem.IsFocused() {
			return true
		}

		remaining, err := loc.All(ctx, 10*time.Millisecond, 1)
		if err == nil && len(remaining) == 0 {
			return true
		}

		time.Sleep(10 * time.Millisecond)
	}

	return false
}

func (d *Dispatcher) typeIntoElement(ctx context.Context, args map[string]any, rc *workflow.RunContext) (workflow.Envelope, error) {
	loc, tried, err := d.buildLocator(args, rc)
	if err != nil {
		return workflow.Envelope{}, err
	}

	text, err := requireString(args, "text")
	if err != nil {
		return workflow.Envelope{}, err
	}

	clearBefore := argBool(args, "clear_before_typing", false)
	timeout := argTimeout(args, d.cfg.DefaultTimeout)

	elem, err := loc.First(ctx, timeout)
	if err != nil {
		return errorEnvelope("type_into_element", err), nil
	}

	if usePaste(text) {
		err = d.typeViaPaste(ctx, elem, text, clearBefore)
	} else {
		err = d.port.TypeText(ctx, elem, text, clearBefore)
	}

	if err != nil {
		return errorEnvelope("type_into_element", err), nil
	}

	return workflow.Envelope{
		Status:         workflow.StatusSuccess,
		Result:         map[string]any{"typed_length": len(text)},
		SelectorsTried: tried,
	}, nil
}

func (d *Dispatcher) pressKey(ctx context.Context, args map[string]any, global bool) (workflow.Envelope, error) {
	keys, err := requireString(args, "key")
	if err != nil {
		return workflow.Envelope{}, err
	}

	if err := d.port.PressKey(ctx, keys, global); err != nil {
		return errorEnvelope("press_key", err), nil
	}

	return workflow.Envelope{Status: workflow.StatusSuccess, Result: map[string]any{"keys": keys}}, nil
}

func (d *Dispatcher) activateElement(ctx context.Context, args map[string]any, rc *workflow.RunContext) (workflow.Envelope, error) {
	loc, tried, err := d.buildLocator(args, rc)
	if err != nil {
		return workflow.Envelope{}, err
	}

	timeout := argTimeout(args, d.cfg.DefaultTimeout)

	elem, err := loc.First(ctx, timeout)
	if err != nil {
		return errorEnvelope("activate_element", err), nil
	}

	if err := d.port.SetFocus(ctx, elem); err != nil {
		return errorEnvelope("activate_element", err), nil
	}

	status := workflow.StatusSuccess

	focusedPID, pidErr := focusedProcessID(ctx, d.port)
	if pidErr != nil || focusedPID != elem.ProcessID() {
		status = workflow.StatusSuccessUnverified
	}

	return workflow.Envelope{
		Status:         status,
		Result:         map[string]any{"activated": true},
		SelectorsTried: tried,
	}, nil
}

func (d *Dispatcher) getWindowTree(ctx context.Context, args map[string]any) (workflow.Envelope, error) {
	pid := argInt(args, "pid", 0)
	if pid == 0 {
		return workflow.Envelope{}, derrors.New(derrors.CodeInvalidArgument, "get_window_tree requires a pid")
	}

	title, _ := argString(args, "title")

	maxDepth := argInt(args, "max_depth", d.cfg.DefaultMaxDepth)

	treeCfg := accessibility.DefaultWindowTreeConfig(d.accCfg, maxDepth)
	treeCfg.PropertyMode = config.PropertyModeSmart

	if mode, ok := argString(args, "property_mode"); ok && mode != "" {
		treeCfg.PropertyMode = config.PropertyMode(mode)
	}

	root, err := d.port.GetWindowTree(ctx, pid, title, treeCfg)
	if err != nil {
		return errorEnvelope("get_window_tree", err), nil
	}

	return workflow.Envelope{Status: workflow.StatusSuccess, UITree: root}, nil
}
