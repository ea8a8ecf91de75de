package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/expr"
)

// RunContext is the mutable state owned by a single workflow run: resolved
// variables, env, per-step results, a step-id index, a cancellation token,
// the run deadline, and a configuration snapshot. It is never shared across
// runs (§3.5).
type RunContext struct {
	RequestID string
	Variables map[string]any
	Selectors map[string]string

	mu      sync.Mutex
	env     map[string]string
	results []StepResult
	byID    map[string]int

	deadline time.Time
	cancel   context.CancelFunc
}

// NewRunContext validates doc.Inputs against doc.Variables (§4.4) and
// constructs a fresh RunContext. Validation failure (a missing required
// variable with no default, or a value that cannot be coerced to its
// declared type) fails the run before step 1.
func NewRunContext(ctx context.Context, doc *Document, deadline time.Duration) (*RunContext, context.Context, error) {
	resolved := make(map[string]any, len(doc.Variables))

	for name, schema := range doc.Variables {
		val, provided := doc.Inputs[name]

		if !provided {
			if schema.Default != nil {
				resolved[name] = schema.Default

				continue
			}

			if schema.Required {
				return nil, nil, derrors.Newf(derrors.CodeInvalidWorkflow, "missing required variable %q", name)
			}

			continue
		}

		coerced, err := expr.CoerceType(val, schema.Type)
		if err != nil {
			return nil, nil, derrors.Wrapf(err, derrors.CodeInvalidWorkflow, "variable %q", name)
		}

		resolved[name] = coerced
	}

	// Inputs without a matching schema entry pass through unvalidated.
	for name, val := range doc.Inputs {
		if _, known := doc.Variables[name]; !known {
			resolved[name] = val
		}
	}

	runCtx := &RunContext{
		RequestID: uuid.NewString(),
		Variables: resolved,
		Selectors: doc.Selectors,
		env:       make(map[string]string),
		byID:      make(map[string]int),
	}

	var derivedCtx context.Context

	if deadline > 0 {
		derivedCtx, runCtx.cancel = context.WithTimeout(ctx, deadline)
		runCtx.deadline = time.Now().Add(deadline)
	} else {
		derivedCtx, runCtx.cancel = context.WithCancel(ctx)
	}

	return runCtx, derivedCtx, nil
}

// Cancel cancels the run's context, racing every suspension point against it.
func (rc *RunContext) Cancel() {
	if rc.cancel != nil {
		rc.cancel()
	}
}

// SetEnv merges an env update, as produced by run_command's `::set-env`
// lines or by the `env` map of a successful step's result envelope. The
// output parser's record is not merged into env.
func (rc *RunContext) SetEnv(updates map[string]string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for k, v := range updates {
		rc.env[k] = v
	}
}

// Env returns a snapshot of the current env map.
func (rc *RunContext) Env() map[string]string {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make(map[string]string, len(rc.env))
	for k, v := range rc.env {
		out[k] = v
	}

	return out
}

// RecordResult appends a step result and indexes it by step id, if present.
func (rc *RunContext) RecordResult(res StepResult) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.results = append(rc.results, res)

	if res.StepID != "" {
		rc.byID[res.StepID] = len(rc.results) - 1
	}
}

// Results returns a snapshot of the accumulated step results.
func (rc *RunContext) Results() []StepResult {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make([]StepResult, len(rc.results))
	copy(out, rc.results)

	return out
}

// ExprContext builds the expr.Context snapshot used for {{path}}
// substitution and predicate evaluation: variables, env, and results are
// addressable as "variables.x", "env.x", "results.<step-id>".
func (rc *RunContext) ExprContext() *expr.Context {
	rc.mu.Lock()

	envCopy := make(map[string]any, len(rc.env))
	for k, v := range rc.env {
		envCopy[k] = v
	}

	resultsByID := make(map[string]any, len(rc.byID))

	for id, idx := range rc.byID {
		resultsByID[id] = envelopeToMap(rc.results[idx].Envelope)
	}

	rc.mu.Unlock()

	varsCopy := make(map[string]any, len(rc.Variables))
	for k, v := range rc.Variables {
		varsCopy[k] = v
	}

	return expr.NewContext(map[string]any{
		"variables": varsCopy,
		"env":       envCopy,
		"results":   resultsByID,
	})
}

func envelopeToMap(e Envelope) map[string]any {
	return map[string]any{
		"action": e.Action,
		"status": e.Status,
		"result": e.Result,
		"error":  e.Error,
	}
}
