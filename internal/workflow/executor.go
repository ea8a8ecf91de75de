package workflow

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/config"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/expr"
	"github.com/deskautomate/engine/internal/outputparser"
)

// Dispatcher dispatches a single tool call (C7) and returns its uniform
// result envelope.
type Dispatcher interface {
	Dispatch(ctx context.Context, toolName string, args map[string]any, rc *RunContext) (Envelope, error)
}

// Executor is the sequence executor (C6): it walks a Document's steps in
// order, substituting arguments, dispatching tools, evaluating conditions,
// and assembling the run result.
type Executor struct {
	dispatcher Dispatcher
	outputHost *outputparser.Host
	cfg        config.ExecutorConfig
	logger     *zap.Logger
}

// NewExecutor builds an Executor over dispatcher, using outputHost to run
// the workflow's output parser.
func NewExecutor(dispatcher Dispatcher, outputHost *outputparser.Host, cfg config.ExecutorConfig, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Executor{dispatcher: dispatcher, outputHost: outputHost, cfg: cfg, logger: logger}
}

// Run executes doc from start to finish and returns the assembled run
// result. timeout <= 0 means no overall deadline beyond ctx's own.
func (e *Executor) Run(ctx context.Context, doc *Document, timeout time.Duration) (Result, error) {
	start := time.Now()

	if err := validateDocument(doc); err != nil {
		return Result{}, err
	}

	rc, runCtx, err := NewRunContext(ctx, doc, timeout)
	if err != nil {
		return Result{}, err
	}
	defer rc.Cancel()

	stepIndex := indexSteps(doc.Steps)

	active, err := activeRange(doc.Steps, stepIndex, doc.StartFromStep, doc.EndAtStep)
	if err != nil {
		return Result{}, err
	}

	outcome := e.runSteps(runCtx, doc, rc, active, stepIndex)

	out := e.buildResult(runCtx, doc, rc, outcome, start)

	return out, nil
}

type runOutcome struct {
	aborted      bool
	failureStep  *StepResult
	executedTool int
	jumpTargets  []string
}

func (e *Executor) runSteps(ctx context.Context, doc *Document, rc *RunContext, steps []Step, index map[string]int) runOutcome {
	stopOnError := doc.StopOnErrorOrDefault(e.cfg.StopOnError)

	outcome := runOutcome{}

	i := 0

	for i < len(steps) {
		step := steps[i]

		select {
		case <-ctx.Done():
			outcome.aborted = true
			fr := StepResult{StepID: step.ID, Status: StepStatusError, Reason: "run cancelled"}
			outcome.failureStep = &fr

			return outcome
		default:
		}

		if step.If != "" {
			ok, _ := expr.EvalPredicate(step.If, rc.ExprContext())
			if !ok {
				rc.RecordResult(StepResult{StepID: step.ID, Status: StepStatusSkipped, Reason: "if condition false"})
				i++

				continue
			}
		}

		if step.IsGroup() {
			groupOutcome := e.runGroup(ctx, doc, rc, step)
			outcome.executedTool += groupOutcome.executedTool

			if groupOutcome.aborted {
				if step.Skippable {
					rc.RecordResult(StepResult{GroupName: step.GroupName, Status: StepStatusSkipped, Reason: "group step failed and is skippable"})
				} else {
					outcome.aborted = true
					outcome.failureStep = groupOutcome.failureStep

					return outcome
				}
			}

			i++

			continue
		}

		stepOutcome, jumpTo := e.runToolStep(ctx, doc, rc, step, stopOnError)
		outcome.executedTool++
		outcome.jumpTargets = append(outcome.jumpTargets, stepOutcome.jump...)

		if stepOutcome.abort {
			outcome.aborted = true
			fr := stepOutcome.result
			outcome.failureStep = &fr

			return outcome
		}

		if jumpTo != "" && !doc.ExecuteJumpsAtEnd {
			if _, ok := index[jumpTo]; ok {
				i = stepPosition(steps, jumpTo)
				if i < 0 {
					i++
				}

				continue
			}
		}

		i++
	}

	if doc.ExecuteJumpsAtEnd {
		for _, target := range outcome.jumpTargets {
			for _, s := range doc.Steps {
				if s.ID == target && s.IsTool() {
					e.runToolStep(ctx, doc, rc, s, stopOnError)
					outcome.executedTool++
				}
			}
		}
	}

	return outcome
}

func stepPosition(steps []Step, id string) int {
	for i, s := range steps {
		if s.ID == id {
			return i
		}
	}

	return -1
}

type groupRunOutcome struct {
	aborted      bool
	failureStep  *StepResult
	executedTool int
}

func (e *Executor) runGroup(ctx context.Context, doc *Document, rc *RunContext, group Step) groupRunOutcome {
	if group.If != "" {
		ok, _ := expr.EvalPredicate(group.If, rc.ExprContext())
		if !ok {
			rc.RecordResult(StepResult{GroupName: group.GroupName, Status: StepStatusSkipped, Reason: "if condition false"})

			return groupRunOutcome{}
		}
	}

	index := indexSteps(group.Steps)
	inner := e.runSteps(ctx, doc, rc, group.Steps, index)

	return groupRunOutcome{aborted: inner.aborted, failureStep: inner.failureStep, executedTool: inner.executedTool}
}

type toolStepOutcome struct {
	abort  bool
	result StepResult
	jump   []string
}

func (e *Executor) runToolStep(ctx context.Context, doc *Document, rc *RunContext, step Step, stopOnError bool) (toolStepOutcome, string) {
	substituted, _ := expr.Substitute(map[string]any(step.Arguments), rc.ExprContext())

	args, _ := substituted.(map[string]any)
	args = resolveScriptPaths(args, doc)

	envelope, dispatchErr := e.dispatcher.Dispatch(ctx, step.ToolName, args, rc)

	if dispatchErr == nil && envelope.Status != StatusError {
		e.mergeEnvUpdates(rc, envelope)

		result := StepResult{StepID: step.ID, Status: StepStatusSuccess, Envelope: envelope}
		rc.RecordResult(result)

		var jumps []string
		if step.Jumps != "" {
			jumps = []string{step.Jumps}
		}

		e.applyDelay(ctx, step)

		return toolStepOutcome{result: result, jump: jumps}, step.Jumps
	}

	if step.SkippableIf != "" {
		ok, _ := expr.EvalPredicate(step.SkippableIf, rc.ExprContext())
		if ok {
			result := StepResult{StepID: step.ID, Status: StepStatusSkipped, Reason: "skippable_if true after failure", Envelope: envelope}
			rc.RecordResult(result)

			return toolStepOutcome{result: result}, ""
		}
	}

	result := StepResult{StepID: step.ID, Status: StepStatusError, Envelope: envelope}

	if step.ContinueOnError || !stopOnError {
		rc.RecordResult(result)
		e.applyDelay(ctx, step)

		return toolStepOutcome{result: result}, ""
	}

	if step.FallbackID != "" && doc.FollowFallback {
		rc.RecordResult(result)

		return toolStepOutcome{result: result}, step.FallbackID
	}

	rc.RecordResult(result)

	return toolStepOutcome{abort: true, result: result}, ""
}

func (e *Executor) mergeEnvUpdates(rc *RunContext, envelope Envelope) {
	resultMap, ok := envelope.Result.(map[string]any)
	if !ok {
		return
	}

	rawEnv, ok := resultMap["env"].(map[string]any)
	if !ok {
		return
	}

	updates := make(map[string]string, len(rawEnv))

	for k, v := range rawEnv {
		if s, isStr := v.(string); isStr {
			updates[k] = s
		}
	}

	rc.SetEnv(updates)
}

func (e *Executor) applyDelay(ctx context.Context, step Step) {
	var d time.Duration

	switch {
	case step.Delay != "":
		parsed, err := ParseDuration(step.Delay)
		if err == nil {
			d = parsed
		}
	case step.DelayMS > 0:
		d = time.Duration(step.DelayMS) * time.Millisecond
	}

	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// resolveScriptPaths rewrites a relative "script_file" argument to resolve
// under scripts_base_path first, then the workflow file's directory, then
// the current working directory. Absolute paths pass through unchanged.
func resolveScriptPaths(args map[string]any, doc *Document) map[string]any {
	if args == nil {
		return args
	}

	raw, ok := args["script_file"].(string)
	if !ok || raw == "" || filepath.IsAbs(raw) {
		return args
	}

	candidates := make([]string, 0, 3)

	if doc.ScriptsBasePath != "" {
		candidates = append(candidates, filepath.Join(doc.ScriptsBasePath, raw))
	}

	if doc.SourcePath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(doc.SourcePath), raw))
	}

	candidates = append(candidates, raw)

	resolved := raw

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			resolved = c

			break
		}
	}

	args["script_file"] = resolved

	return args
}

func (e *Executor) buildResult(ctx context.Context, doc *Document, rc *RunContext, outcome runOutcome, start time.Time) Result {
	results := rc.Results()

	status := summarizeStatus(results, outcome.aborted)

	spec, specErr := outputparser.ParseSpec(doc.Output)

	var output any

	if specErr == nil && e.outputHost != nil {
		rec, _ := e.outputHost.Run(ctx, spec, resultTree(results), execDataStatus(status), resultTree(results))
		output = rec
	}

	out := Result{
		Status:          status,
		TotalDurationMS: time.Since(start).Milliseconds(),
		ExecutedTools:   outcome.executedTool,
		Results:         results,
		Output:          output,
	}

	if outcome.aborted && outcome.failureStep != nil {
		out.DebugInfoOnFailure = map[string]any{
			"last_step": outcome.failureStep,
		}
	}

	return out
}

func execDataStatus(status string) string {
	if status == RunStatusSuccess {
		return "success"
	}

	return "error"
}

func resultTree(results []StepResult) any {
	out := make([]map[string]any, len(results))
	for i, r := range results {
		out[i] = map[string]any{
			"step_id": r.StepID,
			"status":  r.Status,
			"reason":  r.Reason,
			"result":  r.Envelope.Result,
		}
	}

	return out
}

func summarizeStatus(results []StepResult, aborted bool) string {
	if aborted {
		return RunStatusError
	}

	hasError := false

	for _, r := range results {
		if r.Status == StepStatusError {
			hasError = true
		}
	}

	if !hasError {
		return RunStatusSuccess
	}

	return RunStatusPartialSuccess
}

func indexSteps(steps []Step) map[string]int {
	idx := make(map[string]int, len(steps))

	for i, s := range steps {
		if s.ID != "" {
			idx[s.ID] = i
		}
	}

	return idx
}

func activeRange(steps []Step, index map[string]int, startID, endID string) ([]Step, error) {
	start := 0
	end := len(steps)

	if startID != "" {
		i, ok := index[startID]
		if !ok {
			return nil, derrors.Newf(derrors.CodeInvalidWorkflow, "start_from_step %q not found", startID)
		}

		start = i
	}

	if endID != "" {
		i, ok := index[endID]
		if !ok {
			return nil, derrors.Newf(derrors.CodeInvalidWorkflow, "end_at_step %q not found", endID)
		}

		end = i + 1
	}

	if start > end {
		return nil, derrors.New(derrors.CodeInvalidWorkflow, "start_from_step occurs after end_at_step")
	}

	return steps[start:end], nil
}

func validateDocument(doc *Document) error {
	if doc == nil || len(doc.Steps) == 0 {
		return derrors.New(derrors.CodeInvalidWorkflow, "workflow must declare at least one step")
	}

	seen := make(map[string]bool)

	for _, s := range doc.Steps {
		if s.IsGroup() == s.IsTool() {
			return derrors.New(derrors.CodeInvalidWorkflow, "step must declare exactly one of tool_name or group_name")
		}

		if s.ID != "" {
			if seen[s.ID] {
				return derrors.Newf(derrors.CodeInvalidWorkflow, "duplicate step id %q", s.ID)
			}

			seen[s.ID] = true
		}
	}

	return nil
}
