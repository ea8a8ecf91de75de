// Package outputparser executes a workflow's output parser — a string
// shorthand, an external script ("run"), or an embedded script body
// ("javascript_code") — against the executor's raw result tree, in an
// external script runtime rather than inside the core process.
package outputparser

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	derrors "github.com/deskautomate/engine/internal/errors"
)

// Record is the structured value a parser must return.
type Record struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       any            `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
	Validation any            `json:"validation,omitempty"`
	State      map[string]any `json:"state,omitempty"`
}

// Spec is the workflow document's `output` field, in one of its three
// accepted shapes.
type Spec struct {
	// ScriptBody is set when output was a bare string (shorthand for a
	// parser body) or an object with `javascript_code`.
	ScriptBody string
	// RunPath is set when output was an object with `run`, naming an
	// external script file.
	RunPath string
	// Present is false when the workflow declared no output parser at all.
	Present bool
}

// Host executes output parsers in an external Node.js runtime. When the
// runtime binary cannot be found, the host falls back to synthesizing the
// record from execution status, matching the "absent output" behavior.
type Host struct {
	nodeBinary string
	timeout    time.Duration
	logger     *zap.Logger
}

const defaultParserTimeout = 5 * time.Second

// NewHost builds a Host. nodeBinary names the external script runtime
// executable (e.g. "node"); an empty value defaults to "node".
func NewHost(nodeBinary string, timeout time.Duration, logger *zap.Logger) *Host {
	if nodeBinary == "" {
		nodeBinary = "node"
	}

	if timeout <= 0 {
		timeout = defaultParserTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Host{nodeBinary: nodeBinary, timeout: timeout, logger: logger}
}

// Run executes spec against resultTree (the executor's raw run-context
// results) and returns the parser's record. If spec declares no parser, Run
// synthesizes one from execStatus and data.
func (h *Host) Run(ctx context.Context, spec Spec, resultTree any, execStatus string, execData any) (Record, error) {
	if !spec.Present {
		return synthesize(execStatus, execData), nil
	}

	if !h.runtimeAvailable() {
		h.logger.Warn("output parser runtime unavailable, synthesizing record", zap.String("runtime", h.nodeBinary))

		return synthesize(execStatus, execData), nil
	}

	script := spec.ScriptBody
	if spec.RunPath != "" {
		script = wrapRunPath(spec.RunPath)
	}

	runCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	out, err := h.exec(runCtx, script, resultTree)
	if err != nil {
		return Record{}, derrors.Wrap(err, derrors.CodeOutputParseError, "executing output parser")
	}

	var rec Record
	if jsonErr := json.Unmarshal(out, &rec); jsonErr != nil {
		return Record{
			Success: execStatus == "success",
			Message: "output parser returned a malformed record",
			Error:   string(out),
		}, derrors.Wrap(jsonErr, derrors.CodeOutputParseError, "parsing output parser result")
	}

	return rec, nil
}

// wrapRunPath produces a tiny driver script that requires the external
// parser module and invokes its default export, so "run" and
// "javascript_code" share one execution path.
func wrapRunPath(path string) string {
	return `const mod = require(` + jsonQuote(path) + `); const fn = mod.default || mod; module.exports = fn;`
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)

	return string(b)
}

// exec runs script in the external runtime, passing context as a JSON
// argument on stdin and reading the resulting JSON record from stdout.
func (h *Host) exec(ctx context.Context, script string, resultContext any) ([]byte, error) {
	contextJSON, err := json.Marshal(resultContext)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodeSerializationFailed, "marshaling parser context")
	}

	driver := buildDriver(script)

	cmd := exec.CommandContext(ctx, h.nodeBinary, "-e", driver)
	cmd.Stdin = bytes.NewReader(contextJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		return nil, derrors.Wrapf(runErr, derrors.CodeExecFailed, "output parser failed: %s", strings.TrimSpace(stderr.String()))
	}

	return bytes.TrimSpace(stdout.Bytes()), nil
}

// buildDriver wraps the user script so it receives the run result tree as
// `context` on stdin and prints its returned record as JSON on stdout.
func buildDriver(script string) string {
	return `
(function() {
  const chunks = [];
  process.stdin.on('data', (c) => chunks.push(c));
  process.stdin.on('end', () => {
    const context = JSON.parse(Buffer.concat(chunks).toString('utf8') || 'null');
    const parserFn = (function() {
      ` + script + `
      if (typeof module !== 'undefined' && module.exports) { return module.exports; }
      return undefined;
    })();
    const result = typeof parserFn === 'function' ? parserFn(context) : parserFn;
    process.stdout.write(JSON.stringify(result || {}));
  });
})();
`
}

func synthesize(execStatus string, execData any) Record {
	success := execStatus == "success"
	message := "workflow completed"

	if !success {
		message = "workflow did not complete successfully"
	}

	return Record{
		Success: success,
		Message: message,
		Data:    execData,
	}
}

// runtimeAvailable reports whether the configured script runtime exists on
// PATH, used by callers that want to skip parser execution entirely on
// platforms without Node.js installed.
func (h *Host) runtimeAvailable() bool {
	_, err := exec.LookPath(h.nodeBinary)

	return err == nil
}
