package tools

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"

	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/workflow"
)

const setEnvPrefix = "::set-env "

// runCommand implements the `run_command` tool (§4.7): it runs either an
// OS-specific shorthand command ("win_command"/"unix_command", dispatched
// through the accessibility port) or an embedded/external script in a
// chosen engine ("engine", "script"/"script_file"), capturing stdout,
// stderr and exit status, and parsing `::set-env name=K::V` lines on stdout
// for run-context env updates. No other form of env update, such as a
// structured `set_env` payload, is read.
func (d *Dispatcher) runCommand(ctx context.Context, args map[string]any, rc *workflow.RunContext) (workflow.Envelope, error) {
	if winCmd, ok := argString(args, "win_command"); ok {
		unixCmd, _ := argString(args, "unix_command")

		result, err := d.port.RunCommand(ctx, winCmd, unixCmd)
		if err != nil {
			return errorEnvelope("run_command", err), nil
		}

		return commandEnvelope(result.Stdout, result.Stderr, result.ExitStatus, rc), nil
	}

	engine, _ := argString(args, "engine")
	if engine == "" {
		engine = defaultShellEngine()
	}

	script, hasScript := argString(args, "script")

	scriptFile, hasScriptFile := argString(args, "script_file")

	if !hasScript && !hasScriptFile {
		return workflow.Envelope{}, derrors.New(derrors.CodeInvalidArgument, "run_command requires script, script_file, or win_command/unix_command")
	}

	var cmd *exec.Cmd

	switch {
	case hasScriptFile:
		cmd = exec.CommandContext(ctx, engine, scriptFile)
	default:
		cmd = engineInvocation(ctx, engine, script)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	exitStatus := 0
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitStatus = exitErr.ExitCode()
		} else {
			return errorEnvelope("run_command", derrors.Wrap(runErr, derrors.CodeExecFailed, "run_command")), nil
		}
	}

	return commandEnvelope(stdout.String(), stderr.String(), exitStatus, rc), nil
}

func defaultShellEngine() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}

	return "/bin/bash"
}

func engineInvocation(ctx context.Context, engine, script string) *exec.Cmd {
	switch engine {
	case "/bin/bash", "bash", "sh":
		return exec.CommandContext(ctx, engine, "-lc", script)
	case "cmd":
		return exec.CommandContext(ctx, "cmd", "/C", script)
	default:
		return exec.CommandContext(ctx, engine, "-e", script)
	}
}

func commandEnvelope(stdout, stderr string, exitStatus int, rc *workflow.RunContext) workflow.Envelope {
	envUpdates := parseSetEnvLines(stdout)

	if rc != nil && len(envUpdates) > 0 {
		rc.SetEnv(envUpdates)
	}

	status := workflow.StatusSuccess
	if exitStatus != 0 {
		status = workflow.StatusError
	}

	result := map[string]any{
		"exit_status": exitStatus,
		"stdout":      stdout,
		"stderr":      stderr,
	}

	if len(envUpdates) > 0 {
		envAny := make(map[string]any, len(envUpdates))
		for k, v := range envUpdates {
			envAny[k] = v
		}

		result["env"] = envAny
	}

	return workflow.Envelope{Status: status, Result: result}
}

const setEnvNamePrefix = "name="

// parseSetEnvLines scans stdout for `::set-env name=KEY::VALUE` directives.
func parseSetEnvLines(stdout string) map[string]string {
	updates := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, setEnvPrefix) {
			continue
		}

		rest := strings.TrimPrefix(line, setEnvPrefix)
		if !strings.HasPrefix(rest, setEnvNamePrefix) {
			continue
		}

		rest = strings.TrimPrefix(rest, setEnvNamePrefix)

		key, value, found := strings.Cut(rest, "::")
		if !found || key == "" {
			continue
		}

		updates[key] = value
	}

	return updates
}
