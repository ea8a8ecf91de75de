package tools

import (
	"context"
	"encoding/json"
	"time"

	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/workflow"
)

// executeSequence implements the `execute_sequence` tool: it decodes the
// inline nested workflow document from the step's "workflow" argument and
// re-enters the sequence executor with a fresh child run-context.
func (d *Dispatcher) executeSequence(ctx context.Context, args map[string]any) (workflow.Envelope, error) {
	if d.executor == nil {
		return workflow.Envelope{}, derrors.New(derrors.CodeInternal, "execute_sequence: dispatcher has no executor wired")
	}

	raw, ok := args["workflow"]
	if !ok {
		return workflow.Envelope{}, derrors.New(derrors.CodeInvalidArgument, "execute_sequence requires a workflow argument")
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return workflow.Envelope{}, derrors.Wrap(err, derrors.CodeInvalidArgument, "encoding nested workflow")
	}

	var childDoc workflow.Document
	if err := json.Unmarshal(encoded, &childDoc); err != nil {
		return workflow.Envelope{}, derrors.Wrap(err, derrors.CodeInvalidWorkflow, "decoding nested workflow")
	}

	var timeout time.Duration

	if ms, ok := args["timeout_ms"].(float64); ok {
		timeout = time.Duration(ms) * time.Millisecond
	}

	result, err := d.executor.Run(ctx, &childDoc, timeout)
	if err != nil {
		return errorEnvelope("execute_sequence", err), nil
	}

	status := workflow.StatusSuccess
	if result.Status == workflow.RunStatusError {
		status = workflow.StatusError
	} else if result.Status == workflow.RunStatusPartialSuccess {
		status = workflow.StatusSuccessUnverified
	}

	return workflow.Envelope{Status: status, Result: result}, nil
}
