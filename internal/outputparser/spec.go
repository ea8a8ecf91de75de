package outputparser

import derrors "github.com/deskautomate/engine/internal/errors"

// ParseSpec decodes a workflow document's `output` field, which is one of:
// a bare string (shorthand for a javascript_code body), an object with a
// `run` key naming an external script file, an object with a
// `javascript_code` key holding an embedded script body, or absent (nil).
func ParseSpec(raw any) (Spec, error) {
	switch v := raw.(type) {
	case nil:
		return Spec{}, nil
	case string:
		return Spec{Present: true, ScriptBody: v}, nil
	case map[string]any:
		if run, ok := v["run"].(string); ok {
			return Spec{Present: true, RunPath: run}, nil
		}

		if code, ok := v["javascript_code"].(string); ok {
			return Spec{Present: true, ScriptBody: code}, nil
		}

		return Spec{}, derrors.New(derrors.CodeInvalidWorkflow, "output object must declare 'run' or 'javascript_code'")
	default:
		return Spec{}, derrors.New(derrors.CodeInvalidWorkflow, "output must be a string, object, or absent")
	}
}
