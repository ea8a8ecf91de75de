package workflow

// VariableSchema describes one entry of a workflow's `variables` map.
type VariableSchema struct {
	Label    string `json:"label" yaml:"label"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool   `json:"required" yaml:"required"`
	Default  any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Step is one entry of a workflow's ordered `steps` list. It carries
// exactly one of ToolName or GroupName, checked for top-level steps by the
// executor's validateDocument.
type Step struct {
	// Tool step fields.
	ToolName        string         `json:"tool_name,omitempty"        yaml:"tool_name,omitempty"`
	Arguments       map[string]any `json:"arguments,omitempty"        yaml:"arguments,omitempty"`
	ID              string         `json:"id,omitempty"               yaml:"id,omitempty"`
	ContinueOnError bool           `json:"continue_on_error,omitempty" yaml:"continue_on_error,omitempty"`
	Delay           string         `json:"delay,omitempty"            yaml:"delay,omitempty"`
	DelayMS         int            `json:"delay_ms,omitempty"         yaml:"delay_ms,omitempty"`
	If              string         `json:"if,omitempty"               yaml:"if,omitempty"`
	SkippableIf     string         `json:"skippable_if,omitempty"     yaml:"skippable_if,omitempty"`
	Jumps           string         `json:"jumps,omitempty"            yaml:"jumps,omitempty"`
	FallbackID      string         `json:"fallback_id,omitempty"      yaml:"fallback_id,omitempty"`

	// Group step fields.
	GroupName string `json:"group_name,omitempty" yaml:"group_name,omitempty"`
	Steps     []Step `json:"steps,omitempty"      yaml:"steps,omitempty"`
	Skippable bool   `json:"skippable,omitempty"  yaml:"skippable,omitempty"`
}

// IsGroup reports whether the step is a group step.
func (s Step) IsGroup() bool { return s.GroupName != "" }

// IsTool reports whether the step is a tool step.
func (s Step) IsTool() bool { return s.ToolName != "" }

// Document is a parsed workflow document (§3.3, §6.1).
type Document struct {
	Variables          map[string]VariableSchema `json:"variables,omitempty"           yaml:"variables,omitempty"`
	Inputs             map[string]any            `json:"inputs,omitempty"              yaml:"inputs,omitempty"`
	Selectors          map[string]string         `json:"selectors,omitempty"           yaml:"selectors,omitempty"`
	Steps              []Step                    `json:"steps"                         yaml:"steps"`
	Output             any                       `json:"output,omitempty"              yaml:"output,omitempty"`
	StopOnError        *bool                     `json:"stop_on_error,omitempty"       yaml:"stop_on_error,omitempty"`
	Verbosity          string                    `json:"verbosity,omitempty"           yaml:"verbosity,omitempty"`
	StartFromStep      string                    `json:"start_from_step,omitempty"     yaml:"start_from_step,omitempty"`
	EndAtStep          string                    `json:"end_at_step,omitempty"         yaml:"end_at_step,omitempty"`
	FollowFallback     bool                      `json:"follow_fallback,omitempty"     yaml:"follow_fallback,omitempty"`
	ExecuteJumpsAtEnd  bool                      `json:"execute_jumps_at_end,omitempty" yaml:"execute_jumps_at_end,omitempty"`
	ScriptsBasePath    string                    `json:"scripts_base_path,omitempty"   yaml:"scripts_base_path,omitempty"`
	SourcePath         string                    `json:"-" yaml:"-"`
}

// StopOnErrorOrDefault returns StopOnError's value, defaulting to def when unset.
func (d *Document) StopOnErrorOrDefault(def bool) bool {
	if d.StopOnError == nil {
		return def
	}

	return *d.StopOnError
}

// Envelope is the uniform result shape returned by every dispatched tool
// (§4.7) and stored per-step in the run result.
type Envelope struct {
	Action          string `json:"action"`
	Status          string `json:"status"`
	Result          any    `json:"result,omitempty"`
	Error           string `json:"error,omitempty"`
	ErrorType       string `json:"error_type,omitempty"`
	SelectorsTried  []string `json:"selectors_tried,omitempty"`
	Verification    any    `json:"verification,omitempty"`
	UITree          any    `json:"ui_tree,omitempty"`
}

// Envelope status values.
const (
	StatusSuccess           = "success"
	StatusSuccessUnverified = "success_unverified"
	StatusError             = "error"
)

// StepResult records one executed (or skipped) step's outcome.
type StepResult struct {
	StepID    string   `json:"step_id,omitempty"`
	Status    string   `json:"status"` // success | error | skipped
	Reason    string   `json:"reason,omitempty"`
	Envelope  Envelope `json:"envelope,omitempty"`
	GroupName string   `json:"group_name,omitempty"`
}

// Step result status values.
const (
	StepStatusSuccess = "success"
	StepStatusError   = "error"
	StepStatusSkipped = "skipped"
)

// Run result status values (§6.2).
const (
	RunStatusSuccess        = "success"
	RunStatusPartialSuccess = "partial_success"
	RunStatusError          = "error"
)

// Result is the workflow's assembled run result (§6.2).
type Result struct {
	Status             string       `json:"status"`
	TotalDurationMS     int64        `json:"total_duration_ms"`
	ExecutedTools       int          `json:"executed_tools"`
	Results             []StepResult `json:"results"`
	Output              any          `json:"output,omitempty"`
	DebugInfoOnFailure  any          `json:"debug_info_on_failure,omitempty"`
}
