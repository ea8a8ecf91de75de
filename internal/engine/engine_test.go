package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deskautomate/engine/internal/engine"
	"github.com/deskautomate/engine/internal/workflow"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := "[logging]\ndisable_file_logging = true\n\n[metrics]\nenabled = false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	return path
}

func TestNewBuildsAReadyEngine(t *testing.T) {
	e, err := engine.New(tempConfigPath(t))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer e.Close()

	if e.Config() == nil {
		t.Error("Config() = nil")
	}

	if e.Logger() == nil {
		t.Error("Logger() = nil")
	}
}

func TestHealthReportsBackendUnavailableWithoutAPlatform(t *testing.T) {
	e, err := engine.New(tempConfigPath(t))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer e.Close()

	status, err := e.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}

	if status.APIAvailable {
		t.Error("APIAvailable = true, want false with the null platform")
	}
}

func TestRunExecutesASingleToolStep(t *testing.T) {
	e, err := engine.New(tempConfigPath(t))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer e.Close()

	doc := &workflow.Document{
		Steps: []workflow.Step{
			{ID: "press", ToolName: "press_key_global", Arguments: map[string]any{"key": "{Escape}"}},
		},
	}

	result, err := e.Run(context.Background(), doc, 5*time.Second)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Status != workflow.RunStatusError {
		t.Errorf("Status = %q, want %q (the null platform fails every key press)", result.Status, workflow.RunStatusError)
	}

	if result.ExecutedTools != 1 {
		t.Errorf("ExecutedTools = %d, want 1", result.ExecutedTools)
	}
}
