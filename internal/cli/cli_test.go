package cli

import "testing"

func TestCommandsAreRegistered(t *testing.T) {
	want := []string{"run", "record", "doctor", "status", "config"}

	got := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		got[cmd.Name()] = true
	}

	for _, name := range want {
		if !got[name] {
			t.Errorf("rootCmd missing subcommand %q", name)
		}
	}
}

func TestConfigDumpIsRegisteredUnderConfig(t *testing.T) {
	found := false

	for _, sub := range configCmd.Commands() {
		if sub.Name() == "dump" {
			found = true
		}
	}

	if !found {
		t.Error("configCmd missing \"dump\" subcommand")
	}
}

func TestRecordStartIsRegisteredUnderRecord(t *testing.T) {
	found := false

	for _, sub := range recordCmd.Commands() {
		if sub.Name() == "start" {
			found = true
		}
	}

	if !found {
		t.Error("recordCmd missing \"start\" subcommand")
	}
}
