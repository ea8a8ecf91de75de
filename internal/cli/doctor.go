package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/engine"
	derrors "github.com/deskautomate/engine/internal/errors"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the accessibility backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := engine.New(configPath)
		if err != nil {
			return derrors.Wrap(err, derrors.CodeInvalidConfig, "starting engine")
		}
		defer e.Close()

		status, err := e.Health(context.Background())
		if err != nil {
			return derrors.Wrap(err, derrors.CodePlatformError, "checking accessibility health")
		}

		if status.Status == accessibility.HealthHealthy {
			cmd.Println("✅ all systems operational")
		} else {
			cmd.Println("⚠️  some components are unhealthy:")
		}

		printCheck(cmd, "api_available", status.APIAvailable)
		printCheck(cmd, "desktop_accessible", status.DesktopAccessible)
		printCheck(cmd, "can_enumerate_elements", status.CanEnumerateElements)

		for name, detail := range status.Diagnostics {
			cmd.Printf("    %s: %s\n", name, detail)
		}

		if status.Status != accessibility.HealthHealthy {
			return derrors.New(derrors.CodePlatformError, "accessibility backend unhealthy")
		}

		return nil
	},
}

func printCheck(cmd *cobra.Command, name string, ok bool) {
	if ok {
		cmd.Printf("  ✅ %s\n", name)
	} else {
		cmd.Printf("  ❌ %s\n", name)
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
