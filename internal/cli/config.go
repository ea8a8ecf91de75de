package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/deskautomate/engine/internal/engine"
	derrors "github.com/deskautomate/engine/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective engine configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := engine.New(configPath)
		if err != nil {
			return derrors.Wrap(err, derrors.CodeInvalidConfig, "starting engine")
		}
		defer e.Close()

		out, err := json.MarshalIndent(e.Config(), "", "  ")
		if err != nil {
			return derrors.Wrap(err, derrors.CodeSerializationFailed, "marshaling configuration")
		}

		cmd.Println(string(out))

		return nil
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(configCmd)
}
