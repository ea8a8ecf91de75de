package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskautomate/engine/internal/engine"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/workflow"
)

var runTimeout time.Duration

var runCmd = &cobra.Command{
	Use:   "run <workflow-file>",
	Short: "Run a workflow document and print its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := workflow.LoadDocument(args[0])
		if err != nil {
			return err
		}

		e, err := engine.New(configPath)
		if err != nil {
			return derrors.Wrap(err, derrors.CodeInvalidConfig, "starting engine")
		}
		defer e.Close()

		result, err := e.Run(context.Background(), doc, runTimeout)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return derrors.Wrap(err, derrors.CodeSerializationFailed, "marshaling run result")
		}

		cmd.Println(string(out))

		if result.Status == workflow.RunStatusError {
			return derrors.New(derrors.CodeActionFailed, "workflow run failed")
		}

		return nil
	},
}

func init() {
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 60*time.Second, "maximum time to let the run take")
	rootCmd.AddCommand(runCmd)
}
