package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/deskautomate/engine/internal/engine"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/metrics"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show accumulated engine metrics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := engine.New(configPath)
		if err != nil {
			return derrors.Wrap(err, derrors.CodeInvalidConfig, "starting engine")
		}
		defer e.Close()

		snapshot := e.Metrics().Snapshot()
		if len(snapshot) == 0 {
			cmd.Println("no metrics recorded yet")

			return nil
		}

		sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Name < snapshot[j].Name })

		for _, m := range snapshot {
			switch m.Type {
			case metrics.TypeCounter:
				cmd.Printf("%-40s %d\n", m.Name, int(m.Value))
			case metrics.TypeGauge:
				cmd.Printf("%-40s %.2f\n", m.Name, m.Value)
			case metrics.TypeHistogram:
				cmd.Printf("%-40s %.4fs\n", m.Name, m.Value)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
