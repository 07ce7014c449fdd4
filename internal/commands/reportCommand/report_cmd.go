package reportcommand

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/redjax/hwsum/internal/config"
	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
	reportservice "github.com/redjax/hwsum/internal/services/reportService"
)

func NewReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Collect and print the CPU, memory and disk summary",
		Long: `Collect the hardware inventory and print one line per component kind.

Identical components collapse into "N * description"; mixed components are
listed one by one. Disk capacities are rounded to the nearest of 120, 240,
500, 1000, 2000 or 4000 GB.

Use --format to switch between text, table and json output, and --partial to
print "unknown" for a component that could not be read instead of failing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, nil)
		},
	}
}

// Run collects the inventory and renders the given kinds, or all of them
// when kinds is empty, to the command's output.
func Run(cmd *cobra.Command, kinds []inventoryservice.Kind) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return errors.New("configuration was not loaded")
	}
	logger := slog.Default()

	backend, err := reportservice.NewBackend(cfg, logger)
	if err != nil {
		return err
	}

	inv, err := reportservice.Collect(cmd.Context(), cfg, backend, logger)
	if err != nil {
		return err
	}

	return reportservice.Render(cmd.OutOrStdout(), inv, reportservice.RenderOptions{
		Format: cfg.Output.Format,
		Color:  cfg.Output.Color,
		Kinds:  kinds,
	})
}
