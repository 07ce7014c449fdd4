package showCommand

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	platformservice "github.com/redjax/hwsum/internal/services/platformService"
	"github.com/redjax/hwsum/internal/services/platformService/capabilities"
)

func NewBackendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Show the hardware query backend and the commands it needs",
		Long:  `Shows which backend serves this platform and whether each command it runs is on PATH.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := platformservice.NewBackend(nil, slog.Default())
			if err != nil {
				return err
			}
			return printBackend(cmd, backend)
		},
	}
}

func printBackend(cmd *cobra.Command, backend platformservice.Backend) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend: %s\n", backend.Name())

	required := backend.Requirements()
	if len(required) == 0 {
		fmt.Fprintln(out, "Requirements: none")
		return nil
	}

	fmt.Fprintln(out, "Requirements:")
	paths := capabilities.Resolve(required)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, bin := range required {
		path := paths[bin]
		if path == "" {
			path = "not found"
		}
		fmt.Fprintf(w, "  %s\t%s\n", bin, path)
	}
	return w.Flush()
}
