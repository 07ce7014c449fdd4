package showCommand

import (
	"github.com/spf13/cobra"

	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
)

func NewShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show one component kind, or the query backend for this platform.",
		Long: `Print a single line of the hardware summary, or details about the backend.

  hwsum show cpu
  hwsum show memory
  hwsum show disk
  hwsum show backend

Run hwsum show --help to see all options.
`,
	}

	// Attach subcommands
	for _, k := range inventoryservice.Kinds {
		showCmd.AddCommand(NewKindCmd(k))
	}
	showCmd.AddCommand(NewBackendCmd())

	return showCmd
}
