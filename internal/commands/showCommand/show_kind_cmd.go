package showCommand

import (
	"fmt"

	"github.com/spf13/cobra"

	reportcommand "github.com/redjax/hwsum/internal/commands/reportCommand"
	inventoryservice "github.com/redjax/hwsum/internal/services/inventoryService"
)

var kindAliases = map[inventoryservice.Kind][]string{
	inventoryservice.KindMemory: {"mem"},
	inventoryservice.KindDisk:   {"disks"},
}

// NewKindCmd builds 'show <kind>', which collects the inventory and prints
// only that kind's line.
func NewKindCmd(kind inventoryservice.Kind) *cobra.Command {
	return &cobra.Command{
		Use:     kind.String(),
		Aliases: kindAliases[kind],
		Short:   fmt.Sprintf("Show the %s summary line", kind.Label()),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportcommand.Run(cmd, []inventoryservice.Kind{kind})
		},
	}
}
