package selfcommand

import (
	"github.com/spf13/cobra"
)

// NewSelfCommand creates the 'self' parent command
func NewSelfCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self",
		Short: "Information about this hwsum build",
		Long:  "Self-management operations for hwsum, e.g. show package and build info.",
	}

	// Attach 'info' as a subcommand
	cmd.AddCommand(NewPackageInfoCommand())

	return cmd
}
