// The root command for the CLI.
// This root 'composes' the subcommands and provides global config flags like --debug.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	reportcommand "github.com/redjax/hwsum/internal/commands/reportCommand"
	selfcommand "github.com/redjax/hwsum/internal/commands/selfCommand"
	"github.com/redjax/hwsum/internal/commands/showCommand"
	versioncommand "github.com/redjax/hwsum/internal/commands/versionCommand"
	"github.com/redjax/hwsum/internal/config"
	reportservice "github.com/redjax/hwsum/internal/services/reportService"

	"github.com/spf13/cobra"
)

var (
	// A path to a file to load configuration from
	cfgFile string
	// For enabling debug logging with --debug/-D
	debug bool
)

// NewRootCmd builds the hwsum command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hwsum",
		Short: "Summarize this machine's CPU, memory and disk inventory.",
		Long: `hwsum prints a short hardware summary, one line per component kind:

  CPU: 2 * Intel(R) Xeon(R) Gold 6130 CPU @ 2.10GHz,16核32线程
  Memory: 4 * 16GB,2666MHz,DDR4
  Disk: 500GB SSD,2000GB HDD,

Running hwsum with no subcommand is the same as 'hwsum report'.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportcommand.Run(cmd, nil)
		},
	}

	// Add flags to the CLI's root command, making them 'global'
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (json, jsonc, yaml, toml or env)")
	flags.BoolVarP(&debug, "debug", "D", false, "Enable debug logging")
	config.RegisterFlags(flags)

	rootCmd.AddCommand(reportcommand.NewReportCmd())
	rootCmd.AddCommand(showCommand.NewShowCmd())
	rootCmd.AddCommand(versioncommand.NewVersionCommand())
	rootCmd.AddCommand(selfcommand.NewSelfCommand())

	return rootCmd
}

// Execute the root Cobra command
func Execute() {
	// Import this into a main.go and call with cmd.Execute()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// Load configuration and set up logging for the command about to run.
func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags(), cfgFile)
	if err != nil {
		return err
	}

	logger, err := reportservice.NewLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Debug("configuration loaded",
		"config_file", cfgFile,
		"format", cfg.Output.Format,
		"partial", cfg.Collect.Partial,
		"timeout", cfg.Collect.Timeout,
		"retries", cfg.Collect.Retries,
	)

	cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
	return nil
}
