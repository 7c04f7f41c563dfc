package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/client"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the configured server address.
	serverAddress string
	// retry keeps trying while the server is unreachable.
	retry bool

	// rootCmd represents the base command for controlling the alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock-ctl",
		Short: "Control a running alarm clock server.",
		Long: `Manages alarms and switches of a running alarm-clock-server over gRPC.

Alarms belong to the primary or the alternate schedule; only alarms of the selected
schedule fire, and none fire while the global switch is off.
Server address is loaded from configuration file unless --server is given.`,
		SilenceUsage: true,
	}
)

// Execute runs the alarm-clock-ctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runAction connects to the server and runs the action with signal-aware cancellation.
func runAction(cmd *cobra.Command, action client.Action) error {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return client.Run(ctx, &client.Options{
		ConfigPath:    cfgPath,
		ServerAddress: serverAddress,
		Retry:         retry,
		Out:           cmd.OutOrStdout(),
	}, action)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&serverAddress, "server", "s", "", "server address, overrides configuration")
	rootCmd.PersistentFlags().BoolVarP(&retry, "retry", "r", false, "retry until the server is reachable")

	rootCmd.AddCommand(
		newListCommand(),
		newSetCommand(),
		newRemoveCommand(),
		newPlayCommand(),
		newStopCommand(),
		newStatusCommand(),
		newScheduleCommand(),
		newGlobalCommand(),
	)
}
