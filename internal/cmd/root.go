// Package cmd implements the controlsheet command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillworks/controlsheet"
	"github.com/quillworks/controlsheet/internal/config"
	"github.com/quillworks/controlsheet/pkg/constants"
	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/logging"
	"github.com/quillworks/controlsheet/pkg/tables"
)

var (
	flagEnvFile string
	flagSheet   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "controlsheet",
	Short: "Reconcile and maintain the content production control sheet",
	Long: `controlsheet runs the content pipeline's maintenance operations
against the shared control sheet: normalizing the calendar, mining and
classifying backlog quotes, scheduling posts, and producing analytics
and weekly reports.

Every operation is idempotent. Rerunning one against an unchanged
sheet issues no writes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagEnvFile != "" {
			if err := godotenv.Load(flagEnvFile); err != nil {
				return errors.WrapIO("load", flagEnvFile, err)
			}
		} else {
			// Optional; direct environment exports work without it.
			_ = godotenv.Load()
		}
		viper.AutomaticEnv()
		if flagVerbose {
			logging.SetVerbose()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "path to a .env file (default ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "override the target sheet for this command")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		fixCmd,
		classifyCmd,
		mineCmd,
		scheduleCmd,
		analyzeCmd,
		reviewCmd,
		reportCmd,
	)
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newPipeline loads configuration, applies flag overrides, and builds
// the pipeline behind every subcommand.
func newPipeline() (*controlsheet.Pipeline, error) {
	cfg := config.Load()
	if flagSheet != "" {
		cfg.FixSheet = tables.Table(flagSheet)
		cfg.ReviewSheet = tables.Table(flagSheet)
	}
	return controlsheet.New(
		controlsheet.WithConfig(cfg),
	)
}

// runContext bounds a subcommand run and attaches a logger.
func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
	ctx = logging.WithLogger(ctx, logging.Default())
	return ctx, cancel
}
