// Package cmd provides the CLI commands for applog.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/applog/internal/config"
	"github.com/Aman-CERP/applog/internal/logging"
	"github.com/Aman-CERP/applog/pkg/version"
)

// NewRootCmd creates the root command for the applog CLI.
func NewRootCmd() *cobra.Command {
	var (
		debugMode      bool
		debugFile      string
		loggingCleanup func()
	)

	cmd := &cobra.Command{
		Use:   "applog",
		Short: "Leveled application logging with persisted log files",
		Long: `applog writes leveled log records to the console and appends them to
<files_dir>/log/<log_name>, then reads those files back.

Records below the minimum level are not shown on the console but are
always persisted.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("applog version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write the tool's own debug logs to stderr as JSON")
	cmd.PersistentFlags().StringVar(&debugFile, "debug-file", "", "Also append debug logs to this file (implies --debug)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if !debugMode && debugFile == "" {
			return nil
		}
		cfg := logging.DebugConfig()
		cfg.FilePath = debugFile
		logger, cleanup, err := logging.Setup(cfg, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Debug("Debug logging enabled",
			slog.String("command", cmd.CommandPath()),
			slog.String("version", version.Version))
		return nil
	}
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		if loggingCleanup != nil {
			slog.Debug("Debug logging stopped")
			loggingCleanup()
			loggingCleanup = nil
		}
		return nil
	}

	cmd.AddCommand(newEmitCmd())
	cmd.AddCommand(newTailCmd())
	cmd.AddCommand(newLevelsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads the settings for the project containing the working
// directory.
func loadConfig() (*config.Config, error) {
	root, err := config.FindProjectRoot(".")
	if err != nil {
		if root, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	slog.Debug("Loading configuration", slog.String("project_root", root))
	return config.Load(root)
}
