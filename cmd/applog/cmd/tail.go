package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/applog/internal/config"
	"github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/severity"
	"github.com/Aman-CERP/applog/internal/viewer"
	"github.com/Aman-CERP/applog/pkg/applog"
)

type tailOptions struct {
	follow   bool
	wait     bool
	lines    int
	level    string
	filter   string
	noColor  bool
	file     string
	app      string
	filesDir string
	logName  string
}

func newTailCmd() *cobra.Command {
	var opts tailOptions

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show persisted log records",
		Long: `Show the last records of a persisted log file.

By default reads <files_dir>/log/<log_name> for the configured app. Use -f
to follow new records as they are appended (like 'tail -f').`,
		Example: `  applog tail                   # Last 50 records
  applog tail -n 200            # Last 200 records
  applog tail -f                # Follow new records
  applog tail --level warn      # WARN and above
  applog tail --filter "@NET"   # Records matching a regex
  applog tail --file ./app.log  # A specific file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTail(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().BoolVar(&opts.wait, "wait", false, "Wait for the log file to appear")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of records to show (0 for all)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level to show")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path to a log file (overrides --files-dir and --log-name)")
	cmd.Flags().StringVar(&opts.app, "app", "", "Package name of the app")
	cmd.Flags().StringVar(&opts.filesDir, "files-dir", "", "App files directory")
	cmd.Flags().StringVar(&opts.logName, "log-name", "", "Log file name under <files_dir>/log")

	return cmd
}

func runTail(ctx context.Context, cmd *cobra.Command, opts tailOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyTailFlags(cmd, cfg, opts)

	zone, err := cfg.Location()
	if err != nil {
		return errors.New(errors.ErrCodeConfigInvalid, "invalid zone", err)
	}

	vcfg := viewer.Config{Zone: zone, NoColor: !useColor(cfg.Console.Color, cmd.OutOrStdout())}
	if opts.level != "" {
		if vcfg.MinLevel, err = severity.Parse(opts.level); err != nil {
			return err
		}
	}
	if opts.filter != "" {
		if vcfg.Pattern, err = regexp.Compile(opts.filter); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid filter pattern", err)
		}
	}

	filesDir := cfg.Persist.FilesDir
	if filesDir == "" {
		filesDir = applog.LocalFilesDir(cfg.Logging.Package)
	}

	var path string
	if opts.wait {
		path, err = viewer.WaitForLogFile(ctx, errors.DefaultRetryConfig(), opts.file, filesDir, cfg.Persist.LogName)
	} else {
		path, err = viewer.FindLogFile(opts.file, filesDir, cfg.Persist.LogName)
	}
	if err != nil {
		return err
	}
	slog.Debug("Viewing log file", slog.String("path", path), slog.Bool("follow", opts.follow))

	v := viewer.NewViewer(vcfg, cmd.OutOrStdout())
	stderr := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(stderr, "Log file: %s\n", path)

	records, err := v.Tail(path, opts.lines)
	if err != nil {
		return err
	}
	v.Print(records)

	if !opts.follow {
		return nil
	}

	_, _ = fmt.Fprintln(stderr, "Following... (Ctrl+C to stop)")
	return runFollow(ctx, cmd, v, path)
}

func runFollow(ctx context.Context, cmd *cobra.Command, v *viewer.Viewer, path string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	records := make(chan viewer.Record, 100)
	errCh := make(chan error, 1)

	go func() {
		errCh <- v.Follow(ctx, path, records)
	}()

	for {
		select {
		case r := <-records:
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.FormatRecord(r))
		case err := <-errCh:
			return err
		case <-ctx.Done():
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Stopped.")
			return nil
		}
	}
}

// applyTailFlags lets explicitly set flags override the loaded settings.
func applyTailFlags(cmd *cobra.Command, cfg *config.Config, opts tailOptions) {
	flags := cmd.Flags()
	if flags.Changed("app") {
		cfg.Logging.Package = opts.app
	}
	if flags.Changed("files-dir") {
		cfg.Persist.FilesDir = opts.filesDir
	}
	if flags.Changed("log-name") {
		cfg.Persist.LogName = opts.logName
	}
	if opts.noColor {
		cfg.Console.Color = config.ColorNever
	}
}
