package cmd

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/applog/internal/config"
	"github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/output"
	"github.com/Aman-CERP/applog/internal/severity"
	"github.com/Aman-CERP/applog/internal/sink"
	"github.com/Aman-CERP/applog/internal/ui"
	"github.com/Aman-CERP/applog/pkg/applog"
)

type emitOptions struct {
	level      string
	tag        string
	app        string
	logName    string
	filesDir   string
	minLevel   string
	errMsg     string
	debuggable bool
	repeat     int
	workers    int
	here       bool
}

func newEmitCmd() *cobra.Command {
	var opts emitOptions

	cmd := &cobra.Command{
		Use:   "emit <message...>",
		Short: "Log a message and persist it",
		Long: `Log one message through the applog facade.

The message goes to the console when its level is at or above the minimum
level, and is always appended to <files_dir>/log/<log_name>.`,
		Example: `  # Log a warning
  applog emit --level warn "build failed"

  # Attach an error with a stack trace
  applog emit --level error --err "disk full" "upload aborted"

  # Emit 1000 records from 8 goroutines
  applog emit --repeat 1000 --workers 8 "load test"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd.Context(), cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.level, "level", "l", "info", "Level of the message (verbose|debug|info|warn|error|assert)")
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Tag for the call (accepted for compatibility, not persisted)")
	cmd.Flags().StringVar(&opts.app, "app", "", "Package name of the emitting app")
	cmd.Flags().StringVar(&opts.logName, "log-name", "", "Log file name under <files_dir>/log")
	cmd.Flags().StringVar(&opts.filesDir, "files-dir", "", "App files directory")
	cmd.Flags().StringVar(&opts.minLevel, "min-level", "", "Minimum console level")
	cmd.Flags().StringVar(&opts.errMsg, "err", "", "Attach an error with this message and its stack trace")
	cmd.Flags().BoolVar(&opts.debuggable, "debuggable", false, "Treat the app as debuggable (minimum level verbose)")
	cmd.Flags().IntVar(&opts.repeat, "repeat", 1, "Number of times to log the message")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Number of concurrent emitters")
	cmd.Flags().BoolVar(&opts.here, "here", false, "Record the CLI call site with each message")

	return cmd
}

func runEmit(ctx context.Context, cmd *cobra.Command, opts emitOptions, msg string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.repeat < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--repeat must be at least 1", nil)
	}
	if opts.workers < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--workers must be at least 1", nil)
	}

	level, err := severity.Parse(opts.level)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyEmitFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newCLILogger(cmd, cfg)
	if err != nil {
		return err
	}

	if l, ok := cfg.LevelOverride(); ok {
		logger.Config().SetLevel(l)
	}

	callOpts := []applog.CallOption{applog.Thread("cli")}
	if opts.tag != "" {
		callOpts = append(callOpts, applog.Tag(opts.tag))
	}
	if opts.errMsg != "" {
		callOpts = append(callOpts, applog.Err(pkgerrors.New(opts.errMsg)))
	}
	if opts.here {
		callOpts = append(callOpts, applog.Here())
	}

	slog.Debug("Emitting",
		slog.String("level", level.String()),
		slog.Int("repeat", opts.repeat),
		slog.Int("workers", opts.workers),
		slog.String("path", logger.LogPath()))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for i := 0; i < opts.repeat; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger.Println(level, msg, callOpts...)
			return nil
		})
	}
	waitErr := g.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := logger.Close(closeCtx); err != nil {
		return err
	}
	if waitErr != nil {
		return waitErr
	}

	stats := logger.Stats()
	slog.Debug("Emit finished",
		slog.Duration("elapsed", time.Since(start)),
		slog.Uint64("written", stats.Written),
		slog.Uint64("dropped", stats.Dropped),
		slog.Uint64("failed", stats.Failed))

	if opts.repeat > 1 || stats.Dropped > 0 || stats.Failed > 0 {
		out := output.New(cmd.OutOrStdout())
		out.Successf("Emitted %d record(s)", opts.repeat)
		out.Field("Location", logger.LogPath())
		out.Field("Written", strconv.FormatUint(stats.Written, 10))
		if stats.Dropped > 0 || stats.Failed > 0 {
			out.Warning("Some records were not persisted")
			out.Field("Dropped", strconv.FormatUint(stats.Dropped, 10))
			out.Field("Failed", strconv.FormatUint(stats.Failed, 10))
		}
	}
	return nil
}

// applyEmitFlags lets explicitly set flags override the loaded settings.
func applyEmitFlags(cmd *cobra.Command, cfg *config.Config, opts emitOptions) {
	flags := cmd.Flags()
	if flags.Changed("app") {
		cfg.Logging.Package = opts.app
	}
	if flags.Changed("debuggable") {
		cfg.Logging.Debuggable = opts.debuggable
	}
	if flags.Changed("min-level") {
		cfg.Logging.Level = opts.minLevel
	}
	if flags.Changed("files-dir") {
		cfg.Persist.FilesDir = opts.filesDir
	}
	if flags.Changed("log-name") {
		cfg.Persist.LogName = opts.logName
	}
}

// newCLILogger builds a Logger whose console matches the settings.
func newCLILogger(cmd *cobra.Command, cfg *config.Config) (*applog.Logger, error) {
	filesDir := cfg.Persist.FilesDir
	if filesDir == "" {
		filesDir = applog.LocalFilesDir(cfg.Logging.Package)
	}

	persistOpts, err := cfg.PersistOptions()
	if err != nil {
		return nil, err
	}

	return applog.New(applog.Options{
		App: applog.StaticApp{
			Dir:          filesDir,
			Package:      cfg.Logging.Package,
			IsDebuggable: cfg.Logging.Debuggable,
		},
		Console: newConsole(cmd, cfg),
		Persist: persistOpts,
	})
}

func newConsole(cmd *cobra.Command, cfg *config.Config) sink.Console {
	if cfg.Console.Format == config.FormatSlog {
		return sink.NewSlogConsole(slog.Default())
	}
	out := cmd.ErrOrStderr()
	return sink.NewWriterConsole(out, sink.WithColor(useColor(cfg.Console.Color, out)))
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return sink.IsTerminal(out)
	}
}

// stylesFor returns the palette for the color mode.
func stylesFor(mode string, out io.Writer) ui.Styles {
	if useColor(mode, out) {
		return ui.DefaultStyles(sink.ColorRenderer(out))
	}
	return ui.NoColorStyles()
}
