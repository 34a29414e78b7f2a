package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/applog/internal/persist"
	"github.com/Aman-CERP/applog/internal/severity"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum level, any name severity.Parse accepts.
	Level string
	// FilePath additionally appends JSON logs to this file. Empty means
	// no file logging.
	FilePath string
	// WriteToStderr whether to also write to stderr (default: true).
	WriteToStderr bool
}

// DefaultConfig returns stderr-only logging at INFO.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		WriteToStderr: true,
	}
}

// DebugConfig returns configuration for debug mode.
func DebugConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	return cfg
}

// Setup builds a JSON slog.Logger for cfg and returns a cleanup function
// that closes the log file, if any. stderr nil means os.Stderr.
func Setup(cfg Config, stderr io.Writer) (*slog.Logger, func(), error) {
	level, err := severity.Parse(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	var writers []io.Writer
	cleanup := func() {}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, err
		}
		file, err := persist.NewAppendWriter(cfg.FilePath, true)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, file)
		cleanup = func() {
			_ = file.Sync()
			_ = file.Close()
		}
	}
	if cfg.WriteToStderr || len(writers) == 0 {
		writers = append(writers, stderr)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level.ToSlog(),
	})
	return slog.New(handler), cleanup, nil
}
