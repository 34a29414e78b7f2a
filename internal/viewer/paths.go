package viewer

import (
	"context"
	"os"

	"github.com/Aman-CERP/applog/internal/errors"
	"github.com/Aman-CERP/applog/internal/persist"
)

// FindLogFile resolves the file to view. An explicit path wins over the
// default location under filesDir.
func FindLogFile(explicit, filesDir, logName string) (string, error) {
	path := explicit
	if path == "" {
		if logName == "" {
			logName = persist.DefaultLogName
		}
		path = persist.LogPath(filesDir, logName)
	}

	if _, err := os.Stat(path); err != nil {
		return "", errors.New(errors.ErrCodeLogRead, "log file not found", err).
			WithDetail("path", path).
			WithSuggestion("Emit a record first: applog emit \"hello\"")
	}
	return path, nil
}

// WaitForLogFile retries FindLogFile with backoff until the file exists.
func WaitForLogFile(ctx context.Context, cfg errors.RetryConfig, explicit, filesDir, logName string) (string, error) {
	return errors.RetryWithResult(ctx, cfg, func() (string, error) {
		return FindLogFile(explicit, filesDir, logName)
	})
}
