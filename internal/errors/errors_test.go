package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("permission denied")

	// When: wrapping with a coded error
	err := New(ErrCodeLogOpen, "failed to open log file", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, err)
	assert.Equal(t, originalErr, errors.Unwrap(err))
	assert.True(t, errors.Is(err, originalErr))
}

func TestError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "no cause",
			err:      New(ErrCodeInvalidLevel, "unknown log level \"loud\"", nil),
			expected: "[ERR_401_INVALID_LEVEL] unknown log level \"loud\"",
		},
		{
			name:     "with cause",
			err:      New(ErrCodeLogDir, "failed to create log directory", errors.New("read-only file system")),
			expected: "[ERR_201_LOG_DIR] failed to create log directory: read-only file system",
		},
		{
			name:     "wrapped keeps single message",
			err:      Wrap(ErrCodeLogWrite, errors.New("disk full")),
			expected: "[ERR_203_LOG_WRITE] disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Is_MatchesByCode(t *testing.T) {
	err := New(ErrCodeLogOpen, "open a.log", os.ErrPermission)

	assert.True(t, errors.Is(err, Sentinel(ErrCodeLogOpen)))
	assert.False(t, errors.Is(err, Sentinel(ErrCodeLogWrite)))
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestError_WithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeLogOpen, "failed to open log file", nil).
		WithDetail("path", "/data/files/log/app.log").
		WithSuggestion("check directory permissions")

	assert.Equal(t, "/data/files/log/app.log", err.Details["path"])
	assert.Equal(t, "check directory permissions", err.Suggestion)
}

func TestError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeAppMetadata, CategoryConfig},
		{ErrCodeLogDir, CategoryIO},
		{ErrCodeQueueFull, CategoryIO},
		{ErrCodeInvalidLevel, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{"BAD", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.wantCategory, New(tt.code, "msg", nil).Category)
		})
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestGetCode_WalksChain(t *testing.T) {
	inner := New(ErrCodeLogSync, "sync failed", nil)
	outer := &wrapper{err: inner}

	assert.Equal(t, ErrCodeLogSync, GetCode(outer))
	assert.Equal(t, "", GetCode(errors.New("plain")))
	assert.Equal(t, "", GetCode(nil))
}

func TestIsIO(t *testing.T) {
	assert.True(t, IsIO(New(ErrCodeLogClose, "close", nil)))
	assert.False(t, IsIO(New(ErrCodeInvalidLevel, "level", nil)))
	assert.False(t, IsIO(errors.New("plain")))
}

func TestFormatForCLI(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "invalid configuration", nil).
		WithDetail("path", ".applog.yaml").
		WithSuggestion("run 'applog config init'")

	out := FormatForCLI(err)
	assert.Contains(t, out, "Error: invalid configuration")
	assert.Contains(t, out, "path: .applog.yaml")
	assert.Contains(t, out, "Try: run 'applog config init'")
	assert.Contains(t, out, "Code: ERR_101_CONFIG_INVALID")

	assert.Equal(t, "Error: boom", FormatForCLI(errors.New("boom")))

	wrapped := &wrapper{err: New(ErrCodeLogRead, "log file not found", errors.New("no such file"))}
	out = FormatForCLI(wrapped)
	assert.Contains(t, out, "Error: log file not found\n  Cause: no such file\n")
	assert.Contains(t, out, "Code: ERR_208_LOG_READ")
	assert.Equal(t, "", FormatForCLI(nil))
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "outer: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }

func TestError_Format(t *testing.T) {
	err := New(ErrCodeLogOpen, "failed to open log file", errors.New("permission denied"))

	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, "[ERR_202_LOG_OPEN] failed to open log file\ncaused by: permission denied", fmt.Sprintf("%+v", err))

	bare := New(ErrCodeInternal, "oops", nil)
	assert.Equal(t, "[ERR_501_INTERNAL] oops", fmt.Sprintf("%+v", bare))
}
