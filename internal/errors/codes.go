// Package errors provides coded errors for applog.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Log file I/O errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category groups error codes.
type Category string

const (
	// CategoryConfig indicates configuration errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates log file and directory errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates bad input.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid  = "ERR_101_CONFIG_INVALID"
	ErrCodeAppMetadata    = "ERR_102_APP_METADATA"
	ErrCodeConfigNotFound = "ERR_103_CONFIG_NOT_FOUND"

	// IO errors (200-299)
	ErrCodeLogDir       = "ERR_201_LOG_DIR"
	ErrCodeLogOpen      = "ERR_202_LOG_OPEN"
	ErrCodeLogWrite     = "ERR_203_LOG_WRITE"
	ErrCodeLogSync      = "ERR_204_LOG_SYNC"
	ErrCodeLogClose     = "ERR_205_LOG_CLOSE"
	ErrCodeQueueFull    = "ERR_206_QUEUE_FULL"
	ErrCodeWriterClosed = "ERR_207_WRITER_CLOSED"
	ErrCodeLogRead      = "ERR_208_LOG_READ"

	// Validation errors (400-499)
	ErrCodeInvalidLevel = "ERR_401_INVALID_LEVEL"
	ErrCodeInvalidInput = "ERR_402_INVALID_INPUT"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts the category from an error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}
