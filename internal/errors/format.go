package errors

import (
	"fmt"
	"sort"
	"strings"
)

// FormatForCLI formats an error for terminal output. The first *Error in
// the chain supplies details, suggestion and code.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	e := find(err)
	if e == nil {
		return fmt.Sprintf("Error: %s", err.Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))
	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("  Cause: %v\n", e.Cause))
	}

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Try: %s\n", e.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s", e.Code))
	return sb.String()
}
