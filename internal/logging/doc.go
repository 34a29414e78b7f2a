// Package logging configures the applog tool's own diagnostic logging.
// With --debug the CLI logs JSON to stderr and, optionally, to a file;
// otherwise slog keeps its default handler.
package logging
