// Package viewer reads persisted applog files back into records so they can
// be tailed, filtered and followed from the command line.
package viewer
