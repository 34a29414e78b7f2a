// Package persist appends log records to per-app log files.
//
// A record is two text lines:
//
//	Logged at <H>:<M>:<S> <Month0-11>-<Day>-<Year>
//	<LEVELNAME>@<tag>\t<message>
//
// Fields are not zero-padded and the month is zero-based. Times are rendered
// in a fixed GMT+8 zone unless the Writer is configured otherwise, so files
// written on devices in different zones line up.
package persist

import (
	"fmt"
	"time"
)

// LogDirName is the subdirectory of the files dir that holds log files.
const LogDirName = "log"

// DefaultZone is the zone record timestamps are rendered in.
var DefaultZone = time.FixedZone("GMT+8", 8*60*60)

// FormatRecord renders one record, including the trailing newline.
func FormatRecord(t time.Time, zone *time.Location, levelName, tag, msg string) string {
	if zone == nil {
		zone = DefaultZone
	}
	t = t.In(zone)
	return fmt.Sprintf("Logged at %d:%d:%d %d-%d-%d\n%s@%s\t%s\n",
		t.Hour(), t.Minute(), t.Second(),
		int(t.Month())-1, t.Day(), t.Year(),
		levelName, tag, msg)
}
