package viewer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Aman-CERP/applog/internal/persist"
	"github.com/Aman-CERP/applog/internal/severity"
)

const headerPrefix = "Logged at "

// Record is one parsed log record.
type Record struct {
	Time      time.Time
	Level     severity.Level
	LevelName string
	Tag       string
	Msg       string
	Raw       string
	IsValid   bool
}

// Parser assembles records from lines. A record starts at a header line and
// runs until the next header, so multi-line messages stay together.
type Parser struct {
	zone    *time.Location
	pending *Record
	raw     []string
}

// NewParser returns a Parser interpreting timestamps in zone.
// Nil means the zone records are written in.
func NewParser(zone *time.Location) *Parser {
	if zone == nil {
		zone = persist.DefaultZone
	}
	return &Parser{zone: zone}
}

// Feed consumes one line without its newline. It returns the previous
// record when line starts a new one.
func (p *Parser) Feed(line string) (Record, bool) {
	if strings.HasPrefix(line, headerPrefix) {
		done, ok := p.Flush()
		t, err := p.parseHeader(line)
		p.pending = &Record{Time: t, IsValid: err == nil}
		p.raw = []string{line}
		return done, ok
	}

	if p.pending == nil {
		if line == "" {
			return Record{}, false
		}
		// Content before the first header.
		return Record{Raw: line, Msg: line}, true
	}

	if len(p.raw) == 1 {
		p.parseBody(line)
	} else {
		p.pending.Msg += "\n" + line
	}
	p.raw = append(p.raw, line)
	return Record{}, false
}

// Flush returns the record being assembled, if any.
func (p *Parser) Flush() (Record, bool) {
	if p.pending == nil {
		return Record{}, false
	}
	r := *p.pending
	r.Raw = strings.Join(p.raw, "\n")
	if len(p.raw) < 2 {
		r.IsValid = false
	}
	p.pending = nil
	p.raw = nil
	return r, true
}

func (p *Parser) parseHeader(line string) (time.Time, error) {
	var h, m, s, month, day, year int
	_, err := fmt.Sscanf(line, headerPrefix+"%d:%d:%d %d-%d-%d", &h, &m, &s, &month, &day, &year)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month+1), day, h, m, s, 0, p.zone), nil
}

func (p *Parser) parseBody(line string) {
	head, msg, ok := strings.Cut(line, "\t")
	if !ok {
		p.pending.IsValid = false
		p.pending.Msg = line
		return
	}
	name, tag, ok := strings.Cut(head, "@")
	if !ok {
		p.pending.IsValid = false
		p.pending.Msg = line
		return
	}
	p.pending.LevelName = name
	p.pending.Tag = tag
	p.pending.Msg = msg
	if lvl, err := severity.Parse(name); err == nil {
		p.pending.Level = lvl
	}
}

// ParseRecords reads every record from r. Lines have no length limit.
func ParseRecords(r io.Reader, zone *time.Location) ([]Record, error) {
	p := NewParser(zone)
	reader := bufio.NewReader(r)

	var out []Record
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if rec, ok := p.Feed(line); ok {
				out = append(out, rec)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
	}
	if rec, ok := p.Flush(); ok {
		out = append(out, rec)
	}
	return out, nil
}
