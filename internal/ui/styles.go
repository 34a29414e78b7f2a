package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/applog/internal/severity"
)

// Color palette, one accent per severity.
const (
	ColorLime     = "154" // INFO
	ColorBlue     = "39"  // DEBUG
	ColorGray     = "245" // tags, labels
	ColorDarkGray = "238" // VERBOSE, timestamps
	ColorYellow   = "220" // WARN
	ColorRed      = "196" // ERROR
	ColorMagenta  = "201" // ASSERT
)

// Styles holds the styles used to render log output.
type Styles struct {
	Levels map[severity.Level]lipgloss.Style
	Tag    lipgloss.Style
	Dim    lipgloss.Style
	Header lipgloss.Style
}

// DefaultStyles returns the colored palette bound to r. A nil renderer uses
// the lipgloss default renderer.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Levels: map[severity.Level]lipgloss.Style{
			severity.Verbose: r.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
			severity.Debug:   r.NewStyle().Foreground(lipgloss.Color(ColorBlue)),
			severity.Info:    r.NewStyle().Foreground(lipgloss.Color(ColorLime)),
			severity.Warn:    r.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
			severity.Error:   r.NewStyle().Foreground(lipgloss.Color(ColorRed)),
			severity.Assert:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorMagenta)),
		},
		Tag:    r.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:    r.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Header: r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Levels: map[severity.Level]lipgloss.Style{},
		Tag:    lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
		Header: lipgloss.NewStyle(),
	}
}

// Level returns the style for l, or an empty style for levels without one.
func (s Styles) Level(l severity.Level) lipgloss.Style {
	if st, ok := s.Levels[l]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
