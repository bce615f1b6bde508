package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the styles of one theme.
type Styles struct {
	Header      lipgloss.Style
	TableHeader lipgloss.Style
	Selected    lipgloss.Style
	Footer      lipgloss.Style
	Error       lipgloss.Style
	Notice      lipgloss.Style
	Label       lipgloss.Style
	Dim         lipgloss.Style
	Release     map[string]lipgloss.Style
}

// NewStyles returns the styles of theme. Unknown themes get the default.
func NewStyles(theme string) Styles {
	if theme == "mono" {
		return monoStyles()
	}
	return defaultStyles()
}

func defaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#F16436")).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("#FFA500")).
			Foreground(lipgloss.Color("#000000")),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ADD8")),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F16436")),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080")),
		Release: map[string]lipgloss.Style{
			"Release": lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
			"Beta":    lipgloss.NewStyle().Foreground(lipgloss.Color("#00ADD8")),
			"Alpha":   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
		},
	}
}

func monoStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:      plain.Bold(true).Padding(0, 1),
		TableHeader: plain.Bold(true).Underline(true),
		Selected:    plain.Reverse(true),
		Footer:      plain,
		Error:       plain.Bold(true),
		Notice:      plain,
		Label:       plain.Bold(true),
		Dim:         plain.Faint(true),
		Release:     map[string]lipgloss.Style{},
	}
}

// release styles a release type name padded to width.
func (s Styles) release(name string, width int) string {
	padded := fmt.Sprintf("%-*s", width, name)
	if style, ok := s.Release[name]; ok {
		return style.Render(padded)
	}
	return padded
}
