package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette.
const (
	ColorHeader = lipgloss.Color("39")
	ColorBorder = lipgloss.Color("240")
	ColorLabel  = lipgloss.Color("245")
	ColorMuted  = lipgloss.Color("241")
	ColorIndex  = lipgloss.Color("244")
)

// Styles for a renderer bound to one output.
type Styles struct {
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Index   lipgloss.Style
	Border  lipgloss.Style
	Caption lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles builds the styles for re. With styled false every style is plain
// apart from cell padding, so output is stable when piped.
func NewStyles(re *lipgloss.Renderer, styled bool) Styles {
	cell := re.NewStyle().Padding(0, 1)
	if !styled {
		plain := re.NewStyle()
		return Styles{
			Header:  cell,
			Cell:    cell,
			Index:   cell,
			Border:  plain,
			Caption: plain,
			Info:    plain,
		}
	}
	return Styles{
		Header:  cell.Foreground(ColorHeader).Bold(true),
		Cell:    cell,
		Index:   cell.Foreground(ColorIndex).Align(lipgloss.Right),
		Border:  re.NewStyle().Foreground(ColorBorder),
		Caption: re.NewStyle().Foreground(ColorLabel),
		Info:    re.NewStyle().Foreground(ColorMuted).Italic(true),
	}
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
