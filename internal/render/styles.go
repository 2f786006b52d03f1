package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to one output so color is only emitted on terminals.
type styles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	code     lipgloss.Style
	negative lipgloss.Style
	total    lipgloss.Style
	errorSev lipgloss.Style
	warnSev  lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		section: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		code: r.NewStyle().
			Foreground(lipgloss.Color("241")),
		negative: r.NewStyle().
			Foreground(lipgloss.Color("196")),
		total: r.NewStyle().
			Bold(true),
		errorSev: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		warnSev: r.NewStyle().
			Foreground(lipgloss.Color("220")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}
