package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
)

// Styles are the lipgloss styles of the terminal renderer, bound to the
// color profile of one writer
type Styles struct {
	Pod     lipgloss.Style
	Label   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates the styles for output written to w
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Pod:     r.NewStyle().Foreground(headingColor).Bold(true),
		Label:   r.NewStyle().Foreground(mutedColor).Width(9),
		Path:    r.NewStyle().Foreground(pathColor),
		Success: r.NewStyle().Foreground(successColor).Bold(true),
		Error:   r.NewStyle().Foreground(errorColor).Bold(true),
		Warning: r.NewStyle().Foreground(warningColor),
	}
}
