package output

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PtermReporter prints install progress sections
type PtermReporter struct {
	w     io.Writer
	color bool
}

// NewReporter creates a reporter writing to w. Without color the
// sections are printed as plain text.
func NewReporter(w io.Writer, color bool) *PtermReporter {
	return &PtermReporter{w: w, color: color}
}

func (r *PtermReporter) Section(title string) {
	if r.color {
		title = pterm.Bold.Sprint(title)
	}
	fmt.Fprintln(r.w, title)
}

func (r *PtermReporter) Message(msg string) {
	if r.color {
		msg = pterm.FgGray.Sprint(msg)
	}
	fmt.Fprintln(r.w, "  "+msg)
}
