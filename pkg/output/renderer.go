// Package output renders podkit reports as styled terminal output, plain
// text, JSON or YAML.
package output

import (
	"io"
	"os"

	"github.com/arthur-debert/podkit/pkg/errors"
)

// Renderer writes reports in one format
type Renderer interface {
	// RenderResult renders an *InstallReport, a []*CleanPlan or a
	// []*HeaderReport. Other values are printed as is.
	RenderResult(result interface{}) error

	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer creates the renderer for format writing to w
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := w.(*os.File); ok {
			return NewRenderer(DetectFormat(file), w)
		}
		return NewRenderer(FormatText, w)
	case FormatTerminal:
		return newTextRenderer(w, NewStyles(w)), nil
	case FormatText:
		return newTextRenderer(w, nil), nil
	case FormatJSON:
		return newJSONRenderer(w), nil
	case FormatYAML:
		return newYAMLRenderer(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
