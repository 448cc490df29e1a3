package output_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/podkit/pkg/output"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   output.Format
		expected string
	}{
		{output.FormatAuto, "auto"},
		{output.FormatTerminal, "term"},
		{output.FormatText, "text"},
		{output.FormatJSON, "json"},
		{output.FormatYAML, "yaml"},
		{output.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected output.Format
		wantErr  bool
	}{
		{name: "empty is auto", input: "", expected: output.FormatAuto},
		{name: "auto", input: "auto", expected: output.FormatAuto},
		{name: "terminal alias", input: "terminal", expected: output.FormatTerminal},
		{name: "uppercase term", input: "TERM", expected: output.FormatTerminal},
		{name: "plain alias", input: "plain", expected: output.FormatText},
		{name: "json", input: "Json", expected: output.FormatJSON},
		{name: "yml alias", input: "yml", expected: output.FormatYAML},
		{name: "invalid", input: "xml", expected: output.FormatAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := output.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, output.FormatText, output.DetectFormat(os.Stdout))
	})

	t.Run("regular file is text", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		assert.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, output.FormatText, output.DetectFormat(f))
	})
}
