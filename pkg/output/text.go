package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/podkit/pkg/installer"
)

// textRenderer renders plain text, styled when styles is set
type textRenderer struct {
	w      io.Writer
	styles *Styles
}

func newTextRenderer(w io.Writer, styles *Styles) *textRenderer {
	return &textRenderer{w: w, styles: styles}
}

func (r *textRenderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *InstallReport:
		r.writeInstall(&b, v)
	case []*CleanPlan:
		for _, plan := range v {
			r.writeCleanPlan(&b, plan)
		}
	case []*HeaderReport:
		for _, report := range v {
			r.writeHeaders(&b, report)
		}
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "%s %v\n", r.paint(errorStyle, "Error:"), err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *textRenderer) writeInstall(b *strings.Builder, report *InstallReport) {
	fmt.Fprintf(b, "%s %s\n", r.label("sandbox"), r.paint(pathStyle, report.Sandbox))
	for _, pod := range report.Pods {
		b.WriteString("\n")
		fmt.Fprintf(b, "%s %s %s\n",
			r.paint(podStyle, pod.Pod),
			pod.Version,
			r.paint(successStyle, "✓ "+lastStep(pod.Steps)))
		r.line(b, "root", r.paint(pathStyle, pod.Root))
		if pod.SpecificSource != nil {
			r.line(b, "source", formatSource(pod.SpecificSource))
		}
		r.line(b, "steps", formatSteps(pod.Steps))
		if len(pod.Removed) > 0 {
			r.line(b, "removed", fmt.Sprintf("%d path(s)", len(pod.Removed)))
		}
		r.line(b, "headers", fmt.Sprintf("%d build, %d public", len(pod.BuildHeaders), len(pod.PublicHeaders)))
	}
}

func (r *textRenderer) writeCleanPlan(b *strings.Builder, plan *CleanPlan) {
	fmt.Fprintf(b, "%s %s\n", r.paint(podStyle, plan.Pod), r.paint(pathStyle, plan.Root))
	if len(plan.Paths) == 0 {
		fmt.Fprintf(b, "  %s\n", r.paint(labelStyle, "nothing to remove"))
		return
	}
	for _, path := range plan.Paths {
		fmt.Fprintf(b, "  %s %s\n", r.paint(warningStyle, "-"), path)
	}
}

func (r *textRenderer) writeHeaders(b *strings.Builder, report *HeaderReport) {
	fmt.Fprintf(b, "%s\n", r.paint(podStyle, report.Pod))
	for _, section := range []struct {
		name    string
		mapping map[string][]string
	}{
		{"build", report.Build},
		{"public", report.Public},
	} {
		dirs := make([]string, 0, len(section.mapping))
		for dir := range section.mapping {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			r.line(b, section.name, r.paint(pathStyle, dir))
			for _, header := range section.mapping[dir] {
				fmt.Fprintf(b, "    %s\n", header)
			}
		}
	}
}

func (r *textRenderer) line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", r.label(label), value)
}

func (r *textRenderer) label(s string) string {
	if r.styles == nil {
		return fmt.Sprintf("%-9s", s)
	}
	return r.styles.Label.Render(s)
}

type stylePicker func(*Styles) lipgloss.Style

func podStyle(s *Styles) lipgloss.Style     { return s.Pod }
func labelStyle(s *Styles) lipgloss.Style   { return s.Label }
func pathStyle(s *Styles) lipgloss.Style    { return s.Path }
func successStyle(s *Styles) lipgloss.Style { return s.Success }
func errorStyle(s *Styles) lipgloss.Style   { return s.Error }
func warningStyle(s *Styles) lipgloss.Style { return s.Warning }

func (r *textRenderer) paint(pick stylePicker, s string) string {
	if r.styles == nil {
		return s
	}
	return pick(r.styles).Render(s)
}

func lastStep(steps []installer.State) string {
	if len(steps) == 0 {
		return installer.NotStarted.String()
	}
	return steps[len(steps)-1].String()
}

func formatSteps(steps []installer.State) string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func formatSource(source map[string]string) string {
	if len(source) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(source))
	for k := range source {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + source[k]
	}
	return strings.Join(parts, " ")
}
