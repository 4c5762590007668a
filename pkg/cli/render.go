package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/nomagicln/propcheck/pkg/history"
	"github.com/nomagicln/propcheck/pkg/property"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // Green
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)
)

// Renderer writes run results for humans.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a Renderer. Colour is used only when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, color: IsTerminal(w)}
}

// NewPlainRenderer creates a Renderer that never uses colour.
func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// IsTerminal checks if w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Result prints one run: a status badge, counts, messages and the replay seed.
func (r *Renderer) Result(res property.Result) {
	var badge string
	switch res.Status {
	case property.StatusPassed:
		badge = r.style(passStyle, "PASS")
	case property.StatusExhausted:
		badge = r.style(warnStyle, "EXHAUSTED")
	case property.StatusInvalid:
		badge = r.style(failStyle, "INVALID")
	default:
		badge = r.style(failStyle, "FAIL")
	}

	_, _ = fmt.Fprintf(r.w, "%s %s\n", badge, res.Name)
	_, _ = fmt.Fprintln(r.w, r.style(dimStyle, fmt.Sprintf("  %d passed, %d rejected, %d failed in %d attempts (%s)",
		res.Passed, res.Rejected, len(res.Failures), res.Attempts, res.Duration.Round(time.Microsecond))))

	for _, msg := range res.Messages() {
		_, _ = fmt.Fprintf(r.w, "  %s\n", msg)
	}
	for _, f := range res.Failures {
		if f.Original != f.Arguments {
			_, _ = fmt.Fprintln(r.w, r.style(dimStyle, fmt.Sprintf("  shrunk from %s (%d candidates evaluated)", f.Original, f.Evaluated)))
		}
	}
	if !res.OK() && res.Status != property.StatusInvalid {
		_, _ = fmt.Fprintln(r.w, r.style(dimStyle, fmt.Sprintf("  replay with --seed %d", res.Seed)))
	}
}

// Summary prints totals over several runs.
func (r *Renderer) Summary(results []property.Result) {
	passed := 0
	for _, res := range results {
		if res.OK() {
			passed++
		}
	}
	line := fmt.Sprintf("%d/%d properties held", passed, len(results))
	if passed == len(results) {
		line = r.style(passStyle, line)
	} else {
		line = r.style(failStyle, line)
	}
	_, _ = fmt.Fprintf(r.w, "\n%s\n", line)
}

// List prints property names with their invariants.
func (r *Renderer) List(names, invariants []string) {
	_, _ = fmt.Fprintln(r.w, r.style(titleStyle, "Properties"))
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for i, n := range names {
		_, _ = fmt.Fprintf(r.w, "  %-*s  %s\n", width, n, r.style(dimStyle, invariants[i]))
	}
}

// History prints recorded runs, newest first.
func (r *Renderer) History(entries []history.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(r.w, "No runs recorded.")
		return
	}
	_, _ = fmt.Fprintln(r.w, r.style(titleStyle, "History"))
	for _, e := range entries {
		status := strings.ToUpper(e.Status)
		switch e.Status {
		case property.StatusPassed.String():
			status = r.style(passStyle, status)
		case property.StatusExhausted.String():
			status = r.style(warnStyle, status)
		default:
			status = r.style(failStyle, status)
		}
		_, _ = fmt.Fprintf(r.w, "  %s  %-9s %s  seed=%d passed=%d rejected=%d failures=%d\n",
			e.RecordedAt.Format("2006-01-02 15:04:05"), status, e.Test, e.Seed, e.Passed, e.Rejected, e.Failures)
	}
}
