// Package output renders command results for the terminal. Styling is
// applied only when writing to a color-capable TTY.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/symgr/pkg/commands/status"
	"github.com/arthur-debert/symgr/pkg/types"
)

// Styles used by the renderer.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	pathStyle    = lipgloss.NewStyle().Bold(true)
)

// Renderer writes human-readable results.
type Renderer struct {
	w      io.Writer
	styled bool
	dryRun bool
}

// NewRenderer creates a Renderer for w. Styling is enabled only when w is
// a color-capable terminal and NO_COLOR is unset.
func NewRenderer(w io.Writer, dryRun bool) *Renderer {
	return &Renderer{w: w, styled: detectStyling(w), dryRun: dryRun}
}

func detectStyling(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

func (r *Renderer) render(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) prefix() string {
	if r.dryRun {
		return "would be "
	}
	return ""
}

// RenderLink prints the outcome of a single link reconciliation.
func (r *Renderer) RenderLink(res *types.LinkResult) {
	switch res.Action {
	case types.ActionUnchanged:
		fmt.Fprintf(r.w, "%s already points to %s\n",
			r.render(pathStyle, res.Location), res.Target)
	case types.ActionBackedUp:
		fmt.Fprintf(r.w, "%s %s%s -> %s",
			r.render(successStyle, "linked"), r.prefix(),
			r.render(pathStyle, res.Location), res.Target)
		if res.BackupPath != "" {
			fmt.Fprintf(r.w, " (backup: %s)", res.BackupPath)
		}
		fmt.Fprintln(r.w)
	default:
		fmt.Fprintf(r.w, "%s %s%s -> %s\n",
			r.render(successStyle, "linked"), r.prefix(),
			r.render(pathStyle, res.Location), res.Target)
	}
}

// RenderTree prints the outcome of a tree mirror.
func (r *Renderer) RenderTree(res *types.TreeResult) {
	for i := range res.Links {
		r.RenderLink(&res.Links[i])
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(r.w, "%s\n", r.render(mutedStyle,
			fmt.Sprintf("skipped %s (%s)", s.Path, s.Reason)))
	}
	fmt.Fprintf(r.w, "%d linked, %d skipped\n", len(res.Links), len(res.Skipped))
}

// RenderBless prints the outcome of a bless.
func (r *Renderer) RenderBless(res *types.BlessResult) {
	fmt.Fprintf(r.w, "%s %s%s -> %s",
		r.render(successStyle, "blessed"), r.prefix(),
		r.render(pathStyle, res.OriginalPath), res.TrackedPath)
	if res.BackupPath != "" {
		fmt.Fprintf(r.w, " (backup: %s)", res.BackupPath)
	}
	fmt.Fprintln(r.w)
}

// RenderStatus prints a status report, one line per tracked file.
func (r *Renderer) RenderStatus(res *status.Result) {
	counts := map[status.State]int{}
	for _, e := range res.Entries {
		counts[e.State]++
		var line string
		switch e.State {
		case status.StateLinked:
			line = fmt.Sprintf("%s %s", r.render(successStyle, "ok     "), e.LivePath)
		case status.StateMissing:
			line = fmt.Sprintf("%s %s", r.render(warnStyle, "missing"), e.LivePath)
		case status.StateWrongTarget:
			line = fmt.Sprintf("%s %s -> %s", r.render(warnStyle, "wrong  "), e.LivePath, e.CurrentTarget)
		default:
			line = fmt.Sprintf("%s %s (%s)", r.render(errorStyle, "conflict"), e.LivePath, e.State)
		}
		fmt.Fprintln(r.w, line)
	}
	fmt.Fprintf(r.w, "%d tracked, %d linked\n", len(res.Entries), counts[status.StateLinked])
}

// RenderError prints a failure message.
func (r *Renderer) RenderError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", r.render(errorStyle, "error:"), err)
}
