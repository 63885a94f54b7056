package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/fhir-loader/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/fhir-loader/internal/core/domain"
)

// reporter prints failures as they happen and keeps the tally.
// Output is styled only when it goes to a terminal.
type reporter struct {
	out      io.Writer
	styles   *styles.Styles
	styled   bool
	uploaded int
	failed   int
	stopped  bool
}

func newReporter(out io.Writer) *reporter {
	return &reporter{
		out:    out,
		styles: styles.DefaultStyles(),
		styled: isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *reporter) paint(style lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return style.Render(text)
}

// Result records one item and prints it if it failed.
func (r *reporter) Result(result domain.UploadResult) {
	if result.Succeeded() {
		r.uploaded++
		return
	}
	r.failed++

	name := result.Name
	if name == "" {
		name = "<inline>"
	}
	status := "error"
	if result.StatusCode != 0 {
		status = strconv.Itoa(result.StatusCode)
	}

	fmt.Fprintf(r.out, "%s failure: (%s) %s\n",
		r.paint(r.styles.Name, name),
		r.paint(r.styles.Status, status),
		r.paint(r.styles.Detail, result.Detail()))
}

// Error prints an error that stopped the run.
func (r *reporter) Error(err error) {
	r.stopped = true
	fmt.Fprintf(r.out, "%s %v\n",
		r.paint(r.styles.Error, "Error:"), err)
}

// Summary prints the tally.
func (r *reporter) Summary() {
	fmt.Fprintf(r.out, "%s, %s\n",
		r.paint(r.styles.Success, fmt.Sprintf("%d uploaded", r.uploaded)),
		r.paint(r.styles.Failure, fmt.Sprintf("%d failed", r.failed)))
}

// Failed reports whether the run should exit non-zero.
func (r *reporter) Failed() bool {
	return r.stopped || r.failed > 0
}
