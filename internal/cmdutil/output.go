package cmdutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/educats/cli/internal/dispatch"
	oerrors "github.com/educats/cli/internal/errors"
	"github.com/educats/cli/internal/output"
)

// PrintSummary writes the one-line run summary, preceded by a per-module
// status table in verbose mode. Nothing is printed for an empty run.
func PrintSummary(w io.Writer, rep *dispatch.Report, verbose bool) {
	if rep == nil || rep.Empty {
		return
	}

	if verbose {
		rows := make([]output.StatusRow, 0, len(rep.Modules))
		for _, m := range rep.Modules {
			rows = append(rows, output.StatusRow{
				Name:    m.Name,
				Status:  string(m.Status()),
				Message: outcomeMessage(m),
			})
		}
		_, _ = fmt.Fprintln(w, output.RenderStatusTable(rows))
	}

	_, _ = fmt.Fprintln(w, SummaryLine(rep))
}

// SummaryLine renders "N modules, W warnings, F failed" with a check or cross.
func SummaryLine(rep *dispatch.Report) string {
	failed := rep.Count(dispatch.StatusFailed)
	msg := output.StyleSummary.Render(fmt.Sprintf("%s: %s, %s, %d failed",
		rep.Action,
		plural(len(rep.Modules), "module"),
		plural(rep.Warnings, "warning"),
		failed,
	))
	if failed > 0 {
		return output.FormatCross(msg)
	}
	return output.FormatCheckmark(msg)
}

// outcomeMessage describes the first failed step of a module, if any.
func outcomeMessage(m dispatch.ModuleOutcome) string {
	for _, s := range m.Steps {
		if s.Status != dispatch.StatusFailed {
			continue
		}
		var cmdErr *oerrors.CommandError
		if errors.As(s.Err, &cmdErr) && cmdErr.ExitCode >= 0 {
			return fmt.Sprintf("%s: exit %d", s.Step, cmdErr.ExitCode)
		}
		return fmt.Sprintf("%s: %v", s.Step, s.Err)
	}
	return ""
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
