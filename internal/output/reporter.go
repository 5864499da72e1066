package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/educats/cli/internal/report"
)

// Console is a report.Reporter that prints severity-coded lines.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a Console writing to w. A nil w writes to stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Report implements report.Reporter.
func (c *Console) Report(sev report.Severity, msg string) {
	line := SeverityStyle(sev).Render(severityPrefix(sev) + msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, line)
}

func severityPrefix(sev report.Severity) string {
	switch sev {
	case report.Warning:
		return "Warning: "
	case report.Error:
		return "Error: "
	default:
		return ""
	}
}

var _ report.Reporter = (*Console)(nil)
