// Package report defines the severity-coded message sink that the module
// engine uses instead of writing to the console.
package report

// Severity classifies a reported message.
type Severity int

const (
	// Info is a neutral progress message.
	Info Severity = iota
	// Success marks a completed step.
	Success
	// Warning marks a skipped or degraded step that does not fail the run.
	Warning
	// Error marks a failed step.
	Error
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Reporter receives user-facing messages.
type Reporter interface {
	Report(sev Severity, msg string)
}

// Func adapts a plain function to the Reporter interface.
type Func func(sev Severity, msg string)

// Report calls f(sev, msg).
func (f Func) Report(sev Severity, msg string) {
	f(sev, msg)
}

// Discard drops every message.
var Discard Reporter = Func(func(Severity, string) {})

// Entry is one recorded message.
type Entry struct {
	Severity Severity
	Message  string
}

// Recorder is a Reporter that keeps every message in order.
// The zero value is ready to use.
type Recorder struct {
	Entries []Entry
}

// Report appends the message.
func (r *Recorder) Report(sev Severity, msg string) {
	r.Entries = append(r.Entries, Entry{Severity: sev, Message: msg})
}

// Messages returns the messages recorded with the given severity.
func (r *Recorder) Messages(sev Severity) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Severity == sev {
			out = append(out, e.Message)
		}
	}
	return out
}

// Count returns how many messages were recorded with the given severity.
func (r *Recorder) Count(sev Severity) int {
	return len(r.Messages(sev))
}

// Tee forwards every message to all reporters in order.
func Tee(reporters ...Reporter) Reporter {
	return Func(func(sev Severity, msg string) {
		for _, r := range reporters {
			r.Report(sev, msg)
		}
	})
}
