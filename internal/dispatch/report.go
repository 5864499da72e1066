package dispatch

import "time"

// Status is the outcome of a step or module.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarned  Status = "warned"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepOutcome records what happened to one step of one module.
type StepOutcome struct {
	Step     Step
	Status   Status
	Duration time.Duration

	// Err is set when Status is StatusFailed.
	Err error
}

// ModuleOutcome aggregates the steps run against one module.
type ModuleOutcome struct {
	Name  string
	Path  string
	Steps []StepOutcome
}

// Status folds the step outcomes: any failure wins, then any warning.
func (m ModuleOutcome) Status() Status {
	status := StatusOK
	for _, s := range m.Steps {
		switch s.Status {
		case StatusFailed:
			return StatusFailed
		case StatusWarned:
			status = StatusWarned
		}
	}
	return status
}

// Report is the structured result of Dispatcher.Run.
type Report struct {
	Action  Action
	Modules []ModuleOutcome

	// Empty is true when the collection had no members and nothing ran.
	Empty bool

	// Warnings counts every warning reported during the run.
	Warnings int
}

// Failed reports whether any module failed.
func (r *Report) Failed() bool {
	return r.Count(StatusFailed) > 0
}

// Count returns the number of modules with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, m := range r.Modules {
		if m.Status() == status {
			n++
		}
	}
	return n
}
