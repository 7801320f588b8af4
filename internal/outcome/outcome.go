// Package outcome describes what a scaffolding step did to a file.
package outcome

import "fmt"

// Status is the result class of a single step.
type Status int

const (
	Applied Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome records one step's effect on one target.
type Outcome struct {
	Step    string // e.g. "materialize", "env", "bootstrap", "install"
	Target  string // path relative to the project root, or a command line
	Status  Status
	Message string
	Details []string // follow-up lines for the operator, printed under Message
	Warn    bool     // a skip the operator should act on
	Err     error
}

// NewApplied returns an Applied outcome.
func NewApplied(step, target, format string, args ...any) Outcome {
	return Outcome{Step: step, Target: target, Status: Applied, Message: fmt.Sprintf(format, args...)}
}

// NewSkipped returns a Skipped outcome.
func NewSkipped(step, target, format string, args ...any) Outcome {
	return Outcome{Step: step, Target: target, Status: Skipped, Message: fmt.Sprintf(format, args...)}
}

// NewWarning returns a Skipped outcome flagged for the operator's attention.
func NewWarning(step, target, format string, args ...any) Outcome {
	o := NewSkipped(step, target, format, args...)
	o.Warn = true
	return o
}

// NewFailed returns a Failed outcome wrapping err.
func NewFailed(step, target string, err error) Outcome {
	return Outcome{Step: step, Target: target, Status: Failed, Message: err.Error(), Err: err}
}

// Counts tallies outcomes by status.
func Counts(outs []Outcome) (applied, skipped, failed int) {
	for _, o := range outs {
		switch o.Status {
		case Applied:
			applied++
		case Skipped:
			skipped++
		case Failed:
			failed++
		}
	}
	return applied, skipped, failed
}
