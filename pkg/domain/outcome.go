package domain

import "fmt"

// OutcomeStatus classifies the result of a dispatched command.
type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeFailed
	OutcomeTimedOut
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("outcome(%d)", int(s))
	}
}

// Outcome is the result of one effectful dispatch. ExitCode is only
// meaningful when Status is OutcomeFailed.
type Outcome struct {
	Status   OutcomeStatus
	ExitCode int
}

// Success returns a successful outcome.
func Success() Outcome { return Outcome{Status: OutcomeSuccess} }

// Failed returns a failed outcome carrying the command's exit code.
func Failed(code int) Outcome { return Outcome{Status: OutcomeFailed, ExitCode: code} }

// TimedOut returns a timed-out outcome.
func TimedOut() Outcome { return Outcome{Status: OutcomeTimedOut} }

func (o Outcome) String() string {
	if o.Status == OutcomeFailed {
		return fmt.Sprintf("failed (exit code %d)", o.ExitCode)
	}
	return o.Status.String()
}

// DecisionKind is the operator's answer to "shall we execute this?".
type DecisionKind int

const (
	// DecisionProceed runs the current action once.
	DecisionProceed DecisionKind = iota
	// DecisionProceedNonInteractive runs it and stops asking for the rest of the run.
	DecisionProceedNonInteractive
	// DecisionJump moves the cursor to Decision.Index without running anything.
	DecisionJump
	// DecisionSkip advances past the current action without running it.
	DecisionSkip
)

// Decision is returned by a confirmation source.
type Decision struct {
	Kind  DecisionKind
	Index int
}

func Proceed() Decision               { return Decision{Kind: DecisionProceed} }
func ProceedNonInteractive() Decision { return Decision{Kind: DecisionProceedNonInteractive} }
func JumpTo(index int) Decision       { return Decision{Kind: DecisionJump, Index: index} }
func Skip() Decision                  { return Decision{Kind: DecisionSkip} }
