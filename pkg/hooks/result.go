package hooks

import (
	"github.com/jingkaihe/skillhook/pkg/validator"
)

// Exit statuses understood by the host
const (
	ExitAllow = 0
	ExitBlock = 2
)

// Kind is the terminal outcome of a hook invocation
type Kind int

// Outcome kinds
const (
	// KindSkipped means there was nothing to validate
	KindSkipped Kind = iota
	// KindPassed means the validator ran and accepted the skill
	KindPassed
	// KindBlocked means the validator ran and rejected the skill
	KindBlocked
	// KindWarned means validation could not run
	KindWarned
)

func (k Kind) String() string {
	switch k {
	case KindSkipped:
		return "skipped"
	case KindPassed:
		return "passed"
	case KindBlocked:
		return "blocked"
	case KindWarned:
		return "warned"
	default:
		return "unknown"
	}
}

// Result is the outcome of one invocation. It is turned into an exit
// status only at the command boundary.
type Result struct {
	Kind   Kind
	Reason string
	Unit   string
	Report *validator.Report
}

// Skipped returns a neutral result
func Skipped(reason string) Result {
	return Result{Kind: KindSkipped, Reason: reason}
}

// Warned returns a neutral result for a validation that could not run
func Warned(unit, reason string) Result {
	return Result{Kind: KindWarned, Unit: unit, Reason: reason}
}

// ExitCode maps the result to the host's exit status. Only a validator
// that ran and reported failure blocks.
func (r Result) ExitCode() int {
	if r.Kind == KindBlocked {
		return ExitBlock
	}
	return ExitAllow
}
