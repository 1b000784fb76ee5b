package shell

import (
	"fmt"
	"os"
)

// Outcome is how a child process ended: either it exited with a code or it
// was terminated abnormally, e.g. by a signal.
type Outcome struct {
	// Code is the exit code, only meaningful when Abnormal is false.
	Code int
	// Abnormal is set if the process didn't exit on its own.
	Abnormal bool
}

// ExitedWithCode is the outcome of a process that exited normally.
func ExitedWithCode(code int) Outcome {
	return Outcome{Code: code}
}

// TerminatedAbnormally is the outcome of a process that was killed.
func TerminatedAbnormally() Outcome {
	return Outcome{Abnormal: true}
}

func outcomeOf(state *os.ProcessState) Outcome {
	if state.Exited() {
		return ExitedWithCode(state.ExitCode())
	}
	return TerminatedAbnormally()
}

// String returns the status line shown to the user.
func (o Outcome) String() string {
	if o.Abnormal {
		return "Command terminated abnormally"
	}
	return fmt.Sprintf("Command completed with return code: %d", o.Code)
}
