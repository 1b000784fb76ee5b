package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Launcher runs external programs one at a time and waits for them.
type Launcher struct {
	// Stdin is given to the child. Only an *os.File is shared directly, any
	// other reader is copied into the child by a goroutine. Nil means
	// /dev/null.
	Stdin io.Reader
	// Stdout and Stderr receive the child's output, nil discards it.
	Stdout io.Writer
	Stderr io.Writer
	// Env is the child's environment, nil inherits the shell's environment.
	Env []string
}

// Launch starts the program at path with argv and blocks until it ends.
//
// argv[0] is passed through as given, conventionally the name the user typed
// rather than path. Creating the process and replacing its image happen as a
// single step so a failed exec can never continue running shell code; the
// two failures are told apart as ErrForkFailed and ErrExecFailed.
func (l *Launcher) Launch(ctx context.Context, path string, argv []string) (Outcome, error) {
	cmd := exec.CommandContext(ctx, path)
	cmd.Args = argv
	cmd.Env = l.Env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Start(); err != nil {
		return Outcome{}, startError(err)
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return ExitedWithCode(0), nil
	case errors.As(err, &exitErr):
		return outcomeOf(exitErr.ProcessState), nil
	case cmd.ProcessState != nil:
		// The child finished but copying its output failed.
		return outcomeOf(cmd.ProcessState), err
	default:
		// How the child ended is unknown.
		return TerminatedAbnormally(), err
	}
}

func startError(err error) error {
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.ENOMEM) {
		return wrap(ErrForkFailed, err)
	}
	return wrap(ErrExecFailed, err)
}
