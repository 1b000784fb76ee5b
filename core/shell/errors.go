package shell

import (
	"errors"
	"io/fs"
)

var (
	// ErrTooManyArguments is returned when a line has more tokens than allowed.
	ErrTooManyArguments = errors.New("too many arguments")
	// ErrCommandNotFound is returned when no candidate path is executable.
	ErrCommandNotFound = errors.New("command not found")
	// ErrMissingCdArgument is returned by cd when no directory is given.
	ErrMissingCdArgument = errors.New("cd: missing argument")
	// ErrChdirFailed is returned by cd when the directory can't be entered.
	ErrChdirFailed = errors.New("cd failed")
	// ErrForkFailed is returned when the operating system can't create a process.
	ErrForkFailed = errors.New("fork failed")
	// ErrExecFailed is returned when a process was created but couldn't run
	// the program.
	ErrExecFailed = errors.New("exec failed")
	// ErrReadFailed is returned when standard input can't be read.
	ErrReadFailed = errors.New("read failed")
	// ErrWriteFailed is returned when the prompt can't be written.
	ErrWriteFailed = errors.New("write failed")
)

// opError tags an underlying error with one of the sentinels above while
// keeping the underlying error reachable through errors.As.
type opError struct {
	kind error
	err  error
}

func wrap(kind, err error) error {
	return &opError{kind: kind, err: err}
}

func (e *opError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *opError) Unwrap() error {
	return e.err
}

func (e *opError) Is(target error) bool {
	return target == e.kind
}

// osErrorText returns the bare operating system message for err, dropping
// the operation and path prefixes, similar to perror.
func osErrorText(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	var opErr *opError
	if errors.As(err, &opErr) {
		return opErr.err.Error()
	}
	return err.Error()
}
