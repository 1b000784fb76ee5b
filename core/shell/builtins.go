package shell

import (
	"fmt"
	"sort"
)

// AllBuiltins holds a list of all registered shell builtins.
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command the shell runs itself without starting a process.
type Builtin interface {
	Main(s *Shell, args []string) error
}

type BuiltinFunc func(s *Shell, args []string) error

func (f BuiltinFunc) Main(s *Shell, args []string) error {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// BuiltinNames returns the registered builtin names in sorted order.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cd is the cd shell builtin. It needs exactly one directory, extra
// arguments are ignored.
func Cd(s *Shell, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.IO.Stdout(), ErrMissingCdArgument)
		return ErrMissingCdArgument
	}

	if err := s.Chdir(args[1]); err != nil {
		fmt.Fprintf(s.IO.Stderr(), "%s: %s\n", args[0], osErrorText(err))
		return wrap(ErrChdirFailed, err)
	}
	return nil
}

// Exit stops the shell after the current line, arguments are ignored.
func Exit(s *Shell, args []string) error {
	s.Quit = true
	return nil
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
}
