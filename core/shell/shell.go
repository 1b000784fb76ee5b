// Package shell implements a minimal interactive command interpreter: it
// reads a line, splits it into words and either runs a builtin or finds and
// runs an external program, reporting how it ended.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/josephlewis42/minibash/core/config"
	"github.com/josephlewis42/minibash/core/logger"
	"github.com/josephlewis42/minibash/core/vos"
)

type Shell struct {
	Config   *config.Configuration
	IO       vos.VIO
	Resolver *Resolver
	Launcher *Launcher

	// Events receives one entry per dispatched line.
	Events *logger.SessionLogger
	// Log receives diagnostics, it discards everything by default.
	Log *log.Logger
	// Chdir changes the working directory, os.Chdir by default.
	Chdir func(dir string) error

	// Set to true to quit the shell
	Quit bool

	builtins map[string]Builtin
	reader   *LineReader
}

// New creates a shell reading from and writing to vio. Commands are resolved
// against env.
func New(cfg *config.Configuration, vio vos.VIO, env vos.VEnv) *Shell {
	launcher := &Launcher{
		Stdout: vio.Stdout(),
		Stderr: vio.Stderr(),
	}
	// Children can only share the terminal directly, anything else would be
	// drained from under the shell.
	if fd, ok := vos.File(vio.Stdin()); ok {
		launcher.Stdin = fd
	}

	return &Shell{
		Config:   cfg,
		IO:       vio,
		Resolver: NewResolver(cfg, env),
		Launcher: launcher,
		Events:   logger.NewNopLogger().NewSession(),
		Log:      log.New(ioutil.Discard, "", 0),
		Chdir:    os.Chdir,
		builtins: AllBuiltins,
		reader:   NewLineReader(vio.Stdin(), cfg.MaxLineLength),
	}
}

// Run prompts for and executes lines until exit is called or input ends.
//
// Only failures to write the prompt or read input are returned, everything
// else is reported to the user and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for !s.Quit {
		if _, err := io.WriteString(s.IO.Stdout(), s.prompt()); err != nil {
			return wrap(ErrWriteFailed, err)
		}

		line, err := s.reader.ReadLine()
		switch {
		case err == io.EOF:
			// Leave the terminal on a fresh line.
			fmt.Fprintln(s.IO.Stdout())
			return nil
		case err != nil:
			return err
		}

		s.Execute(ctx, line)
	}

	return nil
}

// Execute runs a single line. The returned error has already been reported
// to the user.
func (s *Shell) Execute(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}

	args, err := Tokenize(line, s.Config.MaxArgs)
	if err != nil {
		fmt.Fprintln(s.IO.Stdout(), "Error: Too many arguments")
		s.record(&logger.LogEntry{
			Type:  logger.EventTooManyArguments,
			Error: err.Error(),
		})
		return err
	}

	if len(args) == 0 {
		return nil
	}

	if builtin, ok := s.builtins[args[0]]; ok {
		err := builtin.Main(s, args)
		entry := &logger.LogEntry{
			Type:    logger.EventBuiltin,
			Command: args,
		}
		if err != nil {
			entry.Error = err.Error()
		}
		s.record(entry)
		return err
	}

	return s.runExternal(ctx, args)
}

func (s *Shell) runExternal(ctx context.Context, args []string) error {
	path, err := s.Resolver.Resolve(args[0])
	if err != nil {
		s.Log.Printf("%s: no executable in %q", args[0], s.Resolver.Candidates(args[0]))
		fmt.Fprintf(s.IO.Stdout(), "[%s]: Unknown Command\n", args[0])
		s.record(&logger.LogEntry{
			Type:    logger.EventUnknownCommand,
			Command: args,
		})
		return err
	}

	s.Log.Printf("%s: running %s", args[0], path)
	outcome, err := s.Launcher.Launch(ctx, path, args)
	entry := &logger.LogEntry{
		Type:         logger.EventRunCommand,
		Command:      args,
		ResolvedPath: path,
	}

	switch {
	case errors.Is(err, ErrForkFailed):
		fmt.Fprintf(s.IO.Stderr(), "fork: %s\n", osErrorText(err))
		entry.Type = logger.EventForkFailed
		entry.Error = err.Error()
		s.record(entry)
		return err

	case errors.Is(err, ErrExecFailed):
		// The program never ran, report it the way a child that failed to
		// exec and exited with 1 would be.
		fmt.Fprintf(s.IO.Stderr(), "%s: %s\n", args[0], osErrorText(err))
		outcome = ExitedWithCode(1)
		entry.Type = logger.EventExecFailed
		entry.Error = err.Error()

	case err != nil:
		s.Log.Printf("%s: %v", args[0], err)
		entry.Error = err.Error()
	}

	fmt.Fprintln(s.IO.Stdout(), outcome)
	entry.ExitCode = outcome.Code
	entry.Abnormal = outcome.Abnormal
	s.record(entry)
	return err
}

func (s *Shell) record(entry *logger.LogEntry) {
	if err := s.Events.Record(entry); err != nil {
		s.Log.Printf("recording event: %v", err)
	}
}
