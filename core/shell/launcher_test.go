package shell

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestLauncher_Launch(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()

	cases := map[string]struct {
		body    string
		args    []string
		stdin   string
		outcome Outcome
		output  string
	}{
		"success":  {body: "true", outcome: ExitedWithCode(0)},
		"exit-7":   {body: "exit 7", outcome: ExitedWithCode(7)},
		"exit-255": {body: "exit 255", outcome: ExitedWithCode(255)},
		"killed":   {body: "kill -9 $$", outcome: TerminatedAbnormally()},
		"args":     {body: `echo "$@"`, args: []string{"a", "b  c"}, outcome: ExitedWithCode(0), output: "a b  c\n"},
		"stdin":    {body: "cat", stdin: "piped", outcome: ExitedWithCode(0), output: "piped"},
		"stderr":   {body: "echo oops >&2; exit 2", outcome: ExitedWithCode(2), output: "oops\n"},
		"no-stdin": {body: "cat", outcome: ExitedWithCode(0)},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			path := writeScript(t, dir, tn, tc.body)
			out := &bytes.Buffer{}
			launcher := &Launcher{Stdout: out, Stderr: out}
			if tc.stdin != "" {
				launcher.Stdin = bytes.NewBufferString(tc.stdin)
			}

			outcome, err := launcher.Launch(context.Background(), path, append([]string{tn}, tc.args...))

			assert.Nil(t, err)
			assert.Equal(t, tc.outcome, outcome)
			assert.Equal(t, tc.output, out.String())
		})
	}
}

func TestLauncher_argvZero(t *testing.T) {
	requireSh(t)
	out := &bytes.Buffer{}
	launcher := &Launcher{Stdout: out}

	outcome, err := launcher.Launch(context.Background(), "/bin/sh", []string{"typed-name", "-c", "echo $0"})

	assert.Nil(t, err)
	assert.Equal(t, ExitedWithCode(0), outcome)
	assert.Equal(t, "typed-name\n", out.String())
}

func TestLauncher_execFailed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage")
	require.Nil(t, os.WriteFile(path, []byte("\x00\x01 not a program\n"), 0755))

	_, err := (&Launcher{}).Launch(context.Background(), path, []string{"garbage"})

	assert.ErrorIs(t, err, ErrExecFailed)
	assert.False(t, errors.Is(err, ErrForkFailed))
	assert.ErrorIs(t, err, unix.ENOEXEC)
	assert.Equal(t, "exec format error", osErrorText(err))
}

func TestStartError(t *testing.T) {
	cases := map[string]struct {
		errno    syscall.Errno
		expected error
	}{
		"eagain":  {unix.EAGAIN, ErrForkFailed},
		"enomem":  {unix.ENOMEM, ErrForkFailed},
		"enoexec": {unix.ENOEXEC, ErrExecFailed},
		"eacces":  {unix.EACCES, ErrExecFailed},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			err := startError(&fs.PathError{Op: "fork/exec", Path: "/bin/x", Err: tc.errno})

			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, tc.errno)
			assert.Equal(t, tc.errno.Error(), osErrorText(err))
		})
	}
}
