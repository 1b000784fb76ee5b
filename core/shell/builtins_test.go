package shell

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"cd", "exit"}, BuiltinNames())
}

func TestCd(t *testing.T) {
	t.Run("missing-argument", func(t *testing.T) {
		wd := keepWd(t)
		s, out := newTestEnv(t).Shell("")

		err := s.Execute(context.Background(), "cd")

		assert.ErrorIs(t, err, ErrMissingCdArgument)
		assert.Equal(t, "cd: missing argument\n", out.String())
		after, _ := os.Getwd()
		assert.Equal(t, wd, after)
	})

	t.Run("nonexistent", func(t *testing.T) {
		wd := keepWd(t)
		s, out := newTestEnv(t).Shell("")

		err := s.Execute(context.Background(), "cd /nonexistent/minibash")

		assert.ErrorIs(t, err, ErrChdirFailed)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, "cd: no such file or directory\n", out.String())
		after, _ := os.Getwd()
		assert.Equal(t, wd, after)
	})

	t.Run("not-a-directory", func(t *testing.T) {
		keepWd(t)
		te := newTestEnv(t)
		file := filepath.Join(te.Home, "file")
		require.Nil(t, os.WriteFile(file, nil, 0644))
		s, out := te.Shell("")

		err := s.Execute(context.Background(), "cd "+file)

		assert.ErrorIs(t, err, ErrChdirFailed)
		assert.Equal(t, "cd: not a directory\n", out.String())
	})

	t.Run("changes-directory", func(t *testing.T) {
		keepWd(t)
		te := newTestEnv(t)
		s, out := te.Shell("")

		err := s.Execute(context.Background(), "cd "+te.Home+" ignored extra")

		assert.Nil(t, err)
		assert.Empty(t, out.String())
		after, _ := os.Getwd()
		want, _ := filepath.EvalSymlinks(te.Home)
		got, _ := filepath.EvalSymlinks(after)
		assert.Equal(t, want, got)
	})

	t.Run("uses-chdir-hook", func(t *testing.T) {
		s, _ := newTestEnv(t).Shell("")
		var visited []string
		s.Chdir = func(dir string) error {
			visited = append(visited, dir)
			return nil
		}

		assert.Nil(t, s.Execute(context.Background(), "cd a"))
		assert.Equal(t, []string{"a"}, visited)
	})
}

func TestExit(t *testing.T) {
	te := newTestEnv(t)
	// A program named exit is never consulted.
	writeScript(t, te.System, "exit", "echo should not run")
	s, out := te.Shell("")

	err := s.Execute(context.Background(), "exit 3 and more")

	assert.Nil(t, err)
	assert.True(t, s.Quit)
	assert.Empty(t, out.String())
}
