package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/minibash/core/config"
	"github.com/josephlewis42/minibash/core/vos"
	"github.com/stretchr/testify/require"
)

// requireSh skips tests that run shell scripts on hosts without /bin/sh.
func requireSh(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("test needs /bin/sh:", err)
	}
}

// writeScript creates an executable shell script.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// testEnv is a home and system directory pair for resolving commands.
type testEnv struct {
	Home   string
	System string
	Env    *vos.MapEnv
	Config *config.Configuration
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	te := &testEnv{
		Home:   filepath.Join(root, "home"),
		System: filepath.Join(root, "bin"),
		Env:    vos.NewMapEnv(),
		Config: config.Default(),
	}
	require.Nil(t, os.Mkdir(te.Home, 0755))
	require.Nil(t, os.Mkdir(te.System, 0755))
	te.Env.Setenv("HOME", te.Home)
	te.Config.SystemDir = te.System
	return te
}

// Shell creates a shell reading input and writing both streams to the
// returned buffer.
func (te *testEnv) Shell(input string) (*Shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	vio := vos.NewVIOAdapter(bytes.NewBufferString(input), out, out)
	return New(te.Config, vio, te.Env), out
}

// keepWd restores the working directory when the test ends.
func keepWd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.Nil(t, err)
	t.Cleanup(func() {
		os.Chdir(wd)
	})
	return wd
}
