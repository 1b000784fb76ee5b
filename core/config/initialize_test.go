package config

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := Initialize(fs, "/etc/minibash", log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(fs, "/etc/minibash")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, Default().Prompt, cfg.Prompt)
	assert.Equal(t, fs, cfg.Fs())

	t.Run("no-overwrite", func(t *testing.T) {
		err := Initialize(fs, "/etc/minibash", log.New(ioutil.Discard, "", 0))
		assert.ErrorIs(t, err, os.ErrExist)
	})
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	write := func(name, contents string) string {
		path := filepath.Join("/cfg", name)
		require.Nil(t, afero.WriteFile(fs, path, []byte(contents), 0644))
		return path
	}

	t.Run("partial-file-keeps-defaults", func(t *testing.T) {
		path := write("partial.yaml", "prompt: \"> \"\nsystem_dir: /usr/bin\n")

		cfg, err := Load(fs, path)
		require.Nil(t, err)
		assert.Equal(t, "> ", cfg.Prompt)
		assert.Equal(t, "/usr/bin", cfg.SystemDir)
		assert.Equal(t, 63, cfg.MaxArgs)
	})

	t.Run("unknown-field", func(t *testing.T) {
		path := write("unknown.yaml", "prompt_text: \"> \"\n")

		_, err := Load(fs, path)
		assert.Error(t, err)
	})

	t.Run("invalid-value", func(t *testing.T) {
		path := write("invalid.yaml", "max_args: 0\n")

		_, err := Load(fs, path)
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "max_args")
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(fs, "/does/not/exist.yaml")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfiguration_OpenEventLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, Initialize(fs, "/cfg", log.New(ioutil.Discard, "", 0)))
	cfg, err := Load(fs, "/cfg")
	require.Nil(t, err)

	for _, line := range []string{"one\n", "two\n"} {
		fd, err := cfg.OpenEventLog("/events.jsonl")
		require.Nil(t, err)
		_, err = fd.WriteString(line)
		assert.Nil(t, err)
		assert.Nil(t, fd.Close())
	}

	contents, err := afero.ReadFile(fs, "/events.jsonl")
	assert.Nil(t, err)
	assert.Equal(t, "one\ntwo\n", string(contents))
}
