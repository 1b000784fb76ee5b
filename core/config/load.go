package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory or file at path. Fields
// missing from the file keep their default values.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	if isDir, err := afero.IsDir(fs, path); err == nil && isDir {
		path = filepath.Join(path, ConfigurationName)
	}

	configContents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out.configFs = fs
	return out, nil
}
