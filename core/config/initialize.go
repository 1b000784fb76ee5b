package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir. An existing
// configuration file is left untouched and reported as an error.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) error {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, ConfigurationName)
	switch exists, err := afero.Exists(fs, path); {
	case err != nil:
		return err
	case exists:
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}

	logger.Printf("Writing default configuration to %s\n", path)
	return afero.WriteFile(fs, path, defaultConfigData, 0644)
}
