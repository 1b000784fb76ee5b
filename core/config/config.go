package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Color modes for the prompt.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// Configuration holds the fixed limits and text the shell runs with.
type Configuration struct {
	configFs afero.Fs

	Prompt        string `json:"prompt" validate:"required"`
	MaxLineLength int    `json:"max_line_length" validate:"gte=1,lte=65536"`
	MaxArgs       int    `json:"max_args" validate:"gte=1,lte=4096"`
	MaxPathLength int    `json:"max_path_length" validate:"gte=2,lte=65536"`
	HomeEnv       string `json:"home_env" validate:"required"`
	SystemDir     string `json:"system_dir" validate:"required,startswith=/"`
	Color         string `json:"color" validate:"oneof=always auto never"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Fs returns the filesystem the configuration was loaded from, the OS
// filesystem for the built-in default.
func (c *Configuration) Fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Default returns the built-in configuration. It never reads from disk.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// OpenEventLog opens the event log at path in an append only state.
func (c *Configuration) OpenEventLog(path string) (afero.File, error) {
	return c.Fs().OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// CreateSessionRecording creates or truncates the session recording at path.
func (c *Configuration) CreateSessionRecording(path string) (afero.File, error) {
	return c.Fs().OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0600)
}
