package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"io/ioutil"
	"log"

	"github.com/josephlewis42/minibash/core/config"
	"github.com/josephlewis42/minibash/core/logger"
	"github.com/josephlewis42/minibash/core/shell"
	"github.com/josephlewis42/minibash/core/ttylog"
	"github.com/josephlewis42/minibash/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath       string
	eventLogPath  string
	eventDBPath   string
	recordingPath string
	verbose       bool
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// diagnosticLogger writes to stderr when --verbose is set and discards
// otherwise.
func diagnosticLogger(cmd *cobra.Command) *log.Logger {
	var w io.Writer = ioutil.Discard
	if verbose {
		w = cmd.ErrOrStderr()
	}
	return log.New(w, "[minibash] ", 0)
}

// openEventLog returns the event logger for --event-log or --event-db and a
// function to close it.
func openEventLog(cfg *config.Configuration) (*logger.Logger, func() error, error) {
	switch {
	case eventLogPath != "" && eventDBPath != "":
		return nil, nil, errors.New("--event-log and --event-db can't be used together")

	case eventLogPath != "":
		fd, err := cfg.OpenEventLog(eventLogPath)
		if err != nil {
			return nil, nil, err
		}
		return logger.NewJSONLinesLogRecorder(fd), fd.Close, nil

	case eventDBPath != "":
		db, err := logger.OpenSQLiteLog(eventDBPath)
		if err != nil {
			return nil, nil, err
		}
		return logger.NewSQLiteLogRecorder(db), db.Close, nil

	default:
		return logger.NewNopLogger(), func() error { return nil }, nil
	}
}

// sessionIO returns the streams of cmd, recorded in asciicast format when
// --record is set, and a function to close the recording.
func sessionIO(cmd *cobra.Command, cfg *config.Configuration) (vos.VIO, func() error, error) {
	vio := vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if recordingPath == "" {
		return vio, func() error { return nil }, nil
	}

	fd, err := cfg.CreateSessionRecording(recordingPath)
	if err != nil {
		return nil, nil, err
	}
	return ttylog.NewRecorder(vio, ttylog.NewAsciicastLogSink(fd)), fd.Close, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minibash",
	Short: "A minimal command interpreter",
	Long: `Reads one line at a time, runs the builtins cd and exit itself and
looks up anything else in $HOME and then /bin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		events, closeEvents, err := openEventLog(cfg)
		if err != nil {
			return err
		}
		defer closeEvents()

		vio, closeRecording, err := sessionIO(cmd, cfg)
		if err != nil {
			return err
		}
		defer closeRecording()

		diag := diagnosticLogger(cmd)
		session := events.NewSession()
		diag.Printf("Starting session %s", session.SessionID())

		sh := shell.New(cfg, vio, vos.OSEnv{})
		sh.Log = diag
		sh.Events = session

		return sh.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file or directory containing config.yaml, the built-in defaults if empty")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.Flags().StringVar(&eventLogPath, "event-log", "", "append a JSON line per command to this file")
	rootCmd.Flags().StringVar(&eventDBPath, "event-db", "", "insert a row per command into this SQLite database")
	rootCmd.Flags().StringVar(&recordingPath, "record", "", "record the session to this file in asciicast v2 format")
}
