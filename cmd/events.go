package cmd

import (
	"fmt"

	"github.com/josephlewis42/minibash/core/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var reportFromSQLite bool

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore event logs written with --event-log or --event-db.",
}

var reportCommand = &cobra.Command{
	Use:   "report FILE",
	Short: "Show a report of events.",
	Long:  `Summarizes a log written with --event-log, or with --event-db when --sqlite is set.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		report := logger.NewReport()
		if err := readEvents(args[0], report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func readEvents(path string, handler func(le *logger.LogEntry)) error {
	if reportFromSQLite {
		// Opening creates missing databases, so check first.
		if _, err := afero.NewOsFs().Stat(path); err != nil {
			return err
		}
		db, err := logger.OpenSQLiteLog(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return logger.ReadSQLiteLog(db, handler)
	}

	fd, err := afero.NewOsFs().Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()
	return logger.ReadJSONLinesLog(fd, handler)
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)

	reportCommand.Flags().BoolVar(&reportFromSQLite, "sqlite", false, "read a database written with --event-db")
}
