package cmd

import (
	"log"

	"github.com/josephlewis42/minibash/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write the default configuration to DIR, the current directory by default.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		logger := log.New(cmd.ErrOrStderr(), "", 0)
		return config.Initialize(afero.NewOsFs(), dir, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
