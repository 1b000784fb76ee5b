package cmd

import (
	"fmt"

	"github.com/josephlewis42/minibash/core/shell"
	"github.com/josephlewis42/minibash/core/vos"
	"github.com/spf13/cobra"
)

// whichCmd shows where the shell would find commands
var whichCmd = &cobra.Command{
	Use:   "which COMMAND...",
	Short: "Locate commands the way the shell does.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		resolver := shell.NewResolver(cfg, vos.OSEnv{})
		missing := 0
		for _, name := range args {
			if _, ok := shell.AllBuiltins[name]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: shell builtin\n", name)
				continue
			}

			path, err := resolver.Resolve(name)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", name)
				missing++
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}

		if missing > 0 {
			return fmt.Errorf("%d of %d commands not found", missing, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whichCmd)
}
