// scenetool is a CLI utility for inspecting simple scene and OBJ files.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/simplescene/internal/config"
	"github.com/Faultbox/simplescene/internal/logger"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scenetool",
		Short:         "Inspect simple scene and OBJ mesh files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newOBJCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newInitConfigCmd())

	return rootCmd
}
