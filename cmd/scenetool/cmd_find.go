package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <file.scene> <name>",
		Short: "Show the first object with the given name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(args[0])
			if err != nil {
				return err
			}
			i := scene.FindIndex(args[1])
			if i < 0 {
				return fmt.Errorf("no object named %q in %s", args[1], args[0])
			}
			printObject(cmd.OutOrStdout(), scene, i)
			return nil
		},
	}
}
