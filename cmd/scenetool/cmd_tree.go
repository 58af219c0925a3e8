package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTreeCmd() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "tree <file.scene>",
		Short: "Print the parent/child hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			scene.Walk(func(i, depth int) bool {
				obj := &scene.Objects[i]
				fmt.Fprintf(out, "%s%s [%s]\n", strings.Repeat("  ", depth), obj.Name, obj.Type)
				return maxDepth == 0 || depth+1 < maxDepth
			})
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxDepth, "depth", "d", 0, "limit depth (0 = unlimited)")

	return cmd
}
