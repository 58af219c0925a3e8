package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/simplescene/pkg/model"
)

func newOBJCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "obj <file.obj>",
		Short: "List the meshes of an OBJ file after axis conversion",
		Long: `List the meshes of an OBJ file.

Vertices are converted with the configured axis map (obj.axes / --obj-axes)
and scale (obj.scale / --obj-scale) before bounds are computed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meshes, err := loadOBJ(args[0])
			if err != nil {
				return err
			}
			lib := model.NewLibrary(nil, meshes)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:   %s\n", args[0])
			fmt.Fprintf(out, "Meshes: %d\n\n", lib.Len())
			for _, in := range lib.Instances() {
				m := in.Mesh
				fmt.Fprintf(out, "  %-20s %6d vertices %6d triangles  bounds %v .. %v  size %v\n",
					m.Name, len(m.Vertices), m.TriangleCount(), m.Bounds.Min, m.Bounds.Max, m.Bounds.Size())
			}
			return nil
		},
	}
}
