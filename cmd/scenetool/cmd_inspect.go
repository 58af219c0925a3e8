package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/simplescene/pkg/formats"
	"github.com/Faultbox/simplescene/pkg/model"
)

func newInspectCmd() *cobra.Command {
	var groupFilter string

	cmd := &cobra.Command{
		Use:   "inspect <file.scene>",
		Short: "List every object in a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scene:   %s\n", args[0])
			fmt.Fprintf(out, "Objects: %d\n", len(scene.Objects))
			fmt.Fprintf(out, "Skipped: %d lines\n\n", scene.Skipped)

			for i := range scene.Objects {
				obj := &scene.Objects[i]
				if groupFilter != "" && !obj.InGroup(groupFilter) {
					continue
				}
				printObject(out, scene, i)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&groupFilter, "group", "g", "", "only show objects in this group")

	return cmd
}

func printObject(out io.Writer, scene *formats.Scene, i int) {
	obj := &scene.Objects[i]
	mesh := model.FromSceneObject(obj)

	fmt.Fprintf(out, "%s (%s)\n", obj.Name, obj.Type)
	fmt.Fprintf(out, "  location  %v\n", obj.Location)
	fmt.Fprintf(out, "  scale     %v\n", obj.Scale)
	fmt.Fprintf(out, "  rotation  w=%.4f v=%v\n", obj.Rotation.W, obj.Rotation.V)
	fmt.Fprintf(out, "  geometry  %d vertices, %d triangles, %d quads\n",
		len(obj.Vertices), len(obj.Triangles), len(obj.Quads))
	if len(mesh.Vertices) > 0 {
		fmt.Fprintf(out, "  bounds    %v .. %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	}
	if len(obj.Groups) > 0 {
		fmt.Fprintf(out, "  groups    %s\n", strings.Join(obj.Groups, ", "))
	}
	if p, ok := scene.ParentOf(i); ok {
		fmt.Fprintf(out, "  parent    %s\n", p.Name)
	}
	if kids := scene.ChildrenOf(i); len(kids) > 0 {
		names := make([]string, len(kids))
		for k, c := range kids {
			names[k] = c.Name
		}
		fmt.Fprintf(out, "  children  %s\n", strings.Join(names, ", "))
	}
}
