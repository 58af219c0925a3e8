package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/simplescene/internal/report"
)

func newReportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report <file.scene>",
		Short: "Write a markdown (or HTML with --html) summary of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(args[0])
			if err != nil {
				return err
			}

			var data []byte
			if cfg.Report.HTML {
				data, err = report.HTML(cfg.Report.Title, scene)
				if err != nil {
					return err
				}
			} else {
				data = []byte(report.Markdown(cfg.Report.Title, scene))
			}

			if output != "" {
				return os.WriteFile(output, data, 0644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
