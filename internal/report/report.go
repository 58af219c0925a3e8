// Package report renders a human-readable summary of a loaded scene.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/Faultbox/simplescene/pkg/formats"
	"github.com/Faultbox/simplescene/pkg/model"
)

// Markdown summarizes a scene: one table row per object and the hierarchy
// as a nested list.
func Markdown(title string, scene *formats.Scene) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if scene.SourcePath != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", scene.SourcePath)
	}
	fmt.Fprintf(&b, "%d objects, %d skipped lines.\n\n", len(scene.Objects), scene.Skipped)

	b.WriteString("## Objects\n\n")
	b.WriteString("| Name | Type | Location | Vertices | Triangles | Groups | Parent |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for i := range scene.Objects {
		obj := &scene.Objects[i]
		mesh := model.FromSceneObject(obj)
		parent := "-"
		if p, ok := scene.ParentOf(i); ok {
			parent = cell(p.Name)
		}
		fmt.Fprintf(&b, "| %s | %s | %.3g, %.3g, %.3g | %d | %d | %s | %s |\n",
			cell(obj.Name), cell(obj.Type),
			obj.Location[0], obj.Location[1], obj.Location[2],
			len(obj.Vertices), mesh.TriangleCount(),
			cell(strings.Join(obj.Groups, ", ")), parent)
	}

	b.WriteString("\n## Hierarchy\n\n")
	scene.Walk(func(i, depth int) bool {
		fmt.Fprintf(&b, "%s- %s\n", strings.Repeat("  ", depth), cell(scene.Objects[i].Name))
		return true
	})

	return b.String()
}

// HTML renders the Markdown summary to an HTML fragment.
func HTML(title string, scene *formats.Scene) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(title, scene)), &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
