// Package formats provides parsers for the simple scene text format and
// OBJ-like mesh files.
package formats

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// NoParent marks a SceneObject without a parent.
const NoParent = -1

// SceneObject is one "start object ... end" record.
// Parent and Children are indices into the owning Scene's Objects.
type SceneObject struct {
	Name     string
	Type     string   // Free-form, e.g. "MESH", "EMPTY", "LAMP"
	Groups   []string // Group tags
	Location mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Quat // Always unit length

	Vertices  []mgl32.Vec3
	Triangles [][3]uint16 // 0-based vertex indices
	Quads     [][4]uint16 // 0-based vertex indices

	Parent   int   // Index of the parent object, NoParent if none
	Children []int // Indices of child objects, in resolution order
}

// HasParent reports whether the object was linked to a parent.
func (o *SceneObject) HasParent() bool {
	return o.Parent != NoParent
}

// InGroup reports whether the object carries the given group tag.
func (o *SceneObject) InGroup(group string) bool {
	for _, g := range o.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Scene is a parsed scene file. Objects is the single owner of every
// SceneObject; hierarchy links are indices into it.
type Scene struct {
	SourcePath string        // Informational only
	Objects    []SceneObject // File order
	Skipped    int           // Blank or unrecognized lines ignored while parsing
}

// SceneOptions configures scene parsing.
type SceneOptions struct {
	// Logger receives diagnostics about skipped lines. Nil disables logging.
	Logger *zap.Logger
}

func (o SceneOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// ParseSceneFile reads and parses a scene file from disk.
func ParseSceneFile(path string, opts SceneOptions) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrIO, Err: fmt.Errorf("reading scene file: %w", err)}
	}
	scene, err := ParseScene(data, opts)
	if err != nil {
		return nil, err
	}
	scene.SourcePath = path
	return scene, nil
}

// FindIndex returns the index of the first object named name, or -1.
func (s *Scene) FindIndex(name string) int {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return i
		}
	}
	return -1
}

// Find returns the first object named name in file order.
func (s *Scene) Find(name string) (*SceneObject, bool) {
	i := s.FindIndex(name)
	if i < 0 {
		return nil, false
	}
	return &s.Objects[i], true
}

// ParentOf returns the parent of the object at index i.
func (s *Scene) ParentOf(i int) (*SceneObject, bool) {
	p := s.Objects[i].Parent
	if p == NoParent {
		return nil, false
	}
	return &s.Objects[p], true
}

// ChildrenOf returns the children of the object at index i.
func (s *Scene) ChildrenOf(i int) []*SceneObject {
	kids := s.Objects[i].Children
	out := make([]*SceneObject, len(kids))
	for k, idx := range kids {
		out[k] = &s.Objects[idx]
	}
	return out
}

// Roots returns the indices of objects without a parent, in file order.
func (s *Scene) Roots() []int {
	var roots []int
	for i := range s.Objects {
		if s.Objects[i].Parent == NoParent {
			roots = append(roots, i)
		}
	}
	return roots
}

// Walk visits every object depth-first, parents before children, starting
// from the roots in file order. Objects on a parent cycle have no root; they
// are visited afterwards at depth 0, starting from the earliest in the file.
// Each object is visited at most once. Returning false from fn skips that
// object's children.
func (s *Scene) Walk(fn func(index, depth int) bool) {
	seen := make([]bool, len(s.Objects))
	var visit func(i, depth int)
	visit = func(i, depth int) {
		if seen[i] {
			return
		}
		seen[i] = true
		if !fn(i, depth) {
			return
		}
		for _, c := range s.Objects[i].Children {
			visit(c, depth+1)
		}
	}
	for _, r := range s.Roots() {
		visit(r, 0)
	}
	for i := range s.Objects {
		visit(i, 0)
	}
}
