package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/simplescene/pkg/formats"
)

// Instance is a named mesh with its loaded transform and an optional
// per-frame override set by the renderer. An Instance is not safe for
// concurrent mutation; the loaded scene it came from is never modified.
type Instance struct {
	Name     string
	Type     string
	Mesh     *Mesh
	base     Transform
	override *Transform
	parent   *Instance
	children []*Instance
}

// Base returns the transform recorded in the source file.
func (in *Instance) Base() Transform {
	return in.base
}

// Current returns the override if one is set, otherwise the base transform.
func (in *Instance) Current() Transform {
	if in.override != nil {
		return *in.override
	}
	return in.base
}

// SetOverride replaces the current transform until ClearOverride.
func (in *Instance) SetOverride(t Transform) {
	in.override = &t
}

// ClearOverride restores the base transform.
func (in *Instance) ClearOverride() {
	in.override = nil
}

// Overridden reports whether an override is active.
func (in *Instance) Overridden() bool {
	return in.override != nil
}

// Parent returns the parent instance, or nil.
func (in *Instance) Parent() *Instance {
	return in.parent
}

// Children returns the child instances.
func (in *Instance) Children() []*Instance {
	return in.children
}

// Matrix returns the current local matrix.
func (in *Instance) Matrix() mgl32.Mat4 {
	return in.Current().Matrix()
}

// WorldMatrix composes the current matrices of every ancestor, root first.
// A parent cycle stops at the first repeated instance.
func (in *Instance) WorldMatrix() mgl32.Mat4 {
	visited := make(map[*Instance]bool)
	m := mgl32.Ident4()
	for cur := in; cur != nil && !visited[cur]; cur = cur.parent {
		visited[cur] = true
		m = cur.Matrix().Mul4(m)
	}
	return m
}

// Library indexes instances by name for a renderer.
type Library struct {
	instances []*Instance
}

// NewLibrary builds one instance per scene object (keeping the hierarchy) and
// one per OBJ mesh. Either source may be nil. OBJ meshes carry the identity
// transform and come after scene objects in lookup order.
func NewLibrary(scene *formats.Scene, objMeshes []formats.OBJMesh) *Library {
	lib := &Library{}

	if scene != nil {
		for i := range scene.Objects {
			obj := &scene.Objects[i]
			lib.instances = append(lib.instances, &Instance{
				Name: obj.Name,
				Type: obj.Type,
				Mesh: FromSceneObject(obj),
				base: TransformOf(obj),
			})
		}
		for i := range scene.Objects {
			if p := scene.Objects[i].Parent; p != formats.NoParent {
				lib.instances[i].parent = lib.instances[p]
			}
			for _, c := range scene.Objects[i].Children {
				lib.instances[i].children = append(lib.instances[i].children, lib.instances[c])
			}
		}
	}

	for i := range objMeshes {
		lib.instances = append(lib.instances, &Instance{
			Name: objMeshes[i].Name,
			Mesh: FromOBJ(&objMeshes[i]),
			base: IdentityTransform(),
		})
	}
	return lib
}

// Lookup returns the first instance named name.
func (l *Library) Lookup(name string) (*Instance, bool) {
	for _, in := range l.instances {
		if in.Name == name {
			return in, true
		}
	}
	return nil, false
}

// Instances returns every instance in load order.
func (l *Library) Instances() []*Instance {
	return l.instances
}

// Len returns the number of instances.
func (l *Library) Len() int {
	return len(l.instances)
}
