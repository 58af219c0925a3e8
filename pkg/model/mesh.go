package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/simplescene/pkg/formats"
)

// FromSceneObject builds a mesh from a scene object's vertices, triangles and
// quads. Quads are split into two triangles with the same winding rules as
// OBJ faces (see formats.AppendTriangles).
func FromSceneObject(obj *formats.SceneObject) *Mesh {
	indices := make([]uint16, 0, len(obj.Triangles)*3+len(obj.Quads)*6)
	for _, t := range obj.Triangles {
		indices = formats.AppendTriangles(indices, t[:])
	}
	for _, q := range obj.Quads {
		indices = formats.AppendTriangles(indices, q[:])
	}
	return buildMesh(obj.Name, obj.Vertices, indices)
}

// FromOBJ builds a mesh from one parsed OBJ object.
func FromOBJ(m *formats.OBJMesh) *Mesh {
	indices := make([]uint16, len(m.Indices))
	copy(indices, m.Indices)
	return buildMesh(m.Name, m.Vertices, indices)
}

func buildMesh(name string, positions []mgl32.Vec3, indices []uint16) *Mesh {
	mesh := &Mesh{
		Name:     name,
		Vertices: make([]Vertex, len(positions)),
		Indices:  indices,
	}

	// Empty meshes keep a zero box.
	if len(positions) > 0 {
		mesh.Bounds = Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		}
	}

	for i, p := range positions {
		mesh.Vertices[i] = Vertex{Position: p, Color: DefaultColor}
		updateBounds(&mesh.Bounds, p)
	}
	return mesh
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Positions returns the vertex positions as one flat x,y,z slice.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}

// Interleaved returns position and color per vertex as one flat slice
// (x, y, z, r, g, b).
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
		out = append(out, v.Color[0], v.Color[1], v.Color[2])
	}
	return out
}
