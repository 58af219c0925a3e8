// Package model turns parsed scene objects and OBJ meshes into draw-ready
// meshes with transforms for a renderer.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one GPU vertex: position plus a flat color.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// Mesh holds geometry ready for upload. Indices are 0-based triangle-list
// indices in draw order.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint16
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return mgl32.Vec3{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// DefaultColor is assigned to every vertex.
var DefaultColor = [3]float32{1, 1, 1}
