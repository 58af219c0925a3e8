package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/simplescene/pkg/formats"
)

// Transform is a location, rotation and scale.
type Transform struct {
	Location mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityTransform has no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// TransformOf returns the transform recorded for a scene object.
func TransformOf(obj *formats.SceneObject) Transform {
	return Transform{Location: obj.Location, Rotation: obj.Rotation, Scale: obj.Scale}
}

// Matrix composes Translate * Rotate * Scale.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Location[0], t.Location[1], t.Location[2])
	m = m.Mul4(t.Rotation.Normalize().Mat4())
	return m.Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Apply transforms a point by t.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.Matrix())
}
