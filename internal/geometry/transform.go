package geometry

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a rigid world transform: translation plus orientation. A zero
// Rotation is read as the identity so the zero Transform is usable.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
}

// NewTransform returns an unrotated transform at pos.
func NewTransform(pos rl.Vector3) Transform {
	return Transform{Position: pos, Rotation: rl.QuaternionIdentity()}
}

// NewTransformEuler builds a transform from euler angles in degrees, applied
// in X, Y, Z order like the scene files.
func NewTransformEuler(pos, rotationDeg rl.Vector3) Transform {
	q := rl.QuaternionFromEuler(rotationDeg.X*rl.Deg2rad, rotationDeg.Y*rl.Deg2rad, rotationDeg.Z*rl.Deg2rad)
	return Transform{Position: pos, Rotation: q}
}

func (t Transform) rotation() rl.Quaternion {
	q := t.Rotation
	lenSq := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if lenSq == 0 {
		return rl.QuaternionIdentity()
	}
	if lenSq > 1+1e-5 || lenSq < 1-1e-5 {
		return rl.QuaternionNormalize(q)
	}
	return q
}

func (t Transform) inverseRotation() rl.Quaternion {
	q := t.rotation()
	// Conjugate is the inverse of a unit quaternion.
	return rl.Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies only the orientation to v.
func (t Transform) Rotate(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, t.rotation())
}

// InverseRotate undoes Rotate.
func (t Transform) InverseRotate(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, t.inverseRotation())
}

// Apply maps a local-space point to world space.
func (t Transform) Apply(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(t.Position, t.Rotate(p))
}

// InverseApply maps a world-space point into local space.
func (t Transform) InverseApply(p rl.Vector3) rl.Vector3 {
	return t.InverseRotate(rl.Vector3Subtract(p, t.Position))
}

// Axes returns the local X, Y, Z axes expressed in world space.
func (t Transform) Axes() [3]rl.Vector3 {
	return [3]rl.Vector3{
		t.Rotate(rl.Vector3{X: 1}),
		t.Rotate(rl.Vector3{Y: 1}),
		t.Rotate(rl.Vector3{Z: 1}),
	}
}

// Valid reports whether every component is finite.
func (t Transform) Valid() bool {
	q := t.Rotation
	return finiteVector(t.Position) && finite(q.X) && finite(q.Y) && finite(q.Z) && finite(q.W)
}
