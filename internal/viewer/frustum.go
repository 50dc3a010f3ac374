package viewer

import (
	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

type plane struct {
	normal   rl.Vector3
	distance float32
}

// Frustum holds the six clip planes of a camera: left, right, bottom, top,
// near, far. Normals point inward.
type Frustum struct {
	planes [6]plane
}

// NewFrustum extracts the planes from the camera's view-projection matrix
// (Gribb/Hartmann).
func NewFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, nearPlane, farPlane)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, nearPlane, farPlane)
	}

	// MatrixMultiply(view, proj) applies view first.
	m := rl.MatrixMultiply(view, proj)
	rows := [4][4]float32{
		{m.M0, m.M4, m.M8, m.M12},
		{m.M1, m.M5, m.M9, m.M13},
		{m.M2, m.M6, m.M10, m.M14},
		{m.M3, m.M7, m.M11, m.M15},
	}

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		for side := 0; side < 2; side++ {
			sign := float32(1)
			if side == 1 {
				sign = -1
			}
			r, w := rows[axis], rows[3]
			f.planes[axis*2+side] = normalizePlane(plane{
				normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
				distance: w[3] + sign*r[3],
			})
		}
	}
	return f
}

func normalizePlane(p plane) plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsAABB reports whether any part of box may be visible. It tests the
// corner furthest along each plane normal, so boxes near a frustum edge can
// pass without being visible.
func (f *Frustum) ContainsAABB(box geometry.AABB) bool {
	for _, p := range f.planes {
		corner := box.Min
		if p.normal.X >= 0 {
			corner.X = box.Max.X
		}
		if p.normal.Y >= 0 {
			corner.Y = box.Max.Y
		}
		if p.normal.Z >= 0 {
			corner.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(p.normal, corner)+p.distance < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, point)+p.distance < 0 {
			return false
		}
	}
	return true
}
