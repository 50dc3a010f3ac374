package physics

import (
	"collide3d/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Body     BodyID
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast checks every collider and returns the closest hit within
// maxDistance. Pending bodies cannot be hit.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Shape == nil {
			continue
		}

		// Work in the shape's local frame; rotations keep distances.
		localOrigin := b.Transform.InverseApply(origin)
		localDir := b.Transform.InverseRotate(direction)

		var (
			hitInfo RaycastHit
			ok      bool
		)
		if box, isBox := b.Shape.Box(); isBox {
			hitInfo, ok = raycastBox(localOrigin, localDir, box, closestHit.Distance)
		} else if mesh, isMesh := b.Shape.Mesh(); isMesh {
			hitInfo, ok = raycastMesh(localOrigin, localDir, mesh, closestHit.Distance)
		}
		if !ok {
			continue
		}

		closestHit = RaycastHit{
			Body:     BodyID(i),
			Point:    b.Transform.Apply(hitInfo.Point),
			Normal:   b.Transform.Rotate(hitInfo.Normal),
			Distance: hitInfo.Distance,
		}
		hit = true
	}

	return closestHit, hit
}

func component(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setComponent(v *rl.Vector3, axis int, f float32) {
	switch axis {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
}

// raycastBox is a slab test against a box centered at the origin.
func raycastBox(origin, direction rl.Vector3, box geometry.BoxShape, maxDistance float32) (RaycastHit, bool) {
	tmin, tmax := float32(-1e30), float32(1e30)
	hitAxis, hitSign := -1, float32(0)

	for axis := 0; axis < 3; axis++ {
		o, d := component(origin, axis), component(direction, axis)
		h := component(box.HalfExtents, axis)

		if d == 0 {
			if o < -h || o > h {
				return RaycastHit{}, false
			}
			continue
		}

		t1 := (-h - o) / d
		t2 := (h - o) / d
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			hitAxis, hitSign = axis, sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	// Origin inside the box: report a hit at the origin.
	if tmin < 0 {
		if tmax < 0 {
			return RaycastHit{}, false
		}
		return RaycastHit{Point: origin, Normal: rl.Vector3Negate(direction), Distance: 0}, true
	}
	if tmin > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, tmin))
	var normal rl.Vector3
	if hitAxis >= 0 {
		setComponent(&normal, hitAxis, hitSign)
	}
	return RaycastHit{Point: point, Normal: normal, Distance: tmin}, true
}

// raycastMesh runs Möller-Trumbore against every triangle and keeps the
// closest front- or back-face hit.
func raycastMesh(origin, direction rl.Vector3, mesh *geometry.TriangleMesh, maxDistance float32) (RaycastHit, bool) {
	const epsilon = 1e-6
	best := RaycastHit{Distance: maxDistance}
	hit := false

	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		e1 := rl.Vector3Subtract(tri.V1, tri.V0)
		e2 := rl.Vector3Subtract(tri.V2, tri.V0)

		p := rl.Vector3CrossProduct(direction, e2)
		det := rl.Vector3DotProduct(e1, p)
		if math32.Abs(det) < epsilon {
			continue
		}
		inv := 1 / det

		s := rl.Vector3Subtract(origin, tri.V0)
		u := rl.Vector3DotProduct(s, p) * inv
		if u < 0 || u > 1 {
			continue
		}
		q := rl.Vector3CrossProduct(s, e1)
		v := rl.Vector3DotProduct(direction, q) * inv
		if v < 0 || u+v > 1 {
			continue
		}
		t := rl.Vector3DotProduct(e2, q) * inv
		if t < 0 || t > best.Distance {
			continue
		}

		normal := tri.Normal
		if rl.Vector3DotProduct(normal, direction) > 0 {
			normal = rl.Vector3Negate(normal)
		}
		best = RaycastHit{
			Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
			Normal:   normal,
			Distance: t,
		}
		hit = true
	}
	return best, hit
}
