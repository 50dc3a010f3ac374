package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB places a box shape under a transform.
func NewOBB(box BoxShape, t Transform) OBB {
	return OBB{
		Center:   t.Position,
		HalfSize: box.HalfExtents,
		Axes:     t.Axes(),
	}
}

// InFrame re-expresses the box in the local space of t.
func (o OBB) InFrame(t Transform) OBB {
	return OBB{
		Center:   t.InverseApply(o.Center),
		HalfSize: o.HalfSize,
		Axes: [3]rl.Vector3{
			t.InverseRotate(o.Axes[0]),
			t.InverseRotate(o.Axes[1]),
			t.InverseRotate(o.Axes[2]),
		},
	}
}

// radius is the half-length of the box's projection onto a unit axis.
func (o OBB) radius(axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// Project returns the interval the box covers on a unit axis.
func (o OBB) Project(axis rl.Vector3) (float32, float32) {
	c := rl.Vector3DotProduct(o.Center, axis)
	r := o.radius(axis)
	return c - r, c + r
}

// AABB returns the tightest axis-aligned box around the OBB.
func (o OBB) AABB() AABB {
	ext := rl.Vector3{
		X: o.radius(rl.Vector3{X: 1}),
		Y: o.radius(rl.Vector3{Y: 1}),
		Z: o.radius(rl.Vector3{Z: 1}),
	}
	return AABB{
		Min: rl.Vector3Subtract(o.Center, ext),
		Max: rl.Vector3Add(o.Center, ext),
	}
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (o OBB) IntersectsOBB(b OBB) bool {
	_, ok := obbContact(o, b, 0)
	return ok
}

// obbContact runs the 15-axis SAT and returns the axis of least penetration
// (or largest separation) oriented from a toward b.
func obbContact(a, b OBB, tolerance float32) (Contact, bool) {
	var sat separatingAxes
	sat.tolerance = tolerance

	test := func(raw rl.Vector3) bool {
		axis, ok := normalizeAxis(raw)
		if !ok {
			return true
		}
		aMin, aMax := a.Project(axis)
		bMin, bMax := b.Project(axis)
		return sat.test(axis, aMin, aMax, bMin, bMax)
	}

	// Face normals of A, then of B
	for i := 0; i < 3; i++ {
		if !test(a.Axes[i]) {
			return Contact{}, false
		}
	}
	for i := 0; i < 3; i++ {
		if !test(b.Axes[i]) {
			return Contact{}, false
		}
	}

	// Cross products of edges; parallel pairs are skipped by normalizeAxis
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])) {
				return Contact{}, false
			}
		}
	}

	return sat.result()
}

// separatingAxes accumulates per-axis signed distances. The contact distance
// is the largest one: the shallowest penetration or the widest gap.
type separatingAxes struct {
	tolerance float32
	best      Contact
	found     bool
}

// test folds one axis in. It returns false once the shapes are proven to be
// further apart than the tolerance, so callers can stop early.
func (s *separatingAxes) test(axis rl.Vector3, aMin, aMax, bMin, bMax float32) bool {
	// dPos: B lies on the +axis side of A. dNeg: B lies on the -axis side.
	dPos := bMin - aMax
	dNeg := aMin - bMax

	dist, normal := dPos, axis
	if dNeg > dPos {
		dist, normal = dNeg, rl.Vector3Negate(axis)
	}

	if !s.found || dist > s.best.Distance {
		s.best = Contact{Normal: normal, Distance: dist}
		s.found = true
	}
	return dist <= s.tolerance
}

func (s *separatingAxes) result() (Contact, bool) {
	if !s.found || s.best.Distance > s.tolerance {
		return Contact{}, false
	}
	return s.best, true
}
