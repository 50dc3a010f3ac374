package geometry

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is the result of an exact overlap query between shapes A and B.
type Contact struct {
	// Normal is a world-space unit vector pointing from A toward B.
	Normal rl.Vector3
	// Distance is signed: negative when the shapes penetrate.
	Distance float32
}

// ContactBetween finds the separating or penetrating axis between two posed shapes.
// ok is true when the signed distance is at most tolerance, so touching
// shapes report a contact with the default tolerance of zero.
func ContactBetween(a Shape, ta Transform, b Shape, tb Transform, tolerance float32) (Contact, bool, error) {
	if !ta.Valid() || !tb.Valid() || !finite(tolerance) {
		return Contact{}, false, ErrDegenerate
	}

	switch {
	case a.kind == KindBox && b.kind == KindBox:
		c, ok := obbContact(NewOBB(a.box, ta), NewOBB(b.box, tb), tolerance)
		return c, ok, nil

	case a.kind == KindBox && b.kind == KindTriangleMesh:
		return boxMeshContact(a.box, ta, b.mesh, tb, tolerance)

	case a.kind == KindTriangleMesh && b.kind == KindBox:
		c, ok, err := boxMeshContact(b.box, tb, a.mesh, ta, tolerance)
		c.Normal = rl.Vector3Negate(c.Normal)
		return c, ok, err

	case a.kind == KindTriangleMesh && b.kind == KindTriangleMesh:
		return Contact{}, false, ErrUnsupportedPair

	default:
		return Contact{}, false, fmt.Errorf("contact %v/%v: %w", a.kind, b.kind, ErrDegenerate)
	}
}

// boxMeshContact tests the box against every nearby triangle in the mesh's
// local frame and keeps the deepest contact. The normal points from the box
// toward the mesh.
func boxMeshContact(box BoxShape, tb Transform, mesh *TriangleMesh, tm Transform, tolerance float32) (Contact, bool, error) {
	local := NewOBB(box, tb).InFrame(tm)

	query := local.AABB()
	if tolerance > 0 {
		query = query.Expand(tolerance)
	}

	var (
		best  Contact
		found bool
	)
	for _, idx := range mesh.Query(query, nil) {
		c, ok := boxTriangleContact(local, &mesh.triangles[idx], tolerance)
		if !ok {
			continue
		}
		if !found || c.Distance < best.Distance {
			best = c
			found = true
		}
	}
	if !found {
		return Contact{}, false, nil
	}

	best.Normal = tm.Rotate(best.Normal)
	return best, true, nil
}

// boxTriangleContact is the 13-axis SAT between a box and one triangle, both
// in the same frame: 3 box faces, the triangle normal and 9 edge crosses.
func boxTriangleContact(box OBB, tri *Triangle, tolerance float32) (Contact, bool) {
	var sat separatingAxes
	sat.tolerance = tolerance

	test := func(raw rl.Vector3) bool {
		axis, ok := normalizeAxis(raw)
		if !ok {
			return true
		}
		aMin, aMax := box.Project(axis)
		bMin, bMax := tri.Project(axis)
		return sat.test(axis, aMin, aMax, bMin, bMax)
	}

	for i := 0; i < 3; i++ {
		if !test(box.Axes[i]) {
			return Contact{}, false
		}
	}
	if !test(tri.Normal) {
		return Contact{}, false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(rl.Vector3CrossProduct(box.Axes[i], tri.Edges[j])) {
				return Contact{}, false
			}
		}
	}
	return sat.result()
}
