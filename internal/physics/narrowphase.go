package physics

import (
	"errors"
	"fmt"
	"sort"

	"collide3d/internal/geometry"
)

// Resolution records one contact the narrow phase acted on.
type Resolution struct {
	A, B    BodyID
	Contact geometry.Contact
}

// NarrowResult summarizes one narrow-phase pass.
type NarrowResult struct {
	Pairs         int // pairs sharing a chunk
	ChunkRejected int // collider pairs with disjoint chunk sets
	AABBRejected  int
	Resolved      int
	QueryFailures int
	Contacts      []Resolution
	// LastError is the most recent failed contact query, if any.
	LastError error
}

func sortPairs(pairs [][2]BodyID) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}

// NarrowPhase runs the exact test on every pair that shares a chunk and
// resolves the ones in contact, in ascending (A, B) order. Corrections are
// applied immediately so later pairs see the updated positions. Mesh-mesh
// pairs have no contact routine and are skipped.
func NarrowPhase(bodies []Body, pass Pass, restitution, tolerance float32) NarrowResult {
	var res NarrowResult

	boxes := make([]geometry.AABB, len(bodies))
	copy(boxes, pass.Boxes)

	pairs := candidatePairs(bodies, pass.Membership)
	res.Pairs = len(pairs)
	res.ChunkRejected = colliderPairs(bodies) - len(pairs)

	for _, p := range pairs {
		a, b := &bodies[p[0]], &bodies[p[1]]
		if a.Shape == nil || b.Shape == nil {
			continue
		}

		if !boxes[p[0]].Expand(tolerance).Intersects(boxes[p[1]]) {
			res.AABBRejected++
			continue
		}

		c, ok, err := geometry.ContactBetween(*a.Shape, a.Transform, *b.Shape, b.Transform, tolerance)
		if errors.Is(err, geometry.ErrUnsupportedPair) {
			continue
		}
		if err != nil {
			res.QueryFailures++
			res.LastError = fmt.Errorf("bodies %d/%d: %w", p[0], p[1], err)
			continue
		}
		if !ok {
			continue
		}

		movedA, movedB := resolveContact(a, b, c, restitution)
		if movedA {
			boxes[p[0]], _ = a.AABB()
		}
		if movedB {
			boxes[p[1]], _ = b.AABB()
		}
		res.Resolved++
		res.Contacts = append(res.Contacts, Resolution{A: p[0], B: p[1], Contact: c})
	}
	return res
}

// colliderPairs counts the pairs of collider-carrying bodies that are not both
// static, i.e. every pair the narrow phase would test without a broad phase.
func colliderPairs(bodies []Body) int {
	var all, static int
	for i := range bodies {
		if bodies[i].Shape == nil {
			continue
		}
		all++
		if bodies[i].Kind == Static {
			static++
		}
	}
	return all*(all-1)/2 - static*(static-1)/2
}
