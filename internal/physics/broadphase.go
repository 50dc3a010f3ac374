package physics

import (
	"fmt"

	"collide3d/internal/geometry"
	"collide3d/internal/octree"
)

// Pass is the output of one broad-phase build. Membership and Boxes are
// indexed by BodyID; bodies without a collider have an empty set and a zero
// box.
type Pass struct {
	Tree       *octree.Tree
	Membership []octree.ChunkSet
	Boxes      []geometry.AABB
	Indexed    int
	Chunks     int
}

// BroadPhase builds a fresh octree over bounds and registers every body that
// has a collider. Each body's Chunks field is overwritten with its new
// membership. A tree that fails validation is a bug and panics.
func BroadPhase(bodies []Body, bounds geometry.AABB, maxObjects, maxDepth int) Pass {
	tree := octree.New(bounds, maxObjects, maxDepth)
	pass := Pass{
		Tree:       tree,
		Membership: make([]octree.ChunkSet, len(bodies)),
		Boxes:      make([]geometry.AABB, len(bodies)),
	}

	for i := range bodies {
		bodies[i].Chunks = nil
		box, ok := bodies[i].AABB()
		if !ok {
			continue
		}
		pass.Boxes[i] = box
		tree.Insert(i, box)
		pass.Indexed++
	}

	if err := tree.Validate(); err != nil {
		panic(fmt.Sprintf("physics: broad phase produced an invalid tree: %v", err))
	}

	for i := range bodies {
		set := tree.Membership(i).Clone()
		pass.Membership[i] = set
		bodies[i].Chunks = set
	}
	pass.Chunks = tree.Chunks()
	return pass
}

// candidatePairs lists every pair (a < b) sharing at least one chunk, sorted
// by a then b. Pairs of two static bodies are left out since resolving them
// is a no-op.
func candidatePairs(bodies []Body, membership []octree.ChunkSet) [][2]BodyID {
	buckets := make(map[octree.ChunkID][]BodyID)
	var chunks []octree.ChunkID
	for i, set := range membership {
		for _, c := range set {
			if _, ok := buckets[c]; !ok {
				chunks = append(chunks, c)
			}
			buckets[c] = append(buckets[c], BodyID(i))
		}
	}

	checked := make(map[[2]BodyID]bool)
	var pairs [][2]BodyID
	for _, c := range chunks {
		members := buckets[c]
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				a, b := members[x], members[y]
				if bodies[a].Kind == Static && bodies[b].Kind == Static {
					continue
				}
				key := [2]BodyID{a, b}
				if checked[key] {
					continue
				}
				checked[key] = true
				pairs = append(pairs, key)
			}
		}
	}

	sortPairs(pairs)
	return pairs
}
