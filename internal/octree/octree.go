// Package octree is the broad-phase spatial index: a loose octree rebuilt
// from scratch every tick that assigns each body to the chunks (nodes) its
// bounding box overlaps.
package octree

import (
	"fmt"
	"sort"

	"collide3d/internal/geometry"
)

// Node is one cell of the tree. Nodes live in the tree's arena and refer to
// their children by index; the eight children of a split node are stored
// contiguously starting at FirstChild.
type Node struct {
	Bounds     geometry.AABB
	Chunk      ChunkID
	FirstChild int32 // -1 for leaves
	Depth      int   // 0 at the root
	Members    []int // body ids, leaves only
}

func (n *Node) IsLeaf() bool {
	return n.FirstChild < 0
}

// Children returns the arena indices of the eight children, or nil for a leaf.
func (n *Node) Children() []int32 {
	if n.IsLeaf() {
		return nil
	}
	out := make([]int32, 8)
	for i := range out {
		out[i] = n.FirstChild + int32(i)
	}
	return out
}

// Tree is a single build of the index. It owns its node arena and the chunk
// counter; nothing in it survives into the next build.
type Tree struct {
	nodes      []Node
	boxes      map[int]geometry.AABB
	membership map[int]ChunkSet
	maxObjects int
	maxDepth   int
	nextChunk  ChunkID
}

// New creates a tree with a single root leaf covering bounds. The root takes
// chunk 0 and the counter starts from there.
func New(bounds geometry.AABB, maxObjects, maxDepth int) *Tree {
	if maxObjects < 1 {
		maxObjects = 1
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Tree{
		nodes:      []Node{{Bounds: bounds, Chunk: 0, FirstChild: -1}},
		boxes:      make(map[int]geometry.AABB),
		membership: make(map[int]ChunkSet),
		maxObjects: maxObjects,
		maxDepth:   maxDepth,
	}
}

// Insert registers a body by id with its world-space bounding box. A box
// straddling node boundaries is registered in every node it touches; one
// reaching past the world bounds also joins OutsideChunk.
func (t *Tree) Insert(id int, box geometry.AABB) {
	t.boxes[id] = box
	if _, ok := t.membership[id]; !ok {
		t.membership[id] = ChunkSet{}
	}

	if !box.Valid() || !t.nodes[0].Bounds.Intersects(box) {
		t.membership[id] = t.membership[id].Add(OutsideChunk)
		return
	}
	t.insert(0, id, t.maxDepth)
	if !t.nodes[0].Bounds.Contains(box) {
		t.membership[id] = t.membership[id].Add(OutsideChunk)
	}
}

// insert places id below node n with the given remaining depth budget.
func (t *Tree) insert(n int32, id int, budget int) {
	box := t.boxes[id]

	if !t.nodes[n].IsLeaf() {
		first := t.nodes[n].FirstChild
		for c := first; c < first+8; c++ {
			if t.nodes[c].Bounds.Intersects(box) {
				t.insert(c, id, budget-1)
			}
		}
		return
	}

	t.nodes[n].Members = append(t.nodes[n].Members, id)
	t.membership[id] = t.membership[id].Add(t.nodes[n].Chunk)

	if len(t.nodes[n].Members) > t.maxObjects && budget > 0 {
		t.split(n, budget)
	}
}

// split turns leaf n into an internal node with eight fresh children and
// pushes its members down.
func (t *Tree) split(n int32, budget int) {
	octants := t.nodes[n].Bounds.Octants()
	depth := t.nodes[n].Depth + 1

	first := int32(len(t.nodes))
	for _, b := range octants {
		t.nextChunk++
		t.nodes = append(t.nodes, Node{Bounds: b, Chunk: t.nextChunk, FirstChild: -1, Depth: depth})
	}

	members := t.nodes[n].Members
	parentChunk := t.nodes[n].Chunk
	t.nodes[n].Members = nil
	t.nodes[n].FirstChild = first

	for _, id := range members {
		t.membership[id] = t.membership[id].Remove(parentChunk)
		box := t.boxes[id]
		for c := first; c < first+8; c++ {
			if t.nodes[c].Bounds.Intersects(box) {
				t.insert(c, id, budget-1)
			}
		}
	}
}

// Membership returns the chunks body id was assigned to; empty for unknown ids.
func (t *Tree) Membership(id int) ChunkSet {
	return t.membership[id]
}

// Memberships returns every inserted body's chunk set. The map belongs to the
// caller.
func (t *Tree) Memberships() map[int]ChunkSet {
	out := make(map[int]ChunkSet, len(t.membership))
	for id, set := range t.membership {
		out[id] = set.Clone()
	}
	return out
}

// Chunks is the number of chunk ids handed out by this build, root included.
func (t *Tree) Chunks() int {
	return int(t.nextChunk) + 1
}

// Len is the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the i-th node of the arena.
func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

func (t *Tree) Bounds() geometry.AABB {
	return t.nodes[0].Bounds
}

// Leaves calls fn for every leaf in arena order.
func (t *Tree) Leaves(fn func(Node)) {
	for i := range t.nodes {
		if t.nodes[i].IsLeaf() {
			fn(t.nodes[i])
		}
	}
}

// Validate checks the structural invariants of the build. A failure is a
// bug in the tree, not a runtime condition.
func (t *Tree) Validate() error {
	seen := make(map[ChunkID]bool, len(t.nodes))
	leafChunks := make(map[ChunkID]bool, len(t.nodes))

	for i := range t.nodes {
		n := &t.nodes[i]
		if seen[n.Chunk] {
			return fmt.Errorf("octree: chunk %d used by more than one node", n.Chunk)
		}
		seen[n.Chunk] = true

		if n.IsLeaf() {
			leafChunks[n.Chunk] = true
			if len(n.Members) > t.maxObjects && t.maxDepth-n.Depth > 0 {
				return fmt.Errorf("octree: leaf %d holds %d members above the limit of %d with depth left",
					n.Chunk, len(n.Members), t.maxObjects)
			}
			for _, id := range n.Members {
				if !t.membership[id].Has(n.Chunk) {
					return fmt.Errorf("octree: body %d stored in leaf %d without membership", id, n.Chunk)
				}
			}
			continue
		}

		if int(n.FirstChild)+8 > len(t.nodes) || n.FirstChild <= int32(i) {
			return fmt.Errorf("octree: node %d has a broken child range at %d", n.Chunk, n.FirstChild)
		}
		if len(n.Members) != 0 {
			return fmt.Errorf("octree: internal node %d holds %d members", n.Chunk, len(n.Members))
		}
	}

	ids := make([]int, 0, len(t.membership))
	for id := range t.membership {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		for _, c := range t.membership[id] {
			if c != OutsideChunk && !leafChunks[c] {
				return fmt.Errorf("octree: body %d is a member of non-leaf chunk %d", id, c)
			}
		}
	}
	return nil
}
