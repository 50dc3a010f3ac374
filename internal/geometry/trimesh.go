package geometry

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is a single mesh triangle with precomputed unit edges and normal,
// all in mesh-local space.
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
	Edges      [3]rl.Vector3
}

// bvhNode is a node in the bounding volume hierarchy
type bvhNode struct {
	Bounds    AABB
	Left      *bvhNode
	Right     *bvhNode
	Triangles []int // indices into the triangle array (only for leaf nodes)
}

// TriangleMesh is an immutable triangle soup in local space with a BVH for
// region queries.
type TriangleMesh struct {
	vertices  []rl.Vector3
	triangles []Triangle
	root      *bvhNode
}

// NewTriangleMesh validates mesh data and builds the BVH. Zero-area
// triangles are dropped; a mesh with no usable triangle is degenerate.
func NewTriangleMesh(data MeshData) (*TriangleMesh, error) {
	if len(data.Positions) == 0 {
		return nil, ErrNoPositions
	}
	if len(data.Indices) == 0 {
		return nil, ErrNoIndices
	}

	m := &TriangleMesh{
		vertices:  append([]rl.Vector3(nil), data.Positions...),
		triangles: make([]Triangle, 0, len(data.Indices)),
	}
	for i, v := range m.vertices {
		if !finiteVector(v) {
			return nil, fmt.Errorf("vertex %d: %w", i, ErrDegenerate)
		}
	}

	count := uint32(len(m.vertices))
	for i, idx := range data.Indices {
		if idx[0] >= count || idx[1] >= count || idx[2] >= count {
			return nil, fmt.Errorf("triangle %d references vertex out of range: %w", i, ErrDegenerate)
		}
		tri, ok := newTriangle(m.vertices[idx[0]], m.vertices[idx[1]], m.vertices[idx[2]])
		if !ok {
			continue
		}
		m.triangles = append(m.triangles, tri)
	}
	if len(m.triangles) == 0 {
		return nil, fmt.Errorf("no non-degenerate triangles: %w", ErrDegenerate)
	}

	m.buildBVH()
	return m, nil
}

func newTriangle(v0, v1, v2 rl.Vector3) (Triangle, bool) {
	var edges [3]rl.Vector3
	for i, e := range [3]rl.Vector3{
		rl.Vector3Subtract(v1, v0),
		rl.Vector3Subtract(v2, v1),
		rl.Vector3Subtract(v0, v2),
	} {
		unit, ok := normalizeAxis(e)
		if !ok {
			return Triangle{}, false
		}
		edges[i] = unit
	}
	normal, ok := normalizeAxis(rl.Vector3CrossProduct(edges[0], rl.Vector3Negate(edges[2])))
	if !ok {
		return Triangle{}, false
	}
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: normal, Edges: edges}, true
}

// Project returns the interval the triangle covers on a unit axis.
func (t *Triangle) Project(axis rl.Vector3) (float32, float32) {
	a := rl.Vector3DotProduct(t.V0, axis)
	b := rl.Vector3DotProduct(t.V1, axis)
	c := rl.Vector3DotProduct(t.V2, axis)
	lo, hi := a, a
	for _, v := range [2]float32{b, c} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func (t *Triangle) bounds() AABB {
	return emptyAABB().Extend(t.V0).Extend(t.V1).Extend(t.V2)
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangle returns the i-th triangle in local space.
func (m *TriangleMesh) Triangle(i int) Triangle {
	return m.triangles[i]
}

// LocalBounds returns the AABB of the entire mesh in local space.
func (m *TriangleMesh) LocalBounds() AABB {
	return m.root.Bounds
}

// ComputeAABB transforms every vertex; meshes are expected to be few and
// mostly static, so the exact box is worth the pass.
func (m *TriangleMesh) ComputeAABB(t Transform) AABB {
	box := emptyAABB()
	for _, v := range m.vertices {
		box = box.Extend(t.Apply(v))
	}
	return box
}

// buildBVH constructs a bounding volume hierarchy for fast queries
func (m *TriangleMesh) buildBVH() {
	indices := make([]int, len(m.triangles))
	for i := range indices {
		indices[i] = i
	}
	m.root = m.buildBVHNode(indices, 0)
}

func (m *TriangleMesh) buildBVHNode(indices []int, depth int) *bvhNode {
	node := &bvhNode{Bounds: m.computeBounds(indices)}

	// If few triangles or max depth, make leaf
	if len(indices) <= 4 || depth > 20 {
		node.Triangles = indices
		return node
	}

	// Find longest axis
	size := node.Bounds.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > getAxisValue(size, axis) {
		axis = 2
	}

	mid := m.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		// Couldn't split, make leaf
		node.Triangles = indices
		return node
	}

	node.Left = m.buildBVHNode(indices[:mid], depth+1)
	node.Right = m.buildBVHNode(indices[mid:], depth+1)
	return node
}

func (m *TriangleMesh) computeBounds(indices []int) AABB {
	bounds := emptyAABB()
	for _, idx := range indices {
		bounds = bounds.Union(m.triangles[idx].bounds())
	}
	return bounds
}

func (m *TriangleMesh) centroid(idx int) rl.Vector3 {
	tri := &m.triangles[idx]
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3.0)
}

// partitionTriangles splits indices around the mean centroid on axis and
// returns the first index of the upper half.
func (m *TriangleMesh) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += getAxisValue(m.centroid(idx), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if getAxisValue(m.centroid(indices[left]), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

// Query appends the indices of triangles whose bounds overlap the local-space
// box to dst.
func (m *TriangleMesh) Query(box AABB, dst []int) []int {
	return m.queryBVH(m.root, box, dst)
}

func (m *TriangleMesh) queryBVH(node *bvhNode, query AABB, dst []int) []int {
	if node == nil || !node.Bounds.Intersects(query) {
		return dst
	}
	if node.Triangles != nil {
		for _, idx := range node.Triangles {
			if m.triangles[idx].bounds().Intersects(query) {
				dst = append(dst, idx)
			}
		}
		return dst
	}
	dst = m.queryBVH(node.Left, query, dst)
	return m.queryBVH(node.Right, query, dst)
}
