package geometry

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	KindBox ShapeKind = iota + 1
	KindTriangleMesh
)

func (k ShapeKind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindTriangleMesh:
		return "trimesh"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// BoxShape is a cuboid centered on the body origin.
type BoxShape struct {
	HalfExtents rl.Vector3
}

// Shape is a closed variant over BoxShape and *TriangleMesh. Build it with
// NewBox or NewMeshShape; the zero Shape is not a valid collider.
type Shape struct {
	kind ShapeKind
	box  BoxShape
	mesh *TriangleMesh
}

// NewBox returns a box shape. Half extents must be finite and non-negative.
func NewBox(halfExtents rl.Vector3) (Shape, error) {
	if !finiteVector(halfExtents) || halfExtents.X < 0 || halfExtents.Y < 0 || halfExtents.Z < 0 {
		return Shape{}, fmt.Errorf("box half extents %v: %w", halfExtents, ErrDegenerate)
	}
	return Shape{kind: KindBox, box: BoxShape{HalfExtents: halfExtents}}, nil
}

// NewMeshShape wraps a built triangle mesh.
func NewMeshShape(mesh *TriangleMesh) (Shape, error) {
	if mesh == nil {
		return Shape{}, fmt.Errorf("nil triangle mesh: %w", ErrDegenerate)
	}
	return Shape{kind: KindTriangleMesh, mesh: mesh}, nil
}

func (s Shape) Kind() ShapeKind {
	return s.kind
}

// Box returns the box variant.
func (s Shape) Box() (BoxShape, bool) {
	return s.box, s.kind == KindBox
}

// Mesh returns the triangle mesh variant.
func (s Shape) Mesh() (*TriangleMesh, bool) {
	return s.mesh, s.kind == KindTriangleMesh
}

// ComputeAABB returns the world-space bounding box of the shape under t.
func (s Shape) ComputeAABB(t Transform) AABB {
	switch s.kind {
	case KindBox:
		return NewOBB(s.box, t).AABB()
	case KindTriangleMesh:
		return s.mesh.ComputeAABB(t)
	default:
		panic(fmt.Sprintf("geometry: ComputeAABB on %v", s.kind))
	}
}
