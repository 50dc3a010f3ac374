package physics

import (
	"errors"
	"fmt"

	"collide3d/internal/geometry"
	"collide3d/internal/octree"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind decides whether the integrator and the resolver may move a body.
type Kind uint8

const (
	Static Kind = iota
	Dynamic
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// BodyID indexes the world's body table. Ids are never reused.
type BodyID int

var (
	ErrStaticMotion = errors.New("physics: static body cannot carry velocity or mass")
	ErrInvalidMass  = errors.New("physics: dynamic body needs a positive finite mass")
	ErrNoShape      = errors.New("physics: body needs exactly one of box or mesh")
	ErrUnknownBody  = errors.New("physics: unknown body")
	ErrNotPending   = errors.New("physics: body has no pending mesh")
)

// ShapeDef names the collider a body spawns with. Exactly one field is set:
// Box holds half extents, MeshRef names an asset resolved later through a
// MeshSource.
type ShapeDef struct {
	Box     *rl.Vector3
	MeshRef string
}

// BodyDef is the spawn contract.
type BodyDef struct {
	Name      string
	Transform geometry.Transform
	Kind      Kind
	Velocity  rl.Vector3
	Mass      float32
	Shape     ShapeDef
}

// Body is one row of the world's body table.
type Body struct {
	Name      string
	Transform geometry.Transform
	Kind      Kind
	Velocity  rl.Vector3
	Mass      float32

	// Shape is nil until the collider exists. Mesh bodies keep MeshRef after
	// resolution so renderers can look the asset up.
	Shape   *geometry.Shape
	MeshRef string

	// Chunks is the membership from the last broad phase.
	Chunks octree.ChunkSet
}

// Pending reports whether the body waits for mesh data and is therefore
// skipped by the broad and narrow phase.
func (b *Body) Pending() bool {
	return b.Shape == nil && b.MeshRef != ""
}

// HasCollider reports whether the body takes part in collision.
func (b *Body) HasCollider() bool {
	return b.Shape != nil
}

// AABB returns the world bounds of the collider under the current transform.
func (b *Body) AABB() (geometry.AABB, bool) {
	if b.Shape == nil {
		return geometry.AABB{}, false
	}
	return b.Shape.ComputeAABB(b.Transform), true
}

func validMass(m float32) bool {
	return m > 0 && m == m && m < 1e30
}

// newBody validates def and builds the table row.
func newBody(def BodyDef) (Body, error) {
	if !def.Transform.Valid() {
		return Body{}, fmt.Errorf("spawn %q: %w", def.Name, geometry.ErrDegenerate)
	}

	switch def.Kind {
	case Static:
		if def.Mass != 0 || def.Velocity != (rl.Vector3{}) {
			return Body{}, fmt.Errorf("spawn %q: %w", def.Name, ErrStaticMotion)
		}
	case Dynamic:
		if !validMass(def.Mass) {
			return Body{}, fmt.Errorf("spawn %q: mass %v: %w", def.Name, def.Mass, ErrInvalidMass)
		}
	default:
		return Body{}, fmt.Errorf("spawn %q: unknown kind %v", def.Name, def.Kind)
	}

	body := Body{
		Name:      def.Name,
		Transform: def.Transform,
		Kind:      def.Kind,
		Velocity:  def.Velocity,
		Mass:      def.Mass,
	}

	switch {
	case def.Shape.Box != nil && def.Shape.MeshRef == "":
		shape, err := geometry.NewBox(*def.Shape.Box)
		if err != nil {
			return Body{}, fmt.Errorf("spawn %q: %w", def.Name, err)
		}
		body.Shape = &shape
	case def.Shape.Box == nil && def.Shape.MeshRef != "":
		body.MeshRef = def.Shape.MeshRef
	default:
		return Body{}, fmt.Errorf("spawn %q: %w", def.Name, ErrNoShape)
	}
	return body, nil
}
