package physics

import (
	"errors"
	"fmt"
	"log"
	"time"

	"collide3d/internal/config"
	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshSource resolves mesh references to raw geometry. ok is false while the
// asset is still loading; a non-nil error means it never will.
type MeshSource interface {
	Mesh(ref string) (data geometry.MeshData, ok bool, err error)
}

// Stats describes the last completed tick.
type Stats struct {
	Tick          uint64
	Bodies        int
	Indexed       int // bodies inserted into the octree
	Chunks        int
	Pairs         int
	ChunkRejected int
	AABBRejected  int
	Resolved      int
	QueryFailures int
}

// World owns the body table and runs the per-tick pipeline: integrate, broad
// phase, narrow phase. It is not safe for concurrent use.
type World struct {
	cfg    config.Config
	bodies []Body

	pass     Pass
	contacts []Resolution
	stats    Stats
	tick     uint64

	failedMeshes map[BodyID]error
	lastLogTime  time.Time // rate-limit query failure logs
}

func NewWorld(cfg config.Config) *World {
	return &World{
		cfg:          cfg,
		failedMeshes: make(map[BodyID]error),
	}
}

func (w *World) Config() config.Config {
	return w.cfg
}

// Spawn validates def and appends a body. Mesh bodies start pending and stay
// out of collision until AttachMesh or ResolveMeshes gives them a collider.
func (w *World) Spawn(def BodyDef) (BodyID, error) {
	body, err := newBody(def)
	if err != nil {
		return -1, err
	}
	w.bodies = append(w.bodies, body)
	return BodyID(len(w.bodies) - 1), nil
}

// AttachMesh builds a triangle mesh collider from resolved data and clears
// the body's pending state. On error the body stays pending.
func (w *World) AttachMesh(id BodyID, data geometry.MeshData) error {
	if !w.valid(id) {
		return fmt.Errorf("attach mesh to %d: %w", id, ErrUnknownBody)
	}
	b := &w.bodies[id]
	if !b.Pending() {
		return fmt.Errorf("attach mesh to %d: %w", id, ErrNotPending)
	}

	mesh, err := geometry.NewTriangleMesh(data)
	if err != nil {
		return fmt.Errorf("attach mesh %q to %d: %w", b.MeshRef, id, err)
	}
	shape, err := geometry.NewMeshShape(mesh)
	if err != nil {
		return fmt.Errorf("attach mesh %q to %d: %w", b.MeshRef, id, err)
	}
	b.Shape = &shape
	delete(w.failedMeshes, id)
	return nil
}

// ResolveMeshes asks src for every pending body's mesh and attaches the ones
// that are ready. A body whose mesh fails is logged once and not asked for
// again. It returns the number of colliders attached this call.
func (w *World) ResolveMeshes(src MeshSource) (int, error) {
	var (
		attached int
		errs     []error
	)
	for _, id := range w.PendingMeshes() {
		if _, failed := w.failedMeshes[id]; failed {
			continue
		}

		data, ok, err := src.Mesh(w.bodies[id].MeshRef)
		if err == nil && ok {
			err = w.AttachMesh(id, data)
		} else if err != nil {
			err = fmt.Errorf("resolve mesh %q for %d: %w", w.bodies[id].MeshRef, id, err)
		}
		if err != nil {
			w.failedMeshes[id] = err
			log.Printf("Physics: body %d stays without collider: %v", id, err)
			errs = append(errs, err)
			continue
		}
		if ok {
			attached++
		}
	}
	if attached > 0 {
		log.Printf("Physics: attached %d mesh colliders", attached)
	}
	return attached, errors.Join(errs...)
}

// PendingMeshes lists bodies still waiting for mesh data, in id order.
func (w *World) PendingMeshes() []BodyID {
	var ids []BodyID
	for i := range w.bodies {
		if w.bodies[i].Pending() {
			ids = append(ids, BodyID(i))
		}
	}
	return ids
}

// Step advances the simulation by one fixed tick.
func (w *World) Step() Stats {
	Integrate(w.bodies, w.cfg)

	w.pass = BroadPhase(w.bodies, w.cfg.WorldBounds(), w.cfg.MaxObjects, w.cfg.MaxDepth)
	res := NarrowPhase(w.bodies, w.pass, w.cfg.Restitution, w.cfg.Tolerance)
	w.contacts = res.Contacts

	w.tick++
	w.stats = Stats{
		Tick:          w.tick,
		Bodies:        len(w.bodies),
		Indexed:       w.pass.Indexed,
		Chunks:        w.pass.Chunks,
		Pairs:         res.Pairs,
		ChunkRejected: res.ChunkRejected,
		AABBRejected:  res.AABBRejected,
		Resolved:      res.Resolved,
		QueryFailures: res.QueryFailures,
	}

	// Log query failures once per second
	if res.QueryFailures > 0 && time.Since(w.lastLogTime) >= time.Second {
		w.lastLogTime = time.Now()
		log.Printf("Physics: %d contact queries failed on tick %d (last: %v)", res.QueryFailures, w.tick, res.LastError)
	}
	return w.stats
}

func (w *World) Stats() Stats {
	return w.stats
}

// LastPass returns the broad-phase output of the last tick. The tree is
// replaced on every Step.
func (w *World) LastPass() Pass {
	return w.pass
}

// Contacts returns the contacts resolved during the last tick.
func (w *World) Contacts() []Resolution {
	return append([]Resolution(nil), w.contacts...)
}

// Body returns a copy of the body with the given id.
func (w *World) Body(id BodyID) (Body, bool) {
	if !w.valid(id) {
		return Body{}, false
	}
	return w.bodies[id], true
}

// SetVelocity overrides a dynamic body's velocity, for tools and tests.
func (w *World) SetVelocity(id BodyID, v rl.Vector3) error {
	if !w.valid(id) {
		return fmt.Errorf("set velocity of %d: %w", id, ErrUnknownBody)
	}
	if w.bodies[id].Kind != Dynamic {
		return fmt.Errorf("set velocity of %d: %w", id, ErrStaticMotion)
	}
	w.bodies[id].Velocity = v
	return nil
}

// Each calls fn with a copy of every body in id order.
func (w *World) Each(fn func(BodyID, Body)) {
	for i := range w.bodies {
		fn(BodyID(i), w.bodies[i])
	}
}

// Len is the number of bodies in the table.
func (w *World) Len() int {
	return len(w.bodies)
}

// Reset drops every body. Ids restart from zero.
func (w *World) Reset() {
	w.bodies = nil
	w.pass = Pass{}
	w.contacts = nil
	w.stats = Stats{}
	w.tick = 0
	w.failedMeshes = make(map[BodyID]error)
}

func (w *World) valid(id BodyID) bool {
	return id >= 0 && int(id) < len(w.bodies)
}
