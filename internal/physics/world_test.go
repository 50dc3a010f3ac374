package physics

import (
	"errors"
	"testing"

	"collide3d/internal/config"
	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// quad is a flat square of the given half size at y=0.
func quad(h float32) geometry.MeshData {
	return geometry.MeshData{
		Positions: []rl.Vector3{
			{X: -h, Z: -h}, {X: h, Z: -h}, {X: h, Z: h}, {X: -h, Z: h},
		},
		Indices: [][3]uint32{{0, 2, 1}, {0, 3, 2}},
	}
}

type fakeSource struct {
	meshes map[string]geometry.MeshData
	errs   map[string]error
	calls  map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		meshes: make(map[string]geometry.MeshData),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeSource) Mesh(ref string) (geometry.MeshData, bool, error) {
	f.calls[ref]++
	if err, ok := f.errs[ref]; ok {
		return geometry.MeshData{}, false, err
	}
	data, ok := f.meshes[ref]
	return data, ok, nil
}

func TestSpawnValidation(t *testing.T) {
	box := half(0.5)
	tests := []struct {
		name string
		def  BodyDef
		want error
	}{
		{"static with mass", BodyDef{Kind: Static, Mass: 1, Shape: ShapeDef{Box: box}}, ErrStaticMotion},
		{"static with velocity", BodyDef{Kind: Static, Velocity: vec(0, 1, 0), Shape: ShapeDef{Box: box}}, ErrStaticMotion},
		{"dynamic without mass", BodyDef{Kind: Dynamic, Shape: ShapeDef{Box: box}}, ErrInvalidMass},
		{"dynamic negative mass", BodyDef{Kind: Dynamic, Mass: -1, Shape: ShapeDef{Box: box}}, ErrInvalidMass},
		{"no shape", BodyDef{Kind: Dynamic, Mass: 1}, ErrNoShape},
		{"both shapes", BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: box, MeshRef: "a"}}, ErrNoShape},
		{"negative box", BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: &rl.Vector3{X: -1, Y: 1, Z: 1}}}, geometry.ErrDegenerate},
	}

	w := NewWorld(config.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := w.Spawn(tt.def)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if id != -1 {
				t.Errorf("Expected id -1 on error, got %d", id)
			}
		})
	}
	if w.Len() != 0 {
		t.Errorf("Expected no bodies after failed spawns, got %d", w.Len())
	}
}

func TestSpawnAssignsSequentialIDs(t *testing.T) {
	w := NewWorld(config.Default())
	for i := 0; i < 3; i++ {
		id, err := w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: half(0.5)}})
		if err != nil {
			t.Fatal(err)
		}
		if id != BodyID(i) {
			t.Errorf("Expected id %d, got %d", i, id)
		}
	}
	if _, ok := w.Body(3); ok {
		t.Error("Expected no body at id 3")
	}
	if _, ok := w.Body(-1); ok {
		t.Error("Expected no body at id -1")
	}
}

func TestCubeSettlesOnGround(t *testing.T) {
	w := NewWorld(config.Default())
	if _, err := w.Spawn(BodyDef{
		Kind:      Static,
		Transform: geometry.NewTransform(vec(0, 0, 0)),
		Shape:     ShapeDef{Box: &rl.Vector3{X: 5, Y: 0.5, Z: 5}},
	}); err != nil {
		t.Fatal(err)
	}
	id, err := w.Spawn(BodyDef{
		Kind:      Dynamic,
		Mass:      3,
		Transform: geometry.NewTransform(vec(-1.5, 7, 0)),
		Shape:     ShapeDef{Box: half(0.5)},
	})
	if err != nil {
		t.Fatal(err)
	}

	resolved := 0
	for i := 0; i < 300; i++ {
		stats := w.Step()
		resolved += stats.Resolved
		if stats.Tick != uint64(i+1) {
			t.Fatalf("Expected tick %d, got %d", i+1, stats.Tick)
		}
	}

	if resolved == 0 {
		t.Fatal("Expected the cube to hit the ground")
	}
	cube, _ := w.Body(id)
	if y := cube.Transform.Position.Y; y < 0.95 || y > 1.05 {
		t.Errorf("Expected the cube to rest on the ground near y=1, got %v", y)
	}
	if cube.Transform.Position.X != -1.5 || cube.Transform.Position.Z != 0 {
		t.Errorf("Expected no sideways drift, got %+v", cube.Transform.Position)
	}
	ground, _ := w.Body(0)
	if ground.Transform.Position != (rl.Vector3{}) {
		t.Errorf("Expected static ground not to move, got %+v", ground.Transform.Position)
	}

	stats := w.Stats()
	if stats.Bodies != 2 || stats.Indexed != 2 || stats.Chunks != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if w.LastPass().Tree == nil {
		t.Error("Expected the last pass to keep its tree")
	}
}

func TestUnresolvedMeshNeverCollides(t *testing.T) {
	w := NewWorld(config.Default())
	meshID, err := w.Spawn(BodyDef{Kind: Static, Shape: ShapeDef{MeshRef: "missing.obj"}})
	if err != nil {
		t.Fatal(err)
	}
	cubeID, _ := w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Transform: geometry.NewTransform(vec(0, 0.2, 0)), Shape: ShapeDef{Box: half(0.5)}})

	src := newFakeSource()
	src.errs["missing.obj"] = geometry.ErrNoPositions

	for i := 0; i < 30; i++ {
		if _, err := w.ResolveMeshes(src); i == 0 && !errors.Is(err, geometry.ErrNoPositions) {
			t.Errorf("Expected the first resolve to report ErrNoPositions, got %v", err)
		}
		w.Step()

		body, _ := w.Body(meshID)
		if len(body.Chunks) != 0 {
			t.Fatalf("Expected unresolved mesh in no chunk, got %v", body.Chunks)
		}
		for _, c := range w.Contacts() {
			if c.A == meshID || c.B == meshID {
				t.Fatalf("Expected unresolved mesh in no contact, got %+v", c)
			}
		}
	}

	if src.calls["missing.obj"] != 1 {
		t.Errorf("Expected a failed mesh to be requested once, got %d", src.calls["missing.obj"])
	}
	if got := w.PendingMeshes(); len(got) != 1 || got[0] != meshID {
		t.Errorf("Expected body %d still pending, got %v", meshID, got)
	}
	cube, _ := w.Body(cubeID)
	if cube.Transform.Position.Y >= 0.2 {
		t.Errorf("Expected the cube to fall through the missing mesh, got y=%v", cube.Transform.Position.Y)
	}
}

func TestResolveMeshesAttachesWhenReady(t *testing.T) {
	w := NewWorld(config.Default())
	meshID, _ := w.Spawn(BodyDef{Kind: Static, Shape: ShapeDef{MeshRef: "floor"}})
	cubeID, _ := w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Transform: geometry.NewTransform(vec(0, 2, 0)), Shape: ShapeDef{Box: half(0.5)}})

	src := newFakeSource()
	if n, err := w.ResolveMeshes(src); n != 0 || err != nil {
		t.Fatalf("Expected nothing attached while loading, got %d, %v", n, err)
	}
	src.meshes["floor"] = quad(5)
	if n, err := w.ResolveMeshes(src); n != 1 || err != nil {
		t.Fatalf("Expected 1 attached mesh, got %d, %v", n, err)
	}
	if len(w.PendingMeshes()) != 0 {
		t.Errorf("Expected no pending meshes, got %v", w.PendingMeshes())
	}
	body, _ := w.Body(meshID)
	if body.MeshRef != "floor" || body.Shape == nil || body.Shape.Kind() != geometry.KindTriangleMesh {
		t.Errorf("Expected mesh collider with its ref kept, got %+v", body)
	}

	hit := false
	for i := 0; i < 120; i++ {
		w.Step()
		for _, c := range w.Contacts() {
			if c.A == meshID && c.B == cubeID {
				hit = true
			}
		}
	}
	if !hit {
		t.Error("Expected the cube to land on the mesh")
	}
	cube, _ := w.Body(cubeID)
	if y := cube.Transform.Position.Y; y < 0.45 || y > 0.55 {
		t.Errorf("Expected the cube to rest on the mesh near y=0.5, got %v", y)
	}
}

func TestAttachMeshErrors(t *testing.T) {
	w := NewWorld(config.Default())
	boxID, _ := w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: half(0.5)}})
	meshID, _ := w.Spawn(BodyDef{Kind: Static, Shape: ShapeDef{MeshRef: "broken"}})

	if err := w.AttachMesh(42, quad(1)); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Expected ErrUnknownBody, got %v", err)
	}
	if err := w.AttachMesh(boxID, quad(1)); !errors.Is(err, ErrNotPending) {
		t.Errorf("Expected ErrNotPending, got %v", err)
	}
	bad := geometry.MeshData{Positions: []rl.Vector3{{}, {X: 1}}, Indices: [][3]uint32{{0, 1, 7}}}
	if err := w.AttachMesh(meshID, bad); err == nil {
		t.Error("Expected out-of-range indices to be rejected")
	}
	if body, _ := w.Body(meshID); !body.Pending() {
		t.Error("Expected the body to stay pending after a failed attach")
	}
}

func TestSetVelocity(t *testing.T) {
	w := NewWorld(config.Default())
	staticID, _ := w.Spawn(BodyDef{Kind: Static, Shape: ShapeDef{Box: half(1)}})
	dynID, _ := w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: half(1)}})

	if err := w.SetVelocity(staticID, vec(1, 0, 0)); !errors.Is(err, ErrStaticMotion) {
		t.Errorf("Expected ErrStaticMotion, got %v", err)
	}
	if err := w.SetVelocity(dynID, vec(1, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if b, _ := w.Body(dynID); b.Velocity.X != 1 {
		t.Errorf("Expected velocity set, got %+v", b.Velocity)
	}
}

func TestResetClearsWorld(t *testing.T) {
	w := NewWorld(config.Default())
	w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: half(1)}})
	w.Step()
	w.Reset()

	if w.Len() != 0 || w.Stats().Tick != 0 || len(w.Contacts()) != 0 {
		t.Errorf("Expected empty world, got %d bodies and stats %+v", w.Len(), w.Stats())
	}
	id, _ := w.Spawn(BodyDef{Kind: Dynamic, Mass: 1, Shape: ShapeDef{Box: half(1)}})
	if id != 0 {
		t.Errorf("Expected ids to restart at 0, got %d", id)
	}
}
