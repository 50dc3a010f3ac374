// Package viewer draws a running physics world and lets the user poke it.
package viewer

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"collide3d/internal/assets"
	"collide3d/internal/camera"
	"collide3d/internal/geometry"
	"collide3d/internal/physics"
	"collide3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpawnRef is the mesh reference the viewer uses to draw boxes.
const SpawnRef = assets.BuiltinPrefix + "cube"

// SnapshotPath is where "Save snapshot" writes the current state as a scene.
const SnapshotPath = "snapshot.yaml"

type Viewer struct {
	World   *physics.World
	Library *assets.Library
	Camera  *camera.OrbitCamera
	Stepper *physics.Stepper

	scene  scene.File
	colors map[physics.BodyID]rl.Color

	Paused     bool
	ShowChunks bool
	ShowAABBs  bool
	spawnMass  float32
	selected   physics.BodyID

	frustum Frustum
	drawn   int
	culled  int

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(world *physics.World, lib *assets.Library, sc scene.File) *Viewer {
	return &Viewer{
		World:     world,
		Library:   lib,
		Camera:    camera.New(rl.Vector3{Y: 1}, 18),
		Stepper:   physics.NewStepper(world.Config().Delta(), 5),
		scene:     sc,
		colors:    make(map[physics.BodyID]rl.Color),
		spawnMass: 1,
		selected:  -1,
	}
}

// Load spawns the scene into the world, replacing whatever was there.
func (v *Viewer) Load() error {
	v.World.Reset()
	v.colors = make(map[physics.BodyID]rl.Color)
	v.selected = -1

	ids, err := scene.Spawn(v.World, v.scene)
	for i, id := range ids {
		v.colors[id] = scene.LookupColor(v.scene.Bodies[i].Color)
	}
	return err
}

func (v *Viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "collide3d")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	initRayguiStyle()
	defer v.Library.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()
	}
}

func (v *Viewer) Update() {
	updateStart := time.Now()
	frameTime := rl.GetFrameTime()

	v.Camera.Update(frameTime)

	// Meshes are loaded on this thread; the world picks them up next tick.
	v.Library.Poll()
	if _, err := v.World.ResolveMeshes(v.Library); err != nil {
		log.Printf("Viewer: %v", err)
	}

	if rl.IsKeyPressed(rl.KeyP) {
		v.Paused = !v.Paused
	}
	if rl.IsKeyPressed(rl.KeyC) {
		v.ShowChunks = !v.ShowChunks
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.GetMousePosition().X > panelWidth {
		v.pick()
	}

	if !v.Paused {
		for i := v.Stepper.Advance(frameTime); i > 0; i-- {
			v.World.Step()
		}
	}

	v.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (v *Viewer) pick() {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), v.Camera.GetRaylibCamera())
	hit, ok := v.World.Raycast(ray.Position, ray.Direction, 500)
	if !ok {
		v.selected = -1
		return
	}
	v.selected = hit.Body
}

// SpawnCube drops a dynamic cube above the camera target.
func (v *Viewer) SpawnCube() {
	half := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
	pos := rl.Vector3Add(v.Camera.Target, rl.Vector3{
		X: rand.Float32()*4 - 2,
		Y: 8,
		Z: rand.Float32()*4 - 2,
	})
	rot := rl.Vector3{X: rand.Float32() * 90, Y: rand.Float32() * 90, Z: rand.Float32() * 90}

	id, err := v.World.Spawn(physics.BodyDef{
		Name:      fmt.Sprintf("cube-%d", v.World.Len()),
		Kind:      physics.Dynamic,
		Transform: geometry.NewTransformEuler(pos, rot),
		Mass:      v.spawnMass,
		Shape:     physics.ShapeDef{Box: &half},
	})
	if err != nil {
		log.Printf("Viewer: spawn failed: %v", err)
		return
	}
	v.colors[id] = cubeColors[int(id)%len(cubeColors)]
}

var cubeColors = []rl.Color{rl.Red, rl.Orange, rl.Gold, rl.Lime, rl.SkyBlue, rl.Purple, rl.Pink}
