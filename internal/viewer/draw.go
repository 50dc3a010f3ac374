package viewer

import (
	"fmt"
	"time"

	"collide3d/internal/octree"
	"collide3d/internal/physics"
	"collide3d/internal/scene"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const panelWidth = 220

var (
	colorBgDark    = rl.NewColor(24, 24, 32, 255)
	colorBgElement = rl.NewColor(40, 40, 54, 255)
	colorBgHover   = rl.NewColor(55, 55, 75, 255)
	colorAccent    = rl.NewColor(99, 102, 241, 255)
	colorText      = rl.NewColor(220, 220, 230, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (v *Viewer) Draw() {
	camera := v.Camera.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	v.frustum = NewFrustum(camera, aspect)
	v.drawn, v.culled = 0, 0

	rl.BeginMode3D(camera)
	rl.DrawGrid(20, 1)
	v.World.Each(v.drawBody)
	if v.ShowChunks {
		v.drawChunks()
	}
	rl.EndMode3D()
	v.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	v.DrawUI()
	rl.EndDrawing()
}

func (v *Viewer) drawBody(id physics.BodyID, b physics.Body) {
	color, ok := v.colors[id]
	if !ok {
		color = rl.White
	}
	if b.Shape == nil {
		return
	}
	if box, ok := b.AABB(); ok && !v.frustum.ContainsAABB(box) {
		v.culled++
		return
	}
	v.drawn++

	rotation := rl.QuaternionToMatrix(b.Transform.Rotation)
	if b.Transform.Rotation == (rl.Quaternion{}) {
		rotation = rl.MatrixIdentity()
	}

	var model rl.Model
	if box, isBox := b.Shape.Box(); isBox {
		cube, ok := v.Library.Model(SpawnRef)
		if !ok {
			return
		}
		// Scale the unit cube before rotating it.
		h := box.HalfExtents
		cube.Transform = rl.MatrixMultiply(rl.MatrixScale(2*h.X, 2*h.Y, 2*h.Z), rotation)
		model = cube
	} else {
		m, ok := v.Library.Model(b.MeshRef)
		if !ok {
			return
		}
		m.Transform = rotation
		model = m
	}

	rl.DrawModel(model, b.Transform.Position, 1, color)
	if id == v.selected {
		rl.DrawModelWires(model, b.Transform.Position, 1.01, rl.Yellow)
	} else {
		rl.DrawModelWires(model, b.Transform.Position, 1, rl.Fade(rl.Black, 0.4))
	}

	if v.ShowAABBs {
		if box, ok := b.AABB(); ok {
			rl.DrawBoundingBox(box.BoundingBox(), rl.Fade(rl.Green, 0.6))
		}
	}
}

// drawChunks outlines every leaf that holds at least one body.
func (v *Viewer) drawChunks() {
	pass := v.World.LastPass()
	if pass.Tree == nil {
		return
	}
	pass.Tree.Leaves(func(n octree.Node) {
		if len(n.Members) == 0 {
			return
		}
		rl.DrawBoundingBox(n.Bounds.BoundingBox(), rl.Fade(colorAccent, 0.5))
	})
}

func (v *Viewer) DrawUI() {
	rl.DrawRectangle(0, 0, panelWidth, int32(rl.GetScreenHeight()), rl.Fade(colorBgDark, 0.9))

	x, y := float32(10), float32(10)
	row := func(h float32) rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: panelWidth - 20, Height: h}
		y += h + 6
		return r
	}

	v.Paused = gui.CheckBox(rl.Rectangle{X: x, Y: row(18).Y, Width: 18, Height: 18}, "Paused (P)", v.Paused)
	v.ShowChunks = gui.CheckBox(rl.Rectangle{X: x, Y: row(18).Y, Width: 18, Height: 18}, "Chunks (C)", v.ShowChunks)
	v.ShowAABBs = gui.CheckBox(rl.Rectangle{X: x, Y: row(18).Y, Width: 18, Height: 18}, "AABBs", v.ShowAABBs)

	if gui.Button(row(26), "Step") && v.Paused {
		v.World.Step()
	}
	if gui.Button(row(26), "Spawn cube") {
		v.SpawnCube()
	}
	sliderBounds := row(18)
	sliderBounds.Width -= 50
	v.spawnMass = gui.Slider(sliderBounds, "", fmt.Sprintf("%.1f kg", v.spawnMass), v.spawnMass, 0.1, 10)
	if gui.Button(row(26), "Reset scene") {
		if err := v.Load(); err != nil {
			fmt.Printf("Warning: failed to reload scene: %v\n", err)
		}
	}
	if gui.Button(row(26), "Save snapshot") {
		if err := scene.Save(SnapshotPath, scene.Capture(v.World, v.colors)); err != nil {
			fmt.Printf("Warning: failed to save snapshot: %v\n", err)
		}
	}

	y += 10
	stats := v.World.Stats()
	lines := []string{
		fmt.Sprintf("Tick:     %d", stats.Tick),
		fmt.Sprintf("Bodies:   %d (%d indexed)", stats.Bodies, stats.Indexed),
		fmt.Sprintf("Pending:  %d meshes", len(v.World.PendingMeshes())),
		fmt.Sprintf("Chunks:   %d", stats.Chunks),
		fmt.Sprintf("Pairs:    %d", stats.Pairs),
		fmt.Sprintf("Culled:   %d chunk / %d aabb", stats.ChunkRejected, stats.AABBRejected),
		fmt.Sprintf("Resolved: %d", stats.Resolved),
		fmt.Sprintf("Failures: %d", stats.QueryFailures),
		fmt.Sprintf("Drawn:    %d (%d culled)", v.drawn, v.culled),
		fmt.Sprintf("Update:   %.2f ms", v.updateMs),
		fmt.Sprintf("Draw:     %.2f ms", v.drawMs),
	}
	for _, line := range lines {
		rl.DrawText(line, int32(x), int32(y), 14, colorText)
		y += 18
	}

	if v.selected >= 0 {
		if b, ok := v.World.Body(v.selected); ok {
			y += 10
			p, vel := b.Transform.Position, b.Velocity
			rl.DrawText(fmt.Sprintf("#%d %s (%s)", v.selected, b.Name, b.Kind), int32(x), int32(y), 14, rl.Yellow)
			rl.DrawText(fmt.Sprintf("pos %.2f %.2f %.2f", p.X, p.Y, p.Z), int32(x), int32(y+18), 14, colorText)
			rl.DrawText(fmt.Sprintf("vel %.2f %.2f %.2f", vel.X, vel.Y, vel.Z), int32(x), int32(y+36), 14, colorText)
			rl.DrawText(fmt.Sprintf("chunks %v", b.Chunks), int32(x), int32(y+54), 14, colorText)
		}
	}

	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
}
