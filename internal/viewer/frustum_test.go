package viewer

import (
	"testing"

	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func lookingDownZ() Frustum {
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	return NewFrustum(cam, 16.0/9.0)
}

func unitBox(x, y, z float32) geometry.AABB {
	return geometry.NewAABBFromCenter(rl.Vector3{X: x, Y: y, Z: z}, rl.Vector3{X: 1, Y: 1, Z: 1})
}

func TestFrustumContainsTarget(t *testing.T) {
	f := lookingDownZ()

	if !f.ContainsPoint(rl.Vector3{}) {
		t.Error("Expected the camera target inside the frustum")
	}
	if !f.ContainsAABB(unitBox(0, 0, 0)) {
		t.Error("Expected a box at the target to be visible")
	}
}

func TestFrustumRejectsBehindAndBeside(t *testing.T) {
	f := lookingDownZ()

	tests := []struct {
		name string
		box  geometry.AABB
	}{
		{"behind camera", unitBox(0, 0, 20)},
		{"far left", unitBox(-100, 0, 0)},
		{"far above", unitBox(0, 100, 0)},
		{"beyond far plane", unitBox(0, 0, -2000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f.ContainsAABB(tt.box) {
				t.Errorf("Expected %v to be culled", tt.box)
			}
		})
	}
}

func TestFrustumKeepsStraddlingBox(t *testing.T) {
	f := lookingDownZ()

	// Reaches from behind the camera to in front of it.
	box := geometry.NewAABB(rl.Vector3{X: -1, Y: -1, Z: 5}, rl.Vector3{X: 1, Y: 1, Z: 15})
	if !f.ContainsAABB(box) {
		t.Error("Expected a box crossing the near plane to be visible")
	}
}
