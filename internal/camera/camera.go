package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Yaw and Pitch are in degrees.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
	ZoomSpeed float32

	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		Yaw:         -135.0,
		Pitch:       30.0,
		MoveSpeed:   8.0, // Units per second
		LookSpeed:   0.3,
		ZoomSpeed:   1.5,
		MinDistance: 2,
		MaxDistance: 150,
	}
}

// Update reads mouse and keyboard input: right drag orbits, the wheel zooms
// and WASD/QE move the target.
func (c *OrbitCamera) Update(deltaTime float32) {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		c.Orbit(d.X*c.LookSpeed, d.Y*c.LookSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(-wheel * c.ZoomSpeed)
	}

	var move rl.Vector3
	if rl.IsKeyDown(rl.KeyW) {
		move.Z += 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		move.Z -= 1
	}
	if rl.IsKeyDown(rl.KeyD) {
		move.X += 1
	}
	if rl.IsKeyDown(rl.KeyA) {
		move.X -= 1
	}
	if rl.IsKeyDown(rl.KeyE) {
		move.Y += 1
	}
	if rl.IsKeyDown(rl.KeyQ) {
		move.Y -= 1
	}
	if move != (rl.Vector3{}) {
		c.Pan(rl.Vector3Scale(rl.Vector3Normalize(move), c.MoveSpeed*deltaTime))
	}
}

// Orbit turns the camera around the target. Pitch stays within ±89°.
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Pan moves the target in view space: X is right, Y is up, Z is forward
// along the ground.
func (c *OrbitCamera) Pan(delta rl.Vector3) {
	forward, right := c.getDirections()
	c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(forward, delta.Z))
	c.Target = rl.Vector3Add(c.Target, rl.Vector3Scale(right, delta.X))
	c.Target.Y += delta.Y
}

// getDirections returns the horizontal forward and right vectors.
func (c *OrbitCamera) getDirections() (forward, right rl.Vector3) {
	yawRad := c.Yaw * rl.Deg2rad
	// The camera looks from Position toward Target, the opposite of the offset.
	forward = rl.Vector3{X: -math32.Cos(yawRad), Z: -math32.Sin(yawRad)}
	right = rl.Vector3{X: -forward.Z, Z: forward.X}
	return
}

// Position is the eye point on the orbit sphere.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := c.Yaw * rl.Deg2rad
	pitchRad := c.Pitch * rl.Deg2rad
	offset := rl.Vector3{
		X: math32.Cos(yawRad) * math32.Cos(pitchRad),
		Y: math32.Sin(pitchRad),
		Z: math32.Sin(yawRad) * math32.Cos(pitchRad),
	}
	return rl.Vector3Add(c.Target, rl.Vector3Scale(offset, c.Distance))
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
