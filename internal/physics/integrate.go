package physics

import (
	"collide3d/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// gravityTerm is the per-tick decrease of vertical speed for a body of the
// given mass.
func gravityTerm(cfg config.Config, mass float32) float32 {
	if cfg.GravityMode == config.GravityLegacy {
		return mass / cfg.Gravity
	}
	return cfg.Gravity * cfg.Delta()
}

// Integrate applies gravity to every dynamic body, clamps the fall speed at
// the terminal velocity and advances positions by one tick. Static bodies and
// bodies still waiting for their mesh are not touched.
func Integrate(bodies []Body, cfg config.Config) {
	dt := cfg.Delta()
	for i := range bodies {
		b := &bodies[i]
		if b.Kind != Dynamic || b.Pending() {
			continue
		}

		b.Velocity.Y -= gravityTerm(cfg, b.Mass)
		if b.Velocity.Y < -cfg.TerminalVelocity {
			b.Velocity.Y = -cfg.TerminalVelocity
		}

		b.Transform.Position = rl.Vector3Add(b.Transform.Position, rl.Vector3Scale(b.Velocity, dt))
	}
}
