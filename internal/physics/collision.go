package physics

import (
	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// resolveContact separates a and b along the contact normal and removes the
// approaching part of their velocity. The normal points from a toward b.
// It reports which of the two bodies moved.
func resolveContact(a, b *Body, c geometry.Contact, restitution float32) (movedA, movedB bool) {
	depth := -c.Distance
	if depth < 0 {
		depth = 0
	}

	switch {
	case a.Kind == Static && b.Kind == Static:
		return false, false

	case a.Kind == Static:
		pushOut(b, c.Normal, depth, restitution)
		return false, true

	case b.Kind == Static:
		pushOut(a, rl.Vector3Negate(c.Normal), depth, restitution)
		return true, false

	default:
		resolveDynamicPair(a, b, c.Normal, depth, restitution)
		return true, true
	}
}

// pushOut moves a single dynamic body by depth along s, the direction away
// from the static body, and reflects its velocity if it still moves into it.
func pushOut(b *Body, s rl.Vector3, depth, restitution float32) {
	b.Transform.Position = rl.Vector3Add(b.Transform.Position, rl.Vector3Scale(s, depth))

	vs := rl.Vector3DotProduct(b.Velocity, s)
	if vs < 0 {
		b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(s, (1+restitution)*vs))
	}
}

// resolveDynamicPair splits the correction by mass so the heavier body moves
// less, then applies an impulse along n if the bodies approach each other.
func resolveDynamicPair(a, b *Body, n rl.Vector3, depth, restitution float32) {
	totalMass := a.Mass + b.Mass
	ratioA := b.Mass / totalMass
	ratioB := a.Mass / totalMass

	a.Transform.Position = rl.Vector3Subtract(a.Transform.Position, rl.Vector3Scale(n, depth*ratioA))
	b.Transform.Position = rl.Vector3Add(b.Transform.Position, rl.Vector3Scale(n, depth*ratioB))

	// Relative velocity along the normal; negative means closing.
	vn := rl.Vector3DotProduct(rl.Vector3Subtract(b.Velocity, a.Velocity), n)
	if vn >= 0 {
		return
	}

	j := -(1 + restitution) * vn
	j /= 1/a.Mass + 1/b.Mass

	a.Velocity = rl.Vector3Subtract(a.Velocity, rl.Vector3Scale(n, j/a.Mass))
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(n, j/b.Mass))
}
