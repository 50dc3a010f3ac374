package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// axisEpsilon is the length below which a candidate separating axis is
// treated as degenerate (parallel edges, zero-area triangles).
const axisEpsilon = 1e-4

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Min(a.X, b.X),
		Y: math32.Min(a.Y, b.Y),
		Z: math32.Min(a.Z, b.Z),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Max(a.X, b.X),
		Y: math32.Max(a.Y, b.Y),
		Z: math32.Max(a.Z, b.Z),
	}
}

func getAxisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func finiteVector(v rl.Vector3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// normalizeAxis returns the unit axis, or false when it is too short to
// separate anything.
func normalizeAxis(axis rl.Vector3) (rl.Vector3, bool) {
	length := rl.Vector3Length(axis)
	if length < axisEpsilon {
		return rl.Vector3{}, false
	}
	return rl.Vector3Scale(axis, 1/length), true
}
