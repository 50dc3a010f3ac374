package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABB creates an AABB from two corners given in any order.
func NewAABB(a, b rl.Vector3) AABB {
	return AABB{Min: vector3Min(a, b), Max: vector3Max(a, b)}
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// emptyAABB is the identity for Extend: any point extends it to itself.
func emptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: rl.Vector3{X: inf, Y: inf, Z: inf},
		Max: rl.Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows the box to include p.
func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: vector3Min(a.Min, p), Max: vector3Max(a.Max, p)}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: vector3Min(a.Min, b.Min), Max: vector3Max(a.Max, b.Max)}
}

// Intersects reports whether the boxes overlap. Touching faces count as overlapping.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Expand grows the box by d on every side.
func (a AABB) Expand(d float32) AABB {
	pad := rl.Vector3{X: d, Y: d, Z: d}
	return AABB{Min: rl.Vector3Subtract(a.Min, pad), Max: rl.Vector3Add(a.Max, pad)}
}

// Contains reports whether b lies entirely inside a.
func (a AABB) Contains(b AABB) bool {
	return a.Min.X <= b.Min.X && a.Max.X >= b.Max.X &&
		a.Min.Y <= b.Min.Y && a.Max.Y >= b.Max.Y &&
		a.Min.Z <= b.Min.Z && a.Max.Z >= b.Max.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Volume is zero for flat or inverted boxes.
func (a AABB) Volume() float32 {
	s := a.Size()
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		return 0
	}
	return s.X * s.Y * s.Z
}

// Valid reports whether Min <= Max on every axis and no coordinate is NaN.
func (a AABB) Valid() bool {
	if !finiteVector(a.Min) || !finiteVector(a.Max) {
		return false
	}
	return a.Min.X <= a.Max.X && a.Min.Y <= a.Max.Y && a.Min.Z <= a.Max.Z
}

// Octants splits the box at its center into eight children. Bit 0 of the
// index selects the upper X half, bit 1 the upper Z half, bit 2 the upper Y half.
func (a AABB) Octants() [8]AABB {
	c := a.Center()
	var out [8]AABB
	for i := range out {
		lo, hi := a.Min, c
		if i&1 != 0 {
			lo.X, hi.X = c.X, a.Max.X
		}
		if i&2 != 0 {
			lo.Z, hi.Z = c.Z, a.Max.Z
		}
		if i&4 != 0 {
			lo.Y, hi.Y = c.Y, a.Max.Y
		}
		out[i] = AABB{Min: lo, Max: hi}
	}
	return out
}

// BoundingBox converts to the raylib type used by the drawing helpers.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.BoundingBox{Min: a.Min, Max: a.Max}
}
