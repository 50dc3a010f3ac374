package assets

import (
	"strings"

	"collide3d/internal/geometry"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BuiltinPrefix marks mesh references generated in code instead of loaded
// from disk.
const BuiltinPrefix = "builtin:"

// Builtin sizes. They match the drawing models so what you see is what
// collides.
const (
	cubeSize     = 1.0
	planeSize    = 10.0
	sphereRadius = 0.5
	sphereRings  = 16
	sphereSlices = 16
)

// IsBuiltin reports whether ref names a generated mesh.
func IsBuiltin(ref string) bool {
	return strings.HasPrefix(ref, BuiltinPrefix)
}

// Builtin returns collision geometry for a builtin reference.
func Builtin(ref string) (geometry.MeshData, bool) {
	switch strings.TrimPrefix(ref, BuiltinPrefix) {
	case "cube":
		return cubeData(cubeSize / 2), true
	case "plane":
		return planeData(planeSize / 2), true
	case "sphere":
		return sphereData(sphereRadius, sphereRings, sphereSlices), true
	default:
		return geometry.MeshData{}, false
	}
}

// builtinModel generates the drawing model for a builtin reference. It needs
// a GL context.
func builtinModel(ref string) (rl.Model, bool) {
	switch strings.TrimPrefix(ref, BuiltinPrefix) {
	case "cube":
		return rl.LoadModelFromMesh(rl.GenMeshCube(cubeSize, cubeSize, cubeSize)), true
	case "plane":
		return rl.LoadModelFromMesh(rl.GenMeshPlane(planeSize, planeSize, 1, 1)), true
	case "sphere":
		return rl.LoadModelFromMesh(rl.GenMeshSphere(sphereRadius, sphereRings, sphereSlices)), true
	default:
		return rl.Model{}, false
	}
}

func cubeData(h float32) geometry.MeshData {
	positions := make([]rl.Vector3, 0, 8)
	for i := 0; i < 8; i++ {
		p := rl.Vector3{X: -h, Y: -h, Z: -h}
		if i&1 != 0 {
			p.X = h
		}
		if i&2 != 0 {
			p.Y = h
		}
		if i&4 != 0 {
			p.Z = h
		}
		positions = append(positions, p)
	}
	return geometry.MeshData{
		Positions: positions,
		Indices: [][3]uint32{
			{0, 2, 3}, {0, 3, 1}, // -Z
			{4, 5, 7}, {4, 7, 6}, // +Z
			{0, 4, 6}, {0, 6, 2}, // -X
			{1, 3, 7}, {1, 7, 5}, // +X
			{0, 1, 5}, {0, 5, 4}, // -Y
			{2, 6, 7}, {2, 7, 3}, // +Y
		},
	}
}

func planeData(h float32) geometry.MeshData {
	return geometry.MeshData{
		Positions: []rl.Vector3{
			{X: -h, Z: -h}, {X: h, Z: -h}, {X: h, Z: h}, {X: -h, Z: h},
		},
		Indices: [][3]uint32{{0, 2, 1}, {0, 3, 2}},
	}
}

// sphereData builds a UV sphere with shared pole vertices.
func sphereData(radius float32, rings, slices int) geometry.MeshData {
	var data geometry.MeshData
	data.Positions = append(data.Positions, rl.Vector3{Y: radius})

	for r := 1; r < rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		y := radius * math32.Cos(phi)
		ringRadius := radius * math32.Sin(phi)
		for s := 0; s < slices; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(slices)
			data.Positions = append(data.Positions, rl.Vector3{
				X: ringRadius * math32.Cos(theta),
				Y: y,
				Z: ringRadius * math32.Sin(theta),
			})
		}
	}
	bottom := uint32(len(data.Positions))
	data.Positions = append(data.Positions, rl.Vector3{Y: -radius})

	ring := func(r, s int) uint32 {
		return uint32(1 + (r-1)*slices + s%slices)
	}
	for s := 0; s < slices; s++ {
		data.Indices = append(data.Indices, [3]uint32{0, ring(1, s+1), ring(1, s)})
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < slices; s++ {
			a, b := ring(r, s), ring(r, s+1)
			c, d := ring(r+1, s), ring(r+1, s+1)
			data.Indices = append(data.Indices, [3]uint32{a, b, d}, [3]uint32{a, d, c})
		}
	}
	for s := 0; s < slices; s++ {
		data.Indices = append(data.Indices, [3]uint32{bottom, ring(rings-1, s), ring(rings-1, s+1)})
	}
	return data
}
