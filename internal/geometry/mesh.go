package geometry

import (
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshData is raw triangle geometry pulled out of a mesh asset, in the
// asset's local space.
type MeshData struct {
	Positions []rl.Vector3
	Indices   [][3]uint32
}

// ExtractMesh reads vertex positions and the index buffer of a raylib mesh.
// Non-indexed meshes are rejected with ErrNoIndices.
func ExtractMesh(mesh rl.Mesh) (MeshData, error) {
	if mesh.Vertices == nil || mesh.VertexCount <= 0 {
		return MeshData{}, ErrNoPositions
	}
	if mesh.Indices == nil || mesh.TriangleCount <= 0 {
		return MeshData{}, ErrNoIndices
	}

	vertices := unsafe.Slice(mesh.Vertices, mesh.VertexCount*3)
	indices := unsafe.Slice(mesh.Indices, mesh.TriangleCount*3)

	data := MeshData{
		Positions: make([]rl.Vector3, mesh.VertexCount),
		Indices:   make([][3]uint32, mesh.TriangleCount),
	}
	for i := range data.Positions {
		data.Positions[i] = rl.Vector3{X: vertices[i*3+0], Y: vertices[i*3+1], Z: vertices[i*3+2]}
	}
	for i := range data.Indices {
		data.Indices[i] = [3]uint32{
			uint32(indices[i*3+0]),
			uint32(indices[i*3+1]),
			uint32(indices[i*3+2]),
		}
	}
	return data, nil
}

// ExtractModel merges every mesh of a model into one MeshData. It fails if
// any of the meshes lacks positions or indices.
func ExtractModel(model rl.Model) (MeshData, error) {
	if model.Meshes == nil || model.MeshCount <= 0 {
		return MeshData{}, ErrNoPositions
	}

	var merged MeshData
	meshes := unsafe.Slice(model.Meshes, model.MeshCount)
	for i, mesh := range meshes {
		data, err := ExtractMesh(mesh)
		if err != nil {
			return MeshData{}, fmt.Errorf("mesh %d: %w", i, err)
		}
		offset := uint32(len(merged.Positions))
		merged.Positions = append(merged.Positions, data.Positions...)
		for _, tri := range data.Indices {
			merged.Indices = append(merged.Indices, [3]uint32{tri[0] + offset, tri[1] + offset, tri[2] + offset})
		}
	}
	return merged, nil
}
