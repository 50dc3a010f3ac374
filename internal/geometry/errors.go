package geometry

import "errors"

var (
	// ErrNoPositions is returned when a mesh asset carries no vertex positions.
	ErrNoPositions = errors.New("geometry: mesh has no vertex positions")
	// ErrNoIndices is returned when a mesh asset carries no index buffer.
	ErrNoIndices = errors.New("geometry: mesh has no index buffer")
	// ErrDegenerate marks shape or transform input no contact can be computed for.
	ErrDegenerate = errors.New("geometry: degenerate input")
	// ErrUnsupportedPair is returned for shape pairs without a contact routine.
	ErrUnsupportedPair = errors.New("geometry: unsupported shape pair")
)
