package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"collide3d/internal/geometry"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type File struct {
	Bodies []BodyDef `yaml:"bodies"`
}

type BodyDef struct {
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Position [3]float32  `yaml:"position"`
	Rotation [3]float32  `yaml:"rotation,omitempty"` // degrees
	Velocity [3]float32  `yaml:"velocity,omitempty"`
	Mass     float32     `yaml:"mass,omitempty"`
	Box      *[3]float32 `yaml:"box,omitempty"` // half extents
	Mesh     string      `yaml:"mesh,omitempty"`
	Color    string      `yaml:"color,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// LookupColor maps a color name to its raylib value; unknown names are white.
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func ColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Default is the built-in level: a static ground slab and one falling cube.
func Default() File {
	return File{Bodies: []BodyDef{
		{
			Name:  "ground",
			Kind:  "static",
			Box:   &[3]float32{5, 0.5, 5},
			Color: "LightGray",
		},
		{
			Name:     "cube",
			Kind:     "dynamic",
			Position: [3]float32{-1.5, 7, 0},
			Mass:     3,
			Box:      &[3]float32{0.5, 0.5, 0.5},
			Color:    "Red",
		},
	}}
}

// --- Loading ---

// Load reads a scene file. An empty path yields Default().
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse scene: %w", err)
	}
	return f, nil
}

// Save writes f as YAML.
func Save(path string, f File) error {
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Physics converts one entry to the spawn contract.
func (d BodyDef) Physics() (physics.BodyDef, error) {
	def := physics.BodyDef{
		Name:      d.Name,
		Transform: geometry.NewTransformEuler(vec3(d.Position), vec3(d.Rotation)),
		Velocity:  vec3(d.Velocity),
		Mass:      d.Mass,
	}

	switch d.Kind {
	case "static":
		def.Kind = physics.Static
	case "dynamic", "":
		def.Kind = physics.Dynamic
	default:
		return physics.BodyDef{}, fmt.Errorf("body %q: unknown kind %q", d.Name, d.Kind)
	}

	if d.Box != nil {
		half := vec3(*d.Box)
		def.Shape.Box = &half
	}
	def.Shape.MeshRef = d.Mesh
	return def, nil
}

// Spawn adds every body of f to w and returns their ids in file order. It
// stops at the first body the world rejects.
func Spawn(w *physics.World, f File) ([]physics.BodyID, error) {
	ids := make([]physics.BodyID, 0, len(f.Bodies))
	for i, b := range f.Bodies {
		def, err := b.Physics()
		if err != nil {
			return ids, fmt.Errorf("scene body %d: %w", i, err)
		}
		id, err := w.Spawn(def)
		if err != nil {
			return ids, fmt.Errorf("scene body %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Capture builds a scene from the current state of w, so a running
// simulation can be saved and reloaded. Colors are taken from colors by id.
func Capture(w *physics.World, colors map[physics.BodyID]rl.Color) File {
	var f File
	w.Each(func(id physics.BodyID, b physics.Body) {
		def := BodyDef{
			Name:     b.Name,
			Kind:     b.Kind.String(),
			Position: [3]float32{b.Transform.Position.X, b.Transform.Position.Y, b.Transform.Position.Z},
			Rotation: eulerDegrees(b.Transform.Rotation),
			Velocity: [3]float32{b.Velocity.X, b.Velocity.Y, b.Velocity.Z},
			Mass:     b.Mass,
			Mesh:     b.MeshRef,
		}
		if shape := b.Shape; shape != nil {
			if box, ok := shape.Box(); ok {
				def.Box = &[3]float32{box.HalfExtents.X, box.HalfExtents.Y, box.HalfExtents.Z}
			}
		}
		if c, ok := colors[id]; ok {
			def.Color = ColorName(c)
		}
		f.Bodies = append(f.Bodies, def)
	})
	return f
}

func eulerDegrees(q rl.Quaternion) [3]float32 {
	if q == (rl.Quaternion{}) {
		return [3]float32{}
	}
	e := rl.QuaternionToEuler(q)
	return [3]float32{e.X * rl.Rad2deg, e.Y * rl.Rad2deg, e.Z * rl.Rad2deg}
}
