// Package assets loads mesh assets for the viewer and serves their collision
// geometry to the physics world.
package assets

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"collide3d/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrUnknownBuiltin = errors.New("assets: unknown builtin mesh")
	ErrNoWindow       = errors.New("assets: model files need a window")
)

// Loader reads model files. The default loader calls raylib and must run on
// the thread that owns the GL context.
type Loader interface {
	Load(path string) (rl.Model, error)
	Unload(model rl.Model)
}

type raylibLoader struct{}

func (raylibLoader) Load(path string) (rl.Model, error) {
	// raylib falls back to a cube for missing files, so check first.
	if _, err := os.Stat(path); err != nil {
		return rl.Model{}, fmt.Errorf("load model: %w", err)
	}
	return rl.LoadModel(path), nil
}

func (raylibLoader) Unload(model rl.Model) {
	rl.UnloadModel(model)
}

// HeadlessLoader refuses model files. Builtin meshes still resolve, so
// scenes made of them run without a GL context.
type HeadlessLoader struct{}

func (HeadlessLoader) Load(path string) (rl.Model, error) {
	return rl.Model{}, fmt.Errorf("%q: %w", path, ErrNoWindow)
}

func (HeadlessLoader) Unload(rl.Model) {}

// Library resolves mesh references. Mesh only queues a request; Poll does
// the loading, so the physics world can ask from anywhere while files are
// read on the main thread.
type Library struct {
	loader Loader

	models  map[string]rl.Model // loaded from disk, owned by loader
	drawn   map[string]rl.Model // builtin drawing models
	meshes  map[string]geometry.MeshData
	errs    map[string]error
	pending map[string]bool
}

// NewLibrary returns a library backed by raylib.
func NewLibrary() *Library {
	return NewLibraryWithLoader(raylibLoader{})
}

func NewLibraryWithLoader(loader Loader) *Library {
	return &Library{
		loader:  loader,
		models:  make(map[string]rl.Model),
		drawn:   make(map[string]rl.Model),
		meshes:  make(map[string]geometry.MeshData),
		errs:    make(map[string]error),
		pending: make(map[string]bool),
	}
}

// Mesh returns the collision geometry for ref once it has been polled. The
// first call for a ref queues it and reports not ready.
func (l *Library) Mesh(ref string) (geometry.MeshData, bool, error) {
	if err, failed := l.errs[ref]; failed {
		return geometry.MeshData{}, false, err
	}
	if data, ok := l.meshes[ref]; ok {
		return data, true, nil
	}
	l.pending[ref] = true
	return geometry.MeshData{}, false, nil
}

// Pending is the number of queued references.
func (l *Library) Pending() int {
	return len(l.pending)
}

// Poll loads every queued reference and returns how many succeeded.
func (l *Library) Poll() int {
	if len(l.pending) == 0 {
		return 0
	}

	refs := make([]string, 0, len(l.pending))
	for ref := range l.pending {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	loaded := 0
	for _, ref := range refs {
		delete(l.pending, ref)
		data, err := l.load(ref)
		if err != nil {
			l.errs[ref] = err
			log.Printf("Assets: %s: %v", ref, err)
			continue
		}
		l.meshes[ref] = data
		loaded++
	}
	if loaded > 0 {
		log.Printf("Assets: loaded %d meshes", loaded)
	}
	return loaded
}

func (l *Library) load(ref string) (geometry.MeshData, error) {
	if IsBuiltin(ref) {
		data, ok := Builtin(ref)
		if !ok {
			return geometry.MeshData{}, fmt.Errorf("%q: %w", ref, ErrUnknownBuiltin)
		}
		return data, nil
	}

	model, exists := l.models[ref]
	if !exists {
		var err error
		model, err = l.loader.Load(ref)
		if err != nil {
			return geometry.MeshData{}, err
		}
		l.models[ref] = model
	}

	data, err := geometry.ExtractModel(model)
	if err != nil {
		return geometry.MeshData{}, fmt.Errorf("extract %q: %w", ref, err)
	}
	return data, nil
}

// Model returns the drawing model for ref. File models are available after
// Poll loaded them; builtin models are generated on first use and need a GL
// context.
func (l *Library) Model(ref string) (rl.Model, bool) {
	if model, ok := l.models[ref]; ok {
		return model, true
	}
	if model, ok := l.drawn[ref]; ok {
		return model, true
	}
	if !IsBuiltin(ref) {
		return rl.Model{}, false
	}
	model, ok := builtinModel(ref)
	if ok {
		l.drawn[ref] = model
	}
	return model, ok
}

// Unload frees every model and forgets all loaded and failed references.
func (l *Library) Unload() {
	for _, model := range l.models {
		l.loader.Unload(model)
	}
	for _, model := range l.drawn {
		rl.UnloadModel(model)
	}

	l.models = make(map[string]rl.Model)
	l.drawn = make(map[string]rl.Model)
	l.meshes = make(map[string]geometry.MeshData)
	l.errs = make(map[string]error)
	l.pending = make(map[string]bool)
}
