package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"collide3d/internal/assets"
	"collide3d/internal/config"
	"collide3d/internal/physics"
	"collide3d/internal/scene"
	"collide3d/internal/viewer"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "physics config file (YAML)")
	scenePath := flag.String("scene", "", "scene file (YAML); empty for the built-in level")
	headless := flag.Int("headless", 0, "run this many ticks without a window and print stats")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") && *configPath == config.DefaultPath {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	sc, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	world := physics.NewWorld(cfg)

	if *headless > 0 {
		runHeadless(world, sc, *headless)
		return
	}

	v := viewer.New(world, assets.NewLibrary(), sc)
	if err := v.Load(); err != nil {
		log.Fatalf("scene: %v", err)
	}
	v.Run()
}

// runHeadless steps the world without rendering. Only builtin meshes can be
// resolved here since model files need a GL context.
func runHeadless(world *physics.World, sc scene.File, ticks int) {
	if _, err := scene.Spawn(world, sc); err != nil {
		log.Fatalf("scene: %v", err)
	}
	lib := assets.NewLibraryWithLoader(assets.HeadlessLoader{})

	cfg := world.Config()
	log.Printf("Headless: %d bodies, %d ticks at %.0f Hz", world.Len(), ticks, cfg.TickRate)

	every := uint64(cfg.TickRate)
	if every == 0 {
		every = 1
	}

	var total physics.Stats
	for i := 0; i < ticks; i++ {
		// Two rounds: the first queues requests, Poll loads them.
		world.ResolveMeshes(lib)
		if lib.Poll() > 0 {
			world.ResolveMeshes(lib)
		}

		s := world.Step()
		total.Pairs += s.Pairs
		total.ChunkRejected += s.ChunkRejected
		total.AABBRejected += s.AABBRejected
		total.Resolved += s.Resolved
		total.QueryFailures += s.QueryFailures

		if s.Tick%every == 0 {
			log.Printf("Headless: tick %d, %d chunks, %d pairs, %d resolved", s.Tick, s.Chunks, s.Pairs, s.Resolved)
		}
	}

	log.Printf("Headless: done. pairs=%d chunk-culled=%d aabb-culled=%d resolved=%d failures=%d",
		total.Pairs, total.ChunkRejected, total.AABBRejected, total.Resolved, total.QueryFailures)
	world.Each(func(id physics.BodyID, b physics.Body) {
		p := b.Transform.Position
		log.Printf("Headless: body %d %q %s at (%.3f, %.3f, %.3f) pending=%v",
			id, b.Name, b.Kind, p.X, p.Y, p.Z, b.Pending())
	})
}
