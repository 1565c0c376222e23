// Headless colony simulation driven by a YAML scene file
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"colony3d/internal/engine"
	"colony3d/internal/physics"
	"colony3d/internal/scenefile"
	"colony3d/internal/scripts"
	"colony3d/internal/systems"
)

var (
	scenePath = flag.String("scene", "assets/scenes/colony.yaml", "Scene file to load")
	duration  = flag.Float64("duration", 10, "Simulated seconds to run")
	frameRate = flag.Float64("fps", 144, "Render rate used to drive interpolation")
	workers   = flag.Int("workers", 0, "Integration workers (0 = one per CPU)")
	verbose   = flag.Bool("verbose", false, "Log periodic step statistics")
	traceMask = flag.Uint("trace-mask", 0, "If set, trace straight down from every ant each second against these layers")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if *frameRate <= 0 {
		return fmt.Errorf("-fps must be positive, got %v", *frameRate)
	}
	if *duration <= 0 {
		return fmt.Errorf("-duration must be positive, got %v", *duration)
	}

	world := ecs.NewWorld()
	loaded, err := scenefile.Load(*scenePath, &world)
	if err != nil {
		return err
	}

	physicsSystem := systems.NewPhysicsSystem(&world)
	physicsSystem.Gravity = loaded.Gravity
	physicsSystem.Verbose = *verbose
	if *workers > 0 {
		physicsSystem.Workers = *workers
	}

	var enters, exits int
	physicsSystem.CollisionEnter.AddListener(func(systems.Collision) { enters++ })
	physicsSystem.CollisionExit.AddListener(func(systems.Collision) { exits++ })

	scene := loaded.Scene
	scene.Start()

	log.Printf("Scene %q: %d objects, %d springs, step %.4fs",
		scene.Name, len(scene.GameObjects), len(loaded.Springs), loaded.Timestep)

	step := loaded.Timestep
	frame := float32(1 / *frameRate)
	total := float32(*duration)

	start := time.Now()
	var simulated, accumulator, nextTrace float32
	var steps, frames int
	for simulated < total {
		// Fixed-step physics, variable-rate presentation
		accumulator += frame
		for accumulator >= step {
			physicsSystem.Update(step)
			accumulator -= step
			simulated += step
			steps++
		}
		physicsSystem.Interpolate(accumulator / step)
		scene.Update(frame)
		frames++

		if *traceMask != 0 && simulated >= nextTrace {
			traceDown(physicsSystem, loaded, uint32(*traceMask))
			nextTrace += 1
		}
	}

	log.Printf("Simulated %.2fs in %d steps / %d frames (%v wall)",
		simulated, steps, frames, time.Since(start).Round(time.Millisecond))
	log.Printf("Contacts: %d began, %d ended", enters, exits)

	for _, g := range scene.FindByTag("ant") {
		p := g.Transform.Position
		log.Printf("  %-10s at (%6.2f, %6.2f, %6.2f)", g.Name, p.X, p.Y, p.Z)
	}
	for _, g := range scene.GameObjects {
		if counter := engine.GetComponent[*scripts.ContactCounter](g); counter != nil {
			log.Printf("  %-10s touching %d (%d began, %d ended)", g.Name, counter.Touching, counter.Enters, counter.Exits)
		}
	}
	return nil
}

func traceDown(s *systems.PhysicsSystem, loaded *scenefile.Loaded, mask uint32) {
	names := make(map[ecs.Entity]string, len(loaded.Entities))
	for name, e := range loaded.Entities {
		names[e] = name
	}
	for _, g := range loaded.Scene.FindByTag("ant") {
		ray := physics.Ray{Origin: g.Transform.Position, Direction: rl.Vector3{Y: -1}}
		hit, ok := s.Trace(ray, loaded.Entities[g.Name], mask)
		if !ok {
			continue
		}
		log.Printf("Trace: %s is %.2f above face %d of %s",
			g.Name, hit.Distance, hit.FaceIndex, names[hit.Entity])
	}
}
