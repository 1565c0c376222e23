// Stress test timing each stage of a physics step over random spheres
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"colony3d/internal/components"
	"colony3d/internal/physics"
	"colony3d/internal/systems"
)

var (
	iterations = flag.Int("iterations", 10, "Steps timed per object count")
	seed       = flag.Int64("seed", 42, "Random seed")
)

func main() {
	flag.Parse()

	testCounts := []int{100, 250, 500, 1000, 2000}
	for _, count := range testCounts {
		testStep(count)
	}
}

func spawn(count int, rng *rand.Rand) []*physics.RigidBody {
	bodies := make([]*physics.RigidBody, 0, count+1)

	ground := physics.NewStaticBody()
	ground.SetCollider(physics.NewPlaneCollider(rl.Vector3{Y: 1}, 0))
	bodies = append(bodies, ground)

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(10.0) + float32(count)/50.0
	for i := 0; i < count; i++ {
		radius := 0.25 + rng.Float32()*0.25
		b := physics.NewRigidBody()
		b.SetInertia(physics.SolidSphereInertia(1, radius))
		b.SetPosition(rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * spawnSize,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		})
		b.SetCollider(physics.NewSphereCollider(rl.Vector3Zero(), radius))
		bodies = append(bodies, b)
	}
	return bodies
}

func testStep(count int) {
	rng := rand.New(rand.NewSource(*seed))
	bodies := spawn(count, rng)

	var pairs []physics.Pair
	var manifolds []physics.Manifold

	broadStart := time.Now()
	for i := 0; i < *iterations; i++ {
		pairs = physics.DetectBroad(bodies, pairs[:0])
	}
	broadTime := time.Since(broadStart) / time.Duration(*iterations)

	narrowStart := time.Now()
	for i := 0; i < *iterations; i++ {
		manifolds = physics.DetectNarrow(bodies, pairs, manifolds[:0])
	}
	narrowTime := time.Since(narrowStart) / time.Duration(*iterations)

	// Full step through the ECS system
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.RigidBody, components.Transform](&world)
	for _, b := range bodies {
		mapper.NewEntity(&components.RigidBody{Body: b}, &components.Transform{Local: b.Transform()})
	}
	system := systems.NewPhysicsSystem(&world)
	system.Gravity = rl.Vector3{Y: -9.81}

	system.Update(1.0 / 60.0)
	stepStart := time.Now()
	for i := 0; i < *iterations; i++ {
		system.Update(1.0 / 60.0)
	}
	stepTime := time.Since(stepStart) / time.Duration(*iterations)

	fmt.Printf("%5d bodies: broad %9v (%6d pairs) | narrow %9v (%5d manifolds) | step %9v\n",
		count,
		broadTime.Round(time.Microsecond), len(pairs),
		narrowTime.Round(time.Microsecond), len(manifolds),
		stepTime.Round(time.Microsecond))
}
