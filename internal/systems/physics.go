// Package systems contains the ECS systems that drive the simulation.
package systems

import (
	"log"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"colony3d/internal/components"
	"colony3d/internal/engine"
	"colony3d/internal/physics"
)

// Collision describes two entities that started or stopped touching.
// ObjectA and ObjectB are nil for entities without a scene object.
type Collision struct {
	A, B             ecs.Entity
	ObjectA, ObjectB *engine.GameObject
}

// TraceResult is the nearest mesh hit of a ray query.
type TraceResult struct {
	Entity    ecs.Entity
	Point     rl.Vector3
	Normal    rl.Vector3
	Distance  float32
	FaceIndex uint32
}

type entityPair struct {
	a, b ecs.Entity
}

func makeEntityPair(a, b ecs.Entity) entityPair {
	if b.ID() < a.ID() {
		a, b = b, a
	}
	return entityPair{a: a, b: b}
}

// PhysicsSystem steps every entity carrying a RigidBody component.
type PhysicsSystem struct {
	// Gravity is applied as a central force to every dynamic body.
	Gravity rl.Vector3
	// Workers bounds the goroutines used to integrate and interpolate bodies.
	Workers int
	// Verbose logs step statistics periodically.
	Verbose bool

	CollisionEnter engine.EventWithArg[Collision]
	CollisionExit  engine.EventWithArg[Collision]
	Stepped        engine.Event

	world            *ecs.World
	bodyFilter       *ecs.Filter1[components.RigidBody]
	transformFilter  *ecs.Filter2[components.RigidBody, components.Transform]
	sceneFilter      *ecs.Filter2[components.RigidBody, components.SceneObject]
	constraintFilter *ecs.Filter1[components.Constraint]
	sceneMap         *ecs.Map[components.SceneObject]

	bodies    []*physics.RigidBody
	entities  []ecs.Entity
	pairs     []physics.Pair
	manifolds []physics.Manifold

	// Trace gathers separately so queries never disturb the step arena
	traceBodies   []*physics.RigidBody
	traceEntities []ecs.Entity

	touching    []entityPair
	touchingSet map[entityPair]struct{}

	interpolated []interpolationTarget
	steps        uint64
}

type interpolationTarget struct {
	body   *physics.RigidBody
	object *engine.GameObject
}

// NewPhysicsSystem creates a physics system over the entities of w.
func NewPhysicsSystem(w *ecs.World) *PhysicsSystem {
	s := &PhysicsSystem{
		Workers:          runtime.NumCPU(),
		world:            w,
		bodyFilter:       ecs.NewFilter1[components.RigidBody](w),
		transformFilter:  ecs.NewFilter2[components.RigidBody, components.Transform](w),
		sceneFilter:      ecs.NewFilter2[components.RigidBody, components.SceneObject](w),
		constraintFilter: ecs.NewFilter1[components.Constraint](w),
		sceneMap:         ecs.NewMap[components.SceneObject](w),
		touchingSet:      make(map[entityPair]struct{}),
	}
	log.Printf("Physics: system created with %d workers", s.Workers)
	return s
}

// gather appends every body and its entity to the given slices.
func (s *PhysicsSystem) gather(bodies []*physics.RigidBody, entities []ecs.Entity) ([]*physics.RigidBody, []ecs.Entity) {
	query := s.bodyFilter.Query()
	for query.Next() {
		rb := query.Get()
		if rb.Body == nil {
			continue
		}
		bodies = append(bodies, rb.Body)
		entities = append(entities, query.Entity())
	}
	return bodies, entities
}

// Update advances the simulation by dt: broad phase, narrow phase,
// constraints, contact resolution, integration, position correction, then
// transform write-back and contact events.
func (s *PhysicsSystem) Update(dt float32) {
	// Body handles index into this arena until the next step
	s.bodies, s.entities = s.gather(s.bodies[:0], s.entities[:0])

	s.pairs = physics.DetectBroad(s.bodies, s.pairs[:0])
	s.manifolds = physics.DetectNarrow(s.bodies, s.pairs, s.manifolds[:0])

	s.solveConstraints(dt)
	physics.ResolveCollisions(s.bodies, s.manifolds)

	gravity := s.Gravity
	task(s.Workers, s.bodies, func(body *physics.RigidBody) {
		if !body.IsStatic() {
			body.ApplyCentralForce(rl.Vector3Scale(gravity, body.Mass()))
		}
		body.Integrate(dt)
	})

	physics.CorrectPositions(s.bodies, s.manifolds)

	s.writeTransforms()
	s.dispatchContacts()

	s.steps++
	if s.Verbose && s.steps%300 == 0 {
		log.Printf("Physics: step %d, %d bodies, %d pairs, %d manifolds",
			s.steps, len(s.bodies), len(s.pairs), len(s.manifolds))
	}

	s.Stepped.Invoke()
}

func (s *PhysicsSystem) solveConstraints(dt float32) {
	query := s.constraintFilter.Query()
	for query.Next() {
		c := query.Get()
		if c.Constraint != nil {
			c.Constraint.Solve(dt)
		}
	}
}

func (s *PhysicsSystem) writeTransforms() {
	query := s.transformFilter.Query()
	for query.Next() {
		rb, transform := query.Get()
		if rb.Body != nil {
			transform.Local = rb.Body.Transform()
		}
	}
}

// Interpolate blends each body between its last two steps and writes the
// result to its scene object. It must not run during Update.
func (s *PhysicsSystem) Interpolate(alpha float32) {
	s.interpolated = s.interpolated[:0]

	query := s.sceneFilter.Query()
	for query.Next() {
		rb, scene := query.Get()
		if rb.Body == nil || scene.Object == nil {
			continue
		}
		s.interpolated = append(s.interpolated, interpolationTarget{body: rb.Body, object: scene.Object})
	}

	task(s.Workers, s.interpolated, func(target interpolationTarget) {
		t := target.body.Interpolate(alpha)
		target.object.Transform.Position = t.Translation
		target.object.Transform.Rotation = t.Rotation
		target.object.Transform.Scale = t.Scale
	})
}

// Trace returns the nearest mesh collider hit by ray among bodies sharing a
// layer with mask. The ignore entity is never hit; pass the zero entity to
// consider every body.
func (s *PhysicsSystem) Trace(ray physics.Ray, ignore ecs.Entity, mask uint32) (TraceResult, bool) {
	s.traceBodies, s.traceEntities = s.gather(s.traceBodies[:0], s.traceEntities[:0])

	skip := -1
	for i, e := range s.traceEntities {
		if e == ignore {
			skip = i
			break
		}
	}

	index, hit, ok := physics.Trace(s.traceBodies, ray, skip, mask)
	if !ok {
		return TraceResult{}, false
	}
	return TraceResult{
		Entity:    s.traceEntities[index],
		Point:     hit.Point,
		Normal:    hit.Normal,
		Distance:  hit.Distance,
		FaceIndex: hit.FaceIndex,
	}, true
}

// Manifolds returns the manifolds found by the last step. Body handles index
// the arena of that step; use Entity to map them back.
func (s *PhysicsSystem) Manifolds() []physics.Manifold {
	return s.manifolds
}

// Entity returns the entity of a body handle from the last step.
func (s *PhysicsSystem) Entity(h physics.BodyHandle) ecs.Entity {
	return s.entities[h]
}

func (s *PhysicsSystem) dispatchContacts() {
	current := make(map[entityPair]struct{}, len(s.manifolds))
	var entered []entityPair
	for i := range s.manifolds {
		m := &s.manifolds[i]
		pair := makeEntityPair(s.entities[m.BodyA], s.entities[m.BodyB])
		if _, seen := current[pair]; seen {
			continue
		}
		current[pair] = struct{}{}
		if _, was := s.touchingSet[pair]; !was {
			entered = append(entered, pair)
		}
	}

	var exited []entityPair
	next := s.touching[:0:0]
	for _, pair := range s.touching {
		if _, still := current[pair]; still {
			next = append(next, pair)
		} else {
			exited = append(exited, pair)
		}
	}
	next = append(next, entered...)
	s.touching = next
	s.touchingSet = current

	for _, pair := range exited {
		s.notify(pair, false)
	}
	for _, pair := range entered {
		s.notify(pair, true)
	}
}

func (s *PhysicsSystem) sceneObject(e ecs.Entity) *engine.GameObject {
	if !s.world.Alive(e) || !s.sceneMap.Has(e) {
		return nil
	}
	return s.sceneMap.Get(e).Object
}

func (s *PhysicsSystem) notify(pair entityPair, enter bool) {
	c := Collision{A: pair.a, B: pair.b, ObjectA: s.sceneObject(pair.a), ObjectB: s.sceneObject(pair.b)}

	if c.ObjectA != nil {
		c.ObjectA.ForEachCollisionHandler(func(h engine.CollisionHandler) {
			if enter {
				h.OnCollisionEnter(c.ObjectB)
			} else {
				h.OnCollisionExit(c.ObjectB)
			}
		})
	}
	if c.ObjectB != nil {
		c.ObjectB.ForEachCollisionHandler(func(h engine.CollisionHandler) {
			if enter {
				h.OnCollisionEnter(c.ObjectA)
			} else {
				h.OnCollisionExit(c.ObjectA)
			}
		})
	}

	if enter {
		s.CollisionEnter.Invoke(c)
	} else {
		s.CollisionExit.Invoke(c)
	}
}
