// Package components holds the ECS component types shared by the systems.
package components

import (
	"colony3d/internal/engine"
	"colony3d/internal/physics"
)

// RigidBody owns the simulated body of an entity.
type RigidBody struct {
	Body *physics.RigidBody
}

// Transform receives the body's current transform after every physics step.
type Transform struct {
	Local physics.Transform
}

// SceneObject links an entity to its node in the scene graph. Interpolated
// transforms and collision callbacks are delivered through it.
type SceneObject struct {
	Object *engine.GameObject
}

// Constraint holds a constraint solved once per physics step. A and B name
// the scene objects it connects, when known.
type Constraint struct {
	Constraint physics.Constraint
	A, B       engine.GameObjectRef
}
