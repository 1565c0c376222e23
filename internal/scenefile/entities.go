package scenefile

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"colony3d/internal/components"
	"colony3d/internal/engine"
	"colony3d/internal/physics"
)

type bodyMapper struct {
	mapper *ecs.Map3[components.RigidBody, components.Transform, components.SceneObject]
}

func newBodyMapper(w *ecs.World) bodyMapper {
	return bodyMapper{mapper: ecs.NewMap3[components.RigidBody, components.Transform, components.SceneObject](w)}
}

func (m bodyMapper) create(b *built) ecs.Entity {
	return m.mapper.NewEntity(
		&components.RigidBody{Body: b.body},
		&components.Transform{Local: b.body.Transform()},
		&components.SceneObject{Object: b.object},
	)
}

type constraintMapper struct {
	mapper *ecs.Map[components.Constraint]
}

func newConstraintMapper(w *ecs.World) constraintMapper {
	return constraintMapper{mapper: ecs.NewMap[components.Constraint](w)}
}

func (m constraintMapper) create(c physics.Constraint, a, b engine.GameObjectRef) ecs.Entity {
	return m.mapper.NewEntity(&components.Constraint{Constraint: c, A: a, B: b})
}

func diagonal(v rl.Vector3) mgl32.Mat3 {
	return mgl32.Diag3(mgl32.Vec3{v.X, v.Y, v.Z})
}

// inertiaFor approximates the inertia tensor of a uniform body filling its
// collider. Capsules and meshes use their bounding box.
func inertiaFor(c *physics.Collider, mass float32, scale rl.Vector3) mgl32.Mat3 {
	if c == nil {
		return mgl32.Ident3()
	}
	switch c.Type {
	case physics.ColliderSphere:
		r := c.Sphere.Radius * max(scale.X, scale.Y, scale.Z)
		return physics.SolidSphereInertia(mass, r)
	case physics.ColliderBox:
		return physics.SolidBoxInertia(mass, rl.Vector3Multiply(rl.Vector3Subtract(c.Box.Max, c.Box.Min), scale))
	case physics.ColliderCapsule:
		s := c.Capsule.Segment
		r := rl.Vector3{X: c.Capsule.Radius, Y: c.Capsule.Radius, Z: c.Capsule.Radius}
		lo := rl.Vector3Subtract(rl.Vector3Min(s.A, s.B), r)
		hi := rl.Vector3Add(rl.Vector3Max(s.A, s.B), r)
		return physics.SolidBoxInertia(mass, rl.Vector3Multiply(rl.Vector3Subtract(hi, lo), scale))
	case physics.ColliderMesh:
		bounds := c.Mesh.Bounds()
		return physics.SolidBoxInertia(mass, rl.Vector3Multiply(rl.Vector3Subtract(bounds.Max, bounds.Min), scale))
	default:
		return mgl32.Ident3()
	}
}
