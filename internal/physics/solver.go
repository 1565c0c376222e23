package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// DepthThreshold is the penetration left uncorrected to avoid jitter at rest.
	DepthThreshold float32 = 0.01
	// CorrectionFactor is the fraction of the remaining penetration removed per step.
	CorrectionFactor float32 = 0.4
)

// effectiveMass returns the impulse denominator along dir for contact arms rA and rB.
func effectiveMass(a, b *RigidBody, rA, rB, dir rl.Vector3) float32 {
	angularA := rl.Vector3CrossProduct(mulMat3(a.InverseInertia(), rl.Vector3CrossProduct(rA, dir)), rA)
	angularB := rl.Vector3CrossProduct(mulMat3(b.InverseInertia(), rl.Vector3CrossProduct(rB, dir)), rB)
	return a.InverseMass() + b.InverseMass() + rl.Vector3DotProduct(rl.Vector3Add(angularA, angularB), dir)
}

// ResolveCollisions applies one pass of restitution and friction impulses to
// every contact, in manifold order. The impulse of each contact is divided
// evenly across the contacts of its manifold.
func ResolveCollisions(bodies []*RigidBody, manifolds []Manifold) {
	for i := range manifolds {
		m := &manifolds[i]
		if m.ContactCount == 0 {
			continue
		}
		a, b := bodies[m.BodyA], bodies[m.BodyB]
		restitution, staticFriction, dynamicFriction := combineMaterials(&a.Collider().Material, &b.Collider().Material)
		scale := 1 / float32(m.ContactCount)

		for _, c := range m.ContactList() {
			rA := rl.Vector3Subtract(c.Point, a.Position())
			rB := rl.Vector3Subtract(c.Point, b.Position())
			relative := rl.Vector3Subtract(b.PointVelocity(rB), a.PointVelocity(rA))

			normalSpeed := rl.Vector3DotProduct(relative, c.Normal)
			if normalSpeed > 0 {
				continue
			}

			denom := effectiveMass(a, b, rA, rB, c.Normal)
			if denom == 0 {
				continue
			}
			reaction := -(1 + restitution) * normalSpeed / denom * scale

			a.ApplyImpulse(rl.Vector3Scale(c.Normal, -reaction), rA)
			b.ApplyImpulse(rl.Vector3Scale(c.Normal, reaction), rB)

			tangent := rl.Vector3Subtract(relative, rl.Vector3Scale(c.Normal, normalSpeed))
			if lengthSqr(tangent) > 0 {
				tangent = rl.Vector3Normalize(tangent)
			}

			friction := rl.Vector3DotProduct(relative, rl.Vector3Negate(tangent)) / effectiveMass(a, b, rA, rB, tangent) * scale
			if absf(friction) >= reaction*staticFriction {
				friction = -reaction * dynamicFriction
			}

			a.ApplyImpulse(rl.Vector3Scale(tangent, -friction), rA)
			b.ApplyImpulse(rl.Vector3Scale(tangent, friction), rB)
		}
	}
}

// CorrectPositions pushes interpenetrating bodies apart along each contact
// normal, shared in proportion to inverse mass. Momentum is left untouched.
func CorrectPositions(bodies []*RigidBody, manifolds []Manifold) {
	for i := range manifolds {
		m := &manifolds[i]
		a, b := bodies[m.BodyA], bodies[m.BodyB]
		sumInverseMass := a.InverseMass() + b.InverseMass()
		if sumInverseMass == 0 {
			continue
		}

		for _, c := range m.ContactList() {
			amount := max(0, c.Depth-DepthThreshold) / sumInverseMass * CorrectionFactor
			correction := rl.Vector3Scale(c.Normal, amount)
			a.SetPosition(rl.Vector3Subtract(a.Position(), rl.Vector3Scale(correction, a.InverseMass())))
			b.SetPosition(rl.Vector3Add(b.Position(), rl.Vector3Scale(correction, b.InverseMass())))
		}
	}
}
