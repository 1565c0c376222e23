package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RigidBody is a simulated body. Momentum is the state that impulses and
// forces act on; velocities are always derived from it during integration.
type RigidBody struct {
	mass           float32
	inverseMass    float32
	inertia        mgl32.Mat3
	inverseInertia mgl32.Mat3

	linearMomentum  rl.Vector3
	angularMomentum rl.Vector3
	linearVelocity  rl.Vector3
	angularVelocity rl.Vector3

	appliedForce  rl.Vector3
	appliedTorque rl.Vector3

	LinearDamping  float32
	AngularDamping float32

	current  Transform
	previous Transform

	collider *Collider
}

// NewRigidBody creates a body of unit mass and identity inertia at the origin.
func NewRigidBody() *RigidBody {
	b := &RigidBody{
		current:  IdentityTransform(),
		previous: IdentityTransform(),
	}
	b.SetMass(1)
	b.SetInertia(mgl32.Ident3())
	return b
}

// NewStaticBody creates a body with zero inverse mass and zero inverse inertia.
func NewStaticBody() *RigidBody {
	b := &RigidBody{
		current:  IdentityTransform(),
		previous: IdentityTransform(),
	}
	b.SetMass(0)
	b.SetInertia(mgl32.Mat3{})
	return b
}

// SetMass sets the mass. A mass of zero makes the body static.
func (b *RigidBody) SetMass(mass float32) {
	b.mass = mass
	if mass != 0 {
		b.inverseMass = 1 / mass
	} else {
		b.inverseMass = 0
	}
}

// SetInertia sets the body-local inertia tensor. A singular tensor yields a
// zero inverse, which locks rotation.
func (b *RigidBody) SetInertia(inertia mgl32.Mat3) {
	b.inertia = inertia
	if inertia.Det() != 0 {
		b.inverseInertia = inertia.Inv()
	} else {
		b.inverseInertia = mgl32.Mat3{}
	}
}

func (b *RigidBody) Mass() float32                  { return b.mass }
func (b *RigidBody) InverseMass() float32           { return b.inverseMass }
func (b *RigidBody) Inertia() mgl32.Mat3            { return b.inertia }
func (b *RigidBody) InverseInertia() mgl32.Mat3     { return b.inverseInertia }
func (b *RigidBody) LinearMomentum() rl.Vector3     { return b.linearMomentum }
func (b *RigidBody) AngularMomentum() rl.Vector3    { return b.angularMomentum }
func (b *RigidBody) LinearVelocity() rl.Vector3     { return b.linearVelocity }
func (b *RigidBody) AngularVelocity() rl.Vector3    { return b.angularVelocity }
func (b *RigidBody) AppliedForce() rl.Vector3       { return b.appliedForce }
func (b *RigidBody) AppliedTorque() rl.Vector3      { return b.appliedTorque }
func (b *RigidBody) Transform() Transform           { return b.current }
func (b *RigidBody) PreviousTransform() Transform   { return b.previous }
func (b *RigidBody) Position() rl.Vector3           { return b.current.Translation }
func (b *RigidBody) Orientation() rl.Quaternion     { return b.current.Rotation }
func (b *RigidBody) Collider() *Collider            { return b.collider }
func (b *RigidBody) SetCollider(collider *Collider) { b.collider = collider }

// IsStatic reports whether the body has infinite mass.
func (b *RigidBody) IsStatic() bool {
	return b.inverseMass == 0
}

// SetTransform sets both the current and previous transform, so the body
// does not interpolate from its old placement.
func (b *RigidBody) SetTransform(t Transform) {
	b.current = t
	b.previous = t
}

// SetPosition moves the current transform without touching the previous one.
func (b *RigidBody) SetPosition(p rl.Vector3) {
	b.current.Translation = p
}

// SetOrientation rotates the current transform without touching the previous one.
func (b *RigidBody) SetOrientation(q rl.Quaternion) {
	b.current.Rotation = q
}

// SetLinearMomentum overwrites linear momentum; velocity follows on the next integration.
func (b *RigidBody) SetLinearMomentum(p rl.Vector3) {
	b.linearMomentum = p
}

// SetAngularMomentum overwrites angular momentum; velocity follows on the next integration.
func (b *RigidBody) SetAngularMomentum(l rl.Vector3) {
	b.angularMomentum = l
}

// SetLinearVelocity sets linear momentum from a velocity and updates the cached velocity.
func (b *RigidBody) SetLinearVelocity(v rl.Vector3) {
	b.linearMomentum = rl.Vector3Scale(v, b.mass)
	b.linearVelocity = rl.Vector3Scale(b.linearMomentum, b.inverseMass)
}

// SetAngularVelocity sets angular momentum from a velocity and updates the cached velocity.
func (b *RigidBody) SetAngularVelocity(w rl.Vector3) {
	b.angularMomentum = mulMat3(b.inertia, w)
	b.angularVelocity = mulMat3(b.inverseInertia, b.angularMomentum)
}

// PointVelocity returns the velocity of a point given relative to the center of mass.
func (b *RigidBody) PointVelocity(r rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(b.linearVelocity, rl.Vector3CrossProduct(b.angularVelocity, r))
}

// ApplyForce accumulates a force acting at a point relative to the center of mass.
func (b *RigidBody) ApplyForce(force, r rl.Vector3) {
	b.appliedForce = rl.Vector3Add(b.appliedForce, force)
	b.appliedTorque = rl.Vector3Add(b.appliedTorque, rl.Vector3CrossProduct(r, force))
}

// ApplyCentralForce accumulates a force acting at the center of mass.
func (b *RigidBody) ApplyCentralForce(force rl.Vector3) {
	b.appliedForce = rl.Vector3Add(b.appliedForce, force)
}

// ApplyTorque accumulates a torque.
func (b *RigidBody) ApplyTorque(torque rl.Vector3) {
	b.appliedTorque = rl.Vector3Add(b.appliedTorque, torque)
}

// ApplyImpulse changes momentum immediately. r is relative to the center of mass.
// Static bodies are unaffected.
func (b *RigidBody) ApplyImpulse(impulse, r rl.Vector3) {
	if b.IsStatic() {
		return
	}
	b.linearMomentum = rl.Vector3Add(b.linearMomentum, impulse)
	b.angularMomentum = rl.Vector3Add(b.angularMomentum, rl.Vector3CrossProduct(r, impulse))
}

// ApplyCentralImpulse changes linear momentum immediately.
func (b *RigidBody) ApplyCentralImpulse(impulse rl.Vector3) {
	if b.IsStatic() {
		return
	}
	b.linearMomentum = rl.Vector3Add(b.linearMomentum, impulse)
}

// ApplyAngularImpulse changes angular momentum immediately.
func (b *RigidBody) ApplyAngularImpulse(impulse rl.Vector3) {
	if b.IsStatic() {
		return
	}
	b.angularMomentum = rl.Vector3Add(b.angularMomentum, impulse)
}

// IntegrateForces folds accumulated force and torque into momentum, applies
// damping, derives velocities and clears the accumulators. Call it before
// IntegrateVelocities.
func (b *RigidBody) IntegrateForces(dt float32) {
	b.linearMomentum = rl.Vector3Add(b.linearMomentum, rl.Vector3Scale(b.appliedForce, dt))
	b.angularMomentum = rl.Vector3Add(b.angularMomentum, rl.Vector3Scale(b.appliedTorque, dt))

	b.linearMomentum = rl.Vector3Scale(b.linearMomentum, max(0, 1-b.LinearDamping*dt))
	b.angularMomentum = rl.Vector3Scale(b.angularMomentum, max(0, 1-b.AngularDamping*dt))

	b.linearVelocity = rl.Vector3Scale(b.linearMomentum, b.inverseMass)
	b.angularVelocity = mulMat3(b.inverseInertia, b.angularMomentum)

	b.appliedForce = rl.Vector3Zero()
	b.appliedTorque = rl.Vector3Zero()
}

// IntegrateVelocities records the previous transform and advances the current
// one by the derived velocities using first-order quaternion integration.
func (b *RigidBody) IntegrateVelocities(dt float32) {
	b.previous = b.current

	b.current.Translation = rl.Vector3Add(b.current.Translation, rl.Vector3Scale(b.linearVelocity, dt))

	w := rl.Vector3Scale(b.angularVelocity, 0.5)
	spin := rl.QuaternionMultiply(rl.NewQuaternion(w.X, w.Y, w.Z, 0), b.current.Rotation)
	b.current.Rotation = rl.QuaternionNormalize(rl.QuaternionAdd(b.current.Rotation, rl.QuaternionScale(spin, dt)))
}

// Integrate runs IntegrateForces then IntegrateVelocities.
func (b *RigidBody) Integrate(dt float32) {
	b.IntegrateForces(dt)
	b.IntegrateVelocities(dt)
}

// Interpolate blends the previous and current transforms. It does not modify the body.
func (b *RigidBody) Interpolate(alpha float32) Transform {
	return Transform{
		Translation: lerp(b.previous.Translation, b.current.Translation, alpha),
		Rotation:    nlerp(b.previous.Rotation, b.current.Rotation, alpha),
		Scale:       lerp(b.previous.Scale, b.current.Scale, alpha),
	}
}

// SolidSphereInertia returns the inertia tensor of a uniform solid sphere.
func SolidSphereInertia(mass, radius float32) mgl32.Mat3 {
	i := 0.4 * mass * radius * radius
	return mgl32.Diag3(mgl32.Vec3{i, i, i})
}

// SolidBoxInertia returns the inertia tensor of a uniform solid box with the given full extents.
func SolidBoxInertia(mass float32, size rl.Vector3) mgl32.Mat3 {
	k := mass / 12
	return mgl32.Diag3(mgl32.Vec3{
		k * (size.Y*size.Y + size.Z*size.Z),
		k * (size.X*size.X + size.Z*size.Z),
		k * (size.X*size.X + size.Y*size.Y),
	})
}
