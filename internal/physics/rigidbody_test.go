package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= epsilon
}

func vecApprox(a, b rl.Vector3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func quatApprox(a, b rl.Quaternion) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z) && approx(a.W, b.W)
}

func TestIntegrateForcesWithoutInputKeepsMomentum(t *testing.T) {
	b := NewRigidBody()
	b.SetInertia(SolidBoxInertia(1, rl.Vector3{X: 1, Y: 2, Z: 3}))
	linear := rl.Vector3{X: 1, Y: -2, Z: 3}
	angular := rl.Vector3{X: 0.5, Y: 0.25, Z: -1}
	b.SetLinearMomentum(linear)
	b.SetAngularMomentum(angular)

	for i := 0; i < 10; i++ {
		b.IntegrateForces(0.016)
		if b.LinearMomentum() != linear {
			t.Fatalf("step %d: linear momentum changed to %v", i, b.LinearMomentum())
		}
		if b.AngularMomentum() != angular {
			t.Fatalf("step %d: angular momentum changed to %v", i, b.AngularMomentum())
		}
	}
}

func TestIntegrateForcesAppliesAndClearsAccumulators(t *testing.T) {
	b := NewRigidBody()
	b.SetMass(2)
	b.ApplyForce(rl.Vector3{Y: 10}, rl.Vector3{X: 1})

	b.IntegrateForces(0.5)

	if !vecApprox(b.LinearMomentum(), rl.Vector3{Y: 5}) {
		t.Errorf("linear momentum = %v, want (0,5,0)", b.LinearMomentum())
	}
	// torque = r x F = (1,0,0) x (0,10,0) = (0,0,10)
	if !vecApprox(b.AngularMomentum(), rl.Vector3{Z: 5}) {
		t.Errorf("angular momentum = %v, want (0,0,5)", b.AngularMomentum())
	}
	if !vecApprox(b.LinearVelocity(), rl.Vector3{Y: 2.5}) {
		t.Errorf("linear velocity = %v, want (0,2.5,0)", b.LinearVelocity())
	}
	if b.AppliedForce() != rl.Vector3Zero() || b.AppliedTorque() != rl.Vector3Zero() {
		t.Error("accumulators should be cleared after IntegrateForces")
	}
}

func TestIntegrateForcesDamping(t *testing.T) {
	b := NewRigidBody()
	b.LinearDamping = 0.5
	b.AngularDamping = 20
	b.SetLinearMomentum(rl.Vector3{X: 10})
	b.SetAngularMomentum(rl.Vector3{X: 10})

	b.IntegrateForces(0.1)

	if !vecApprox(b.LinearMomentum(), rl.Vector3{X: 9.5}) {
		t.Errorf("linear momentum = %v, want (9.5,0,0)", b.LinearMomentum())
	}
	// 1 - 20*0.1 is negative, clamped to zero
	if b.AngularMomentum() != rl.Vector3Zero() {
		t.Errorf("angular momentum = %v, want zero", b.AngularMomentum())
	}
}

func TestIntegrateVelocities(t *testing.T) {
	b := NewRigidBody()
	b.SetPosition(rl.Vector3{X: 1})
	b.SetLinearVelocity(rl.Vector3{Y: 2})
	b.SetAngularVelocity(rl.Vector3{Y: 1})

	before := b.Transform()
	b.Integrate(0.01)

	if b.PreviousTransform() != before {
		t.Errorf("previous transform = %v, want %v", b.PreviousTransform(), before)
	}
	if !vecApprox(b.Position(), rl.Vector3{X: 1, Y: 0.02}) {
		t.Errorf("position = %v, want (1,0.02,0)", b.Position())
	}
	want := rl.QuaternionNormalize(rl.Quaternion{Y: 0.005, W: 1})
	if !quatApprox(b.Orientation(), want) {
		t.Errorf("orientation = %v, want %v", b.Orientation(), want)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	b := NewRigidBody()
	b.SetTransform(Transform{
		Translation: rl.Vector3{X: 0.3, Y: 1.7, Z: -2.1},
		Rotation:    rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, 0.4),
		Scale:       rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5},
	})
	b.SetLinearVelocity(rl.Vector3{X: 3.3, Y: -1.1, Z: 0.7})
	b.SetAngularVelocity(rl.Vector3{X: 0.9, Y: 2.1, Z: -0.3})
	b.Integrate(0.016)

	prev, cur := b.PreviousTransform(), b.Transform()

	start := b.Interpolate(0)
	if start.Translation != prev.Translation || start.Scale != prev.Scale {
		t.Errorf("Interpolate(0) = %v, want %v", start, prev)
	}
	if start.Rotation != prev.Rotation {
		t.Errorf("Interpolate(0) rotation = %v, want %v", start.Rotation, prev.Rotation)
	}

	end := b.Interpolate(1)
	if end.Translation != cur.Translation || end.Scale != cur.Scale {
		t.Errorf("Interpolate(1) = %v, want %v", end, cur)
	}
	if end.Rotation != cur.Rotation {
		t.Errorf("Interpolate(1) rotation = %v, want %v", end.Rotation, cur.Rotation)
	}

	if b.Transform() != cur {
		t.Error("Interpolate must not modify the body")
	}
}

func TestInterpolateOppositeHemispheres(t *testing.T) {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 0.5)
	negated := rl.Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}

	b := NewRigidBody()
	b.SetTransform(Transform{Rotation: q, Scale: rl.Vector3One()})
	b.SetOrientation(negated)

	if got := b.Interpolate(0).Rotation; got != q {
		t.Errorf("Interpolate(0) rotation = %v, want %v", got, q)
	}
	if got := b.Interpolate(1).Rotation; got != negated {
		t.Errorf("Interpolate(1) rotation = %v, want %v", got, negated)
	}
	// Both ends are the same rotation, so the blend stays on it
	if got := b.Interpolate(0.5).Rotation; !quatApprox(got, q) {
		t.Errorf("Interpolate(0.5) rotation = %v, want %v", got, q)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	b := NewRigidBody()
	b.SetLinearVelocity(rl.Vector3{X: 10})
	b.Integrate(0.1)

	mid := b.Interpolate(0.5)
	if !vecApprox(mid.Translation, rl.Vector3{X: 0.5}) {
		t.Errorf("midpoint translation = %v, want (0.5,0,0)", mid.Translation)
	}
}

func TestStaticBodyIgnoresImpulses(t *testing.T) {
	b := NewStaticBody()
	impulses := []rl.Vector3{
		{X: 1},
		{X: -1000, Y: 3, Z: 0.5},
		{Y: 1e6},
	}

	for _, impulse := range impulses {
		b.ApplyImpulse(impulse, rl.Vector3{X: 1, Y: 1})
		b.ApplyCentralImpulse(impulse)
		b.ApplyAngularImpulse(impulse)
		if b.LinearMomentum() != rl.Vector3Zero() || b.AngularMomentum() != rl.Vector3Zero() {
			t.Fatalf("static body momentum changed by %v", impulse)
		}
	}
	if !b.IsStatic() {
		t.Error("NewStaticBody should be static")
	}
	if b.InverseInertia() != (mgl32.Mat3{}) {
		t.Error("static body should have zero inverse inertia")
	}
}

func TestApplyImpulseAtPoint(t *testing.T) {
	b := NewRigidBody()
	b.ApplyImpulse(rl.Vector3{Z: 2}, rl.Vector3{X: 1})

	if b.LinearMomentum() != (rl.Vector3{Z: 2}) {
		t.Errorf("linear momentum = %v, want (0,0,2)", b.LinearMomentum())
	}
	// (1,0,0) x (0,0,2) = (0,-2,0)
	if !vecApprox(b.AngularMomentum(), rl.Vector3{Y: -2}) {
		t.Errorf("angular momentum = %v, want (0,-2,0)", b.AngularMomentum())
	}
}

func TestSetMassZeroIsStatic(t *testing.T) {
	b := NewRigidBody()
	b.SetMass(0)
	if !b.IsStatic() || b.InverseMass() != 0 {
		t.Errorf("zero mass should give zero inverse mass, got %v", b.InverseMass())
	}

	b.SetMass(4)
	if b.InverseMass() != 0.25 {
		t.Errorf("inverse mass = %v, want 0.25", b.InverseMass())
	}
}

func TestSolidInertia(t *testing.T) {
	sphere := SolidSphereInertia(5, 2)
	if !approx(sphere.At(0, 0), 8) || !approx(sphere.At(1, 1), 8) || sphere.At(0, 1) != 0 {
		t.Errorf("sphere inertia = %v, want diag(8)", sphere)
	}

	box := SolidBoxInertia(12, rl.Vector3{X: 1, Y: 2, Z: 3})
	want := [3]float32{13, 10, 5}
	for i, w := range want {
		if !approx(box.At(i, i), w) {
			t.Errorf("box inertia[%d] = %v, want %v", i, box.At(i, i), w)
		}
	}
}
