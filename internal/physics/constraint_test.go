package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestSpringPullsStretchedEndsTogether(t *testing.T) {
	a := NewRigidBody()
	b := NewRigidBody()
	b.SetPosition(rl.Vector3{X: 3})

	s := NewSpringConstraint(1, 10, 0)
	s.AttachA(a, rl.Vector3Zero())
	s.AttachB(b, rl.Vector3Zero())
	s.Solve(0.016)

	// Stretched by 2: 20 toward each other
	if !vecApprox(a.AppliedForce(), rl.Vector3{X: 20}) {
		t.Errorf("force on A = %v, want (20,0,0)", a.AppliedForce())
	}
	if !vecApprox(b.AppliedForce(), rl.Vector3{X: -20}) {
		t.Errorf("force on B = %v, want (-20,0,0)", b.AppliedForce())
	}
}

func TestSpringPushesCompressedEndsApart(t *testing.T) {
	a := NewRigidBody()
	b := NewRigidBody()
	b.SetPosition(rl.Vector3{Y: 0.5})

	s := NewSpringConstraint(1, 4, 0)
	s.AttachA(a, rl.Vector3Zero())
	s.AttachB(b, rl.Vector3Zero())
	s.Solve(0.016)

	if !vecApprox(b.AppliedForce(), rl.Vector3{Y: 2}) {
		t.Errorf("force on B = %v, want (0,2,0)", b.AppliedForce())
	}
}

func TestSpringDampingAlongAxisOnly(t *testing.T) {
	a := NewRigidBody()
	b := NewRigidBody()
	b.SetPosition(rl.Vector3{X: 1})
	b.SetLinearVelocity(rl.Vector3{X: 2, Y: 5})

	s := NewSpringConstraint(1, 10, 3)
	s.AttachA(a, rl.Vector3Zero())
	s.AttachB(b, rl.Vector3Zero())
	s.Solve(0.016)

	// At rest length, only the separating speed of 2 is damped; sideways motion is not
	if !vecApprox(b.AppliedForce(), rl.Vector3{X: -6}) {
		t.Errorf("force on B = %v, want (-6,0,0)", b.AppliedForce())
	}
}

func TestSpringOffCenterAnchorTorque(t *testing.T) {
	a := NewStaticBody()
	b := NewRigidBody()
	b.SetPosition(rl.Vector3{Y: -2})

	s := NewSpringConstraint(0, 1, 0)
	s.AttachA(a, rl.Vector3Zero())
	s.AttachB(b, rl.Vector3{X: 1})
	s.Solve(0.016)

	// The anchor sits at (1,-2,0); the pull toward the origin acts at arm (1,0,0)
	force := b.AppliedForce()
	if !vecApprox(force, rl.Vector3{X: -1, Y: 2}) {
		t.Errorf("force on B = %v, want (-1,2,0)", force)
	}
	if !vecApprox(b.AppliedTorque(), rl.Vector3{Z: 2}) {
		t.Errorf("torque on B = %v, want (0,0,2)", b.AppliedTorque())
	}
}

func TestSpringDetachedEndIsWorldAnchor(t *testing.T) {
	a := NewRigidBody()
	a.SetPosition(rl.Vector3{X: 5})
	a.SetOrientation(rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, math.Pi/2))
	b := NewRigidBody()

	s := NewSpringConstraint(0, 1, 0)
	s.AttachA(a, rl.Vector3{X: 1})
	s.AttachB(b, rl.Vector3Zero())

	s.DetachA()
	if s.BodyA() != nil {
		t.Fatal("DetachA should clear body A")
	}
	// (1,0,0) turned a quarter about Z is (0,1,0), offset by the body at (5,0,0)
	if !vecApprox(s.PointA(), rl.Vector3{X: 5, Y: 1}) {
		t.Errorf("anchor = %v, want (5,1,0)", s.PointA())
	}

	s.Solve(0.016)
	if !vecApprox(b.AppliedForce(), rl.Vector3{X: 5, Y: 1}) {
		t.Errorf("force on B = %v, want (5,1,0) toward the anchor", b.AppliedForce())
	}
	if a.AppliedForce() != rl.Vector3Zero() {
		t.Error("detached body should receive no force")
	}
}

func TestSpringFullyDetachedIsInert(t *testing.T) {
	s := NewSpringConstraint(1, 10, 1)
	s.SetPointA(rl.Vector3{X: -4})
	s.SetPointB(rl.Vector3{X: 4})
	s.Solve(0.016)

	a := NewRigidBody()
	s.AttachA(a, rl.Vector3Zero())
	s.Detach()
	if s.BodyA() != nil || s.BodyB() != nil {
		t.Error("Detach should release both ends")
	}
	s.Solve(0.016)
	if a.AppliedForce() != rl.Vector3Zero() {
		t.Error("detached spring should not push its former body")
	}
	if !approx(s.Length(), 4) {
		t.Errorf("Length() = %v, want 4", s.Length())
	}
}

func TestSpringZeroLengthIsSkipped(t *testing.T) {
	a := NewRigidBody()
	b := NewRigidBody()

	s := NewSpringConstraint(1, 10, 1)
	s.AttachA(a, rl.Vector3Zero())
	s.AttachB(b, rl.Vector3Zero())
	s.Solve(0.016)

	if a.AppliedForce() != rl.Vector3Zero() || b.AppliedForce() != rl.Vector3Zero() {
		t.Error("coincident anchors have no axis and should apply nothing")
	}
}
