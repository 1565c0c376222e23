package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Constraint adds forces to the bodies it connects. Solve runs once per step
// before contacts are resolved.
type Constraint interface {
	Solve(dt float32)
}

// SpringConstraint is a damped Hookean spring between two anchors. An anchor
// attached to a body is stored in that body's space; a detached anchor is a
// fixed world-space point that receives no force.
type SpringConstraint struct {
	bodyA, bodyB   *RigidBody
	pointA, pointB rl.Vector3

	RestLength float32
	Stiffness  float32
	Damping    float32
}

// NewSpringConstraint creates a spring with both ends detached at the origin.
func NewSpringConstraint(restLength, stiffness, damping float32) *SpringConstraint {
	return &SpringConstraint{
		RestLength: restLength,
		Stiffness:  stiffness,
		Damping:    damping,
	}
}

// AttachA fixes end A to body at a point given relative to its center of mass.
func (s *SpringConstraint) AttachA(body *RigidBody, point rl.Vector3) {
	s.bodyA = body
	s.pointA = point
}

// AttachB fixes end B to body at a point given relative to its center of mass.
func (s *SpringConstraint) AttachB(body *RigidBody, point rl.Vector3) {
	s.bodyB = body
	s.pointB = point
}

// DetachA releases end A, leaving it pinned where it currently is in the world.
func (s *SpringConstraint) DetachA() {
	s.pointA, _ = anchor(s.bodyA, s.pointA)
	s.bodyA = nil
}

// DetachB releases end B, leaving it pinned where it currently is in the world.
func (s *SpringConstraint) DetachB() {
	s.pointB, _ = anchor(s.bodyB, s.pointB)
	s.bodyB = nil
}

// Detach releases both ends.
func (s *SpringConstraint) Detach() {
	s.DetachA()
	s.DetachB()
}

func (s *SpringConstraint) BodyA() *RigidBody  { return s.bodyA }
func (s *SpringConstraint) BodyB() *RigidBody  { return s.bodyB }
func (s *SpringConstraint) PointA() rl.Vector3 { return s.pointA }
func (s *SpringConstraint) PointB() rl.Vector3 { return s.pointB }

// SetPointA moves anchor A, in body space when attached and world space otherwise.
func (s *SpringConstraint) SetPointA(p rl.Vector3) { s.pointA = p }

// SetPointB moves anchor B, in body space when attached and world space otherwise.
func (s *SpringConstraint) SetPointB(p rl.Vector3) { s.pointB = p }

// anchor returns the world position of an end and its arm from the body's center.
func anchor(body *RigidBody, point rl.Vector3) (world, arm rl.Vector3) {
	if body == nil {
		return point, rl.Vector3Zero()
	}
	arm = rl.Vector3RotateByQuaternion(point, body.Orientation())
	return rl.Vector3Add(body.Position(), arm), arm
}

// Length returns the current distance between the two anchors.
func (s *SpringConstraint) Length() float32 {
	worldA, _ := anchor(s.bodyA, s.pointA)
	worldB, _ := anchor(s.bodyB, s.pointB)
	return rl.Vector3Distance(worldA, worldB)
}

func (s *SpringConstraint) Solve(dt float32) {
	if s.bodyA == nil && s.bodyB == nil {
		return
	}

	worldA, armA := anchor(s.bodyA, s.pointA)
	worldB, armB := anchor(s.bodyB, s.pointB)

	var velocityA, velocityB rl.Vector3
	if s.bodyA != nil {
		velocityA = s.bodyA.PointVelocity(armA)
	}
	if s.bodyB != nil {
		velocityB = s.bodyB.PointVelocity(armB)
	}

	diff := rl.Vector3Subtract(worldB, worldA)
	length := rl.Vector3Length(diff)
	if length == 0 {
		return
	}
	axis := rl.Vector3Scale(diff, 1/length)

	// Damping only opposes motion along the spring axis
	closing := rl.Vector3DotProduct(rl.Vector3Subtract(velocityB, velocityA), axis)
	force := rl.Vector3Scale(axis, -s.Stiffness*(length-s.RestLength)-s.Damping*closing)

	if s.bodyA != nil {
		s.bodyA.ApplyForce(rl.Vector3Negate(force), armA)
	}
	if s.bodyB != nil {
		s.bodyB.ApplyForce(force, armB)
	}
}
