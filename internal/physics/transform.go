package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a translation, rotation and scale. Points are scaled, then
// rotated, then translated.
type Transform struct {
	Translation rl.Vector3
	Rotation    rl.Quaternion
	Scale       rl.Vector3
}

// IdentityTransform returns a transform that maps every point to itself.
func IdentityTransform() Transform {
	return Transform{
		Translation: rl.Vector3Zero(),
		Rotation:    rl.QuaternionIdentity(),
		Scale:       rl.Vector3One(),
	}
}

// TransformPoint maps a body-space point into world space.
func (t Transform) TransformPoint(p rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Multiply(p, t.Scale)
	return rl.Vector3Add(rl.Vector3RotateByQuaternion(scaled, t.Rotation), t.Translation)
}

// TransformDirection rotates a body-space direction into world space. Scale is ignored.
func (t Transform) TransformDirection(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, t.Rotation)
}

// InverseTransformPoint maps a world-space point into body space.
func (t Transform) InverseTransformPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(p, t.Translation), rl.QuaternionInvert(t.Rotation))
	return rl.Vector3{X: local.X / t.Scale.X, Y: local.Y / t.Scale.Y, Z: local.Z / t.Scale.Z}
}

// InverseTransformDirection rotates a world-space direction into body space.
func (t Transform) InverseTransformDirection(d rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(d, rl.QuaternionInvert(t.Rotation))
}

// lerp is written as a*(1-t) + b*t so that t=0 and t=1 reproduce the endpoints exactly.
func lerp(a, b rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3Add(rl.Vector3Scale(a, 1-t), rl.Vector3Scale(b, t))
}

// nlerp blends two rotations along the shorter arc and renormalizes.
// The endpoints are returned unchanged, sign included.
func nlerp(a, b rl.Quaternion, t float32) rl.Quaternion {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	if a.X*b.X+a.Y*b.Y+a.Z*b.Z+a.W*b.W < 0 {
		b = rl.QuaternionScale(b, -1)
	}
	return rl.QuaternionNormalize(rl.QuaternionAdd(rl.QuaternionScale(a, 1-t), rl.QuaternionScale(b, t)))
}
