package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ray is a half-line. Direction does not need to be normalized; distances
// returned by queries are in units of Direction's length.
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Direction, t))
}

// Segment is a line segment between A and B.
type Segment struct {
	A, B rl.Vector3
}

// Plane is the set of points p where dot(Normal, p) + Constant == 0.
type Plane struct {
	Normal   rl.Vector3
	Constant float32
}

// Distance returns the signed distance from the plane to p.
func (p Plane) Distance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) + p.Constant
}

// ClosestPointOnSegment returns the point of s nearest to p.
func ClosestPointOnSegment(s Segment, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(s.B, s.A)
	denom := rl.Vector3DotProduct(ab, ab)
	if denom == 0 {
		return s.A
	}
	t := clampf(rl.Vector3DotProduct(rl.Vector3Subtract(p, s.A), ab)/denom, 0, 1)
	return rl.Vector3Add(s.A, rl.Vector3Scale(ab, t))
}

// ClosestPointsBetweenSegments returns the pair of points, one on each
// segment, that are nearest to each other.
func ClosestPointsBetweenSegments(s1, s2 Segment) (rl.Vector3, rl.Vector3) {
	d1 := rl.Vector3Subtract(s1.B, s1.A)
	d2 := rl.Vector3Subtract(s2.B, s2.A)
	r := rl.Vector3Subtract(s1.A, s2.A)
	a := rl.Vector3DotProduct(d1, d1)
	e := rl.Vector3DotProduct(d2, d2)
	f := rl.Vector3DotProduct(d2, r)

	var s, t float32
	switch {
	case a == 0 && e == 0:
		return s1.A, s2.A
	case a == 0:
		t = clampf(f/e, 0, 1)
	default:
		c := rl.Vector3DotProduct(d1, r)
		if e == 0 {
			s = clampf(-c/a, 0, 1)
		} else {
			b := rl.Vector3DotProduct(d1, d2)
			denom := a*e - b*b
			// Parallel segments have denom == 0; any s works, pick the start.
			if denom != 0 {
				s = clampf((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clampf(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clampf((b-c)/a, 0, 1)
			}
		}
	}

	return rl.Vector3Add(s1.A, rl.Vector3Scale(d1, s)), rl.Vector3Add(s2.A, rl.Vector3Scale(d2, t))
}

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max rl.Vector3
}

// Intersects reports whether two boxes overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// IntersectRay returns the entry parameter of the ray into the box, using the
// slab method. A ray starting inside the box enters at t = 0.
func (a AABB) IntersectRay(r Ray) (float32, bool) {
	tmin := float32(0)
	tmax := infinity

	for axis := 0; axis < 3; axis++ {
		origin := axisValue(r.Origin, axis)
		dir := axisValue(r.Direction, axis)
		lo := axisValue(a.Min, axis)
		hi := axisValue(a.Max, axis)

		if dir == 0 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	return tmin, true
}

// OBB is an oriented box in world space.
type OBB struct {
	Center   rl.Vector3
	HalfSize rl.Vector3
	Axes     [3]rl.Vector3
}

// NewOBB builds the world-space box of a body-space min/max box placed by t.
func NewOBB(min, max rl.Vector3, t Transform) OBB {
	localCenter := rl.Vector3Scale(rl.Vector3Add(min, max), 0.5)
	half := rl.Vector3Scale(rl.Vector3Subtract(max, min), 0.5)
	half = rl.Vector3Multiply(half, t.Scale)
	return OBB{
		Center:   t.TransformPoint(localCenter),
		HalfSize: rl.Vector3{X: absf(half.X), Y: absf(half.Y), Z: absf(half.Z)},
		Axes: [3]rl.Vector3{
			t.TransformDirection(rl.Vector3{X: 1}),
			t.TransformDirection(rl.Vector3{Y: 1}),
			t.TransformDirection(rl.Vector3{Z: 1}),
		},
	}
}

func (o OBB) halfExtent(axis int) float32 {
	return axisValue(o.HalfSize, axis)
}

// ClosestPoint returns the point of the box nearest to p. Points inside the box map to themselves.
func (o OBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3Subtract(p, o.Center)
	result := o.Center
	for i := 0; i < 3; i++ {
		d := clampf(rl.Vector3DotProduct(local, o.Axes[i]), -o.halfExtent(i), o.halfExtent(i))
		result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[i], d))
	}
	return result
}

// Contains reports whether p lies inside the box, with a small tolerance.
func (o OBB) Contains(p rl.Vector3) bool {
	local := rl.Vector3Subtract(p, o.Center)
	for i := 0; i < 3; i++ {
		if absf(rl.Vector3DotProduct(local, o.Axes[i])) > o.halfExtent(i)+containsEpsilon {
			return false
		}
	}
	return true
}

// Corners returns the eight world-space corners of the box.
func (o OBB) Corners() [8]rl.Vector3 {
	var corners [8]rl.Vector3
	for i := 0; i < 8; i++ {
		c := o.Center
		for axis := 0; axis < 3; axis++ {
			sign := float32(-1)
			if i&(1<<axis) != 0 {
				sign = 1
			}
			c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[axis], sign*o.halfExtent(axis)))
		}
		corners[i] = c
	}
	return corners
}

// projectedRadius is the half-length of the box's shadow on axis.
func (o OBB) projectedRadius(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// MinimumSeparation runs the separating axis test over the 15 candidate axes.
// When the boxes overlap it returns the unit axis of least penetration,
// oriented from a toward b, and the penetration depth along it.
func (a OBB) MinimumSeparation(b OBB) (rl.Vector3, float32, bool) {
	t := rl.Vector3Subtract(b.Center, a.Center)
	best := infinity
	var normal rl.Vector3

	test := func(axis rl.Vector3) bool {
		length := rl.Vector3Length(axis)
		if length < 0.0001 {
			return true
		}
		axis = rl.Vector3Scale(axis, 1/length)
		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.projectedRadius(axis) + b.projectedRadius(axis) - absf(dist)
		if penetration < 0 {
			return false
		}
		if penetration < best {
			best = penetration
			if dist < 0 {
				axis = rl.Vector3Negate(axis)
			}
			normal = axis
		}
		return true
	}

	for i := 0; i < 3; i++ {
		if !test(a.Axes[i]) || !test(b.Axes[i]) {
			return rl.Vector3{}, 0, false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])) {
				return rl.Vector3{}, 0, false
			}
		}
	}

	return normal, best, true
}

// ClosestPointsSegmentOBB approximates the nearest pair of points between a
// segment and a box by alternating closest-point projections.
func ClosestPointsSegmentOBB(s Segment, o OBB) (onSegment, onBox rl.Vector3) {
	onSegment = ClosestPointOnSegment(s, o.Center)
	for i := 0; i < 4; i++ {
		onBox = o.ClosestPoint(onSegment)
		next := ClosestPointOnSegment(s, onBox)
		if lengthSqr(rl.Vector3Subtract(next, onSegment)) < 1e-12 {
			break
		}
		onSegment = next
	}
	onBox = o.ClosestPoint(onSegment)
	return onSegment, onBox
}

const containsEpsilon = 1e-4
