package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// narrowPhaseFunc tests one pair of bodies and appends at most one manifold to out.
type narrowPhaseFunc func(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold

// narrowPhaseTable is indexed by [collider A type][collider B type]. Mirrored
// cells delegate to their counterpart with the bodies swapped, so the emitted
// manifold's A is the counterpart's A and its normal still points from A to B.
var narrowPhaseTable = [shapeTypeCount][shapeTypeCount]narrowPhaseFunc{
	ColliderPlane: {
		ColliderPlane:   narrowPhasePlanePlane,
		ColliderSphere:  narrowPhasePlaneSphere,
		ColliderBox:     narrowPhasePlaneBox,
		ColliderCapsule: narrowPhasePlaneCapsule,
	},
	ColliderSphere: {
		ColliderPlane:   narrowPhaseSpherePlane,
		ColliderSphere:  narrowPhaseSphereSphere,
		ColliderBox:     narrowPhaseSphereBox,
		ColliderCapsule: narrowPhaseSphereCapsule,
	},
	ColliderBox: {
		ColliderPlane:   narrowPhaseBoxPlane,
		ColliderSphere:  narrowPhaseBoxSphere,
		ColliderBox:     narrowPhaseBoxBox,
		ColliderCapsule: narrowPhaseBoxCapsule,
	},
	ColliderCapsule: {
		ColliderPlane:   narrowPhaseCapsulePlane,
		ColliderSphere:  narrowPhaseCapsuleSphere,
		ColliderBox:     narrowPhaseCapsuleBox,
		ColliderCapsule: narrowPhaseCapsuleCapsule,
	},
}

// DetectNarrow runs the shape-pair routine of every broad phase pair and
// appends the resulting manifolds to out. Mesh colliders are skipped.
func DetectNarrow(bodies []*RigidBody, pairs []Pair, out []Manifold) []Manifold {
	for _, pair := range pairs {
		typeA := bodies[pair.A].Collider().Type
		typeB := bodies[pair.B].Collider().Type
		if int(typeA) >= shapeTypeCount || int(typeB) >= shapeTypeCount {
			continue
		}
		out = narrowPhaseTable[typeA][typeB](bodies, pair.A, pair.B, out)
	}
	return out
}

func narrowPhasePlanePlane(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return out
}

func narrowPhasePlaneSphere(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	plane := bodyA.Collider().worldPlane(bodyA.Transform())
	sphere := bodyB.Collider().Sphere
	center := bodyB.Transform().TransformPoint(sphere.Center)

	distance := plane.Distance(center)
	if distance > sphere.Radius {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}
	m.add(Contact{
		Point:  rl.Vector3Subtract(center, rl.Vector3Scale(plane.Normal, sphere.Radius)),
		Normal: plane.Normal,
		Depth:  absf(distance - sphere.Radius),
	})
	return append(out, m)
}

func narrowPhasePlaneBox(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	plane := bodyA.Collider().worldPlane(bodyA.Transform())
	box := bodyB.Collider().Box
	transformB := bodyB.Transform()

	corners := [8]rl.Vector3{
		{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Max.Z},
		{X: box.Max.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Max.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Max.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Max.X, Y: box.Max.Y, Z: box.Max.Z},
	}

	m := Manifold{BodyA: a, BodyB: b}
	for _, corner := range corners {
		point := transformB.TransformPoint(corner)
		distance := plane.Distance(point)
		if distance > 0 {
			continue
		}
		if !m.add(Contact{Point: point, Normal: plane.Normal, Depth: absf(distance)}) {
			break
		}
	}

	if m.ContactCount == 0 {
		return out
	}
	return append(out, m)
}

func narrowPhasePlaneCapsule(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	plane := bodyA.Collider().worldPlane(bodyA.Transform())
	capsule := bodyB.Collider().Capsule
	segment := bodyB.Collider().worldSegment(bodyB.Transform())

	m := Manifold{BodyA: a, BodyB: b}
	for _, end := range [2]rl.Vector3{segment.A, segment.B} {
		distance := plane.Distance(end)
		if distance > capsule.Radius {
			continue
		}
		m.add(Contact{
			Point:  rl.Vector3Subtract(end, rl.Vector3Scale(plane.Normal, capsule.Radius)),
			Normal: plane.Normal,
			Depth:  absf(distance - capsule.Radius),
		})
	}

	if m.ContactCount == 0 {
		return out
	}
	return append(out, m)
}

func narrowPhaseSpherePlane(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return narrowPhasePlaneSphere(bodies, b, a, out)
}

// sphereContact builds the contact between two spheres given the vector from
// center a to center b. Coincident centers yield no contact.
func sphereContact(centerA, difference rl.Vector3, radiusA, radiusB float32) (Contact, bool) {
	sumRadii := radiusA + radiusB
	sqrDistance := lengthSqr(difference)
	if sqrDistance > sumRadii*sumRadii {
		return Contact{}, false
	}

	// Degenerate case, the normal is undefined
	if sqrDistance == 0 {
		return Contact{}, false
	}

	distance := sqrtf(sqrDistance)
	normal := rl.Vector3Scale(difference, 1/distance)
	depth := sumRadii - distance
	return Contact{
		Point:  rl.Vector3Add(centerA, rl.Vector3Scale(normal, radiusA-depth*0.5)),
		Normal: normal,
		Depth:  depth,
	}, true
}

func narrowPhaseSphereSphere(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	sphereA := bodyA.Collider().Sphere
	sphereB := bodyB.Collider().Sphere
	centerA := bodyA.Transform().TransformPoint(sphereA.Center)
	centerB := bodyB.Transform().TransformPoint(sphereB.Center)

	contact, ok := sphereContact(centerA, rl.Vector3Subtract(centerB, centerA), sphereA.Radius, sphereB.Radius)
	if !ok {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}
	m.add(contact)
	return append(out, m)
}

func narrowPhaseSphereBox(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return narrowPhaseBoxSphere(bodies, b, a, out)
}

func narrowPhaseSphereCapsule(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	sphereA := bodyA.Collider().Sphere
	centerA := bodyA.Transform().TransformPoint(sphereA.Center)
	segmentB := bodyB.Collider().worldSegment(bodyB.Transform())

	closest := ClosestPointOnSegment(segmentB, centerA)
	contact, ok := sphereContact(centerA, rl.Vector3Subtract(closest, centerA), sphereA.Radius, bodyB.Collider().Capsule.Radius)
	if !ok {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}
	m.add(contact)
	return append(out, m)
}

func narrowPhaseBoxPlane(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return narrowPhasePlaneBox(bodies, b, a, out)
}

// boxSphereContact builds the contact between a box and a sphere, with the
// normal pointing from the box toward the sphere.
func boxSphereContact(box OBB, center rl.Vector3, radius float32) (Contact, bool) {
	closest := box.ClosestPoint(center)
	difference := rl.Vector3Subtract(center, closest)
	sqrDistance := lengthSqr(difference)
	if sqrDistance > radius*radius {
		return Contact{}, false
	}

	if sqrDistance > 0 {
		distance := sqrtf(sqrDistance)
		normal := rl.Vector3Scale(difference, 1/distance)
		depth := radius - distance
		return Contact{
			Point:  rl.Vector3Subtract(closest, rl.Vector3Scale(normal, depth*0.5)),
			Normal: normal,
			Depth:  depth,
		}, true
	}

	// Center inside the box: push out through the nearest face
	local := rl.Vector3Subtract(center, box.Center)
	best := infinity
	var normal rl.Vector3
	for i := 0; i < 3; i++ {
		d := rl.Vector3DotProduct(local, box.Axes[i])
		penetration := box.halfExtent(i) - absf(d)
		if penetration < best {
			best = penetration
			normal = box.Axes[i]
			if d < 0 {
				normal = rl.Vector3Negate(normal)
			}
		}
	}
	depth := radius + best
	face := rl.Vector3Add(center, rl.Vector3Scale(normal, best))
	return Contact{
		Point:  rl.Vector3Subtract(face, rl.Vector3Scale(normal, depth*0.5)),
		Normal: normal,
		Depth:  depth,
	}, true
}

func narrowPhaseBoxSphere(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	box := bodyA.Collider().worldBox(bodyA.Transform())
	sphere := bodyB.Collider().Sphere
	center := bodyB.Transform().TransformPoint(sphere.Center)

	contact, ok := boxSphereContact(box, center, sphere.Radius)
	if !ok {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}
	m.add(contact)
	return append(out, m)
}

func narrowPhaseBoxBox(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	boxA := bodyA.Collider().worldBox(bodyA.Transform())
	boxB := bodyB.Collider().worldBox(bodyB.Transform())

	normal, depth, ok := boxA.MinimumSeparation(boxB)
	if !ok {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}

	// Corners of B inside A, measured against A's face along the normal
	faceA := rl.Vector3DotProduct(boxA.Center, normal) + boxA.projectedRadius(normal)
	for _, corner := range boxB.Corners() {
		if !boxA.Contains(corner) {
			continue
		}
		d := clampf(faceA-rl.Vector3DotProduct(corner, normal), 0, depth)
		if !m.add(Contact{Point: corner, Normal: normal, Depth: d}) {
			break
		}
	}

	// Corners of A inside B, measured against B's face along the normal.
	// An offset stack encloses corners from both boxes, one edge each.
	faceB := rl.Vector3DotProduct(boxB.Center, normal) - boxB.projectedRadius(normal)
	for _, corner := range boxA.Corners() {
		if m.ContactCount == MaxContacts {
			break
		}
		if !boxB.Contains(corner) {
			continue
		}
		d := clampf(rl.Vector3DotProduct(corner, normal)-faceB, 0, depth)
		m.add(Contact{Point: corner, Normal: normal, Depth: d})
	}

	// Edge against edge: no corner is enclosed
	if m.ContactCount == 0 {
		onA := boxA.ClosestPoint(boxB.Center)
		onB := boxB.ClosestPoint(boxA.Center)
		m.add(Contact{
			Point:  rl.Vector3Scale(rl.Vector3Add(onA, onB), 0.5),
			Normal: normal,
			Depth:  depth,
		})
	}

	return append(out, m)
}

func narrowPhaseBoxCapsule(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	box := bodyA.Collider().worldBox(bodyA.Transform())
	segment := bodyB.Collider().worldSegment(bodyB.Transform())

	onSegment, _ := ClosestPointsSegmentOBB(segment, box)
	contact, ok := boxSphereContact(box, onSegment, bodyB.Collider().Capsule.Radius)
	if !ok {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}
	m.add(contact)
	return append(out, m)
}

func narrowPhaseCapsulePlane(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return narrowPhasePlaneCapsule(bodies, b, a, out)
}

func narrowPhaseCapsuleSphere(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return narrowPhaseSphereCapsule(bodies, b, a, out)
}

func narrowPhaseCapsuleBox(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	return narrowPhaseBoxCapsule(bodies, b, a, out)
}

func narrowPhaseCapsuleCapsule(bodies []*RigidBody, a, b BodyHandle, out []Manifold) []Manifold {
	bodyA, bodyB := bodies[a], bodies[b]
	colliderA, colliderB := bodyA.Collider(), bodyB.Collider()
	segmentA := colliderA.worldSegment(bodyA.Transform())
	segmentB := colliderB.worldSegment(bodyB.Transform())

	closestA, closestB := ClosestPointsBetweenSegments(segmentA, segmentB)
	contact, ok := sphereContact(closestA, rl.Vector3Subtract(closestB, closestA), colliderA.Capsule.Radius, colliderB.Capsule.Radius)
	if !ok {
		return out
	}

	m := Manifold{BodyA: a, BodyB: b}
	m.add(contact)
	return append(out, m)
}
