package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ColliderType tags the shape held by a Collider. The first four values
// index the narrow phase table.
type ColliderType uint8

const (
	ColliderPlane ColliderType = iota
	ColliderSphere
	ColliderBox
	ColliderCapsule
	ColliderMesh
)

// shapeTypeCount is the number of collider types that take part in pairwise narrow phase.
const shapeTypeCount = int(ColliderCapsule) + 1

var colliderTypeNames = [...]string{"plane", "sphere", "box", "capsule", "mesh"}

func (t ColliderType) String() string {
	if int(t) < len(colliderTypeNames) {
		return colliderTypeNames[t]
	}
	return "unknown"
}

// DefaultLayerMask puts a collider on layer 0 only.
const DefaultLayerMask uint32 = 1

// Sphere is a body-space sphere.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// Box is a body-space axis-aligned box.
type Box struct {
	Min, Max rl.Vector3
}

// Capsule is a body-space segment swept by a sphere.
type Capsule struct {
	Segment Segment
	Radius  float32
}

// Collider is the shape of a rigid body together with its surface material
// and collision layers. Only the field matching Type is meaningful.
type Collider struct {
	Type      ColliderType
	Material  Material
	LayerMask uint32

	Plane   Plane
	Sphere  Sphere
	Box     Box
	Capsule Capsule
	Mesh    *TriangleMesh
}

func newCollider(t ColliderType) *Collider {
	return &Collider{
		Type:      t,
		Material:  DefaultMaterial(),
		LayerMask: DefaultLayerMask,
	}
}

// NewPlaneCollider creates a body-space plane with the given unit normal and constant.
func NewPlaneCollider(normal rl.Vector3, constant float32) *Collider {
	c := newCollider(ColliderPlane)
	c.Plane = Plane{Normal: normal, Constant: constant}
	return c
}

// NewSphereCollider creates a body-space sphere.
func NewSphereCollider(center rl.Vector3, radius float32) *Collider {
	c := newCollider(ColliderSphere)
	c.Sphere = Sphere{Center: center, Radius: radius}
	return c
}

// NewBoxCollider creates a body-space axis-aligned box.
func NewBoxCollider(min, max rl.Vector3) *Collider {
	c := newCollider(ColliderBox)
	c.Box = Box{Min: min, Max: max}
	return c
}

// NewCapsuleCollider creates a body-space capsule around the segment a-b.
func NewCapsuleCollider(a, b rl.Vector3, radius float32) *Collider {
	c := newCollider(ColliderCapsule)
	c.Capsule = Capsule{Segment: Segment{A: a, B: b}, Radius: radius}
	return c
}

// NewMeshCollider wraps a built triangle mesh.
func NewMeshCollider(mesh *TriangleMesh) *Collider {
	c := newCollider(ColliderMesh)
	c.Mesh = mesh
	return c
}

// SharesLayer reports whether two colliders have at least one layer in common.
func (c *Collider) SharesLayer(other *Collider) bool {
	return c.LayerMask&other.LayerMask != 0
}

// worldPlane returns the collider's plane placed by t.
func (c *Collider) worldPlane(t Transform) Plane {
	normal := t.TransformDirection(c.Plane.Normal)
	return Plane{
		Normal:   normal,
		Constant: c.Plane.Constant - rl.Vector3DotProduct(normal, t.Translation),
	}
}

// worldSegment returns the capsule segment placed by t.
func (c *Collider) worldSegment(t Transform) Segment {
	return Segment{
		A: t.TransformPoint(c.Capsule.Segment.A),
		B: t.TransformPoint(c.Capsule.Segment.B),
	}
}

// worldBox returns the box placed by t.
func (c *Collider) worldBox(t Transform) OBB {
	return NewOBB(c.Box.Min, c.Box.Max, t)
}
