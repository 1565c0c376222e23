package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayHit is a ray intersection with a body, expressed in world space.
type RayHit struct {
	Point     rl.Vector3
	Normal    rl.Vector3
	Distance  float32
	FaceIndex uint32
}

// TraceBody intersects a world-space ray with the mesh collider of body.
// Bodies without a mesh collider are never hit. The ray is carried into body
// space so the mesh BVH is queried without transforming any triangles.
func TraceBody(body *RigidBody, ray Ray) (RayHit, bool) {
	collider := body.Collider()
	if collider == nil || collider.Type != ColliderMesh || collider.Mesh == nil {
		return RayHit{}, false
	}

	t := body.Transform()
	direction := t.InverseTransformDirection(ray.Direction)
	local := Ray{
		Origin:    t.InverseTransformPoint(ray.Origin),
		Direction: rl.Vector3{X: direction.X / t.Scale.X, Y: direction.Y / t.Scale.Y, Z: direction.Z / t.Scale.Z},
	}

	hit, ok := collider.Mesh.Intersect(local)
	if !ok {
		return RayHit{}, false
	}

	point := t.TransformPoint(local.At(hit.Distance))
	normal := rl.Vector3{X: hit.Normal.X / t.Scale.X, Y: hit.Normal.Y / t.Scale.Y, Z: hit.Normal.Z / t.Scale.Z}
	return RayHit{
		Point:     point,
		Normal:    rl.Vector3Normalize(t.TransformDirection(normal)),
		Distance:  rl.Vector3Distance(ray.Origin, point),
		FaceIndex: hit.FaceIndex,
	}, true
}

// Trace returns the index of the nearest body hit by ray whose collider
// shares a layer with mask, skipping the body at index ignore (pass -1 to
// skip none). Bodies are compared by squared world distance; on an exact tie
// the earlier body wins.
func Trace(bodies []*RigidBody, ray Ray, ignore int, mask uint32) (int, RayHit, bool) {
	best := -1
	var bestHit RayHit
	bestSqr := infinity

	for i, body := range bodies {
		if i == ignore {
			continue
		}
		collider := body.Collider()
		if collider == nil || collider.LayerMask&mask == 0 {
			continue
		}

		hit, ok := TraceBody(body, ray)
		if !ok {
			continue
		}
		sqr := lengthSqr(rl.Vector3Subtract(hit.Point, ray.Origin))
		if sqr < bestSqr {
			best, bestHit, bestSqr = i, hit, sqr
		}
	}

	return best, bestHit, best >= 0
}
