package physics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is a single face with a precomputed unit normal.
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// bvhNode is a node in the bounding volume hierarchy. Leaves hold triangle indices.
type bvhNode struct {
	bounds    AABB
	left      *bvhNode
	right     *bvhNode
	triangles []int
}

const (
	bvhLeafSize = 4
	bvhMaxDepth = 20
)

// TriangleMesh is a body-space triangle soup with a BVH for ray queries.
type TriangleMesh struct {
	Triangles []Triangle
	root      *bvhNode
}

// NewTriangleMesh builds a mesh from a vertex list and triangle indices.
// Pass nil indices to treat every three vertices as one face.
func NewTriangleMesh(vertices []rl.Vector3, indices []uint32) (*TriangleMesh, error) {
	if indices == nil {
		if len(vertices)%3 != 0 {
			return nil, fmt.Errorf("mesh: %d vertices do not form whole triangles", len(vertices))
		}
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: %d indices do not form whole triangles", len(indices))
	}
	if len(indices) == 0 {
		return nil, errors.New("mesh: no triangles")
	}

	m := &TriangleMesh{Triangles: make([]Triangle, 0, len(indices)/3)}
	for i := 0; i < len(indices); i += 3 {
		var v [3]rl.Vector3
		for k := 0; k < 3; k++ {
			idx := indices[i+k]
			if int(idx) >= len(vertices) {
				return nil, fmt.Errorf("mesh: face %d references vertex %d of %d", i/3, idx, len(vertices))
			}
			v[k] = vertices[idx]
		}
		normal := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(v[1], v[0]), rl.Vector3Subtract(v[2], v[0])))
		m.Triangles = append(m.Triangles, Triangle{V0: v[0], V1: v[1], V2: v[2], Normal: normal})
	}

	m.buildBVH()
	return m, nil
}

func (m *TriangleMesh) buildBVH() {
	indices := make([]int, len(m.Triangles))
	for i := range indices {
		indices[i] = i
	}
	m.root = m.buildNode(indices, 0)
}

func (m *TriangleMesh) buildNode(indices []int, depth int) *bvhNode {
	node := &bvhNode{bounds: m.computeBounds(indices)}

	if len(indices) <= bvhLeafSize || depth > bvhMaxDepth {
		node.triangles = indices
		return node
	}

	// Split along the longest axis
	size := rl.Vector3Subtract(node.bounds.Max, node.bounds.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > axisValue(size, axis) {
		axis = 2
	}

	mid := m.partition(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.triangles = indices
		return node
	}

	node.left = m.buildNode(indices[:mid], depth+1)
	node.right = m.buildNode(indices[mid:], depth+1)
	return node
}

func (m *TriangleMesh) computeBounds(indices []int) AABB {
	bounds := AABB{
		Min: rl.Vector3{X: infinity, Y: infinity, Z: infinity},
		Max: rl.Vector3{X: -infinity, Y: -infinity, Z: -infinity},
	}
	for _, idx := range indices {
		tri := &m.Triangles[idx]
		for _, v := range [3]rl.Vector3{tri.V0, tri.V1, tri.V2} {
			bounds.Min = rl.Vector3Min(bounds.Min, v)
			bounds.Max = rl.Vector3Max(bounds.Max, v)
		}
	}
	return bounds
}

func (tri *Triangle) centroid() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3.0)
}

// partition reorders indices around the mean centroid on axis and returns the split point.
func (m *TriangleMesh) partition(indices []int, axis int) int {
	var center float32
	for _, idx := range indices {
		center += axisValue(m.Triangles[idx].centroid(), axis)
	}
	center /= float32(len(indices))

	left, right := 0, len(indices)-1
	for left <= right {
		if axisValue(m.Triangles[indices[left]].centroid(), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

// Bounds returns the box enclosing every triangle.
func (m *TriangleMesh) Bounds() AABB {
	if m.root == nil {
		return AABB{}
	}
	return m.root.bounds
}

// MeshHit describes the nearest intersection of a ray with a mesh.
type MeshHit struct {
	Distance  float32
	FaceIndex uint32
	Normal    rl.Vector3
}

// Intersect returns the nearest face hit by the ray, in mesh space.
func (m *TriangleMesh) Intersect(r Ray) (MeshHit, bool) {
	best := MeshHit{Distance: infinity}
	found := false
	m.intersectNode(m.root, r, &best, &found)
	return best, found
}

func (m *TriangleMesh) intersectNode(node *bvhNode, r Ray, best *MeshHit, found *bool) {
	if node == nil {
		return
	}
	entry, ok := node.bounds.IntersectRay(r)
	if !ok || entry > best.Distance {
		return
	}

	if node.triangles != nil {
		for _, idx := range node.triangles {
			tri := &m.Triangles[idx]
			if t, hit := intersectTriangle(r, tri); hit && t < best.Distance {
				*best = MeshHit{Distance: t, FaceIndex: uint32(idx), Normal: tri.Normal}
				*found = true
			}
		}
		return
	}

	m.intersectNode(node.left, r, best, found)
	m.intersectNode(node.right, r, best, found)
}

// intersectTriangle is the Möller–Trumbore test. Both faces are hit.
func intersectTriangle(r Ray, tri *Triangle) (float32, bool) {
	const epsilon = 1e-7

	edge1 := rl.Vector3Subtract(tri.V1, tri.V0)
	edge2 := rl.Vector3Subtract(tri.V2, tri.V0)
	p := rl.Vector3CrossProduct(r.Direction, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if absf(det) < epsilon {
		return 0, false
	}
	invDet := 1 / det

	s := rl.Vector3Subtract(r.Origin, tri.V0)
	u := rl.Vector3DotProduct(s, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := rl.Vector3CrossProduct(s, edge1)
	v := rl.Vector3DotProduct(r.Direction, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := rl.Vector3DotProduct(edge2, q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}
