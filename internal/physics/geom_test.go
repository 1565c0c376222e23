package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Translation: rl.Vector3{X: 1, Y: -2, Z: 3},
		Rotation:    rl.QuaternionFromAxisAngle(rl.Vector3Normalize(rl.Vector3{X: 1, Y: 1}), 0.7),
		Scale:       rl.Vector3{X: 2, Y: 0.5, Z: 3},
	}

	p := rl.Vector3{X: 0.25, Y: 4, Z: -1}
	if back := tr.InverseTransformPoint(tr.TransformPoint(p)); !vecApprox(back, p) {
		t.Errorf("point round trip = %v, want %v", back, p)
	}

	d := rl.Vector3{X: 0, Y: 0.6, Z: 0.8}
	if back := tr.InverseTransformDirection(tr.TransformDirection(d)); !vecApprox(back, d) {
		t.Errorf("direction round trip = %v, want %v", back, d)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	s := Segment{A: rl.Vector3Zero(), B: rl.Vector3{X: 4}}

	tests := []struct {
		point, want rl.Vector3
	}{
		{rl.Vector3{X: 1, Y: 3}, rl.Vector3{X: 1}},
		{rl.Vector3{X: -5, Y: 1}, rl.Vector3Zero()},
		{rl.Vector3{X: 9, Z: -1}, rl.Vector3{X: 4}},
	}
	for _, tt := range tests {
		if got := ClosestPointOnSegment(s, tt.point); !vecApprox(got, tt.want) {
			t.Errorf("ClosestPointOnSegment(%v) = %v, want %v", tt.point, got, tt.want)
		}
	}

	degenerate := Segment{A: rl.Vector3{Y: 1}, B: rl.Vector3{Y: 1}}
	if got := ClosestPointOnSegment(degenerate, rl.Vector3{X: 3}); got != degenerate.A {
		t.Errorf("degenerate segment = %v, want its start", got)
	}
}

func TestClosestPointsBetweenSegments(t *testing.T) {
	tests := []struct {
		name   string
		s1, s2 Segment
		p1, p2 rl.Vector3
	}{
		{
			name: "crossing",
			s1:   Segment{A: rl.Vector3{X: -1}, B: rl.Vector3{X: 1}},
			s2:   Segment{A: rl.Vector3{Y: 2, Z: -1}, B: rl.Vector3{Y: 2, Z: 1}},
			p1:   rl.Vector3Zero(),
			p2:   rl.Vector3{Y: 2},
		},
		{
			name: "end to end",
			s1:   Segment{A: rl.Vector3Zero(), B: rl.Vector3{X: 1}},
			s2:   Segment{A: rl.Vector3{X: 3}, B: rl.Vector3{X: 3, Y: 5}},
			p1:   rl.Vector3{X: 1},
			p2:   rl.Vector3{X: 3},
		},
		{
			name: "point and segment",
			s1:   Segment{A: rl.Vector3{X: 2, Y: 1}, B: rl.Vector3{X: 2, Y: 1}},
			s2:   Segment{A: rl.Vector3Zero(), B: rl.Vector3{X: 4}},
			p1:   rl.Vector3{X: 2, Y: 1},
			p2:   rl.Vector3{X: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2 := ClosestPointsBetweenSegments(tt.s1, tt.s2)
			if !vecApprox(p1, tt.p1) || !vecApprox(p2, tt.p2) {
				t.Errorf("got %v, %v, want %v, %v", p1, p2, tt.p1, tt.p2)
			}
		})
	}
}

func TestAABBIntersectRay(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

	if tmin, ok := box.IntersectRay(Ray{Origin: rl.Vector3{X: -5}, Direction: rl.Vector3{X: 1}}); !ok || !approx(tmin, 4) {
		t.Errorf("entry = %v, %v, want 4", tmin, ok)
	}
	if tmin, ok := box.IntersectRay(Ray{Origin: rl.Vector3Zero(), Direction: rl.Vector3{Y: 1}}); !ok || tmin != 0 {
		t.Errorf("inside ray entry = %v, %v, want 0", tmin, ok)
	}
	if _, ok := box.IntersectRay(Ray{Origin: rl.Vector3{X: -5, Y: 2}, Direction: rl.Vector3{X: 1}}); ok {
		t.Error("parallel ray outside the slab should miss")
	}
	if _, ok := box.IntersectRay(Ray{Origin: rl.Vector3{X: 5}, Direction: rl.Vector3{X: 1}}); ok {
		t.Error("box behind the ray should miss")
	}
}

func TestOBBMinimumSeparationRotated(t *testing.T) {
	tr := IdentityTransform()
	a := NewOBB(rl.Vector3{X: -1, Y: -1, Z: -1}, rl.Vector3{X: 1, Y: 1, Z: 1}, tr)

	tr.Translation = rl.Vector3{X: 2.2}
	tr.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/4)
	b := NewOBB(rl.Vector3{X: -1, Y: -1, Z: -1}, rl.Vector3{X: 1, Y: 1, Z: 1}, tr)

	// The diamond's tip reaches sqrt(2) toward A
	normal, depth, ok := a.MinimumSeparation(b)
	if !ok {
		t.Fatal("expected overlap")
	}
	want := float32(1+math.Sqrt2) - 2.2
	if !approx(depth, want) {
		t.Errorf("depth = %v, want %v", depth, want)
	}
	if !vecApprox(normal, rl.Vector3{X: 1}) {
		t.Errorf("normal = %v, want (1,0,0)", normal)
	}

	tr.Translation = rl.Vector3{X: 2.5}
	b = NewOBB(rl.Vector3{X: -1, Y: -1, Z: -1}, rl.Vector3{X: 1, Y: 1, Z: 1}, tr)
	if _, _, ok := a.MinimumSeparation(b); ok {
		t.Error("boxes 2.5 apart should be separated")
	}
}

func TestOBBClosestPointAndContains(t *testing.T) {
	tr := IdentityTransform()
	tr.Translation = rl.Vector3{Y: 1}
	tr.Scale = rl.Vector3{X: 2, Y: 1, Z: 1}
	o := NewOBB(rl.Vector3{X: -1, Y: -1, Z: -1}, rl.Vector3{X: 1, Y: 1, Z: 1}, tr)

	if got := o.ClosestPoint(rl.Vector3{X: 5, Y: 1}); !vecApprox(got, rl.Vector3{X: 2, Y: 1}) {
		t.Errorf("ClosestPoint = %v, want (2,1,0)", got)
	}
	inside := rl.Vector3{X: 1.5, Y: 1.5}
	if got := o.ClosestPoint(inside); !vecApprox(got, inside) {
		t.Errorf("inside point mapped to %v", got)
	}
	if !o.Contains(inside) || o.Contains(rl.Vector3{X: 2.1, Y: 1}) {
		t.Error("Contains disagrees with the scaled extents")
	}
}

func TestPlaneDistance(t *testing.T) {
	p := Plane{Normal: rl.Vector3{Y: 1}, Constant: -2}
	if d := p.Distance(rl.Vector3{X: 7, Y: 5}); d != 3 {
		t.Errorf("Distance = %v, want 3", d)
	}
	if d := p.Distance(rl.Vector3{Y: 1}); d != -1 {
		t.Errorf("Distance = %v, want -1", d)
	}
}
