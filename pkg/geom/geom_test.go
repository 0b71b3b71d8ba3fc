package geom

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereValid(t *testing.T) {
	tests := []struct {
		name string
		s    Sphere
		want bool
	}{
		{"unit", NewSphere(0, 0, 0, 1), true},
		{"point", NewSphere(5, 5, 5, 0), true},
		{"negative radius", NewSphere(0, 0, 0, -1), false},
		{"nan center", NewSphere(float32(gomath.NaN()), 0, 0, 1), false},
		{"infinite radius", NewSphere(0, 0, 0, float32(gomath.Inf(1))), false},
	}
	for _, tt := range tests {
		if got := tt.s.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSphereMergeEnclosesBoth(t *testing.T) {
	tests := []struct {
		a, b Sphere
	}{
		{NewSphere(0, 0, 0, 1), NewSphere(10, 0, 0, 1)},
		{NewSphere(0, 0, 0, 5), NewSphere(1, 0, 0, 1)},
		{NewSphere(1, 0, 0, 1), NewSphere(0, 0, 0, 5)},
		{NewSphere(-100, 20, 300, 7), NewSphere(250, -4, -80, 30)},
		{NewSphere(3, 3, 3, 2), NewSphere(3, 3, 3, 2)},
	}
	for _, tt := range tests {
		m := tt.a.Merge(tt.b)
		if !m.Contains(tt.a) || !m.Contains(tt.b) {
			t.Errorf("Merge(%v, %v) = %v does not enclose both", tt.a, tt.b, m)
		}
	}
}

func TestSphereMergeIsTight(t *testing.T) {
	m := NewSphere(0, 0, 0, 1).Merge(NewSphere(10, 0, 0, 1))
	if gomath.Abs(float64(m.Radius-6)) > 0.01 {
		t.Errorf("Merge radius = %v, want ~6", m.Radius)
	}
	if !m.Center.ApproxEqualThreshold(mgl32.Vec3{5, 0, 0}, 1e-4) {
		t.Errorf("Merge center = %v, want (5,0,0)", m.Center)
	}
}

func TestSphereIntersects(t *testing.T) {
	a := NewSphere(0, 0, 0, 1)
	if !a.Intersects(NewSphere(2, 0, 0, 1)) {
		t.Error("touching spheres should intersect")
	}
	if a.Intersects(NewSphere(3, 0, 0, 1)) {
		t.Error("separate spheres should not intersect")
	}
}

func TestBoxTransform(t *testing.T) {
	b := NewBox(-1, -1, -1, 1, 1, 1)
	got := b.Transform(mgl32.Translate3D(10, 0, -5).Mul4(mgl32.Scale3D(2, 2, 2)))
	want := NewBox(8, -2, -7, 12, 2, -3)
	if !got.Min.ApproxEqual(want.Min) || !got.Max.ApproxEqual(want.Max) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
}

func TestBoxBoundingSphere(t *testing.T) {
	b := NewBox(0, 0, 0, 2, 2, 2)
	s := b.BoundingSphere()
	if !s.Center.ApproxEqual(mgl32.Vec3{1, 1, 1}) {
		t.Errorf("center = %v, want (1,1,1)", s.Center)
	}
	want := float32(gomath.Sqrt(3))
	if gomath.Abs(float64(s.Radius-want)) > 1e-5 {
		t.Errorf("radius = %v, want %v", s.Radius, want)
	}
}

func TestBoxValid(t *testing.T) {
	if !NewBox(0, 0, 0, 1, 1, 1).Valid() {
		t.Error("expected valid box")
	}
	if NewBox(2, 0, 0, 1, 1, 1).Valid() {
		t.Error("expected inverted box to be invalid")
	}
}

func quadrantFrustum() Frustum {
	return NewFrustum(
		NewPlane(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 0}),
		NewPlane(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 0}),
	)
}

func TestFrustumTestSphere(t *testing.T) {
	f := quadrantFrustum()
	tests := []struct {
		name string
		s    Sphere
		want Containment
	}{
		{"inside", NewSphere(100, 0, 100, 10), Inside},
		{"outside x", NewSphere(-100, 0, 100, 10), Outside},
		{"outside z", NewSphere(100, 0, -100, 10), Outside},
		{"straddling", NewSphere(5, 0, 100, 10), Intersecting},
		{"touching", NewSphere(-10, 0, 100, 10), Intersecting},
	}
	for _, tt := range tests {
		if got := f.TestSphere(tt.s); got != tt.want {
			t.Errorf("%s: TestSphere() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFrustumTestBox(t *testing.T) {
	f := quadrantFrustum()
	if got := f.TestBox(NewBox(1, 0, 1, 2, 2, 2)); got != Inside {
		t.Errorf("TestBox(inside) = %v", got)
	}
	if got := f.TestBox(NewBox(-3, 0, 1, -2, 2, 2)); got != Outside {
		t.Errorf("TestBox(outside) = %v", got)
	}
	if got := f.TestBox(NewBox(-1, 0, 1, 1, 2, 2)); got != Intersecting {
		t.Errorf("TestBox(straddling) = %v", got)
	}
}

func TestFrustumFromMatrix(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	f := FrustumFromMatrix(proj.Mul4(view))

	if len(f.Planes) != 6 {
		t.Fatalf("expected 6 planes, got %d", len(f.Planes))
	}
	for i, p := range f.Planes {
		if gomath.Abs(float64(p.Normal.Len()-1)) > 1e-4 {
			t.Errorf("plane %d not normalized: %v", i, p.Normal)
		}
	}

	tests := []struct {
		name string
		s    Sphere
		want Containment
	}{
		{"ahead", NewSphere(0, 0, -100, 1), Inside},
		{"behind", NewSphere(0, 0, 100, 1), Outside},
		{"beyond far", NewSphere(0, 0, -2000, 1), Outside},
		{"far left", NewSphere(-500, 0, -100, 1), Outside},
		{"crossing near", NewSphere(0, 0, -1, 2), Intersecting},
	}
	for _, tt := range tests {
		if got := f.TestSphere(tt.s); got != tt.want {
			t.Errorf("%s: TestSphere() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAcceptAll(t *testing.T) {
	f := AcceptAll()
	for _, s := range []Sphere{
		NewSphere(0, 0, 0, 1),
		NewSphere(1e6, -1e6, 1e6, 1000),
		NewSphere(-4096, 0, -4096, 0),
	} {
		if got := f.TestSphere(s); got != Inside {
			t.Errorf("AcceptAll().TestSphere(%v) = %v, want inside", s, got)
		}
	}
}

func TestContainmentString(t *testing.T) {
	if Outside.String() != "outside" || Inside.String() != "inside" || Intersecting.String() != "intersecting" {
		t.Error("unexpected containment names")
	}
}
