package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	viewProj := mgl32.Perspective(mgl32.DegToRad(60), 1, 1, 1000).
		Mul4(mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))

	r := ScreenToRay(400, 300, 800, 600, viewProj.Inv())
	if !r.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-3) {
		t.Errorf("Direction = %v, want {0 0 -1}", r.Direction)
	}
	if !r.Origin.ApproxEqualThreshold(mgl32.Vec3{0, 0, 9}, 1e-2) {
		t.Errorf("Origin = %v, want {0 0 9}", r.Origin)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{1, -1, 0}.Normalize()}
	x, z, ok := r.IntersectPlaneY(0)
	if !ok || abs(x-10) > 1e-4 || z != 0 {
		t.Errorf("IntersectPlaneY(0) = (%v, %v, %v), want (10, 0, true)", x, z, ok)
	}
	if _, _, ok := r.IntersectPlaneY(20); ok {
		t.Errorf("IntersectPlaneY(20) hit behind the origin")
	}
	flat := Ray{Direction: mgl32.Vec3{1, 0, 0}}
	if _, _, ok := flat.IntersectPlaneY(0); ok {
		t.Errorf("parallel ray hit the plane")
	}
}

func TestIntersectBox(t *testing.T) {
	box := geom.NewBox(-1, -1, -1, 1, 1, 1)
	tests := []struct {
		name  string
		ray   Ray
		want  float32
		wantH bool
	}{
		{"front", Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}, 4, true},
		{"inside", Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}, 1, true},
		{"miss", Ray{Origin: mgl32.Vec3{3, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}, 0, false},
		{"behind", Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}}, 0, false},
	}
	for _, tt := range tests {
		got, hit := tt.ray.IntersectBox(box)
		if hit != tt.wantH || abs(got-tt.want) > 1e-5 {
			t.Errorf("%s: IntersectBox() = (%v, %v), want (%v, %v)", tt.name, got, hit, tt.want, tt.wantH)
		}
	}
}

func TestIntersectSphere(t *testing.T) {
	s := geom.Sphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 2}
	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	if got, ok := r.IntersectSphere(s); !ok || abs(got-8) > 1e-5 {
		t.Errorf("IntersectSphere() = (%v, %v), want (8, true)", got, ok)
	}
	r.Origin = mgl32.Vec3{5, 0, 10}
	if _, ok := r.IntersectSphere(s); ok {
		t.Errorf("IntersectSphere() hit, want miss")
	}
}

func TestPickNearest(t *testing.T) {
	mesh := func(z float32) *quadtree.Mesh {
		return &quadtree.Mesh{
			Sphere: geom.Sphere{Center: mgl32.Vec3{0, 0, z}, Radius: 1.8},
			Box:    geom.NewBox(-1, -1, z-1, 1, 1, z+1),
		}
	}
	far, near, aside := mesh(-20), mesh(-5), mesh(0)
	aside.Sphere.Center[0], aside.Box.Min[0], aside.Box.Max[0] = 10, 9, 11

	vs := quadtree.NewVisibleSet(3)
	vs.AddMesh(far)
	vs.AddMesh(aside)
	vs.AddMesh(near)

	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	got, dist := Pick(r, vs)
	if got != near {
		t.Fatalf("Pick() = %v, want the near mesh", got)
	}
	if abs(dist-14) > 1e-5 {
		t.Errorf("distance = %v, want 14", dist)
	}

	r.Direction = mgl32.Vec3{0, 0, 1}
	if got, _ := Pick(r, vs); got != nil {
		t.Errorf("Pick() = %v, want nil", got)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
