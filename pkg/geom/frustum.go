package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Containment is the result of testing a volume against a frustum.
type Containment uint8

const (
	// Outside means the volume is entirely behind at least one plane.
	Outside Containment = iota
	// Intersecting means the volume crosses at least one plane.
	Intersecting
	// Inside means the volume is in front of every plane.
	Inside
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// Plane is a half-space n·p + D >= 0. The normal points into the kept side.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// NewPlane creates a plane through point with the given inward normal.
func NewPlane(normal, point mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// Distance returns the signed distance from p to the plane.
// Positive values are on the inside.
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum is a convex volume bounded by inward facing planes.
type Frustum struct {
	Planes []Plane
}

// NewFrustum creates a frustum from an arbitrary set of planes.
// A frustum with no planes accepts everything.
func NewFrustum(planes ...Plane) Frustum {
	return Frustum{Planes: planes}
}

// FrustumFromMatrix extracts the six clip planes (left, right, bottom, top,
// near, far) from an OpenGL view-projection matrix. Planes are normalized so
// distances are in world units.
func FrustumFromMatrix(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	return Frustum{Planes: []Plane{
		planeFromRow(r3.Add(r0)),
		planeFromRow(r3.Sub(r0)),
		planeFromRow(r3.Add(r1)),
		planeFromRow(r3.Sub(r1)),
		planeFromRow(r3.Add(r2)),
		planeFromRow(r3.Sub(r2)),
	}}
}

func planeFromRow(r mgl32.Vec4) Plane {
	n := r.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: r[3] / l}
}

// TestSphere classifies s against every plane. A sphere touching a plane is
// intersecting, never outside.
func (f Frustum) TestSphere(s Sphere) Containment {
	result := Inside
	for _, p := range f.Planes {
		d := p.Distance(s.Center)
		if d < -s.Radius {
			return Outside
		}
		if d < s.Radius {
			result = Intersecting
		}
	}
	return result
}

// TestBox classifies b against every plane using the positive and negative
// vertices of the box.
func (f Frustum) TestBox(b Box) Containment {
	result := Inside
	for _, p := range f.Planes {
		var pos, neg mgl32.Vec3
		for i := 0; i < 3; i++ {
			if p.Normal[i] >= 0 {
				pos[i], neg[i] = b.Max[i], b.Min[i]
			} else {
				pos[i], neg[i] = b.Min[i], b.Max[i]
			}
		}
		if p.Distance(pos) < 0 {
			return Outside
		}
		if p.Distance(neg) < 0 {
			result = Intersecting
		}
	}
	return result
}

// Accepts reports whether s is at least partially inside.
func (f Frustum) Accepts(s Sphere) bool {
	return f.TestSphere(s) != Outside
}

// AcceptAll returns a frustum whose single plane keeps all finite space.
func AcceptAll() Frustum {
	return NewFrustum(Plane{Normal: mgl32.Vec3{0, 1, 0}, D: math.MaxFloat32})
}
