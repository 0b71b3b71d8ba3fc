// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized
}

// ScreenToRay converts screen coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	farWorld := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	// Perspective divide
	near, far := nearWorld.Vec3(), farWorld.Vec3()
	if nearWorld[3] != 0 {
		near = near.Mul(1 / nearWorld[3])
	}
	if farWorld[3] != 0 {
		far = far.Mul(1 / farWorld[3])
	}

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction[1])) < 0.001 {
		return 0, 0, false // Parallel
	}

	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false // Behind the origin
	}
	return r.Origin[0] + t*r.Direction[0], r.Origin[2] + t*r.Direction[2], true
}

// IntersectBox tests ray intersection with an axis-aligned box.
// Returns the distance to the hit. If the ray starts inside the box, the
// exit distance is returned.
func (r Ray) IntersectBox(box geom.Box) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere returns the distance to the nearest hit on s.
func (r Ray) IntersectSphere(s geom.Sphere) (t float32, hit bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(gomath.Sqrt(float64(disc)))
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Pick returns the nearest mesh in vs whose box the ray hits. Spheres are
// tested first to skip most boxes.
func Pick(r Ray, vs *quadtree.VisibleSet) (*quadtree.Mesh, float32) {
	var best *quadtree.Mesh
	bestT := float32(gomath.MaxFloat32)
	for _, m := range vs.All() {
		if t, ok := r.IntersectSphere(m.Sphere); !ok || t > bestT {
			continue
		}
		if t, ok := r.IntersectBox(m.Box); ok && t < bestT {
			best, bestT = m, t
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestT
}
