// Package geom provides the bounding volumes and clipping planes used for
// visibility tests. Vectors and matrices come from mathgl.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// mergeSlack grows merged spheres slightly so float rounding never leaves a
// child poking out of its parent.
const mergeSlack = 1e-5

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// NewSphere creates a sphere from its center coordinates and radius.
func NewSphere(x, y, z, radius float32) Sphere {
	return Sphere{Center: mgl32.Vec3{x, y, z}, Radius: radius}
}

// Valid reports whether the sphere has finite coordinates and a non-negative radius.
func (s Sphere) Valid() bool {
	if !finite(s.Radius) || s.Radius < 0 {
		return false
	}
	return finite(s.Center[0]) && finite(s.Center[1]) && finite(s.Center[2])
}

// XZ returns the center projected onto the ground plane.
func (s Sphere) XZ() mgl32.Vec2 {
	return mgl32.Vec2{s.Center[0], s.Center[2]}
}

// Contains reports whether o lies entirely inside s.
func (s Sphere) Contains(o Sphere) bool {
	return s.Center.Sub(o.Center).Len()+o.Radius <= s.Radius
}

// Intersects reports whether s and o overlap or touch.
func (s Sphere) Intersects(o Sphere) bool {
	r := s.Radius + o.Radius
	d := s.Center.Sub(o.Center)
	return d.Dot(d) <= r*r
}

// Merge returns the smallest sphere enclosing both s and o, padded by a
// relative slack.
func (s Sphere) Merge(o Sphere) Sphere {
	d := o.Center.Sub(s.Center)
	dist := d.Len()

	if dist+o.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= o.Radius {
		return o
	}

	r := (dist + s.Radius + o.Radius) / 2
	center := s.Center.Add(d.Mul((r - s.Radius) / dist))
	return Sphere{Center: center, Radius: r + r*mergeSlack}
}

func finite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
