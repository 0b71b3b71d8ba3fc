package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBox creates a box from its corners.
func NewBox(minX, minY, minZ, maxX, maxY, maxZ float32) Box {
	return Box{
		Min: mgl32.Vec3{minX, minY, minZ},
		Max: mgl32.Vec3{maxX, maxY, maxZ},
	}
}

// Valid reports whether Min <= Max on every axis and all coordinates are finite.
func (b Box) Valid() bool {
	for i := 0; i < 3; i++ {
		if !finite(b.Min[i]) || !finite(b.Max[i]) || b.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the box midpoint.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents returns the half sizes along each axis.
func (b Box) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// BoundingSphere returns the sphere through the box corners.
func (b Box) BoundingSphere() Sphere {
	return Sphere{Center: b.Center(), Radius: b.Extents().Len()}
}

// Union returns the box enclosing b and o.
func (b Box) Union(o Box) Box {
	var out Box
	for i := 0; i < 3; i++ {
		out.Min[i] = min(b.Min[i], o.Min[i])
		out.Max[i] = max(b.Max[i], o.Max[i])
	}
	return out
}

// Transform returns the axis-aligned box enclosing b after transforming its
// eight corners by m.
func (b Box) Transform(m mgl32.Mat4) Box {
	mn, mx := b.Min, b.Max
	corners := [8]mgl32.Vec3{
		{mn[0], mn[1], mn[2]},
		{mx[0], mn[1], mn[2]},
		{mn[0], mx[1], mn[2]},
		{mx[0], mx[1], mn[2]},
		{mn[0], mn[1], mx[2]},
		{mx[0], mn[1], mx[2]},
		{mn[0], mx[1], mx[2]},
		{mx[0], mx[1], mx[2]},
	}

	first := mgl32.TransformCoordinate(corners[0], m)
	out := Box{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := mgl32.TransformCoordinate(c, m)
		for i := 0; i < 3; i++ {
			out.Min[i] = min(out.Min[i], p[i])
			out.Max[i] = max(out.Max[i], p[i])
		}
	}
	return out
}
