// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

// LineStride is the float count per line vertex: [x, y, z, r, g, b].
const LineStride = 6

// BoxLineVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxLineVertexCount = 24

// depthColors tints quadtree levels, cycling past the end.
var depthColors = [...]mgl32.Vec3{
	{1.0, 0.3, 0.3},
	{1.0, 0.7, 0.2},
	{0.9, 1.0, 0.3},
	{0.3, 1.0, 0.4},
	{0.3, 0.8, 1.0},
	{0.5, 0.4, 1.0},
	{1.0, 0.4, 0.9},
}

// DepthColor returns the overlay color for a tree depth.
func DepthColor(depth int) mgl32.Vec3 {
	return depthColors[depth%len(depthColors)]
}

func appendLine(dst []float32, a, b, c mgl32.Vec3) []float32 {
	return append(dst,
		a[0], a[1], a[2], c[0], c[1], c[2],
		b[0], b[1], b[2], c[0], c[1], c[2],
	)
}

// AppendBoxLines appends the 12 edges of b.
func AppendBoxLines(dst []float32, b geom.Box, color mgl32.Vec3) []float32 {
	lo, hi := b.Min, b.Max
	corner := func(x, y, z bool) mgl32.Vec3 {
		v := lo
		if x {
			v[0] = hi[0]
		}
		if y {
			v[1] = hi[1]
		}
		if z {
			v[2] = hi[2]
		}
		return v
	}
	for _, y := range []bool{false, true} {
		// Bottom and top faces
		dst = appendLine(dst, corner(false, y, false), corner(true, y, false), color)
		dst = appendLine(dst, corner(true, y, false), corner(true, y, true), color)
		dst = appendLine(dst, corner(true, y, true), corner(false, y, true), color)
		dst = appendLine(dst, corner(false, y, true), corner(false, y, false), color)
	}
	// Vertical edges
	for _, xz := range [4][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		dst = appendLine(dst, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]), color)
	}
	return dst
}

// NodeLines returns the footprint square of every node down to maxDepth,
// drawn at height y and colored by depth. A negative maxDepth draws all.
func NodeLines(tree *quadtree.Tree, y float32, maxDepth int) []float32 {
	var dst []float32
	tree.Walk(func(n quadtree.NodeInfo) bool {
		if maxDepth >= 0 && n.Depth > maxDepth {
			return true
		}
		c := DepthColor(n.Depth)
		x0, x1 := n.Center[0]-n.Size, n.Center[0]+n.Size
		z0, z1 := n.Center[1]-n.Size, n.Center[1]+n.Size
		dst = appendLine(dst, mgl32.Vec3{x0, y, z0}, mgl32.Vec3{x1, y, z0}, c)
		dst = appendLine(dst, mgl32.Vec3{x1, y, z0}, mgl32.Vec3{x1, y, z1}, c)
		dst = appendLine(dst, mgl32.Vec3{x1, y, z1}, mgl32.Vec3{x0, y, z1}, c)
		dst = appendLine(dst, mgl32.Vec3{x0, y, z1}, mgl32.Vec3{x0, y, z0}, c)
		return true
	})
	return dst
}

// VisibleBoxLines returns the bounding box of every mesh in vs, reusing dst.
func VisibleBoxLines(dst []float32, vs *quadtree.VisibleSet, opaque, alpha mgl32.Vec3) []float32 {
	dst = dst[:0]
	for _, m := range vs.All() {
		c := opaque
		if m.Alpha {
			c = alpha
		}
		dst = AppendBoxLines(dst, m.Box, c)
	}
	return dst
}
