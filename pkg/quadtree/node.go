package quadtree

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/pool"
)

// Quadrants of a node on the X/Z plane. Bit 0 is east (+X), bit 1 is north (+Z).
const (
	QuadSW = iota
	QuadSE
	QuadNW
	QuadNE
)

// Node is a square cell of the tree. Children and meshes are handles into the
// owning tree's arenas; an invalid handle marks an absent child.
type Node struct {
	Children [4]pool.Handle

	// Center is the footprint center as (X, Z). Size is the half-extent.
	Center mgl32.Vec2
	Size   float32

	Sphere    geom.Sphere
	hasVolume bool

	// Meshes that fit in no single child, or were pushed here at max depth.
	Meshes []pool.Handle
}

// ChildCount returns the number of present children.
func (n *Node) ChildCount() int {
	count := 0
	for _, c := range n.Children {
		if c.Valid() {
			count++
		}
	}
	return count
}

// Empty reports whether the node has neither children nor meshes.
func (n *Node) Empty() bool {
	return len(n.Meshes) == 0 && n.ChildCount() == 0
}

// quadrant picks the child cell for a point by comparing against the center.
func (n *Node) quadrant(p mgl32.Vec2) int {
	q := QuadSW
	if p[0] >= n.Center[0] {
		q |= QuadSE
	}
	if p[1] >= n.Center[1] {
		q |= QuadNW
	}
	return q
}

// childFootprint returns the center and half-extent of quadrant q.
func (n *Node) childFootprint(q int) (mgl32.Vec2, float32) {
	half := n.Size / 2
	c := n.Center
	if q&QuadSE != 0 {
		c[0] += half
	} else {
		c[0] -= half
	}
	if q&QuadNW != 0 {
		c[1] += half
	} else {
		c[1] -= half
	}
	return c, half
}

// fit returns the quadrant that fully contains s on the X/Z plane.
// Spheres straddling a center line fit no quadrant.
func (n *Node) fit(s geom.Sphere) (int, bool) {
	p := s.XZ()
	q := n.quadrant(p)
	c, half := n.childFootprint(q)
	return q, footprintContains(c, half, p, s.Radius)
}

// footprintContains reports whether a circle lies inside the square.
func footprintContains(center mgl32.Vec2, half float32, p mgl32.Vec2, r float32) bool {
	dx := p[0] - center[0]
	dz := p[1] - center[1]
	return abs(dx)+r <= half && abs(dz)+r <= half
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// addMesh pushes mesh mh down from node nh until it no longer fits a single
// quadrant or depth runs out. Missing children are created on the way.
func (t *Tree) addMesh(nh, mh pool.Handle, s geom.Sphere, depth int) error {
	for {
		n := t.nodes.Get(nh)
		q, ok := n.fit(s)
		if depth == 0 || !ok {
			n.Meshes = append(n.Meshes, mh)
			return nil
		}

		child := n.Children[q]
		if !child.Valid() {
			ch, cn, err := t.nodes.Alloc()
			if err != nil {
				return err
			}
			cn.Center, cn.Size = n.childFootprint(q)
			n.Children[q] = ch
			child = ch
		}

		nh = child
		depth--
	}
}

// optimize merges sparse leaves into their parents bottom-up and reports
// whether nh ended up empty.
func (t *Tree) optimize(nh pool.Handle) bool {
	n := t.nodes.Get(nh)
	for i, ch := range n.Children {
		if !ch.Valid() {
			continue
		}

		empty := t.optimize(ch)
		c := t.nodes.Get(ch)
		if empty || (c.ChildCount() == 0 && len(c.Meshes) <= t.cfg.MergeThreshold) {
			n.Meshes = append(n.Meshes, c.Meshes...)
			c.Meshes = nil
			n.Children[i] = 0
		}
	}
	return n.Empty()
}

// calcVolume recomputes bounding spheres bottom-up. The second result is
// false for subtrees without meshes.
func (t *Tree) calcVolume(nh pool.Handle) (geom.Sphere, bool) {
	n := t.nodes.Get(nh)

	var s geom.Sphere
	ok := false
	grow := func(o geom.Sphere) {
		if !ok {
			s, ok = o, true
			return
		}
		s = s.Merge(o)
	}

	for _, mh := range n.Meshes {
		grow(t.meshes.Get(mh).Sphere)
	}
	for _, ch := range n.Children {
		if !ch.Valid() {
			continue
		}
		if cs, cok := t.calcVolume(ch); cok {
			grow(cs)
		}
	}

	n.Sphere, n.hasVolume = s, ok
	return s, ok
}

// collect appends the visible meshes under nh. Once a node is fully inside
// the frustum, plane tests are skipped for the whole subtree.
func (t *Tree) collect(nh pool.Handle, f *geom.Frustum, view *geom.Sphere, out *VisibleSet, inside bool) {
	n := t.nodes.Get(nh)
	out.stats.NodesVisited++
	if !n.hasVolume {
		return
	}
	if view != nil && !view.Intersects(n.Sphere) {
		out.stats.NodesRejected++
		return
	}
	if !inside {
		switch f.TestSphere(n.Sphere) {
		case geom.Outside:
			out.stats.NodesRejected++
			return
		case geom.Inside:
			inside = true
		}
	}

	for _, mh := range n.Meshes {
		m := t.meshes.Get(mh)
		if view != nil && !view.Intersects(m.Sphere) {
			continue
		}
		if !inside {
			out.stats.MeshesTested++
			if !f.Accepts(m.Sphere) {
				continue
			}
		}
		out.AddMesh(m)
	}

	for _, ch := range n.Children {
		if ch.Valid() {
			t.collect(ch, f, view, out, inside)
		}
	}
}
