package quadtree

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/pool"
)

// NodeInfo is a read-only view of a node passed to Walk.
type NodeInfo struct {
	Depth     int
	Center    mgl32.Vec2
	Size      float32
	Sphere    geom.Sphere
	HasVolume bool
	Children  int
	Meshes    []*Mesh
}

// Walk visits reachable nodes depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(NodeInfo) bool) {
	if !t.root.Valid() {
		return
	}
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(nh pool.Handle, depth int, fn func(NodeInfo) bool) {
	n := t.nodes.Get(nh)

	meshes := make([]*Mesh, len(n.Meshes))
	for i, mh := range n.Meshes {
		meshes[i] = t.meshes.Get(mh)
	}

	info := NodeInfo{
		Depth:     depth,
		Center:    n.Center,
		Size:      n.Size,
		Sphere:    n.Sphere,
		HasVolume: n.hasVolume,
		Children:  n.ChildCount(),
		Meshes:    meshes,
	}
	if !fn(info) {
		return
	}
	for _, ch := range n.Children {
		if ch.Valid() {
			t.walk(ch, depth+1, fn)
		}
	}
}

// Stats summarizes the reachable part of the tree.
type Stats struct {
	Nodes            int
	Leaves           int
	Meshes           int
	MaxDepth         int
	MaxMeshesPerNode int
	// Allocated counts pool slots in use, including nodes dropped by Optimize.
	AllocatedNodes int
	Slabs          int
}

// Stats walks the tree and returns its shape.
func (t *Tree) Stats() Stats {
	s := Stats{
		AllocatedNodes: t.nodes.Len(),
		Slabs:          t.nodes.Slabs() + t.meshes.Slabs(),
	}
	t.Walk(func(n NodeInfo) bool {
		s.Nodes++
		if n.Children == 0 {
			s.Leaves++
		}
		s.Meshes += len(n.Meshes)
		s.MaxDepth = max(s.MaxDepth, n.Depth)
		s.MaxMeshesPerNode = max(s.MaxMeshesPerNode, len(n.Meshes))
		return true
	})
	return s
}
