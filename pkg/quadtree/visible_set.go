package quadtree

import (
	"iter"
	"slices"
)

// QueryStats counts the work done by visibility queries since the last RemoveAll.
type QueryStats struct {
	NodesVisited  int
	NodesRejected int
	MeshesTested  int
}

// VisibleSet collects the meshes that passed culling for one frame. It holds
// references into the tree and never modifies them; it must not outlive a
// Clear of the tree that filled it.
type VisibleSet struct {
	meshes []*Mesh
	stats  QueryStats
}

// NewVisibleSet creates a set with room for capacity meshes.
func NewVisibleSet(capacity int) *VisibleSet {
	return &VisibleSet{meshes: make([]*Mesh, 0, capacity)}
}

// AddMesh appends m.
func (v *VisibleSet) AddMesh(m *Mesh) {
	v.meshes = append(v.meshes, m)
}

// RemoveAll empties the set, keeping its storage for the next frame.
func (v *VisibleSet) RemoveAll() {
	clear(v.meshes)
	v.meshes = v.meshes[:0]
	v.stats = QueryStats{}
}

// Len returns the number of collected meshes.
func (v *VisibleSet) Len() int {
	return len(v.meshes)
}

// At returns the i-th mesh in submission order.
func (v *VisibleSet) At(i int) *Mesh {
	return v.meshes[i]
}

// All iterates meshes in submission order.
func (v *VisibleSet) All() iter.Seq2[int, *Mesh] {
	return func(yield func(int, *Mesh) bool) {
		for i, m := range v.meshes {
			if !yield(i, m) {
				return
			}
		}
	}
}

// Stats returns query counters.
func (v *VisibleSet) Stats() QueryStats {
	return v.stats
}

// SortByState orders meshes to minimize pipeline changes: opaque first, then
// by texture and geometry buffers. The sort is stable.
func (v *VisibleSet) SortByState() {
	slices.SortStableFunc(v.meshes, compareState)
}

// SortByTexture groups meshes by texture, then vertex buffer. The sort is stable.
func (v *VisibleSet) SortByTexture() {
	slices.SortStableFunc(v.meshes, compareTexture)
}
