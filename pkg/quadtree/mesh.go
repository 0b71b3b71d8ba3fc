// Package quadtree implements the static spatial index used to cull distant
// land. Meshes are inserted once, the tree is optimized and its bounding
// volumes are computed, then it is queried every frame with a view frustum.
package quadtree

import (
	"cmp"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/geom"
)

// ResourceID is an opaque handle to a GPU resource (texture, vertex buffer,
// index buffer). The tree never interprets it; only identity matters.
type ResourceID uint64

// Mesh describes one static drawable batch. World-space volumes are fixed at
// insertion time.
type Mesh struct {
	Sphere    geom.Sphere
	Box       geom.Box
	Transform mgl32.Mat4

	Texture      ResourceID
	VertexBuffer ResourceID
	IndexBuffer  ResourceID
	Vertices     int
	Faces        int

	// Alpha meshes are blended and drawn after opaque ones.
	Alpha bool
}

// Equal reports whether m and o reference the same GPU resources with the
// same transform. Volumes are not compared.
func (m *Mesh) Equal(o *Mesh) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Texture == o.Texture &&
		m.VertexBuffer == o.VertexBuffer &&
		m.IndexBuffer == o.IndexBuffer &&
		m.Transform == o.Transform
}

// compareState orders opaque meshes before alpha ones, then groups by
// texture and geometry buffers.
func compareState(a, b *Mesh) int {
	if a.Alpha != b.Alpha {
		if a.Alpha {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Texture, b.Texture); c != 0 {
		return c
	}
	if c := cmp.Compare(a.VertexBuffer, b.VertexBuffer); c != 0 {
		return c
	}
	return cmp.Compare(a.IndexBuffer, b.IndexBuffer)
}

func compareTexture(a, b *Mesh) int {
	if c := cmp.Compare(a.Texture, b.Texture); c != 0 {
		return c
	}
	return cmp.Compare(a.VertexBuffer, b.VertexBuffer)
}
