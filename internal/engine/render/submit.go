// Package render submits culled distant land to a graphics device.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/distantland/pkg/quadtree"
)

// Device receives draw state and draw calls.
type Device interface {
	SetBlend(enabled bool)
	BindTexture(id quadtree.ResourceID)
	BindGeometry(vertexBuffer, indexBuffer quadtree.ResourceID)
	SetWorld(world mgl32.Mat4)
	Draw(vertices, faces int)
}

// FrameStats counts the work done for one frame.
type FrameStats struct {
	Visible       int
	Draws         int
	Faces         int
	Vertices      int
	TextureBinds  int
	GeometryBinds int
	BlendSwitches int
	Query         quadtree.QueryStats
}

// StateChanges returns the total number of binds and blend switches.
func (s FrameStats) StateChanges() int {
	return s.TextureBinds + s.GeometryBinds + s.BlendSwitches
}

// Submitter draws visible sets on a device.
type Submitter struct {
	dev Device
}

// NewSubmitter creates a submitter for dev.
func NewSubmitter(dev Device) *Submitter {
	return &Submitter{dev: dev}
}

// Submit draws every mesh in set order. Blend, texture and geometry state
// is only re-issued when it differs from the previous mesh.
func (s *Submitter) Submit(vs *quadtree.VisibleSet) FrameStats {
	st := FrameStats{Visible: vs.Len(), Query: vs.Stats()}

	var prev *quadtree.Mesh
	for _, m := range vs.All() {
		if prev == nil || m.Alpha != prev.Alpha {
			s.dev.SetBlend(m.Alpha)
			st.BlendSwitches++
		}
		if prev == nil || m.Texture != prev.Texture {
			s.dev.BindTexture(m.Texture)
			st.TextureBinds++
		}
		if prev == nil || m.VertexBuffer != prev.VertexBuffer || m.IndexBuffer != prev.IndexBuffer {
			s.dev.BindGeometry(m.VertexBuffer, m.IndexBuffer)
			st.GeometryBinds++
		}
		s.dev.SetWorld(m.Transform)
		s.dev.Draw(m.Vertices, m.Faces)

		st.Draws++
		st.Faces += m.Faces
		st.Vertices += m.Vertices
		prev = m
	}
	return st
}
