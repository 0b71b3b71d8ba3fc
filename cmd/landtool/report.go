package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Faultbox/distantland/internal/engine/render"
	"github.com/Faultbox/distantland/internal/landscape"
	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

// nullDevice accepts draw calls without drawing. Submitter still counts
// the state changes.
type nullDevice struct{}

func (nullDevice) SetBlend(bool) {}
func (nullDevice) BindTexture(quadtree.ResourceID) {}
func (nullDevice) BindGeometry(_, _ quadtree.ResourceID) {}
func (nullDevice) SetWorld(mgl32.Mat4) {}
func (nullDevice) Draw(_, _ int) {}

func frustumFor(viewProj mgl32.Mat4) geom.Frustum {
	return geom.FrustumFromMatrix(viewProj)
}

type orderRow struct {
	order render.Order
	stats render.FrameStats
}

// compareOrders submits the same view once per order.
func compareOrders(tree *quadtree.Tree, viewProj mgl32.Mat4, eye mgl32.Vec3, radius float32) []orderRow {
	f := frustumFor(viewProj)
	var rows []orderRow
	for _, order := range []render.Order{render.OrderNone, render.OrderState, render.OrderTexture} {
		pass := render.NewPass(tree, nullDevice{}, order)
		pass.ViewRadius = radius
		rows = append(rows, orderRow{order: order, stats: pass.Run(f, eye)})
	}
	return rows
}

// depthHistogram counts nodes and meshes per depth.
func depthHistogram(tree *quadtree.Tree) [][2]int {
	var hist [][2]int
	tree.Walk(func(n quadtree.NodeInfo) bool {
		for len(hist) <= n.Depth {
			hist = append(hist, [2]int{})
		}
		hist[n.Depth][0]++
		hist[n.Depth][1] += len(n.Meshes)
		return true
	})
	return hist
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func summaryTable(path string, s landscape.Summary) string {
	t := newTable(path)
	t.AppendHeader(table.Row{"Statics", "Textures", "Meshes", "Alpha", "Vertices", "Faces"})
	t.AppendRow(table.Row{s.Statics, s.Textures, s.Meshes, s.Alpha, s.Vertices, s.Faces})
	return t.Render()
}

func treeTable(r landscape.BuildReport) string {
	t := newTable("Quadtree")
	t.AppendRows([]table.Row{
		{"Root center", fmt.Sprintf("%.1f, %.1f", r.Root.Center[0], r.Root.Center[1])},
		{"Root half-extent", fmt.Sprintf("%.1f", r.Root.Size)},
		{"Nodes", r.Tree.Nodes},
		{"Leaves", r.Tree.Leaves},
		{"Meshes", r.Tree.Meshes},
		{"Max depth", r.Tree.MaxDepth},
		{"Max meshes per node", r.Tree.MaxMeshesPerNode},
		{"Allocated nodes", r.Tree.AllocatedNodes},
		{"Slabs", r.Tree.Slabs},
		{"Collapsed", r.Collapsed},
		{"Build time", r.Elapsed.String()},
	})
	return t.Render()
}

func depthTable(hist [][2]int) string {
	t := newTable("Depth")
	t.AppendHeader(table.Row{"Depth", "Nodes", "Meshes"})
	for depth, h := range hist {
		t.AppendRow(table.Row{depth, h[0], h[1]})
	}
	return t.Render()
}

func ordersTable(rows []orderRow) string {
	t := newTable("Submission")
	t.AppendHeader(table.Row{"Order", "Visible", "Texture binds", "Geometry binds", "Blend switches", "Faces", "Nodes visited", "Nodes rejected"})
	for _, r := range rows {
		s := r.stats
		t.AppendRow(table.Row{r.order, s.Visible, s.TextureBinds, s.GeometryBinds, s.BlendSwitches, s.Faces, s.Query.NodesVisited, s.Query.NodesRejected})
	}
	return t.Render()
}

func meshTable(vs *quadtree.VisibleSet, eye mgl32.Vec3, limit int) string {
	t := newTable(fmt.Sprintf("Visible meshes (%d)", vs.Len()))
	t.AppendHeader(table.Row{"#", "Center", "Radius", "Distance", "Texture", "Mesh", "Alpha"})
	for i, m := range vs.All() {
		if i >= limit {
			break
		}
		c := m.Sphere.Center
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.0f, %.0f, %.0f", c[0], c[1], c[2]),
			fmt.Sprintf("%.1f", m.Sphere.Radius),
			fmt.Sprintf("%.0f", c.Sub(eye).Len()),
			m.Texture,
			m.VertexBuffer,
			m.Alpha,
		})
	}
	return t.Render()
}
