package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

// Order is the visible set ordering applied before submission.
type Order uint8

const (
	OrderNone Order = iota
	OrderState
	OrderTexture
)

// ParseOrder maps a config name to an Order.
func ParseOrder(name string) (Order, error) {
	switch name {
	case "none", "":
		return OrderNone, nil
	case "state":
		return OrderState, nil
	case "texture":
		return OrderTexture, nil
	}
	return OrderNone, errors.Errorf("unknown sort order %q", name)
}

func (o Order) String() string {
	switch o {
	case OrderState:
		return "state"
	case OrderTexture:
		return "texture"
	default:
		return "none"
	}
}

// Pass culls a tree, orders the result and submits it. The visible set is
// reused between frames.
type Pass struct {
	tree       *quadtree.Tree
	submitter  *Submitter
	visible    *quadtree.VisibleSet
	Order      Order
	ViewRadius float32 // 0 disables the view sphere
}

// NewPass creates a pass drawing tree on dev.
func NewPass(tree *quadtree.Tree, dev Device, order Order) *Pass {
	return &Pass{
		tree:      tree,
		submitter: NewSubmitter(dev),
		visible:   quadtree.NewVisibleSet(1024),
		Order:     order,
	}
}

// Cull fills the visible set for the frustum and eye position.
func (p *Pass) Cull(f geom.Frustum, eye mgl32.Vec3) *quadtree.VisibleSet {
	p.visible.RemoveAll()
	if p.ViewRadius > 0 {
		p.tree.GetVisibleMeshesWithin(f, geom.Sphere{Center: eye, Radius: p.ViewRadius}, p.visible)
	} else {
		p.tree.GetVisibleMeshes(f, p.visible)
	}

	switch p.Order {
	case OrderState:
		p.visible.SortByState()
	case OrderTexture:
		p.visible.SortByTexture()
	}
	return p.visible
}

// Run culls and submits one frame.
func (p *Pass) Run(f geom.Frustum, eye mgl32.Vec3) FrameStats {
	return p.submitter.Submit(p.Cull(f, eye))
}

// Visible returns the set produced by the last Cull.
func (p *Pass) Visible() *quadtree.VisibleSet {
	return p.visible
}
