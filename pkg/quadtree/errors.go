package quadtree

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/distantland/pkg/pool"
)

var (
	// ErrInvalidBox is returned for a missing, non-positive or non-finite root footprint.
	ErrInvalidBox = errors.New("invalid root box")
	// ErrNotEmpty is returned when the root footprint is changed after insertion.
	ErrNotEmpty = errors.New("tree is not empty")
	// ErrInvalidMesh is returned for meshes with degenerate bounding volumes.
	ErrInvalidMesh = errors.New("invalid mesh")
	// ErrPoolExhausted is returned when node or mesh storage cannot grow.
	// The tree is cleared before it is returned.
	ErrPoolExhausted = pool.ErrExhausted
)
