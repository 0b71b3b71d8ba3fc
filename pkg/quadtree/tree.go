package quadtree

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/pool"
)

// Config holds tree construction limits.
type Config struct {
	// MaxDepth bounds subdivision; meshes reaching it stay where they are.
	MaxDepth int `yaml:"max_depth"`
	// MergeThreshold is the largest mesh count a leaf may hold and still be
	// folded into its parent by Optimize.
	MergeThreshold int `yaml:"merge_threshold"`
	// SlabSize is the number of nodes or meshes per pool slab.
	SlabSize int `yaml:"slab_size"`
	// MaxSlabs limits each pool; 0 means unlimited.
	MaxSlabs int `yaml:"max_slabs"`
}

// DefaultConfig returns the limits used for distant land.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       6,
		MergeThreshold: 1,
		SlabSize:       4096,
		MaxSlabs:       0,
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var err error
	if c.MaxDepth < 0 {
		err = multierr.Append(err, errors.Errorf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.MergeThreshold < 0 {
		err = multierr.Append(err, errors.Errorf("merge_threshold must be >= 0, got %d", c.MergeThreshold))
	}
	if c.SlabSize <= 0 {
		err = multierr.Append(err, errors.Errorf("slab_size must be > 0, got %d", c.SlabSize))
	}
	if c.MaxSlabs < 0 {
		err = multierr.Append(err, errors.Errorf("max_slabs must be >= 0, got %d", c.MaxSlabs))
	}
	return err
}

// Tree owns the root node and the node and mesh pools.
//
// Build once (SetBoxCenter, SetBoxSize, AddMesh..., Optimize, CalcVolume),
// then query. The tree is not safe for concurrent mutation; concurrent
// queries on a built tree only read it.
type Tree struct {
	cfg    Config
	logger *zap.Logger

	nodes  *pool.Arena[Node]
	meshes *pool.Arena[Mesh]
	root   pool.Handle

	center mgl32.Vec2
	size   float32
	built  bool
}

// New creates an empty tree. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "quadtree config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	nodes, err := pool.NewArena[Node](cfg.SlabSize, cfg.MaxSlabs)
	if err != nil {
		return nil, err
	}
	meshes, err := pool.NewArena[Mesh](cfg.SlabSize, cfg.MaxSlabs)
	if err != nil {
		return nil, err
	}

	return &Tree{
		cfg:    cfg,
		logger: logger,
		nodes:  nodes,
		meshes: meshes,
	}, nil
}

// Config returns the construction limits.
func (t *Tree) Config() Config {
	return t.cfg
}

// SetBoxCenter sets the root footprint center (X, Z).
func (t *Tree) SetBoxCenter(center mgl32.Vec2) error {
	if t.root.Valid() {
		return errors.Wrap(ErrNotEmpty, "set box center")
	}
	if !finite(center[0]) || !finite(center[1]) {
		return errors.Wrapf(ErrInvalidBox, "center %v", center)
	}
	t.center = center
	return nil
}

// SetBoxSize sets the root footprint half-extent.
func (t *Tree) SetBoxSize(size float32) error {
	if t.root.Valid() {
		return errors.Wrap(ErrNotEmpty, "set box size")
	}
	if !finite(size) || size <= 0 {
		return errors.Wrapf(ErrInvalidBox, "size %v", size)
	}
	t.size = size
	return nil
}

// BoxCenter returns the root footprint center.
func (t *Tree) BoxCenter() mgl32.Vec2 {
	return t.center
}

// BoxSize returns the root footprint half-extent.
func (t *Tree) BoxSize() float32 {
	return t.size
}

// AddMesh copies m into the mesh pool and attaches it to the shallowest node
// whose footprint contains its bounding sphere. If a pool cannot grow the
// whole tree is cleared and ErrPoolExhausted is returned.
func (t *Tree) AddMesh(m Mesh) error {
	if t.size <= 0 {
		return errors.Wrap(ErrInvalidBox, "root box size not set")
	}
	if !m.Sphere.Valid() {
		return errors.Wrapf(ErrInvalidMesh, "bounding sphere %v", m.Sphere)
	}
	if !m.Box.Valid() {
		return errors.Wrapf(ErrInvalidMesh, "bounding box %v", m.Box)
	}

	if !t.root.Valid() {
		rh, root, err := t.nodes.Alloc()
		if err != nil {
			return t.fail(err)
		}
		root.Center, root.Size = t.center, t.size
		t.root = rh
	}

	mh, stored, err := t.meshes.Alloc()
	if err != nil {
		return t.fail(err)
	}
	*stored = m

	if err := t.addMesh(t.root, mh, m.Sphere, t.cfg.MaxDepth); err != nil {
		return t.fail(err)
	}
	t.built = false
	return nil
}

func (t *Tree) fail(err error) error {
	t.logger.Error("quadtree storage exhausted, discarding tree",
		zap.Error(err),
		zap.Int("nodes", t.nodes.Len()),
		zap.Int("meshes", t.meshes.Len()),
	)
	t.Clear()
	return errors.Wrap(err, "add mesh")
}

// Optimize folds sparse leaves into their parents. Call it once after all
// insertions. It returns true when the tree holds nothing.
func (t *Tree) Optimize() bool {
	if !t.root.Valid() {
		return true
	}

	before := t.Stats()
	empty := t.optimize(t.root)
	after := t.Stats()
	t.built = false

	t.logger.Debug("quadtree optimized",
		zap.Int("nodes_before", before.Nodes),
		zap.Int("nodes_after", after.Nodes),
		zap.Int("depth_before", before.MaxDepth),
		zap.Int("depth_after", after.MaxDepth),
		zap.Bool("empty", empty),
	)
	return empty
}

// CalcVolume computes every node's bounding sphere. Call it after Optimize
// and before the first query.
func (t *Tree) CalcVolume() {
	if !t.root.Valid() {
		t.built = true
		return
	}
	s, ok := t.calcVolume(t.root)
	t.built = true

	t.logger.Debug("quadtree volumes computed",
		zap.Bool("has_volume", ok),
		zap.Float32("radius", s.Radius),
		zap.Int("meshes", t.meshes.Len()),
	)
}

// Built reports whether volumes are up to date and the tree can be queried.
func (t *Tree) Built() bool {
	return t.built
}

// GetVisibleMeshes appends every mesh whose bounding sphere is not entirely
// outside f. The caller clears out between frames.
func (t *Tree) GetVisibleMeshes(f geom.Frustum, out *VisibleSet) {
	if !t.queryable() {
		return
	}
	t.collect(t.root, &f, nil, out, false)
}

// GetVisibleMeshesWithin is GetVisibleMeshes restricted to meshes that also
// intersect view, such as a shadow or reflection volume.
func (t *Tree) GetVisibleMeshesWithin(f geom.Frustum, view geom.Sphere, out *VisibleSet) {
	if !t.queryable() {
		return
	}
	t.collect(t.root, &f, &view, out, false)
}

func (t *Tree) queryable() bool {
	return t.built && t.root.Valid()
}

// Clear releases all nodes and meshes in bulk. The root footprint and
// configuration are kept. Meshes previously returned by queries must not be
// used afterwards.
func (t *Tree) Clear() {
	t.nodes.Reset()
	t.meshes.Reset()
	t.root = 0
	t.built = false
}

// MeshCount returns the number of inserted meshes.
func (t *Tree) MeshCount() int {
	return t.meshes.Len()
}

func finite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
