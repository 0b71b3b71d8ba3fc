package landscape

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Faultbox/distantland/pkg/quadtree"
)

// BuildReport describes a finished Populate call.
type BuildReport struct {
	Root      Root
	Inserted  int
	Collapsed bool
	Tree      quadtree.Stats
	Elapsed   time.Duration
}

// Populate clears the tree, sets its footprint from the scene and inserts
// every static. The tree is optimized and its volumes computed, so it is
// ready for queries when Populate returns without error.
func Populate(tree *quadtree.Tree, sc *Scene, logger *zap.Logger) (BuildReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	tree.Clear()
	root := sc.FitRoot()
	if err := tree.SetBoxCenter(mgl32.Vec2{root.Center[0], root.Center[1]}); err != nil {
		return BuildReport{}, errors.Wrap(err, "setting root center")
	}
	if err := tree.SetBoxSize(root.Size); err != nil {
		return BuildReport{}, errors.Wrap(err, "setting root size")
	}

	for i, s := range sc.Statics {
		if err := tree.AddMesh(s.ToMesh()); err != nil {
			return BuildReport{}, errors.Wrapf(err, "adding static %d (%s)", i, s.Name)
		}
	}

	collapsed := tree.Optimize()
	tree.CalcVolume()

	report := BuildReport{
		Root:      root,
		Inserted:  len(sc.Statics),
		Collapsed: collapsed,
		Tree:      tree.Stats(),
		Elapsed:   time.Since(start),
	}
	logger.Info("distant land built",
		zap.Int("statics", report.Inserted),
		zap.Int("nodes", report.Tree.Nodes),
		zap.Int("max_depth", report.Tree.MaxDepth),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// Summary aggregates scene content.
type Summary struct {
	Statics  int
	Textures int
	Meshes   int
	Alpha    int
	Vertices int
	Faces    int
}

// Summarize counts distinct resources and totals of a scene.
func Summarize(sc *Scene) Summary {
	return Summary{
		Statics:  len(sc.Statics),
		Textures: len(lo.Uniq(lo.Map(sc.Statics, func(s Static, _ int) uint64 { return s.Texture }))),
		Meshes:   len(lo.Uniq(lo.Map(sc.Statics, func(s Static, _ int) uint64 { return s.Mesh }))),
		Alpha:    lo.CountBy(sc.Statics, func(s Static) bool { return s.Alpha }),
		Vertices: lo.SumBy(sc.Statics, func(s Static) int { return s.Vertices }),
		Faces:    lo.SumBy(sc.Statics, func(s Static) int { return s.Faces }),
	}
}
