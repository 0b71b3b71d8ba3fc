package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/distantland/internal/engine/camera"
	"github.com/Faultbox/distantland/internal/engine/render"
	"github.com/Faultbox/distantland/internal/landscape"
	"github.com/Faultbox/distantland/internal/logger"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

func setupLogging(c *cli.Context) error {
	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	return logger.Init(level, c.String("log-file"))
}

func sceneArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.Errorf("expected one scene file, got %d arguments", c.NArg())
	}
	return c.Args().First(), nil
}

func cmdGenerate(c *cli.Context) error {
	path, err := sceneArg(c)
	if err != nil {
		return err
	}

	opts := landscape.DefaultGenerateOptions()
	opts.Seed = c.Uint64("seed")
	opts.Count = c.Int("count")
	opts.Extent = float32(c.Float64("extent"))
	opts.Textures = c.Int("textures")
	opts.Meshes = c.Int("meshes")
	opts.AlphaRatio = c.Float64("alpha")

	scene := landscape.Generate(opts)
	if err := scene.Save(path); err != nil {
		return errors.Wrap(err, "saving scene")
	}
	logger.Info("scene generated", zap.String("path", path), zap.Int("statics", len(scene.Statics)))

	fmt.Fprintln(c.App.Writer, summaryTable(path, landscape.Summarize(scene)))
	return nil
}

// buildTree loads a scene and populates a tree configured from flags.
func buildTree(c *cli.Context) (*quadtree.Tree, *landscape.Scene, landscape.BuildReport, error) {
	path, err := sceneArg(c)
	if err != nil {
		return nil, nil, landscape.BuildReport{}, err
	}
	scene, err := landscape.Load(path)
	if err != nil {
		return nil, nil, landscape.BuildReport{}, err
	}

	cfg := quadtree.DefaultConfig()
	cfg.MaxDepth = c.Int("max-depth")
	cfg.MergeThreshold = c.Int("merge-threshold")
	tree, err := quadtree.New(cfg, logger.Named("quadtree"))
	if err != nil {
		return nil, nil, landscape.BuildReport{}, err
	}

	report, err := landscape.Populate(tree, scene, logger.Log)
	if err != nil {
		return nil, nil, landscape.BuildReport{}, err
	}
	return tree, scene, report, nil
}

func cmdStats(c *cli.Context) error {
	tree, scene, report, err := buildTree(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintln(w, summaryTable(c.Args().First(), landscape.Summarize(scene)))
	fmt.Fprintln(w, treeTable(report))
	fmt.Fprintln(w, depthTable(depthHistogram(tree)))
	return nil
}

func cmdQuery(c *cli.Context) error {
	tree, _, _, err := buildTree(c)
	if err != nil {
		return err
	}

	eye, err := vec3Flag(c, "eye")
	if err != nil {
		return err
	}
	target, err := vec3Flag(c, "target")
	if err != nil {
		return err
	}

	lens := camera.Lens{
		FOV:    float32(c.Float64("fov")),
		Aspect: float32(c.Float64("aspect")),
		Near:   1,
		Far:    float32(c.Float64("far")),
	}
	viewProj := lens.Projection().Mul4(mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0}))

	rows := compareOrders(tree, viewProj, eye, float32(c.Float64("radius")))

	w := c.App.Writer
	fmt.Fprintln(w, ordersTable(rows))

	// List from a state-sorted pass.
	pass := render.NewPass(tree, nullDevice{}, render.OrderState)
	pass.ViewRadius = float32(c.Float64("radius"))
	vs := pass.Cull(frustumFor(viewProj), eye)
	fmt.Fprintln(w, meshTable(vs, eye, c.Int("limit")))
	return nil
}

func vec3Flag(c *cli.Context, name string) (mgl32.Vec3, error) {
	v := c.Float64Slice(name)
	if len(v) != 3 {
		return mgl32.Vec3{}, errors.Errorf("--%s needs 3 components, got %d", name, len(v))
	}
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}, nil
}
