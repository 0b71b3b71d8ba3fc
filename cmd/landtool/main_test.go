package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/distantland/internal/landscape"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run(append([]string{"landtool"}, args...)))
	return out.String()
}

func TestGenerateStatsQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	out := run(t, "generate", "--seed", "3", "--count", "300", "--extent", "4096", path)
	assert.Contains(t, out, "300")

	scene, err := landscape.Load(path)
	require.NoError(t, err)
	assert.Len(t, scene.Statics, 300)

	out = run(t, "stats", path)
	assert.Contains(t, out, "Quadtree")
	assert.Contains(t, out, "Depth")

	out = run(t, "query", "--eye", "0,300,1500", "--target", "0,0,0", "--limit", "3", path)
	assert.Contains(t, out, "Submission")
	assert.Contains(t, out, "texture")
	assert.Contains(t, out, "Visible meshes")
}

func TestCommandErrors(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}

	assert.Error(t, app.Run([]string{"landtool", "stats"}))
	assert.Error(t, app.Run([]string{"landtool", "stats", filepath.Join(t.TempDir(), "missing.yaml")}))

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, landscape.Generate(landscape.GenerateOptions{Seed: 1, Count: 5}).Save(path))
	assert.Error(t, app.Run([]string{"landtool", "query", "--eye", "1,2", path}))
}

func populated(t *testing.T) *quadtree.Tree {
	t.Helper()
	tree, err := quadtree.New(quadtree.DefaultConfig(), nil)
	require.NoError(t, err)
	opts := landscape.DefaultGenerateOptions()
	opts.Count = 500
	opts.Extent = 4096
	_, err = landscape.Populate(tree, landscape.Generate(opts), nil)
	require.NoError(t, err)
	return tree
}

func TestDepthHistogram(t *testing.T) {
	tree := populated(t)
	hist := depthHistogram(tree)
	require.NotEmpty(t, hist)
	assert.Equal(t, 1, hist[0][0])

	nodes, meshes := 0, 0
	for _, h := range hist {
		nodes += h[0]
		meshes += h[1]
	}
	stats := tree.Stats()
	assert.Equal(t, stats.Nodes, nodes)
	assert.Equal(t, 500, meshes)
}

func TestCompareOrders(t *testing.T) {
	tree := populated(t)
	eye := mgl32.Vec3{0, 300, 2500}
	viewProj := mgl32.Perspective(mgl32.DegToRad(60), 1.5, 1, 12000).
		Mul4(mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))

	rows := compareOrders(tree, viewProj, eye, 0)
	require.Len(t, rows, 3)
	require.Positive(t, rows[0].stats.Visible)
	for _, r := range rows[1:] {
		assert.Equal(t, rows[0].stats.Visible, r.stats.Visible)
		assert.Equal(t, rows[0].stats.Faces, r.stats.Faces)
	}
	assert.LessOrEqual(t, rows[1].stats.BlendSwitches, 2)
}
