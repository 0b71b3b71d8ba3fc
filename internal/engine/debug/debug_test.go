package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/distantland/pkg/geom"
	"github.com/Faultbox/distantland/pkg/quadtree"
)

func TestAppendBoxLines(t *testing.T) {
	b := geom.NewBox(-1, -2, -3, 1, 2, 3)
	red := mgl32.Vec3{1, 0, 0}
	lines := AppendBoxLines(nil, b, red)
	require.Len(t, lines, BoxLineVertexCount*LineStride)

	for i := 0; i < BoxLineVertexCount; i += 2 {
		a := mgl32.Vec3(lines[i*LineStride : i*LineStride+3])
		c := mgl32.Vec3(lines[(i+1)*LineStride : (i+1)*LineStride+3])
		// Every edge runs along exactly one axis.
		diff := 0
		for axis := 0; axis < 3; axis++ {
			if a[axis] != c[axis] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d: %v -> %v", i/2, a, c)
		assert.Equal(t, red, mgl32.Vec3(lines[i*LineStride+3:i*LineStride+6]))
	}
}

func meshAt(x, z float32) quadtree.Mesh {
	s := geom.Sphere{Center: mgl32.Vec3{x, 0, z}, Radius: 1}
	return quadtree.Mesh{
		Sphere:    s,
		Box:       geom.NewBox(x-1, -1, z-1, x+1, 1, z+1),
		Transform: mgl32.Translate3D(x, 0, z),
	}
}

func TestNodeLines(t *testing.T) {
	tree, err := quadtree.New(quadtree.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, tree.SetBoxSize(100))
	require.NoError(t, tree.AddMesh(meshAt(-50, -50)))
	require.NoError(t, tree.AddMesh(meshAt(50, 50)))
	require.NoError(t, tree.AddMesh(meshAt(-50, 50)))
	tree.CalcVolume()

	nodes := tree.Stats().Nodes
	all := NodeLines(tree, 0, -1)
	assert.Len(t, all, nodes*8*LineStride)

	root := NodeLines(tree, 7, 0)
	require.Len(t, root, 8*LineStride)
	assert.Equal(t, float32(-100), root[0])
	assert.Equal(t, float32(7), root[1])
	assert.Equal(t, DepthColor(0), mgl32.Vec3(root[3:6]))
}

func TestVisibleBoxLines(t *testing.T) {
	vs := quadtree.NewVisibleSet(2)
	a, b := meshAt(0, 0), meshAt(10, 10)
	b.Alpha = true
	vs.AddMesh(&a)
	vs.AddMesh(&b)

	opaque, alpha := mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 1}
	buf := make([]float32, 0, 16)
	buf = VisibleBoxLines(buf, vs, opaque, alpha)
	require.Len(t, buf, 2*BoxLineVertexCount*LineStride)
	assert.Equal(t, opaque, mgl32.Vec3(buf[3:6]))
	off := BoxLineVertexCount * LineStride
	assert.Equal(t, alpha, mgl32.Vec3(buf[off+3:off+6]))

	vs.RemoveAll()
	assert.Empty(t, VisibleBoxLines(buf, vs, opaque, alpha))
}

func TestDepthColorCycles(t *testing.T) {
	assert.Equal(t, DepthColor(0), DepthColor(len(depthColors)))
	assert.NotEqual(t, DepthColor(0), DepthColor(1))
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "land")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "land_2024-05-01_12-00-00.000.png"), name)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)

	_, err = sc.CaptureFromPixels(pixels, 2, 2)
	assert.Error(t, err)
}
