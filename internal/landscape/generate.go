package landscape

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// GenerateOptions controls synthetic scene generation.
type GenerateOptions struct {
	Seed   uint64
	Count  int
	Extent float32 // side length of the square world, centered on the origin

	MinRadius float32
	MaxRadius float32
	// LandmarkRatio is the share of statics sized as landmarks (hills, towers)
	// up to LandmarkRadius. They end up in the upper levels of the tree.
	LandmarkRatio  float64
	LandmarkRadius float32

	Textures   int
	Meshes     int
	AlphaRatio float64
}

// DefaultGenerateOptions returns options for a moderately dense world.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Seed:           1,
		Count:          5000,
		Extent:         8192,
		MinRadius:      4,
		MaxRadius:      48,
		LandmarkRatio:  0.02,
		LandmarkRadius: 600,
		Textures:       32,
		Meshes:         64,
		AlphaRatio:     0.25,
	}
}

func (o *GenerateOptions) normalize() {
	d := DefaultGenerateOptions()
	if o.Count < 0 {
		o.Count = 0
	}
	if o.Extent <= 0 {
		o.Extent = d.Extent
	}
	if o.MinRadius <= 0 {
		o.MinRadius = d.MinRadius
	}
	if o.MaxRadius < o.MinRadius {
		o.MaxRadius = o.MinRadius
	}
	if o.LandmarkRadius < o.MaxRadius {
		o.LandmarkRadius = o.MaxRadius
	}
	if o.Textures <= 0 {
		o.Textures = 1
	}
	if o.Meshes <= 0 {
		o.Meshes = 1
	}
}

// meshShape is a reusable piece of geometry shared by many statics.
type meshShape struct {
	extents  [3]float32 // unit-scale half sizes
	vertices int
	faces    int
	alpha    bool
}

// Generate builds a deterministic scene: the same options always produce the
// same statics.
func Generate(opts GenerateOptions) *Scene {
	opts.normalize()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	shapes := make([]meshShape, opts.Meshes)
	for i := range shapes {
		faces := 12 + rng.IntN(2000)
		shapes[i] = meshShape{
			extents: [3]float32{
				0.5 + rng.Float32()*0.5,
				0.5 + rng.Float32()*1.5,
				0.5 + rng.Float32()*0.5,
			},
			vertices: faces/2 + 3,
			faces:    faces,
			alpha:    rng.Float64() < opts.AlphaRatio,
		}
	}

	half := opts.Extent / 2
	sc := &Scene{
		Root:    Root{Size: half},
		Statics: make([]Static, 0, opts.Count),
	}
	for i := 0; i < opts.Count; i++ {
		radius := opts.MinRadius + rng.Float32()*(opts.MaxRadius-opts.MinRadius)
		if rng.Float64() < opts.LandmarkRatio {
			radius = opts.MaxRadius + rng.Float32()*(opts.LandmarkRadius-opts.MaxRadius)
		}
		radius = min(radius, half)

		meshID := rng.IntN(opts.Meshes)
		shape := shapes[meshID]
		// Scale so the longest unit extent matches the chosen radius.
		scale := radius / unitRadius(shape.extents)

		x := (rng.Float32()*2 - 1) * (half - radius)
		z := (rng.Float32()*2 - 1) * (half - radius)
		y := rng.Float32() * 64

		sc.Statics = append(sc.Statics, Static{
			Name:     fmt.Sprintf("static_%05d", i),
			Position: [3]float32{x, y, z},
			Yaw:      rng.Float32() * 360,
			Scale:    scale,
			Extents:  shape.extents,
			Texture:  uint64(1 + rng.IntN(opts.Textures)),
			Mesh:     uint64(1 + meshID),
			Vertices: shape.vertices,
			Faces:    shape.faces,
			Alpha:    shape.alpha,
		})
	}
	return sc
}

func unitRadius(e [3]float32) float32 {
	return float32(math.Sqrt(float64(e[0]*e[0] + e[1]*e[1] + e[2]*e[2])))
}
