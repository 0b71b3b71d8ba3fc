package render

// boxStride is position + normal, in floats.
const boxStride = 6

var boxFaces = [6]struct {
	normal [3]float32
	u, v   [3]float32
}{
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// BoxMesh returns interleaved vertices and counter-clockwise triangle
// indices for a box centered on the origin.
func BoxMesh(extents [3]float32) ([]float32, []uint32) {
	vertices := make([]float32, 0, 24*boxStride)
	indices := make([]uint32, 0, 36)

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(vertices) / boxStride)
		for _, c := range corners {
			for axis := 0; axis < 3; axis++ {
				p := f.normal[axis] + c[0]*f.u[axis] + c[1]*f.v[axis]
				vertices = append(vertices, p*extents[axis])
			}
			vertices = append(vertices, f.normal[0], f.normal[1], f.normal[2])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}
