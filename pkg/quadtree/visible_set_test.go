package quadtree

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortFixture() []*Mesh {
	return []*Mesh{
		{Texture: 3, VertexBuffer: 1, Alpha: true},
		{Texture: 1, VertexBuffer: 2},
		{Texture: 2, VertexBuffer: 1},
		{Texture: 1, VertexBuffer: 1, Alpha: true},
		{Texture: 1, VertexBuffer: 2},
		{Texture: 2, VertexBuffer: 1, IndexBuffer: 7},
		{Texture: 1, VertexBuffer: 1},
	}
}

func fill(meshes []*Mesh) *VisibleSet {
	vs := NewVisibleSet(len(meshes))
	for _, m := range meshes {
		vs.AddMesh(m)
	}
	return vs
}

func order(vs *VisibleSet) []*Mesh {
	out := make([]*Mesh, 0, vs.Len())
	for _, m := range vs.All() {
		out = append(out, m)
	}
	return out
}

func TestSortByState(t *testing.T) {
	in := sortFixture()
	vs := fill(in)
	vs.SortByState()

	want := []*Mesh{in[6], in[1], in[4], in[2], in[5], in[3], in[0]}
	assert.Equal(t, want, order(vs))
	for i, m := range order(vs) {
		assert.Same(t, want[i], m)
	}
}

func TestSortByTexture(t *testing.T) {
	in := sortFixture()
	vs := fill(in)
	vs.SortByTexture()

	want := []*Mesh{in[3], in[6], in[1], in[4], in[2], in[5], in[0]}
	got := order(vs)
	for i := range want {
		assert.Same(t, want[i], got[i], "position %d", i)
	}
}

func TestSortIdempotentAndPreservesSize(t *testing.T) {
	sorts := map[string]func(*VisibleSet){
		"state":   (*VisibleSet).SortByState,
		"texture": (*VisibleSet).SortByTexture,
	}
	for name, sortFn := range sorts {
		t.Run(name, func(t *testing.T) {
			in := sortFixture()
			vs := fill(in)

			sortFn(vs)
			once := order(vs)
			require.Equal(t, len(in), vs.Len())

			sortFn(vs)
			twice := order(vs)
			require.Equal(t, len(in), vs.Len())
			for i := range once {
				assert.Same(t, once[i], twice[i])
			}

			for _, m := range in {
				assert.True(t, slices.Contains(twice, m))
			}
		})
	}
}

func TestRemoveAll(t *testing.T) {
	vs := fill(sortFixture())
	vs.stats.NodesVisited = 4

	vs.RemoveAll()
	assert.Zero(t, vs.Len())
	assert.Zero(t, vs.Stats())

	m := &Mesh{Texture: 9}
	vs.AddMesh(m)
	assert.Equal(t, 1, vs.Len())
	assert.Same(t, m, vs.At(0))
}

func TestAllStopsEarly(t *testing.T) {
	vs := fill(sortFixture())
	count := 0
	for range vs.All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestMeshEqual(t *testing.T) {
	a := meshAt(10, 10, 1, 4)
	b := meshAt(10, 10, 50, 4)
	assert.True(t, a.Equal(&b), "volumes are ignored")

	c := a
	c.Transform = mgl32.Translate3D(11, 0, 10)
	assert.False(t, a.Equal(&c))

	d := a
	d.IndexBuffer++
	assert.False(t, a.Equal(&d))

	var nilMesh *Mesh
	assert.True(t, nilMesh.Equal(nil))
	assert.False(t, nilMesh.Equal(&a))
}
