package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshforge/meshkit/dataset"
	"github.com/meshforge/meshkit/multiblock"
)

func TestSTLBinaryRoundTrip(t *testing.T) {
	pd := dataset.NewPolyData(dataset.PointsFromTriples([][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	}))
	// One quad, written as a two-triangle fan.
	pd.Polys = [][]int{{0, 1, 3, 2}}

	path := filepath.Join(t.TempDir(), "quad.stl")
	require.NoError(t, WriteSTL(pd, path))

	got, err := ReadSTL(path)
	require.NoError(t, err)
	assert.Len(t, got.Polys, 2)
	// Shared vertices are merged back on load.
	assert.Equal(t, 4, got.NumPoints())
	assert.Equal(t, dataset.Bounds{0, 1, 0, 1, 0, 0}, got.Bounds())
}

func TestSTLASCII(t *testing.T) {
	doc := `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got, err := ReadSTL(path)
	require.NoError(t, err)
	assert.Len(t, got.Polys, 2)
	assert.Equal(t, 4, got.NumPoints())
	assert.Equal(t, [][]int{{0, 1, 2}, {1, 3, 2}}, got.Polys)
}

func TestSTLMissingFile(t *testing.T) {
	_, err := ReadSTL(filepath.Join(t.TempDir(), "nope.stl"))
	assert.ErrorIs(t, err, multiblock.ErrFileNotFound)
}

func TestReadDispatch(t *testing.T) {
	dir := t.TempDir()

	pd := dataset.NewPolyData(dataset.PointsFromTriples([][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	}))
	pd.Polys = [][]int{{0, 1, 2}}
	stl := filepath.Join(dir, "tri.stl")
	require.NoError(t, WriteSTL(pd, stl))

	obj, err := Read(stl)
	require.NoError(t, err)
	_, ok := obj.(*dataset.PolyData)
	assert.True(t, ok)

	m := multiblock.New()
	m.Append(pd, "tri")
	vtm := filepath.Join(dir, "scene.vtm")
	require.NoError(t, m.Save(vtm, true))

	obj, err = Read(vtm)
	require.NoError(t, err)
	got, ok := obj.(*multiblock.MultiBlock)
	require.True(t, ok)
	assert.Equal(t, 1, got.Len())

	_, err = Read(filepath.Join(dir, "scene.xyz"))
	assert.ErrorIs(t, err, multiblock.ErrUnsupportedFormat)
}
