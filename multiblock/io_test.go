package multiblock

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshforge/meshkit/dataset"
)

func sampleCollection() *MultiBlock {
	pd := dataset.NewPolyData(dataset.PointsFromTriples([][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	}))
	pd.Polys = [][]int{{0, 1, 2}}
	pd.PointData().Set("height", []float64{0, 0.5, 1})

	ug := dataset.NewUnstructuredGrid(dataset.PointsFromTriples([][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}))
	ug.Cells = []dataset.Cell{{Type: dataset.Tet, Conn: []int{0, 1, 2, 3}}}
	ug.CellData().Set("region", []float64{7})

	grid := dataset.NewUniformGrid([3]int{3, 3, 2})
	grid.Spacing = [3]float64{0.5, 0.5, 2}
	grid.Origin = [3]float64{-1, -1, 0}

	m := New()
	m.Append(pd, "triangle")
	m.Append(ug, "tet")
	m.Append(nil, "hole")
	m.Append(grid, "grid")
	return m
}

func roundTrip(t *testing.T, binary bool) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.vtm")
	src := sampleCollection()
	require.NoError(t, src.Save(path, binary))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, src.Len(), got.Len())

	for i := 0; i < src.Len(); i++ {
		assert.Equal(t, src.BlockName(i), got.BlockName(i), "block %d name", i)
	}

	// Triangle block round trips points, polys and point data.
	obj, err := got.Block(0)
	require.NoError(t, err)
	pd, ok := obj.(*dataset.PolyData)
	require.True(t, ok)
	assert.Equal(t, 3, pd.NumPoints())
	assert.Equal(t, [][]int{{0, 1, 2}}, pd.Polys)
	height, ok := pd.PointData().Get("height")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0.5, 1}, height)

	// Tet block keeps its cell list and cell data.
	obj, err = got.Block(1)
	require.NoError(t, err)
	ug, ok := obj.(*dataset.UnstructuredGrid)
	require.True(t, ok)
	require.Len(t, ug.Cells, 1)
	assert.Equal(t, dataset.Tet, ug.Cells[0].Type)
	region, ok := ug.CellData().Get("region")
	require.True(t, ok)
	assert.Equal(t, []float64{7}, region)

	// Empty slot survives with its name.
	obj, err = got.Block(2)
	require.NoError(t, err)
	assert.Nil(t, obj)

	// Uniform grid keeps its implicit geometry.
	obj, err = got.Block(3)
	require.NoError(t, err)
	grid, ok := obj.(*dataset.UniformGrid)
	require.True(t, ok)
	assert.Equal(t, [3]int{3, 3, 2}, grid.Dims)
	assert.Equal(t, [3]float64{0.5, 0.5, 2}, grid.Spacing)
	assert.Equal(t, [3]float64{-1, -1, 0}, grid.Origin)

	assert.Equal(t, src.Bounds(), got.Bounds())
}

func TestSaveLoadBinary(t *testing.T) { roundTrip(t, true) }
func TestSaveLoadASCII(t *testing.T)  { roundTrip(t, false) }

func TestBinaryPreservesSpecials(t *testing.T) {
	pd := dataset.NewPolyData(dataset.PointsFromTriples([][3]float64{{0, 0, 0}}))
	pd.Verts = [][]int{{0}}
	pd.PointData().Set("odd", []float64{math.NaN(), math.Inf(1), 1e-300})

	m := New()
	m.Append(pd)
	path := filepath.Join(t.TempDir(), "odd.vtmb")
	require.NoError(t, m.Save(path, true))

	got, err := Load(path)
	require.NoError(t, err)
	obj, err := got.Block(0)
	require.NoError(t, err)
	odd, ok := obj.(*dataset.PolyData).PointData().Get("odd")
	require.True(t, ok)
	require.Len(t, odd, 3)
	assert.True(t, math.IsNaN(odd[0]))
	assert.True(t, math.IsInf(odd[1], 1))
	assert.Equal(t, 1e-300, odd[2])
}

func TestSaveLoadNested(t *testing.T) {
	inner := New()
	pd := dataset.NewPolyData(dataset.PointsFromTriples([][3]float64{
		{2, 0, 0}, {3, 0, 0}, {2, 1, 0},
	}))
	pd.Polys = [][]int{{0, 1, 2}}
	pd.PointData().Set("temp", []float64{10, 20, 30})
	inner.Append(pd, "wing")
	inner.Append(nil, "slot")

	outer := New()
	outer.Append(dataset.NewUniformGrid([3]int{2, 2, 2}), "domain")
	outer.Append(inner, "parts")

	path := filepath.Join(t.TempDir(), "scene.vtm")
	require.NoError(t, outer.Save(path, true))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "parts", got.BlockName(1))

	obj, err := got.Block(1)
	require.NoError(t, err)
	sub, ok := obj.(*MultiBlock)
	require.True(t, ok)
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, "wing", sub.BlockName(0))
	assert.Equal(t, "slot", sub.BlockName(1))

	obj, err = sub.Block(0)
	require.NoError(t, err)
	gotPd, ok := obj.(*dataset.PolyData)
	require.True(t, ok)
	assert.Equal(t, [][]int{{0, 1, 2}}, gotPd.Polys)
	temp, ok := gotPd.PointData().Get("temp")
	require.True(t, ok)
	assert.Equal(t, []float64{10, 20, 30}, temp)

	obj, err = sub.Block(1)
	require.NoError(t, err)
	assert.Nil(t, obj)

	assert.Equal(t, outer.Bounds(), got.Bounds())
}

func TestSaveRejectsForeignObject(t *testing.T) {
	m := New()
	m.Append("not a dataset", "odd")
	err := m.Save(filepath.Join(t.TempDir(), "bad.vtm"), false)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadRejectsDuplicateIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.vtm")
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<MeshKitFile type="MultiBlock" version="0.1">
  <MultiBlock>
    <Block index="0" name="first"></Block>
    <Block index="0" name="second"></Block>
  </MultiBlock>
</MeshKitFile>
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate block index 0")
}

func TestLoadRejectsIndexOutsideRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gap.vtm")
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<MeshKitFile type="MultiBlock" version="0.1">
  <MultiBlock>
    <Block index="0" name="a"></Block>
    <Block index="5" name="b"></Block>
  </MultiBlock>
</MeshKitFile>
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.vtm"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = Load(filepath.Join(dir, "wrong.stl"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	empty := filepath.Join(dir, "empty.vtm")
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<MeshKitFile type="MultiBlock" version="0.1"><MultiBlock></MultiBlock></MeshKitFile>
`
	require.NoError(t, os.WriteFile(empty, []byte(doc), 0644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestSaveUnsupportedExtension(t *testing.T) {
	m := New()
	m.Append(dataset.NewPolyData(nil))
	err := m.Save(filepath.Join(t.TempDir(), "out.obj"), true)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
