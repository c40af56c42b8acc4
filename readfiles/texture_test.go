package readfiles

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshforge/meshkit/dataset"
	"github.com/meshforge/meshkit/multiblock"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(50 * x), uint8(100 * y), 200, 255})
		}
	}
	path := filepath.Join(dir, "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestReadTexture(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())

	tex, err := ReadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, [3]int{4, 2, 1}, tex.Grid.Dims)
	assert.True(t, tex.Grid.PointData().Has("Image"))

	// The dispatcher returns the backing grid for image extensions.
	obj, err := Read(path)
	require.NoError(t, err)
	grid, ok := obj.(*dataset.UniformGrid)
	require.True(t, ok)
	assert.Equal(t, 8, grid.NumPoints())
}

func TestReadTextureMissing(t *testing.T) {
	_, err := ReadTexture(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, multiblock.ErrFileNotFound)
}
