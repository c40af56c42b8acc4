package dataset

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 3))
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255},
		{0, 0, 255, 255}, {255, 255, 0, 255},
		{10, 20, 30, 255}, {40, 50, 60, 255},
	}
	i := 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, colors[i])
			i++
		}
	}

	tex := TextureFromImage(src)
	assert.Equal(t, [3]int{2, 3, 1}, tex.Grid.Dims)
	rgb, ok := tex.Grid.PointData().Get("Image")
	require.True(t, ok)
	assert.Len(t, rgb, 2*3*3)

	// Rows are flipped, so grid point (0, 0) is the image's bottom-left.
	id := tex.Grid.PointIndex(0, 0, 0)
	assert.Equal(t, []float64{10, 20, 30}, rgb[3*id:3*id+3])

	back, err := tex.ToImage()
	require.NoError(t, err)
	i = 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			r, g, b, _ := back.At(x, y).RGBA()
			assert.Equal(t, colors[i], color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255})
			i++
		}
	}
}

func TestTextureWithoutImageArray(t *testing.T) {
	tex := &Texture{Grid: NewUniformGrid([3]int{2, 2, 1})}
	_, err := tex.ToImage()
	assert.Error(t, err)
}
