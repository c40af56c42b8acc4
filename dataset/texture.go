package dataset

import (
	"fmt"
	"image"
	"image/color"
)

// Texture is an image texture held as a flat UniformGrid whose "Image"
// point array stores one RGB triple per grid point, values in 0..255.
type Texture struct {
	Grid *UniformGrid
}

// TextureFromImage converts a decoded image to a texture grid. Rows are
// stored bottom-up so that the first grid point is the lower-left texel.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	grid := NewUniformGrid([3]int{w, h, 1})

	rgb := make([]float64, 3*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+h-1-y).RGBA()
			id := grid.PointIndex(x, y, 0)
			rgb[3*id] = float64(r >> 8)
			rgb[3*id+1] = float64(g >> 8)
			rgb[3*id+2] = float64(bl >> 8)
		}
	}
	grid.PointData().Set("Image", rgb)
	return &Texture{Grid: grid}
}

// ToImage converts the texture grid back to an image.
func (t *Texture) ToImage() (image.Image, error) {
	rgb, ok := t.Grid.PointData().Get("Image")
	if !ok {
		return nil, fmt.Errorf("texture grid has no Image point array")
	}
	w, h := t.Grid.Dims[0], t.Grid.Dims[1]
	if len(rgb) != 3*w*h {
		return nil, fmt.Errorf("Image array length %d does not match %d x %d grid", len(rgb), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := t.Grid.PointIndex(x, y, 0)
			img.SetRGBA(x, h-1-y, color.RGBA{
				R: uint8(rgb[3*id]),
				G: uint8(rgb[3*id+1]),
				B: uint8(rgb[3*id+2]),
				A: 255,
			})
		}
	}
	return img, nil
}
