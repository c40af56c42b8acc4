// Package readfiles dispatches file reading and writing by extension and
// wraps the results in the data-object model.
package readfiles

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"github.com/meshforge/meshkit/dataset"
	"github.com/meshforge/meshkit/multiblock"
)

// Read loads any supported file and returns the wrapped data object:
//
//	.vtm, .vtmb         multi-block collection
//	.stl                PolyData surface
//	.png, .jpg, .jpeg   texture grid
//
// A leading ~ expands to the user's home directory.
func Read(path string) (dataset.Object, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtm", ".vtmb":
		return multiblock.Load(path)
	case ".stl":
		return ReadSTL(path)
	case ".png", ".jpg", ".jpeg":
		t, err := ReadTexture(path)
		if err != nil {
			return nil, err
		}
		return t.Grid, nil
	default:
		return nil, fmt.Errorf("%w: %q", multiblock.ErrUnsupportedFormat, ext)
	}
}

// ReadTexture loads an image file as a texture grid. PNG and JPEG are
// decoded by their registered stdlib decoders.
func ReadTexture(path string) (*dataset.Texture, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", multiblock.ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	log.Debugf("decoded %s texture from %s", format, path)
	return dataset.TextureFromImage(img), nil
}
