// Package manifest assembles a multi-block collection from a YAML deck
// mapping block names to dataset file paths.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"

	"github.com/meshforge/meshkit/multiblock"
	"github.com/meshforge/meshkit/readfiles"
)

// Manifest is the YAML input deck. Relative block paths resolve against
// the manifest file's directory.
type Manifest struct {
	Title  string            `yaml:"Title"`
	Blocks map[string]string `yaml:"Blocks"`
}

func (mf *Manifest) Parse(data []byte) error {
	return yaml.Unmarshal(data, mf)
}

// Assemble reads every referenced file and appends it under its block name.
// Names are processed in sorted order so slot order is deterministic.
func (mf *Manifest) Assemble(baseDir string) (*multiblock.MultiBlock, error) {
	names := make([]string, 0, len(mf.Blocks))
	for name := range mf.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	m := multiblock.New()
	for _, name := range names {
		path := mf.Blocks[name]
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		obj, err := readfiles.Read(path)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", name, err)
		}
		m.Append(obj, name)
	}
	return m, nil
}

// Load parses a manifest file and assembles the collection it describes.
func Load(path string) (*multiblock.MultiBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", multiblock.ErrFileNotFound, path)
		}
		return nil, err
	}
	mf := &Manifest{}
	if err = mf.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if mf.Title != "" {
		log.Infof("assembling %q with %d blocks", mf.Title, len(mf.Blocks))
	}
	return mf.Assemble(filepath.Dir(path))
}
