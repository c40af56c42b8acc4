// Package multiblock provides a named, ordered collection of data objects.
// It plays the role of a composite dataset: blocks are addressed by stable
// list index or by display name, and aggregate queries (bounds, scalar
// range) fold over every block that can answer them.
package multiblock

import (
	"fmt"
	"iter"
	"math"
	"sort"

	"github.com/meshforge/meshkit/dataset"
	"github.com/meshforge/meshkit/filters"
)

type slot struct {
	obj  dataset.Object
	name string
}

// MultiBlock holds an ordered list of slots, each with an optional data
// object and an optional display name. Indices are list-like: removing a
// slot shifts later slots down by one. Names need not be unique; name
// lookup resolves to the lowest matching index.
//
// The collection is not safe for concurrent mutation and mutating it while
// ranging over All or Blocks is undefined.
type MultiBlock struct {
	slots    []slot
	revision uint64
}

// New returns an empty collection.
func New() *MultiBlock {
	return &MultiBlock{}
}

// FromBlocks builds a collection by appending each object in order, with
// default names.
func FromBlocks(blocks []dataset.Object) *MultiBlock {
	m := New()
	for _, b := range blocks {
		m.Append(b)
	}
	return m
}

// FromMap builds a collection from a name to object mapping. Go map
// iteration order is randomized, so keys are sorted to keep slot order
// deterministic.
func FromMap(blocks map[string]dataset.Object) *MultiBlock {
	keys := make([]string, 0, len(blocks))
	for k := range blocks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := New()
	for _, k := range keys {
		m.Append(blocks[k], k)
	}
	return m
}

// Copy duplicates src. A shallow copy shares the underlying data objects; a
// deep copy clones every block that implements DataSet and recurses into
// nested collections.
func Copy(src *MultiBlock, deep bool) *MultiBlock {
	m := New()
	m.slots = make([]slot, len(src.slots))
	copy(m.slots, src.slots)
	if deep {
		for i, s := range m.slots {
			switch v := s.obj.(type) {
			case dataset.DataSet:
				m.slots[i].obj = v.Clone(true)
			case *MultiBlock:
				m.slots[i].obj = Copy(v, true)
			}
		}
	}
	return m
}

// Len returns the current slot count.
func (m *MultiBlock) Len() int {
	return len(m.slots)
}

// MTime returns the revision counter. Every mutation of a block or a name
// bumps it, so downstream caches can detect change by comparing values.
func (m *MultiBlock) MTime() uint64 {
	return m.revision
}

func (m *MultiBlock) modified() {
	m.revision++
}

// Resize grows or shrinks the collection to exactly n slots. New slots are
// empty and unnamed; shrinking discards trailing slots.
func (m *MultiBlock) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for len(m.slots) < n {
		m.slots = append(m.slots, slot{})
	}
	m.slots = m.slots[:n]
	m.modified()
}

// Block returns the object at index i, or nil for an empty slot. Raw stored
// values recognized by the data-object model come back wrapped.
func (m *MultiBlock) Block(i int) (dataset.Object, error) {
	if i < 0 || i >= len(m.slots) {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, len(m.slots))
	}
	obj := m.slots[i].obj
	if obj == nil {
		return nil, nil
	}
	if !recognized(obj) {
		obj = dataset.Wrap(obj)
	}
	return obj, nil
}

// BlockByName returns the block at the lowest index whose name matches.
func (m *MultiBlock) BlockByName(name string) (dataset.Object, error) {
	i, err := m.IndexByName(name)
	if err != nil {
		return nil, err
	}
	return m.Block(i)
}

// Set stores obj at index i. i == Len() appends a new slot; i > Len() is an
// error, there is no sparse growth. An omitted name gets the deterministic
// default "Block-NN" for the index.
func (m *MultiBlock) Set(i int, obj dataset.Object, name ...string) error {
	if i < 0 || i > len(m.slots) {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, len(m.slots))
	}
	if i == len(m.slots) {
		m.slots = append(m.slots, slot{})
	}
	if obj != nil && !recognized(obj) {
		obj = dataset.Wrap(obj)
	}
	m.slots[i].obj = obj
	if len(name) > 0 && name[0] != "" {
		m.slots[i].name = name[0]
	} else {
		m.slots[i].name = fmt.Sprintf("Block-%02d", i)
	}
	m.modified()
	return nil
}

// Append adds obj after the last slot, equivalent to Set(Len(), obj, name).
func (m *MultiBlock) Append(obj dataset.Object, name ...string) {
	// Set cannot fail at index Len().
	_ = m.Set(len(m.slots), obj, name...)
}

// Remove deletes the slot at index i, shifting later slots down by one.
func (m *MultiBlock) Remove(i int) error {
	if i < 0 || i >= len(m.slots) {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, len(m.slots))
	}
	m.slots = append(m.slots[:i], m.slots[i+1:]...)
	m.modified()
	return nil
}

// RemoveByName deletes the first slot whose name matches.
func (m *MultiBlock) RemoveByName(name string) error {
	i, err := m.IndexByName(name)
	if err != nil {
		return err
	}
	return m.Remove(i)
}

// Pop returns the block at index i and removes its slot.
func (m *MultiBlock) Pop(i int) (dataset.Object, error) {
	obj, err := m.Block(i)
	if err != nil {
		return nil, err
	}
	return obj, m.Remove(i)
}

// PopByName returns the first block whose name matches and removes its slot.
func (m *MultiBlock) PopByName(name string) (dataset.Object, error) {
	i, err := m.IndexByName(name)
	if err != nil {
		return nil, err
	}
	return m.Pop(i)
}

// BlockName returns the slot's display name. Out of range indices and
// unnamed slots report the empty string; missing metadata is not an error.
func (m *MultiBlock) BlockName(i int) string {
	if i < 0 || i >= len(m.slots) {
		return ""
	}
	return m.slots[i].name
}

// SetBlockName updates the slot's display name. An empty name is a no-op so
// that callers can pass through "no name" without clearing metadata.
func (m *MultiBlock) SetBlockName(i int, name string) {
	if name == "" || i < 0 || i >= len(m.slots) {
		return
	}
	m.slots[i].name = name
	m.modified()
}

// IndexByName returns the lowest index whose name equals name.
func (m *MultiBlock) IndexByName(name string) (int, error) {
	for i := range m.slots {
		if m.slots[i].name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// All ranges over (index, block) pairs in ascending index order. The
// sequence is restartable; ranging again starts from index zero.
func (m *MultiBlock) All() iter.Seq2[int, dataset.Object] {
	return func(yield func(int, dataset.Object) bool) {
		for i := range m.slots {
			obj, _ := m.Block(i)
			if !yield(i, obj) {
				return
			}
		}
	}
}

// Blocks ranges over blocks in ascending index order.
func (m *MultiBlock) Blocks() iter.Seq[dataset.Object] {
	return func(yield func(dataset.Object) bool) {
		for i := range m.slots {
			obj, _ := m.Block(i)
			if !yield(obj) {
				return
			}
		}
	}
}

// Bounds folds the bounds of every block that has them. Empty slots and
// objects without a bounds concept are skipped. An empty or boundless
// collection keeps the sentinel box of dataset.NewBounds; that is the
// defined result, not an accident.
func (m *MultiBlock) Bounds() dataset.Bounds {
	b := dataset.NewBounds()
	for _, s := range m.slots {
		switch v := s.obj.(type) {
		case dataset.DataSet:
			b.Union(v.Bounds())
		case *MultiBlock:
			b.Union(v.Bounds())
		}
	}
	return b
}

// ScalarRange folds the min and max of a named array across every block
// that carries it, searching point data before cell data and skipping NaN
// values. When no block has the array the result is (+Inf, -Inf).
func (m *MultiBlock) ScalarRange(name string) (min, max float64) {
	return m.ScalarRangeWithPreference(name, dataset.PointAssoc)
}

// ScalarRangeWithPreference is ScalarRange with an explicit search order
// for blocks carrying the array on both points and cells.
func (m *MultiBlock) ScalarRangeWithPreference(name string, pref dataset.Association) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, s := range m.slots {
		ds, ok := s.obj.(dataset.DataSet)
		if !ok {
			continue
		}
		arr := dataset.ScalarsWithPreference(ds, name, pref)
		if arr == nil {
			continue
		}
		for _, v := range arr {
			if math.IsNaN(v) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return
}

// ExtractGeometry combines the surface geometry of every block into one
// polygonal dataset. Empty slots and non-dataset objects are skipped.
func (m *MultiBlock) ExtractGeometry() *dataset.PolyData {
	return filters.Surface(m.dataSets())
}

// Combine concatenates every block into one unstructured grid. When
// mergePoints is set, spatially coincident points collapse into one.
func (m *MultiBlock) Combine(mergePoints bool) *dataset.UnstructuredGrid {
	return filters.Append(m.dataSets(), mergePoints)
}

// recognized reports whether obj already belongs to the data-object model,
// including nested collections, and needs no wrapping.
func recognized(obj dataset.Object) bool {
	if dataset.IsDataSet(obj) {
		return true
	}
	_, ok := obj.(*MultiBlock)
	return ok
}

func (m *MultiBlock) dataSets() []dataset.DataSet {
	out := make([]dataset.DataSet, 0, len(m.slots))
	for _, s := range m.slots {
		if ds, ok := s.obj.(dataset.DataSet); ok {
			out = append(out, ds)
		}
	}
	return out
}
