package dataset

// Field is an ordered set of named float64 arrays attached to the points or
// cells of a data set. Insertion order is preserved so that serialization
// and summaries are deterministic.
type Field struct {
	names  []string
	arrays map[string][]float64
}

func NewField() *Field {
	return &Field{arrays: make(map[string][]float64)}
}

// Set stores vals under name, replacing any existing array of that name
// while keeping its original position in the order.
func (f *Field) Set(name string, vals []float64) {
	if _, exists := f.arrays[name]; !exists {
		f.names = append(f.names, name)
	}
	f.arrays[name] = vals
}

func (f *Field) Get(name string) (vals []float64, ok bool) {
	vals, ok = f.arrays[name]
	return
}

func (f *Field) Has(name string) bool {
	_, ok := f.arrays[name]
	return ok
}

// Delete removes the named array. Unknown names are ignored.
func (f *Field) Delete(name string) {
	if _, ok := f.arrays[name]; !ok {
		return
	}
	delete(f.arrays, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

// Names returns the array names in insertion order.
func (f *Field) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Field) Len() int {
	return len(f.names)
}

// Clone returns a copy of the field. A deep clone copies the value slices,
// a shallow clone shares them.
func (f *Field) Clone(deep bool) *Field {
	out := NewField()
	for _, name := range f.names {
		vals := f.arrays[name]
		if deep {
			cp := make([]float64, len(vals))
			copy(cp, vals)
			vals = cp
		}
		out.Set(name, vals)
	}
	return out
}
