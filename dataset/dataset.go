package dataset

import "math"

// Object is any value a multi-block slot or a reader can produce. Recognized
// raw forms can be promoted to a DataSet via Wrap.
type Object interface{}

// DataSet is implemented by every data object with geometry and attribute
// arrays. Concrete types are PolyData, UnstructuredGrid and UniformGrid.
type DataSet interface {
	Bounds() Bounds
	PointData() *Field
	CellData() *Field
	NumPoints() int
	NumCells() int
	Clone(deep bool) DataSet
	TypeName() string
}

// Association selects which attribute field a scalar lookup searches first.
type Association int

const (
	PointAssoc Association = iota
	CellAssoc
)

func (a Association) String() string {
	return [...]string{"point", "cell"}[a]
}

// Bounds is an axis aligned box stored as
// (xmin, xmax, ymin, ymax, zmin, zmax).
type Bounds [6]float64

// NewBounds returns the empty box: +Inf lower bounds and -Inf upper bounds.
// Folding any finite box into it via Union yields that box unchanged.
func NewBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{inf, -inf, inf, -inf, inf, -inf}
}

// Union folds o into b, taking the running min of each lower bound and the
// running max of each upper bound.
func (b *Bounds) Union(o Bounds) {
	for ax := 0; ax < 3; ax++ {
		if o[2*ax] < b[2*ax] {
			b[2*ax] = o[2*ax]
		}
		if o[2*ax+1] > b[2*ax+1] {
			b[2*ax+1] = o[2*ax+1]
		}
	}
}

// IsEmpty reports whether b still carries the sentinel values of NewBounds
// on every axis.
func (b Bounds) IsEmpty() bool {
	return b[0] > b[1] && b[2] > b[3] && b[4] > b[5]
}

// Contains reports whether the point (x, y, z) lies strictly inside b.
func (b Bounds) Contains(x, y, z float64) bool {
	if !(b[0] < x && x < b[1]) {
		return false
	}
	if !(b[2] < y && y < b[3]) {
		return false
	}
	if !(b[4] < z && z < b[5]) {
		return false
	}
	return true
}

// Scalars searches ds for a named array, point data first, then cell data.
// Returns nil if neither field has the array.
func Scalars(ds DataSet, name string) []float64 {
	return ScalarsWithPreference(ds, name, PointAssoc)
}

// ScalarsWithPreference searches both attribute fields for a named array.
// When both fields carry the name, pref decides which one wins.
func ScalarsWithPreference(ds DataSet, name string, pref Association) []float64 {
	parr, pok := ds.PointData().Get(name)
	carr, cok := ds.CellData().Get(name)
	if pok && cok {
		if pref == CellAssoc {
			return carr
		}
		return parr
	}
	if pok {
		return parr
	}
	if cok {
		return carr
	}
	return nil
}
