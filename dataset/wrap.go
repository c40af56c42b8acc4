package dataset

import (
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Wrap promotes recognized raw values to the data-object model:
//
//   - anything already implementing DataSet passes through,
//   - an n x 3 *mat.Dense, a [][3]float64 or a flat []float64 whose length
//     is a multiple of three becomes a point-cloud PolyData.
//
// Unrecognized values are returned unchanged after a logged warning, so the
// mapping is total and never errors.
func Wrap(obj Object) Object {
	switch v := obj.(type) {
	case nil:
		return nil
	case DataSet:
		return v
	case *mat.Dense:
		_, nc := v.Dims()
		if nc == 3 {
			return pointCloud(v)
		}
	case [][3]float64:
		return pointCloud(PointsFromTriples(v))
	case []float64:
		if pts, err := PointsFromSlice(v); err == nil {
			return pointCloud(pts)
		}
	}
	log.Warnf("data type %T is not a recognized data object, passing through unwrapped", obj)
	return obj
}

// IsDataSet reports whether obj already belongs to the data-object model.
func IsDataSet(obj Object) bool {
	_, ok := obj.(DataSet)
	return ok
}

func pointCloud(points *mat.Dense) *PolyData {
	pd := NewPolyData(points)
	n, _ := points.Dims()
	for i := 0; i < n; i++ {
		pd.Verts = append(pd.Verts, []int{i})
	}
	return pd
}
