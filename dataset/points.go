package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PointsFromTriples packs (x, y, z) triples into an n x 3 coordinate matrix.
func PointsFromTriples(pts [][3]float64) *mat.Dense {
	out := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		out.SetRow(i, p[:])
	}
	return out
}

// PointsFromSlice packs a flat x0,y0,z0,x1,... slice into an n x 3
// coordinate matrix. The length must be a multiple of three.
func PointsFromSlice(flat []float64) (*mat.Dense, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("coordinate slice length %d is not a multiple of 3", len(flat))
	}
	cp := make([]float64, len(flat))
	copy(cp, flat)
	return mat.NewDense(len(flat)/3, 3, cp), nil
}

// LinesFromPoints builds a PolyData of line segments connecting consecutive
// points, so n points yield n-1 segments.
func LinesFromPoints(points *mat.Dense) *PolyData {
	pd := NewPolyData(points)
	n, _ := points.Dims()
	for i := 0; i+1 < n; i++ {
		pd.Lines = append(pd.Lines, []int{i, i + 1})
	}
	return pd
}

// VectorPolyData builds a point cloud carrying a vector array and its
// per-point magnitude. orig holds point coordinates, vec one 3-vector per
// point; both must be n x 3.
func VectorPolyData(orig, vec *mat.Dense) (*PolyData, error) {
	nr, nc := orig.Dims()
	if nc != 3 {
		return nil, fmt.Errorf("orig must be n x 3, got %d x %d", nr, nc)
	}
	vr, vc := vec.Dims()
	if vr != nr || vc != 3 {
		return nil, fmt.Errorf("vec must match orig dims %d x 3, got %d x %d", nr, vr, vc)
	}

	pd := NewPolyData(orig)
	for i := 0; i < nr; i++ {
		pd.Verts = append(pd.Verts, []int{i})
	}

	vectors := make([]float64, 3*nr)
	mag := make([]float64, nr)
	for i := 0; i < nr; i++ {
		row := vec.RawRowView(i)
		copy(vectors[3*i:], row)
		mag[i] = floats.Norm(row, 2)
	}
	pd.PointData().Set("vectors", vectors)
	pd.PointData().Set("mag", mag)
	return pd, nil
}
