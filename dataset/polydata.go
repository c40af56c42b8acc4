package dataset

import "gonum.org/v1/gonum/mat"

// PolyData is surface geometry: explicit points plus vertex, line and
// polygon cells indexing into them. Points are stored as an n x 3 matrix.
type PolyData struct {
	Points *mat.Dense
	Verts  [][]int
	Lines  [][]int
	Polys  [][]int

	pointData *Field
	cellData  *Field
}

func NewPolyData(points *mat.Dense) *PolyData {
	return &PolyData{
		Points:    points,
		pointData: NewField(),
		cellData:  NewField(),
	}
}

func (pd *PolyData) TypeName() string { return "PolyData" }

func (pd *PolyData) NumPoints() int {
	if pd.Points == nil {
		return 0
	}
	n, _ := pd.Points.Dims()
	return n
}

func (pd *PolyData) NumCells() int {
	return len(pd.Verts) + len(pd.Lines) + len(pd.Polys)
}

func (pd *PolyData) PointData() *Field { return pd.pointData }
func (pd *PolyData) CellData() *Field  { return pd.cellData }

func (pd *PolyData) Bounds() Bounds {
	return pointBounds(pd.Points)
}

func (pd *PolyData) Clone(deep bool) DataSet {
	out := &PolyData{
		Points:    pd.Points,
		Verts:     pd.Verts,
		Lines:     pd.Lines,
		Polys:     pd.Polys,
		pointData: pd.pointData.Clone(deep),
		cellData:  pd.cellData.Clone(deep),
	}
	if deep {
		if pd.Points != nil {
			out.Points = mat.DenseCopyOf(pd.Points)
		}
		out.Verts = cloneConn(pd.Verts)
		out.Lines = cloneConn(pd.Lines)
		out.Polys = cloneConn(pd.Polys)
	}
	return out
}

func cloneConn(conn [][]int) [][]int {
	if conn == nil {
		return nil
	}
	out := make([][]int, len(conn))
	for i, c := range conn {
		out[i] = make([]int, len(c))
		copy(out[i], c)
	}
	return out
}

// pointBounds folds every row of an n x 3 coordinate matrix into a box.
// A nil or empty matrix yields the sentinel box.
func pointBounds(points *mat.Dense) Bounds {
	b := NewBounds()
	if points == nil {
		return b
	}
	n, _ := points.Dims()
	for i := 0; i < n; i++ {
		row := points.RawRowView(i)
		b.Union(Bounds{row[0], row[0], row[1], row[1], row[2], row[2]})
	}
	return b
}
