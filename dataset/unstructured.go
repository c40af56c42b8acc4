package dataset

import "gonum.org/v1/gonum/mat"

// CellType identifies the shape of one unstructured grid cell.
type CellType int

const (
	Vertex CellType = iota
	Line
	Triangle
	Quad
	Tet
	Hex
	Voxel
	Polygon
)

func (c CellType) String() string {
	return [...]string{"Vertex", "Line", "Triangle", "Quad", "Tet", "Hex",
		"Voxel", "Polygon"}[c]
}

// Cell is one element of an unstructured grid: a shape plus the indices of
// its points.
type Cell struct {
	Type CellType
	Conn []int
}

// UnstructuredGrid holds explicit points and a heterogeneous cell list.
type UnstructuredGrid struct {
	Points *mat.Dense
	Cells  []Cell

	pointData *Field
	cellData  *Field
}

func NewUnstructuredGrid(points *mat.Dense) *UnstructuredGrid {
	return &UnstructuredGrid{
		Points:    points,
		pointData: NewField(),
		cellData:  NewField(),
	}
}

func (ug *UnstructuredGrid) TypeName() string { return "UnstructuredGrid" }

func (ug *UnstructuredGrid) NumPoints() int {
	if ug.Points == nil {
		return 0
	}
	n, _ := ug.Points.Dims()
	return n
}

func (ug *UnstructuredGrid) NumCells() int { return len(ug.Cells) }

func (ug *UnstructuredGrid) PointData() *Field { return ug.pointData }
func (ug *UnstructuredGrid) CellData() *Field  { return ug.cellData }

func (ug *UnstructuredGrid) Bounds() Bounds {
	return pointBounds(ug.Points)
}

func (ug *UnstructuredGrid) Clone(deep bool) DataSet {
	out := &UnstructuredGrid{
		Points:    ug.Points,
		Cells:     ug.Cells,
		pointData: ug.pointData.Clone(deep),
		cellData:  ug.cellData.Clone(deep),
	}
	if deep {
		if ug.Points != nil {
			out.Points = mat.DenseCopyOf(ug.Points)
		}
		out.Cells = make([]Cell, len(ug.Cells))
		for i, c := range ug.Cells {
			conn := make([]int, len(c.Conn))
			copy(conn, c.Conn)
			out.Cells[i] = Cell{Type: c.Type, Conn: conn}
		}
	}
	return out
}
