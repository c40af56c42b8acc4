package dataset

// UniformGrid is a regular grid with implicit geometry: Dims counts points
// along each axis, and point coordinates follow from Origin and Spacing.
type UniformGrid struct {
	Dims    [3]int
	Spacing [3]float64
	Origin  [3]float64

	pointData *Field
	cellData  *Field
}

// NewUniformGrid creates a grid of dims points per axis with unit spacing
// at the origin. Axes with fewer than one point are clamped to one.
func NewUniformGrid(dims [3]int) *UniformGrid {
	for ax := range dims {
		if dims[ax] < 1 {
			dims[ax] = 1
		}
	}
	return &UniformGrid{
		Dims:      dims,
		Spacing:   [3]float64{1, 1, 1},
		pointData: NewField(),
		cellData:  NewField(),
	}
}

func (ug *UniformGrid) TypeName() string { return "UniformGrid" }

func (ug *UniformGrid) NumPoints() int {
	return ug.Dims[0] * ug.Dims[1] * ug.Dims[2]
}

func (ug *UniformGrid) NumCells() int {
	n := 1
	for ax := 0; ax < 3; ax++ {
		if ug.Dims[ax] > 1 {
			n *= ug.Dims[ax] - 1
		}
	}
	if n == 1 && ug.Dims[0] <= 1 && ug.Dims[1] <= 1 && ug.Dims[2] <= 1 {
		return 0
	}
	return n
}

func (ug *UniformGrid) PointData() *Field { return ug.pointData }
func (ug *UniformGrid) CellData() *Field  { return ug.cellData }

func (ug *UniformGrid) Bounds() Bounds {
	var b Bounds
	for ax := 0; ax < 3; ax++ {
		b[2*ax] = ug.Origin[ax]
		b[2*ax+1] = ug.Origin[ax] + float64(ug.Dims[ax]-1)*ug.Spacing[ax]
	}
	return b
}

// PointIndex flattens (i, j, k) grid coordinates to a point id, x fastest.
func (ug *UniformGrid) PointIndex(i, j, k int) int {
	return i + ug.Dims[0]*(j+ug.Dims[1]*k)
}

// Point returns the coordinates of point id.
func (ug *UniformGrid) Point(id int) (x, y, z float64) {
	i := id % ug.Dims[0]
	j := (id / ug.Dims[0]) % ug.Dims[1]
	k := id / (ug.Dims[0] * ug.Dims[1])
	x = ug.Origin[0] + float64(i)*ug.Spacing[0]
	y = ug.Origin[1] + float64(j)*ug.Spacing[1]
	z = ug.Origin[2] + float64(k)*ug.Spacing[2]
	return
}

func (ug *UniformGrid) Clone(deep bool) DataSet {
	return &UniformGrid{
		Dims:      ug.Dims,
		Spacing:   ug.Spacing,
		Origin:    ug.Origin,
		pointData: ug.pointData.Clone(deep),
		cellData:  ug.cellData.Clone(deep),
	}
}
