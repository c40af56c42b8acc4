// Package filters holds stateless transforms over data sets: surface
// geometry extraction and block concatenation. Filters take the full
// ordered block sequence and produce one output dataset.
package filters

import (
	"gonum.org/v1/gonum/mat"

	"github.com/meshforge/meshkit/dataset"
)

// Append concatenates every block into a single unstructured grid,
// offsetting cell connectivity per block. When mergePoints is set,
// coincident points collapse to one, keeping the first occurrence. Point
// and cell arrays present on every block are carried through; the rest are
// dropped.
func Append(blocks []dataset.DataSet, mergePoints bool) *dataset.UnstructuredGrid {
	var (
		coords    [][3]float64
		cells     []dataset.Cell
		srcPoint  []int // output point -> flat input point id
		srcCell   []int // output cell -> flat input cell id
		pointBase int
		cellBase  int
	)
	remap := make(map[[3]float64]int)

	for _, blk := range blocks {
		pts, blkCells := asCells(blk)
		n, _ := pts.Dims()

		local := make([]int, n)
		for i := 0; i < n; i++ {
			row := pts.RawRowView(i)
			p := [3]float64{row[0], row[1], row[2]}
			if mergePoints {
				if id, ok := remap[p]; ok {
					local[i] = id
					continue
				}
				remap[p] = len(coords)
			}
			local[i] = len(coords)
			coords = append(coords, p)
			srcPoint = append(srcPoint, pointBase+i)
		}

		for _, c := range blkCells {
			conn := make([]int, len(c.Conn))
			for k, v := range c.Conn {
				conn[k] = local[v]
			}
			cells = append(cells, dataset.Cell{Type: c.Type, Conn: conn})
		}
		srcCell = appendRange(srcCell, cellBase, len(blkCells))
		pointBase += n
		cellBase += len(blkCells)
	}

	out := dataset.NewUnstructuredGrid(dataset.PointsFromTriples(coords))
	out.Cells = cells
	carryArrays(out.PointData(), blocks, pointArrays, flatPointValue, srcPoint)
	carryArrays(out.CellData(), blocks, cellArrays, flatCellValue, srcCell)
	return out
}

// asCells views any data set as explicit points plus a flat cell list.
// Uniform grids get their implicit points and voxel cells generated.
func asCells(ds dataset.DataSet) (*mat.Dense, []dataset.Cell) {
	switch v := ds.(type) {
	case *dataset.PolyData:
		cells := make([]dataset.Cell, 0, v.NumCells())
		for _, c := range v.Verts {
			cells = append(cells, dataset.Cell{Type: dataset.Vertex, Conn: c})
		}
		for _, c := range v.Lines {
			cells = append(cells, dataset.Cell{Type: dataset.Line, Conn: c})
		}
		for _, c := range v.Polys {
			cells = append(cells, dataset.Cell{Type: polyType(len(c)), Conn: c})
		}
		return pointsOrEmpty(v.Points), cells
	case *dataset.UnstructuredGrid:
		return pointsOrEmpty(v.Points), v.Cells
	case *dataset.UniformGrid:
		return gridPoints(v), gridCells(v)
	default:
		return mat.NewDense(0, 3, nil), nil
	}
}

func polyType(n int) dataset.CellType {
	switch n {
	case 3:
		return dataset.Triangle
	case 4:
		return dataset.Quad
	default:
		return dataset.Polygon
	}
}

func pointsOrEmpty(pts *mat.Dense) *mat.Dense {
	if pts == nil {
		return mat.NewDense(0, 3, nil)
	}
	return pts
}

// gridPoints materializes the implicit point coordinates of a uniform grid.
func gridPoints(g *dataset.UniformGrid) *mat.Dense {
	n := g.NumPoints()
	out := mat.NewDense(n, 3, nil)
	for id := 0; id < n; id++ {
		x, y, z := g.Point(id)
		out.SetRow(id, []float64{x, y, z})
	}
	return out
}

// gridCells generates one voxel cell per grid cell, VTK voxel point order
// (x fastest, no winding swap on the far face).
func gridCells(g *dataset.UniformGrid) []dataset.Cell {
	nx, ny, nz := g.Dims[0], g.Dims[1], g.Dims[2]
	if nx < 2 || ny < 2 || nz < 2 {
		return flatGridCells(g)
	}
	cells := make([]dataset.Cell, 0, (nx-1)*(ny-1)*(nz-1))
	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				cells = append(cells, dataset.Cell{Type: dataset.Voxel, Conn: []int{
					g.PointIndex(i, j, k), g.PointIndex(i+1, j, k),
					g.PointIndex(i, j+1, k), g.PointIndex(i+1, j+1, k),
					g.PointIndex(i, j, k+1), g.PointIndex(i+1, j, k+1),
					g.PointIndex(i, j+1, k+1), g.PointIndex(i+1, j+1, k+1),
				}})
			}
		}
	}
	return cells
}

// flatGridCells handles grids degenerate in at least one axis: a single
// sheet of quads, a run of lines, or one vertex.
func flatGridCells(g *dataset.UniformGrid) []dataset.Cell {
	nx, ny, nz := g.Dims[0], g.Dims[1], g.Dims[2]
	var cells []dataset.Cell
	switch {
	case nx > 1 && ny > 1:
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				cells = append(cells, dataset.Cell{Type: dataset.Quad, Conn: []int{
					g.PointIndex(i, j, 0), g.PointIndex(i+1, j, 0),
					g.PointIndex(i+1, j+1, 0), g.PointIndex(i, j+1, 0),
				}})
			}
		}
	case nx > 1 && nz > 1:
		for k := 0; k < nz-1; k++ {
			for i := 0; i < nx-1; i++ {
				cells = append(cells, dataset.Cell{Type: dataset.Quad, Conn: []int{
					g.PointIndex(i, 0, k), g.PointIndex(i+1, 0, k),
					g.PointIndex(i+1, 0, k+1), g.PointIndex(i, 0, k+1),
				}})
			}
		}
	case ny > 1 && nz > 1:
		for k := 0; k < nz-1; k++ {
			for j := 0; j < ny-1; j++ {
				cells = append(cells, dataset.Cell{Type: dataset.Quad, Conn: []int{
					g.PointIndex(0, j, k), g.PointIndex(0, j+1, k),
					g.PointIndex(0, j+1, k+1), g.PointIndex(0, j, k+1),
				}})
			}
		}
	case nx > 1:
		for i := 0; i < nx-1; i++ {
			cells = append(cells, dataset.Cell{Type: dataset.Line,
				Conn: []int{g.PointIndex(i, 0, 0), g.PointIndex(i+1, 0, 0)}})
		}
	case ny > 1:
		for j := 0; j < ny-1; j++ {
			cells = append(cells, dataset.Cell{Type: dataset.Line,
				Conn: []int{g.PointIndex(0, j, 0), g.PointIndex(0, j+1, 0)}})
		}
	case nz > 1:
		for k := 0; k < nz-1; k++ {
			cells = append(cells, dataset.Cell{Type: dataset.Line,
				Conn: []int{g.PointIndex(0, 0, k), g.PointIndex(0, 0, k+1)}})
		}
	default:
		cells = append(cells, dataset.Cell{Type: dataset.Vertex, Conn: []int{0}})
	}
	return cells
}

func appendRange(dst []int, base, n int) []int {
	for i := 0; i < n; i++ {
		dst = append(dst, base+i)
	}
	return dst
}

func pointArrays(ds dataset.DataSet) *dataset.Field { return ds.PointData() }
func cellArrays(ds dataset.DataSet) *dataset.Field  { return ds.CellData() }

// flatPointValue resolves a flat input point id (block points concatenated
// in order) to the value of the named array on its block.
func flatPointValue(blocks []dataset.DataSet, name string, flat int) (float64, bool) {
	for _, b := range blocks {
		n := b.NumPoints()
		if flat < n {
			arr, ok := b.PointData().Get(name)
			if !ok || flat >= len(arr) {
				return 0, false
			}
			return arr[flat], true
		}
		flat -= n
	}
	return 0, false
}

func flatCellValue(blocks []dataset.DataSet, name string, flat int) (float64, bool) {
	for _, b := range blocks {
		n := numFlatCells(b)
		if flat < n {
			arr, ok := b.CellData().Get(name)
			if !ok || flat >= len(arr) {
				return 0, false
			}
			return arr[flat], true
		}
		flat -= n
	}
	return 0, false
}

// numFlatCells matches the cell count asCells produces, which for uniform
// grids equals the implicit cell count only in the non-degenerate case.
func numFlatCells(ds dataset.DataSet) int {
	_, cells := asCells(ds)
	return len(cells)
}

// carryArrays copies every array present on all blocks onto dst, resolving
// each output element back to its source value through src ids.
func carryArrays(dst *dataset.Field, blocks []dataset.DataSet,
	field func(dataset.DataSet) *dataset.Field,
	value func([]dataset.DataSet, string, int) (float64, bool), src []int) {
	if len(blocks) == 0 {
		return
	}
	for _, name := range field(blocks[0]).Names() {
		shared := true
		for _, b := range blocks[1:] {
			if !field(b).Has(name) {
				shared = false
				break
			}
		}
		if !shared {
			continue
		}
		out := make([]float64, len(src))
		ok := true
		for i, id := range src {
			v, found := value(blocks, name, id)
			if !found {
				ok = false
				break
			}
			out[i] = v
		}
		if ok {
			dst.Set(name, out)
		}
	}
}
