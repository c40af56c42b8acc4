package filters

import (
	"fmt"
	"sort"

	"github.com/meshforge/meshkit/dataset"
)

// Face ring orderings per 3D cell type, indices local to the cell.
var cellFaces = map[dataset.CellType][][]int{
	dataset.Tet: {
		{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {0, 2, 3},
	},
	dataset.Hex: {
		{0, 3, 2, 1}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	},
	dataset.Voxel: {
		{0, 1, 3, 2}, {4, 6, 7, 5},
		{0, 2, 6, 4}, {1, 5, 7, 3}, {0, 4, 5, 1}, {2, 3, 7, 6},
	},
}

// Surface combines the surface geometry of every block into one polygonal
// dataset. Polygonal blocks pass through; volumetric cells contribute their
// boundary faces, found by counting face occurrences over a sorted-vertex
// key: faces seen once belong to the surface. Point and cell arrays present
// on every block are carried through; a boundary face takes the cell value
// of the volumetric cell it came from.
func Surface(blocks []dataset.DataSet) *dataset.PolyData {
	var (
		coords   [][3]float64
		verts    [][]int
		lines    [][]int
		polys    [][]int
		srcPoint []int
		srcVerts []int // source cell ids parallel to verts, lines, polys
		srcLines []int
		srcPolys []int
		base     int
		cellBase int
	)

	for _, blk := range blocks {
		pts, cells := asCells(blk)
		n, _ := pts.Dims()
		offset := len(coords)
		for i := 0; i < n; i++ {
			row := pts.RawRowView(i)
			coords = append(coords, [3]float64{row[0], row[1], row[2]})
			srcPoint = append(srcPoint, base+i)
		}

		var volume []dataset.Cell
		var volumeSrc []int
		for j, c := range cells {
			id := cellBase + j
			switch c.Type {
			case dataset.Vertex:
				verts = append(verts, offsetConn(c.Conn, offset))
				srcVerts = append(srcVerts, id)
			case dataset.Line:
				lines = append(lines, offsetConn(c.Conn, offset))
				srcLines = append(srcLines, id)
			case dataset.Triangle, dataset.Quad, dataset.Polygon:
				polys = append(polys, offsetConn(c.Conn, offset))
				srcPolys = append(srcPolys, id)
			default:
				volume = append(volume, c)
				volumeSrc = append(volumeSrc, id)
			}
		}
		for _, face := range boundaryFaces(volume) {
			polys = append(polys, offsetConn(face.ring, offset))
			srcPolys = append(srcPolys, volumeSrc[face.parent])
		}
		base += n
		cellBase += len(cells)
	}

	out := dataset.NewPolyData(dataset.PointsFromTriples(coords))
	out.Verts = verts
	out.Lines = lines
	out.Polys = polys
	carryArrays(out.PointData(), blocks, pointArrays, flatPointValue, srcPoint)

	// Output cell order is verts, lines, polys.
	srcCell := make([]int, 0, len(srcVerts)+len(srcLines)+len(srcPolys))
	srcCell = append(srcCell, srcVerts...)
	srcCell = append(srcCell, srcLines...)
	srcCell = append(srcCell, srcPolys...)
	carryArrays(out.CellData(), blocks, cellArrays, flatCellValue, srcCell)
	return out
}

// boundaryFace is a surface face ring plus the index of the volumetric cell
// it belongs to.
type boundaryFace struct {
	ring   []int
	parent int
}

// boundaryFaces returns the faces of a volumetric cell list that occur
// exactly once, in first-seen order.
func boundaryFaces(cells []dataset.Cell) []boundaryFace {
	type entry struct {
		ring   []int
		parent int
		count  int
	}
	var order []string
	seen := make(map[string]*entry)

	for ci, c := range cells {
		faces, ok := cellFaces[c.Type]
		if !ok {
			continue
		}
		for _, f := range faces {
			ring := make([]int, len(f))
			for k, local := range f {
				ring[k] = c.Conn[local]
			}
			key := faceKey(ring)
			if e, ok := seen[key]; ok {
				e.count++
				continue
			}
			seen[key] = &entry{ring: ring, parent: ci, count: 1}
			order = append(order, key)
		}
	}

	var out []boundaryFace
	for _, key := range order {
		if e := seen[key]; e.count == 1 {
			out = append(out, boundaryFace{ring: e.ring, parent: e.parent})
		}
	}
	return out
}

// faceKey builds an orientation independent identity for a face from its
// sorted vertex ids.
func faceKey(ring []int) string {
	s := make([]int, len(ring))
	copy(s, ring)
	sort.Ints(s)
	return fmt.Sprint(s)
}

func offsetConn(conn []int, offset int) []int {
	out := make([]int, len(conn))
	for i, v := range conn {
		out[i] = v + offset
	}
	return out
}
