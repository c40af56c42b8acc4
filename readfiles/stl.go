package readfiles

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/meshforge/meshkit/dataset"
	"github.com/meshforge/meshkit/multiblock"
)

// ReadSTL loads an STL surface, binary or ASCII, as triangulated PolyData.
// Duplicate vertices shared between facets are merged on load.
func ReadSTL(path string) (*dataset.PolyData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", multiblock.ErrFileNotFound, path)
		}
		return nil, err
	}
	if isASCIISTL(raw) {
		return readSTLASCII(bytes.NewReader(raw))
	}
	return readSTLBinary(bytes.NewReader(raw))
}

// isASCIISTL distinguishes the two encodings. A binary file of n triangles
// is exactly 84 + 50n bytes, so a matching size wins even when the header
// happens to start with "solid".
func isASCIISTL(raw []byte) bool {
	if len(raw) >= 84 {
		n := binary.LittleEndian.Uint32(raw[80:])
		if len(raw) == 84+50*int(n) {
			return false
		}
	}
	return bytes.HasPrefix(bytes.TrimLeft(raw, " \t\r\n"), []byte("solid"))
}

func readSTLBinary(r io.Reader) (*dataset.PolyData, error) {
	var header struct {
		Comment [80]byte
		NTri    uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	var (
		verts   [][3]float64
		tris    [][]int
		vertMap = make(map[[3]float32]int)
		triBuf  = make([]byte, 50) // normal + 3 verts as float32, 2 attr bytes
	)
	for i := 0; i < int(header.NTri); i++ {
		if _, err := io.ReadFull(r, triBuf); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		tri := make([]int, 3)
		for v := 0; v < 3; v++ {
			var vert [3]float32
			for c := 0; c < 3; c++ {
				const start = 3 * 4 // skip the facet normal
				vert[c] = math.Float32frombits(
					binary.LittleEndian.Uint32(triBuf[start+12*v+4*c:]))
			}
			id, ok := vertMap[vert]
			if !ok {
				id = len(verts)
				vertMap[vert] = id
				verts = append(verts, [3]float64{
					float64(vert[0]), float64(vert[1]), float64(vert[2])})
			}
			tri[v] = id
		}
		tris = append(tris, tri)
	}

	pd := dataset.NewPolyData(dataset.PointsFromTriples(verts))
	pd.Polys = tris
	return pd, nil
}

func readSTLASCII(r io.Reader) (*dataset.PolyData, error) {
	var (
		verts   [][3]float64
		tris    [][]int
		tri     []int
		vertMap = make(map[[3]float64]int)
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "outer":
			tri = tri[:0]
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("malformed vertex line %q", sc.Text())
			}
			var vert [3]float64
			for c := 0; c < 3; c++ {
				v, err := strconv.ParseFloat(fields[c+1], 64)
				if err != nil {
					return nil, fmt.Errorf("malformed vertex line %q: %w", sc.Text(), err)
				}
				vert[c] = v
			}
			id, ok := vertMap[vert]
			if !ok {
				id = len(verts)
				vertMap[vert] = id
				verts = append(verts, vert)
			}
			tri = append(tri, id)
		case "endloop":
			if len(tri) != 3 {
				return nil, fmt.Errorf("facet with %d vertices", len(tri))
			}
			tris = append(tris, append([]int(nil), tri...))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	pd := dataset.NewPolyData(dataset.PointsFromTriples(verts))
	pd.Polys = tris
	return pd, nil
}

// WriteSTL writes triangulated PolyData as binary STL. Polygons with more
// than three vertices are fanned into triangles.
func WriteSTL(pd *dataset.PolyData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	var tris [][3]int
	for _, poly := range pd.Polys {
		for i := 1; i+1 < len(poly); i++ {
			tris = append(tris, [3]int{poly[0], poly[i], poly[i+1]})
		}
	}

	var header [80]byte
	copy(header[:], "meshkit binary STL")
	if err = binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	if err = binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}

	buf := make([]byte, 50)
	for _, tri := range tris {
		n := facetNormal(pd, tri)
		for c := 0; c < 3; c++ {
			binary.LittleEndian.PutUint32(buf[4*c:], math.Float32bits(float32(n[c])))
		}
		for v := 0; v < 3; v++ {
			row := pd.Points.RawRowView(tri[v])
			for c := 0; c < 3; c++ {
				binary.LittleEndian.PutUint32(buf[12+12*v+4*c:],
					math.Float32bits(float32(row[c])))
			}
		}
		buf[48], buf[49] = 0, 0
		if _, err = w.Write(buf); err != nil {
			return err
		}
	}
	return w.Flush()
}

func facetNormal(pd *dataset.PolyData, tri [3]int) [3]float64 {
	a := pd.Points.RawRowView(tri[0])
	b := pd.Points.RawRowView(tri[1])
	c := pd.Points.RawRowView(tri[2])
	u := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	if mag := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]); mag > 0 {
		n[0] /= mag
		n[1] /= mag
		n[2] /= mag
	}
	return n
}
