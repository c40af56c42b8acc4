package multiblock

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"gonum.org/v1/gonum/mat"

	"github.com/meshforge/meshkit/dataset"
)

// On-disk layout: one XML document holding every block inline. Float arrays
// are either whitespace separated ASCII or base64 little-endian float64,
// chosen per file by the binary flag on Save. Integer connectivity is
// always ASCII.

const fileVersion = "0.1"

type xmlFile struct {
	XMLName xml.Name   `xml:"MeshKitFile"`
	Type    string     `xml:"type,attr"`
	Version string     `xml:"version,attr"`
	Blocks  []xmlBlock `xml:"MultiBlock>Block"`
}

type xmlBlock struct {
	Index int    `xml:"index,attr"`
	Name  string `xml:"name,attr,omitempty"`
	Type  string `xml:"type,attr,omitempty"`

	Points *xmlArray `xml:"Points,omitempty"`
	Verts  *xmlConn  `xml:"Verts,omitempty"`
	Lines  *xmlConn  `xml:"Lines,omitempty"`
	Polys  *xmlConn  `xml:"Polys,omitempty"`
	Cells  *xmlCells `xml:"Cells,omitempty"`
	Grid   *xmlGrid  `xml:"Grid,omitempty"`

	// Nested collection blocks recurse through the same element.
	Blocks []xmlBlock `xml:"MultiBlock>Block,omitempty"`

	PointData *xmlField `xml:"PointData,omitempty"`
	CellData  *xmlField `xml:"CellData,omitempty"`
}

type xmlArray struct {
	Name   string `xml:"name,attr,omitempty"`
	Format string `xml:"format,attr"`
	Data   string `xml:",chardata"`
}

type xmlConn struct {
	Offsets      string `xml:"Offsets"`
	Connectivity string `xml:"Connectivity"`
}

type xmlCells struct {
	Types        string `xml:"Types"`
	Offsets      string `xml:"Offsets"`
	Connectivity string `xml:"Connectivity"`
}

type xmlGrid struct {
	Dims    string `xml:"dims,attr"`
	Spacing string `xml:"spacing,attr"`
	Origin  string `xml:"origin,attr"`
}

type xmlField struct {
	Arrays []xmlArray `xml:"Array"`
}

// checkExt validates a multi-block file path, accepting .vtm and .vtmb.
func checkExt(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtm", ".vtmb":
		return nil
	default:
		return fmt.Errorf("%w: %q (expected .vtm or .vtmb)", ErrUnsupportedFormat, ext)
	}
}

// Load reads a multi-block collection from a .vtm or .vtmb file. A leading
// ~ in the path is expanded to the user's home directory. Loading a file
// with zero blocks is an error.
func Load(path string) (*MultiBlock, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	if err = checkExt(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	var doc xmlFile
	if err = xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, path)
	}

	m, err := decodeSlots(doc.Blocks)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// decodeSlots rebuilds a collection from its block elements, recursing into
// nested collections. Every index must be in range and appear exactly once,
// so a corrupted file cannot silently drop or overwrite a block.
func decodeSlots(xbs []xmlBlock) (*MultiBlock, error) {
	m := New()
	m.Resize(len(xbs))
	seen := make(map[int]bool, len(xbs))
	for _, xb := range xbs {
		if xb.Index < 0 || xb.Index >= m.Len() {
			return nil, fmt.Errorf("block index %d outside 0..%d", xb.Index, m.Len()-1)
		}
		if seen[xb.Index] {
			return nil, fmt.Errorf("duplicate block index %d", xb.Index)
		}
		seen[xb.Index] = true

		var obj dataset.Object
		if xb.Type == "MultiBlock" {
			nested, err := decodeSlots(xb.Blocks)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", xb.Index, err)
			}
			obj = nested
		} else {
			ds, err := decodeBlock(xb)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", xb.Index, err)
			}
			if ds != nil {
				obj = ds
			}
		}
		if obj != nil {
			if err := m.Set(xb.Index, obj, xb.Name); err != nil {
				return nil, err
			}
		} else {
			m.SetBlockName(xb.Index, xb.Name)
		}
	}
	return m, nil
}

// Save writes the collection to a .vtm or .vtmb file. When binary is set,
// float arrays are stored base64 encoded; otherwise as ASCII text.
func (m *MultiBlock) Save(path string, binary bool) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if err = checkExt(path); err != nil {
		return err
	}

	blocks, err := encodeSlots(m, binary)
	if err != nil {
		return err
	}
	doc := xmlFile{Type: "MultiBlock", Version: fileVersion, Blocks: blocks}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	out = append([]byte(xml.Header), out...)
	return os.WriteFile(path, append(out, '\n'), 0644)
}

// encodeSlots serializes every slot of a collection, recursing into nested
// collections. A slot holding an object outside the data-object model is an
// error rather than a silently dropped block.
func encodeSlots(m *MultiBlock, binary bool) ([]xmlBlock, error) {
	out := make([]xmlBlock, 0, len(m.slots))
	for i, s := range m.slots {
		xb := xmlBlock{Index: i, Name: s.name}
		switch v := s.obj.(type) {
		case nil:
		case *MultiBlock:
			xb.Type = "MultiBlock"
			children, err := encodeSlots(v, binary)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
			xb.Blocks = children
		case dataset.DataSet:
			if err := encodeBlock(&xb, v, binary); err != nil {
				return nil, fmt.Errorf("encoding block %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("%w: block %d holds a %T", ErrUnsupportedFormat, i, s.obj)
		}
		out = append(out, xb)
	}
	return out, nil
}

func encodeBlock(xb *xmlBlock, ds dataset.DataSet, binary bool) error {
	xb.Type = ds.TypeName()
	switch v := ds.(type) {
	case *dataset.PolyData:
		xb.Points = encodePoints(v.Points, binary)
		xb.Verts = encodeConn(v.Verts)
		xb.Lines = encodeConn(v.Lines)
		xb.Polys = encodeConn(v.Polys)
	case *dataset.UnstructuredGrid:
		xb.Points = encodePoints(v.Points, binary)
		xb.Cells = encodeCells(v.Cells)
	case *dataset.UniformGrid:
		xb.Grid = &xmlGrid{
			Dims:    formatInts([]int{v.Dims[0], v.Dims[1], v.Dims[2]}),
			Spacing: formatFloats(v.Spacing[:]),
			Origin:  formatFloats(v.Origin[:]),
		}
	default:
		return fmt.Errorf("%w: dataset type %s", ErrUnsupportedFormat, ds.TypeName())
	}
	xb.PointData = encodeField(ds.PointData(), binary)
	xb.CellData = encodeField(ds.CellData(), binary)
	return nil
}

func decodeBlock(xb xmlBlock) (dataset.DataSet, error) {
	var ds dataset.DataSet
	switch xb.Type {
	case "":
		return nil, nil
	case "PolyData":
		pts, err := decodePoints(xb.Points)
		if err != nil {
			return nil, err
		}
		pd := dataset.NewPolyData(pts)
		if pd.Verts, err = decodeConn(xb.Verts); err != nil {
			return nil, err
		}
		if pd.Lines, err = decodeConn(xb.Lines); err != nil {
			return nil, err
		}
		if pd.Polys, err = decodeConn(xb.Polys); err != nil {
			return nil, err
		}
		ds = pd
	case "UnstructuredGrid":
		pts, err := decodePoints(xb.Points)
		if err != nil {
			return nil, err
		}
		ug := dataset.NewUnstructuredGrid(pts)
		if ug.Cells, err = decodeCells(xb.Cells); err != nil {
			return nil, err
		}
		ds = ug
	case "UniformGrid":
		if xb.Grid == nil {
			return nil, fmt.Errorf("UniformGrid block missing Grid element")
		}
		dims, err := parseInts(xb.Grid.Dims)
		if err != nil || len(dims) != 3 {
			return nil, fmt.Errorf("bad grid dims %q", xb.Grid.Dims)
		}
		ug := dataset.NewUniformGrid([3]int{dims[0], dims[1], dims[2]})
		if err := parse3(xb.Grid.Spacing, &ug.Spacing); err != nil {
			return nil, fmt.Errorf("bad grid spacing %q", xb.Grid.Spacing)
		}
		if err := parse3(xb.Grid.Origin, &ug.Origin); err != nil {
			return nil, fmt.Errorf("bad grid origin %q", xb.Grid.Origin)
		}
		ds = ug
	default:
		return nil, fmt.Errorf("%w: dataset type %q", ErrUnsupportedFormat, xb.Type)
	}
	if err := decodeField(ds.PointData(), xb.PointData); err != nil {
		return nil, err
	}
	if err := decodeField(ds.CellData(), xb.CellData); err != nil {
		return nil, err
	}
	return ds, nil
}

func encodePoints(pts *mat.Dense, binary bool) *xmlArray {
	if pts == nil {
		return nil
	}
	n, _ := pts.Dims()
	flat := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		flat = append(flat, pts.RawRowView(i)...)
	}
	return encodeArray("", flat, binary)
}

func decodePoints(xa *xmlArray) (*mat.Dense, error) {
	if xa == nil {
		return mat.NewDense(0, 3, nil), nil
	}
	flat, err := decodeArray(xa)
	if err != nil {
		return nil, err
	}
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("points array length %d is not a multiple of 3", len(flat))
	}
	if len(flat) == 0 {
		return mat.NewDense(0, 3, nil), nil
	}
	return mat.NewDense(len(flat)/3, 3, flat), nil
}

func encodeConn(conn [][]int) *xmlConn {
	if len(conn) == 0 {
		return nil
	}
	var offsets, flat []int
	off := 0
	for _, c := range conn {
		off += len(c)
		offsets = append(offsets, off)
		flat = append(flat, c...)
	}
	return &xmlConn{
		Offsets:      formatInts(offsets),
		Connectivity: formatInts(flat),
	}
}

func decodeConn(xc *xmlConn) ([][]int, error) {
	if xc == nil {
		return nil, nil
	}
	offsets, err := parseInts(xc.Offsets)
	if err != nil {
		return nil, err
	}
	flat, err := parseInts(xc.Connectivity)
	if err != nil {
		return nil, err
	}
	return splitConn(offsets, flat)
}

func splitConn(offsets, flat []int) ([][]int, error) {
	out := make([][]int, 0, len(offsets))
	prev := 0
	for _, off := range offsets {
		if off < prev || off > len(flat) {
			return nil, fmt.Errorf("bad connectivity offset %d", off)
		}
		out = append(out, flat[prev:off])
		prev = off
	}
	if prev != len(flat) {
		return nil, fmt.Errorf("connectivity has %d trailing entries", len(flat)-prev)
	}
	return out, nil
}

func encodeCells(cells []dataset.Cell) *xmlCells {
	if len(cells) == 0 {
		return nil
	}
	types := make([]int, len(cells))
	conn := make([][]int, len(cells))
	for i, c := range cells {
		types[i] = int(c.Type)
		conn[i] = c.Conn
	}
	xc := encodeConn(conn)
	return &xmlCells{
		Types:        formatInts(types),
		Offsets:      xc.Offsets,
		Connectivity: xc.Connectivity,
	}
}

func decodeCells(xc *xmlCells) ([]dataset.Cell, error) {
	if xc == nil {
		return nil, nil
	}
	types, err := parseInts(xc.Types)
	if err != nil {
		return nil, err
	}
	conn, err := decodeConn(&xmlConn{Offsets: xc.Offsets, Connectivity: xc.Connectivity})
	if err != nil {
		return nil, err
	}
	if len(types) != len(conn) {
		return nil, fmt.Errorf("cell list has %d types for %d cells", len(types), len(conn))
	}
	cells := make([]dataset.Cell, len(types))
	for i := range types {
		cells[i] = dataset.Cell{Type: dataset.CellType(types[i]), Conn: conn[i]}
	}
	return cells, nil
}

func encodeField(f *dataset.Field, binary bool) *xmlField {
	if f.Len() == 0 {
		return nil
	}
	out := &xmlField{}
	for _, name := range f.Names() {
		vals, _ := f.Get(name)
		out.Arrays = append(out.Arrays, *encodeArray(name, vals, binary))
	}
	return out
}

func decodeField(f *dataset.Field, xf *xmlField) error {
	if xf == nil {
		return nil
	}
	for _, xa := range xf.Arrays {
		vals, err := decodeArray(&xa)
		if err != nil {
			return fmt.Errorf("array %q: %w", xa.Name, err)
		}
		f.Set(xa.Name, vals)
	}
	return nil
}

func encodeArray(name string, vals []float64, binary bool) *xmlArray {
	xa := &xmlArray{Name: name}
	if binary {
		buf := make([]byte, 8*len(vals))
		for i, v := range vals {
			binary64.PutUint64(buf[8*i:], math.Float64bits(v))
		}
		xa.Format = "binary"
		xa.Data = base64.StdEncoding.EncodeToString(buf)
	} else {
		xa.Format = "ascii"
		xa.Data = formatFloats(vals)
	}
	return xa
}

func decodeArray(xa *xmlArray) ([]float64, error) {
	data := strings.TrimSpace(xa.Data)
	switch xa.Format {
	case "binary":
		buf, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, err
		}
		if len(buf)%8 != 0 {
			return nil, fmt.Errorf("binary payload length %d is not a multiple of 8", len(buf))
		}
		vals := make([]float64, len(buf)/8)
		for i := range vals {
			vals[i] = math.Float64frombits(binary64.Uint64(buf[8*i:]))
		}
		return vals, nil
	case "ascii":
		return parseFloats(data)
	default:
		return nil, fmt.Errorf("%w: array format %q", ErrUnsupportedFormat, xa.Format)
	}
}

var binary64 = binary.LittleEndian

func parse3(s string, out *[3]float64) error {
	vals, err := parseFloats(s)
	if err != nil {
		return err
	}
	if len(vals) != 3 {
		return fmt.Errorf("expected 3 values, got %d", len(vals))
	}
	copy(out[:], vals)
	return nil
}

func formatInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
