package formats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Axis selects a source component when remapping OBJ positions.
type Axis int

// Source axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// AxisMap converts positions from an authoring tool's coordinate convention.
// Output component i is Scale * input[Order[i]].
type AxisMap struct {
	Order [3]Axis
	Scale float32
}

// BlenderAxisMap swaps Y and Z (Z-up to Y-up) and shrinks by 0.8.
var BlenderAxisMap = AxisMap{Order: [3]Axis{AxisX, AxisZ, AxisY}, Scale: 0.8}

// IdentityAxisMap leaves positions untouched.
var IdentityAxisMap = AxisMap{Order: [3]Axis{AxisX, AxisY, AxisZ}, Scale: 1}

// Apply remaps one position.
func (m AxisMap) Apply(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(v[m.Order[0]]) * m.Scale,
		float32(v[m.Order[1]]) * m.Scale,
		float32(v[m.Order[2]]) * m.Scale,
	}
}

// OBJMesh is one "o" section of an OBJ file.
// Indices are 0-based draw-order triangle indices.
type OBJMesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Indices  []uint16
}

// TriangleCount returns the number of triangles in the index list.
func (m *OBJMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// OBJOptions configures OBJ parsing.
type OBJOptions struct {
	// Axes is applied to every "v" record. The zero value means BlenderAxisMap.
	Axes *AxisMap
	// Logger receives diagnostics about skipped lines. Nil disables logging.
	Logger *zap.Logger
}

func (o OBJOptions) axes() AxisMap {
	if o.Axes == nil {
		return BlenderAxisMap
	}
	return *o.Axes
}

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) ([]OBJMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrIO, Err: fmt.Errorf("opening OBJ file: %w", err)}
	}
	defer f.Close()
	return ParseOBJ(f, opts)
}

// ParseOBJ parses "o", "v" and "f" records. Each "o" line closes the mesh
// before it. Face indices count vertices across the whole file, as OBJ
// defines them, and are rebased onto the current mesh; a face may only
// reference vertices of its own mesh.
func ParseOBJ(r io.Reader, opts OBJOptions) ([]OBJMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Kind: ErrIO, Err: fmt.Errorf("reading OBJ data: %w", err)}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	axes := opts.axes()
	c := NewLineCursor(data)

	var meshes []OBJMesh
	var cur *OBJMesh
	base := 0 // vertices in already flushed meshes

	// Highest face index of the current mesh and the face line that used it.
	// Vertices may follow faces, so the range check waits for the flush.
	maxIndex, maxLine, maxText := -1, 0, ""
	flush := func() error {
		if cur == nil {
			return nil
		}
		if maxIndex >= len(cur.Vertices) {
			return &ParseError{
				Kind: ErrIndexOutOfRange,
				Line: maxLine,
				Text: maxText,
				Err:  fmt.Errorf("mesh %q: index %d with %d vertices", cur.Name, base+maxIndex+1, len(cur.Vertices)),
			}
		}
		meshes = append(meshes, *cur)
		base += len(cur.Vertices)
		cur = nil
		maxIndex, maxLine, maxText = -1, 0, ""
		return nil
	}
	skipped := 0

	for c.Next() {
		line := c.Text()
		fields := SplitFields(line)
		switch fields[0] {
		case "o":
			if err := expectFields(c, fields, 2); err != nil {
				return nil, err
			}
			if err := flush(); err != nil {
				return nil, err
			}
			cur = &OBJMesh{Name: fields[1]}
		case "v":
			if err := expectFields(c, fields, 4); err != nil {
				return nil, err
			}
			f, err := parseFloats64(c, fields[1:])
			if err != nil {
				return nil, err
			}
			if cur == nil {
				cur = &OBJMesh{}
			}
			cur.Vertices = append(cur.Vertices, axes.Apply([3]float64{f[0], f[1], f[2]}))
		case "f":
			if len(fields) != 4 && len(fields) != 5 {
				return nil, lineError(ErrUnsupportedPolygon, c,
					fmt.Errorf("%d indices", len(fields)-1))
			}
			idx := make([]uint16, len(fields)-1)
			for i, f := range fields[1:] {
				// v/vt/vn: only the position index is used.
				pos, _, _ := strings.Cut(f, "/")
				v, err := parseIndex(c, pos)
				if err != nil {
					return nil, err
				}
				if int(v) < base {
					return nil, lineError(ErrIndexOutOfRange, c,
						fmt.Errorf("index %s belongs to a previous object", pos))
				}
				idx[i] = v - uint16(base)
				if int(idx[i]) > maxIndex {
					maxIndex, maxLine, maxText = int(idx[i]), c.LineNumber(), line
				}
			}
			if cur == nil {
				cur = &OBJMesh{}
			}
			cur.Indices = AppendTriangles(cur.Indices, idx)
		default:
			skipped++
			log.Debug("skipping OBJ line",
				zap.Int("line", c.LineNumber()),
				zap.String("text", line))
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	log.Debug("parsed OBJ", zap.Int("meshes", len(meshes)), zap.Int("skipped", skipped))
	return meshes, nil
}

// AppendTriangles appends a triangle or quad to dst in draw order.
// Winding is reversed relative to the file: (a,b,c) becomes (c,b,a) and the
// quad (a,b,c,d) becomes (c,b,a) (d,c,a).
func AppendTriangles(dst []uint16, idx []uint16) []uint16 {
	a, b, c := idx[0], idx[1], idx[2]
	dst = append(dst, c, b, a)
	if len(idx) == 4 {
		dst = append(dst, idx[3], c, a)
	}
	return dst
}
