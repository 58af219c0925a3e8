package formats

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Scene format keywords.
const (
	lineStartObject = "start object"
	lineEndObject   = "end"
	lineEndVertex   = "end vertex"
	lineEndPolygon  = "end polygon"
	lineEndGroup    = "end group"
)

// pendingParent is a parent reference recorded before every object exists.
type pendingParent struct {
	child int    // Index into objects
	name  string // Parent name as written
	line  int    // Line of the "parent" record
}

// sceneParser holds the state of one ParseScene call. All nested parse
// functions advance the same cursor.
type sceneParser struct {
	c       *LineCursor
	log     *zap.Logger
	objects []SceneObject
	pending []pendingParent
	skipped int
}

// ParseScene parses scene text. Parent references are resolved after the last
// object is read; any failure returns a nil Scene.
func ParseScene(data []byte, opts SceneOptions) (*Scene, error) {
	p := &sceneParser{
		c:   NewLineCursor(data),
		log: opts.logger(),
	}

	for p.c.Next() {
		if p.c.Text() == lineStartObject {
			if err := p.parseObject(); err != nil {
				return nil, err
			}
			continue
		}
		p.skip("top level")
	}

	if err := resolveParents(p.objects, p.pending); err != nil {
		return nil, err
	}

	p.log.Debug("parsed scene",
		zap.Int("objects", len(p.objects)),
		zap.Int("parents", len(p.pending)),
		zap.Int("skipped", p.skipped))

	return &Scene{Objects: p.objects, Skipped: p.skipped}, nil
}

func newSceneObject() SceneObject {
	return SceneObject{
		Rotation: mgl32.QuatIdent(),
		Parent:   NoParent,
	}
}

// parseObject consumes lines up to and including the object's "end".
func (p *sceneParser) parseObject() error {
	index := len(p.objects)
	obj := newSceneObject()

	for p.c.Next() {
		line := p.c.Text()
		if line == lineEndObject {
			if err := p.checkIndices(&obj); err != nil {
				return err
			}
			p.objects = append(p.objects, obj)
			return nil
		}

		fields := SplitFields(line)
		switch fields[0] {
		case "location", "scale":
			v, err := p.vec3Record(fields)
			if err != nil {
				return err
			}
			if fields[0] == "location" {
				obj.Location = v
			} else {
				obj.Scale = v
			}
		case "rotation":
			if err := expectFields(p.c, fields, 5); err != nil {
				return err
			}
			f, err := parseFloats(p.c, fields[1:])
			if err != nil {
				return err
			}
			obj.Rotation = axisAngle(mgl32.Vec3{f[0], f[1], f[2]}, f[3])
		case "name", "type", "parent":
			if err := expectFields(p.c, fields, 2); err != nil {
				return err
			}
			switch fields[0] {
			case "name":
				obj.Name = fields[1]
			case "type":
				obj.Type = fields[1]
			default:
				ref := pendingParent{child: index, name: fields[1], line: p.c.LineNumber()}
				// A repeated "parent" overwrites like any other keyword.
				if n := len(p.pending); n > 0 && p.pending[n-1].child == index {
					p.pending[n-1] = ref
				} else {
					p.pending = append(p.pending, ref)
				}
			}
		case "start":
			if err := p.parseBlock(&obj, fields); err != nil {
				return err
			}
		default:
			p.skip("object")
		}
	}
	return truncatedError(p.c, "object")
}

// parseBlock dispatches a "start <kind>" line inside an object.
func (p *sceneParser) parseBlock(obj *SceneObject, fields []string) error {
	if len(fields) != 2 {
		p.skip("object")
		return nil
	}
	switch fields[1] {
	case "vertex":
		return p.parseVertices(obj)
	case "polygon":
		return p.parsePolygons(obj)
	case "group":
		return p.parseGroups(obj)
	default:
		p.skip("object")
		return nil
	}
}

// parseVertices reads "x y z" lines until "end vertex".
func (p *sceneParser) parseVertices(obj *SceneObject) error {
	for p.c.Next() {
		line := p.c.Text()
		if line == lineEndVertex {
			return nil
		}
		if line == "" {
			p.skip("vertex")
			continue
		}
		fields := SplitFields(line)
		if err := expectFields(p.c, fields, 3); err != nil {
			return err
		}
		f, err := parseFloats(p.c, fields)
		if err != nil {
			return err
		}
		obj.Vertices = append(obj.Vertices, mgl32.Vec3{f[0], f[1], f[2]})
	}
	return truncatedError(p.c, "vertex")
}

// parsePolygons reads triangle and quad index lines until "end polygon".
// Indices are 1-based in the file and stored 0-based.
func (p *sceneParser) parsePolygons(obj *SceneObject) error {
	for p.c.Next() {
		line := p.c.Text()
		if line == lineEndPolygon {
			return nil
		}
		if line == "" {
			p.skip("polygon")
			continue
		}
		fields := SplitFields(line)
		if len(fields) != 3 && len(fields) != 4 {
			return lineError(ErrUnsupportedPolygon, p.c,
				fmt.Errorf("%d indices", len(fields)))
		}
		idx := make([]uint16, len(fields))
		for i, f := range fields {
			v, err := parseIndex(p.c, f)
			if err != nil {
				return err
			}
			idx[i] = v
		}
		if len(idx) == 3 {
			obj.Triangles = append(obj.Triangles, [3]uint16{idx[0], idx[1], idx[2]})
		} else {
			obj.Quads = append(obj.Quads, [4]uint16{idx[0], idx[1], idx[2], idx[3]})
		}
	}
	return truncatedError(p.c, "polygon")
}

// parseGroups reads one group tag per line until "end group".
func (p *sceneParser) parseGroups(obj *SceneObject) error {
	for p.c.Next() {
		line := p.c.Text()
		if line == lineEndGroup {
			return nil
		}
		if line == "" {
			p.skip("group")
			continue
		}
		fields := SplitFields(line)
		if fields[0] == "" {
			return lineError(ErrMalformedLine, p.c, nil)
		}
		obj.Groups = append(obj.Groups, fields[0])
	}
	return truncatedError(p.c, "group")
}

func (p *sceneParser) vec3Record(fields []string) (mgl32.Vec3, error) {
	if err := expectFields(p.c, fields, 4); err != nil {
		return mgl32.Vec3{}, err
	}
	f, err := parseFloats(p.c, fields[1:])
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

// checkIndices verifies every polygon index addresses a vertex of obj.
// Blocks may come in any order, so this runs at the object's "end".
func (p *sceneParser) checkIndices(obj *SceneObject) error {
	n := len(obj.Vertices)
	check := func(idx []uint16) error {
		for _, i := range idx {
			if int(i) >= n {
				return lineError(ErrIndexOutOfRange, p.c,
					fmt.Errorf("object %q: index %d with %d vertices", obj.Name, int(i)+1, n))
			}
		}
		return nil
	}
	for _, t := range obj.Triangles {
		if err := check(t[:]); err != nil {
			return err
		}
	}
	for _, q := range obj.Quads {
		if err := check(q[:]); err != nil {
			return err
		}
	}
	return nil
}

func (p *sceneParser) skip(context string) {
	p.skipped++
	p.log.Debug("skipping line",
		zap.String("context", context),
		zap.Int("line", p.c.LineNumber()),
		zap.String("text", p.c.Text()))
}

// axisAngle builds a unit quaternion from an axis of any length and an angle
// in degrees. A zero axis gives the identity.
func axisAngle(axis mgl32.Vec3, degrees float32) mgl32.Quat {
	if axis.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), axis.Normalize()).Normalize()
}
