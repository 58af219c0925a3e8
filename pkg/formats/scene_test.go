package formats

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const cubeScene = `start object
name Cube
type MESH
location 1 2 3
scale 1 1 1
rotation 0 0 1 90
start vertex
-1 -1 0
1 -1 0
1 1 0
-1 1 0
end vertex
start polygon
1 2 3 4
end polygon
start group
solid
end group
end
`

func parseString(t *testing.T, text string) *Scene {
	t.Helper()
	scene, err := ParseScene([]byte(text), SceneOptions{})
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	return scene
}

func TestParseScene_Cube(t *testing.T) {
	scene := parseString(t, cubeScene)

	if len(scene.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(scene.Objects))
	}
	cube := scene.Objects[0]

	if cube.Name != "Cube" || cube.Type != "MESH" {
		t.Errorf("got name=%q type=%q", cube.Name, cube.Type)
	}
	if cube.Location != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("location = %v, want (1,2,3)", cube.Location)
	}
	if cube.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("scale = %v, want (1,1,1)", cube.Scale)
	}
	if len(cube.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(cube.Vertices))
	}
	if len(cube.Quads) != 1 || cube.Quads[0] != [4]uint16{0, 1, 2, 3} {
		t.Errorf("quads = %v, want [[0 1 2 3]]", cube.Quads)
	}
	if len(cube.Triangles) != 0 {
		t.Errorf("expected no triangles, got %v", cube.Triangles)
	}
	if cube.HasParent() {
		t.Errorf("expected no parent, got %d", cube.Parent)
	}
	if !cube.InGroup("solid") || cube.InGroup("other") {
		t.Errorf("groups = %v", cube.Groups)
	}
}

func TestParseScene_Rotation(t *testing.T) {
	tests := []struct {
		name string
		line string
		want mgl32.Quat
	}{
		{
			name: "z 90 degrees",
			line: "rotation 0 0 1 90",
			want: mgl32.Quat{W: float32(math.Cos(math.Pi / 4)), V: mgl32.Vec3{0, 0, float32(math.Sin(math.Pi / 4))}},
		},
		{
			name: "unnormalized axis",
			line: "rotation 0 0 5 90",
			want: mgl32.Quat{W: float32(math.Cos(math.Pi / 4)), V: mgl32.Vec3{0, 0, float32(math.Sin(math.Pi / 4))}},
		},
		{
			name: "zero axis",
			line: "rotation 0 0 0 45",
			want: mgl32.QuatIdent(),
		},
		{
			name: "zero angle",
			line: "rotation 1 0 0 0",
			want: mgl32.QuatIdent(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := parseString(t, "start object\n"+tt.line+"\nend\n")
			got := scene.Objects[0].Rotation
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("rotation = %v, want %v", got, tt.want)
			}
			if l := got.Len(); math.Abs(float64(l-1)) > 1e-5 {
				t.Errorf("rotation length = %v, want 1", l)
			}
		})
	}
}

func TestParseScene_Defaults(t *testing.T) {
	scene := parseString(t, "start object\nend\n")
	obj := scene.Objects[0]

	if obj.Name != "" || obj.Type != "" {
		t.Errorf("expected empty strings, got name=%q type=%q", obj.Name, obj.Type)
	}
	if obj.Location != (mgl32.Vec3{}) || obj.Scale != (mgl32.Vec3{}) {
		t.Errorf("expected zero vectors, got location=%v scale=%v", obj.Location, obj.Scale)
	}
	if obj.Rotation != mgl32.QuatIdent() {
		t.Errorf("expected identity rotation, got %v", obj.Rotation)
	}
	if obj.Parent != NoParent || len(obj.Children) != 0 {
		t.Errorf("expected no hierarchy, got parent=%d children=%v", obj.Parent, obj.Children)
	}
}

func TestParseScene_Triangles(t *testing.T) {
	scene := parseString(t, `start object
name Tri
start polygon
1 2 3
end polygon
start vertex
0 0 0
1 0 0
0 1 0
end vertex
end
`)
	tri := scene.Objects[0]
	if len(tri.Triangles) != 1 || tri.Triangles[0] != [3]uint16{0, 1, 2} {
		t.Errorf("triangles = %v, want [[0 1 2]]", tri.Triangles)
	}
}

func TestParseScene_MultipleObjectsKeepFileOrder(t *testing.T) {
	scene := parseString(t, `start object
name A
end
start object
name B
end
start object
name C
end
`)
	var names []string
	for _, o := range scene.Objects {
		names = append(names, o.Name)
	}
	if got := strings.Join(names, ","); got != "A,B,C" {
		t.Errorf("order = %s, want A,B,C", got)
	}
}

func TestParseScene_Hierarchy(t *testing.T) {
	// Child before parent: resolution happens after all objects exist.
	scene := parseString(t, `start object
name B
parent A
end
start object
name A
end
start object
name C
parent A
end
`)
	b, _ := scene.Find("B")
	a, _ := scene.Find("A")
	parent, ok := scene.ParentOf(0)
	if !ok || parent != a {
		t.Fatalf("B.parent = %v, want A", b.Parent)
	}
	kids := scene.ChildrenOf(1)
	if len(kids) != 2 || kids[0].Name != "B" || kids[1].Name != "C" {
		t.Errorf("A.children = %v, want [B C]", a.Children)
	}
	if roots := scene.Roots(); len(roots) != 1 || roots[0] != 1 {
		t.Errorf("roots = %v, want [1]", roots)
	}
}

func TestParseScene_RepeatedParentOverwrites(t *testing.T) {
	scene := parseString(t, `start object
name A
end
start object
name B
end
start object
name C
parent A
parent B
end
`)
	c, _ := scene.Find("C")
	if c.Parent != 1 {
		t.Errorf("C.parent = %d, want 1", c.Parent)
	}
	if len(scene.Objects[0].Children) != 0 {
		t.Errorf("A.children = %v, want none", scene.Objects[0].Children)
	}
}

func TestParseScene_UnresolvedParent(t *testing.T) {
	scene, err := ParseScene([]byte("start object\nname B\nparent Z\nend\n"), SceneOptions{})
	if !errors.Is(err, ErrUnresolvedParent) {
		t.Fatalf("expected ErrUnresolvedParent, got %v", err)
	}
	if scene != nil {
		t.Error("expected nil scene on error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 3 {
		t.Errorf("line = %d, want 3", perr.Line)
	}
	if !strings.Contains(err.Error(), `"B"`) || !strings.Contains(err.Error(), `"Z"`) {
		t.Errorf("error should name child and parent: %v", err)
	}
}

func TestParseScene_FirstMatchWins(t *testing.T) {
	scene := parseString(t, `start object
name Dup
type FIRST
end
start object
name Dup
type SECOND
end
start object
name Kid
parent Dup
end
`)
	dup, ok := scene.Find("Dup")
	if !ok || dup.Type != "FIRST" {
		t.Fatalf("Find(Dup) = %+v, want the FIRST object", dup)
	}
	if scene.Objects[2].Parent != 0 {
		t.Errorf("Kid.parent = %d, want 0", scene.Objects[2].Parent)
	}
	if _, ok := scene.Find("Missing"); ok {
		t.Error("Find(Missing) should fail")
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErr  error
		wantLine int
	}{
		{
			name:     "truncated vertex block",
			text:     "start object\nname X\nstart vertex\n0 0 0\n",
			wantErr:  ErrTruncatedFile,
			wantLine: 4,
		},
		{
			name:     "truncated object",
			text:     "start object\nname X\n",
			wantErr:  ErrTruncatedFile,
			wantLine: 2,
		},
		{
			name:     "truncated polygon block",
			text:     "start object\nstart polygon\n1 2 3\n",
			wantErr:  ErrTruncatedFile,
			wantLine: 3,
		},
		{
			name:     "truncated group block",
			text:     "start object\nstart group\n",
			wantErr:  ErrTruncatedFile,
			wantLine: 2,
		},
		{
			name:     "bad float",
			text:     "start object\nlocation 1 two 3\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 2,
		},
		{
			name:     "infinite rotation axis",
			text:     "start object\nname A\nrotation inf 0 1 90\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 3,
		},
		{
			name:     "nan rotation angle",
			text:     "start object\nname A\nrotation 0 0 1 nan\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 3,
		},
		{
			name:     "nan location",
			text:     "start object\nlocation NaN 0 0\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 2,
		},
		{
			name:     "infinite vertex",
			text:     "start object\nstart vertex\n0 +Inf 0\nend vertex\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 3,
		},
		{
			name:     "float32 overflow",
			text:     "start object\nscale 1e39 1 1\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 2,
		},
		{
			name:     "missing field",
			text:     "start object\nscale 1 1\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 2,
		},
		{
			name:     "double space",
			text:     "start object\nlocation 1  2 3\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 2,
		},
		{
			name:     "bad vertex",
			text:     "start object\nstart vertex\n0 0\nend vertex\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 3,
		},
		{
			name:     "pentagon",
			text:     "start object\nstart polygon\n1 2 3 4 5\nend polygon\nend\n",
			wantErr:  ErrUnsupportedPolygon,
			wantLine: 3,
		},
		{
			name:     "line polygon",
			text:     "start object\nstart polygon\n1 2\nend polygon\nend\n",
			wantErr:  ErrUnsupportedPolygon,
			wantLine: 3,
		},
		{
			name:     "zero index",
			text:     "start object\nstart polygon\n0 1 2\nend polygon\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 3,
		},
		{
			name:     "index overflow",
			text:     "start object\nstart polygon\n1 2 70000\nend polygon\nend\n",
			wantErr:  ErrMalformedLine,
			wantLine: 3,
		},
		{
			name:     "index out of range",
			text:     "start object\nstart vertex\n0 0 0\nend vertex\nstart polygon\n1 1 2\nend polygon\nend\n",
			wantErr:  ErrIndexOutOfRange,
			wantLine: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := ParseScene([]byte(tt.text), SceneOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if scene != nil {
				t.Error("expected nil scene on error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", perr.Line, tt.wantLine)
			}
		})
	}
}

func TestParseScene_MalformedLineCarriesText(t *testing.T) {
	_, err := ParseScene([]byte("start object\nlocation 1 x 3\nend\n"), SceneOptions{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Text != "location 1 x 3" {
		t.Errorf("text = %q", perr.Text)
	}
}

func TestParseScene_SkipsUnknownAndBlankLines(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	text := `# exported scene
version 3

start object
name A
material Steel
start uvmap
end uvmap

end
`
	scene, err := ParseScene([]byte(text), SceneOptions{Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if len(scene.Objects) != 1 || scene.Objects[0].Name != "A" {
		t.Fatalf("objects = %+v", scene.Objects)
	}
	// comment, version, blank, material, start uvmap, end uvmap, blank
	if scene.Skipped != 7 {
		t.Errorf("skipped = %d, want 7", scene.Skipped)
	}
	if n := logs.FilterMessage("skipping line").Len(); n != 7 {
		t.Errorf("logged %d skipped lines, want 7", n)
	}
}

func TestParseScene_Idempotent(t *testing.T) {
	text := cubeScene + "start object\nname Child\nparent Cube\nstart group\nrobot\nend group\nend\n"
	a := parseString(t, text)
	b := parseString(t, text)

	if !reflect.DeepEqual(a.Objects, b.Objects) {
		t.Errorf("objects differ between parses:\n%+v\n%+v", a.Objects, b.Objects)
	}
	if a.Skipped != b.Skipped {
		t.Errorf("skipped differs: %d vs %d", a.Skipped, b.Skipped)
	}
	if &a.Objects[0] == &b.Objects[0] {
		t.Error("scenes should not share storage")
	}
}

func TestScene_Walk(t *testing.T) {
	scene := parseString(t, `start object
name Root
end
start object
name Arm
parent Root
end
start object
name Hand
parent Arm
end
start object
name Lamp
end
`)
	var visited []string
	var depths []int
	scene.Walk(func(i, depth int) bool {
		visited = append(visited, scene.Objects[i].Name)
		depths = append(depths, depth)
		return true
	})
	if got := strings.Join(visited, ","); got != "Root,Arm,Hand,Lamp" {
		t.Errorf("walk order = %s", got)
	}
	if depths[2] != 2 {
		t.Errorf("Hand depth = %d, want 2", depths[2])
	}

	visited = nil
	scene.Walk(func(i, depth int) bool {
		visited = append(visited, scene.Objects[i].Name)
		return scene.Objects[i].Name != "Arm"
	})
	if got := strings.Join(visited, ","); got != "Root,Arm,Lamp" {
		t.Errorf("pruned walk = %s", got)
	}
}

func TestScene_WalkParentCycle(t *testing.T) {
	scene := parseString(t, `start object
name Lamp
end
start object
name A
parent B
end
start object
name B
parent A
end
start object
name C
parent B
end
`)
	if roots := scene.Roots(); len(roots) != 1 || roots[0] != 0 {
		t.Fatalf("roots = %v, want [0]", roots)
	}

	var visited []string
	var depths []int
	scene.Walk(func(i, depth int) bool {
		visited = append(visited, scene.Objects[i].Name)
		depths = append(depths, depth)
		return true
	})
	if got := strings.Join(visited, ","); got != "Lamp,A,B,C" {
		t.Errorf("walk order = %s", got)
	}
	if want := []int{0, 0, 1, 2}; !reflect.DeepEqual(depths, want) {
		t.Errorf("depths = %v, want %v", depths, want)
	}
}

func TestParseSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.scene")
	if err := os.WriteFile(path, []byte(cubeScene), 0644); err != nil {
		t.Fatalf("failed to write scene: %v", err)
	}

	scene, err := ParseSceneFile(path, SceneOptions{})
	if err != nil {
		t.Fatalf("ParseSceneFile: %v", err)
	}
	if scene.SourcePath != path {
		t.Errorf("source path = %q, want %q", scene.SourcePath, path)
	}

	_, err = ParseSceneFile(filepath.Join(t.TempDir(), "missing.scene"), SceneOptions{})
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrIO wrapping ErrNotExist, got %v", err)
	}
}
