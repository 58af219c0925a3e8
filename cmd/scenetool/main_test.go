package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/simplescene/pkg/formats"
)

const robotScene = `start object
name Torso
type MESH
location 0 1 0
scale 1 1 1
start vertex
0 0 0
1 0 0
1 1 0
0 1 0
end vertex
start polygon
1 2 3 4
end polygon
start group
robot
end group
end
start object
name Head
type MESH
parent Torso
end
start object
name Lamp
type LAMP
end
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeFile(t, "robot.scene", robotScene)

	out, err := run(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Objects: 3", "Torso (MESH)", "children  Head", "parent    Torso", "groups    robot"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "inspect", "--group", "robot", path)
	if err != nil {
		t.Fatalf("inspect --group: %v", err)
	}
	if strings.Contains(out, "Lamp") {
		t.Errorf("group filter should hide Lamp:\n%s", out)
	}
}

func TestFind(t *testing.T) {
	path := writeFile(t, "robot.scene", robotScene)

	out, err := run(t, "find", path, "Head")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.HasPrefix(out, "Head (MESH)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "find", path, "Tail"); err == nil {
		t.Error("expected error for missing object")
	}
}

func TestTree(t *testing.T) {
	path := writeFile(t, "robot.scene", robotScene)

	out, err := run(t, "tree", path)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	want := "Torso [MESH]\n  Head [MESH]\nLamp [LAMP]\n"
	if out != want {
		t.Errorf("tree output = %q, want %q", out, want)
	}

	out, err = run(t, "tree", "--depth", "1", path)
	if err != nil {
		t.Fatalf("tree --depth: %v", err)
	}
	if strings.Contains(out, "Head") {
		t.Errorf("depth 1 should hide Head:\n%s", out)
	}
}

func TestOBJ(t *testing.T) {
	path := writeFile(t, "tri.obj", "o Tri\nv 0 0 0\nv 1 0 0\nv 0 0 1\nf 1 2 3\n")

	out, err := run(t, "obj", "--obj-axes", "x,y,z", "--obj-scale", "2", path)
	if err != nil {
		t.Fatalf("obj: %v", err)
	}
	if !strings.Contains(out, "Meshes: 1") || !strings.Contains(out, "Tri") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, ".. [2 0 2]") || !strings.Contains(out, "size [2 0 2]") {
		t.Errorf("expected scaled bounds max and size [2 0 2]:\n%s", out)
	}

	if _, err := run(t, "obj", "--obj-axes", "x,x,z", path); err == nil {
		t.Error("expected error for invalid axes")
	}
}

func TestReport(t *testing.T) {
	path := writeFile(t, "robot.scene", robotScene)

	out, err := run(t, "report", path)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "# Scene report") || !strings.Contains(out, "| Head | MESH |") {
		t.Errorf("unexpected markdown:\n%s", out)
	}

	htmlPath := filepath.Join(t.TempDir(), "robot.html")
	if _, err := run(t, "report", "--html", "-o", htmlPath, path); err != nil {
		t.Fatalf("report --html: %v", err)
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "<table>") {
		t.Errorf("expected HTML table:\n%s", data)
	}
}

func TestLoadErrorsSurface(t *testing.T) {
	path := writeFile(t, "broken.scene", "start object\nname B\nparent Z\nend\n")

	_, err := run(t, "inspect", path)
	if !errors.Is(err, formats.ErrUnresolvedParent) {
		t.Errorf("expected ErrUnresolvedParent, got %v", err)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "scenetool.yaml")

	if _, err := run(t, "init-config", "--obj-scale", "3", path); err != nil {
		t.Fatalf("init-config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "scale: 3") {
		t.Errorf("expected scale 3 in written config:\n%s", data)
	}
}
