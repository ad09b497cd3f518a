package shared

import (
	"os"
	"path/filepath"
	"testing"
)

const testSceneYAML = `
width: 800
height: 600
spawn_point:
  x: 50
  y: 50
win_point:
  x: 700
  y: 500
  w: 32
  h: 32
collidables:
  platform_1:
    x: 200
    y: 400
    w: 100
    h: 20
decorations:
  tree_1:
    x: 10
    y: 10
    w: 8
    h: 8
background_color: { r: 10, g: 10, b: 10, a: 255 }
border_color: { r: 0, g: 0, b: 0, a: 255 }
`

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene_1.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	scene, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	if scene.Width != 800 || scene.Height != 600 {
		t.Errorf("dimensions: got %vx%v", scene.Width, scene.Height)
	}
	if scene.SpawnPoint != (SpawnPoint{X: 50, Y: 50}) {
		t.Errorf("spawn point: got %+v", scene.SpawnPoint)
	}
	if len(scene.Collidables) != 1 {
		t.Fatalf("expected 1 collidable, got %d", len(scene.Collidables))
	}
	if scene.Collidables[0].W != 100 || scene.Collidables[0].H != 20 {
		t.Errorf("collidable dims: got %+v", scene.Collidables[0])
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if _, err := LoadScene("/nonexistent/scene.yaml"); err == nil {
		t.Fatal("expected an error for a missing scene file, got nil")
	}
}
