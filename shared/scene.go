package shared

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SceneObject is an axis-aligned rectangle. Z and Color are
// rendering-only and are accepted but never consulted by physics.
type SceneObject struct {
	X, Y, W, H float32
	Z          int32    `yaml:"z"`
	Color      RGBA     `yaml:"color"`
}

// RGBA is a rendering-only color; the simulation never reads it.
type RGBA struct {
	R, G, B, A uint8
}

// SpawnPoint is where players appear, both at connect time and on a
// win-point reset.
type SpawnPoint struct {
	X, Y float32
}

// sceneFile mirrors the on-disk YAML scene layout.
type sceneFile struct {
	Width           float32                `yaml:"width"`
	Height          float32                `yaml:"height"`
	SpawnPoint      SpawnPoint             `yaml:"spawn_point"`
	WinPoint        SceneObject            `yaml:"win_point"`
	Collidables     map[string]SceneObject `yaml:"collidables"`
	Decorations     map[string]SceneObject `yaml:"decorations"`
	BackgroundColor RGBA                   `yaml:"background_color"`
	BorderColor     RGBA                   `yaml:"border_color"`
}

// Scene is the static geometry loaded once at startup. It is never
// mutated by the simulation afterward.
type Scene struct {
	Width       float32
	Height      float32
	SpawnPoint  SpawnPoint
	WinPoint    SceneObject
	Collidables []SceneObject
}

// LoadScene reads and parses a scene file from disk. Decorations and
// rendering colors are parsed but dropped; they are an out-of-scope
// rendering concern.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, errors.Wrapf(err, "reading scene file %q", path)
	}

	var raw sceneFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Scene{}, errors.Wrapf(err, "parsing scene file %q", path)
	}

	collidables := make([]SceneObject, 0, len(raw.Collidables))
	for _, obj := range raw.Collidables {
		collidables = append(collidables, obj)
	}

	return Scene{
		Width:       raw.Width,
		Height:      raw.Height,
		SpawnPoint:  raw.SpawnPoint,
		WinPoint:    raw.WinPoint,
		Collidables: collidables,
	}, nil
}
