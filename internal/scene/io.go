package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a Scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	var sc Scene
	if err := json.NewDecoder(f).Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if len(sc.Spheres) == 0 {
		return nil, fmt.Errorf("scene %s: no spheres", path)
	}
	return &sc, nil
}

// Save writes a Scene to a JSON file.
func Save(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Default returns a small built-in scene: a ground sphere, two subject
// spheres and an emissive "sun", used when no scene file is given.
func Default() *Scene {
	return &Scene{
		Name: "default",
		Camera: Camera{
			Position: Vec3{X: 0, Y: 1, Z: 5},
			Target:   Vec3{Y: 0.5},
			Up:       Vec3{Y: 1},
			FOV:      60,
		},
		Settings: Settings{
			MaxBounces:      8,
			RaysPerFrag:     4,
			DivergeStrength: 0.002,
		},
		Spheres: []Sphere{
			{
				Center:   Vec3{Y: -100.5},
				Radius:   100,
				Material: Material{Color: Color{R: 0.6, G: 0.6, B: 0.6}},
			},
			{
				Center:   Vec3{X: -0.7, Y: 0.5},
				Radius:   0.5,
				Material: Material{Color: Color{R: 0.9, G: 0.2, B: 0.2}},
			},
			{
				Center: Vec3{X: 0.7, Y: 0.5},
				Radius: 0.5,
				Material: Material{
					Color:      Color{R: 0.9, G: 0.9, B: 0.9},
					Specular:   Color{R: 1, G: 1, B: 1},
					Smoothness: 0.95,
				},
			},
			{
				Center: Vec3{X: 20, Y: 30, Z: -20},
				Radius: 15,
				Material: Material{
					Emission: Color{R: 1, G: 0.95, B: 0.8},
					Power:    4,
				},
			},
		},
	}
}
