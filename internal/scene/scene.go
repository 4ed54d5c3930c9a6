// Package scene defines the JSON scene format: a camera, raytracing
// settings and a list of spheres with materials.
package scene

// Vec3 represents a simple 3D vector or point.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Color is an RGB color in linear space.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Camera describes the viewpoint for the raytracer.
type Camera struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	Up       Vec3    `json:"up"`
	FOV      float64 `json:"fov"`

	FocusDist float64 `json:"focus_dist"` // 0 = focus at target
}

// Material describes surface properties of a sphere.
type Material struct {
	Color    Color `json:"color"`
	Emission Color `json:"emission"` // emissive color
	Specular Color `json:"specular"` // specular reflection tint

	Power      float64 `json:"power"`      // emissive intensity multiplier
	Smoothness float64 `json:"smoothness"` // 0.0 = matte, 1.0 = perfect mirror
}

// Sphere is a single object in the scene.
type Sphere struct {
	Center   Vec3     `json:"center"`
	Radius   float64  `json:"radius"` // 0 = default radius 1
	Material Material `json:"material"`
}

// Settings are the raytracing parameters stored with the scene. Zero
// values fall back to defaults at conversion time.
type Settings struct {
	MaxBounces      int     `json:"max_bounces"`
	RaysPerFrag     int     `json:"rays_per_frag"`
	DivergeStrength float64 `json:"diverge_strength"`
}

// Scene is the root of a scene file.
type Scene struct {
	Name     string   `json:"name"`
	Camera   Camera   `json:"camera"`
	Settings Settings `json:"settings"`
	Spheres  []Sphere `json:"spheres"`
}
