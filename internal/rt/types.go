// Package rt holds the CPU-side mirror of the raytracing shader's
// uniform data: render settings, materials, spheres and the camera.
// The values are constructed by the caller and pushed wholesale, either
// field-by-field to named uniforms or packed to std140 buffers.
package rt

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Settings are the scalar knobs of the raytracer.
type Settings struct {
	// MaxBounces is the maximum number of times a ray may scatter
	// before it is terminated.
	MaxBounces uint32
	// RaysPerFrag is the number of rays traced per fragment per pass.
	RaysPerFrag uint32
	// DivergeStrength jitters ray directions for anti-aliasing and
	// soft depth of field.
	DivergeStrength float32
}

// Material describes a raytraced surface. The shader-side struct it
// maps to keeps each color as a vec4.
type Material struct {
	Color         mgl32.Vec4
	EmissionColor mgl32.Vec4
	SpecularColor mgl32.Vec4
	// Smoothness blends between diffuse (0) and mirror (1) scattering.
	Smoothness float32
}

// Sphere is a raytraced sphere with its material embedded, matching
// the shader-side RTSphere struct.
type Sphere struct {
	Center   mgl32.Vec3
	Radius   float32
	Material Material
}

// Camera describes the viewpoint as the shader consumes it: screen
// geometry plus a local-to-world transform for ray generation.
type Camera struct {
	ScreenSize    mgl32.Vec2
	FOV           float32
	FocusDistance float32
	Pos           mgl32.Vec3
	LocalToWorld  mgl32.Mat4
}

// NewMaterial returns a blank material (all colors zero, smoothness 0).
func NewMaterial() Material {
	return Material{}
}

// NewSphere returns a unit sphere at the origin with a blank material.
func NewSphere() Sphere {
	return Sphere{Radius: 1}
}
