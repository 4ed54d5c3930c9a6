package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/rt"
)

// Defaults applied during conversion when the scene file leaves a
// setting at zero.
const (
	DefaultMaxBounces      = 8
	DefaultRaysPerFrag     = 4
	DefaultDivergeStrength = 0.002
	DefaultFOV             = 60
)

func vec3(v Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// ConvertMaterial maps a scene material onto the GPU material struct.
// Emission is pre-multiplied by power and smoothness clamped to [0,1].
// A smooth material with no specular tint gets a white one, so that
// "smoothness": 0.9 alone behaves like a mirror instead of going black.
func ConvertMaterial(m Material) rt.Material {
	spec := m.Specular
	if m.Smoothness > 0 && spec == (Color{}) {
		spec = Color{R: 1, G: 1, B: 1}
	}
	return rt.Material{
		Color:         mgl32.Vec4{float32(m.Color.R), float32(m.Color.G), float32(m.Color.B), 1},
		EmissionColor: mgl32.Vec4{float32(m.Emission.R * m.Power), float32(m.Emission.G * m.Power), float32(m.Emission.B * m.Power), 1},
		SpecularColor: mgl32.Vec4{float32(spec.R), float32(spec.G), float32(spec.B), 1},
		Smoothness:    float32(clamp(m.Smoothness, 0, 1)),
	}
}

// ConvertSpheres maps scene spheres onto GPU spheres. A zero radius
// becomes the default radius of 1.
func ConvertSpheres(spheres []Sphere) []rt.Sphere {
	out := make([]rt.Sphere, len(spheres))
	for i, s := range spheres {
		radius := s.Radius
		if radius == 0 {
			radius = 1
		}
		out[i] = rt.Sphere{
			Center:   vec3(s.Center),
			Radius:   float32(radius),
			Material: ConvertMaterial(s.Material),
		}
	}
	return out
}

// ConvertCamera builds the GPU camera for the given output size.
func ConvertCamera(c Camera, width, height int) rt.Camera {
	fov := c.FOV
	if fov == 0 {
		fov = DefaultFOV
	}
	up := vec3(c.Up)
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	return rt.NewCamera(vec3(c.Position), vec3(c.Target), up, float32(fov), float32(c.FocusDist), width, height)
}

// ConvertSettings maps scene settings onto GPU settings, substituting
// defaults for zero values.
func ConvertSettings(s Settings) rt.Settings {
	out := rt.Settings{
		MaxBounces:      uint32(s.MaxBounces),
		RaysPerFrag:     uint32(s.RaysPerFrag),
		DivergeStrength: float32(s.DivergeStrength),
	}
	if s.MaxBounces <= 0 {
		out.MaxBounces = DefaultMaxBounces
	}
	if s.RaysPerFrag <= 0 {
		out.RaysPerFrag = DefaultRaysPerFrag
	}
	if s.DivergeStrength <= 0 {
		out.DivergeStrength = DefaultDivergeStrength
	}
	return out
}

func clamp(x, minVal, maxVal float64) float64 {
	if x < minVal {
		return minVal
	}
	if x > maxVal {
		return maxVal
	}
	return x
}
