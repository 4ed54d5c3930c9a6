package rt

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32at(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func TestMaterialPackLayout(t *testing.T) {
	m := Material{
		Color:         mgl32.Vec4{1, 2, 3, 4},
		EmissionColor: mgl32.Vec4{5, 6, 7, 8},
		SpecularColor: mgl32.Vec4{9, 10, 11, 12},
		Smoothness:    0.5,
	}
	buf := m.Pack()
	require.Len(t, buf, MaterialSize)

	assert.Equal(t, float32(1), f32at(buf, 0))
	assert.Equal(t, float32(4), f32at(buf, 12))
	assert.Equal(t, float32(5), f32at(buf, 16))
	assert.Equal(t, float32(9), f32at(buf, 32))
	assert.Equal(t, float32(0.5), f32at(buf, 48))

	// Хвост структуры - выравнивание, всегда нули.
	for off := 52; off < 64; off += 4 {
		assert.Zero(t, f32at(buf, off), "padding at offset %d", off)
	}
}

func TestSpherePackLayout(t *testing.T) {
	s := Sphere{
		Center: mgl32.Vec3{-1, -2, -3},
		Radius: 2.5,
		Material: Material{
			Color:      mgl32.Vec4{0.1, 0.2, 0.3, 1},
			Smoothness: 1,
		},
	}
	buf := s.Pack()
	require.Len(t, buf, SphereSize)

	assert.Equal(t, float32(-1), f32at(buf, 0))
	assert.Equal(t, float32(-3), f32at(buf, 8))
	// radius lives in the vec3's padding slot
	assert.Equal(t, float32(2.5), f32at(buf, 12))
	// embedded material starts on the next 16-byte boundary
	assert.InDelta(t, 0.1, f32at(buf, 16), 1e-6)
	assert.Equal(t, float32(1), f32at(buf, 16+48))
}

func TestCameraPackLayout(t *testing.T) {
	c := Camera{
		ScreenSize:    mgl32.Vec2{1920, 1080},
		FOV:           60,
		FocusDistance: 3,
		Pos:           mgl32.Vec3{1, 2, 3},
		LocalToWorld:  mgl32.Ident4(),
	}
	buf := c.Pack()
	require.Len(t, buf, CameraSize)

	assert.Equal(t, float32(1920), f32at(buf, 0))
	assert.Equal(t, float32(1080), f32at(buf, 4))
	assert.Equal(t, float32(60), f32at(buf, 8))
	assert.Equal(t, float32(3), f32at(buf, 12))
	assert.Equal(t, float32(1), f32at(buf, 16))
	assert.Equal(t, float32(3), f32at(buf, 24))
	assert.Zero(t, f32at(buf, 28), "pos padding")
	// identity matrix, column-major: 1 at diagonal positions
	assert.Equal(t, float32(1), f32at(buf, 32))
	assert.Equal(t, float32(1), f32at(buf, 32+5*4))
	assert.Equal(t, float32(1), f32at(buf, 32+15*4))
}

func TestPackSpheresStride(t *testing.T) {
	spheres := []Sphere{
		{Center: mgl32.Vec3{0, 0, 0}, Radius: 1},
		{Center: mgl32.Vec3{9, 9, 9}, Radius: 7},
	}
	buf := PackSpheres(spheres)
	require.Len(t, buf, 2*SphereSize)

	assert.Equal(t, float32(1), f32at(buf, 12))
	assert.Equal(t, float32(9), f32at(buf, SphereSize))
	assert.Equal(t, float32(7), f32at(buf, SphereSize+12))
}

func TestPackRoundTrip(t *testing.T) {
	// Values survive packing bit-exactly (float32 is stored verbatim).
	m := Material{Color: mgl32.Vec4{0.123456, 0.654321, 1e-7, 1}, Smoothness: 0.999}
	buf := m.Pack()
	assert.Equal(t, m.Color.X(), f32at(buf, 0))
	assert.Equal(t, m.Color.Z(), f32at(buf, 8))
	assert.Equal(t, m.Smoothness, f32at(buf, 48))
}

func TestNewCamera(t *testing.T) {
	pos := mgl32.Vec3{0, 1, 5}
	target := mgl32.Vec3{0, 1, 0}
	c := NewCamera(pos, target, mgl32.Vec3{0, 1, 0}, 45, 0, 800, 600)

	assert.Equal(t, mgl32.Vec2{800, 600}, c.ScreenSize)
	// Дефолтная фокусная дистанция - расстояние до цели.
	assert.InDelta(t, 5, c.FocusDistance, 1e-5)

	// localToWorld maps the camera-space origin back to the camera position.
	origin := c.LocalToWorld.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, pos.X(), origin.X(), 1e-5)
	assert.InDelta(t, pos.Y(), origin.Y(), 1e-5)
	assert.InDelta(t, pos.Z(), origin.Z(), 1e-5)
}

func TestViewPlane(t *testing.T) {
	c := Camera{
		ScreenSize:    mgl32.Vec2{200, 100},
		FOV:           90,
		FocusDistance: 1,
	}
	w, h := c.ViewPlane()
	// tan(45deg) = 1, so the plane is 2 units tall at distance 1.
	assert.InDelta(t, 2, h, 1e-5)
	assert.InDelta(t, 4, w, 1e-5)
}

func TestNewSphereDefaults(t *testing.T) {
	s := NewSphere()
	assert.Equal(t, float32(1), s.Radius)
	assert.Equal(t, NewMaterial(), s.Material)
}
