package rt

import (
	"encoding/binary"
	"math"
)

// std140 sizes in bytes. Vec3-bearing structs are padded to 16-byte
// boundaries per the GLSL interface-block packing rules, so these do
// not match the Go struct sizes.
const (
	// MaterialSize: three vec4 at 0/16/32, smoothness at 48, struct
	// rounded up to a 16-byte multiple.
	MaterialSize = 64
	// SphereSize: vec3 center at 0 with radius packed into its tail
	// slot at 12, then the material at 16.
	SphereSize = 16 + MaterialSize
	// CameraSize: vec2 screenSize at 0, fov at 8, focusDistance at 12,
	// vec3 pos at 16 (padded), mat4 localToWorld at 32.
	CameraSize = 96
)

func putf32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putVec4(buf []byte, off int, v [4]float32) {
	for i, f := range v {
		putf32(buf, off+i*4, f)
	}
}

// Pack serializes the material into its 64-byte std140 layout.
func (m Material) Pack() []byte {
	buf := make([]byte, MaterialSize)
	m.packInto(buf)
	return buf
}

func (m Material) packInto(buf []byte) {
	putVec4(buf, 0, m.Color)
	putVec4(buf, 16, m.EmissionColor)
	putVec4(buf, 32, m.SpecularColor)
	putf32(buf, 48, m.Smoothness)
	// 52..64 - выравнивающий хвост структуры, всегда нули.
}

// Pack serializes the sphere into its 80-byte std140 layout.
func (s Sphere) Pack() []byte {
	buf := make([]byte, SphereSize)
	s.packInto(buf)
	return buf
}

func (s Sphere) packInto(buf []byte) {
	putf32(buf, 0, s.Center.X())
	putf32(buf, 4, s.Center.Y())
	putf32(buf, 8, s.Center.Z())
	putf32(buf, 12, s.Radius)
	s.Material.packInto(buf[16:])
}

// Pack serializes the camera into its 96-byte std140 layout, for the
// buffer-backed uniform path. Column-major matrix order, same as GL.
func (c Camera) Pack() []byte {
	buf := make([]byte, CameraSize)
	putf32(buf, 0, c.ScreenSize.X())
	putf32(buf, 4, c.ScreenSize.Y())
	putf32(buf, 8, c.FOV)
	putf32(buf, 12, c.FocusDistance)
	putf32(buf, 16, c.Pos.X())
	putf32(buf, 20, c.Pos.Y())
	putf32(buf, 24, c.Pos.Z())
	// 28..32 padding
	for i, f := range c.LocalToWorld {
		putf32(buf, 32+i*4, f)
	}
	return buf
}

// PackSpheres serializes a slice of spheres into one contiguous std140
// array, ready for BufferData into a uniform block.
func PackSpheres(spheres []Sphere) []byte {
	buf := make([]byte, len(spheres)*SphereSize)
	for i, s := range spheres {
		s.packInto(buf[i*SphereSize:])
	}
	return buf
}
