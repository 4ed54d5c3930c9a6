package rt

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// NewCamera builds a camera looking from pos towards target. FOV is the
// vertical field of view in degrees. focusDist places the focal plane;
// zero means "at the target". The local-to-world transform is the
// inverse of the view matrix, taking camera-space ray directions into
// world space inside the shader.
func NewCamera(pos, target, up mgl32.Vec3, fov, focusDist float32, width, height int) Camera {
	if focusDist == 0 {
		focusDist = target.Sub(pos).Len()
	}

	view := mgl32.LookAtV(pos, target, up)
	return Camera{
		ScreenSize:    mgl32.Vec2{float32(width), float32(height)},
		FOV:           fov,
		FocusDistance: focusDist,
		Pos:           pos,
		LocalToWorld:  view.Inv(),
	}
}

// ViewPlane returns the world-space dimensions of the focal plane, the
// same quantity the shader derives from fov and focusDistance. Useful
// for tests and debug overlays.
func (c Camera) ViewPlane() (width, height float32) {
	height = 2 * c.FocusDistance * math32.Tan(mgl32.DegToRad(c.FOV)/2)
	aspect := c.ScreenSize.X() / c.ScreenSize.Y()
	return height * aspect, height
}
