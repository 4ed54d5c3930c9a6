package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/rt"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/scene"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/shader"
)

func TestRenderRejectsTooManySpheres(t *testing.T) {
	sc := &scene.Scene{Spheres: make([]scene.Sphere, MaxSpheres+1)}
	err := Render(sc, Config{Width: 8, Height: 8}, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil)
	assert.ErrorContains(t, err, "shader limit")
}

// End-to-end smoke test against a real driver: build the program,
// render a couple of passes, check the image is not black and that the
// uniform sends restored the previous program binding.
func TestRenderSmoke(t *testing.T) {
	t.Skip("Need OpenGL context on CI")

	sc := scene.Default()
	cfg := Config{
		Width:  64,
		Height: 48,
		Passes: 2,
		Settings: rt.Settings{
			MaxBounces:      4,
			RaysPerFrag:     2,
			DivergeStrength: 0.001,
		},
	}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	passes := 0
	require.NoError(t, Render(sc, cfg, img, func(pass int) { passes = pass }))
	assert.Equal(t, cfg.Passes, passes)

	lit := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 || img.Pix[i+1] > 0 || img.Pix[i+2] > 0 {
			lit = true
			break
		}
	}
	assert.True(t, lit, "rendered image is completely black")
}

// Bind-state restoration: after SendUniform, the previously current
// program must be current again. Needs a GL context.
func TestSendUniformRestoresBinding(t *testing.T) {
	t.Skip("Need OpenGL context on CI")

	ctx := shader.NewContext()
	progA, err := shader.NewBuilder().
		Compile(defaultVertSrc, shader.Vertex).
		Compile(defaultFragSrc, shader.Fragment).
		Link()
	require.NoError(t, err)
	progB, err := shader.NewBuilder().
		Compile(defaultVertSrc, shader.Vertex).
		Compile(defaultFragSrc, shader.Fragment).
		Link()
	require.NoError(t, err)

	progA.Activate()
	rt.Settings{MaxBounces: 1, RaysPerFrag: 1}.SendUniform(ctx, progB, uniformSettings)
	assert.Equal(t, progA.ID(), ctx.CurrentProgram())
}
