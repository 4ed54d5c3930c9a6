package rt

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/shader"
)

// Field names below are an external contract with the shader source and
// must match it character for character.

// SendUniform uploads the settings to the uniform struct called name in
// prog: <name>.maxBounces, <name>.raysPerFrag, <name>.divergeStrength.
// The previously bound program is restored before returning.
func (s Settings) SendUniform(ctx *shader.Context, prog *shader.Program, name string) {
	ctx.Send(prog, func() {
		gl.Uniform1ui(ctx.Location(prog, name+".maxBounces"), s.MaxBounces)
		gl.Uniform1ui(ctx.Location(prog, name+".raysPerFrag"), s.RaysPerFrag)
		gl.Uniform1f(ctx.Location(prog, name+".divergeStrength"), s.DivergeStrength)
	})
}

// SendUniform uploads the camera to the uniform struct called name in
// prog. The previously bound program is restored before returning.
func (c Camera) SendUniform(ctx *shader.Context, prog *shader.Program, name string) {
	ctx.Send(prog, func() {
		gl.Uniform2f(ctx.Location(prog, name+".screenSize"), c.ScreenSize.X(), c.ScreenSize.Y())
		gl.Uniform1f(ctx.Location(prog, name+".fov"), c.FOV)
		gl.Uniform1f(ctx.Location(prog, name+".focusDistance"), c.FocusDistance)
		gl.Uniform3f(ctx.Location(prog, name+".pos"), c.Pos.X(), c.Pos.Y(), c.Pos.Z())
		m := c.LocalToWorld
		gl.UniformMatrix4fv(ctx.Location(prog, name+".localToWorld"), 1, false, &m[0])
	})
}

// SendUniform uploads the material to the uniform struct called name in
// prog. Spheres normally travel through the packed buffer path instead,
// but a lone material uniform is handy for debug views.
func (m Material) SendUniform(ctx *shader.Context, prog *shader.Program, name string) {
	ctx.Send(prog, func() {
		gl.Uniform4f(ctx.Location(prog, name+".color"), m.Color.X(), m.Color.Y(), m.Color.Z(), m.Color.W())
		gl.Uniform4f(ctx.Location(prog, name+".emissionColor"), m.EmissionColor.X(), m.EmissionColor.Y(), m.EmissionColor.Z(), m.EmissionColor.W())
		gl.Uniform4f(ctx.Location(prog, name+".specularColor"), m.SpecularColor.X(), m.SpecularColor.Y(), m.SpecularColor.Z(), m.SpecularColor.W())
		gl.Uniform1f(ctx.Location(prog, name+".smoothness"), m.Smoothness)
	})
}
