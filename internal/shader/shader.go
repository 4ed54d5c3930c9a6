// Package shader builds OpenGL shader programs: individual stages are
// compiled and accumulated by a Builder, then linked into an immutable
// Program. All functions must be called from the thread that owns the
// GL context.
package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Type identifies a shader stage.
type Type uint32

const (
	Vertex   Type = gl.VERTEX_SHADER
	Fragment Type = gl.FRAGMENT_SHADER
)

// String returns a human-readable stage name for error messages.
func (t Type) String() string {
	switch t {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("shader(0x%x)", uint32(t))
	}
}

// TypeFromPath derives the stage type from a file extension:
// .vert is a vertex shader, .frag a fragment shader. Any other
// extension is an error, reported before the file is ever opened.
func TypeFromPath(path string) (Type, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "vert":
		return Vertex, nil
	case "frag":
		return Fragment, nil
	case "":
		return 0, fmt.Errorf("shader %q has no extension", path)
	default:
		return 0, fmt.Errorf("shader %q: unrecognized extension %q (want vert or frag)", path, ext)
	}
}

// Program is a linked, executable GPU program. It is immutable: the
// only operations are binding it as the current program and freeing it.
type Program struct {
	id uint32
}

// ID returns the raw GL name of the program.
func (p *Program) ID() uint32 { return p.id }

// Activate binds the program as the current GPU program.
func (p *Program) Activate() {
	gl.UseProgram(p.id)
}

// Delete frees the underlying GL object. The program must not be used
// afterwards.
func (p *Program) Delete() {
	gl.DeleteProgram(p.id)
	p.id = 0
}

// Builder accumulates compiled shader stages and links them into a
// Program. Compile and AttachFile chain; the first error is sticky and
// surfaces from Err and Link. Link consumes the builder.
type Builder struct {
	pid    uint32
	stages []uint32
	linked bool
	err    error
}

// NewBuilder allocates a fresh program handle with no attached stages.
func NewBuilder() *Builder {
	return &Builder{pid: gl.CreateProgram()}
}

// Err returns the first error recorded by a chained call, if any.
func (b *Builder) Err() error { return b.err }

// Compile compiles src as a stage of the given type and adds it to the
// builder. A compilation failure records an error containing the full
// driver info log.
func (b *Builder) Compile(src string, typ Type) *Builder {
	if b.err != nil {
		return b
	}
	if b.linked {
		b.err = fmt.Errorf("shader: builder already linked")
		return b
	}

	stage := gl.CreateShader(uint32(typ))
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(stage, 1, csources, nil)
	free()
	gl.CompileShader(stage)

	var status int32
	gl.GetShaderiv(stage, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderInfoLog(stage)
		gl.DeleteShader(stage)
		b.err = fmt.Errorf("compile %s shader: %s", typ, log)
		return b
	}

	b.stages = append(b.stages, stage)
	return b
}

// AttachFile reads a shader source file and compiles it, deriving the
// stage type from the file extension. The extension is validated before
// the file is read or any GL object is created.
func (b *Builder) AttachFile(path string) *Builder {
	if b.err != nil {
		return b
	}

	typ, err := TypeFromPath(path)
	if err != nil {
		b.err = err
		return b
	}

	src, err := os.ReadFile(path)
	if err != nil {
		b.err = fmt.Errorf("read shader: %w", err)
		return b
	}

	return b.Compile(string(src), typ)
}

// Link attaches every accumulated stage, links the program and returns
// it. The stage objects are deleted afterwards: once linked they belong
// to the program and are no longer needed on their own. The builder is
// consumed and cannot be reused.
func (b *Builder) Link() (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.linked {
		return nil, fmt.Errorf("shader: builder already linked")
	}
	b.linked = true
	if len(b.stages) == 0 {
		return nil, fmt.Errorf("shader: no stages to link")
	}

	for _, stage := range b.stages {
		gl.AttachShader(b.pid, stage)
	}
	gl.LinkProgram(b.pid)

	var status int32
	gl.GetProgramiv(b.pid, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		err := fmt.Errorf("link program: %s", programInfoLog(b.pid))
		for _, stage := range b.stages {
			gl.DeleteShader(stage)
		}
		gl.DeleteProgram(b.pid)
		return nil, err
	}

	for _, stage := range b.stages {
		gl.DeleteShader(stage)
	}
	b.stages = nil

	return &Program{id: b.pid}, nil
}

// shaderInfoLog reads the full info log of a shader object. The buffer
// is sized from INFO_LOG_LENGTH so long diagnostics are not truncated.
func shaderInfoLog(stage uint32) string {
	var logLen int32
	gl.GetShaderiv(stage, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "(no info log)"
	}
	log := make([]byte, logLen+1)
	gl.GetShaderInfoLog(stage, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

// programInfoLog reads the full info log of a program object.
func programInfoLog(pid uint32) string {
	var logLen int32
	gl.GetProgramiv(pid, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "(no info log)"
	}
	log := make([]byte, logLen+1)
	gl.GetProgramInfoLog(pid, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}
