package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Context is an explicit handle to the process-wide "current program"
// bind state of the GL context. Uniform uploads go through Send so that
// the previous binding is always restored, instead of mutating the
// global state behind the caller's back.
//
// Uniform names that do not exist in the program resolve to location -1
// and are silently ignored by the driver. This matches the underlying
// API and is intentionally not promoted to a warning here.
type Context struct {
	// locations кэшируются по (program, name), чтобы не дёргать
	// GetUniformLocation на каждый кадр.
	locations map[uniformKey]int32
}

type uniformKey struct {
	pid  uint32
	name string
}

// NewContext returns a Context with an empty uniform-location cache.
func NewContext() *Context {
	return &Context{locations: make(map[uniformKey]int32)}
}

// CurrentProgram returns the GL name of the currently bound program.
func (c *Context) CurrentProgram() uint32 {
	var pid int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &pid)
	return uint32(pid)
}

// Send activates p, runs fn, and restores the previously bound program
// regardless of what fn does. Uniform-location queries and writes apply
// to the currently bound program, so fn may freely call Uniform* for p.
func (c *Context) Send(p *Program, fn func()) {
	prev := c.CurrentProgram()
	p.Activate()
	defer gl.UseProgram(prev)
	fn()
}

// Location returns the uniform location for name in p, caching the
// result. A missing uniform yields -1, a no-op for all Uniform* calls.
func (c *Context) Location(p *Program, name string) int32 {
	key := uniformKey{pid: p.id, name: name}
	if loc, ok := c.locations[key]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	c.locations[key] = loc
	return loc
}

// Forget drops all cached locations for p. Call it when a program is
// deleted or relinked.
func (c *Context) Forget(p *Program) {
	for key := range c.locations {
		if key.pid == p.id {
			delete(c.locations, key)
		}
	}
}
