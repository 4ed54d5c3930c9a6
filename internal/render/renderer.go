// Package render drives the GPU raytracer: it owns a hidden GLFW
// window with the GL context, builds the raytracing program and runs
// progressive accumulation passes over a fullscreen triangle.
package render

import (
	"fmt"
	"image"
	"log"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/rt"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/scene"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/shader"
)

// MaxSpheres is the size of the fixed std140 sphere array in the
// fragment shader. Must match MAX_SPHERES in rt.frag.
const MaxSpheres = 64

// Uniform instance names declared in rt.frag.
const (
	uniformSettings  = "settings"
	uniformCamera    = "camera"
	sphereBlockName  = "SpheresBlock"
	sphereBlockIndex = 1
)

// Config controls one render.
type Config struct {
	Width  int
	Height int
	// Passes is the number of accumulation passes; each pass traces
	// Settings.RaysPerFrag rays per pixel with a fresh seed.
	Passes   int
	Settings rt.Settings

	// Optional on-disk shader sources replacing the embedded defaults.
	VertPath string
	FragPath string
	// HotReload rebuilds the program between passes when the files
	// above change on disk.
	HotReload bool
}

// renderRequest is sent from callers to the dedicated GL worker goroutine.
type renderRequest struct {
	sc       *scene.Scene
	cfg      Config
	img      *image.RGBA
	progress func(pass int)
	done     chan error
}

// glRenderer owns the hidden GLFW window and all GL resources.
type glRenderer struct {
	initOnce sync.Once
	initErr  error
	window   *glfw.Window

	ctx  *shader.Context
	prog *shader.Program
	vao  uint32
	fbo  uint32
	tex  uint32
	ubo  uint32

	width  int
	height int

	watcher *shader.Watcher
	// accum хранит накопленный линейный цвет (R,G,B) для каждого
	// пикселя, уже в порядке строк изображения (сверху вниз).
	accum []float32
	seed  uint32
}

var (
	renderer   glRenderer
	renderCh   chan renderRequest
	workerOnce sync.Once
)

// Render renders sc into img and blocks until done. img must have the
// dimensions from cfg. progress (may be nil) is called after every
// pass, once img holds the tonemapped state of the accumulation so far.
// All GL work happens on a single dedicated OS thread.
func Render(sc *scene.Scene, cfg Config, img *image.RGBA, progress func(pass int)) error {
	if len(sc.Spheres) > MaxSpheres {
		return fmt.Errorf("render: scene has %d spheres, shader limit is %d", len(sc.Spheres), MaxSpheres)
	}
	ensureWorker()
	done := make(chan error, 1)
	renderCh <- renderRequest{sc: sc, cfg: cfg, img: img, progress: progress, done: done}
	return <-done
}

// ensureWorker starts the dedicated GL worker goroutine exactly once.
func ensureWorker() {
	workerOnce.Do(func() {
		renderCh = make(chan renderRequest)
		go renderWorker()
	})
}

// renderWorker owns the GL context and processes all render requests.
// It always runs on a single locked OS thread, which OpenGL requires.
func renderWorker() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	first, ok := <-renderCh
	if !ok {
		return
	}

	if err := renderer.initGL(first.cfg); err != nil {
		log.Printf("GL initialization failed: %v", err)
		first.done <- err
		for req := range renderCh {
			req.done <- err
		}
		return
	}

	first.done <- renderer.renderOnce(first.sc, first.cfg, first.img, first.progress)
	for req := range renderCh {
		req.done <- renderer.renderOnce(req.sc, req.cfg, req.img, req.progress)
	}
}

// initGL must be called from the GL worker goroutine (locked OS thread).
func (r *glRenderer) initGL(cfg Config) error {
	r.initOnce.Do(func() {
		if err := glfw.Init(); err != nil {
			r.initErr = fmt.Errorf("glfw init: %w", err)
			return
		}

		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

		w, err := glfw.CreateWindow(1, 1, "raytracer-hidden", nil, nil)
		if err != nil {
			r.initErr = fmt.Errorf("glfw create window: %w", err)
			return
		}
		r.window = w
		w.MakeContextCurrent()

		if err := gl.Init(); err != nil {
			r.initErr = fmt.Errorf("gl init: %w", err)
			return
		}

		r.ctx = shader.NewContext()

		if r.prog, err = buildProgram(cfg); err != nil {
			r.initErr = err
			return
		}

		// Пустой VAO обязателен в core profile даже для треугольника,
		// который целиком генерируется в вершинном шейдере.
		gl.GenVertexArrays(1, &r.vao)

		gl.GenFramebuffers(1, &r.fbo)
		gl.GenTextures(1, &r.tex)
		gl.GenBuffers(1, &r.ubo)

		// UBO всегда полного размера: std140-массив в шейдере фиксирован.
		gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
		gl.BufferData(gl.UNIFORM_BUFFER, MaxSpheres*rt.SphereSize, nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

		if cfg.HotReload && cfg.VertPath != "" && cfg.FragPath != "" {
			r.watcher, err = shader.NewWatcher(cfg.VertPath, cfg.FragPath)
			if err != nil {
				log.Printf("shader hot reload disabled: %v", err)
				r.watcher = nil
			}
		}
	})
	return r.initErr
}

// buildProgram compiles and links the raytracing program, either from
// the configured files or from the embedded defaults.
func buildProgram(cfg Config) (*shader.Program, error) {
	b := shader.NewBuilder()
	if cfg.VertPath != "" || cfg.FragPath != "" {
		if cfg.VertPath == "" || cfg.FragPath == "" {
			return nil, fmt.Errorf("render: -vert and -frag must be given together")
		}
		b.AttachFile(cfg.VertPath).AttachFile(cfg.FragPath)
	} else {
		b.Compile(defaultVertSrc, shader.Vertex).Compile(defaultFragSrc, shader.Fragment)
	}
	prog, err := b.Link()
	if err != nil {
		return nil, err
	}

	// Привязываем блок сфер к фиксированной точке.
	blockIndex := gl.GetUniformBlockIndex(prog.ID(), gl.Str(sphereBlockName+"\x00"))
	if blockIndex != gl.INVALID_INDEX {
		gl.UniformBlockBinding(prog.ID(), blockIndex, sphereBlockIndex)
	}
	return prog, nil
}

// maybeReload swaps in a freshly built program if a watched shader file
// changed. A broken edit keeps the previous program running and only
// logs the compile error, so the preview survives typos.
func (r *glRenderer) maybeReload(cfg Config) {
	if r.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path := <-r.watcher.Changed:
			log.Printf("shader changed: %s", path)
			changed = true
			continue
		case err := <-r.watcher.Errors:
			log.Printf("shader watcher: %v", err)
			continue
		default:
		}
		break
	}
	if !changed {
		return
	}

	prog, err := buildProgram(cfg)
	if err != nil {
		log.Printf("shader reload failed, keeping previous program: %v", err)
		return
	}
	r.ctx.Forget(r.prog)
	r.prog.Delete()
	r.prog = prog
	// Сбрасываем накопление: старые сэмплы больше не сопоставимы.
	for i := range r.accum {
		r.accum[i] = 0
	}
	r.seed = 0
}

// renderOnce executes all passes of one render request on the GL thread.
func (r *glRenderer) renderOnce(sc *scene.Scene, cfg Config, img *image.RGBA, progress func(pass int)) error {
	if img.Rect.Dx() != cfg.Width || img.Rect.Dy() != cfg.Height {
		return fmt.Errorf("render: image is %dx%d, config wants %dx%d",
			img.Rect.Dx(), img.Rect.Dy(), cfg.Width, cfg.Height)
	}
	if err := r.resize(cfg.Width, cfg.Height); err != nil {
		return err
	}

	pixelCount := cfg.Width * cfg.Height
	if len(r.accum) != pixelCount*3 {
		r.accum = make([]float32, pixelCount*3)
	} else {
		for i := range r.accum {
			r.accum[i] = 0
		}
	}
	r.seed = 0

	spheres := scene.ConvertSpheres(sc.Spheres)
	camera := scene.ConvertCamera(sc.Camera, cfg.Width, cfg.Height)

	r.uploadSpheres(spheres)

	passes := cfg.Passes
	if passes < 1 {
		passes = 1
	}
	tmp := make([]float32, pixelCount*3)

	for pass := 1; pass <= passes; pass++ {
		r.maybeReload(cfg)

		r.drawPass(camera, cfg.Settings, len(spheres))
		r.readback(tmp, cfg.Width, cfg.Height)
		for i, v := range tmp {
			r.accum[i] += v
		}

		writeRGBA(r.accum, pass, img)
		if progress != nil {
			progress(pass)
		}
	}
	return nil
}

// resize (re)allocates the render target texture when dimensions change.
func (r *glRenderer) resize(width, height int) error {
	if r.width == width && r.height == height {
		return nil
	}
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.tex, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("render target incomplete: 0x%x", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	r.width = width
	r.height = height
	return nil
}

func (r *glRenderer) uploadSpheres(spheres []rt.Sphere) {
	data := rt.PackSpheres(spheres)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	if len(data) > 0 {
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, sphereBlockIndex, r.ubo)
}

// drawPass renders one accumulation pass into the FBO.
func (r *glRenderer) drawPass(camera rt.Camera, settings rt.Settings, numSpheres int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))

	settings.SendUniform(r.ctx, r.prog, uniformSettings)
	camera.SendUniform(r.ctx, r.prog, uniformCamera)

	r.seed++
	r.ctx.Send(r.prog, func() {
		gl.Uniform1i(r.ctx.Location(r.prog, "numSpheres"), int32(numSpheres))
		gl.Uniform1ui(r.ctx.Location(r.prog, "frameSeed"), r.seed)
	})

	r.prog.Activate()
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// readback copies the FBO contents into dst (RGB float32 triplets),
// flipping rows from GL's bottom-up order to image order.
func (r *glRenderer) readback(dst []float32, width, height int) {
	row := make([]float32, width*3)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	for y := 0; y < height; y++ {
		gl.ReadPixels(0, int32(y), int32(width), 1, gl.RGB, gl.FLOAT, unsafe.Pointer(&row[0]))
		copy(dst[(height-1-y)*width*3:], row)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}
