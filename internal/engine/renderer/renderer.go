// Package renderer draws control shape geometry with OpenGL. It is the
// draw manager of the preview viewer: shapes hand it flat-colored
// triangle lists and line lists.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/internal/engine/shader"
	"github.com/Faultbox/controlshape/internal/logger"
	"github.com/Faultbox/controlshape/internal/proxy"
)

const vertexShader = `#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const fragmentShader = `#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// Stats counts submitted work for the current frame.
type Stats struct {
	Drawables int
	Triangles int
	Lines     int
}

// Renderer handles all OpenGL rendering. It implements proxy.DrawManager.
type Renderer struct {
	config Config
	prog   *shader.Program

	// One streaming buffer for every draw.
	vao uint32
	vbo uint32
	buf []float32

	viewProj mgl32.Mat4
	model    mgl32.Mat4
	color    proxy.Color

	stats Stats
}

var _ proxy.DrawManager = (*Renderer)(nil)

// New creates a renderer. The OpenGL context must already exist.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		model:  mgl32.Ident4(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)

	var err error
	r.prog, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("renderer created",
		zap.Uint32("program", r.prog.ID),
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.prog != nil {
		r.prog.Delete()
	}
}

// Resize sets the viewport to the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame and sets the camera.
func (r *Renderer) Begin(viewProj mgl32.Mat4) {
	r.viewProj = viewProj
	r.stats = Stats{}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.prog.Use()
}

// End finishes the frame and returns its stats.
func (r *Renderer) End() Stats {
	gl.DepthMask(true)
	return r.stats
}

// SetModel sets the object-to-world matrix for following draws.
func (r *Renderer) SetModel(m mgl64.Mat4) {
	r.model = ToMat32(m)
}

// BeginDrawable starts a translucent drawable. Depth writes stay off so
// overlapping shells blend instead of occluding each other.
func (r *Renderer) BeginDrawable() {
	r.stats.Drawables++
	gl.DepthMask(false)
}

// SetColor sets the flat color for following primitives.
func (r *Renderer) SetColor(c proxy.Color) {
	r.color = c
}

// Mesh draws points as triangles or line segments in the current color.
func (r *Renderer) Mesh(prim proxy.Primitive, points []mgl64.Vec3) {
	if len(points) == 0 {
		return
	}
	r.buf = Flatten(r.buf[:0], points)
	mode := uint32(gl.TRIANGLES)
	if prim == proxy.PrimLines {
		mode = gl.LINES
		r.stats.Lines += len(points) / 2
	} else {
		r.stats.Triangles += len(points) / 3
	}
	r.draw(mode, r.buf, len(points))
}

// EndDrawable closes the drawable and restores depth writes.
func (r *Renderer) EndDrawable() {
	gl.DepthMask(true)
}

// Lines draws an xyz float list as line segments, opaque and depth tested.
func (r *Renderer) Lines(verts []float32, color proxy.Color) {
	if len(verts) == 0 {
		return
	}
	r.color = color
	r.stats.Lines += len(verts) / 6
	r.draw(gl.LINES, verts, len(verts)/3)
}

func (r *Renderer) draw(mode uint32, verts []float32, count int) {
	r.prog.SetMat4("uMVP", r.viewProj.Mul4(r.model))
	r.prog.SetVec4("uColor", r.color.Array())

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(count))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Flatten appends points to dst as packed xyz float32 values.
func Flatten(dst []float32, points []mgl64.Vec3) []float32 {
	for _, p := range points {
		dst = append(dst, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	return dst
}

// ToMat32 narrows a matrix to float32 for upload.
func ToMat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
