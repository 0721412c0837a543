package proxy

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DrawAPI is a bit set of rendering backends.
type DrawAPI uint32

// Draw APIs.
const (
	DrawAPIOpenGL DrawAPI = 1 << iota
	DrawAPIDirectX11
	DrawAPIOpenGLCoreProfile
)

// Primitive is the topology of a submitted point list.
type Primitive int

// Primitives.
const (
	PrimTriangles Primitive = iota
	PrimLines
)

// DrawManager receives immediate-mode drawables from a draw override.
type DrawManager interface {
	BeginDrawable()
	SetColor(c Color)
	Mesh(prim Primitive, points []mgl64.Vec3)
	EndDrawable()
}

// DrawOverride prepares the per-frame draw data of one shape.
type DrawOverride struct {
	shape *Shape
}

// NewDrawOverride binds an override to shape.
func NewDrawOverride(shape *Shape) *DrawOverride {
	return &DrawOverride{shape: shape}
}

// Shape returns the shape the override draws.
func (o *DrawOverride) Shape() *Shape { return o.shape }

// SupportedDrawAPIs lists the backends the override can feed.
func (o *DrawOverride) SupportedDrawAPIs() DrawAPI {
	return DrawAPIOpenGL | DrawAPIDirectX11 | DrawAPIOpenGLCoreProfile
}

// HasUIDrawables is true: the override draws through AddUIDrawables.
func (o *DrawOverride) HasUIDrawables() bool { return true }

// IsAlwaysDirty is false: the shape's tracker says when to redraw.
func (o *DrawOverride) IsAlwaysDirty() bool { return false }

// Transform returns the matrix the host applies to the drawn points.
func (o *DrawOverride) Transform(host Host) (mgl64.Mat4, error) {
	m, err := host.WorldMatrix()
	if err != nil {
		return mgl64.Ident4(), fmt.Errorf("%w: world matrix: %w", ErrHostQuery, err)
	}
	return m, nil
}

// PrepareForDraw refreshes old, or allocates new data when old is nil.
// On error old is returned unchanged and the host should skip the shape
// for this frame.
func (o *DrawOverride) PrepareForDraw(host Host, old *DrawData) (*DrawData, error) {
	selected, err := host.IsSelected()
	if err != nil {
		return old, fmt.Errorf("%w: selection: %w", ErrHostQuery, err)
	}

	var lead Color
	if selected {
		lead, err = host.LeadColor()
		if err != nil {
			return old, fmt.Errorf("%w: lead color: %w", ErrHostQuery, err)
		}
	}

	dd, err := o.shape.DrawData(host, selected, lead)
	if err != nil {
		return old, err
	}

	data := old
	if data == nil {
		data = &DrawData{}
	}
	*data = dd
	return data, nil
}

// AddUIDrawables submits the prepared triangles with their flat color.
func (o *DrawOverride) AddUIDrawables(dm DrawManager, data *DrawData) {
	if data == nil {
		return
	}
	dm.BeginDrawable()
	dm.SetColor(data.Color)
	dm.Mesh(PrimTriangles, data.Points)
	dm.EndDrawable()
}
