package proxy

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/controlshape/pkg/mesh"
)

// Default parameter values.
const (
	DefaultOffset           = 0.1
	DefaultOpacity          = 0.15
	DefaultSelectionOpacity = 0.2
)

// DefaultColor is yellow.
var DefaultColor = RGB(1, 1, 0)

// Params is the full parameter set of a control shape.
type Params struct {
	Mesh             mesh.Reference
	Faces            []int
	MeshMatrix       mgl64.Mat4
	Offset           float64
	Local            LocalTransform
	Color            Color
	Opacity          float32
	SelectionOpacity float32
	MeshInWorldSpace bool
}

// DefaultParams returns the parameters of a freshly created shape.
func DefaultParams() Params {
	return Params{
		MeshMatrix:       mgl64.Ident4(),
		Offset:           DefaultOffset,
		Local:            IdentityTransform(),
		Color:            DefaultColor,
		Opacity:          DefaultOpacity,
		SelectionOpacity: DefaultSelectionOpacity,
	}
}

// Input snapshots the parameters for Derive. world is only read in
// world space.
func (p Params) Input(world mgl64.Mat4) Input {
	return Input{
		Mesh:       p.Mesh,
		Faces:      p.Faces,
		Offset:     p.Offset,
		Local:      p.Local,
		Base:       p.MeshMatrix,
		World:      world,
		WorldSpace: p.MeshInWorldSpace,
	}
}

// Appearance returns the color state.
func (p Params) Appearance() Appearance {
	return Appearance{
		Color:            p.Color,
		Opacity:          p.Opacity,
		SelectionOpacity: p.SelectionOpacity,
	}
}

// clone returns a copy whose Faces slice is not shared.
func (p Params) clone() Params {
	p.Faces = slices.Clone(p.Faces)
	return p
}
