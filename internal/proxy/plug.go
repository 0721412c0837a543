package proxy

import "fmt"

// Plug identifies one parameter of a control shape.
type Plug int

// Plug values. Compound plugs (translate, rotate, scale) are followed by
// their X, Y and Z children.
const (
	PlugNone Plug = iota
	PlugMesh
	PlugMeshFaces
	PlugMeshMatrix
	PlugFacesOffset
	PlugLocalTranslate
	PlugLocalTranslateX
	PlugLocalTranslateY
	PlugLocalTranslateZ
	PlugLocalRotate
	PlugLocalRotateX
	PlugLocalRotateY
	PlugLocalRotateZ
	PlugLocalScale
	PlugLocalScaleX
	PlugLocalScaleY
	PlugLocalScaleZ
	PlugColor
	PlugOpacity
	PlugSelectionOpacity
	PlugMeshInWorldSpace
	PlugHideOnPlayback
	PlugVisibility
	plugCount
)

var plugNames = [plugCount]string{
	PlugNone:             "",
	PlugMesh:             "mesh",
	PlugMeshFaces:        "meshFaces",
	PlugMeshMatrix:       "meshMatrix",
	PlugFacesOffset:      "facesOffset",
	PlugLocalTranslate:   "localTranslate",
	PlugLocalTranslateX:  "localTranslateX",
	PlugLocalTranslateY:  "localTranslateY",
	PlugLocalTranslateZ:  "localTranslateZ",
	PlugLocalRotate:      "localRotate",
	PlugLocalRotateX:     "localRotateX",
	PlugLocalRotateY:     "localRotateY",
	PlugLocalRotateZ:     "localRotateZ",
	PlugLocalScale:       "localScale",
	PlugLocalScaleX:      "localScaleX",
	PlugLocalScaleY:      "localScaleY",
	PlugLocalScaleZ:      "localScaleZ",
	PlugColor:            "color",
	PlugOpacity:          "opacity",
	PlugSelectionOpacity: "selectionOpacity",
	PlugMeshInWorldSpace: "meshInWorldSpace",
	PlugHideOnPlayback:   "hideOnPlayback",
	PlugVisibility:       "visibility",
}

// String returns the attribute name.
func (p Plug) String() string {
	if p < 0 || p >= plugCount {
		return fmt.Sprintf("Plug(%d)", int(p))
	}
	return plugNames[p]
}

// ParsePlug looks a plug up by attribute name.
func ParsePlug(name string) (Plug, bool) {
	for p := PlugMesh; p < plugCount; p++ {
		if plugNames[p] == name {
			return p, true
		}
	}
	return PlugNone, false
}

// Plugs returns every plug in declaration order.
func Plugs() []Plug {
	out := make([]Plug, 0, plugCount-1)
	for p := PlugMesh; p < plugCount; p++ {
		out = append(out, p)
	}
	return out
}

// Parent returns the compound plug a child belongs to, or PlugNone.
func (p Plug) Parent() Plug {
	switch p {
	case PlugLocalTranslateX, PlugLocalTranslateY, PlugLocalTranslateZ:
		return PlugLocalTranslate
	case PlugLocalRotateX, PlugLocalRotateY, PlugLocalRotateZ:
		return PlugLocalRotate
	case PlugLocalScaleX, PlugLocalScaleY, PlugLocalScaleZ:
		return PlugLocalScale
	default:
		return PlugNone
	}
}

// AffectsDraw reports whether a change to p invalidates draw data.
// Children count through their compound parent.
func (p Plug) AffectsDraw() bool {
	if parent := p.Parent(); parent != PlugNone {
		p = parent
	}
	switch p {
	case PlugMesh,
		PlugMeshFaces,
		PlugMeshMatrix,
		PlugLocalTranslate,
		PlugLocalRotate,
		PlugLocalScale,
		PlugColor,
		PlugOpacity,
		PlugSelectionOpacity,
		PlugMeshInWorldSpace,
		PlugFacesOffset:
		return true
	default:
		return false
	}
}

// Axis selects a component of a compound plug.
type Axis int

// Axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) valid() bool { return a >= AxisX && a <= AxisZ }

// child returns the X/Y/Z child of a compound plug.
func (p Plug) child(a Axis) Plug {
	return p + 1 + Plug(a)
}
