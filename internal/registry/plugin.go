package registry

import "github.com/Faultbox/controlshape/internal/proxy"

// Control shape identifiers.
const (
	ControlShapeName   = "controlShape"
	DrawClassification = "drawdb/geometry/controlShape"
	DrawRegistrantID   = "controlShapePlugin"
)

// ControlShapeID is the node type id reserved for the control shape.
const ControlShapeID TypeID = 1274448

// ControlShapeType is the registrable control shape.
var ControlShapeType = ShapeType{
	Name:           ControlShapeName,
	ID:             ControlShapeID,
	Classification: DrawClassification,
	Create:         proxy.NewShape,
}

// Initialize registers the control shape and its draw override. Calling
// it twice is harmless.
func Initialize(r *Registry) error {
	if err := r.RegisterShape(ControlShapeType); err != nil {
		return err
	}
	if err := r.RegisterDrawOverride(DrawClassification, DrawRegistrantID, proxy.NewDrawOverride); err != nil {
		r.DeregisterShape(ControlShapeID)
		return err
	}
	return nil
}

// Uninitialize removes what Initialize added, override first.
func Uninitialize(r *Registry) {
	r.DeregisterDrawOverride(DrawClassification, DrawRegistrantID)
	r.DeregisterShape(ControlShapeID)
}
