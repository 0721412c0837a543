// Package editor holds the viewer's interactive state: which shapes are
// selected and the parameter edits bound to keys. It has no rendering
// dependencies.
package editor

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/internal/engine/picking"
	"github.com/Faultbox/controlshape/internal/proxy"
	"github.com/Faultbox/controlshape/internal/scene"
	"github.com/Faultbox/controlshape/pkg/geom"
)

// Editor edits the shapes of one scene.
type Editor struct {
	entries []*scene.Entry
	step    float64
	log     *zap.Logger

	// Face cursor per entry for CycleFaces; -1 is the whole mesh.
	faceCursor map[*scene.Entry]int
}

// New returns an editor over entries. step is the offset change per nudge.
func New(entries []*scene.Entry, step float64, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		entries:    entries,
		step:       step,
		log:        log,
		faceCursor: make(map[*scene.Entry]int),
	}
}

// Entries returns every shape in the scene.
func (e *Editor) Entries() []*scene.Entry {
	return e.entries
}

// Selected returns the selected entries in scene order.
func (e *Editor) Selected() []*scene.Entry {
	var out []*scene.Entry
	for _, en := range e.entries {
		if en.Host.Selected {
			out = append(out, en)
		}
	}
	return out
}

// Select replaces the selection with entry i, or toggles it when toggle
// is set. i < 0 clears the selection unless toggling.
func (e *Editor) Select(i int, toggle bool) {
	if i < 0 || i >= len(e.entries) {
		if !toggle {
			e.ClearSelection()
		}
		return
	}
	target := e.entries[i]
	if toggle {
		target.Host.Selected = !target.Host.Selected
	} else {
		for _, en := range e.entries {
			en.Host.Selected = en == target
		}
	}
	e.log.Debug("selection changed",
		zap.String("shape", target.Shape.Name()),
		zap.Bool("selected", target.Host.Selected))
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() {
	for _, en := range e.entries {
		en.Host.Selected = false
	}
}

// PickAt returns the index of the nearest shape hit by a world-space ray,
// or -1. Hidden shapes, shapes outside the mesh selection mask and shapes
// whose bounds cannot be computed are not pickable.
func (e *Editor) PickAt(r picking.Ray) int {
	targets := make([]picking.Target, len(e.entries))
	for i, en := range e.entries {
		b, err := en.Shape.BoundingBox(en.Host)
		if err != nil || !en.Shape.Visible() || !en.Shape.SelectionMask().Has(proxy.SelectMeshes) {
			targets[i] = picking.Target{Bounds: geom.Empty(), World: mgl64.Ident4()}
			continue
		}
		targets[i] = picking.Target{Bounds: b, World: en.Host.World}
	}
	i, _ := picking.Pick(r, targets)
	return i
}

// editTargets is the selection, or every shape when nothing is selected.
func (e *Editor) editTargets() []*scene.Entry {
	if sel := e.Selected(); len(sel) > 0 {
		return sel
	}
	return e.entries
}

// NudgeOffset moves the offset of the edit targets by sign steps.
func (e *Editor) NudgeOffset(sign int) {
	delta := float64(sign) * e.step
	for _, en := range e.editTargets() {
		offset := en.Shape.Params().Offset + delta
		en.Shape.Update(func(s *proxy.Shape) { s.SetOffset(offset) })
		e.log.Info("offset changed",
			zap.String("shape", en.Shape.Name()),
			zap.Float64("offset", offset))
	}
}

// ToggleWorldSpace flips mesh-in-world-space on the edit targets.
func (e *Editor) ToggleWorldSpace() {
	for _, en := range e.editTargets() {
		on := !en.Shape.Params().MeshInWorldSpace
		en.Shape.SetMeshInWorldSpace(on)
		e.log.Info("world space toggled",
			zap.String("shape", en.Shape.Name()),
			zap.Bool("world_space", on))
	}
}

// CycleFaces steps the selected shapes through single-face subsets and
// back to the whole mesh.
func (e *Editor) CycleFaces() {
	for _, en := range e.Selected() {
		if en.Mesh == nil || en.Mesh.NumFaces() == 0 {
			continue
		}
		cur, ok := e.faceCursor[en]
		if !ok {
			cur = -1
		}
		cur++
		if cur >= en.Mesh.NumFaces() {
			cur = -1
		}
		e.faceCursor[en] = cur

		var faces []int
		if cur >= 0 {
			faces = []int{cur}
		}
		en.Shape.SetFaces(faces)
		e.log.Info("faces changed",
			zap.String("shape", en.Shape.Name()),
			zap.Ints("faces", faces))
	}
}

// Bounds returns the world-space union of every visible shape's bounds.
func (e *Editor) Bounds() geom.Bounds {
	out := geom.Empty()
	for _, en := range e.entries {
		if !en.Shape.Visible() {
			continue
		}
		b, err := en.Shape.BoundingBox(en.Host)
		if err != nil {
			continue
		}
		out = out.Union(b.Transform(en.Host.World))
	}
	return out
}

// Capture copies every shape's parameters back into the scene specs.
func (e *Editor) Capture() {
	for _, en := range e.entries {
		en.Capture()
	}
}
