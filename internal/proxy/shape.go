package proxy

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/pkg/geom"
	"github.com/Faultbox/controlshape/pkg/mesh"
)

// SelectionMask lists the pick categories a shape answers to.
type SelectionMask uint32

// Selection mask bits.
const (
	SelectMeshes SelectionMask = 1 << iota
	SelectJoints
)

// Has reports whether every bit of other is set in m.
func (m SelectionMask) Has(other SelectionMask) bool {
	return m&other == other
}

// Shape is one control shape instance. It owns its parameters, dirty
// tracker and draw cache.
type Shape struct {
	name           string
	params         Params
	hideOnPlayback bool
	visible        bool

	tracker *Tracker
	cache   *Cache
	log     *zap.Logger

	batch   []Plug
	inBatch bool
}

// Option configures a Shape.
type Option func(*shapeOptions)

type shapeOptions struct {
	name   string
	notify func()
	log    *zap.Logger
}

// WithName sets the instance name used in logs.
func WithName(name string) Option {
	return func(o *shapeOptions) { o.name = name }
}

// WithDrawDirtyNotifier registers a callback run whenever the shape's
// draw data becomes stale.
func WithDrawDirtyNotifier(fn func()) Option {
	return func(o *shapeOptions) { o.notify = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *shapeOptions) { o.log = l }
}

// NewShape creates a shape with default parameters and no mesh.
func NewShape(opts ...Option) *Shape {
	o := shapeOptions{name: "controlShape", log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With(zap.String("shape", o.name))

	return &Shape{
		name:           o.name,
		params:         DefaultParams(),
		hideOnPlayback: true,
		visible:        true,
		tracker:        NewTracker(o.notify, log),
		cache:          NewCache(log),
		log:            log,
	}
}

// Name returns the instance name.
func (s *Shape) Name() string { return s.name }

// Params returns a copy of the current parameters.
func (s *Shape) Params() Params { return s.params.clone() }

// Tracker exposes the dirty tracker for hosts that drive evaluation.
func (s *Shape) Tracker() *Tracker { return s.tracker }

// CacheStats returns the draw cache counters.
func (s *Shape) CacheStats() CacheStats { return s.cache.Stats() }

// IsBounded is always true; the shape reports exact bounds.
func (s *Shape) IsBounded() bool { return true }

// SelectionMask returns the pick categories: meshes and joints.
func (s *Shape) SelectionMask() SelectionMask { return SelectMeshes | SelectJoints }

// HideOnPlayback reports whether the shape is hidden during playback.
func (s *Shape) HideOnPlayback() bool { return s.hideOnPlayback }

// Visible reports the visibility flag.
func (s *Shape) Visible() bool { return s.visible }

// set applies fn and marks p dirty, either immediately or at the end of
// the open Update batch.
func (s *Shape) set(p Plug, fn func(*Params)) {
	fn(&s.params)
	if s.inBatch {
		s.batch = append(s.batch, p)
		return
	}
	s.tracker.SetDependentsDirty(p)
}

// SetMesh connects a reference mesh. Nil disconnects it.
func (s *Shape) SetMesh(m mesh.Reference) {
	s.set(PlugMesh, func(p *Params) { p.Mesh = m })
}

// SetFaces sets the face subset. The slice is copied.
func (s *Shape) SetFaces(faces []int) {
	faces = slices.Clone(faces)
	s.set(PlugMeshFaces, func(p *Params) { p.Faces = faces })
}

// SetMeshMatrix sets the mesh alignment matrix.
func (s *Shape) SetMeshMatrix(m mgl64.Mat4) {
	s.set(PlugMeshMatrix, func(p *Params) { p.MeshMatrix = m })
}

// SetOffset sets the normal offset distance.
func (s *Shape) SetOffset(v float64) {
	s.set(PlugFacesOffset, func(p *Params) { p.Offset = v })
}

// SetLocalTranslate sets the whole local translation.
func (s *Shape) SetLocalTranslate(v mgl64.Vec3) {
	s.set(PlugLocalTranslate, func(p *Params) { p.Local.Translate = v })
}

// SetLocalRotate sets the local rotation in radians.
func (s *Shape) SetLocalRotate(v mgl64.Vec3) {
	s.set(PlugLocalRotate, func(p *Params) { p.Local.Rotate = v })
}

// SetLocalScale sets the local scale.
func (s *Shape) SetLocalScale(v mgl64.Vec3) {
	s.set(PlugLocalScale, func(p *Params) { p.Local.Scale = v })
}

// SetLocalComponent sets one axis of translate, rotate or scale, dirtying
// only the child plug.
func (s *Shape) SetLocalComponent(compound Plug, axis Axis, v float64) error {
	if !axis.valid() {
		return fmt.Errorf("axis %d out of range", axis)
	}
	var target func(*Params) *mgl64.Vec3
	switch compound {
	case PlugLocalTranslate:
		target = func(p *Params) *mgl64.Vec3 { return &p.Local.Translate }
	case PlugLocalRotate:
		target = func(p *Params) *mgl64.Vec3 { return &p.Local.Rotate }
	case PlugLocalScale:
		target = func(p *Params) *mgl64.Vec3 { return &p.Local.Scale }
	default:
		return fmt.Errorf("%s is not a compound plug", compound)
	}
	s.set(compound.child(axis), func(p *Params) { target(p)[axis] = v })
	return nil
}

// SetColor sets the base color. Alpha is ignored.
func (s *Shape) SetColor(c Color) {
	c.A = 1
	s.set(PlugColor, func(p *Params) { p.Color = c })
}

// SetOpacity sets the unselected alpha, clamped to [0,1].
func (s *Shape) SetOpacity(v float32) {
	v = clamp01(v)
	s.set(PlugOpacity, func(p *Params) { p.Opacity = v })
}

// SetSelectionOpacity sets the selected alpha, clamped to [0,1].
func (s *Shape) SetSelectionOpacity(v float32) {
	v = clamp01(v)
	s.set(PlugSelectionOpacity, func(p *Params) { p.SelectionOpacity = v })
}

// SetMeshInWorldSpace sets whether the mesh matrix is a world matrix.
func (s *Shape) SetMeshInWorldSpace(v bool) {
	s.set(PlugMeshInWorldSpace, func(p *Params) { p.MeshInWorldSpace = v })
}

// SetHideOnPlayback sets the playback visibility flag.
func (s *Shape) SetHideOnPlayback(v bool) {
	s.hideOnPlayback = v
	s.set(PlugHideOnPlayback, func(*Params) {})
}

// SetVisible sets the visibility flag.
func (s *Shape) SetVisible(v bool) {
	s.visible = v
	s.set(PlugVisibility, func(*Params) {})
}

// Update applies several edits as one evaluation pass: the setters called
// inside fn are collected and handed to the tracker together, so the
// whole batch invalidates at most once.
func (s *Shape) Update(fn func(*Shape)) {
	if s.inBatch {
		fn(s)
		return
	}
	s.inBatch = true
	s.batch = s.batch[:0]
	defer func() {
		s.inBatch = false
		s.tracker.PreEvaluation(EvalNormal, s.batch)
	}()
	fn(s)
}

// input builds the derivation input, asking host for the world matrix
// only when it is needed.
func (s *Shape) input(host Host) (Input, error) {
	world := mgl64.Ident4()
	if s.params.MeshInWorldSpace {
		if host == nil {
			return Input{}, fmt.Errorf("%w: world matrix: no host", ErrHostQuery)
		}
		m, err := host.WorldMatrix()
		if err != nil {
			return Input{}, fmt.Errorf("%w: world matrix: %w", ErrHostQuery, err)
		}
		world = m
	}
	return s.params.Input(world), nil
}

// Geometry returns the current derived geometry.
func (s *Shape) Geometry(host Host) (Geometry, error) {
	in, err := s.input(host)
	if err != nil {
		return Geometry{}, err
	}
	return s.cache.Geometry(s.tracker.Generation(), in), nil
}

// BoundingBox returns the bounds of the displayed geometry.
func (s *Shape) BoundingBox(host Host) (geom.Bounds, error) {
	in, err := s.input(host)
	if err != nil {
		return geom.Empty(), err
	}
	return s.cache.BoundingBox(s.tracker.Generation(), in), nil
}

// DrawData returns geometry plus the color for the given selection state.
func (s *Shape) DrawData(host Host, selected bool, lead Color) (DrawData, error) {
	in, err := s.input(host)
	if err != nil {
		return DrawData{}, err
	}
	return s.cache.DrawData(s.tracker.Generation(), in, s.params.Appearance(), selected, lead), nil
}
