// Package registry binds shape types and their draw overrides to names,
// the way a host application's plugin loader does.
package registry

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/internal/proxy"
)

// Registry errors.
var (
	ErrUnknownType       = errors.New("unknown shape type")
	ErrUnknownOverride   = errors.New("no draw override for classification")
	ErrTypeIDConflict    = errors.New("type id already registered under another name")
	ErrOverrideConflict  = errors.New("classification already has a draw override from another registrant")
	ErrMissingClassifier = errors.New("shape type has no draw classification")
)

// TypeID is a host-unique node type identifier.
type TypeID uint32

// ShapeCreator builds a new shape instance.
type ShapeCreator func(opts ...proxy.Option) *proxy.Shape

// OverrideCreator builds the draw override for a shape.
type OverrideCreator func(*proxy.Shape) *proxy.DrawOverride

// ShapeType describes a registrable shape.
type ShapeType struct {
	Name           string
	ID             TypeID
	Classification string
	Create         ShapeCreator
}

type overrideEntry struct {
	registrant string
	create     OverrideCreator
}

// Registry maps type names and ids to creators, and draw classifications
// to override creators.
type Registry struct {
	types     map[string]ShapeType
	ids       map[TypeID]string
	overrides map[string]overrideEntry
	log       *zap.Logger
}

// New returns an empty registry.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		types:     make(map[string]ShapeType),
		ids:       make(map[TypeID]string),
		overrides: make(map[string]overrideEntry),
		log:       log,
	}
}

// RegisterShape adds a shape type. Registering the same name and id again
// is a no-op.
func (r *Registry) RegisterShape(t ShapeType) error {
	if t.Classification == "" {
		return fmt.Errorf("%s: %w", t.Name, ErrMissingClassifier)
	}
	if name, ok := r.ids[t.ID]; ok {
		if name != t.Name {
			return fmt.Errorf("id %d held by %q: %w", t.ID, name, ErrTypeIDConflict)
		}
		return nil
	}
	r.types[t.Name] = t
	r.ids[t.ID] = t.Name
	r.log.Info("shape registered", zap.String("type", t.Name), zap.Uint32("id", uint32(t.ID)))
	return nil
}

// DeregisterShape removes a shape type by id. Unknown ids are ignored.
func (r *Registry) DeregisterShape(id TypeID) {
	name, ok := r.ids[id]
	if !ok {
		return
	}
	delete(r.ids, id)
	delete(r.types, name)
	r.log.Info("shape deregistered", zap.String("type", name))
}

// RegisterDrawOverride binds a draw override creator to a classification.
func (r *Registry) RegisterDrawOverride(classification, registrant string, create OverrideCreator) error {
	if e, ok := r.overrides[classification]; ok {
		if e.registrant != registrant {
			return fmt.Errorf("%s held by %q: %w", classification, e.registrant, ErrOverrideConflict)
		}
		return nil
	}
	r.overrides[classification] = overrideEntry{registrant: registrant, create: create}
	r.log.Info("draw override registered", zap.String("classification", classification))
	return nil
}

// DeregisterDrawOverride removes the override if registrant owns it.
func (r *Registry) DeregisterDrawOverride(classification, registrant string) {
	if e, ok := r.overrides[classification]; ok && e.registrant == registrant {
		delete(r.overrides, classification)
		r.log.Info("draw override deregistered", zap.String("classification", classification))
	}
}

// NewShape creates an instance of a registered type.
func (r *Registry) NewShape(typeName string, opts ...proxy.Option) (*proxy.Shape, error) {
	t, ok := r.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%q: %w", typeName, ErrUnknownType)
	}
	return t.Create(opts...), nil
}

// NewDrawOverride creates the override registered for a draw classification.
func (r *Registry) NewDrawOverride(classification string, shape *proxy.Shape) (*proxy.DrawOverride, error) {
	e, ok := r.overrides[classification]
	if !ok {
		return nil, fmt.Errorf("%s: %w", classification, ErrUnknownOverride)
	}
	return e.create(shape), nil
}

// Classification returns the draw classification of a registered type.
func (r *Registry) Classification(typeName string) (string, error) {
	t, ok := r.types[typeName]
	if !ok {
		return "", fmt.Errorf("%q: %w", typeName, ErrUnknownType)
	}
	return t.Classification, nil
}

// HasShape reports whether a type name is registered.
func (r *Registry) HasShape(typeName string) bool {
	_, ok := r.types[typeName]
	return ok
}

// HasDrawOverride reports whether a classification has an override.
func (r *Registry) HasDrawOverride(classification string) bool {
	_, ok := r.overrides[classification]
	return ok
}
