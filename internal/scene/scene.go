// Package scene reads and writes YAML scene files describing control
// shapes, and builds live shapes from them.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/controlshape/internal/proxy"
)

// Scene validation errors.
var (
	ErrDuplicateName    = errors.New("duplicate shape name")
	ErrUnnamedShape     = errors.New("shape has no name")
	ErrAmbiguousMesh    = errors.New("shape sets both mesh and primitive")
	ErrUnknownPrimitive = errors.New("unknown primitive")
)

// Primitive names accepted in place of a mesh file.
const (
	PrimitiveCube = "cube"
	PrimitiveGrid = "grid"
)

// Scene is the on-disk scene description.
type Scene struct {
	Shapes []ShapeSpec `yaml:"shapes"`

	// dir resolves relative mesh paths.
	dir string
}

// ShapeSpec describes one control shape. Nil optional fields keep the
// shape defaults.
type ShapeSpec struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type,omitempty"` // Registered shape type, default controlShape
	Mesh      string         `yaml:"mesh,omitempty"` // OBJ path, relative to the scene file
	Primitive *PrimitiveSpec `yaml:"primitive,omitempty"`
	Faces     []int          `yaml:"faces,omitempty"` // Empty means the whole mesh

	MeshMatrix *TransformSpec `yaml:"mesh_matrix,omitempty"`
	Offset     *float64       `yaml:"offset,omitempty"`
	Translate  *[3]float64    `yaml:"translate,omitempty"`
	Rotate     *[3]float64    `yaml:"rotate,omitempty"` // Radians, XYZ order
	Scale      *[3]float64    `yaml:"scale,omitempty"`

	Color            *[3]float32 `yaml:"color,omitempty"`
	Opacity          *float32    `yaml:"opacity,omitempty"`
	SelectionOpacity *float32    `yaml:"selection_opacity,omitempty"`
	MeshInWorldSpace bool        `yaml:"mesh_in_world_space,omitempty"`

	// World places the shape's transform in the scene.
	World    *TransformSpec `yaml:"world,omitempty"`
	Selected bool           `yaml:"selected,omitempty"`
}

// PrimitiveSpec selects a built-in mesh.
type PrimitiveSpec struct {
	Kind      string  `yaml:"kind"`
	Size      float64 `yaml:"size,omitempty"`
	Divisions int     `yaml:"divisions,omitempty"` // Grid only
}

// TransformSpec is a translate/rotate/scale triple.
type TransformSpec struct {
	Translate [3]float64  `yaml:"translate,omitempty"`
	Rotate    [3]float64  `yaml:"rotate,omitempty"`
	Scale     *[3]float64 `yaml:"scale,omitempty"`
}

// Matrix returns the transform as a matrix. A nil spec is identity.
func (t *TransformSpec) Matrix() mgl64.Mat4 {
	if t == nil {
		return mgl64.Ident4()
	}
	lt := proxy.IdentityTransform()
	lt.Translate = t.Translate
	lt.Rotate = t.Rotate
	if t.Scale != nil {
		lt.Scale = *t.Scale
	}
	return lt.Compose(mgl64.Ident4())
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates scene YAML. Relative mesh paths resolve
// against the working directory.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks names and mesh sources.
func (s *Scene) Validate() error {
	seen := make(map[string]bool, len(s.Shapes))
	for i, spec := range s.Shapes {
		if spec.Name == "" {
			return fmt.Errorf("shape %d: %w", i, ErrUnnamedShape)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%s: %w", spec.Name, ErrDuplicateName)
		}
		seen[spec.Name] = true

		if spec.Mesh != "" && spec.Primitive != nil {
			return fmt.Errorf("%s: %w", spec.Name, ErrAmbiguousMesh)
		}
		if p := spec.Primitive; p != nil && p.Kind != PrimitiveCube && p.Kind != PrimitiveGrid {
			return fmt.Errorf("%s: %q: %w", spec.Name, p.Kind, ErrUnknownPrimitive)
		}
	}
	return nil
}

// Save writes the scene as YAML.
func (s *Scene) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}

// Find returns the shape entry with the given name.
func (s *Scene) Find(name string) (*ShapeSpec, bool) {
	for i := range s.Shapes {
		if s.Shapes[i].Name == name {
			return &s.Shapes[i], true
		}
	}
	return nil, false
}

// resolve returns a mesh path relative to the scene file.
func (s *Scene) resolve(p string) string {
	if filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}
