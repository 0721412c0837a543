package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/controlshape/internal/proxy"
	"github.com/Faultbox/controlshape/internal/registry"
	"github.com/Faultbox/controlshape/pkg/formats"
	"github.com/Faultbox/controlshape/pkg/mesh"
)

// Entry is one live shape built from a scene.
type Entry struct {
	Spec     *ShapeSpec
	Shape    *proxy.Shape
	Override *proxy.DrawOverride
	Host     *proxy.StaticHost
	Mesh     mesh.Reference

	// DrawDirty is set by the shape's dirty notifier and cleared by the
	// caller after redrawing.
	DrawDirty bool
}

// Build creates a shape, override and static host per spec. OBJ files
// referenced by several shapes are loaded once.
func (s *Scene) Build(reg *registry.Registry, lead proxy.Color, log *zap.Logger) ([]*Entry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	meshes := make(map[string]mesh.Reference)

	entries := make([]*Entry, 0, len(s.Shapes))
	for i := range s.Shapes {
		spec := &s.Shapes[i]

		ref, err := s.loadMesh(spec, meshes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}

		typeName := spec.Type
		if typeName == "" {
			typeName = registry.ControlShapeName
		}

		e := &Entry{Spec: spec, Mesh: ref}
		shape, err := reg.NewShape(typeName,
			proxy.WithName(spec.Name),
			proxy.WithLogger(log),
			proxy.WithDrawDirtyNotifier(func() { e.DrawDirty = true }),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		class, err := reg.Classification(typeName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		override, err := reg.NewDrawOverride(class, shape)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}

		e.Shape = shape
		e.Override = override
		e.Host = proxy.NewStaticHost(lead)
		e.Host.World = spec.World.Matrix()
		e.Host.Selected = spec.Selected

		shape.Update(func(sh *proxy.Shape) { spec.apply(sh, ref) })
		e.DrawDirty = true
		entries = append(entries, e)

		log.Debug("scene shape built",
			zap.String("name", spec.Name),
			zap.String("type", typeName),
			zap.Int("faces", len(spec.Faces)))
	}
	return entries, nil
}

func (s *Scene) loadMesh(spec *ShapeSpec, cache map[string]mesh.Reference) (mesh.Reference, error) {
	if p := spec.Primitive; p != nil {
		size := p.Size
		if size == 0 {
			size = 1
		}
		if p.Kind == PrimitiveGrid {
			return mesh.Grid(p.Divisions, size), nil
		}
		return mesh.Cube(size), nil
	}
	if spec.Mesh == "" {
		return nil, nil
	}

	path := s.resolve(spec.Mesh)
	if m, ok := cache[path]; ok {
		return m, nil
	}
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	m, err := obj.Mesh()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cache[path] = m
	return m, nil
}

// apply copies spec values onto a shape. ref may be nil.
func (spec *ShapeSpec) apply(sh *proxy.Shape, ref mesh.Reference) {
	if ref != nil {
		sh.SetMesh(ref)
	}
	sh.SetFaces(spec.Faces)
	if spec.MeshMatrix != nil {
		sh.SetMeshMatrix(spec.MeshMatrix.Matrix())
	}
	if spec.Offset != nil {
		sh.SetOffset(*spec.Offset)
	}
	if spec.Translate != nil {
		sh.SetLocalTranslate(mgl64.Vec3(*spec.Translate))
	}
	if spec.Rotate != nil {
		sh.SetLocalRotate(mgl64.Vec3(*spec.Rotate))
	}
	if spec.Scale != nil {
		sh.SetLocalScale(mgl64.Vec3(*spec.Scale))
	}
	if c := spec.Color; c != nil {
		sh.SetColor(proxy.RGB(c[0], c[1], c[2]))
	}
	if spec.Opacity != nil {
		sh.SetOpacity(*spec.Opacity)
	}
	if spec.SelectionOpacity != nil {
		sh.SetSelectionOpacity(*spec.SelectionOpacity)
	}
	sh.SetMeshInWorldSpace(spec.MeshInWorldSpace)
}

// Capture writes the shape's current parameters back into its spec so an
// edited scene can be saved. Mesh source, mesh matrix and world are left
// as they were loaded.
func (e *Entry) Capture() {
	p := e.Shape.Params()
	spec := e.Spec

	offset := p.Offset
	spec.Offset = &offset
	tr := [3]float64(p.Local.Translate)
	spec.Translate = &tr
	rot := [3]float64(p.Local.Rotate)
	spec.Rotate = &rot
	sc := [3]float64(p.Local.Scale)
	spec.Scale = &sc
	color := [3]float32{p.Color.R, p.Color.G, p.Color.B}
	spec.Color = &color
	op, sel := p.Opacity, p.SelectionOpacity
	spec.Opacity = &op
	spec.SelectionOpacity = &sel
	spec.MeshInWorldSpace = p.MeshInWorldSpace
	spec.Faces = append(spec.Faces[:0:0], p.Faces...)
	spec.Selected = e.Host.Selected
}
