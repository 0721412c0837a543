package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/Faultbox/controlshape/internal/logger"
	"github.com/Faultbox/controlshape/internal/proxy"
	"github.com/Faultbox/controlshape/pkg/formats"
	"github.com/Faultbox/controlshape/pkg/geom"
	"github.com/Faultbox/controlshape/pkg/mesh"
)

// shapeFlags are the shape parameters shared by derive and export.
type shapeFlags struct {
	faces      []int
	offset     float64
	translate  []float64
	rotate     []float64
	scale      []float64
	worldSpace bool
	worldMove  []float64
	primitive  string
	size       float64
}

func (f *shapeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntSliceVar(&f.faces, "faces", nil, "Face indices to display (default whole mesh)")
	fl.Float64Var(&f.offset, "offset", proxy.DefaultOffset, "Distance to push vertices along their normals")
	fl.Float64SliceVar(&f.translate, "translate", nil, "Local translate x,y,z")
	fl.Float64SliceVar(&f.rotate, "rotate", nil, "Local rotate x,y,z in radians")
	fl.Float64SliceVar(&f.scale, "scale", nil, "Local scale x,y,z")
	fl.BoolVar(&f.worldSpace, "world-space", false, "Treat the mesh as world space")
	fl.Float64SliceVar(&f.worldMove, "world-translate", nil, "Translate of the shape's own transform x,y,z")
	fl.StringVar(&f.primitive, "primitive", "", "Use a built-in mesh (cube, grid) instead of a file")
	fl.Float64Var(&f.size, "size", 1, "Primitive size")
}

// loadMesh reads the mesh named by args, or builds the primitive.
func (f *shapeFlags) loadMesh(args []string) (mesh.Reference, string, error) {
	switch f.primitive {
	case "cube":
		return mesh.Cube(f.size), "cube", nil
	case "grid":
		return mesh.Grid(4, f.size), "grid", nil
	case "":
	default:
		return nil, "", fmt.Errorf("unknown primitive %q", f.primitive)
	}
	if len(args) == 0 {
		return nil, "", errors.New("need a mesh file or --primitive")
	}
	m, err := loadOBJ(args[0])
	if err != nil {
		return nil, "", err
	}
	return m, args[0], nil
}

// shape builds a shape and a host from the flags.
func (f *shapeFlags) shape(ref mesh.Reference, name string) (*proxy.Shape, *proxy.StaticHost, error) {
	translate, err := vec3Flag("translate", f.translate, mgl64.Vec3{})
	if err != nil {
		return nil, nil, err
	}
	rotate, err := vec3Flag("rotate", f.rotate, mgl64.Vec3{})
	if err != nil {
		return nil, nil, err
	}
	scale, err := vec3Flag("scale", f.scale, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return nil, nil, err
	}
	move, err := vec3Flag("world-translate", f.worldMove, mgl64.Vec3{})
	if err != nil {
		return nil, nil, err
	}

	s := proxy.NewShape(proxy.WithName(name), proxy.WithLogger(logger.Named("shape")))
	s.Update(func(s *proxy.Shape) {
		s.SetMesh(ref)
		s.SetFaces(f.faces)
		s.SetOffset(f.offset)
		s.SetLocalTranslate(translate)
		s.SetLocalRotate(rotate)
		s.SetLocalScale(scale)
		s.SetMeshInWorldSpace(f.worldSpace)
	})

	host := proxy.NewStaticHost(proxy.DefaultColor)
	host.World = mgl64.Translate3D(move[0], move[1], move[2])
	return s, host, nil
}

func loadOBJ(path string) (*mesh.PolyMesh, error) {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	m, err := obj.Mesh()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func vec3Flag(name string, v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("--%s needs 3 values, got %d", name, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func printGeometry(w io.Writer, name string, g proxy.Geometry) {
	fmt.Fprintf(w, "shape:       %s\n", name)
	fmt.Fprintf(w, "triangles:   %d\n", g.TriangleCount())
	fmt.Fprintf(w, "bounds:      %s\n", formatBounds(g.Bounds))
	s := g.Skipped
	fmt.Fprintf(w, "skipped:     invalid faces %d, unsupported faces %d, invalid triangles %d, singular world %t\n",
		s.InvalidFaces, s.UnsupportedFaces, s.InvalidTriangles, s.SingularWorld)
	fmt.Fprintf(w, "fingerprint: %016x\n", g.Fingerprint())
}

func formatBounds(b geom.Bounds) string {
	if b.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("min (%.4g, %.4g, %.4g) max (%.4g, %.4g, %.4g)",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}
