package proxy

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/controlshape/pkg/geom"
	"github.com/Faultbox/controlshape/pkg/mesh"
)

// Input is everything Derive reads.
type Input struct {
	// Mesh is the reference mesh. Nil means nothing to draw.
	Mesh mesh.Reference
	// Faces selects polygons to display. Empty means the whole mesh.
	Faces []int
	// Offset is the distance to push each vertex along its normal.
	Offset float64
	Local  LocalTransform
	// Base is the mesh alignment matrix.
	Base mgl64.Mat4
	// World is the shape's own world matrix, used only in world space.
	World      mgl64.Mat4
	WorldSpace bool
}

// Skipped counts input the derivation ignored.
type Skipped struct {
	// InvalidFaces are subset entries outside the mesh, or faces that
	// reference a vertex the mesh does not have.
	InvalidFaces int
	// UnsupportedFaces are subset faces that are neither triangles nor quads.
	UnsupportedFaces int
	// InvalidTriangles are whole-mesh triangles with an out-of-range index.
	InvalidTriangles int
	// SingularWorld is set when world space was requested but the world
	// matrix could not be inverted.
	SingularWorld bool
}

// Any reports whether anything was skipped.
func (s Skipped) Any() bool {
	return s.InvalidFaces > 0 || s.UnsupportedFaces > 0 || s.InvalidTriangles > 0 || s.SingularWorld
}

// Geometry is a derived triangle list. Points holds three entries per
// triangle; Bounds is the tight box around all of them.
type Geometry struct {
	Points  []mgl64.Vec3
	Bounds  geom.Bounds
	Skipped Skipped
}

// TriangleCount returns the number of triangles.
func (g Geometry) TriangleCount() int {
	return len(g.Points) / 3
}

// Fingerprint hashes the exact bit patterns of the points and bounds.
// Identical derivations always produce identical fingerprints.
func (g Geometry) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 24)
	write := func(v mgl64.Vec3) {
		buf = buf[:0]
		for _, c := range v {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c))
		}
		_, _ = d.Write(buf)
	}
	for _, p := range g.Points {
		write(p)
	}
	write(g.Bounds.Min)
	write(g.Bounds.Max)
	return d.Sum64()
}

// Emission orders for subset faces. Quads use a fixed split into
// (0,1,2) and (2,3,0).
var (
	triOrder  = []int{0, 1, 2}
	quadOrder = []int{0, 1, 2, 2, 3, 0}
)

// Derive computes the offset, transformed triangle list for in.
//
// Each point is raw + normal*offset, then multiplied by the point matrix.
// The offset happens before the transform, so under rotation or
// non-uniform scale the displacement follows the untransformed normal.
func Derive(in Input) Geometry {
	g := Geometry{Bounds: geom.Empty()}
	// A typed nil mesh reports no vertices, so it is unset too.
	if in.Mesh == nil || in.Mesh.NumVertices() == 0 {
		return g
	}

	final := in.Local.Compose(in.Base)
	m, ok := pointMatrix(final, in.World, in.WorldSpace)
	if !ok {
		g.Skipped.SingularWorld = true
	}

	emit := func(raw, normal mgl64.Vec3) {
		p := mgl64.TransformCoordinate(raw.Add(normal.Mul(in.Offset)), m)
		g.Points = append(g.Points, p)
		g.Bounds.Expand(p)
	}

	if len(in.Faces) > 0 {
		deriveSubset(in, &g, emit)
	} else {
		deriveWhole(in, &g, emit)
	}
	return g
}

func deriveSubset(in Input, g *Geometry, emit func(raw, normal mgl64.Vec3)) {
	msh := in.Mesh
	numFaces := msh.NumFaces()
	numVerts := msh.NumVertices()

	g.Points = make([]mgl64.Vec3, 0, len(in.Faces)*6)
	for _, face := range in.Faces {
		if face < 0 || face >= numFaces {
			g.Skipped.InvalidFaces++
			continue
		}
		loop := msh.FaceVertices(face)

		var order []int
		switch len(loop) {
		case 3:
			order = triOrder
		case 4:
			order = quadOrder
		default:
			g.Skipped.UnsupportedFaces++
			continue
		}

		if !verticesInRange(loop, numVerts) {
			g.Skipped.InvalidFaces++
			continue
		}

		for _, k := range order {
			emit(msh.Point(loop[k]), msh.FaceVertexNormal(face, k))
		}
	}
}

func deriveWhole(in Input, g *Geometry, emit func(raw, normal mgl64.Vec3)) {
	msh := in.Mesh
	numVerts := msh.NumVertices()
	tris := msh.Triangles()

	g.Points = make([]mgl64.Vec3, 0, len(tris)-len(tris)%3)
	for i := 0; i+2 < len(tris); i += 3 {
		tri := tris[i : i+3]
		if !verticesInRange(tri, numVerts) {
			g.Skipped.InvalidTriangles++
			continue
		}
		for _, idx := range tri {
			emit(msh.Point(idx), msh.VertexNormal(idx))
		}
	}
	if len(tris)%3 != 0 {
		g.Skipped.InvalidTriangles++
	}
}

func verticesInRange(idxs []int, n int) bool {
	for _, v := range idxs {
		if v < 0 || v >= n {
			return false
		}
	}
	return true
}
