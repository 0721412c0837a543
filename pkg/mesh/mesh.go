// Package mesh describes the polygon mesh data a proxy shape reads from.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh construction errors.
var (
	ErrNoFaces           = errors.New("mesh has no faces")
	ErrDegenerateFace    = errors.New("face has fewer than 3 vertices")
	ErrVertexOutOfRange  = errors.New("face references vertex out of range")
	ErrNormalCount       = errors.New("face-vertex normal count does not match face arity")
	ErrVertexNormalCount = errors.New("vertex normal count does not match vertex count")
)

// Reference is read-only access to a polygon mesh owned by someone else.
// Implementations must be safe to read for the duration of one derivation.
type Reference interface {
	// NumFaces returns the polygon count.
	NumFaces() int
	// NumVertices returns the vertex count.
	NumVertices() int
	// FaceVertices returns the vertex loop of a polygon.
	// The caller must not modify the returned slice.
	FaceVertices(face int) []int
	// Point returns the raw object-space position of a vertex.
	Point(vertex int) mgl64.Vec3
	// FaceVertexNormal returns the unshared normal of the k-th vertex of a face.
	FaceVertexNormal(face, k int) mgl64.Vec3
	// VertexNormal returns the normal of a vertex averaged over its faces.
	VertexNormal(vertex int) mgl64.Vec3
	// Triangles returns the triangulation of the whole mesh as a flat list
	// of vertex indices, three per triangle.
	Triangles() []int
}

// PolyMesh is an in-memory polygon mesh.
type PolyMesh struct {
	points        []mgl64.Vec3
	faces         [][]int
	faceNormals   [][]mgl64.Vec3 // per face-vertex
	vertexNormals []mgl64.Vec3
	triangles     []int
}

// Data is the raw input for New.
type Data struct {
	Points []mgl64.Vec3
	Faces  [][]int
	// FaceVertexNormals optionally supplies one normal per face-vertex.
	// When nil, every face-vertex gets its face normal.
	FaceVertexNormals [][]mgl64.Vec3
	// VertexNormals optionally supplies averaged per-vertex normals.
	// When nil, they are averaged from the face normals.
	VertexNormals []mgl64.Vec3
}

// New validates d and builds a PolyMesh with derived normals and a fan
// triangulation.
func New(d Data) (*PolyMesh, error) {
	if len(d.Faces) == 0 {
		return nil, ErrNoFaces
	}
	for fi, f := range d.Faces {
		if len(f) < 3 {
			return nil, fmt.Errorf("face %d: %w", fi, ErrDegenerateFace)
		}
		for _, v := range f {
			if v < 0 || v >= len(d.Points) {
				return nil, fmt.Errorf("face %d vertex %d: %w", fi, v, ErrVertexOutOfRange)
			}
		}
	}
	if d.FaceVertexNormals != nil {
		if len(d.FaceVertexNormals) != len(d.Faces) {
			return nil, fmt.Errorf("%d normal loops for %d faces: %w", len(d.FaceVertexNormals), len(d.Faces), ErrNormalCount)
		}
		for fi, ns := range d.FaceVertexNormals {
			if len(ns) != len(d.Faces[fi]) {
				return nil, fmt.Errorf("face %d: %w", fi, ErrNormalCount)
			}
		}
	}
	if d.VertexNormals != nil && len(d.VertexNormals) != len(d.Points) {
		return nil, ErrVertexNormalCount
	}

	m := &PolyMesh{
		points: d.Points,
		faces:  d.Faces,
	}

	faceNormal := make([]mgl64.Vec3, len(d.Faces))
	for fi, f := range d.Faces {
		faceNormal[fi] = newellNormal(d.Points, f)
	}

	m.faceNormals = d.FaceVertexNormals
	if m.faceNormals == nil {
		m.faceNormals = make([][]mgl64.Vec3, len(d.Faces))
		for fi, f := range d.Faces {
			ns := make([]mgl64.Vec3, len(f))
			for k := range ns {
				ns[k] = faceNormal[fi]
			}
			m.faceNormals[fi] = ns
		}
	}

	m.vertexNormals = d.VertexNormals
	if m.vertexNormals == nil {
		m.vertexNormals = averageNormals(len(d.Points), d.Faces, m.faceNormals)
	}

	m.triangles = fanTriangulate(d.Faces)
	return m, nil
}

// The count accessors and Triangles are safe on a nil *PolyMesh, which
// reads as a mesh with nothing in it.

// NumFaces returns the polygon count.
func (m *PolyMesh) NumFaces() int {
	if m == nil {
		return 0
	}
	return len(m.faces)
}

// NumVertices returns the vertex count.
func (m *PolyMesh) NumVertices() int {
	if m == nil {
		return 0
	}
	return len(m.points)
}

// NumTriangles returns the triangle count of the whole-mesh triangulation.
func (m *PolyMesh) NumTriangles() int {
	if m == nil {
		return 0
	}
	return len(m.triangles) / 3
}

// FaceVertices returns the vertex loop of a polygon.
func (m *PolyMesh) FaceVertices(face int) []int { return m.faces[face] }

// Point returns the raw position of a vertex.
func (m *PolyMesh) Point(vertex int) mgl64.Vec3 { return m.points[vertex] }

// FaceVertexNormal returns the unshared normal of the k-th vertex of face.
func (m *PolyMesh) FaceVertexNormal(face, k int) mgl64.Vec3 { return m.faceNormals[face][k] }

// VertexNormal returns the averaged normal of a vertex.
func (m *PolyMesh) VertexNormal(vertex int) mgl64.Vec3 { return m.vertexNormals[vertex] }

// Triangles returns the flat triangle index list.
func (m *PolyMesh) Triangles() []int {
	if m == nil {
		return nil
	}
	return m.triangles
}

// ArityHistogram counts faces by vertex count.
func (m *PolyMesh) ArityHistogram() map[int]int {
	h := make(map[int]int)
	if m == nil {
		return h
	}
	for _, f := range m.faces {
		h[len(f)]++
	}
	return h
}

// newellNormal computes a unit polygon normal robust to slightly
// non-planar faces.
func newellNormal(points []mgl64.Vec3, face []int) mgl64.Vec3 {
	var n mgl64.Vec3
	for i := range face {
		cur := points[face[i]]
		next := points[face[(i+1)%len(face)]]
		n[0] += (cur[1] - next[1]) * (cur[2] + next[2])
		n[1] += (cur[2] - next[2]) * (cur[0] + next[0])
		n[2] += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	if n.Len() < 1e-12 {
		return mgl64.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// averageNormals sums the face-vertex normals touching each vertex.
// Vertices not referenced by any face keep a zero normal.
func averageNormals(numPoints int, faces [][]int, faceNormals [][]mgl64.Vec3) []mgl64.Vec3 {
	sum := make([]mgl64.Vec3, numPoints)
	for fi, f := range faces {
		for k, v := range f {
			sum[v] = sum[v].Add(faceNormals[fi][k])
		}
	}
	for i, n := range sum {
		if n.Len() > 1e-12 {
			sum[i] = n.Normalize()
		}
	}
	return sum
}

// fanTriangulate splits every polygon into (0, i, i+1) triangles.
func fanTriangulate(faces [][]int) []int {
	var count int
	for _, f := range faces {
		count += len(f) - 2
	}
	tris := make([]int, 0, count*3)
	for _, f := range faces {
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, f[0], f[i], f[i+1])
		}
	}
	return tris
}
