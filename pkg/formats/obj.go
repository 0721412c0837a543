// Package formats provides readers and writers for mesh interchange files.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/controlshape/pkg/mesh"
)

// OBJ format errors.
var (
	ErrOBJSyntax       = errors.New("malformed OBJ statement")
	ErrOBJIndexRange   = errors.New("OBJ index out of range")
	ErrOBJMixedNormals = errors.New("OBJ faces mix normal and no-normal vertices")
)

// OBJ is the geometry subset of a Wavefront OBJ file.
type OBJ struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	// Faces hold zero-based position indices.
	Faces [][]int
	// FaceNormals hold zero-based normal indices per face-vertex, or nil
	// when the file had no vn references.
	FaceNormals [][]int
	// Name is the first o/g statement, if any.
	Name string
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ parses v, vn, f, o and g statements. Texture coordinates,
// materials and smoothing groups are ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	hasNormals := -1 // unknown until the first face

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3+ vertices: %w", lineNo, ErrOBJSyntax)
			}
			face := make([]int, 0, len(fields)-1)
			normals := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				vi, ni, err := parseFaceRef(ref, len(obj.Positions), len(obj.Normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, vi)
				if ni >= 0 {
					normals = append(normals, ni)
				}
			}

			switch {
			case len(normals) == 0:
				if hasNormals == 1 {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJMixedNormals)
				}
				hasNormals = 0
			case len(normals) == len(face):
				if hasNormals == 0 {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJMixedNormals)
				}
				hasNormals = 1
				obj.FaceNormals = append(obj.FaceNormals, normals)
			default:
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJMixedNormals)
			}
			obj.Faces = append(obj.Faces, face)

		case "o", "g":
			if obj.Name == "" && len(fields) > 1 {
				obj.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

// Mesh converts the parsed file to a mesh. Face-vertex normals from vn
// references are kept unshared; averaged vertex normals are derived.
func (o *OBJ) Mesh() (*mesh.PolyMesh, error) {
	d := mesh.Data{
		Points: o.Positions,
		Faces:  o.Faces,
	}
	if o.FaceNormals != nil {
		d.FaceVertexNormals = make([][]mgl64.Vec3, len(o.FaceNormals))
		for fi, idxs := range o.FaceNormals {
			ns := make([]mgl64.Vec3, len(idxs))
			for k, ni := range idxs {
				ns[k] = o.Normals[ni]
			}
			d.FaceVertexNormals[fi] = ns
		}
	}
	return mesh.New(d)
}

// WriteTriangles writes a flat triangle list (three points per triangle)
// as an OBJ with unwelded vertices.
func WriteTriangles(w io.Writer, name string, points []mgl64.Vec3) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range points {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for i := 0; i+2 < len(points); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", i+1, i+2, i+3)
	}
	return bw.Flush()
}

func parseVec3(fields []string) (mgl64.Vec3, error) {
	if len(fields) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected 3 components, got %d: %w", len(fields), ErrOBJSyntax)
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("component %q: %w", fields[i], ErrOBJSyntax)
		}
		v[i] = f
	}
	return v, nil
}

// parseFaceRef parses "v", "v/vt", "v//vn" or "v/vt/vn". Returns the
// zero-based position index and normal index (-1 when absent).
func parseFaceRef(ref string, numPos, numNorm int) (int, int, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 || parts[0] == "" {
		return 0, 0, fmt.Errorf("face vertex %q: %w", ref, ErrOBJSyntax)
	}

	vi, err := resolveIndex(parts[0], numPos)
	if err != nil {
		return 0, 0, err
	}

	ni := -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], numNorm)
		if err != nil {
			return 0, 0, err
		}
	}
	return vi, ni, nil
}

// resolveIndex converts a one-based or negative relative OBJ index.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, ErrOBJSyntax)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	default:
		return 0, fmt.Errorf("index %d of %d: %w", i, count, ErrOBJIndexRange)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
