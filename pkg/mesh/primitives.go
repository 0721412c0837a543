package mesh

import "github.com/go-gl/mathgl/mgl64"

// Cube returns an axis-aligned cube of the given edge length centered at
// the origin, built from six outward-facing quads.
func Cube(size float64) *PolyMesh {
	h := size / 2
	points := []mgl64.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	faces := [][]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}
	m, err := New(Data{Points: points, Faces: faces})
	if err != nil {
		panic(err) // static data
	}
	return m
}

// Grid returns a flat XZ grid of n×n quads spanning size, facing +Y.
func Grid(n int, size float64) *PolyMesh {
	if n < 1 {
		n = 1
	}
	step := size / float64(n)
	origin := -size / 2

	points := make([]mgl64.Vec3, 0, (n+1)*(n+1))
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			points = append(points, mgl64.Vec3{origin + float64(x)*step, 0, origin + float64(z)*step})
		}
	}

	faces := make([][]int, 0, n*n)
	row := n + 1
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			i := z*row + x
			faces = append(faces, []int{i, i + row, i + row + 1, i + 1})
		}
	}
	m, err := New(Data{Points: points, Faces: faces})
	if err != nil {
		panic(err)
	}
	return m
}
