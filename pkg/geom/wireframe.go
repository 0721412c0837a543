package geom

// WireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const WireframeVertexCount = 24

// Wireframe creates line vertices for the box edges.
// Returns 24 vertices, format: [x, y, z] per vertex, ready for GL_LINES.
// An empty box yields nil.
func (b Bounds) Wireframe() []float32 {
	if b.IsEmpty() {
		return nil
	}
	c := b.Corners()
	edges := [12][2]int{
		// Bottom face
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Top face
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Vertical edges
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	out := make([]float32, 0, WireframeVertexCount*3)
	for _, e := range edges {
		for _, idx := range e {
			p := c[idx]
			out = append(out, float32(p[0]), float32(p[1]), float32(p[2]))
		}
	}
	return out
}

// Pad returns the box grown by amount on every side.
func (b Bounds) Pad(amount float64) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := b
	for i := 0; i < 3; i++ {
		out.Min[i] -= amount
		out.Max[i] += amount
	}
	return out
}
