package proxy

// Color is a linear RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Array returns the components as [r, g, b, a].
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Appearance is the color state of a shape.
type Appearance struct {
	Color            Color // alpha ignored
	Opacity          float32
	SelectionOpacity float32
}

// Resolve picks the flat draw color. Selected shapes use the host's lead
// color with the selection opacity; others use the base color with the
// regular opacity.
func (a Appearance) Resolve(selected bool, lead Color) Color {
	if selected {
		return lead.WithAlpha(a.SelectionOpacity)
	}
	return a.Color.WithAlpha(a.Opacity)
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
