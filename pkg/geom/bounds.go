// Package geom provides axis-aligned bounds and debug line helpers.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned bounding box.
// The zero value is not empty; use Empty to start an accumulation.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Empty returns a box that contains nothing. Expanding it by a point
// yields a degenerate box around that point.
func Empty() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// FromPoints returns the tight box around pts.
func FromPoints(pts []mgl64.Vec3) Bounds {
	b := Empty()
	for _, p := range pts {
		b.Expand(p)
	}
	return b
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Expand grows the box to include p. It never shrinks.
func (b *Bounds) Expand(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns the box covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	if other.IsEmpty() {
		return b
	}
	out := b
	out.Expand(other.Min)
	out.Expand(other.Max)
	return out
}

// Contains reports whether p lies inside the box, boundary included.
func (b Bounds) Contains(p mgl64.Vec3) bool {
	if b.IsEmpty() {
		return false
	}
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Center returns the midpoint. Zero for an empty box.
func (b Bounds) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis. Zero for an empty box.
func (b Bounds) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Transform returns the box enclosing the eight transformed corners of b.
func (b Bounds) Transform(m mgl64.Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := Empty()
	for _, c := range b.Corners() {
		out.Expand(mgl64.TransformCoordinate(c, m))
	}
	return out
}

// Corners returns the eight corners, bottom face (min Y) first.
func (b Bounds) Corners() [8]mgl64.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl64.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{hi[0], hi[1], hi[2]},
		{lo[0], hi[1], hi[2]},
	}
}
