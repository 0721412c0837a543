// Package picking provides ray casting against shape bounds.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/controlshape/pkg/geom"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj mgl64.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl64.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(m mgl64.Mat4, ndc mgl64.Vec4) mgl64.Vec3 {
	p := m.Mul4x1(ndc)
	if p[3] != 0 {
		return p.Vec3().Mul(1 / p[3])
	}
	return p.Vec3()
}

// Transform returns the ray carried by m. The direction is renormalized,
// so distances along the result are in the target space.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	o := mgl64.TransformCoordinate(r.Origin, m)
	d := mgl64.TransformNormal(r.Direction, m)
	if l := d.Len(); l > 0 {
		d = d.Mul(1 / l)
	}
	return Ray{Origin: o, Direction: d}
}

// IntersectBounds tests ray intersection with an axis-aligned box using
// the slab method. It returns the entry distance, or the exit distance
// when the ray starts inside.
func (r Ray) IntersectBounds(box geom.Bounds) (t float64, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Target is something pickable: local bounds placed by a world matrix.
type Target struct {
	Bounds geom.Bounds
	World  mgl64.Mat4
}

// Pick returns the index of the nearest target hit by a world-space ray,
// or -1. Each ray is tested in the target's local space, so rotated
// shapes pick against their own box rather than a loose world box.
// Targets with singular world matrices are skipped.
func Pick(r Ray, targets []Target) (index int, dist float64) {
	index, dist = -1, math.Inf(1)
	for i, tg := range targets {
		if tg.World.Det() == 0 {
			continue
		}
		local := r.Transform(tg.World.Inv())
		t, ok := local.IntersectBounds(tg.Bounds)
		if !ok {
			continue
		}
		// Measure in world space so targets with different scales compare.
		d := mgl64.TransformCoordinate(local.At(t), tg.World).Sub(r.Origin).Len()
		if d < dist {
			index, dist = i, d
		}
	}
	return index, dist
}
