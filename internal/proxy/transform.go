package proxy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LocalTransform is an offset applied in the mesh's object space on top of
// the mesh alignment matrix. Rotation angles are radians, applied X then
// Y then Z.
type LocalTransform struct {
	Translate mgl64.Vec3
	Rotate    mgl64.Vec3
	Scale     mgl64.Vec3
}

// IdentityTransform returns the default local transform.
func IdentityTransform() LocalTransform {
	return LocalTransform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Rotation returns the XYZ rotation matrix. With column vectors the X
// rotation is applied first, so it sits rightmost.
func (l LocalTransform) Rotation() mgl64.Mat4 {
	rx := mgl64.HomogRotate3DX(l.Rotate[0])
	ry := mgl64.HomogRotate3DY(l.Rotate[1])
	rz := mgl64.HomogRotate3DZ(l.Rotate[2])
	return rz.Mul4(ry).Mul4(rx)
}

// Compose returns base * T * R * S. Points are column vectors, so the
// scale reaches a point first, then rotation, translation and base.
func (l LocalTransform) Compose(base mgl64.Mat4) mgl64.Mat4 {
	t := mgl64.Translate3D(l.Translate[0], l.Translate[1], l.Translate[2])
	s := mgl64.Scale3D(l.Scale[0], l.Scale[1], l.Scale[2])
	return base.Mul4(t).Mul4(l.Rotation()).Mul4(s)
}

// pointMatrix returns the matrix applied to every offset point. In world
// space the composed mesh matrix is brought into the shape's local frame
// by the inverse of the shape's world matrix. ok is false when that
// world matrix is singular; identity is used in its place.
func pointMatrix(final, world mgl64.Mat4, worldSpace bool) (m mgl64.Mat4, ok bool) {
	if !worldSpace {
		return final, true
	}
	det := world.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return final, false
	}
	return world.Inv().Mul4(final), true
}
