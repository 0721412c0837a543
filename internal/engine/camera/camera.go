// Package camera provides the orbit camera used by the preview viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/controlshape/pkg/geom"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32

	// Projection
	FOV  float32 // Vertical, degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10,
		Pitch:           0.5,
		Yaw:             0.6,
		MinDistance:     0.05,
		MaxDistance:     10000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.0015,
		FOV:             45,
		Near:            0.01,
		Far:             1000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp, sp := cosSin(c.Pitch)
	cy, sy := cosSin(c.Yaw)
	offset := mgl32.Vec3{cp * sy, sp, cp * cy}.Mul(c.Distance)
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandlePan moves the center in the view plane. Speed scales with
// distance so panning feels the same at any zoom.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	forward := c.Center.Sub(c.Position()).Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up := right.Cross(forward)

	speed := c.Distance * c.PanSensitivity
	c.Center = c.Center.Sub(right.Mul(deltaX * speed)).Add(up.Mul(deltaY * speed))
}

// FitBounds centers the camera on b and backs off until the bounding
// sphere fills the vertical field of view. Empty bounds are ignored.
func (c *OrbitCamera) FitBounds(b geom.Bounds) {
	if b.IsEmpty() {
		return
	}
	center := b.Center()
	c.Center = mgl32.Vec3{float32(center[0]), float32(center[1]), float32(center[2])}

	radius := float32(b.Size().Len() / 2)
	if radius == 0 {
		radius = 1
	}
	half := mgl32.DegToRad(c.FOV) / 2
	c.Distance = clamp(radius/float32(math.Sin(float64(half)))*1.1, c.MinDistance, c.MaxDistance)
}

func cosSin(a float32) (float32, float32) {
	s, co := math.Sincos(float64(a))
	return float32(co), float32(s)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
