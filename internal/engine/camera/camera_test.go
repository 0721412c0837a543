package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/controlshape/pkg/geom"
)

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{1, 2, 3}
	c.Distance = 5

	got := c.Position().Sub(c.Center).Len()
	assert.InDelta(t, 5, got, 1e-4)
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{4, 0, -2}

	// The center lands on the view axis, in front of the camera.
	p := c.ViewMatrix().Mul4x1(c.Center.Vec4(1))
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.InDelta(t, -c.Distance, p.Z(), 1e-3)
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)
}

func TestHandleZoom(t *testing.T) {
	c := NewOrbitCamera()
	start := c.Distance
	c.HandleZoom(1)
	assert.Less(t, c.Distance, start, "scrolling away zooms in")

	for i := 0; i < 1000; i++ {
		c.HandleZoom(5)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
}

func TestHandlePanKeepsDistance(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Position().Sub(c.Center).Len()
	c.HandlePan(100, -50)
	after := c.Position().Sub(c.Center).Len()
	assert.InDelta(t, before, after, 1e-4)
	assert.NotEqual(t, mgl32.Vec3{}, c.Center)
}

func TestFitBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := geom.Bounds{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{3, 1, 1}}
	c.FitBounds(b)

	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Center)
	// Every corner must sit inside the view frustum.
	vp := c.ViewProjection(1)
	for _, corner := range b.Corners() {
		clip := vp.Mul4x1(mgl32.Vec4{float32(corner[0]), float32(corner[1]), float32(corner[2]), 1})
		ndc := clip.Vec3().Mul(1 / clip.W())
		assert.LessOrEqual(t, ndc.X(), float32(1))
		assert.GreaterOrEqual(t, ndc.X(), float32(-1))
		assert.LessOrEqual(t, ndc.Y(), float32(1))
		assert.GreaterOrEqual(t, ndc.Y(), float32(-1))
	}

	before := *c
	c.FitBounds(geom.Empty())
	assert.Equal(t, before, *c, "empty bounds leave the camera alone")
}
