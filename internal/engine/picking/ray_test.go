package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/controlshape/pkg/geom"
)

var unitBox = geom.Bounds{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

func TestIntersectBounds(t *testing.T) {
	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float64
	}{
		{"front", Ray{mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}}, true, 4},
		{"inside exits", Ray{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}}, true, 1},
		{"behind", Ray{mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1}}, false, 0},
		{"miss", Ray{mgl64.Vec3{3, 0, 5}, mgl64.Vec3{0, 0, -1}}, false, 0},
		{"parallel outside slab", Ray{mgl64.Vec3{0, 2, 5}, mgl64.Vec3{0, 0, -1}}, false, 0},
		{"edge graze", Ray{mgl64.Vec3{1, 1, 5}, mgl64.Vec3{0, 0, -1}}, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBounds(unitBox)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantT, got, 1e-9)
			}
		})
	}
}

func TestIntersectEmptyBounds(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}}
	_, hit := r.IntersectBounds(geom.Empty())
	assert.False(t, hit)
}

func TestScreenToRayCenter(t *testing.T) {
	proj := mgl64.Perspective(mgl64.DegToRad(60), 1, 0.1, 100)
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	assert.True(t, r.Direction.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-6), "dir %v", r.Direction)
	assert.InDelta(t, 9.9, r.Origin.Z(), 1e-6, "origin on the near plane")

	// A click at the top edge tilts the ray upward.
	up := ScreenToRay(400, 0, 800, 600, inv)
	assert.Greater(t, up.Direction.Y(), 0.0)
}

func TestPickNearest(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 20}, Direction: mgl64.Vec3{0, 0, -1}}
	targets := []Target{
		{Bounds: unitBox, World: mgl64.Translate3D(0, 0, -5)},
		{Bounds: unitBox, World: mgl64.Translate3D(0, 0, 5)},
		{Bounds: unitBox, World: mgl64.Translate3D(10, 0, 0)},
	}

	i, d := Pick(r, targets)
	require.Equal(t, 1, i)
	assert.InDelta(t, 14, d, 1e-9)
}

func TestPickRotatedTarget(t *testing.T) {
	// A thin slab rotated 90 degrees about Y stands across the X axis.
	slab := geom.Bounds{Min: mgl64.Vec3{-0.1, -1, -3}, Max: mgl64.Vec3{0.1, 1, 3}}
	world := mgl64.HomogRotate3DY(math.Pi / 2)

	along := Ray{Origin: mgl64.Vec3{2.5, 0, 10}, Direction: mgl64.Vec3{0, 0, -1}}
	i, d := Pick(along, []Target{{Bounds: slab, World: world}})
	require.Equal(t, 0, i)
	assert.InDelta(t, 9.9, d, 1e-6)

	// At 45 degrees the slab's world box covers (2, y, -2) but the slab does not.
	diag := mgl64.HomogRotate3DY(math.Pi / 4)
	down := Ray{Origin: mgl64.Vec3{2, 10, -2}, Direction: mgl64.Vec3{0, -1, 0}}
	_, worldHit := down.IntersectBounds(slab.Transform(diag))
	require.True(t, worldHit)
	i, _ = Pick(down, []Target{{Bounds: slab, World: diag}})
	assert.Equal(t, -1, i)
}

func TestPickSkipsSingular(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 20}, Direction: mgl64.Vec3{0, 0, -1}}
	i, _ := Pick(r, []Target{{Bounds: unitBox, World: mgl64.Scale3D(0, 1, 1)}})
	assert.Equal(t, -1, i)
}
