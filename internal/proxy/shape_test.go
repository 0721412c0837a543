package proxy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/controlshape/pkg/mesh"
)

var lead = Color{R: 0.2, G: 1, B: 0.6, A: 1}

func newCubeShape(t *testing.T, opts ...Option) *Shape {
	t.Helper()
	s := NewShape(opts...)
	s.SetMesh(mesh.Cube(2))
	return s
}

func TestNewShapeDefaults(t *testing.T) {
	s := NewShape()
	p := s.Params()

	assert.Nil(t, p.Mesh)
	assert.Empty(t, p.Faces)
	assert.Equal(t, mgl64.Ident4(), p.MeshMatrix)
	assert.Equal(t, DefaultOffset, p.Offset)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, p.Local.Scale)
	assert.Equal(t, mgl64.Vec3{}, p.Local.Translate)
	assert.Equal(t, mgl64.Vec3{}, p.Local.Rotate)
	assert.Equal(t, RGB(1, 1, 0), p.Color)
	assert.Equal(t, float32(0.15), p.Opacity)
	assert.Equal(t, float32(0.2), p.SelectionOpacity)
	assert.False(t, p.MeshInWorldSpace)

	assert.True(t, s.HideOnPlayback())
	assert.True(t, s.Visible())
	assert.True(t, s.IsBounded())
	assert.True(t, s.SelectionMask().Has(SelectMeshes|SelectJoints))
}

func TestShapeWithoutMeshDrawsNothing(t *testing.T) {
	s := NewShape()
	b, err := s.BoundingBox(nil)
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())

	dd, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)
	assert.Empty(t, dd.Points)
}

func TestShapeWithTypedNilMeshDrawsNothing(t *testing.T) {
	s := NewShape()
	s.SetMesh((*mesh.PolyMesh)(nil))
	s.SetFaces([]int{0})

	dd, err := s.DrawData(NewStaticHost(lead), false, Color{})
	require.NoError(t, err)
	assert.Empty(t, dd.Points)
	assert.True(t, dd.Bounds.IsEmpty())

	s.SetMeshInWorldSpace(true)
	b, err := s.BoundingBox(NewStaticHost(lead))
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())
}

func TestOffsetChangeRecomputesOnce(t *testing.T) {
	s := newCubeShape(t)
	_, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)
	require.Equal(t, 1, s.CacheStats().Recomputes)

	s.SetOffset(0.5)
	first, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)
	second, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)

	assert.Equal(t, 2, s.CacheStats().Recomputes)
	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, 1, s.CacheStats().Hits)
}

func TestManyChangesBeforeDrawRecomputeOnce(t *testing.T) {
	s := newCubeShape(t)
	s.SetOffset(0.3)
	s.SetFaces([]int{0, 1})
	s.SetLocalTranslate(mgl64.Vec3{1, 2, 3})
	require.NoError(t, s.SetLocalComponent(PlugLocalRotate, AxisY, 0.5))
	s.SetColor(RGB(0, 0, 1))

	_, err := s.BoundingBox(nil)
	require.NoError(t, err)
	_, err = s.DrawData(nil, true, lead)
	require.NoError(t, err)

	assert.Equal(t, 1, s.CacheStats().Recomputes)
}

func TestOpacityChangeKeepsGeometry(t *testing.T) {
	s := newCubeShape(t)
	before, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)

	s.SetOpacity(0.8)
	after, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)

	assert.Equal(t, before.Points, after.Points)
	assert.Equal(t, before.Bounds, after.Bounds)
	assert.Equal(t, float32(0.15), before.Color.A)
	assert.Equal(t, float32(0.8), after.Color.A)
}

func TestDrawColorFollowsSelection(t *testing.T) {
	s := newCubeShape(t)
	s.SetColor(Color{R: 0.1, G: 0.2, B: 0.3, A: 0.9})
	s.SetOpacity(0.4)
	s.SetSelectionOpacity(0.7)

	sel, err := s.DrawData(nil, true, lead)
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0.2, G: 1, B: 0.6, A: 0.7}, sel.Color)
	assert.True(t, sel.Selected)

	unsel, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}, unsel.Color)

	// Selection flips never touch geometry.
	assert.Equal(t, 1, s.CacheStats().Recomputes)
}

func TestOpacityClamped(t *testing.T) {
	s := NewShape()
	s.SetOpacity(1.5)
	s.SetSelectionOpacity(-2)

	assert.Equal(t, float32(1), s.Params().Opacity)
	assert.Equal(t, float32(0), s.Params().SelectionOpacity)
}

func TestIrrelevantChangesKeepCache(t *testing.T) {
	s := newCubeShape(t)
	_, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)

	s.SetVisible(false)
	s.SetHideOnPlayback(false)
	_, err = s.DrawData(nil, false, lead)
	require.NoError(t, err)

	assert.Equal(t, 1, s.CacheStats().Recomputes)
	assert.False(t, s.Visible())
	assert.False(t, s.HideOnPlayback())
}

func TestUpdateBatchesInvalidation(t *testing.T) {
	notified := 0
	s := newCubeShape(t, WithDrawDirtyNotifier(func() { notified++ }))
	notified = 0
	gen := s.Tracker().Generation()

	s.Update(func(s *Shape) {
		s.SetOffset(1)
		s.SetLocalScale(mgl64.Vec3{2, 2, 2})
		s.SetMeshInWorldSpace(false)
		s.SetVisible(true)
	})

	assert.Equal(t, gen+1, s.Tracker().Generation())
	assert.Equal(t, 1, notified)
	assert.Equal(t, 1.0, s.Params().Offset)

	// A batch of irrelevant edits does not invalidate.
	s.Update(func(s *Shape) { s.SetVisible(false) })
	assert.Equal(t, gen+1, s.Tracker().Generation())
}

func TestSetLocalComponent(t *testing.T) {
	s := NewShape()
	require.NoError(t, s.SetLocalComponent(PlugLocalTranslate, AxisX, 4))
	require.NoError(t, s.SetLocalComponent(PlugLocalScale, AxisZ, 3))
	require.NoError(t, s.SetLocalComponent(PlugLocalRotate, AxisY, 0.25))

	l := s.Params().Local
	assert.Equal(t, mgl64.Vec3{4, 0, 0}, l.Translate)
	assert.Equal(t, mgl64.Vec3{1, 1, 3}, l.Scale)
	assert.Equal(t, mgl64.Vec3{0, 0.25, 0}, l.Rotate)
	assert.Equal(t, uint64(3), s.Tracker().Generation())

	assert.Error(t, s.SetLocalComponent(PlugColor, AxisX, 1))
	assert.Error(t, s.SetLocalComponent(PlugLocalScale, Axis(5), 1))
}

func TestSetFacesCopies(t *testing.T) {
	s := NewShape()
	faces := []int{1, 2}
	s.SetFaces(faces)
	faces[0] = 42

	assert.Equal(t, []int{1, 2}, s.Params().Faces)

	p := s.Params()
	p.Faces[1] = 7
	assert.Equal(t, []int{1, 2}, s.Params().Faces)
}

func TestWorldMatrixChangeRecomputesInWorldSpace(t *testing.T) {
	s := newCubeShape(t)
	host := NewStaticHost(lead)

	_, err := s.BoundingBox(host)
	require.NoError(t, err)
	host.World = mgl64.Translate3D(1, 0, 0)
	_, err = s.BoundingBox(host)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CacheStats().Recomputes, "local space ignores the world matrix")

	s.SetMeshInWorldSpace(true)
	b1, err := s.BoundingBox(host)
	require.NoError(t, err)
	host.World = mgl64.Translate3D(3, 0, 0)
	b2, err := s.BoundingBox(host)
	require.NoError(t, err)
	_, err = s.BoundingBox(host)
	require.NoError(t, err)

	assert.Equal(t, 3, s.CacheStats().Recomputes)
	assert.InDelta(t, b1.Min[0]-2, b2.Min[0], eps)
}

func TestWorldSpaceWithoutHostFails(t *testing.T) {
	s := newCubeShape(t)
	s.SetMeshInWorldSpace(true)

	_, err := s.BoundingBox(nil)
	assert.ErrorIs(t, err, ErrHostQuery)
}

func TestBoundingBoxMatchesDrawData(t *testing.T) {
	s := newCubeShape(t)
	s.SetFaces([]int{0, 4})
	s.SetLocalRotate(mgl64.Vec3{0.4, 0.1, -0.3})

	b, err := s.BoundingBox(nil)
	require.NoError(t, err)
	dd, err := s.DrawData(nil, false, lead)
	require.NoError(t, err)

	assert.Equal(t, b, dd.Bounds)
	assert.Len(t, dd.Points, 12)
}
