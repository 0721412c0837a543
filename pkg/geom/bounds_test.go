package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEmpty(t *testing.T) {
	b := Empty()
	if !b.IsEmpty() {
		t.Fatal("Empty() should be empty")
	}
	if b.Contains(mgl64.Vec3{}) {
		t.Error("empty box should contain nothing")
	}
	if b.Wireframe() != nil {
		t.Error("empty box should have no wireframe")
	}
	if got := b.Size(); got != (mgl64.Vec3{}) {
		t.Errorf("Size of empty box: got %v, want zero", got)
	}
}

func TestExpandSinglePoint(t *testing.T) {
	b := Empty()
	p := mgl64.Vec3{1, -2, 3}
	b.Expand(p)

	if b.IsEmpty() {
		t.Fatal("box should not be empty after Expand")
	}
	if b.Min != p || b.Max != p {
		t.Errorf("degenerate box: got min %v max %v, want %v", b.Min, b.Max, p)
	}
	if !b.Contains(p) {
		t.Error("box should contain its only point")
	}
}

func TestExpandNeverShrinks(t *testing.T) {
	b := FromPoints([]mgl64.Vec3{{-1, -1, -1}, {1, 1, 1}})
	b.Expand(mgl64.Vec3{0, 0, 0})

	if b.Min != (mgl64.Vec3{-1, -1, -1}) || b.Max != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("interior point changed bounds: %v %v", b.Min, b.Max)
	}
}

func TestFromPointsTight(t *testing.T) {
	pts := []mgl64.Vec3{{0, 5, 2}, {3, -1, 2}, {1, 1, -4}}
	b := FromPoints(pts)

	want := Bounds{Min: mgl64.Vec3{0, -1, -4}, Max: mgl64.Vec3{3, 5, 2}}
	if b != want {
		t.Errorf("FromPoints: got %v, want %v", b, want)
	}
	for _, p := range pts {
		if !b.Contains(p) {
			t.Errorf("box %v should contain %v", b, p)
		}
	}
}

func TestUnion(t *testing.T) {
	a := FromPoints([]mgl64.Vec3{{0, 0, 0}, {1, 1, 1}})
	b := FromPoints([]mgl64.Vec3{{2, -1, 0}})

	u := a.Union(b)
	if u.Min != (mgl64.Vec3{0, -1, 0}) || u.Max != (mgl64.Vec3{2, 1, 1}) {
		t.Errorf("Union: got %v", u)
	}
	if a.Union(Empty()) != a {
		t.Error("union with empty box should be identity")
	}
}

func TestTransform(t *testing.T) {
	b := FromPoints([]mgl64.Vec3{{-1, -1, -1}, {1, 1, 1}})
	moved := b.Transform(mgl64.Translate3D(10, 0, 0))

	if moved.Min != (mgl64.Vec3{9, -1, -1}) || moved.Max != (mgl64.Vec3{11, 1, 1}) {
		t.Errorf("Transform: got %v", moved)
	}
}

func TestWireframe(t *testing.T) {
	b := FromPoints([]mgl64.Vec3{{0, 0, 0}, {1, 2, 3}})
	v := b.Wireframe()

	if len(v) != WireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", WireframeVertexCount*3, len(v))
	}
	// First edge runs along X on the bottom face.
	if v[0] != 0 || v[3] != 1 || v[4] != 0 || v[5] != 0 {
		t.Errorf("unexpected first edge: %v", v[:6])
	}
}

func TestPad(t *testing.T) {
	b := FromPoints([]mgl64.Vec3{{0, 0, 0}}).Pad(1)
	if b.Min != (mgl64.Vec3{-1, -1, -1}) || b.Max != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Pad: got %v", b)
	}
	if !Empty().Pad(1).IsEmpty() {
		t.Error("padding an empty box should keep it empty")
	}
}
