package proxy

import "testing"

func TestPlugRelevance(t *testing.T) {
	relevant := []Plug{
		PlugMesh, PlugMeshFaces, PlugMeshMatrix, PlugFacesOffset,
		PlugLocalTranslate, PlugLocalTranslateX, PlugLocalTranslateY, PlugLocalTranslateZ,
		PlugLocalRotate, PlugLocalRotateX, PlugLocalRotateY, PlugLocalRotateZ,
		PlugLocalScale, PlugLocalScaleX, PlugLocalScaleY, PlugLocalScaleZ,
		PlugColor, PlugOpacity, PlugSelectionOpacity, PlugMeshInWorldSpace,
	}
	for _, p := range relevant {
		if !p.AffectsDraw() {
			t.Errorf("%s should affect draw", p)
		}
	}

	for _, p := range []Plug{PlugNone, PlugHideOnPlayback, PlugVisibility, Plug(-1), plugCount} {
		if p.AffectsDraw() {
			t.Errorf("%s should not affect draw", p)
		}
	}
}

func TestPlugNames(t *testing.T) {
	all := Plugs()
	if len(all) != int(plugCount)-1 || all[0] != PlugMesh || all[len(all)-1] != PlugVisibility {
		t.Fatalf("Plugs() = %v", all)
	}
	for _, p := range all {
		got, ok := ParsePlug(p.String())
		if !ok || got != p {
			t.Errorf("ParsePlug(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePlug("bogus"); ok {
		t.Error("unknown name should not parse")
	}
	if got := Plug(99).String(); got != "Plug(99)" {
		t.Errorf("out of range String: %q", got)
	}
}

func TestPlugParent(t *testing.T) {
	tests := []struct {
		plug, parent Plug
	}{
		{PlugLocalTranslateY, PlugLocalTranslate},
		{PlugLocalRotateZ, PlugLocalRotate},
		{PlugLocalScaleX, PlugLocalScale},
		{PlugLocalScale, PlugNone},
		{PlugOpacity, PlugNone},
	}
	for _, tt := range tests {
		if got := tt.plug.Parent(); got != tt.parent {
			t.Errorf("%s.Parent() = %s, want %s", tt.plug, got, tt.parent)
		}
	}
	if got := PlugLocalRotate.child(AxisY); got != PlugLocalRotateY {
		t.Errorf("child: got %s", got)
	}
}

func TestSetDependentsDirty(t *testing.T) {
	notified := 0
	tr := NewTracker(func() { notified++ }, nil)

	if tr.SetDependentsDirty(PlugVisibility) {
		t.Error("visibility should not dirty draw data")
	}
	if tr.Generation() != 0 || notified != 0 {
		t.Errorf("irrelevant change bumped state: gen %d, notified %d", tr.Generation(), notified)
	}

	if !tr.SetDependentsDirty(PlugLocalScaleZ) {
		t.Error("scale child should dirty draw data")
	}
	if !tr.SetDependentsDirty(PlugFacesOffset) {
		t.Error("offset should dirty draw data")
	}
	if tr.Generation() != 2 || notified != 2 {
		t.Errorf("got gen %d, notified %d, want 2, 2", tr.Generation(), notified)
	}
}

func TestPreEvaluation(t *testing.T) {
	notified := 0
	tr := NewTracker(func() { notified++ }, nil)

	tests := []struct {
		name    string
		ctx     EvalContext
		dirty   []Plug
		want    bool
		wantGen uint64
	}{
		{"empty pass", EvalNormal, nil, false, 0},
		{"irrelevant only", EvalNormal, []Plug{PlugVisibility, PlugHideOnPlayback}, false, 0},
		{"background ignored", EvalBackground, []Plug{PlugMesh, PlugColor}, false, 0},
		{"proxy ignored", EvalProxy, []Plug{PlugMesh}, false, 0},
		{"many relevant once", EvalNormal, []Plug{PlugMesh, PlugColor, PlugLocalRotateX, PlugOpacity}, true, 1},
		{"mixed", EvalNormal, []Plug{PlugVisibility, PlugMeshMatrix}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.PreEvaluation(tt.ctx, tt.dirty); got != tt.want {
				t.Errorf("PreEvaluation = %v, want %v", got, tt.want)
			}
			if tr.Generation() != tt.wantGen {
				t.Errorf("generation = %d, want %d", tr.Generation(), tt.wantGen)
			}
		})
	}
	if notified != 2 {
		t.Errorf("notified %d times, want 2", notified)
	}
}
