package proxy

import (
	"go.uber.org/zap"
)

// EvalContext identifies the kind of evaluation pass a batch of dirty
// plugs comes from.
type EvalContext int

// Evaluation contexts.
const (
	// EvalNormal is the interactive evaluation that feeds the viewport.
	EvalNormal EvalContext = iota
	// EvalBackground is evaluation for caching or other off-screen work.
	EvalBackground
	// EvalProxy is evaluation of a proxy context, such as a preview frame.
	EvalProxy
)

// IsNormal reports whether c feeds the viewport.
func (c EvalContext) IsNormal() bool { return c == EvalNormal }

// Tracker turns parameter changes into draw invalidations.
//
// Every relevant change bumps a generation counter; consumers compare the
// generation they last built against with Generation. Any number of bumps
// between two draws therefore cost a single recomputation.
type Tracker struct {
	generation uint64
	notify     func()
	log        *zap.Logger
}

// NewTracker returns a tracker. notify, if non-nil, is called whenever
// draw data becomes stale so the host can schedule a redraw.
func NewTracker(notify func(), log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{notify: notify, log: log}
}

// IsRelevant reports whether p contributes to draw data.
func (t *Tracker) IsRelevant(p Plug) bool {
	return p.AffectsDraw()
}

// Generation returns the current input generation.
func (t *Tracker) Generation() uint64 {
	return t.generation
}

// SetDependentsDirty handles a single parameter change. It returns true
// when the change invalidated draw data.
func (t *Tracker) SetDependentsDirty(p Plug) bool {
	if !t.IsRelevant(p) {
		return false
	}
	t.invalidate()
	t.log.Debug("draw dirty", zap.Stringer("plug", p), zap.Uint64("generation", t.generation))
	return true
}

// PreEvaluation handles the plugs dirtied in one evaluation pass. Only
// normal contexts invalidate, and a pass invalidates at most once no
// matter how many relevant plugs it carries.
func (t *Tracker) PreEvaluation(ctx EvalContext, dirty []Plug) bool {
	if !ctx.IsNormal() {
		return false
	}
	for _, p := range dirty {
		if t.IsRelevant(p) {
			t.invalidate()
			t.log.Debug("draw dirty from evaluation",
				zap.Stringer("first", p),
				zap.Int("plugs", len(dirty)),
				zap.Uint64("generation", t.generation),
			)
			return true
		}
	}
	return false
}

func (t *Tracker) invalidate() {
	t.generation++
	if t.notify != nil {
		t.notify()
	}
}
