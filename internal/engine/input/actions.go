package input

import "github.com/veandco/go-sdl2/sdl"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionOffsetUp
	ActionOffsetDown
	ActionToggleBounds
	ActionToggleWorldSpace
	ActionFrameAll
	ActionDeselect
	ActionSave
	ActionCycleFaces
	ActionScreenshot
)

var actionNames = [...]string{
	ActionNone:             "none",
	ActionQuit:             "quit",
	ActionOffsetUp:         "offset+",
	ActionOffsetDown:       "offset-",
	ActionToggleBounds:     "toggle-bounds",
	ActionToggleWorldSpace: "toggle-world-space",
	ActionFrameAll:         "frame-all",
	ActionDeselect:         "deselect",
	ActionSave:             "save",
	ActionCycleFaces:       "cycle-faces",
	ActionScreenshot:       "screenshot",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Bindings maps key scancodes to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns the viewer key map.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE:   ActionQuit,
		sdl.SCANCODE_EQUALS:   ActionOffsetUp,
		sdl.SCANCODE_KP_PLUS:  ActionOffsetUp,
		sdl.SCANCODE_MINUS:    ActionOffsetDown,
		sdl.SCANCODE_KP_MINUS: ActionOffsetDown,
		sdl.SCANCODE_B:        ActionToggleBounds,
		sdl.SCANCODE_W:        ActionToggleWorldSpace,
		sdl.SCANCODE_F:        ActionFrameAll,
		sdl.SCANCODE_D:        ActionDeselect,
		sdl.SCANCODE_S:        ActionSave,
		sdl.SCANCODE_TAB:      ActionCycleFaces,
		sdl.SCANCODE_P:        ActionScreenshot,
	}
}

// Actions returns the actions triggered by key presses in events, in order.
func (b Bindings) Actions(events []Event) []Action {
	var out []Action
	for _, e := range events {
		if e.Type != EventKeyDown {
			continue
		}
		if a, ok := b[e.Key]; ok {
			out = append(out, a)
		}
	}
	return out
}
