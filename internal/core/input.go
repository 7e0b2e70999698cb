package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, H - shift piece left
	ActionRight          // Right arrow, L - shift piece right
	ActionDown           // Down arrow, J - soft drop one row
	ActionRotate         // Up arrow, K - rotate counter-clockwise
	ActionDrop           // Space - drop until blocked
	ActionPause          // P, Esc - pause/resume
	ActionRestart        // R - restart in any state
	ActionQuit           // Q, Ctrl+C - exit
)

// actionOrder is the order in which a frame's actions are applied.
// Restart and pause go first so that moves in the same frame see the new status.
var actionOrder = []Action{
	ActionRestart,
	ActionPause,
	ActionRotate,
	ActionLeft,
	ActionRight,
	ActionDown,
	ActionDrop,
	ActionQuit,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of String. Unknown names map to ActionNone.
func ParseAction(s string) Action {
	for _, a := range actionOrder {
		if a.String() == s {
			return a
		}
	}
	return ActionNone
}

// InputFrame represents the input state for a single player during one frame.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	for _, set := range f.Actions {
		if set {
			return false
		}
	}
	return true
}

// Ordered returns the triggered actions in application order.
func (f InputFrame) Ordered() []Action {
	var out []Action
	for _, a := range actionOrder {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
