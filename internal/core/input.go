package core

// Action represents a semantic game action, abstracted from physical key
// presses. The platform maps keys (and mouse clicks) to actions; the
// simulation only ever sees actions.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, Up, W, left click - request a jump
	ActionPause             // P - pause/unpause the run
	ActionRestart           // R after death - restart with the same level
	ActionChangeDiff        // T after death - back to difficulty selection
	ActionBack              // Esc - abandon the run, back to the menu
	ActionQuit              // Q, Ctrl+C - exit the application
	ActionConfirm           // Enter - confirm selection in menus
	ActionUp                // menu navigation
	ActionDown              // menu navigation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionChangeDiff:
		return "ChangeDifficulty"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionConfirm:
		return "Confirm"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
