package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games read actions from an InputFrame and never see raw key names.
type Action int

const (
	ActionNone        Action = iota
	ActionRotateLeft         // E, Z - rotate counter-clockwise
	ActionRotateRight        // Q, X, Up - rotate clockwise
	ActionMoveLeft           // A, Left - nudge left while held
	ActionMoveRight          // D, Right - nudge right while held
	ActionSoftDrop           // S, Down - step down while held
	ActionHardDrop           // W, Space - drop to the lowest legal row
	ActionPause              // P - pause/unpause game
	ActionRestart            // R - restart game
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionQuit               // Ctrl+C - exit game/session

	actionCount
)

// actionNames is indexed by Action. Names double as config binding keys.
var actionNames = [actionCount]string{
	ActionNone:        "none",
	ActionRotateLeft:  "rotate_left",
	ActionRotateRight: "rotate_right",
	ActionMoveLeft:    "move_left",
	ActionMoveRight:   "move_right",
	ActionSoftDrop:    "soft_drop",
	ActionHardDrop:    "hard_drop",
	ActionPause:       "pause",
	ActionRestart:     "restart",
	ActionConfirm:     "confirm",
	ActionBack:        "back",
	ActionQuit:        "quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Valid reports whether a is a real action (not ActionNone or out of range).
func (a Action) Valid() bool {
	return a > ActionNone && a < actionCount
}

// ParseAction resolves a config name such as "hard_drop" to its Action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if Action(i) != ActionNone && n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Actions returns every valid action in enum order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionNone + 1; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// KeyState is the per-tick view of one action.
// Held is the level (key is down), JustPressed is the edge (first tick held).
type KeyState struct {
	Held        bool
	JustPressed bool
}

// InputFrame represents the input state for a single simulation tick.
// It is a fixed table keyed by Action, so it can be copied by value.
type InputFrame struct {
	keys [actionCount]KeyState
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as pressed this frame (held and on its press edge).
func (f *InputFrame) Set(a Action) {
	f.SetState(a, KeyState{Held: true, JustPressed: true})
}

// SetState stores an explicit key state for an action.
func (f *InputFrame) SetState(a Action, s KeyState) {
	if !a.Valid() {
		return
	}
	f.keys[a] = s
}

// State returns the key state for an action.
func (f InputFrame) State(a Action) KeyState {
	if !a.Valid() {
		return KeyState{}
	}
	return f.keys[a]
}

// Held returns true if the action is held this frame.
func (f InputFrame) Held(a Action) bool {
	return f.State(a).Held
}

// JustPressed returns true if this is the first frame the action is held.
func (f InputFrame) JustPressed(a Action) bool {
	return f.State(a).JustPressed
}

// Has returns true if the action was triggered this frame.
// Alias of JustPressed for one-shot host actions (restart, back, confirm).
func (f InputFrame) Has(a Action) bool {
	return f.JustPressed(a)
}

// Empty reports whether no action is held.
func (f InputFrame) Empty() bool {
	for _, s := range f.keys {
		if s.Held {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.keys = [actionCount]KeyState{}
}
