package tui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     map[string]core.Action
	bindings map[core.Action][]string // sorted key names per action
}

// NewKeyMapper creates a key mapper from a key name -> action table, as
// produced by config.InputConfig.KeyMap.
func NewKeyMapper(keys map[string]core.Action) *KeyMapper {
	km := &KeyMapper{
		keys:     make(map[string]core.Action, len(keys)),
		bindings: make(map[core.Action][]string),
	}
	for k, a := range keys {
		km.keys[k] = a
		km.bindings[a] = append(km.bindings[a], k)
	}
	for _, ks := range km.bindings {
		sort.Strings(ks)
	}
	return km
}

// DefaultKeyMapper returns the mapper for the built-in bindings.
func DefaultKeyMapper() *KeyMapper {
	keys, err := config.DefaultBlocksConfig().Input.KeyMap()
	if err != nil {
		panic("tui: default bindings are invalid: " + err.Error())
	}
	return NewKeyMapper(keys)
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	a, ok := km.keys[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return a, a == core.ActionQuit
}

// Keys returns the key names bound to an action.
func (km *KeyMapper) Keys(a core.Action) []string {
	return km.bindings[a]
}

// Binding returns a bubbles key binding for an action, labelled for help.
func (km *KeyMapper) Binding(a core.Action, desc string) key.Binding {
	ks := km.Keys(a)
	if len(ks) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	labels := make([]string, 0, len(ks))
	for _, k := range ks {
		if l := keyLabel(k); !slices.Contains(labels, l) {
			labels = append(labels, l)
		}
	}
	return key.NewBinding(
		key.WithKeys(ks...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

func keyLabel(k string) string {
	switch k {
	case " ", "space":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return k
}

// GameKeyMap is the in-game help shown below the playfield.
type GameKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	SoftDrop    key.Binding
	HardDrop    key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// GameKeys builds the help key map from the current bindings.
func (km *KeyMapper) GameKeys() GameKeyMap {
	return GameKeyMap{
		Left:        km.Binding(core.ActionMoveLeft, "left"),
		Right:       km.Binding(core.ActionMoveRight, "right"),
		RotateLeft:  km.Binding(core.ActionRotateLeft, "rotate ccw"),
		RotateRight: km.Binding(core.ActionRotateRight, "rotate cw"),
		SoftDrop:    km.Binding(core.ActionSoftDrop, "soft drop"),
		HardDrop:    km.Binding(core.ActionHardDrop, "hard drop"),
		Pause:       km.Binding(core.ActionPause, "pause"),
		Restart:     km.Binding(core.ActionRestart, "restart"),
		Back:        km.Binding(core.ActionBack, "menu"),
		Quit:        km.Binding(core.ActionQuit, "quit"),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateLeft, k.RotateRight, k.HardDrop, k.Pause}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.RotateLeft, k.RotateRight},
		{k.SoftDrop, k.HardDrop, k.Pause},
		{k.Restart, k.Back, k.Quit},
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Menu keys are fixed
// and independent of the game bindings.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
