package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDefaultKeyMapper(t *testing.T) {
	km := DefaultKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a moves left", runeKey("a"), core.ActionMoveLeft, false},
		{"arrow moves right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, false},
		{"e rotates left", runeKey("e"), core.ActionRotateLeft, false},
		{"up rotates right", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateRight, false},
		{"space hard drops", runeKey(" "), core.ActionHardDrop, false},
		{"s soft drops", runeKey("s"), core.ActionSoftDrop, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runeKey("1"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %s, %v; expected %s, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestKeyMapperCustomBindings(t *testing.T) {
	km := NewKeyMapper(map[string]core.Action{
		"h": core.ActionMoveLeft,
		"l": core.ActionMoveRight,
		"q": core.ActionQuit,
	})

	if a, _ := km.MapKey(runeKey("h")); a != core.ActionMoveLeft {
		t.Errorf("h mapped to %s", a)
	}
	if a, _ := km.MapKey(runeKey("a")); a != core.ActionNone {
		t.Errorf("default binding leaked into custom mapper: %s", a)
	}
	if _, quit := km.MapKey(runeKey("q")); !quit {
		t.Error("q should quit with custom bindings")
	}
}

func TestKeyMapperHelpBindings(t *testing.T) {
	km := DefaultKeyMapper()

	drop := km.Binding(core.ActionHardDrop, "hard drop")
	if got := drop.Help().Key; got != "space/w" {
		t.Errorf("hard drop help key = %q, expected %q", got, "space/w")
	}
	if !drop.Enabled() {
		t.Error("bound action should be enabled")
	}

	empty := NewKeyMapper(nil).Binding(core.ActionPause, "pause")
	if empty.Enabled() {
		t.Error("unbound action should be disabled in help")
	}

	keys := km.GameKeys()
	if len(keys.ShortHelp()) == 0 || len(keys.FullHelp()) != 3 {
		t.Error("game help should list bindings")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := DefaultKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.msg.String(), got, tc.want)
		}
	}
}
