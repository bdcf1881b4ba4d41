package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"beatdash/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w jumps", runeKey('w'), core.ActionJump, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"t changes difficulty", runeKey('t'), core.ActionChangeDiff, false},
		{"esc backs out", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key is none", runeKey('x'), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, isQuit := km.MapKey(tt.msg)
			if action != tt.want {
				t.Errorf("MapKey(%q) action = %v, want %v", tt.msg.String(), action, tt.want)
			}
			if isQuit != tt.wantQuit {
				t.Errorf("MapKey(%q) isQuit = %v, want %v", tt.msg.String(), isQuit, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace}, &frame)
	km.MapKeyToFrame(runeKey('p'), &frame)

	if !frame.Has(core.ActionJump) {
		t.Errorf("frame missing jump")
	}
	if !frame.Has(core.ActionPause) {
		t.Errorf("frame missing pause")
	}
	if frame.Has(core.ActionRestart) {
		t.Errorf("frame has restart that was never pressed")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionJump) {
		t.Errorf("left click should request a jump")
	}

	frame.Clear()
	km.MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, &frame)
	if frame.Has(core.ActionJump) {
		t.Errorf("button release must not request a jump")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
