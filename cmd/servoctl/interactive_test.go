package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func press(m interactiveModel, key string) interactiveModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(interactiveModel)
}

func TestInteractiveModel_ChannelKeys(t *testing.T) {
	s, mock := connectedSession(t)
	m := newInteractiveModel(s, 5)

	for _, key := range []string{"p", "p", "l", "j", "i", "x"} {
		m = press(m, key)
	}

	want := "0,95\n0,100\n1,85\n2,85\n3,95\n"
	if got := string(mock.WriteData); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
	if diff := cmp.Diff([4]int{100, 85, 85, 95}, s.Angles()); diff != "" {
		t.Errorf("angles mismatch (-want +got):\n%s", diff)
	}
}

func TestInteractiveModel_Step(t *testing.T) {
	s, mock := connectedSession(t)
	m := newInteractiveModel(s, 5)

	for i := 0; i < 30; i++ {
		m = press(m, "+")
	}
	if m.step != maxStep {
		t.Errorf("step = %d, want %d", m.step, maxStep)
	}

	m = press(m, "m")
	if got := s.Angle(1); got != 110 {
		t.Errorf("Angle(1) = %d, want 110", got)
	}

	for i := 0; i < 30; i++ {
		m = press(m, "-")
	}
	if m.step != minStep {
		t.Errorf("step = %d, want %d", m.step, minStep)
	}
	if got := string(mock.WriteData); got != "1,110\n" {
		t.Errorf("wrote %q, want only the servo move", got)
	}
}

func TestInteractiveModel_Clamps(t *testing.T) {
	s, mock := connectedSession(t)
	m := newInteractiveModel(s, 20)

	for i := 0; i < 6; i++ {
		m = press(m, "k")
	}

	if got := s.Angle(2); got != 180 {
		t.Errorf("Angle(2) = %d, want 180", got)
	}
	want := "2,110\n2,130\n2,150\n2,170\n2,180\n2,180\n"
	if got := string(mock.WriteData); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestInteractiveModel_ResetAndQuit(t *testing.T) {
	s, mock := connectedSession(t)
	m := newInteractiveModel(s, 5)

	m = press(m, "o")
	m = press(m, "r")

	want := "0,85\n0,90;1,90;2,90;3,90\n"
	if got := string(mock.WriteData); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(interactiveModel).quitting {
		t.Error("q did not quit")
	}
	if cmd == nil {
		t.Error("q returned no command")
	}
}

func TestInteractiveModel_LogLimit(t *testing.T) {
	s, _ := connectedSession(t)
	m := newInteractiveModel(s, 5)

	for i := 0; i < 10; i++ {
		m = press(m, "+")
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
}
