package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/voicehop/internal/registry"
)

func sessionStep(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestMenuListsRegisteredGames(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	if len(m.items) != len(registry.List()) {
		t.Fatalf("menu has %d items, registry has %d", len(m.items), len(registry.List()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := next.(MenuModel).Result()
	if len(m.items) > 1 && res.GameID != m.items[1].GameID {
		t.Errorf("selected %q, want %q", res.GameID, m.items[1].GameID)
	}
}

func TestMenuResultScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).Result().WantsScoreboard {
		t.Error("tab did not request the scoreboard")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(MenuModel).Result().Quit {
		t.Error("q did not quit the menu")
	}
}

func TestSessionMenuGameMenu(t *testing.T) {
	m := NewSessionModel(SessionOptions{Player: "guest"}, testConfig())
	if m.InGame() {
		t.Fatal("session started in a game")
	}

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter on the menu did not start a game")
	}
	if m.View() == "" {
		t.Error("empty view in game")
	}

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InGame() {
		t.Error("esc on the splash did not return to the menu")
	}
	if m.quitting {
		t.Error("returning to the menu quit the session")
	}
}

func TestSessionDirectGameAndScoreboard(t *testing.T) {
	m := NewSessionModel(SessionOptions{GameID: "hop"}, testConfig())
	if !m.InGame() {
		t.Fatal("GameID did not skip the menu")
	}

	m = NewSessionModel(SessionOptions{}, testConfig())
	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scores == nil {
		t.Fatal("tab did not open the scoreboard")
	}
	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scores != nil {
		t.Error("esc did not close the scoreboard")
	}
}
