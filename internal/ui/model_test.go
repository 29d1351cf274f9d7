package ui

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/firstlight-app/firstlight/internal/api"
	"github.com/firstlight-app/firstlight/internal/model"
)

func testModel() *Model {
	client := api.New("http://localhost:3001", time.Second, zerolog.Nop())
	m := New(client, nil, zerolog.Nop())
	m.width = 120
	m.height = 40
	return m
}

func TestStaleStatsDiscarded(t *testing.T) {
	m := testModel()
	m.selectedID = "p2"
	m.fetchSeq = 3
	m.pending = 2

	// Response for the previously selected player arrives late.
	stale := &model.StatsBundle{TotalGames: 99}
	m.handleDataMsg(statsMsg{playerID: "p1", seq: 2, stats: stale})
	if m.serverStats != nil {
		t.Fatal("stale stats response was applied")
	}
	if m.pending != 1 {
		t.Errorf("pending = %d, want 1", m.pending)
	}

	fresh := &model.StatsBundle{TotalGames: 5}
	m.handleDataMsg(statsMsg{playerID: "p2", seq: 3, stats: fresh})
	if m.serverStats == nil || m.serverStats.TotalGames != 5 {
		t.Error("fresh stats response was not applied")
	}
}

func TestStaleEntriesDiscarded(t *testing.T) {
	m := testModel()
	m.selectedID = "p2"
	m.fetchSeq = 5
	m.pending = 1

	m.handleDataMsg(entriesMsg{playerID: "p2", seq: 4, entries: []model.GameEntry{{ID: "old"}}})
	if len(m.entries) != 0 {
		t.Fatal("stale entries response was applied")
	}

	m.pending = 1
	m.handleDataMsg(entriesMsg{playerID: "p2", seq: 5, entries: []model.GameEntry{{ID: "new"}}})
	if len(m.entries) != 1 || m.entries[0].ID != "new" {
		t.Error("fresh entries response was not applied")
	}
}

func TestDisplayStatsFallsBackToLocal(t *testing.T) {
	m := testModel()
	m.entries = []model.GameEntry{
		{WasFirstGoal: true, Situation: "EV", Period: "1", GameOutcome: "W", TimeInPeriod: "5:00"},
		{WasFirstGoal: false, Situation: "EV", Period: "2", GameOutcome: "L"},
	}

	local := m.displayStats()
	if local.TotalGames != 2 || local.FirstGoalCount != 1 {
		t.Errorf("local fallback wrong: %+v", local)
	}

	m.serverStats = &model.StatsBundle{TotalGames: 42}
	if got := m.displayStats(); got.TotalGames != 42 {
		t.Errorf("server bundle not preferred: %+v", got)
	}
}

func TestPlayerDeletedSelectsFirstRemaining(t *testing.T) {
	m := testModel()
	m.players = []model.Player{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	m.selectedID = "p2"
	m.serverStats = &model.StatsBundle{TotalGames: 1}
	m.entries = []model.GameEntry{{ID: "e1"}}

	m.handleDataMsg(playerDeletedMsg{id: "p2"})

	if len(m.players) != 2 {
		t.Fatalf("players = %d, want 2", len(m.players))
	}
	if m.selectedID != "p1" {
		t.Errorf("selectedID = %q, want p1", m.selectedID)
	}
	if m.serverStats != nil || len(m.entries) != 0 {
		t.Error("stale player data not cleared on delete")
	}
}

func TestLastPlayerDeletedClearsSelection(t *testing.T) {
	m := testModel()
	m.players = []model.Player{{ID: "p1"}}
	m.selectedID = "p1"

	m.handleDataMsg(playerDeletedMsg{id: "p1"})
	if m.selectedID != "" {
		t.Errorf("selectedID = %q, want empty", m.selectedID)
	}
}

func TestEntrySavedPrependsNew(t *testing.T) {
	m := testModel()
	m.selectedID = "p1"
	m.entries = []model.GameEntry{{ID: "e1"}}
	m.view = viewAddEntry

	m.handleDataMsg(entrySavedMsg{entry: model.GameEntry{ID: "e2"}, created: true})
	if len(m.entries) != 2 || m.entries[0].ID != "e2" {
		t.Errorf("new entry not prepended: %+v", m.entries)
	}
	if m.view != viewProfile {
		t.Error("view did not return to profile")
	}
}

func TestEntrySavedReplacesEdited(t *testing.T) {
	m := testModel()
	m.selectedID = "p1"
	m.entries = []model.GameEntry{{ID: "e1", Opponent: "FLA"}, {ID: "e2"}}

	m.handleDataMsg(entrySavedMsg{entry: model.GameEntry{ID: "e1", Opponent: "BOS"}})
	if m.entries[0].Opponent != "BOS" {
		t.Errorf("edited entry not replaced: %+v", m.entries[0])
	}
	if len(m.entries) != 2 {
		t.Errorf("entries = %d, want 2", len(m.entries))
	}
}

func TestCycleFilter(t *testing.T) {
	domain := []string{"EV", "PP"}
	tests := []struct {
		current string
		want    string
	}{
		{model.FilterAll, "EV"},
		{"EV", "PP"},
		{"PP", model.FilterAll},
		{"bogus", model.FilterAll},
	}
	for _, tt := range tests {
		if got := cycleFilter(tt.current, domain); got != tt.want {
			t.Errorf("cycleFilter(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestToastExpiry(t *testing.T) {
	m := testModel()
	cmd := m.pushToast("hello", toastInfo)
	if cmd == nil {
		t.Fatal("pushToast returned nil expiry command")
	}
	if len(m.toasts) != 1 {
		t.Fatalf("toasts = %d, want 1", len(m.toasts))
	}
	id := m.toasts[0].id

	m.pushToast("second", toastError)
	m.expireToast(id)
	if len(m.toasts) != 1 || m.toasts[0].text != "second" {
		t.Errorf("expiry removed the wrong toast: %+v", m.toasts)
	}
}
