package stats

import (
	"strings"
	"testing"

	"github.com/firstlight-app/firstlight/internal/model"
)

func TestRenderSummary(t *testing.T) {
	player := model.Player{Name: "Josh Doan", Team: "BUF", JerseyNumber: "91"}
	bundle := Compute([]model.GameEntry{
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "7:45" }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false }),
	})

	var sb strings.Builder
	if err := RenderSummary(&sb, player, bundle); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		"Josh Doan · BUF #91",
		"Games logged:   2",
		"First goals:    1",
		"50.0%",
		"07:45",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCrossTablePlaceholders(t *testing.T) {
	bundle := Compute(nil)
	var sb strings.Builder
	if err := RenderCrossTable(&sb, bundle); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, NoTimePlaceholder) {
		t.Errorf("empty cells not rendered as placeholder:\n%s", out)
	}
	if !strings.Contains(out, "Situation × Period") {
		t.Errorf("missing header:\n%s", out)
	}
}

func TestRenderGameLogEmpty(t *testing.T) {
	var sb strings.Builder
	if err := RenderGameLog(&sb, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "No entries.") {
		t.Errorf("empty log not handled:\n%s", sb.String())
	}
}

func TestRenderGameLogMarksUnknownTime(t *testing.T) {
	entries := []model.GameEntry{
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "" }),
	}
	var sb strings.Builder
	if err := RenderGameLog(&sb, entries); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), NoTimePlaceholder) {
		t.Errorf("unknown time not rendered as placeholder:\n%s", sb.String())
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(66.7); got != "66.7%" {
		t.Errorf("FormatPct = %q, want 66.7%%", got)
	}
	if got := FormatPct(0); got != "0.0%" {
		t.Errorf("FormatPct = %q, want 0.0%%", got)
	}
}
