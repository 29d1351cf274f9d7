package stats

import (
	"reflect"
	"testing"

	"github.com/firstlight-app/firstlight/internal/model"
)

func entry(mutate func(*model.GameEntry)) model.GameEntry {
	e := model.GameEntry{
		ID:           "e1",
		PlayerID:     "p1",
		Date:         "2026-01-15",
		Opponent:     "FLA",
		Period:       "1",
		TimeInPeriod: "08:00",
		Situation:    "EV",
		GameOutcome:  "W",
		WasFirstGoal: true,
		HomeAway:     "HOME",
	}
	if mutate != nil {
		mutate(&e)
	}
	return e
}

func TestPct(t *testing.T) {
	tests := []struct {
		name string
		n, d int
		want float64
	}{
		{name: "zero denominator", n: 5, d: 0, want: 0},
		{name: "zero numerator", n: 0, d: 10, want: 0},
		{name: "whole", n: 1, d: 2, want: 50},
		{name: "two thirds", n: 2, d: 3, want: 66.7},
		{name: "one third", n: 1, d: 3, want: 33.3},
		{name: "all", n: 7, d: 7, want: 100},
		{name: "one sixth", n: 1, d: 6, want: 16.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pct(tt.n, tt.d); got != tt.want {
				t.Errorf("Pct(%d, %d) = %v, want %v", tt.n, tt.d, got, tt.want)
			}
		})
	}
}

func TestComputeEmpty(t *testing.T) {
	b := Compute(nil)
	if b.TotalGames != 0 || b.FirstGoalCount != 0 {
		t.Fatalf("empty bundle has counts: %+v", b)
	}
	if b.FirstGoalPct != 0 || b.WinRateFirst != 0 || b.Period1FirstGoalPct != 0 {
		t.Errorf("empty bundle has nonzero rates: %+v", b)
	}
	if b.AvgTime != NoTimePlaceholder {
		t.Errorf("AvgTime = %q, want placeholder", b.AvgTime)
	}
	for _, s := range model.Situations {
		if _, ok := b.BySituation[s]; !ok {
			t.Errorf("bySituation missing key %q", s)
		}
		for _, p := range model.Periods {
			if _, ok := b.CrossTable[s][p]; !ok {
				t.Errorf("crossTable missing cell %s/%s", s, p)
			}
		}
	}
	for _, p := range model.Periods {
		if _, ok := b.ByPeriod[p]; !ok {
			t.Errorf("byPeriod missing key %q", p)
		}
	}
}

func TestComputeCountsSumToFirstGoals(t *testing.T) {
	entries := []model.GameEntry{
		entry(nil),
		entry(func(e *model.GameEntry) { e.Situation = "PP"; e.Period = "2" }),
		entry(func(e *model.GameEntry) { e.Situation = "SH"; e.Period = "OT"; e.GameOutcome = "OTL" }),
		entry(func(e *model.GameEntry) { e.Situation = "EN"; e.Period = "3" }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false; e.GameOutcome = "L" }),
	}
	b := Compute(entries)

	if b.TotalGames != 6 {
		t.Fatalf("TotalGames = %d, want 6", b.TotalGames)
	}
	if b.FirstGoalCount != 4 {
		t.Fatalf("FirstGoalCount = %d, want 4", b.FirstGoalCount)
	}

	sitSum := 0
	for _, s := range model.Situations {
		sitSum += b.BySituation[s].Count
	}
	if sitSum != b.FirstGoalCount {
		t.Errorf("bySituation counts sum to %d, want %d", sitSum, b.FirstGoalCount)
	}

	perSum := 0
	for _, p := range model.Periods {
		perSum += b.ByPeriod[p].Count
	}
	if perSum != b.FirstGoalCount {
		t.Errorf("byPeriod counts sum to %d, want %d", perSum, b.FirstGoalCount)
	}

	crossSum := 0
	for _, s := range model.Situations {
		for _, p := range model.Periods {
			crossSum += b.CrossTable[s][p]
		}
	}
	if crossSum != b.FirstGoalCount {
		t.Errorf("crossTable cells sum to %d, want %d", crossSum, b.FirstGoalCount)
	}
}

func TestComputeIgnoresNonOpeners(t *testing.T) {
	entries := []model.GameEntry{
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false; e.Situation = "PP"; e.GameOutcome = "W" }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false; e.Period = "OT" }),
	}
	b := Compute(entries)
	if b.FirstGoalCount != 0 {
		t.Fatalf("FirstGoalCount = %d, want 0", b.FirstGoalCount)
	}
	if b.WinRateFirst != 0 {
		t.Errorf("WinRateFirst = %v, want 0 with no openers", b.WinRateFirst)
	}
	if got := b.BySituation["PP"].Count; got != 0 {
		t.Errorf("bySituation[PP] = %d, want 0", got)
	}
	if b.AvgTime != NoTimePlaceholder {
		t.Errorf("AvgTime = %q, want placeholder", b.AvgTime)
	}
}

func TestComputeAvgTimeScenario(t *testing.T) {
	// Three openers at 5:30, 8:00, and 9:45 average to 7:45.
	entries := []model.GameEntry{
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "5:30" }),
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "8:00" }),
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "9:45" }),
	}
	b := Compute(entries)
	if b.AvgTime != "07:45" {
		t.Errorf("AvgTime = %q, want 07:45", b.AvgTime)
	}
}

func TestComputeAvgTimeSkipsUnknown(t *testing.T) {
	entries := []model.GameEntry{
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "4:00" }),
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "" }),
		entry(func(e *model.GameEntry) { e.TimeInPeriod = "bogus" }),
	}
	b := Compute(entries)
	if b.AvgTime != "04:00" {
		t.Errorf("AvgTime = %q, want 04:00 (unknown times excluded)", b.AvgTime)
	}
}

func TestComputeRatesScenario(t *testing.T) {
	// Six games, four openers, two opener wins.
	entries := []model.GameEntry{
		entry(func(e *model.GameEntry) { e.GameOutcome = "W" }),
		entry(func(e *model.GameEntry) { e.GameOutcome = "SOW" }),
		entry(func(e *model.GameEntry) { e.GameOutcome = "L" }),
		entry(func(e *model.GameEntry) { e.GameOutcome = "OTL" }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false }),
	}
	b := Compute(entries)
	if b.FirstGoalPct != 66.7 {
		t.Errorf("FirstGoalPct = %v, want 66.7", b.FirstGoalPct)
	}
	if b.WinRateFirst != 50 {
		t.Errorf("WinRateFirst = %v, want 50", b.WinRateFirst)
	}
}

func TestComputePeriod1Share(t *testing.T) {
	entries := []model.GameEntry{
		entry(func(e *model.GameEntry) { e.Period = "1" }),
		entry(func(e *model.GameEntry) { e.Period = "1" }),
		entry(func(e *model.GameEntry) { e.Period = "2" }),
		entry(func(e *model.GameEntry) { e.Period = "OT" }),
	}
	b := Compute(entries)
	if b.Period1FirstGoalPct != 50 {
		t.Errorf("Period1FirstGoalPct = %v, want 50", b.Period1FirstGoalPct)
	}
	if got := b.CrossTable["EV"]["OT"]; got != 1 {
		t.Errorf("crossTable[EV][OT] = %d, want 1", got)
	}
}

func TestComputeIdempotent(t *testing.T) {
	entries := []model.GameEntry{
		entry(nil),
		entry(func(e *model.GameEntry) { e.Situation = "PP"; e.Period = "3"; e.GameOutcome = "OTW" }),
		entry(func(e *model.GameEntry) { e.WasFirstGoal = false }),
	}
	first := Compute(entries)
	second := Compute(entries)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compute not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestComputeStreakFallback(t *testing.T) {
	b := Compute([]model.GameEntry{entry(nil)})
	if b.Streak != 0 {
		t.Errorf("Streak = %d, want 0 in local fallback", b.Streak)
	}
}
