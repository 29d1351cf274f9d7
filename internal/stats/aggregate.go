// Package stats computes derived first-goal statistics and reports.
package stats

import (
	"math"

	"github.com/firstlight-app/firstlight/internal/model"
)

// NoTimePlaceholder is rendered when no first-goal entry has a known
// time in period.
const NoTimePlaceholder = "—"

// Pct returns n/d as a percentage rounded to one decimal place. A zero
// denominator yields 0, never NaN: callers render the value unconditionally.
func Pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(d)*1000) / 10
}

// Compute derives a StatsBundle from a player's entry collection. It is
// the local fallback for the server-computed bundle: deterministic, no
// side effects, full recomputation on every call.
//
// Only entries with WasFirstGoal contribute to bySituation, byPeriod,
// the cross table, winRateFirst, period1FirstGoalPct, and avgTime.
// bySituation's PctOfAllGames is the one figure measured against the
// full entry set.
func Compute(entries []model.GameEntry) model.StatsBundle {
	total := len(entries)
	goals := make([]model.GameEntry, 0, total)
	for _, e := range entries {
		if e.WasFirstGoal {
			goals = append(goals, e)
		}
	}
	n := len(goals)

	bySituation := make(map[string]model.SituationBreakdown, len(model.Situations))
	crossTable := make(map[string]map[string]int, len(model.Situations))
	for _, s := range model.Situations {
		count := 0
		row := make(map[string]int, len(model.Periods))
		for _, p := range model.Periods {
			row[p] = 0
		}
		for _, g := range goals {
			if g.Situation != s {
				continue
			}
			count++
			if _, ok := row[g.Period]; ok {
				row[g.Period]++
			}
		}
		bySituation[s] = model.SituationBreakdown{
			Count:           count,
			PctOfFirstGoals: Pct(count, n),
			PctOfAllGames:   Pct(count, total),
		}
		crossTable[s] = row
	}

	byPeriod := make(map[string]model.PeriodBreakdown, len(model.Periods))
	for _, p := range model.Periods {
		count := 0
		for _, g := range goals {
			if g.Period == p {
				count++
			}
		}
		byPeriod[p] = model.PeriodBreakdown{
			Count:           count,
			PctOfFirstGoals: Pct(count, n),
		}
	}

	wins := 0
	for _, g := range goals {
		if model.IsWin(g.GameOutcome) {
			wins++
		}
	}

	timedSum := 0
	timedCount := 0
	for _, g := range goals {
		if secs, ok := model.ParseClock(g.TimeInPeriod); ok {
			timedSum += secs
			timedCount++
		}
	}
	avgTime := NoTimePlaceholder
	if timedCount > 0 {
		avgTime = model.FormatClock(int(math.Round(float64(timedSum) / float64(timedCount))))
	}

	return model.StatsBundle{
		TotalGames:          total,
		FirstGoalCount:      n,
		FirstGoalPct:        Pct(n, total),
		BySituation:         bySituation,
		ByPeriod:            byPeriod,
		CrossTable:          crossTable,
		WinRateFirst:        Pct(wins, n),
		Period1FirstGoalPct: Pct(byPeriod["1"].Count, n),
		AvgTime:             avgTime,
		// Streak needs the full game history ordering the server holds;
		// the fallback reports 0.
		Streak: 0,
	}
}
