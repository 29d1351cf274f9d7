package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/firstlight-app/firstlight/internal/model"
)

const barWidth = 24

// FormatPct renders a percentage with one decimal place.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// RenderReport prints a full plain-text stats report for a player.
func RenderReport(w io.Writer, player model.Player, bundle model.StatsBundle, entries []model.GameEntry) error {
	if err := RenderSummary(w, player, bundle); err != nil {
		return err
	}
	if err := RenderBreakdowns(w, bundle); err != nil {
		return err
	}
	if err := RenderCrossTable(w, bundle); err != nil {
		return err
	}
	return RenderGameLog(w, entries)
}

// RenderSummary prints the headline numbers for a player.
func RenderSummary(w io.Writer, player model.Player, bundle model.StatsBundle) error {
	title := player.Name
	if player.Team != "" {
		title += " · " + player.Team
	}
	if player.JerseyNumber != "" {
		title += " #" + player.JerseyNumber
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("Games logged:   %d", bundle.TotalGames),
		fmt.Sprintf("First goals:    %d", bundle.FirstGoalCount),
		fmt.Sprintf("First goal %%:   %s", FormatPct(bundle.FirstGoalPct)),
		fmt.Sprintf("Win when opens: %s", FormatPct(bundle.WinRateFirst)),
		fmt.Sprintf("Avg open time:  %s", bundle.AvgTime),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBreakdowns prints first goals by situation and by period.
func RenderBreakdowns(w io.Writer, bundle model.StatsBundle) error {
	if _, err := fmt.Fprintln(w, "First Goals by Situation"); err != nil {
		return err
	}
	sitRows := make([][]string, 0, len(model.Situations))
	for _, s := range model.Situations {
		d := bundle.BySituation[s]
		sitRows = append(sitRows, []string{
			model.SituationLabels[s],
			fmt.Sprintf("%d", d.Count),
			FormatPct(d.PctOfFirstGoals),
			FormatPct(d.PctOfAllGames),
			bar(d.Count, bundle.FirstGoalCount),
		})
	}
	headers := []string{"Situation", "Count", "Of openers", "Of all games", ""}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, sitRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "First Goals by Period"); err != nil {
		return err
	}
	periodRows := make([][]string, 0, len(model.Periods))
	for _, p := range model.Periods {
		d := bundle.ByPeriod[p]
		periodRows = append(periodRows, []string{
			periodLabel(p),
			fmt.Sprintf("%d", d.Count),
			FormatPct(d.PctOfFirstGoals),
			bar(d.Count, bundle.FirstGoalCount),
		})
	}
	for _, line := range formatTable([]string{"Period", "Count", "Of openers", ""}, periodRows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "P1 openers: %s\n\n", FormatPct(bundle.Period1FirstGoalPct)); err != nil {
		return err
	}
	return nil
}

// RenderCrossTable prints the situation × period grid of first goals.
func RenderCrossTable(w io.Writer, bundle model.StatsBundle) error {
	if _, err := fmt.Fprintln(w, "Situation × Period"); err != nil {
		return err
	}
	headers := []string{"Situation"}
	for _, p := range model.Periods {
		headers = append(headers, "P"+p)
	}
	headers = append(headers, "Total", "%")

	rows := make([][]string, 0, len(model.Situations))
	for _, s := range model.Situations {
		row := []string{model.SituationLabels[s]}
		total := 0
		for _, p := range model.Periods {
			count := bundle.CrossTable[s][p]
			total += count
			if count == 0 {
				row = append(row, NoTimePlaceholder)
			} else {
				row = append(row, fmt.Sprintf("%d", count))
			}
		}
		row = append(row, fmt.Sprintf("%d", total))
		if bundle.FirstGoalCount > 0 {
			row = append(row, FormatPct(Pct(total, bundle.FirstGoalCount)))
		} else {
			row = append(row, NoTimePlaceholder)
		}
		rows = append(rows, row)
	}

	rightAlign := map[int]bool{}
	for i := 1; i < len(headers); i++ {
		rightAlign[i] = true
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderGameLog prints the entry list, most recent first.
func RenderGameLog(w io.Writer, entries []model.GameEntry) error {
	ordered := Filter(entries, model.FilterAll, model.FilterAll)
	if _, err := fmt.Fprintf(w, "Game Log (%d)\n", len(ordered)); err != nil {
		return err
	}
	if len(ordered) == 0 {
		_, err := fmt.Fprintln(w, "No entries.")
		return err
	}
	rows := make([][]string, 0, len(ordered))
	for _, e := range ordered {
		opener := ""
		if e.WasFirstGoal {
			opener = "OPENER"
		}
		timeCell := e.TimeInPeriod
		if _, ok := model.ParseClock(e.TimeInPeriod); !ok {
			timeCell = NoTimePlaceholder
		}
		homeAway := "H"
		if e.HomeAway == "AWAY" {
			homeAway = "A"
		}
		rows = append(rows, []string{
			model.DateOnly(e.Date),
			"vs " + e.Opponent,
			"P" + e.Period,
			timeCell,
			e.Situation,
			e.GameOutcome,
			homeAway,
			opener,
			e.Notes,
		})
	}
	headers := []string{"Date", "Opponent", "Per", "Time", "Sit", "Result", "H/A", "", "Notes"}
	for _, line := range formatTable(headers, rows, map[int]bool{3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func periodLabel(p string) string {
	if p == "OT" {
		return "Overtime"
	}
	return "Period " + p
}

func bar(count, total int) string {
	if total <= 0 || count <= 0 {
		return ""
	}
	n := count * barWidth / total
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
