package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/firstlight-app/firstlight/internal/model"
	"github.com/firstlight-app/firstlight/internal/stats"
)

const (
	sidebarWidth = 26
	breakdownBar = 18
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.view {
	case viewBooting:
		return m.viewBooting()
	case viewAuth:
		return m.viewAuth()
	case viewAddEntry:
		return m.viewCentered(m.entryForm.render())
	case viewAddPlayer:
		return m.viewCentered(m.playerForm.render())
	case viewImport:
		return m.viewImport()
	default:
		return m.viewProfile()
	}
}

func (m *Model) viewBooting() string {
	content := m.spin.View() + " " + mutedStyle.Render("Connecting...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("⚡ FIRSTLIGHT"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("First goal tracking"))
	b.WriteString("\n\n")
	b.WriteString(m.authForm.render())
	b.WriteString("\n\n")
	toggle := "ctrl+r: create an account"
	if m.registerMode {
		toggle = "ctrl+r: back to sign in"
	}
	b.WriteString(headerStyle.Render(toggle))
	box := cardStyle.Render(b.String())
	return m.overlayToasts(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box))
}

func (m *Model) viewCentered(content string) string {
	box := cardStyle.Render(content)
	return m.overlayToasts(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box))
}

func (m *Model) viewImport() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("IMPORT FROM NHL"))
	b.WriteString("\n\n")
	b.WriteString(m.importInput.View())
	b.WriteString("\n\n")
	switch {
	case m.importBusy:
		b.WriteString(m.spin.View() + " " + mutedStyle.Render("Working..."))
	case len(m.importResults) > 0:
		for i, r := range m.importResults {
			marker := "  "
			style := playerStyle
			if i == m.importCursor {
				marker = titleStyle.Render("> ")
				style = selectedPlayerStyle
			}
			line := fmt.Sprintf("%s · %s %s", r.Name, r.Team, r.Position)
			b.WriteString(marker + style.Render(truncateCell(line, 48)) + "\n")
		}
		b.WriteString("\n" + headerStyle.Render("enter: link and import  esc: cancel"))
	default:
		b.WriteString(headerStyle.Render("enter: search  esc: cancel"))
	}
	return m.viewCentered(b.String())
}

func (m *Model) viewProfile() string {
	if m.confirmDelete {
		return m.confirmModal()
	}
	header := m.renderHeader()
	_, bodyHeight := m.layoutHeights()

	sidebar := sidebarStyle.Render(fitLines(m.renderSidebar(), sidebarWidth-3, bodyHeight))
	main := m.renderMain()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, fitLines(main, m.logWidth()+2, bodyHeight))
	return m.overlayToasts(header + "\n" + body)
}

func (m *Model) renderHeader() string {
	left := titleStyle.Render("⚡ FIRSTLIGHT")
	plan := m.user.Plan
	if plan == "" {
		plan = "FREE"
	}
	planStyle := warnStyle
	if m.user.CanImport() {
		planStyle = goodStyle
	}
	right := mutedStyle.Render(m.user.Name) + " " + planStyle.Render("["+plan+"]")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := " " + left + strings.Repeat(" ", gap) + right
	rule := faintStyle.Render(strings.Repeat("─", maxInt(1, m.width)))
	return line + "\n" + rule
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("PLAYERS"))
	b.WriteString("\n")
	if len(m.players) == 0 {
		b.WriteString(mutedStyle.Render("none yet"))
		b.WriteString("\n")
	}
	for _, p := range m.players {
		label := truncateCell(p.Name, sidebarWidth-6)
		if p.ID == m.selectedID {
			b.WriteString(selectedPlayerStyle.Render(" " + label + " "))
		} else {
			b.WriteString(playerStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.pending > 0 {
		b.WriteString(m.spin.View() + " " + faintStyle.Render("syncing"))
		b.WriteString("\n\n")
	}
	keys := []string{
		"[/]  switch player",
		"g    log game",
		"n    new player",
		"e    edit entry",
		"d    delete entry",
		"D    delete player",
		"s/p  filters",
		"i    import",
		"x    export PDF",
		"o    log out",
		"q    quit",
	}
	for _, k := range keys {
		b.WriteString(headerStyle.Render(k))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMain() string {
	player := m.selectedPlayer()
	if player == nil {
		return "\n " + mutedStyle.Render("Press 'n' to add your first player.")
	}
	bundle := m.displayStats()

	var b strings.Builder
	title := player.Name
	if player.Team != "" {
		title += " · " + player.Team
	}
	if player.JerseyNumber != "" {
		title += " #" + player.JerseyNumber
	}
	b.WriteString(" " + cardValueStyle.Render(title))
	if player.Position != "" {
		b.WriteString(" " + mutedStyle.Render(player.Position))
	}
	if m.serverStats == nil && len(m.entries) > 0 {
		b.WriteString(" " + faintStyle.Render("(local)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderStatCards(bundle))
	b.WriteString("\n")
	b.WriteString(m.renderBreakdowns(bundle))
	b.WriteString("\n")
	b.WriteString(m.renderCrossTable(bundle))
	b.WriteString("\n")
	b.WriteString(m.renderGameLog())
	return b.String()
}

func (m *Model) renderStatCards(bundle model.StatsBundle) string {
	cards := []struct {
		title string
		value string
	}{
		{"GAMES", fmt.Sprintf("%d", bundle.TotalGames)},
		{"FIRST GOALS", fmt.Sprintf("%d", bundle.FirstGoalCount)},
		{"OPENER %", stats.FormatPct(bundle.FirstGoalPct)},
		{"WIN WHEN OPENS", stats.FormatPct(bundle.WinRateFirst)},
		{"AVG TIME", bundle.AvgTime},
	}
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		content := cardTitleStyle.Render(c.title) + "\n" + cardValueStyle.Render(c.value)
		rendered = append(rendered, cardStyle.Render(padLines(content, maxInt(6, lipgloss.Width(c.title)))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderBreakdowns(bundle model.StatsBundle) string {
	var b strings.Builder
	b.WriteString(" " + headerStyle.Render("BY SITUATION"))
	b.WriteString("\n")
	for _, s := range model.Situations {
		d := bundle.BySituation[s]
		bar := miniBar(d.Count, bundle.FirstGoalCount)
		b.WriteString(fmt.Sprintf(" %s %2d %s %s\n",
			situationStyle(s).Render(padLine(s, 3)),
			d.Count,
			situationStyle(s).Render(bar),
			mutedStyle.Render(stats.FormatPct(d.PctOfFirstGoals)),
		))
	}
	b.WriteString("\n " + headerStyle.Render("BY PERIOD"))
	b.WriteString("\n")
	for _, p := range model.Periods {
		d := bundle.ByPeriod[p]
		bar := miniBar(d.Count, bundle.FirstGoalCount)
		b.WriteString(fmt.Sprintf(" %s %2d %s %s\n",
			textStyle.Render(padLine("P"+p, 3)),
			d.Count,
			titleStyle.Render(bar),
			mutedStyle.Render(stats.FormatPct(d.PctOfFirstGoals)),
		))
	}
	return b.String()
}

func (m *Model) renderCrossTable(bundle model.StatsBundle) string {
	var b strings.Builder
	b.WriteString(" " + headerStyle.Render("SITUATION × PERIOD"))
	b.WriteString("\n")
	head := "     "
	for _, p := range model.Periods {
		head += padLine("P"+p, 5)
	}
	b.WriteString(" " + faintStyle.Render(head) + "\n")
	for _, s := range model.Situations {
		row := situationStyle(s).Render(padLine(s, 5))
		for _, p := range model.Periods {
			count := bundle.CrossTable[s][p]
			cell := stats.NoTimePlaceholder
			style := faintStyle
			if count > 0 {
				cell = fmt.Sprintf("%d", count)
				style = textStyle
			}
			row += style.Render(padLine(cell, 5))
		}
		b.WriteString(" " + row + "\n")
	}
	return b.String()
}

func (m *Model) renderGameLog() string {
	var b strings.Builder
	label := fmt.Sprintf("GAME LOG (%d)", len(m.filtered))
	filters := fmt.Sprintf("situation: %s  period: %s", m.filterSituation, m.filterPeriod)
	b.WriteString(" " + headerStyle.Render(label) + "  " + faintStyle.Render(filters))
	b.WriteString("\n")
	if len(m.filtered) == 0 {
		b.WriteString(" " + mutedStyle.Render("No entries match."))
		return b.String()
	}
	b.WriteString(m.gameLog.View())
	return b.String()
}

func (m *Model) confirmModal() string {
	player := m.selectedPlayer()
	name := "this player"
	if player != nil {
		name = player.Name
	}
	prompt := errorStyle.Render("Delete "+name+" and all entries?") + "\n\n" +
		headerStyle.Render("y: delete  any other key: cancel")
	modal := modalStyle.Render(prompt)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// overlayToasts stacks active toasts under the main content. Bubble Tea
// repaints whole frames, so toasts render as trailing lines rather than
// a positioned overlay.
func (m *Model) overlayToasts(base string) string {
	toasts := m.renderToasts()
	if toasts == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	toastLines := strings.Split(toasts, "\n")
	if len(lines) > len(toastLines) {
		lines = lines[:len(lines)-len(toastLines)]
	}
	return strings.Join(lines, "\n") + "\n" + toasts
}

func miniBar(count, total int) string {
	if total <= 0 || count <= 0 {
		return ""
	}
	n := count * breakdownBar / total
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
