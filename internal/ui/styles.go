// Package ui provides the Bubble Tea dashboard interface.
package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = "#00D4FF"
	colorText   = "#DDE1EC"
	colorMuted  = "#5A6680"
	colorFaint  = "#3A4258"
	colorGood   = "#00E676"
	colorBad    = "#FF3D5A"
	colorWarn   = "#FFD600"
	colorBorder = "#4A4A4A"
)

var situationColors = map[string]string{
	"EV": "#00D4FF",
	"PP": "#FFD600",
	"SH": "#FF6B35",
	"EN": "#B347FF",
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFaint))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGood))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBad))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(colorBorder))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#141926"))
	selectedPlayerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorText)).
				Background(lipgloss.Color("#0F1420")).
				Bold(true)
	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)

	toastInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(colorAccent)).
			Padding(0, 1)
	toastGoodStyle = toastInfoStyle.BorderForeground(lipgloss.Color(colorGood))
	toastWarnStyle = toastInfoStyle.BorderForeground(lipgloss.Color(colorWarn))
	toastBadStyle  = toastInfoStyle.BorderForeground(lipgloss.Color(colorBad))
)

func situationStyle(code string) lipgloss.Style {
	color, ok := situationColors[code]
	if !ok {
		color = colorText
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
