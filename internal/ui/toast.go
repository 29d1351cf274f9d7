package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastTTL = 3500 * time.Millisecond

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastError
)

type toast struct {
	id    int
	text  string
	level toastLevel
}

type toastExpiredMsg struct {
	id int
}

// pushToast queues a transient notification and schedules its expiry.
func (m *Model) pushToast(text string, level toastLevel) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toasts = append(m.toasts, toast{id: id, text: text, level: level})
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) expireToast(id int) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m *Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	out := ""
	for _, t := range m.toasts {
		style := toastInfoStyle
		switch t.level {
		case toastSuccess:
			style = toastGoodStyle
		case toastWarning:
			style = toastWarnStyle
		case toastError:
			style = toastBadStyle
		}
		if out != "" {
			out += "\n"
		}
		out += style.Render(truncateCell(t.text, 60))
	}
	return out
}
