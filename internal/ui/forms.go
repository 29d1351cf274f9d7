package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/firstlight-app/firstlight/internal/model"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindChoice
	kindToggle
	kindSecret
)

// field is one form element: a free-text input, a fixed-choice cycler,
// or a boolean toggle.
type field struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	options []string
	index   int
	on      bool
}

func newTextField(label, placeholder string) field {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return field{label: label, kind: kindText, input: input}
}

func newSecretField(label string) field {
	f := newTextField(label, "")
	f.kind = kindSecret
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func newChoiceField(label string, options []string, value string) field {
	index := 0
	for i, opt := range options {
		if opt == value {
			index = i
			break
		}
	}
	return field{label: label, kind: kindChoice, options: options, index: index}
}

func newToggleField(label string, on bool) field {
	return field{label: label, kind: kindToggle, on: on}
}

func (f field) value() string {
	switch f.kind {
	case kindChoice:
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.index]
	default:
		return strings.TrimSpace(f.input.Value())
	}
}

func (f *field) cycle(delta int) {
	count := len(f.options)
	if count == 0 {
		return
	}
	f.index = (f.index + delta + count) % count
}

// form is a focusable list of fields with tab cycling.
type form struct {
	title  string
	fields []field
	focus  int
	errMsg string
}

func (f *form) setFocus(idx int) tea.Cmd {
	count := len(f.fields)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.fields {
		fld := &f.fields[i]
		if fld.kind != kindText && fld.kind != kindSecret {
			continue
		}
		if i == f.focus {
			cmd = fld.input.Focus()
		} else {
			fld.input.Blur()
		}
	}
	return cmd
}

// handleKey routes a key to the focused field. Returns false when the
// key is not a form navigation/editing key.
func (f *form) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return f.setFocus(f.focus + 1), true
	case tea.KeyShiftTab, tea.KeyUp:
		return f.setFocus(f.focus - 1), true
	}
	if len(f.fields) == 0 {
		return nil, false
	}
	fld := &f.fields[f.focus]
	switch fld.kind {
	case kindChoice:
		switch msg.String() {
		case "left", "h":
			fld.cycle(-1)
			return nil, true
		case "right", "l", " ":
			fld.cycle(1)
			return nil, true
		}
		return nil, false
	case kindToggle:
		switch msg.String() {
		case " ", "left", "right":
			fld.on = !fld.on
			return nil, true
		}
		return nil, false
	default:
		var cmd tea.Cmd
		fld.input, cmd = fld.input.Update(msg)
		return cmd, true
	}
}

func (f *form) render() string {
	lines := []string{headerStyle.Render(f.title)}
	for i, fld := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = titleStyle.Render("> ")
		}
		label := faintStyle.Render(strings.ToUpper(fld.label))
		switch fld.kind {
		case kindChoice:
			value := fld.value()
			if i == f.focus {
				value = "‹ " + value + " ›"
			}
			lines = append(lines, marker+label+" "+textStyle.Render(value))
		case kindToggle:
			value := "no"
			if fld.on {
				value = "yes"
			}
			style := mutedStyle
			if fld.on {
				style = titleStyle
			}
			lines = append(lines, marker+label+" "+style.Render(value))
		default:
			lines = append(lines, marker+label+" "+fld.input.View())
		}
	}
	if f.errMsg != "" {
		lines = append(lines, errorStyle.Render(f.errMsg))
	}
	lines = append(lines, headerStyle.Render("tab: next field  enter: submit  esc: cancel"))
	return strings.Join(lines, "\n")
}

// Field order must match the builders below.
const (
	entryFieldDate = iota
	entryFieldOpponent
	entryFieldPeriod
	entryFieldTime
	entryFieldSituation
	entryFieldOutcome
	entryFieldHomeAway
	entryFieldFirstGoal
	entryFieldNotes
)

func newEntryForm(title string) form {
	date := newTextField("Date", "YYYY-MM-DD")
	date.input.SetValue(time.Now().Format("2006-01-02"))
	return form{
		title: title,
		fields: []field{
			date,
			newTextField("Opponent", "e.g. FLA"),
			newChoiceField("Period", model.Periods, "1"),
			newTextField("Time (mm:ss)", "08:32"),
			newChoiceField("Situation", model.Situations, "EV"),
			newChoiceField("Outcome", model.Outcomes, "W"),
			newChoiceField("Home/Away", []string{"HOME", "AWAY"}, "HOME"),
			newToggleField("First goal of the game", false),
			newTextField("Notes", "Any context..."),
		},
	}
}

func entryFormFromEntry(title string, e model.GameEntry) form {
	f := newEntryForm(title)
	f.fields[entryFieldDate].input.SetValue(model.DateOnly(e.Date))
	f.fields[entryFieldOpponent].input.SetValue(e.Opponent)
	f.fields[entryFieldPeriod] = newChoiceField("Period", model.Periods, e.Period)
	f.fields[entryFieldTime].input.SetValue(e.TimeInPeriod)
	f.fields[entryFieldSituation] = newChoiceField("Situation", model.Situations, e.Situation)
	f.fields[entryFieldOutcome] = newChoiceField("Outcome", model.Outcomes, e.GameOutcome)
	f.fields[entryFieldHomeAway] = newChoiceField("Home/Away", []string{"HOME", "AWAY"}, e.HomeAway)
	f.fields[entryFieldFirstGoal].on = e.WasFirstGoal
	f.fields[entryFieldNotes].input.SetValue(e.Notes)
	return f
}

func (f *form) entryInput(playerID string) model.EntryInput {
	return model.EntryInput{
		PlayerID:     playerID,
		Date:         f.fields[entryFieldDate].value(),
		Opponent:     f.fields[entryFieldOpponent].value(),
		Period:       f.fields[entryFieldPeriod].value(),
		TimeInPeriod: f.fields[entryFieldTime].value(),
		Situation:    f.fields[entryFieldSituation].value(),
		GameOutcome:  f.fields[entryFieldOutcome].value(),
		WasFirstGoal: f.fields[entryFieldFirstGoal].on,
		HomeAway:     f.fields[entryFieldHomeAway].value(),
		Notes:        f.fields[entryFieldNotes].value(),
	}
}

const (
	playerFieldName = iota
	playerFieldTeam
	playerFieldJersey
	playerFieldPosition
	playerFieldSport
)

func newPlayerForm() form {
	return form{
		title: "NEW PLAYER",
		fields: []field{
			newTextField("Player name", "e.g. Josh Doan"),
			newTextField("Team", "BUF"),
			newTextField("Jersey #", "91"),
			newChoiceField("Position", model.Positions, "RW"),
			newChoiceField("Sport", model.Sports, "NHL"),
		},
	}
}

func (f *form) playerInput() model.PlayerInput {
	return model.PlayerInput{
		Name:         f.fields[playerFieldName].value(),
		Team:         f.fields[playerFieldTeam].value(),
		JerseyNumber: f.fields[playerFieldJersey].value(),
		Position:     f.fields[playerFieldPosition].value(),
		Sport:        f.fields[playerFieldSport].value(),
	}
}

func newAuthForm(register bool) form {
	if register {
		return form{
			title: "CREATE ACCOUNT",
			fields: []field{
				newTextField("Name", "Your name"),
				newTextField("Email", "you@email.com"),
				newSecretField("Password"),
			},
		}
	}
	return form{
		title: "SIGN IN",
		fields: []field{
			newTextField("Email", "you@email.com"),
			newSecretField("Password"),
		},
	}
}

func (f *form) credentials(register bool) model.Credentials {
	if register {
		return model.Credentials{
			Name:     f.fields[0].value(),
			Email:    f.fields[1].value(),
			Password: f.fields[2].value(),
		}
	}
	return model.Credentials{
		Email:    f.fields[0].value(),
		Password: f.fields[1].value(),
	}
}

// validationMessage flattens the first validator error into a short
// user-facing message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return "invalid email address"
		case "datetime":
			return fe.Field() + " must be YYYY-MM-DD"
		case "clock":
			return fe.Field() + " must be mm:ss"
		case "oneof":
			return fe.Field() + " must be one of " + fe.Param()
		default:
			return fe.Field() + " is invalid"
		}
	}
	return err.Error()
}
