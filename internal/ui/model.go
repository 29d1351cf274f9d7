package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/firstlight-app/firstlight/internal/api"
	"github.com/firstlight-app/firstlight/internal/model"
	"github.com/firstlight-app/firstlight/internal/session"
	"github.com/firstlight-app/firstlight/internal/stats"
)

type view int

const (
	viewBooting view = iota
	viewAuth
	viewProfile
	viewAddEntry
	viewAddPlayer
	viewImport
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	api      *api.Client
	sess     *session.Manager
	validate *validator.Validate
	log      zerolog.Logger

	width  int
	height int

	view view
	user model.User

	registerMode bool
	authForm     form

	players    []model.Player
	selectedID string

	entries     []model.GameEntry
	serverStats *model.StatsBundle

	// fetchSeq fences entries/stats responses: results tagged with an
	// older sequence or a different player id are discarded.
	fetchSeq int
	pending  int
	spin     spinner.Model

	filterSituation string
	filterPeriod    string
	filtered        []model.GameEntry
	gameLog         table.Model

	entryForm   form
	editEntryID string
	playerForm  form

	importInput   textinput.Model
	importResults []model.ImportResult
	importCursor  int
	importBusy    bool

	confirmDelete bool

	toasts   []toast
	toastSeq int
}

// New builds the dashboard model.
func New(client *api.Client, sess *session.Manager, log zerolog.Logger) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = titleStyle

	importInput := textinput.New()
	importInput.Placeholder = "Search NHL player name..."
	importInput.CharLimit = 0

	m := &Model{
		api:             client,
		sess:            sess,
		validate:        model.NewValidator(),
		log:             log,
		view:            viewBooting,
		spin:            spin,
		filterSituation: model.FilterAll,
		filterPeriod:    model.FilterAll,
		importInput:     importInput,
	}
	m.gameLog = newGameLogTable(nil, 0, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bootCmd(), m.spin.Tick)
}

// selectedPlayer returns the active player, if any.
func (m *Model) selectedPlayer() *model.Player {
	for i := range m.players {
		if m.players[i].ID == m.selectedID {
			return &m.players[i]
		}
	}
	return nil
}

// displayStats prefers the server-computed bundle and falls back to
// the local aggregation when none has arrived.
func (m *Model) displayStats() model.StatsBundle {
	if m.serverStats != nil {
		return *m.serverStats
	}
	return stats.Compute(m.entries)
}

func (m *Model) selectPlayer(id string) tea.Cmd {
	m.selectedID = id
	m.serverStats = nil
	m.entries = nil
	m.refreshGameLog()
	if id == "" {
		return nil
	}
	m.fetchSeq++
	m.pending += 2
	return m.loadPlayerDataCmd(id, m.fetchSeq)
}

func (m *Model) refreshGameLog() {
	m.filtered = stats.Filter(m.entries, m.filterSituation, m.filterPeriod)
	_, bodyHeight := m.layoutHeights()
	m.gameLog = newGameLogTable(m.filtered, m.logWidth(), maxInt(3, bodyHeight/3))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshGameLog()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case toastExpiredMsg:
		m.expireToast(msg.id)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.handleDataMsg(msg)
}

func (m *Model) handleDataMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootMsg:
		if msg.err != nil {
			// Boot failures degrade silently to the auth screen.
			m.log.Warn().Err(msg.err).Msg("boot failed")
		}
		if msg.state == session.Authenticated {
			m.user = msg.user
			m.view = viewProfile
			return m, m.loadPlayersCmd()
		}
		m.registerMode = false
		m.authForm = newAuthForm(false)
		m.view = viewAuth
		return m, m.authForm.setFocus(0)

	case authMsg:
		if msg.err != nil {
			m.authForm.errMsg = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.view = viewProfile
		return m, m.loadPlayersCmd()

	case loggedOutMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("logout cleanup failed")
		}
		width, height := m.width, m.height
		*m = *New(m.api, m.sess, m.log)
		m.width, m.height = width, height
		m.authForm = newAuthForm(false)
		m.view = viewAuth
		return m, tea.Batch(m.authForm.setFocus(0), m.spin.Tick)

	case playersMsg:
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		m.players = msg.players
		if m.selectedID == "" && len(m.players) > 0 {
			return m, m.selectPlayer(m.players[0].ID)
		}
		return m, nil

	case entriesMsg:
		m.pending--
		if msg.playerID != m.selectedID || msg.seq != m.fetchSeq {
			m.log.Debug().Str("player_id", msg.playerID).Msg("discarding stale entries response")
			return m, nil
		}
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		m.entries = msg.entries
		m.refreshGameLog()
		return m, nil

	case statsMsg:
		m.pending--
		if msg.playerID != m.selectedID || msg.seq != m.fetchSeq {
			m.log.Debug().Str("player_id", msg.playerID).Msg("discarding stale stats response")
			return m, nil
		}
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		m.serverStats = msg.stats
		return m, nil

	case playerSavedMsg:
		if msg.err != nil {
			m.playerForm.errMsg = msg.err.Error()
			return m, nil
		}
		m.players = append(m.players, msg.player)
		m.view = viewProfile
		return m, tea.Batch(m.selectPlayer(msg.player.ID), m.pushToast("Player added!", toastSuccess))

	case playerDeletedMsg:
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		remaining := m.players[:0]
		for _, p := range m.players {
			if p.ID != msg.id {
				remaining = append(remaining, p)
			}
		}
		m.players = remaining
		next := ""
		if len(m.players) > 0 {
			next = m.players[0].ID
		}
		return m, tea.Batch(m.selectPlayer(next), m.pushToast("Player deleted", toastInfo))

	case entrySavedMsg:
		if msg.err != nil {
			m.entryForm.errMsg = msg.err.Error()
			return m, nil
		}
		if msg.created {
			m.entries = append([]model.GameEntry{msg.entry}, m.entries...)
		} else {
			for i := range m.entries {
				if m.entries[i].ID == msg.entry.ID {
					m.entries[i] = msg.entry
				}
			}
		}
		m.refreshGameLog()
		m.editEntryID = ""
		m.view = viewProfile
		text := "Entry updated"
		if msg.created {
			text = "Game logged!"
		}
		return m, tea.Batch(m.refreshStats(), m.pushToast(text, toastSuccess))

	case entryDeletedMsg:
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		kept := m.entries[:0]
		for _, e := range m.entries {
			if e.ID != msg.id {
				kept = append(kept, e)
			}
		}
		m.entries = kept
		m.refreshGameLog()
		return m, tea.Batch(m.refreshStats(), m.pushToast("Entry deleted", toastInfo))

	case importResultsMsg:
		m.importBusy = false
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		m.importResults = msg.results
		m.importCursor = 0
		if len(msg.results) == 0 {
			return m, m.pushToast("No players found", toastWarning)
		}
		return m, nil

	case importDoneMsg:
		m.importBusy = false
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		m.importResults = nil
		m.importInput.SetValue("")
		m.view = viewProfile
		return m, tea.Batch(
			m.selectPlayer(msg.playerID),
			m.pushToast(fmt.Sprintf("Imported %d entries!", msg.imported), toastSuccess),
		)

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.pushToast(msg.err.Error(), toastError)
		}
		return m, m.pushToast("Exported "+msg.path, toastSuccess)
	}
	return m, nil
}

// refreshStats refetches statistics for the selected player after an
// entry mutation; entries are already updated locally.
func (m *Model) refreshStats() tea.Cmd {
	if m.selectedID == "" {
		return nil
	}
	m.fetchSeq++
	m.pending++
	return m.loadStatsCmd(m.selectedID, m.fetchSeq)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.view {
	case viewBooting:
		return m, nil
	case viewAuth:
		return m.handleAuthKey(msg)
	case viewAddEntry:
		return m.handleEntryFormKey(msg)
	case viewAddPlayer:
		return m.handlePlayerFormKey(msg)
	case viewImport:
		return m.handleImportKey(msg)
	default:
		return m.handleProfileKey(msg)
	}
}

func (m *Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlR:
		m.registerMode = !m.registerMode
		m.authForm = newAuthForm(m.registerMode)
		return m, m.authForm.setFocus(0)
	case tea.KeyEnter:
		creds := m.authForm.credentials(m.registerMode)
		if err := m.validate.Struct(creds); err != nil {
			m.authForm.errMsg = validationMessage(err)
			return m, nil
		}
		m.authForm.errMsg = ""
		return m, m.loginCmd(creds, m.registerMode)
	}
	cmd, _ := m.authForm.handleKey(msg)
	return m, cmd
}

func (m *Model) handleEntryFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editEntryID = ""
		m.view = viewProfile
		return m, nil
	case tea.KeyEnter:
		in := m.entryForm.entryInput(m.selectedID)
		if err := m.validate.Struct(in); err != nil {
			m.entryForm.errMsg = validationMessage(err)
			return m, nil
		}
		m.entryForm.errMsg = ""
		return m, m.saveEntryCmd(m.editEntryID, in)
	}
	cmd, _ := m.entryForm.handleKey(msg)
	return m, cmd
}

func (m *Model) handlePlayerFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view = viewProfile
		return m, nil
	case tea.KeyEnter:
		in := m.playerForm.playerInput()
		if err := m.validate.Struct(in); err != nil {
			m.playerForm.errMsg = validationMessage(err)
			return m, nil
		}
		m.playerForm.errMsg = ""
		return m, m.savePlayerCmd(in)
	}
	cmd, _ := m.playerForm.handleKey(msg)
	return m, cmd
}

func (m *Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.view = viewProfile
		return m, nil
	case tea.KeyEnter:
		if len(m.importResults) > 0 {
			result := m.importResults[m.importCursor]
			m.importBusy = true
			return m, m.linkAndImportCmd(m.selectedID, result.ID)
		}
		query := m.importInput.Value()
		if query == "" {
			return m, nil
		}
		m.importBusy = true
		return m, m.searchImportCmd(query, "NHL")
	case tea.KeyUp:
		if m.importCursor > 0 {
			m.importCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.importCursor < len(m.importResults)-1 {
			m.importCursor++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.importInput, cmd = m.importInput.Update(msg)
	return m, cmd
}

func (m *Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			return m, m.deletePlayerCmd(m.selectedID)
		}
		return m, nil
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "[":
		return m, m.stepPlayer(-1)
	case "]":
		return m, m.stepPlayer(1)
	case "g":
		if m.selectedID == "" {
			return m, m.pushToast("Add a player first", toastWarning)
		}
		m.entryForm = newEntryForm("LOG GAME")
		m.editEntryID = ""
		m.view = viewAddEntry
		return m, m.entryForm.setFocus(0)
	case "n":
		m.playerForm = newPlayerForm()
		m.view = viewAddPlayer
		return m, m.playerForm.setFocus(0)
	case "e":
		entry := m.cursorEntry()
		if entry == nil {
			return m, nil
		}
		m.entryForm = entryFormFromEntry("EDIT ENTRY", *entry)
		m.editEntryID = entry.ID
		m.view = viewAddEntry
		return m, m.entryForm.setFocus(0)
	case "d":
		entry := m.cursorEntry()
		if entry == nil {
			return m, nil
		}
		return m, m.deleteEntryCmd(entry.ID)
	case "D":
		if m.selectedID != "" {
			m.confirmDelete = true
		}
		return m, nil
	case "i":
		if m.selectedID == "" {
			return m, nil
		}
		if !m.user.CanImport() {
			return m, m.pushToast("PRO plan required for auto-import", toastWarning)
		}
		m.view = viewImport
		return m, m.importInput.Focus()
	case "x":
		if m.selectedID == "" {
			return m, nil
		}
		return m, m.exportCmd(m.selectedID)
	case "s":
		m.filterSituation = cycleFilter(m.filterSituation, model.Situations)
		m.refreshGameLog()
		return m, nil
	case "p":
		m.filterPeriod = cycleFilter(m.filterPeriod, model.Periods)
		m.refreshGameLog()
		return m, nil
	case "o":
		return m, m.logoutCmd()
	}
	var cmd tea.Cmd
	m.gameLog, cmd = m.gameLog.Update(msg)
	return m, cmd
}

func (m *Model) stepPlayer(delta int) tea.Cmd {
	count := len(m.players)
	if count == 0 {
		return nil
	}
	idx := 0
	for i, p := range m.players {
		if p.ID == m.selectedID {
			idx = i
			break
		}
	}
	idx = (idx + delta + count) % count
	return m.selectPlayer(m.players[idx].ID)
}

func (m *Model) cursorEntry() *model.GameEntry {
	idx := m.gameLog.Cursor()
	if idx < 0 || idx >= len(m.filtered) {
		return nil
	}
	return &m.filtered[idx]
}

func cycleFilter(current string, domain []string) string {
	if current == model.FilterAll {
		if len(domain) == 0 {
			return model.FilterAll
		}
		return domain[0]
	}
	for i, v := range domain {
		if v == current {
			if i == len(domain)-1 {
				return model.FilterAll
			}
			return domain[i+1]
		}
	}
	return model.FilterAll
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight int) {
	headerHeight = 2
	bodyHeight = m.height - headerHeight - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight
}

func (m *Model) logWidth() int {
	w := m.width - sidebarWidth - 4
	if w < 40 {
		w = 80
	}
	return w
}

func newGameLogTable(entries []model.GameEntry, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Opponent", Width: 12},
		{Title: "Per", Width: 4},
		{Title: "Time", Width: 6},
		{Title: "Sit", Width: 4},
		{Title: "Result", Width: 6},
		{Title: "H/A", Width: 3},
		{Title: "Opener", Width: 6},
		{Title: "Notes", Width: 24},
	}
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		opener := ""
		if e.WasFirstGoal {
			opener = "●"
		}
		timeCell := e.TimeInPeriod
		if _, ok := model.ParseClock(e.TimeInPeriod); !ok {
			timeCell = "—"
		}
		homeAway := "H"
		if e.HomeAway == "AWAY" {
			homeAway = "A"
		}
		rows = append(rows, table.Row{
			model.DateOnly(e.Date),
			truncateCell(e.Opponent, 12),
			"P" + e.Period,
			timeCell,
			e.Situation,
			e.GameOutcome,
			homeAway,
			opener,
			truncateCell(e.Notes, 24),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
		table.WithFocused(true),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(colorBorder)).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.Padding(0, 1).PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	return t
}
