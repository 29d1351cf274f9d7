package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/firstlight-app/firstlight/internal/model"
	"github.com/firstlight-app/firstlight/internal/session"
)

type bootMsg struct {
	state session.State
	user  model.User
	err   error
}

type authMsg struct {
	user model.User
	err  error
}

type loggedOutMsg struct {
	err error
}

type playersMsg struct {
	players []model.Player
	err     error
}

// entriesMsg and statsMsg carry the player id and fetch sequence they
// were issued for; stale results are discarded in Update.
type entriesMsg struct {
	playerID string
	seq      int
	entries  []model.GameEntry
	err      error
}

type statsMsg struct {
	playerID string
	seq      int
	stats    *model.StatsBundle
	err      error
}

type playerSavedMsg struct {
	player model.Player
	err    error
}

type playerDeletedMsg struct {
	id  string
	err error
}

type entrySavedMsg struct {
	entry   model.GameEntry
	created bool
	err     error
}

type entryDeletedMsg struct {
	id  string
	err error
}

type importResultsMsg struct {
	results []model.ImportResult
	err     error
}

type importDoneMsg struct {
	playerID string
	imported int
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m *Model) bootCmd() tea.Cmd {
	return func() tea.Msg {
		state, user, err := m.sess.Boot(context.Background())
		return bootMsg{state: state, user: user, err: err}
	}
}

func (m *Model) loginCmd(creds model.Credentials, register bool) tea.Cmd {
	return func() tea.Msg {
		var (
			user model.User
			err  error
		)
		if register {
			user, err = m.sess.Register(context.Background(), creds)
		} else {
			user, err = m.sess.Login(context.Background(), creds)
		}
		return authMsg{user: user, err: err}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.sess.Logout(context.Background())}
	}
}

func (m *Model) loadPlayersCmd() tea.Cmd {
	return func() tea.Msg {
		players, err := m.api.ListPlayers(context.Background())
		return playersMsg{players: players, err: err}
	}
}

// loadPlayerDataCmd issues the entries and stats fetches as an
// independent, concurrent pair.
func (m *Model) loadPlayerDataCmd(playerID string, seq int) tea.Cmd {
	return tea.Batch(m.loadEntriesCmd(playerID, seq), m.loadStatsCmd(playerID, seq))
}

func (m *Model) loadEntriesCmd(playerID string, seq int) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.api.ListEntries(context.Background(), playerID)
		return entriesMsg{playerID: playerID, seq: seq, entries: entries, err: err}
	}
}

func (m *Model) loadStatsCmd(playerID string, seq int) tea.Cmd {
	return func() tea.Msg {
		stats, err := m.api.GetStats(context.Background(), playerID)
		return statsMsg{playerID: playerID, seq: seq, stats: stats, err: err}
	}
}

func (m *Model) savePlayerCmd(in model.PlayerInput) tea.Cmd {
	return func() tea.Msg {
		player, err := m.api.CreatePlayer(context.Background(), in)
		return playerSavedMsg{player: player, err: err}
	}
}

func (m *Model) deletePlayerCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return playerDeletedMsg{id: id, err: m.api.DeletePlayer(context.Background(), id)}
	}
}

func (m *Model) saveEntryCmd(editID string, in model.EntryInput) tea.Cmd {
	return func() tea.Msg {
		if editID != "" {
			entry, err := m.api.UpdateEntry(context.Background(), editID, in)
			return entrySavedMsg{entry: entry, created: false, err: err}
		}
		entry, err := m.api.CreateEntry(context.Background(), in)
		return entrySavedMsg{entry: entry, created: true, err: err}
	}
}

func (m *Model) deleteEntryCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{id: id, err: m.api.DeleteEntry(context.Background(), id)}
	}
}

func (m *Model) searchImportCmd(query, sport string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.api.SearchImport(context.Background(), query, sport)
		return importResultsMsg{results: results, err: err}
	}
}

// linkAndImportCmd links the selected player to the external id and
// runs the import in one step.
func (m *Model) linkAndImportCmd(playerID, externalID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.api.LinkImport(ctx, playerID, externalID); err != nil {
			return importDoneMsg{playerID: playerID, err: err}
		}
		imported, err := m.api.RunImport(ctx, playerID)
		return importDoneMsg{playerID: playerID, imported: imported, err: err}
	}
}

func (m *Model) exportCmd(playerID string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(".", fmt.Sprintf("firstlight-%s.pdf", playerID))
		file, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to create export file: %w", err)}
		}
		defer func() {
			_ = file.Close()
		}()
		if err := m.api.DownloadExport(context.Background(), playerID, file); err != nil {
			_ = os.Remove(path)
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}
