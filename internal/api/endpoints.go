package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/firstlight-app/firstlight/internal/model"
)

// AuthResponse is the payload of a successful login or registration.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// Register creates an account and returns its first token.
func (c *Client) Register(ctx context.Context, creds model.Credentials) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", creds, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// Me validates the held credential against the identity endpoint.
// An absent user in the response means the credential was rejected.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return model.User{}, err
	}
	if out.User == nil {
		return model.User{}, &Error{Status: http.StatusUnauthorized, Message: "invalid credential"}
	}
	return *out.User, nil
}

// Logout notifies the backend that the credential is being dropped.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ListPlayers fetches all players for the account.
func (c *Client) ListPlayers(ctx context.Context) ([]model.Player, error) {
	var out struct {
		Players []model.Player `json:"players"`
	}
	if err := c.do(ctx, http.MethodGet, "/players", nil, &out); err != nil {
		return nil, err
	}
	return out.Players, nil
}

// CreatePlayer adds a new tracked player.
func (c *Client) CreatePlayer(ctx context.Context, in model.PlayerInput) (model.Player, error) {
	var out struct {
		Player model.Player `json:"player"`
	}
	if err := c.do(ctx, http.MethodPost, "/players", in, &out); err != nil {
		return model.Player{}, err
	}
	return out.Player, nil
}

// DeletePlayer removes a player. The backend cascades the delete to
// the player's entries.
func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/players/"+url.PathEscape(id), nil, nil)
}

// ListEntries fetches all game entries for a player.
func (c *Client) ListEntries(ctx context.Context, playerID string) ([]model.GameEntry, error) {
	var out struct {
		Entries []model.GameEntry `json:"entries"`
	}
	path := "/entries?playerId=" + url.QueryEscape(playerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// CreateEntry logs a new game.
func (c *Client) CreateEntry(ctx context.Context, in model.EntryInput) (model.GameEntry, error) {
	var out struct {
		Entry model.GameEntry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodPost, "/entries", in, &out); err != nil {
		return model.GameEntry{}, err
	}
	return out.Entry, nil
}

// UpdateEntry replaces an entry record.
func (c *Client) UpdateEntry(ctx context.Context, id string, in model.EntryInput) (model.GameEntry, error) {
	var out struct {
		Entry model.GameEntry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodPut, "/entries/"+url.PathEscape(id), in, &out); err != nil {
		return model.GameEntry{}, err
	}
	return out.Entry, nil
}

// DeleteEntry removes a game entry.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/entries/"+url.PathEscape(id), nil, nil)
}

// GetStats fetches the server-computed statistics for a player. A nil
// bundle means the server has none yet and the caller should fall back
// to the local aggregation.
func (c *Client) GetStats(ctx context.Context, playerID string) (*model.StatsBundle, error) {
	var out struct {
		Stats *model.StatsBundle `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/stats/"+url.PathEscape(playerID), nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

// SearchImport looks up external players by name. Gated by plan tier
// on the server side.
func (c *Client) SearchImport(ctx context.Context, query, sport string) ([]model.ImportResult, error) {
	var out struct {
		Results []model.ImportResult `json:"results"`
	}
	path := fmt.Sprintf("/import/search?q=%s&sport=%s", url.QueryEscape(query), url.QueryEscape(sport))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// LinkImport links a tracked player to an external player id.
func (c *Client) LinkImport(ctx context.Context, playerID, externalID string) error {
	body := map[string]string{"playerId": playerID, "externalPlayerId": externalID}
	return c.do(ctx, http.MethodPost, "/import/link", body, nil)
}

// RunImport imports all available entries for a linked player and
// returns the number of entries imported.
func (c *Client) RunImport(ctx context.Context, playerID string) (int, error) {
	var out struct {
		Imported int `json:"imported"`
	}
	if err := c.do(ctx, http.MethodPost, "/import/player/"+url.PathEscape(playerID), struct{}{}, &out); err != nil {
		return 0, err
	}
	return out.Imported, nil
}

// ExportURL builds the per-player PDF export URL. The bearer credential
// travels as a query parameter because the document is fetched outside
// normal authenticated calls.
func (c *Client) ExportURL(playerID string) string {
	return fmt.Sprintf("%s/export/player/%s.pdf?token=%s", c.baseURL, url.PathEscape(playerID), url.QueryEscape(c.token))
}

// DownloadExport streams the player's PDF export into w.
func (c *Client) DownloadExport(ctx context.Context, playerID string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(playerID), nil)
	if err != nil {
		return fmt.Errorf("failed to build export request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("export request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Message: "export failed"}
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
