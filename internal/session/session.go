package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/firstlight-app/firstlight/internal/api"
	"github.com/firstlight-app/firstlight/internal/model"
)

// State is the client's auth state after boot.
type State int

const (
	// Unauthenticated means no valid credential is held.
	Unauthenticated State = iota
	// Authenticated means a validated credential and user are held.
	Authenticated
)

// Manager drives the session lifecycle over the API client and the
// credential store.
type Manager struct {
	client *api.Client
	store  *Store
	log    zerolog.Logger
}

// NewManager builds a session manager.
func NewManager(client *api.Client, store *Store, log zerolog.Logger) *Manager {
	return &Manager{client: client, store: store, log: log}
}

// Boot restores a stored credential if one validates against the
// identity endpoint. Any failure or rejection clears the slot and
// degrades silently to the unauthenticated state.
func (m *Manager) Boot(ctx context.Context) (State, model.User, error) {
	token, err := m.store.Token(ctx)
	if err != nil {
		return Unauthenticated, model.User{}, fmt.Errorf("failed to read credential: %w", err)
	}
	if token == "" {
		return Unauthenticated, model.User{}, nil
	}
	m.client.SetToken(token)
	user, err := m.client.Me(ctx)
	if err != nil {
		m.log.Info().Err(err).Msg("stored credential rejected")
		m.client.ClearToken()
		if cerr := m.store.ClearToken(ctx); cerr != nil {
			return Unauthenticated, model.User{}, fmt.Errorf("failed to clear credential: %w", cerr)
		}
		return Unauthenticated, model.User{}, nil
	}
	return Authenticated, user, nil
}

// Login authenticates with credentials and persists the issued token.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	resp, err := m.client.Login(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	return m.adopt(ctx, resp)
}

// Register creates an account and persists its first token.
func (m *Manager) Register(ctx context.Context, creds model.Credentials) (model.User, error) {
	resp, err := m.client.Register(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	return m.adopt(ctx, resp)
}

func (m *Manager) adopt(ctx context.Context, resp api.AuthResponse) (model.User, error) {
	m.client.SetToken(resp.Token)
	if err := m.store.SaveToken(ctx, resp.Token); err != nil {
		return model.User{}, fmt.Errorf("failed to persist credential: %w", err)
	}
	return resp.User, nil
}

// Logout notifies the backend best-effort and always clears local
// credential state regardless of the network outcome.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("logout notification failed")
	}
	m.client.ClearToken()
	if err := m.store.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
