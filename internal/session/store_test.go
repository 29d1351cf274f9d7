package session

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestTokenEmptySlot(t *testing.T) {
	store := openTestStore(t)
	token, err := store.Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Errorf("empty slot returned %q", token)
	}
}

func TestSaveTokenRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveToken(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}
	token, err := store.Token(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok-1" {
		t.Errorf("Token = %q, want tok-1", token)
	}
}

func TestSaveTokenReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveToken(ctx, "old"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveToken(ctx, "new"); err != nil {
		t.Fatal(err)
	}
	token, err := store.Token(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "new" {
		t.Errorf("Token = %q, want new", token)
	}
}

func TestClearToken(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearToken(ctx); err != nil {
		t.Fatal(err)
	}
	token, err := store.Token(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Errorf("Token = %q after clear, want empty", token)
	}
}
