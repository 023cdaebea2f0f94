package server

import (
	"testing"

	"github.com/NicolasHaas/govox/pkg/datastore"
)

func TestImportChannelsFromYAML(t *testing.T) {
	st := datastore.NewMemory()

	yamlData := []byte(`
channels:
  - name: Lobby
    description: General hangout
    channels:
      - name: Games
      - name: Music
        description: Listening party
  - name: AFK
`)
	if err := ImportChannelsFromYAML(yamlData, st); err != nil {
		t.Fatalf("ImportChannelsFromYAML: %v", err)
	}

	lobby, err := st.GetChannelByName("Lobby")
	if err != nil || lobby == nil {
		t.Fatalf("Lobby not created: %v %v", lobby, err)
	}
	if lobby.Description != "General hangout" {
		t.Fatalf("Lobby description %q", lobby.Description)
	}
	if lobby.ParentID != nil {
		t.Fatalf("top-level channel has parent %v", *lobby.ParentID)
	}

	games, err := st.GetChannelByName("Games")
	if err != nil || games == nil {
		t.Fatalf("Games not created: %v %v", games, err)
	}
	if games.ParentID == nil || *games.ParentID != lobby.ID {
		t.Fatalf("Games parent %v, want %d", games.ParentID, lobby.ID)
	}

	// Root (seeded) + Lobby + Games + Music + AFK.
	channels, err := st.ListChannels()
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if len(channels) != 5 {
		t.Fatalf("got %d channels, want 5", len(channels))
	}

	// Re-import is idempotent: existing names are left alone.
	if err := ImportChannelsFromYAML(yamlData, st); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	channels, _ = st.ListChannels()
	if len(channels) != 5 {
		t.Fatalf("re-import duplicated channels: got %d", len(channels))
	}
}

func TestImportChannelsBadYAML(t *testing.T) {
	st := datastore.NewMemory()
	if err := ImportChannelsFromYAML([]byte("channels: [unclosed"), st); err == nil {
		t.Fatal("expected parse error")
	}
}
