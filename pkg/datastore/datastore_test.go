package datastore_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/NicolasHaas/govox/pkg/datastore"
	"github.com/NicolasHaas/govox/pkg/model"
)

// openStores returns both implementations so every test runs against the
// real SQLite file and the in-memory stand-in.
func openStores(t *testing.T) map[string]datastore.DataStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	sqlStore, err := datastore.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlStore.Close(); err != nil {
			t.Errorf("close sqlite store: %v", err)
		}
	})

	return map[string]datastore.DataStore{
		"sqlite": sqlStore,
		"memory": datastore.NewMemory(),
	}
}

func TestCreateAndLookupUser(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			missing, err := st.GetUserByUsername("ghost")
			if err != nil {
				t.Fatalf("GetUserByUsername(absent): %v", err)
			}
			if missing != nil {
				t.Fatalf("GetUserByUsername(absent): got %v, want nil", missing)
			}

			created, err := st.CreateUser("alice", "$argon2id$fake")
			if err != nil {
				t.Fatalf("CreateUser: %v", err)
			}
			if created.ID == 0 {
				t.Fatal("CreateUser: no id assigned")
			}

			got, err := st.GetUserByUsername("alice")
			if err != nil {
				t.Fatalf("GetUserByUsername: %v", err)
			}
			want := &model.User{ID: created.ID, Username: "alice", PasswordHash: "$argon2id$fake"}
			if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(model.User{}, "CreatedAt")); diff != "" {
				t.Errorf("user mismatch (-want +got):\n%s", diff)
			}

			if _, err := st.CreateUser("alice", "other"); err == nil {
				t.Fatal("CreateUser: duplicate username accepted")
			} else if !strings.Contains(err.Error(), "UNIQUE") {
				t.Fatalf("CreateUser: duplicate error %q does not mention UNIQUE", err)
			}
		})
	}
}

func TestUpdateUserProfile(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := st.CreateUser("bob", "h"); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}

			avatar := "https://example.com/bob.png"
			if err := st.UpdateUserProfile("bob", &avatar, nil); err != nil {
				t.Fatalf("UpdateUserProfile(avatar): %v", err)
			}
			bio := "hello"
			if err := st.UpdateUserProfile("bob", nil, &bio); err != nil {
				t.Fatalf("UpdateUserProfile(bio): %v", err)
			}

			got, err := st.GetUserByUsername("bob")
			if err != nil {
				t.Fatalf("GetUserByUsername: %v", err)
			}
			if got.AvatarURL != avatar || got.Bio != bio {
				t.Fatalf("profile not persisted: avatar=%q bio=%q", got.AvatarURL, got.Bio)
			}

			// Unknown user matches the SQL UPDATE's zero-row behavior.
			if err := st.UpdateUserProfile("ghost", &avatar, nil); err != nil {
				t.Fatalf("UpdateUserProfile(absent): %v", err)
			}
		})
	}
}

func TestChannels(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			// The root channel is seeded by the store itself.
			root, err := st.GetChannelByName("Root")
			if err != nil {
				t.Fatalf("GetChannelByName(Root): %v", err)
			}
			if root == nil || root.ID != 0 {
				t.Fatalf("root channel missing or wrong id: %v", root)
			}

			lobby := &model.Channel{Name: "Lobby", Description: "general"}
			if err := st.CreateChannel(lobby); err != nil {
				t.Fatalf("CreateChannel: %v", err)
			}
			if lobby.ID == 0 {
				t.Fatal("CreateChannel: no id assigned")
			}
			games := &model.Channel{Name: "Games", ParentID: &lobby.ID}
			if err := st.CreateChannel(games); err != nil {
				t.Fatalf("CreateChannel: %v", err)
			}

			channels, err := st.ListChannels()
			if err != nil {
				t.Fatalf("ListChannels: %v", err)
			}
			if len(channels) != 3 {
				t.Fatalf("ListChannels: got %d, want 3", len(channels))
			}
			for i := 1; i < len(channels); i++ {
				if channels[i-1].ID >= channels[i].ID {
					t.Fatalf("ListChannels not ascending: %d then %d", channels[i-1].ID, channels[i].ID)
				}
			}

			got, err := st.GetChannelByName("Games")
			if err != nil {
				t.Fatalf("GetChannelByName: %v", err)
			}
			if got == nil || got.ParentID == nil || *got.ParentID != lobby.ID {
				t.Fatalf("parent not persisted: %+v", got)
			}

			absent, err := st.GetChannelByName("Nope")
			if err != nil {
				t.Fatalf("GetChannelByName(absent): %v", err)
			}
			if absent != nil {
				t.Fatalf("GetChannelByName(absent): got %v, want nil", absent)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 60; i++ {
				if err := st.SaveMessage("alice", 0, fmt.Sprintf("msg-%02d", i)); err != nil {
					t.Fatalf("SaveMessage: %v", err)
				}
			}
			if err := st.SaveMessage("bob", 5, "other channel"); err != nil {
				t.Fatalf("SaveMessage: %v", err)
			}

			msgs, err := st.RecentMessages(0, 50)
			if err != nil {
				t.Fatalf("RecentMessages: %v", err)
			}
			if len(msgs) != 50 {
				t.Fatalf("RecentMessages: got %d, want 50", len(msgs))
			}
			// The 50 most recent of 60, oldest first: msg-10 .. msg-59.
			for i, m := range msgs {
				want := fmt.Sprintf("msg-%02d", i+10)
				if m.Content != want {
					t.Fatalf("RecentMessages[%d]: got %q, want %q", i, m.Content, want)
				}
				if m.SenderName != "alice" || m.ChannelID != 0 {
					t.Fatalf("RecentMessages[%d]: wrong attribution %+v", i, m)
				}
			}

			other, err := st.RecentMessages(5, 50)
			if err != nil {
				t.Fatalf("RecentMessages(5): %v", err)
			}
			if len(other) != 1 || other[0].Content != "other channel" {
				t.Fatalf("RecentMessages(5): got %v", other)
			}

			empty, err := st.RecentMessages(99, 50)
			if err != nil {
				t.Fatalf("RecentMessages(empty): %v", err)
			}
			if len(empty) != 0 {
				t.Fatalf("RecentMessages(empty): got %d messages", len(empty))
			}
		})
	}
}
