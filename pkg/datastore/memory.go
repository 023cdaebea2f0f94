package datastore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/NicolasHaas/govox/pkg/model"
)

// Memory is an in-memory DataStore for tests. It mirrors the SQLite
// store's behavior, root channel seeding included.
type Memory struct {
	mu sync.RWMutex

	now func() time.Time

	nextUserID    int64
	nextChannelID uint32
	nextMessageID int64

	usersByUsername map[string]*model.User
	channelsByID    map[uint32]*model.Channel
	messages        []model.Message
}

// NewMemory creates a Memory store using time.Now().UTC().
func NewMemory() *Memory {
	return NewMemoryWithClock(func() time.Time { return time.Now().UTC() })
}

// NewMemoryWithClock creates a Memory store with a custom clock.
func NewMemoryWithClock(now func() time.Time) *Memory {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	m := &Memory{
		now:             now,
		nextUserID:      1,
		nextChannelID:   1,
		nextMessageID:   1,
		usersByUsername: make(map[string]*model.User),
		channelsByID:    make(map[uint32]*model.Channel),
	}
	m.channelsByID[0] = &model.Channel{
		ID:          0,
		Name:        "Root",
		Description: "Root channel",
		CreatedAt:   now().UTC(),
	}
	return m
}

// Close is a no-op for Memory.
func (m *Memory) Close() error {
	return nil
}

// GetUserByUsername retrieves a user by exact username, or (nil, nil).
func (m *Memory) GetUserByUsername(username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.usersByUsername[username]
	if !ok {
		return nil, nil
	}
	copyUser := *u
	return &copyUser, nil
}

// CreateUser creates a new user and returns it with the assigned ID.
func (m *Memory) CreateUser(username, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.usersByUsername[username]; exists {
		return nil, fmt.Errorf("datastore: create user: constraint failed: UNIQUE constraint failed: users.username")
	}
	u := &model.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    m.now().UTC(),
	}
	m.nextUserID++
	m.usersByUsername[username] = u
	copyUser := *u
	return &copyUser, nil
}

// UpdateUserProfile sets only the non-nil fields. Unknown users are a no-op,
// matching the SQL UPDATE's zero-row behavior.
func (m *Memory) UpdateUserProfile(username string, avatarURL, bio *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.usersByUsername[username]
	if !ok {
		return nil
	}
	if avatarURL != nil {
		u.AvatarURL = *avatarURL
	}
	if bio != nil {
		u.Bio = *bio
	}
	return nil
}

// ListChannels returns all channels in ascending id order.
func (m *Memory) ListChannels() ([]model.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	channels := make([]model.Channel, 0, len(m.channelsByID))
	for _, ch := range m.channelsByID {
		channels = append(channels, *ch)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].ID < channels[j].ID })
	return channels, nil
}

// GetChannelByName retrieves a channel by name, or (nil, nil). With
// duplicate names the lowest id wins, matching the SQL row order.
func (m *Memory) GetChannelByName(name string) (*model.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found *model.Channel
	for _, ch := range m.channelsByID {
		if ch.Name != name {
			continue
		}
		if found == nil || ch.ID < found.ID {
			found = ch
		}
	}
	if found == nil {
		return nil, nil
	}
	copyCh := *found
	return &copyCh, nil
}

// CreateChannel inserts a channel and fills in its assigned ID.
func (m *Memory) CreateChannel(ch *model.Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch.ID = m.nextChannelID
	m.nextChannelID++
	ch.CreatedAt = m.now().UTC()
	copyCh := *ch
	m.channelsByID[ch.ID] = &copyCh
	return nil
}

// SaveMessage persists one chat message.
func (m *Memory) SaveMessage(senderName string, channelID uint32, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, model.Message{
		ID:         m.nextMessageID,
		SenderName: senderName,
		ChannelID:  channelID,
		Content:    content,
		CreatedAt:  m.now().UTC(),
	})
	m.nextMessageID++
	return nil
}

// RecentMessages returns up to limit most-recent messages for a channel,
// oldest first.
func (m *Memory) RecentMessages(channelID uint32, limit int) ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []model.Message
	for _, msg := range m.messages {
		if msg.ChannelID == channelID {
			matched = append(matched, msg)
		}
	}
	if limit >= 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	out := make([]model.Message, len(matched))
	copy(out, matched)
	return out, nil
}
