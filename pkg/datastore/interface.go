// Package datastore defines the persistence contract the session core
// consumes, and its SQLite and in-memory implementations.
package datastore

import "github.com/NicolasHaas/govox/pkg/model"

// DataStore is the storage adapter the server depends on. The core treats
// SaveMessage as best-effort: failures are logged by the caller, never
// surfaced to clients.
type DataStore interface {
	UserReadProvider
	UserWriteProvider
	ChannelReadProvider
	ChannelWriteProvider
	MessageReadProvider
	MessageWriteProvider

	Close() error
}

// Compile-time checks: both implementations satisfy the contract.
var (
	_ DataStore = (*Store)(nil)
	_ DataStore = (*Memory)(nil)
)

type UserReadProvider interface {
	// GetUserByUsername returns (nil, nil) when the user does not exist.
	GetUserByUsername(username string) (*model.User, error)
}

type UserWriteProvider interface {
	// CreateUser fails if the username already exists (uniqueness is the
	// store's constraint, not the caller's).
	CreateUser(username, passwordHash string) (*model.User, error)

	// UpdateUserProfile sets only the non-nil fields.
	UpdateUserProfile(username string, avatarURL, bio *string) error
}

type ChannelReadProvider interface {
	// ListChannels returns all channels in ascending id order.
	ListChannels() ([]model.Channel, error)

	// GetChannelByName returns (nil, nil) when no channel has that name.
	GetChannelByName(name string) (*model.Channel, error)
}

type ChannelWriteProvider interface {
	// CreateChannel inserts a channel and fills in its assigned ID.
	CreateChannel(ch *model.Channel) error
}

type MessageReadProvider interface {
	// RecentMessages returns up to limit most-recent messages for a
	// channel in chronological order (oldest first).
	RecentMessages(channelID uint32, limit int) ([]model.Message, error)
}

type MessageWriteProvider interface {
	SaveMessage(senderName string, channelID uint32, content string) error
}
