// Package model defines the persistent domain types for the server.
package model

import "time"

// User represents a registered user.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // PHC-encoded argon2id hash
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Channel represents a voice/text channel. Channels are loaded once at
// startup; the session core never creates or deletes them at runtime.
type Channel struct {
	ID          uint32    `json:"id"`
	Name        string    `json:"name"`
	ParentID    *uint32   `json:"parent_id,omitempty"` // nil = top-level
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Message is a persisted chat message.
type Message struct {
	ID         int64     `json:"id"`
	SenderName string    `json:"sender_name"`
	ChannelID  uint32    `json:"channel_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
