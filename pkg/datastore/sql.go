package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/NicolasHaas/govox/pkg/model"
)

const dbTimeLayout = "2006-01-02 15:04:05"

// Store is the SQLite-backed datastore.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database behind a connection URL — a
// plain path or a file: URL accepted by the sqlite driver — and runs
// migrations.
func NewStore(url string) (*Store, error) {
	db, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, fmt.Errorf("datastore: open DB: %w", err)
	}

	ctx := context.Background()

	// Enable WAL mode for better concurrent read performance
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("datastore: set WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("datastore: enable FK: %w", err)
	}
	// Set busy timeout to avoid "database is locked" under concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("datastore: set busy_timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("datastore: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT    NOT NULL UNIQUE,
		password_hash TEXT    NOT NULL,
		avatar_url    TEXT,
		bio           TEXT,
		created_at    TEXT    NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS channels (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT    NOT NULL,
		parent_id   INTEGER,
		description TEXT,
		created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS messages (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		sender_name TEXT    NOT NULL,
		channel_id  INTEGER NOT NULL DEFAULT 0,
		content     TEXT    NOT NULL,
		created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
	);

	INSERT OR IGNORE INTO channels (id, name, description) VALUES (0, 'Root', 'Root channel');
	`
	ctx := context.Background()
	if err := s.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	currentVersion, err := s.getSchemaVersion(ctx)
	if err != nil {
		return err
	}

	migrations := []struct {
		version    int
		statements []string
	}{
		{
			version:    1,
			statements: []string{schema},
		},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("datastore: migrate: %w", err)
			}
		}
		if err := s.setSchemaVersion(ctx, m.version); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ensureSchemaMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("datastore: create schema_migrations: %w", err)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		return fmt.Errorf("datastore: check schema_migrations: %w", err)
	}
	if count == 0 {
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (0)"); err != nil {
			return fmt.Errorf("datastore: init schema_migrations: %w", err)
		}
	}
	return nil
}

func (s *Store) getSchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_migrations LIMIT 1").Scan(&v); err != nil {
		return 0, fmt.Errorf("datastore: get schema version: %w", err)
	}
	return v, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, v int) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE schema_migrations SET version = ?", v); err != nil {
		return fmt.Errorf("datastore: set schema version: %w", err)
	}
	return nil
}

func formatDBTime(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

func parseDBTime(value string) (time.Time, error) {
	return time.ParseInLocation(dbTimeLayout, value, time.UTC)
}

// ---- Users ----

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	u := &model.User{}
	var avatar, bio sql.NullString
	var createdAt string
	err := s.db.QueryRowContext(context.Background(),
		"SELECT id, username, password_hash, avatar_url, bio, created_at FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &avatar, &bio, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("datastore: get user: %w", err)
	}
	u.AvatarURL = avatar.String
	u.Bio = bio.String
	parsed, err := parseDBTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("datastore: get user: %w", err)
	}
	u.CreatedAt = parsed
	return u, nil
}

// CreateUser creates a new user and returns it with the assigned ID.
// The UNIQUE constraint on username surfaces as an error here.
func (s *Store) CreateUser(username, passwordHash string) (*model.User, error) {
	res, err := s.db.ExecContext(context.Background(),
		"INSERT INTO users (username, password_hash) VALUES (?, ?)", username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("datastore: create user: %w", err)
	}
	id, _ := res.LastInsertId()
	return &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// UpdateUserProfile sets avatar and/or bio; nil fields are untouched.
func (s *Store) UpdateUserProfile(username string, avatarURL, bio *string) error {
	ctx := context.Background()
	if avatarURL != nil {
		if _, err := s.db.ExecContext(ctx, "UPDATE users SET avatar_url = ? WHERE username = ?", *avatarURL, username); err != nil {
			return fmt.Errorf("datastore: update profile: %w", err)
		}
	}
	if bio != nil {
		if _, err := s.db.ExecContext(ctx, "UPDATE users SET bio = ? WHERE username = ?", *bio, username); err != nil {
			return fmt.Errorf("datastore: update profile: %w", err)
		}
	}
	return nil
}

// ---- Channels ----

// ListChannels returns all channels in ascending id order.
func (s *Store) ListChannels() ([]model.Channel, error) {
	rows, err := s.db.QueryContext(context.Background(),
		"SELECT id, name, parent_id, description, created_at FROM channels ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("datastore: list channels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var channels []model.Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *ch)
	}
	return channels, rows.Err()
}

// GetChannelByName retrieves a channel by name, or (nil, nil).
func (s *Store) GetChannelByName(name string) (*model.Channel, error) {
	row := s.db.QueryRowContext(context.Background(),
		"SELECT id, name, parent_id, description, created_at FROM channels WHERE name = ?", name)
	ch, err := scanChannel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ch, err
}

// CreateChannel inserts a channel and fills in its assigned ID.
func (s *Store) CreateChannel(ch *model.Channel) error {
	var parent any
	if ch.ParentID != nil {
		parent = int64(*ch.ParentID)
	}
	res, err := s.db.ExecContext(context.Background(),
		"INSERT INTO channels (name, parent_id, description) VALUES (?, ?, ?)",
		ch.Name, parent, ch.Description)
	if err != nil {
		return fmt.Errorf("datastore: create channel: %w", err)
	}
	id, _ := res.LastInsertId()
	ch.ID = uint32(id)
	ch.CreatedAt = time.Now().UTC()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChannel(r rowScanner) (*model.Channel, error) {
	ch := &model.Channel{}
	var parent sql.NullInt64
	var desc sql.NullString
	var createdAt string
	if err := r.Scan(&ch.ID, &ch.Name, &parent, &desc, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("datastore: scan channel: %w", err)
	}
	if parent.Valid {
		p := uint32(parent.Int64)
		ch.ParentID = &p
	}
	ch.Description = desc.String
	parsed, err := parseDBTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("datastore: scan channel: %w", err)
	}
	ch.CreatedAt = parsed
	return ch, nil
}

// ---- Messages ----

// SaveMessage persists one chat message.
func (s *Store) SaveMessage(senderName string, channelID uint32, content string) error {
	_, err := s.db.ExecContext(context.Background(),
		"INSERT INTO messages (sender_name, channel_id, content, created_at) VALUES (?, ?, ?, ?)",
		senderName, channelID, content, formatDBTime(time.Now()))
	if err != nil {
		return fmt.Errorf("datastore: save message: %w", err)
	}
	return nil
}

// RecentMessages returns up to limit most-recent messages for a channel,
// oldest first.
func (s *Store) RecentMessages(channelID uint32, limit int) ([]model.Message, error) {
	rows, err := s.db.QueryContext(context.Background(),
		"SELECT id, sender_name, channel_id, content, created_at FROM messages WHERE channel_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("datastore: recent messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		var createdAt string
		if err := rows.Scan(&m.ID, &m.SenderName, &m.ChannelID, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("datastore: scan message: %w", err)
		}
		parsed, err := parseDBTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("datastore: scan message: %w", err)
		}
		m.CreatedAt = parsed
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query is newest-first; reverse to chronological.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
