package server

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NicolasHaas/govox/pkg/datastore"
	"github.com/NicolasHaas/govox/pkg/model"
)

// ChannelYAML represents a channel in YAML config.
type ChannelYAML struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Channels    []ChannelYAML `yaml:"channels,omitempty"` // nested sub-channels
}

// ChannelsConfig is the top-level YAML config for channels.
type ChannelsConfig struct {
	Channels []ChannelYAML `yaml:"channels"`
}

// LoadChannelsFromYAML reads a channels YAML file and creates missing
// channels in the store.
func LoadChannelsFromYAML(path string, st datastore.DataStore) error {
	data, err := os.ReadFile(path) //nolint:gosec // path from user-provided CLI config
	if err != nil {
		return fmt.Errorf("read channels config: %w", err)
	}
	return ImportChannelsFromYAML(data, st)
}

// ImportChannelsFromYAML parses YAML data and creates missing channels in
// the store. Channels that already exist (by name) are left untouched.
func ImportChannelsFromYAML(data []byte, st datastore.DataStore) error {
	var cfg ChannelsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse channels config: %w", err)
	}

	for _, ch := range cfg.Channels {
		if err := ensureChannel(st, ch, nil); err != nil {
			slog.Error("failed to create channel from config", "name", ch.Name, "err", err)
		}
	}

	slog.Info("imported channels from YAML", "count", countChannels(cfg.Channels))
	return nil
}

func ensureChannel(st datastore.DataStore, ch ChannelYAML, parentID *uint32) error {
	existing, err := st.GetChannelByName(ch.Name)
	if err != nil {
		return err
	}

	var channelID uint32
	if existing != nil {
		channelID = existing.ID
	} else {
		created := &model.Channel{
			Name:        ch.Name,
			Description: ch.Description,
			ParentID:    parentID,
		}
		if err := st.CreateChannel(created); err != nil {
			return err
		}
		channelID = created.ID
		slog.Debug("created channel from config", "name", ch.Name, "id", channelID)
	}

	// Recurse into sub-channels
	for _, sub := range ch.Channels {
		if err := ensureChannel(st, sub, &channelID); err != nil {
			return err
		}
	}
	return nil
}

func countChannels(channels []ChannelYAML) int {
	count := len(channels)
	for _, ch := range channels {
		count += countChannels(ch.Channels)
	}
	return count
}
