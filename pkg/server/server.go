// Package server implements the govox voice/chat server: TLS listener,
// session lifecycle, and the dispatch core routing voice, chat and
// presence traffic between connected peers.
package server

import (
	"context"
	"net"

	"github.com/NicolasHaas/govox/pkg/datastore"
	"github.com/NicolasHaas/govox/pkg/presence"
)

// Config holds server configuration.
type Config struct {
	Addr         string // TCP/TLS bind address (e.g. ":64738")
	MetricsAddr  string // HTTP bind address for /metrics endpoint (empty = disabled)
	StorageURL   string // storage connection URL (SQLite path or file: URL)
	CertFile     string // TLS certificate file path
	KeyFile      string // TLS private key file path
	DataDir      string // directory for generated certs and data
	ChannelsFile string // YAML file defining channels to create on startup
	WelcomeText  string // welcome string sent in ServerSync
	MaxBandwidth uint32 // advertised per-client bandwidth ceiling (bits/s)
}

// Dependencies holds external dependencies for the server.
// Server assumes ownership of Store and will Close() it on shutdown.
type Dependencies struct {
	Store datastore.DataStore
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         ":64738",
		MetricsAddr:  ":64790",
		StorageURL:   "govox.db",
		DataDir:      ".",
		WelcomeText:  "Welcome to govox! Send /echo to toggle hearing your own voice.",
		MaxBandwidth: 128000,
	}
}

// Server is the main govox server.
type Server struct {
	cfg     Config
	state   *presence.State
	store   datastore.DataStore
	metrics *Metrics
	ln      net.Listener
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new Server instance.
func New(cfg Config, deps Dependencies) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:     cfg,
		state:   presence.NewState(),
		store:   deps.Store,
		metrics: NewMetrics(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// State returns the presence store.
func (s *Server) State() *presence.State {
	return s.state
}

// Metrics returns the server metrics.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}
