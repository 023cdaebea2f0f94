package server

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// Run starts the server and blocks until shutdown signal.
func (s *Server) Run() error {
	if s.store == nil {
		return fmt.Errorf("server: missing store dependency")
	}
	defer func() { _ = s.store.Close() }()

	// Seed channels from YAML config before loading the channel table
	if s.cfg.ChannelsFile != "" {
		if err := LoadChannelsFromYAML(s.cfg.ChannelsFile, s.store); err != nil {
			slog.Error("failed to load channels config", "err", err)
		}
	}

	if err := s.loadChannels(); err != nil {
		return err
	}

	if err := s.Start(); err != nil {
		return err
	}

	slog.Info("govox server running", "addr", s.cfg.Addr)

	// Start Prometheus metrics HTTP endpoint
	s.StartMetricsHTTP()

	// Start periodic metrics logging (every 60s)
	s.metrics.StartPeriodicLog(60*time.Second, s.ctx.Done())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down...")
	s.Shutdown()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() {
	s.cancel()
	if s.ln != nil {
		_ = s.ln.Close()
	}
}

// loadChannels moves the channel table from the store into the presence
// store. Channels load once at startup; the dispatch core never creates or
// deletes them.
func (s *Server) loadChannels() error {
	channels, err := s.store.ListChannels()
	if err != nil {
		return fmt.Errorf("server: load channels: %w", err)
	}

	s.state.Lock()
	defer s.state.Unlock()
	for _, ch := range channels {
		cs := &pb.ChannelState{
			ChannelID: pb.Uint32(ch.ID),
			Name:      pb.String(ch.Name),
		}
		if ch.ParentID != nil {
			cs.Parent = pb.Uint32(*ch.ParentID)
		}
		if ch.Description != "" {
			cs.Description = pb.String(ch.Description)
		}
		s.state.InsertChannel(cs)
	}
	slog.Info("channels loaded", "count", len(channels))
	return nil
}

// Start binds the TLS listener and launches the accept loop. A failing
// per-connection TLS handshake is logged and dropped inside the session
// goroutine; it never reaches the accept loop.
func (s *Server) Start() error {
	cert, err := loadOrGenerateTLS(s.cfg)
	if err != nil {
		return fmt.Errorf("server: tls: %w", err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	ln, err := tls.Listen("tcp", s.cfg.Addr, tlsCfg)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	s.ln = ln

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
					slog.Error("accept error", "err", err)
					continue
				}
			}
			go s.handleConn(conn)
		}
	}()

	return nil
}
