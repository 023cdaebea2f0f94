package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// StartMetricsHTTP starts a lightweight HTTP server that exposes /metrics
// in Prometheus text exposition format. It runs in the background and
// shuts down when the server context is cancelled.
func (s *Server) StartMetricsHTTP() {
	addr := s.cfg.MetricsAddr
	if addr == "" {
		return // metrics endpoint disabled
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics HTTP listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics HTTP error", "err", err)
		}
	}()

	go func() {
		<-s.ctx.Done()
		_ = srv.Close()
	}()
}

// handleMetrics writes all metrics in Prometheus text exposition format.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	m := s.metrics
	uptime := time.Since(m.startTime).Seconds()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	// Helper for gauge/counter lines.
	// Write errors to http.ResponseWriter are non-actionable; suppress errcheck.
	write := func(name, help, mtype string, value int64) {
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", name, mtype)
		_, _ = fmt.Fprintf(w, "%s %d\n", name, value)
	}
	writeFloat := func(name, help, mtype string, value float64) {
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", name, mtype)
		_, _ = fmt.Fprintf(w, "%s %f\n", name, value)
	}

	writeFloat("govox_uptime_seconds", "Server uptime in seconds.", "gauge", uptime)

	write("govox_sessions_active", "Current active sessions.", "gauge",
		m.ActiveConnections.Load())
	write("govox_connections_total", "Lifetime TCP connections accepted.", "counter",
		m.TotalConnections.Load())
	write("govox_disconnects_total", "Total client disconnects.", "counter",
		m.TotalDisconnects.Load())

	write("govox_auth_success_total", "Successful authentication attempts.", "counter",
		m.SuccessfulAuths.Load())
	write("govox_auth_failed_total", "Failed authentication attempts.", "counter",
		m.FailedAuths.Load())

	write("govox_voice_frames_in_total", "Tunneled voice frames received.", "counter",
		m.VoiceFramesIn.Load())
	write("govox_voice_frames_out_total", "Tunneled voice frames forwarded.", "counter",
		m.VoiceFramesOut.Load())
	write("govox_voice_frames_dropped_total", "Dropped voice frames.", "counter",
		m.VoiceFramesDropped.Load())
	write("govox_voice_bytes_in_total", "Voice payload bytes received.", "counter",
		m.VoiceBytesIn.Load())
	write("govox_voice_bytes_out_total", "Voice payload bytes forwarded.", "counter",
		m.VoiceBytesOut.Load())

	write("govox_chat_messages_total", "Chat messages relayed.", "counter",
		m.ChatMessagesSent.Load())
	write("govox_history_replays_total", "History batches sent on join or channel move.", "counter",
		m.HistoryReplays.Load())

	write("govox_outbound_drops_total", "Messages shed on full outbound queues.", "counter",
		m.OutboundDrops.Load())
}
