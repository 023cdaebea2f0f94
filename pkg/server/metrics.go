package server

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"
)

// Metrics tracks server runtime statistics.
// All counters use atomic operations for lock-free concurrent access.
type Metrics struct {
	startTime time.Time

	// Connection counters
	TotalConnections  atomic.Int64 // lifetime TCP connections accepted
	ActiveConnections atomic.Int64 // current active sessions
	FailedAuths       atomic.Int64 // failed authentication attempts
	SuccessfulAuths   atomic.Int64 // successful authentication attempts
	TotalDisconnects  atomic.Int64 // total client disconnects (clean + unclean)

	// Voice counters
	VoiceFramesIn      atomic.Int64 // tunneled voice frames received
	VoiceFramesOut     atomic.Int64 // tunneled voice frames forwarded
	VoiceFramesDropped atomic.Int64 // frames dropped (muted sender, full queue)
	VoiceBytesIn       atomic.Int64 // voice payload bytes received
	VoiceBytesOut      atomic.Int64 // voice payload bytes forwarded

	// Chat counters
	ChatMessagesSent atomic.Int64 // chat messages relayed
	HistoryReplays   atomic.Int64 // history batches sent (join + channel move)

	// Queue counters
	OutboundDrops atomic.Int64 // messages shed on full outbound queues
}

// NewMetrics creates a new Metrics instance with the start time set to now.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// MetricsSnapshot is a point-in-time view of all metrics as a serializable struct.
type MetricsSnapshot struct {
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`

	ActiveConnections int64 `json:"active_connections"`
	TotalConnections  int64 `json:"total_connections"`
	SuccessfulAuths   int64 `json:"successful_auths"`
	FailedAuths       int64 `json:"failed_auths"`
	TotalDisconnects  int64 `json:"total_disconnects"`

	VoiceFramesIn      int64 `json:"voice_frames_in"`
	VoiceFramesOut     int64 `json:"voice_frames_out"`
	VoiceFramesDropped int64 `json:"voice_frames_dropped"`
	VoiceBytesIn       int64 `json:"voice_bytes_in"`
	VoiceBytesOut      int64 `json:"voice_bytes_out"`

	ChatMessagesSent int64 `json:"chat_messages_sent"`
	HistoryReplays   int64 `json:"history_replays"`

	OutboundDrops int64 `json:"outbound_drops"`
}

// Snapshot returns a read-consistent snapshot of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	uptime := time.Since(m.startTime)
	return MetricsSnapshot{
		Uptime:             uptime.Truncate(time.Second).String(),
		UptimeSeconds:      int64(uptime.Seconds()),
		ActiveConnections:  m.ActiveConnections.Load(),
		TotalConnections:   m.TotalConnections.Load(),
		SuccessfulAuths:    m.SuccessfulAuths.Load(),
		FailedAuths:        m.FailedAuths.Load(),
		TotalDisconnects:   m.TotalDisconnects.Load(),
		VoiceFramesIn:      m.VoiceFramesIn.Load(),
		VoiceFramesOut:     m.VoiceFramesOut.Load(),
		VoiceFramesDropped: m.VoiceFramesDropped.Load(),
		VoiceBytesIn:       m.VoiceBytesIn.Load(),
		VoiceBytesOut:      m.VoiceBytesOut.Load(),
		ChatMessagesSent:   m.ChatMessagesSent.Load(),
		HistoryReplays:     m.HistoryReplays.Load(),
		OutboundDrops:      m.OutboundDrops.Load(),
	}
}

// JSON returns the metrics snapshot as a JSON string.
func (m *Metrics) JSON() string {
	data, err := json.MarshalIndent(m.Snapshot(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// LogSummary writes a periodic metrics summary to the logger.
func (m *Metrics) LogSummary() {
	s := m.Snapshot()
	slog.Info("metrics",
		"uptime", s.Uptime,
		"sessions", s.ActiveConnections,
		"total_connections", s.TotalConnections,
		"voice_frames_in", s.VoiceFramesIn,
		"voice_frames_out", s.VoiceFramesOut,
		"voice_frames_dropped", s.VoiceFramesDropped,
		"chat_msgs", s.ChatMessagesSent,
		"queue_drops", s.OutboundDrops,
	)
}

// StartPeriodicLog starts a goroutine that logs metrics every interval.
// It stops when the done channel is closed.
func (m *Metrics) StartPeriodicLog(interval time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				m.LogSummary()
			}
		}
	}()
}
