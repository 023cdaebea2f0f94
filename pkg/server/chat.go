package server

import (
	"log/slog"
	"strings"
	"time"

	"github.com/NicolasHaas/govox/pkg/presence"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// handleChat routes a text message: the /echo command toggles the sender's
// voice echo and replies privately; everything else broadcasts to the
// sender's channel and persists in the background.
func (c *session) handleChat(tm *pb.TextMessage) {
	var body string
	if tm.Message != nil {
		body = *tm.Message
	}

	if strings.HasPrefix(body, "/echo") {
		c.toggleEcho()
		return
	}

	tm.Actor = pb.Uint32(c.id)
	if tm.Timestamp == nil {
		tm.Timestamp = pb.Uint64(uint64(time.Now().Unix()))
	}

	c.srv.state.Lock()
	sender := c.srv.state.Peer(c.id)
	if sender == nil {
		c.srv.state.Unlock()
		return
	}
	channelID := sender.ChannelID
	recipients := presence.ChatRecipients(c.srv.state, c.id)
	c.srv.state.Unlock()

	for _, out := range recipients {
		if !out.TrySend(tm) {
			c.srv.metrics.OutboundDrops.Add(1)
		}
	}
	c.srv.metrics.ChatMessagesSent.Add(1)

	// Persistence is best-effort and must never block the dispatch loop.
	store, username := c.srv.store, c.username
	go func() {
		if err := store.SaveMessage(username, channelID, body); err != nil {
			slog.Warn("chat persist failed", "user", username, "channel", channelID, "err", err)
		}
	}()
}

// toggleEcho flips the sender's echo flag and confirms to the sender only.
// The command never broadcasts and never persists.
func (c *session) toggleEcho() {
	c.srv.state.Lock()
	p := c.srv.state.Peer(c.id)
	if p == nil {
		c.srv.state.Unlock()
		return
	}
	p.EchoEnabled = !p.EchoEnabled
	on := p.EchoEnabled
	c.srv.state.Unlock()

	text := "Echo mode: OFF"
	if on {
		text = "Echo mode: ON"
	}
	reply := &pb.TextMessage{
		Actor:   pb.Uint32(c.id),
		Session: []uint32{c.id},
		Message: pb.String(text),
	}
	if !c.out.TrySend(reply) {
		c.srv.metrics.OutboundDrops.Add(1)
	}
	slog.Debug("echo toggled", "user", c.username, "session", c.id, "on", on)
}
