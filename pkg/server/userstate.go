package server

import (
	"log/slog"

	"github.com/NicolasHaas/govox/pkg/presence"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// handleUserState applies a sparse client delta to the sender's peer record
// and broadcasts derived deltas to every peer, the sender included. Up to
// two messages come out of one inbound delta: a channel move, and a
// mute/deaf/profile change.
func (c *session) handleUserState(us *pb.UserState) {
	c.srv.state.Lock()
	p := c.srv.state.Peer(c.id)
	if p == nil {
		c.srv.state.Unlock()
		return
	}

	// Channel move. Moves to channels the store never loaded are dropped so
	// every peer's channel_id stays a key in the channel mapping.
	var move *pb.UserState
	var movedTo uint32
	if us.ChannelID != nil && c.srv.state.HasChannel(*us.ChannelID) {
		p.ChannelID = *us.ChannelID
		movedTo = *us.ChannelID
		move = &pb.UserState{
			Session:   pb.Uint32(c.id),
			ChannelID: pb.Uint32(*us.ChannelID),
		}
	}

	// Mute/deaf and profile delta. Deafening forces mute; the forced flag
	// rides in the same broadcast so every client converges.
	delta := &pb.UserState{Session: pb.Uint32(c.id)}
	changed := false
	if us.SelfMute != nil {
		p.SelfMute = *us.SelfMute
		delta.SelfMute = pb.Bool(*us.SelfMute)
		changed = true
	}
	if us.SelfDeaf != nil {
		p.SelfDeaf = *us.SelfDeaf
		delta.SelfDeaf = pb.Bool(*us.SelfDeaf)
		changed = true
		if *us.SelfDeaf {
			p.SelfMute = true
			delta.SelfMute = pb.Bool(true)
		}
	}
	if us.AvatarURL != nil {
		p.AvatarURL = pb.String(*us.AvatarURL)
		delta.AvatarURL = pb.String(*us.AvatarURL)
		changed = true
	}
	if us.Comment != nil {
		p.Bio = pb.String(*us.Comment)
		delta.Comment = pb.String(*us.Comment)
		changed = true
	}

	var recipients []*presence.Outbound
	if move != nil || changed {
		recipients = presence.AllRecipients(c.srv.state)
	}
	c.srv.state.Unlock()

	if move != nil {
		c.broadcast(recipients, move)

		// The mover catches up on its new channel's conversation. The fetch
		// must not block the dispatch loop; drop policy applies as usual.
		srv, out := c.srv, c.out
		go func() {
			for _, tm := range srv.historyMessages(movedTo) {
				if !out.TrySend(tm) {
					srv.metrics.OutboundDrops.Add(1)
				}
			}
		}()
		slog.Debug("channel move", "user", c.username, "session", c.id, "channel", movedTo)
	}
	if changed {
		c.broadcast(recipients, delta)
	}

	// Profile fields also persist so they survive reconnects.
	if us.AvatarURL != nil || us.Comment != nil {
		store, username := c.srv.store, c.username
		avatar, bio := us.AvatarURL, us.Comment
		go func() {
			if err := store.UpdateUserProfile(username, avatar, bio); err != nil {
				slog.Warn("profile persist failed", "user", username, "err", err)
			}
		}()
	}
}

func (c *session) broadcast(recipients []*presence.Outbound, m *pb.UserState) {
	for _, out := range recipients {
		if !out.TrySend(m) {
			c.srv.metrics.OutboundDrops.Add(1)
		}
	}
}
