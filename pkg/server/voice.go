package server

import (
	"github.com/NicolasHaas/govox/pkg/presence"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// handleVoice forwards a tunneled voice frame verbatim to every peer in the
// sender's channel, honoring echo and mute on the sender's side. Recipients
// are computed under the lock; enqueues happen after release.
func (c *session) handleVoice(t *pb.UDPTunnel) {
	m := c.srv.metrics
	m.VoiceFramesIn.Add(1)
	m.VoiceBytesIn.Add(int64(len(t.Packet)))

	c.srv.state.Lock()
	recipients := presence.VoiceRecipients(c.srv.state, c.id)
	c.srv.state.Unlock()

	for _, out := range recipients {
		if out.TrySend(t) {
			m.VoiceFramesOut.Add(1)
			m.VoiceBytesOut.Add(int64(len(t.Packet)))
		} else {
			m.VoiceFramesDropped.Add(1)
			m.OutboundDrops.Add(1)
		}
	}
}
