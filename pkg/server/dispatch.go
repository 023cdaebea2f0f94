package server

import (
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/NicolasHaas/govox/pkg/presence"
	"github.com/NicolasHaas/govox/pkg/protocol"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// session is the per-connection dispatch unit. One goroutine (run) owns the
// wire: it alternates between draining the outbound queue and handling
// inbound messages fed by the read goroutine, so neither side starves the
// other and every write happens in one place.
type session struct {
	srv      *Server
	conn     net.Conn
	dec      *protocol.Decoder
	id       uint32
	username string
	out      *presence.Outbound
	inbox    chan protocol.Message
	done     chan struct{} // closed at teardown; releases a blocked reader
	once     sync.Once
}

// run is the dispatch loop. It exits on inbound EOF/error (inbox closes) or
// on a write failure; teardown is the caller's deferred responsibility.
func (c *session) run() {
	go c.readLoop()

	for {
		select {
		case m, ok := <-c.out.C():
			if !ok {
				return
			}
			if err := protocol.WriteMessage(c.conn, m); err != nil {
				slog.Debug("session write failed", "user", c.username, "session", c.id, "err", err)
				return
			}
		case m, ok := <-c.inbox:
			if !ok {
				return
			}
			c.handle(m)
		}
	}
}

// readLoop decodes inbound frames and hands them to the dispatch loop.
// Closing the inbox is how a dead connection reaches run.
func (c *session) readLoop() {
	defer close(c.inbox)
	for {
		m, err := c.dec.Next()
		if err != nil {
			if err != io.EOF {
				slog.Debug("session read ended", "user", c.username, "session", c.id, "err", err)
			}
			return
		}
		select {
		case c.inbox <- m:
		case <-c.done:
			return
		}
	}
}

// handle routes one inbound message. Types outside the routing table drop
// silently.
func (c *session) handle(m protocol.Message) {
	switch msg := m.(type) {
	case *pb.Ping:
		// Liveness echo back to the sender's own queue.
		if !c.out.TrySend(msg) {
			c.srv.metrics.OutboundDrops.Add(1)
		}
	case *pb.UDPTunnel:
		c.handleVoice(msg)
	case *pb.TextMessage:
		c.handleChat(msg)
	case *pb.UserState:
		c.handleUserState(msg)
	}
}

// teardown removes the peer, notifies everyone left and closes the queue.
// Runs exactly once no matter how the session dies; removal before close
// guarantees no enqueue can race the closed queue.
func (c *session) teardown() {
	c.once.Do(func() {
		c.srv.state.Lock()
		p := c.srv.state.RemovePeer(c.id)
		var recipients []*presence.Outbound
		if p != nil {
			recipients = presence.AllRecipients(c.srv.state)
		}
		c.srv.state.Unlock()

		if p != nil {
			gone := &pb.UserRemove{Session: pb.Uint32(c.id)}
			for _, out := range recipients {
				if !out.TrySend(gone) {
					c.srv.metrics.OutboundDrops.Add(1)
				}
			}
			p.Out.Close()
		}

		close(c.done)
		c.srv.metrics.TotalDisconnects.Add(1)
		slog.Info("client disconnected", "user", c.username, "session", c.id)
	})
}
