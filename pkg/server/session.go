package server

import (
	"crypto/tls"
	"log/slog"
	"net"
	"runtime"
	"time"

	"github.com/NicolasHaas/govox/pkg/model"
	"github.com/NicolasHaas/govox/pkg/presence"
	"github.com/NicolasHaas/govox/pkg/protocol"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
	"github.com/NicolasHaas/govox/pkg/version"
)

// historyLimit is how many persisted messages replay on join and on
// channel move.
const historyLimit = 50

// handshakeTimeout bounds how long a fresh connection may take to present
// Version and Authenticate.
const handshakeTimeout = 10 * time.Second

// handleConn owns one accepted connection: TLS handshake, protocol
// handshake, bootstrap, then the dispatch loop until the session dies.
func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	remoteAddr := conn.RemoteAddr().String()
	s.metrics.TotalConnections.Add(1)
	s.metrics.ActiveConnections.Add(1)
	defer s.metrics.ActiveConnections.Add(-1)
	slog.Debug("new connection", "remote", remoteAddr)

	// Force the TLS handshake now so a garbage client is shed before it
	// costs a session. Handshake failures never reach the accept loop.
	if tc, ok := conn.(*tls.Conn); ok {
		if err := tc.HandshakeContext(s.ctx); err != nil {
			slog.Debug("tls handshake failed", "remote", remoteAddr, "err", err)
			return
		}
	}

	dec := protocol.NewDecoder(conn)

	// Handshake: exactly one Version, then exactly one Authenticate. Any
	// other opening sequence is a protocol violation, fatal with no reply.
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))

	first, err := dec.Next()
	if err != nil {
		slog.Debug("handshake read failed", "remote", remoteAddr, "err", err)
		return
	}
	clientVersion, ok := first.(*pb.Version)
	if !ok {
		slog.Warn("handshake violation: first message not Version", "remote", remoteAddr)
		return
	}
	logClientVersion(remoteAddr, clientVersion)

	second, err := dec.Next()
	if err != nil {
		slog.Debug("handshake read failed", "remote", remoteAddr, "err", err)
		return
	}
	auth, ok := second.(*pb.Authenticate)
	if !ok {
		slog.Warn("handshake violation: second message not Authenticate", "remote", remoteAddr)
		return
	}
	_ = conn.SetReadDeadline(time.Time{}) // clear deadline

	user, reject, err := authenticate(s.store, auth)
	if err != nil {
		slog.Error("authentication error", "remote", remoteAddr, "err", err)
		return
	}
	if reject != nil {
		s.metrics.FailedAuths.Add(1)
		slog.Info("authentication rejected", "remote", remoteAddr, "reason", *reject.Reason)
		_ = protocol.WriteMessage(conn, reject)
		return
	}
	s.metrics.SuccessfulAuths.Add(1)

	sess := s.bootstrap(conn, dec, user)
	defer sess.teardown()

	slog.Info("client authenticated", "user", user.Username, "session", sess.id, "remote", remoteAddr)

	// Steps after peer insertion write straight to the wire; the roster
	// states queued during bootstrap drain once the dispatch loop starts.
	if err := s.sendSync(conn, sess.id, user.Username); err != nil {
		slog.Debug("bootstrap write failed", "user", user.Username, "err", err)
		return
	}

	sess.run()
}

// bootstrap allocates the session id, cross-notifies the roster and inserts
// the new peer, all in one critical section so no arrival or departure can
// interleave.
func (s *Server) bootstrap(conn net.Conn, dec *protocol.Decoder, user *model.User) *session {
	out := presence.NewOutbound()

	var avatar, bio *string
	if user.AvatarURL != "" {
		avatar = pb.String(user.AvatarURL)
	}
	if user.Bio != "" {
		bio = pb.String(user.Bio)
	}

	s.state.Lock()
	id := s.state.AllocateSessionID()

	arrival := &pb.UserState{
		Session:   pb.Uint32(id),
		Name:      pb.String(user.Username),
		UserID:    pb.Uint32(id),
		ChannelID: pb.Uint32(presence.RootChannelID),
		AvatarURL: avatar,
		Comment:   bio,
	}
	for _, p := range s.state.Peers() {
		out.TrySend(rosterState(p))
		if !p.Out.TrySend(arrival) {
			s.metrics.OutboundDrops.Add(1)
		}
	}

	s.state.InsertPeer(&presence.Peer{
		SessionID: id,
		Username:  user.Username,
		ChannelID: presence.RootChannelID,
		AvatarURL: avatar,
		Bio:       bio,
		Out:       out,
	})
	s.state.Unlock()

	return &session{
		srv:      s,
		conn:     conn,
		dec:      dec,
		id:       id,
		username: user.Username,
		out:      out,
		inbox:    make(chan protocol.Message),
		done:     make(chan struct{}),
	}
}

// sendSync performs the server half of the handshake: Version, the sorted
// channel list, a self-UserState, ServerSync, then the root channel's
// history. Any write error is fatal to the session.
func (s *Server) sendSync(conn net.Conn, id uint32, username string) error {
	if err := protocol.WriteMessage(conn, serverVersion()); err != nil {
		return err
	}

	s.state.Lock()
	channels := s.state.Channels()
	s.state.Unlock()
	for _, ch := range channels {
		if err := protocol.WriteMessage(conn, ch); err != nil {
			return err
		}
	}

	self := &pb.UserState{
		Session:   pb.Uint32(id),
		Name:      pb.String(username),
		UserID:    pb.Uint32(id),
		ChannelID: pb.Uint32(presence.RootChannelID),
	}
	if err := protocol.WriteMessage(conn, self); err != nil {
		return err
	}

	sync := &pb.ServerSync{
		Session:      pb.Uint32(id),
		MaxBandwidth: pb.Uint32(s.cfg.MaxBandwidth),
		WelcomeText:  pb.String(s.cfg.WelcomeText),
	}
	if err := protocol.WriteMessage(conn, sync); err != nil {
		return err
	}

	for _, tm := range s.historyMessages(presence.RootChannelID) {
		if err := protocol.WriteMessage(conn, tm); err != nil {
			return err
		}
	}
	return nil
}

// historyMessages fetches the most recent persisted messages for a channel
// as replayable TextMessage records, oldest first. A store failure skips
// the replay; the session carries on.
func (s *Server) historyMessages(channelID uint32) []*pb.TextMessage {
	msgs, err := s.store.RecentMessages(channelID, historyLimit)
	if err != nil {
		slog.Warn("history fetch failed", "channel", channelID, "err", err)
		return nil
	}

	out := make([]*pb.TextMessage, 0, len(msgs))
	for _, m := range msgs {
		tm := &pb.TextMessage{
			Message: pb.String("[History] " + m.SenderName + ": " + m.Content),
		}
		if !m.CreatedAt.IsZero() {
			tm.Timestamp = pb.Uint64(uint64(m.CreatedAt.Unix()))
		}
		out = append(out, tm)
	}
	if len(out) > 0 {
		s.metrics.HistoryReplays.Add(1)
	}
	return out
}

// rosterState describes an existing peer to a newcomer.
func rosterState(p *presence.Peer) *pb.UserState {
	return &pb.UserState{
		Session:   pb.Uint32(p.SessionID),
		Name:      pb.String(p.Username),
		ChannelID: pb.Uint32(p.ChannelID),
		SelfMute:  pb.Bool(p.SelfMute),
		SelfDeaf:  pb.Bool(p.SelfDeaf),
		AvatarURL: p.AvatarURL,
		Comment:   p.Bio,
	}
}

func serverVersion() *pb.Version {
	return &pb.Version{
		Version:   pb.Uint32(version.Protocol),
		Release:   pb.String("govox " + version.String()),
		OS:        pb.String(runtime.GOOS),
		OSVersion: pb.String(runtime.Version()),
	}
}

func logClientVersion(remote string, v *pb.Version) {
	var packed uint32
	if v.Version != nil {
		packed = *v.Version
	}
	var release string
	if v.Release != nil {
		release = *v.Release
	}
	slog.Info("client version", "remote", remote, "version", packed, "release", release)
}
