package presence

import (
	"testing"

	"github.com/NicolasHaas/govox/pkg/protocol"
	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

func newTestPeer(s *State, username string, channel uint32) *Peer {
	p := &Peer{
		SessionID: s.AllocateSessionID(),
		Username:  username,
		ChannelID: channel,
		Out:       NewOutbound(),
	}
	s.InsertPeer(p)
	return p
}

func TestSessionIDsMonotonic(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	prev := uint32(0)
	for i := 0; i < 100; i++ {
		id := s.AllocateSessionID()
		if id <= prev {
			t.Fatalf("session id %d not greater than %d", id, prev)
		}
		prev = id
	}
	if prev != 100 {
		t.Fatalf("ids should start at 1: last = %d", prev)
	}
}

func TestInsertRemovePeer(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	a := newTestPeer(s, "alice", RootChannelID)
	b := newTestPeer(s, "bob", RootChannelID)

	if got := s.Peer(a.SessionID); got != a {
		t.Fatalf("Peer(%d): got %v", a.SessionID, got)
	}
	if s.PeerCount() != 2 {
		t.Fatalf("PeerCount: got %d, want 2", s.PeerCount())
	}

	removed := s.RemovePeer(a.SessionID)
	if removed != a {
		t.Fatalf("RemovePeer: got %v, want alice", removed)
	}
	if s.RemovePeer(a.SessionID) != nil {
		t.Fatal("RemovePeer: second removal should return nil")
	}
	if s.Peer(a.SessionID) != nil {
		t.Fatal("Peer: removed peer still present")
	}
	if got := s.Peer(b.SessionID); got != b {
		t.Fatal("Peer: unrelated peer disturbed by removal")
	}
}

func TestChannelsSortedAscending(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	for _, id := range []uint32{5, 0, 3, 9, 1} {
		s.InsertChannel(&pb.ChannelState{ChannelID: pb.Uint32(id)})
	}

	channels := s.Channels()
	if len(channels) != 5 {
		t.Fatalf("Channels: got %d, want 5", len(channels))
	}
	for i := 1; i < len(channels); i++ {
		if *channels[i-1].ChannelID >= *channels[i].ChannelID {
			t.Fatalf("Channels not ascending at %d: %d then %d", i, *channels[i-1].ChannelID, *channels[i].ChannelID)
		}
	}
	if !s.HasChannel(3) {
		t.Fatal("HasChannel(3) = false")
	}
	if s.HasChannel(4) {
		t.Fatal("HasChannel(4) = true")
	}
}

func hasOutbound(list []*Outbound, o *Outbound) bool {
	for _, c := range list {
		if c == o {
			return true
		}
	}
	return false
}

func TestVoiceRecipientsSameChannel(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	a := newTestPeer(s, "alice", 7)
	b := newTestPeer(s, "bob", 7)
	c := newTestPeer(s, "carol", 8)

	got := VoiceRecipients(s, a.SessionID)
	if len(got) != 1 || !hasOutbound(got, b.Out) {
		t.Fatalf("VoiceRecipients: want only bob, got %d recipients", len(got))
	}
	if hasOutbound(got, c.Out) {
		t.Fatal("VoiceRecipients: cross-channel peer included")
	}
}

func TestVoiceRecipientsEcho(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	a := newTestPeer(s, "alice", 7)
	b := newTestPeer(s, "bob", 7)
	a.EchoEnabled = true

	got := VoiceRecipients(s, a.SessionID)
	if len(got) != 2 || !hasOutbound(got, a.Out) || !hasOutbound(got, b.Out) {
		t.Fatalf("VoiceRecipients with echo: want sender+bob, got %d recipients", len(got))
	}
}

func TestVoiceRecipientsMutedSender(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	a := newTestPeer(s, "alice", 7)
	newTestPeer(s, "bob", 7)

	a.SelfMute = true
	if got := VoiceRecipients(s, a.SessionID); got != nil {
		t.Fatalf("muted sender: got %d recipients, want none", len(got))
	}

	a.SelfMute = false
	a.SelfDeaf = true
	if got := VoiceRecipients(s, a.SessionID); got != nil {
		t.Fatalf("deafened sender: got %d recipients, want none", len(got))
	}

	if got := VoiceRecipients(s, 999); got != nil {
		t.Fatalf("unknown sender: got %d recipients, want none", len(got))
	}
}

func TestChatRecipientsIncludeSender(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	a := newTestPeer(s, "alice", 0)
	b := newTestPeer(s, "bob", 0)
	c := newTestPeer(s, "carol", 1)

	got := ChatRecipients(s, a.SessionID)
	if len(got) != 2 || !hasOutbound(got, a.Out) || !hasOutbound(got, b.Out) {
		t.Fatalf("ChatRecipients: want alice+bob, got %d recipients", len(got))
	}
	if hasOutbound(got, c.Out) {
		t.Fatal("ChatRecipients: cross-channel peer included")
	}
}

func TestAllRecipients(t *testing.T) {
	s := NewState()
	s.Lock()
	defer s.Unlock()

	a := newTestPeer(s, "alice", 0)
	b := newTestPeer(s, "bob", 3)

	got := AllRecipients(s)
	if len(got) != 2 || !hasOutbound(got, a.Out) || !hasOutbound(got, b.Out) {
		t.Fatalf("AllRecipients: got %d recipients, want both", len(got))
	}
}

func TestOutboundTrySendAndDrop(t *testing.T) {
	o := NewOutbound()
	msg := &pb.Ping{Timestamp: pb.Uint64(1)}

	for i := 0; i < OutboundCapacity; i++ {
		if !o.TrySend(msg) {
			t.Fatalf("TrySend %d: dropped below capacity", i)
		}
	}
	if o.TrySend(msg) {
		t.Fatal("TrySend: succeeded on a full queue")
	}
	if o.Dropped() != 1 {
		t.Fatalf("Dropped: got %d, want 1", o.Dropped())
	}

	// Drain one slot; the queue accepts again.
	<-o.C()
	if !o.TrySend(msg) {
		t.Fatal("TrySend: dropped after drain")
	}
}

func TestOutboundCloseIdempotent(t *testing.T) {
	o := NewOutbound()
	o.TrySend(&pb.Ping{})
	o.Close()
	o.Close() // must not panic

	if o.TrySend(&pb.Ping{}) {
		t.Fatal("TrySend: succeeded on a closed queue")
	}

	// Buffered message still drains, then the channel reports closed.
	var drained []protocol.Message
	for m := range o.C() {
		drained = append(drained, m)
	}
	if len(drained) != 1 {
		t.Fatalf("drained %d messages, want 1", len(drained))
	}
}
