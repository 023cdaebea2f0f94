// Package presence holds the process-wide view of connected peers and known
// channels, plus the pure routing rules that decide who receives what.
//
// One mutex guards the whole store: peers, channels and the session
// counter mutate together and their invariants (every peer's channel
// exists, session ids unique) only hold when observed atomically. Holders
// must never perform I/O under the lock; recipient lists are collected
// locked and delivered unlocked through each peer's Outbound queue.
package presence

import (
	"sort"
	"sync"

	pb "github.com/NicolasHaas/govox/pkg/protocol/pb"
)

// RootChannelID is the channel every peer starts in. It always exists.
const RootChannelID uint32 = 0

// Peer is the in-memory record for one active session.
type Peer struct {
	SessionID   uint32
	Username    string
	ChannelID   uint32
	SelfMute    bool
	SelfDeaf    bool // invariant: SelfDeaf implies SelfMute
	EchoEnabled bool
	AvatarURL   *string
	Bio         *string
	Out         *Outbound
}

// State is the shared presence store. Embed-locked: callers hold the mutex
// across whole critical sections and call the accessors inside.
type State struct {
	sync.Mutex

	peers         map[uint32]*Peer
	channels      map[uint32]*pb.ChannelState
	nextSessionID uint32
}

// NewState creates an empty store. Session ids start at 1.
func NewState() *State {
	return &State{
		peers:         make(map[uint32]*Peer),
		channels:      make(map[uint32]*pb.ChannelState),
		nextSessionID: 1,
	}
}

// AllocateSessionID hands out the next session id. Ids are unique and
// strictly increasing for the process lifetime. Caller must hold the lock.
func (s *State) AllocateSessionID() uint32 {
	id := s.nextSessionID
	s.nextSessionID++
	return id
}

// InsertPeer adds a peer under its session id. Caller must hold the lock.
func (s *State) InsertPeer(p *Peer) {
	s.peers[p.SessionID] = p
}

// RemovePeer removes and returns a peer, or nil if the session is unknown.
// Caller must hold the lock.
func (s *State) RemovePeer(sessionID uint32) *Peer {
	p, ok := s.peers[sessionID]
	if !ok {
		return nil
	}
	delete(s.peers, sessionID)
	return p
}

// Peer looks up a live peer, or nil. Caller must hold the lock.
func (s *State) Peer(sessionID uint32) *Peer {
	return s.peers[sessionID]
}

// Peers returns all live peers in unspecified order. Caller must hold the
// lock and must not retain the slice past the critical section.
func (s *State) Peers() []*Peer {
	out := make([]*Peer, 0, len(s.peers))
	for _, p := range s.peers {
		out = append(out, p)
	}
	return out
}

// PeerCount returns the number of live peers. Caller must hold the lock.
func (s *State) PeerCount() int { return len(s.peers) }

// InsertChannel registers a channel record. Channels are only inserted at
// startup. Caller must hold the lock.
func (s *State) InsertChannel(c *pb.ChannelState) {
	if c.ChannelID == nil {
		return
	}
	s.channels[*c.ChannelID] = c
}

// HasChannel reports whether a channel id is known. Caller must hold the
// lock.
func (s *State) HasChannel(id uint32) bool {
	_, ok := s.channels[id]
	return ok
}

// Channels returns all channels in ascending channel_id order, the stable
// order clients need to build their tree deterministically. Caller must
// hold the lock.
func (s *State) Channels() []*pb.ChannelState {
	out := make([]*pb.ChannelState, 0, len(s.channels))
	for _, c := range s.channels {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return *out[i].ChannelID < *out[j].ChannelID
	})
	return out
}
