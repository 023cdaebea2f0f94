package presence

import (
	"sync"
	"sync/atomic"

	"github.com/NicolasHaas/govox/pkg/protocol"
)

// OutboundCapacity is the per-peer queue depth. A full queue sheds the
// message rather than stalling the broadcaster; voice frames are
// time-sensitive and a dropped frame beats a head-of-line stall.
const OutboundCapacity = 256

// Outbound is the bounded per-peer message queue feeding the wire. It is
// the sole writer-facing endpoint for a peer: broadcasters TrySend into it,
// the peer's own session goroutine drains C().
type Outbound struct {
	mu      sync.Mutex
	ch      chan protocol.Message
	closed  bool
	dropped atomic.Int64
}

// NewOutbound creates a queue with the standard capacity.
func NewOutbound() *Outbound {
	return &Outbound{ch: make(chan protocol.Message, OutboundCapacity)}
}

// TrySend enqueues without blocking. Returns false when the message was
// dropped, either because the queue is full or already closed.
func (o *Outbound) TrySend(m protocol.Message) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return false
	}
	select {
	case o.ch <- m:
		return true
	default:
		o.dropped.Add(1)
		return false
	}
}

// Close ends the queue. The drain loop observes the closed channel and
// exits. Safe to call once per peer, after the peer left the store.
func (o *Outbound) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	close(o.ch)
}

// C returns the receive side for the drain loop.
func (o *Outbound) C() <-chan protocol.Message { return o.ch }

// Dropped reports how many messages were shed on this queue.
func (o *Outbound) Dropped() int64 { return o.dropped.Load() }
