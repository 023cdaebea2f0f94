package presence

// Routing rules: pure functions over the locked state that compute
// recipient queues. Callers hold the state lock while calling these and
// enqueue after releasing it.

// VoiceRecipients computes the fan-out for a voice frame from sessionID.
//
// A muted or deafened speaker transmits to nobody. Otherwise every other
// peer in the speaker's channel receives the frame, and the speaker itself
// does too when echo is enabled.
func VoiceRecipients(s *State, sessionID uint32) []*Outbound {
	sender := s.Peer(sessionID)
	if sender == nil {
		return nil
	}
	if sender.SelfMute || sender.SelfDeaf {
		return nil
	}

	var out []*Outbound
	for _, p := range s.peers {
		if p.SessionID != sessionID && p.ChannelID == sender.ChannelID {
			out = append(out, p.Out)
		} else if p.SessionID == sessionID && sender.EchoEnabled {
			out = append(out, p.Out)
		}
	}
	return out
}

// ChatRecipients computes the fan-out for a chat message from sessionID:
// every peer in the sender's channel, the sender included.
func ChatRecipients(s *State, sessionID uint32) []*Outbound {
	sender := s.Peer(sessionID)
	if sender == nil {
		return nil
	}

	var out []*Outbound
	for _, p := range s.peers {
		if p.ChannelID == sender.ChannelID {
			out = append(out, p.Out)
		}
	}
	return out
}

// AllRecipients returns every live peer's queue, for presence-change
// broadcasts.
func AllRecipients(s *State) []*Outbound {
	out := make([]*Outbound, 0, len(s.peers))
	for _, p := range s.peers {
		out = append(out, p.Out)
	}
	return out
}
