package mqttengine

// missedPingThreshold is how many keep-alive intervals a peer may go
// without answering PINGREQ before the engine gives up and disconnects.
const missedPingThreshold = 3

// session holds the mutable state protected by Engine's lock: connection
// state, packet identifier allocation, keep-alive bookkeeping, and the
// stream reassembly buffer. Every method here assumes the caller already
// holds the lock; none of them invoke callbacks or the send sink.
type session struct {
	state ConnState

	nextPacketID uint16

	keepAliveAccumMS  uint32
	awaitingPingResp  bool
	missedPingCount   uint8

	reassembler reassembler
}

func newSession() *session {
	return &session{
		state:        Disconnected,
		nextPacketID: 1,
	}
}

// allocatePacketID returns the current packet identifier and advances it,
// wrapping 65535 back to 1. 0 is never returned: it is reserved to mean
// "no packet identifier" for QoS 0 PUBLISH.
func (s *session) allocatePacketID() uint16 {
	id := s.nextPacketID
	if s.nextPacketID == 65535 {
		s.nextPacketID = 1
	} else {
		s.nextPacketID++
	}
	return id
}

// resetKeepAlive clears the keep-alive accumulator and missed-ping
// bookkeeping, as happens on entering Connecting and again on a clean
// CONNACK.
func (s *session) resetKeepAlive() {
	s.keepAliveAccumMS = 0
	s.awaitingPingResp = false
	s.missedPingCount = 0
}

// clearReassembly drops any buffered partial packet, as happens whenever
// the session moves to Disconnected.
func (s *session) clearReassembly() {
	s.reassembler.reset()
}
