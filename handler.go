package mqttengine

import (
	"fmt"

	"github.com/octasense/mqttengine/packet"
)

// ConnState is the connection lifecycle state of a session. Transitions
// are monotone: the only way back to Connecting is through Disconnected.
type ConnState uint8

const (
	Disconnected ConnState = iota
	Connecting
	Connected
	Disconnecting
)

func (s ConnState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Message is handed to OnMessage for an inbound PUBLISH. Topic is a copy.
// Payload aliases either the slice passed to Input or the engine's
// reassembly buffer and is only valid for the duration of the callback; a
// handler that needs to keep it must copy it before returning.
type Message struct {
	Topic    string
	Payload  []byte
	QoS      uint8
	Retain   bool
	PacketID uint16
}

// Handlers is the full set of callbacks a caller can install. Every field
// but Send is optional; a nil field is simply not invoked. All callbacks
// run outside the engine's internal lock, on local snapshots, so they may
// safely call back into the engine (Publish, State, and so on) without
// risking deadlock, though doing so from inside a callback re-enters at
// the top of the call stack rather than inline.
type Handlers struct {
	// Send transmits b and reports how many bytes were written, or -1 on
	// failure. Any value other than len(b) counts as a failure: Connect,
	// Publish, Subscribe and Unsubscribe return an error (Subscribe and
	// Unsubscribe have already used up a packet identifier by then), while
	// Disconnect and the keep-alive PINGREQ ignore it and keep their state
	// change. Send is the only required callback.
	Send func(b []byte) int

	// OnConnection fires whenever the session becomes connected or stops
	// being connected: after a successful CONNACK, after a refused
	// CONNACK, after disconnect() completes, after an inbound DISCONNECT,
	// and after the keep-alive supervisor gives up on a peer (reported as
	// packet.ReasonCodeRefusedServer).
	OnConnection func(connected bool, code packet.ReasonCode)

	// OnMessage fires for every inbound PUBLISH that the stream
	// reassembler and packet decoder accept.
	OnMessage func(msg Message)

	// OnPublishAck fires for an inbound PUBACK. The engine never sends a
	// PUBLISH above QoS 0, so this only fires if a peer sends one
	// unprompted.
	OnPublishAck func(packetID uint16)

	// OnSubscribeAck fires for an inbound SUBACK, with one return code
	// per requested topic filter in request order.
	OnSubscribeAck func(packetID uint16, returnCodes []uint8)

	// OnUnsubscribeAck fires for an inbound UNSUBACK.
	OnUnsubscribeAck func(packetID uint16)
}

func (h Handlers) validate() error {
	if h.Send == nil {
		return errNilSend
	}
	return nil
}
