package mqttengine

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/octasense/mqttengine/packet"
)

// EngineOption configures optional dependencies on New. Most callers don't
// need any of these: a nil logger becomes a no-op logger, a nil registerer
// disables metrics export.
type EngineOption func(*Engine)

// WithLogger installs log as the engine's structured logger.
func WithLogger(log *zap.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithMetricsRegisterer registers the engine's counters against reg.
func WithMetricsRegisterer(reg prometheus.Registerer) EngineOption {
	return func(e *Engine) { e.reg = reg }
}

// Engine is a transport-agnostic MQTT 3.1.1 client protocol engine. It owns
// no socket and spawns no goroutine of its own: a host feeds it inbound
// bytes through Input, drives its keep-alive clock through Timer, and
// supplies outbound bytes a place to go through Handlers.Send. Every
// exported method is safe to call concurrently; the engine serializes
// access to its own state internally and never holds its lock while
// invoking a callback or Send.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	handlers Handlers
	session  *session

	log *zap.Logger
	reg prometheus.Registerer
	met *metrics
}

// New builds an Engine from cfg and handlers. cfg is validated once here;
// handlers.Send must be non-nil. The returned engine starts Disconnected.
func New(cfg Config, handlers Handlers, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := handlers.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		handlers: handlers,
		session:  newSession(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.met = newMetrics(e.reg, cfg.ClientID)
	return e, nil
}

// State reports the current connection lifecycle state.
func (e *Engine) State() ConnState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.state
}

// IsConnected is shorthand for State() == Connected.
func (e *Engine) IsConnected() bool {
	return e.State() == Connected
}

// NextPacketID allocates and returns the next packet identifier, as
// Subscribe and Unsubscribe do internally. Exposed so a caller that wants
// to correlate its own bookkeeping with the engine's allocator can do so
// without sending a packet.
func (e *Engine) NextPacketID() uint16 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.allocatePacketID()
}

// Connect begins a session: it builds and sends a CONNECT packet and
// moves the state from Disconnected to Connecting. The caller learns the
// outcome (accepted, refused, or never answered) through
// Handlers.OnConnection once the peer's CONNACK arrives, or never, if the
// peer stays silent. Connect does not itself wait for one.
func (e *Engine) Connect() error {
	e.mu.Lock()
	if e.session.state != Disconnected {
		e.mu.Unlock()
		return errNotDisconnected
	}

	pkt := &packet.CONNECT{
		CleanSession: e.cfg.CleanSession,
		KeepAlive:    e.cfg.KeepAliveSeconds,
		ClientID:     e.cfg.ClientID,
		Username:     e.cfg.Username,
		Password:     e.cfg.Password,
	}
	e.mu.Unlock()

	if err := e.send(pkt); err != nil {
		e.log.Error("connect send failed", zap.Error(err))
		return err
	}

	e.mu.Lock()
	e.session.state = Connecting
	e.session.resetKeepAlive()
	e.mu.Unlock()
	e.log.Info("connecting", zap.String("client_id", e.cfg.ClientID))
	return nil
}

// Disconnect tears a session down: it sends a DISCONNECT on a best-effort
// basis (a failed send is not reported; the local state still moves to
// Disconnected), clears the reassembly buffer, and fires
// Handlers.OnConnection(false, ...) once the transition is complete.
func (e *Engine) Disconnect() error {
	e.mu.Lock()
	if e.session.state == Disconnected {
		e.mu.Unlock()
		return errAlreadyDisconnected
	}
	e.session.state = Disconnecting
	e.mu.Unlock()

	_ = e.send(&packet.DISCONNECT{})

	e.mu.Lock()
	e.session.state = Disconnected
	e.session.clearReassembly()
	e.mu.Unlock()

	e.log.Info("disconnected")
	e.fireConnection(false, packet.ReasonCodeAccepted)
	return nil
}

// Publish sends a QoS 0 PUBLISH. The engine never requests or tracks an
// acknowledgment for it: OnPublishAck only fires if a peer sends one
// unprompted.
func (e *Engine) Publish(topic string, payload []byte, retain bool) error {
	e.mu.Lock()
	if e.session.state != Connected {
		e.mu.Unlock()
		return errNotConnected
	}
	e.mu.Unlock()

	fixed := &packet.FixedHeader{}
	if retain {
		fixed.Retain = 1
	}
	pkt := &packet.PUBLISH{
		FixedHeader: fixed,
		Topic:       topic,
		Payload:     payload,
	}
	return e.send(pkt)
}

// Subscribe requests subscriptions to every topic filter in topics, all
// at QoS 0, the only QoS this engine ever negotiates. It returns the
// packet identifier the eventual SUBACK will carry.
func (e *Engine) Subscribe(topics ...string) (uint16, error) {
	if len(topics) == 0 {
		return 0, errors.New("mqttengine: subscribe requires at least one topic")
	}

	e.mu.Lock()
	if e.session.state != Connected {
		e.mu.Unlock()
		return 0, errNotConnected
	}
	id := e.session.allocatePacketID()
	e.mu.Unlock()

	subs := make([]packet.Subscription, len(topics))
	for i, t := range topics {
		subs[i] = packet.Subscription{Topic: t, QoS: 0}
	}
	pkt := &packet.SUBSCRIBE{PacketID: id, Subscriptions: subs}
	if err := e.send(pkt); err != nil {
		return 0, err
	}
	return id, nil
}

// Unsubscribe requests removal of every topic filter in topics. It always
// carries a non-zero packet identifier on the wire, unlike some broken
// encoders that omit it.
func (e *Engine) Unsubscribe(topics ...string) (uint16, error) {
	if len(topics) == 0 {
		return 0, errors.New("mqttengine: unsubscribe requires at least one topic")
	}

	e.mu.Lock()
	if e.session.state != Connected {
		e.mu.Unlock()
		return 0, errNotConnected
	}
	id := e.session.allocatePacketID()
	e.mu.Unlock()

	pkt := &packet.UNSUBSCRIBE{PacketID: id, Topics: topics}
	if err := e.send(pkt); err != nil {
		return 0, err
	}
	return id, nil
}

// Input feeds data (bytes read from the transport, in whatever chunking
// the transport happened to deliver them) through the stream
// reassembler and dispatches every complete packet it yields. It always
// reports consuming the entire slice: there is no backpressure mechanism,
// so a host that can't keep up must buffer upstream of Input itself.
func (e *Engine) Input(data []byte) int {
	e.mu.Lock()
	pkts, dropped := e.session.reassembler.feed(data)
	e.mu.Unlock()

	e.met.BytesReceived.Add(float64(len(data)))
	if dropped > 0 {
		e.met.PacketsDropped.Add(float64(dropped))
	}

	for _, pkt := range pkts {
		e.dispatch(pkt)
	}
	return len(data)
}

// Timer drives the keep-alive clock: elapsedMS is the wall-clock time
// since the previous call. Once Connected with a non-zero keep-alive, it
// accumulates elapsed time and sends a PINGREQ when a full interval has
// passed without one already outstanding. A PINGREQ left unanswered
// across missedPingThreshold consecutive intervals forces a disconnect,
// reported through OnConnection(false, ReasonCodeRefusedServer).
func (e *Engine) Timer(elapsedMS uint32) {
	e.mu.Lock()
	if e.session.state != Connected || e.cfg.KeepAliveSeconds == 0 {
		e.mu.Unlock()
		return
	}

	intervalMS := uint32(e.cfg.KeepAliveSeconds) * 1000
	e.session.keepAliveAccumMS += elapsedMS
	if e.session.keepAliveAccumMS < intervalMS {
		e.mu.Unlock()
		return
	}
	e.session.keepAliveAccumMS = 0

	if e.session.awaitingPingResp {
		e.session.missedPingCount++
		if e.session.missedPingCount < missedPingThreshold {
			e.mu.Unlock()
			return
		}
		e.session.state = Disconnected
		e.session.clearReassembly()
		e.mu.Unlock()
		e.log.Warn("keep-alive exhausted, forcing disconnect", zap.Uint8("missed_pings", missedPingThreshold))
		e.fireConnection(false, packet.ReasonCodeRefusedServer)
		return
	}

	e.session.awaitingPingResp = true
	e.mu.Unlock()

	_ = e.send(&packet.PINGREQ{})
}

// send marshals pkt and hands the bytes to Handlers.Send, updating the
// sent-bytes counters on success.
func (e *Engine) send(pkt packet.Packet) error {
	var buf bytes.Buffer
	if err := pkt.Pack(&buf); err != nil {
		return err
	}

	n := e.handlers.Send(buf.Bytes())
	if n != buf.Len() {
		return errSendFailed
	}

	e.met.PacketsSent.Inc()
	e.met.BytesSent.Add(float64(n))
	return nil
}

// dispatch applies the effect of a single inbound packet, re-acquiring
// the lock only for the slice of work that touches session state and
// always invoking callbacks after releasing it.
func (e *Engine) dispatch(pkt packet.Packet) {
	e.met.PacketsReceived.Inc()

	switch p := pkt.(type) {
	case *packet.CONNACK:
		e.dispatchConnack(p)
	case *packet.PUBLISH:
		if e.handlers.OnMessage != nil {
			e.handlers.OnMessage(Message{
				Topic:    p.Topic,
				Payload:  p.Payload,
				QoS:      p.FixedHeader.QoS,
				Retain:   p.IsRetained(),
				PacketID: p.PacketID,
			})
		}
	case *packet.PUBACK:
		if e.handlers.OnPublishAck != nil {
			e.handlers.OnPublishAck(p.PacketID)
		}
	case *packet.SUBACK:
		if e.handlers.OnSubscribeAck != nil {
			e.handlers.OnSubscribeAck(p.PacketID, p.ReturnCodes)
		}
	case *packet.UNSUBACK:
		if e.handlers.OnUnsubscribeAck != nil {
			e.handlers.OnUnsubscribeAck(p.PacketID)
		}
	case *packet.PINGRESP:
		e.mu.Lock()
		e.session.awaitingPingResp = false
		e.session.missedPingCount = 0
		e.mu.Unlock()
	case *packet.DISCONNECT:
		e.mu.Lock()
		e.session.state = Disconnected
		e.session.clearReassembly()
		e.mu.Unlock()
		e.fireConnection(false, packet.ReasonCodeAccepted)
	default:
		// CONNECT, SUBSCRIBE, UNSUBSCRIBE and PINGREQ are outbound-only
		// from a client's perspective; a peer sending one is ignored.
	}
}

func (e *Engine) dispatchConnack(p *packet.CONNACK) {
	e.mu.Lock()
	if e.session.state != Connecting {
		e.mu.Unlock()
		return
	}
	accepted := p.ReturnCode.Code == packet.ReasonCodeAccepted.Code
	if accepted {
		e.session.state = Connected
		e.session.resetKeepAlive()
	} else {
		e.session.state = Disconnected
		e.session.clearReassembly()
	}
	e.mu.Unlock()

	if accepted {
		e.met.Reconnects.Inc()
	}
	e.fireConnection(accepted, p.ReturnCode)
}

func (e *Engine) fireConnection(connected bool, code packet.ReasonCode) {
	if e.handlers.OnConnection != nil {
		e.handlers.OnConnection(connected, code)
	}
}
