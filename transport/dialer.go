// Package transport supplies ready-made Handlers.Send implementations and
// read loops for hosts that don't want to write their own socket plumbing.
// It imports mqttengine; mqttengine never imports it, preserving the
// engine's "no socket, no thread" invariant.
package transport

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/octasense/mqttengine"
)

// Conn wraps the goroutine reading from a dialed connection. Close stops
// the read loop; it does not close the underlying socket, since the
// caller dialed it and may still want it for Send.
type Conn struct {
	closeOnce sync.Once
	stop      func()
	done      chan struct{}
}

// Close stops the read loop and waits for it to exit.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.stop()
		<-c.done
	})
}

// DialTCP opens a plain TCP connection to addr. The caller builds an
// engine whose Handlers.Send is TCPSend(nc), then calls Serve to start
// feeding inbound bytes to it.
func DialTCP(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "transport: dial tcp")
	}
	return nc, nil
}

// DialWebSocket opens a WebSocket connection (binary frames carrying raw
// MQTT packets) to urlStr, for brokers or gateways that only accept
// MQTT-over-WebSocket. The caller builds an engine whose Handlers.Send is
// WebSocketSend(ws), then calls ServeWebSocket.
func DialWebSocket(ctx context.Context, urlStr string) (*websocket.Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, urlStr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "transport: dial websocket")
	}
	return ws, nil
}

// TCPSend returns a Handlers.Send implementation that writes to nc.
func TCPSend(nc net.Conn) func([]byte) int {
	return func(b []byte) int {
		n, err := nc.Write(b)
		if err != nil {
			return -1
		}
		return n
	}
}

// WebSocketSend returns a Handlers.Send implementation that writes b as a
// single binary WebSocket message.
func WebSocketSend(ws *websocket.Conn) func([]byte) int {
	return func(b []byte) int {
		if err := ws.WriteMessage(websocket.BinaryMessage, b); err != nil {
			return -1
		}
		return len(b)
	}
}

// Serve starts a goroutine reading from nc and feeding every chunk it
// reads into engine.Input, until nc.Close is called or a read error
// occurs. The returned Conn's Close stops the loop; it does not close nc
// itself, since the caller owns the dial.
func Serve(nc net.Conn, engine *mqttengine.Engine) *Conn {
	c := &Conn{stop: func() { _ = nc.SetReadDeadline(time.Now()) }, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		buf := make([]byte, 4096)
		for {
			n, err := nc.Read(buf)
			if n > 0 {
				engine.Input(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return c
}

// ServeWebSocket is Serve's counterpart for a dialed WebSocket connection.
func ServeWebSocket(ws *websocket.Conn, engine *mqttengine.Engine) *Conn {
	c := &Conn{stop: func() { _ = ws.SetReadDeadline(time.Now()) }, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		for {
			kind, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if kind == websocket.BinaryMessage {
				engine.Input(data)
			}
		}
	}()
	return c
}
