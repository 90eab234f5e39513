package mqttengine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octasense/mqttengine/packet"
)

func TestReassemblerHoldsPartialPacket(t *testing.T) {
	var r reassembler

	var buf bytes.Buffer
	require.NoError(t, (&packet.PUBLISH{Topic: "test/topic", Payload: []byte("hello")}).Pack(&buf))
	whole := buf.Bytes()

	out, dropped := r.feed(whole[:3])
	assert.Empty(t, out)
	assert.Zero(t, dropped)
	assert.Equal(t, 3, r.heldLen())

	out, dropped = r.feed(whole[3:])
	require.Len(t, out, 1)
	assert.Zero(t, dropped)
	pub, ok := out[0].(*packet.PUBLISH)
	require.True(t, ok)
	assert.Equal(t, "test/topic", pub.Topic)
	assert.Equal(t, 0, r.heldLen())
}

func TestReassemblerExtractsMultiplePacketsFromOneFeed(t *testing.T) {
	var r reassembler

	var buf bytes.Buffer
	require.NoError(t, (&packet.PINGREQ{}).Pack(&buf))
	require.NoError(t, (&packet.PINGREQ{}).Pack(&buf))

	out, dropped := r.feed(buf.Bytes())
	assert.Len(t, out, 2)
	assert.Zero(t, dropped)
}

func TestReassemblerDropsOversizePacketButKeepsStreamSane(t *testing.T) {
	var r reassembler

	huge := bytes.Repeat([]byte("x"), packet.MaxPacketSize+1)
	var buf bytes.Buffer
	require.NoError(t, (&packet.PUBLISH{Topic: "a", Payload: huge}).Pack(&buf))
	require.NoError(t, (&packet.PINGREQ{}).Pack(&buf))

	out, dropped := r.feed(buf.Bytes())
	require.Len(t, out, 1)
	_, ok := out[0].(*packet.PINGREQ)
	assert.True(t, ok)
	assert.Equal(t, 1, dropped)
}

func TestReassemblerSkipsFragmentedOversizePacketWithoutBuffering(t *testing.T) {
	var r reassembler

	huge := bytes.Repeat([]byte("x"), packet.MaxPacketSize+1)
	var buf bytes.Buffer
	require.NoError(t, (&packet.PUBLISH{Topic: "a", Payload: huge}).Pack(&buf))
	require.NoError(t, (&packet.PINGREQ{}).Pack(&buf))
	whole := buf.Bytes()

	// Feed just enough of the fixed header for ExpectedLength to learn the
	// oversize remaining length, then the rest of the stream in one piece.
	out, dropped := r.feed(whole[:5])
	assert.Empty(t, out)
	assert.Equal(t, 1, dropped)
	assert.Less(t, cap(r.buf), packet.MaxPacketSize)
	assert.Greater(t, r.skip, 0)

	out, dropped = r.feed(whole[5:])
	require.Len(t, out, 1)
	_, ok := out[0].(*packet.PINGREQ)
	assert.True(t, ok)
	assert.Zero(t, dropped)
	assert.Zero(t, r.skip)
}

func TestReassemblerResetDropsHeldBytes(t *testing.T) {
	var r reassembler
	r.hold([]byte{0x20, 0x02})
	assert.Equal(t, 2, r.heldLen())
	r.reset()
	assert.Equal(t, 0, r.heldLen())
}

func TestReassemblerHoldGrowsByDoublingNotExactSize(t *testing.T) {
	var r reassembler
	r.hold(bytes.Repeat([]byte("a"), reassembleMinCapacity+1))
	assert.True(t, cap(r.buf) >= reassembleMinCapacity*2)
}
