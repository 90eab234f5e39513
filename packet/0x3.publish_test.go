package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishScenarioS2(t *testing.T) {
	data := []byte{0x30, 0x11, 0x00, 0x0A, 't', 'e', 's', 't', '/', 't', 'o', 'p', 'i', 'c', 'h', 'e', 'l', 'l', 'o'}
	decoded, err := Decode(data)
	require.NoError(t, err)
	pub, ok := decoded.(*PUBLISH)
	require.True(t, ok)
	assert.Equal(t, "test/topic", pub.Topic)
	assert.Equal(t, []byte("hello"), pub.Payload)
	assert.EqualValues(t, 0, pub.QoS)
	assert.False(t, pub.IsRetained())
}

func TestPublishPackUnpackRoundtripRetain(t *testing.T) {
	pkt := &PUBLISH{FixedHeader: &FixedHeader{Retain: 1}, Topic: "a/b", Payload: []byte("x")}
	var buf bytes.Buffer
	require.NoError(t, pkt.Pack(&buf))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	got := decoded.(*PUBLISH)
	assert.Equal(t, "a/b", got.Topic)
	assert.Equal(t, []byte("x"), got.Payload)
	assert.True(t, got.IsRetained())
}

func TestPublishEmptyPayload(t *testing.T) {
	pkt := &PUBLISH{FixedHeader: &FixedHeader{}, Topic: "t", Payload: nil}
	var buf bytes.Buffer
	require.NoError(t, pkt.Pack(&buf))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	got := decoded.(*PUBLISH)
	assert.Empty(t, got.Payload)
}
