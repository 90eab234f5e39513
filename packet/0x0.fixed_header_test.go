package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedHeaderPackUnpack(t *testing.T) {
	h := &FixedHeader{Kind: 0x3, Retain: 1, RemainingLength: 17}
	var buf bytes.Buffer
	require.NoError(t, h.Pack(&buf))

	got := &FixedHeader{}
	require.NoError(t, got.Unpack(&buf))
	assert.Equal(t, h.Kind, got.Kind)
	assert.Equal(t, h.Retain, got.Retain)
	assert.Equal(t, h.RemainingLength, got.RemainingLength)
}

func TestFixedHeaderRejectsBadSubscribeFlags(t *testing.T) {
	// SUBSCRIBE type byte with flags 0000 instead of the mandated 0010.
	buf := bytes.NewBuffer([]byte{0x80, 0x00})
	h := &FixedHeader{}
	assert.ErrorIs(t, h.Unpack(buf), ErrMalformedFlags)
}

func TestFixedHeaderAcceptsCompliantSubscribeFlags(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x82, 0x00})
	h := &FixedHeader{}
	require.NoError(t, h.Unpack(buf))
	assert.EqualValues(t, 0x8, h.Kind)
	assert.EqualValues(t, 1, h.QoS)
}

func TestFixedHeaderPublishQosOutOfRange(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x3 << 4 | 0b110, 0x00})
	h := &FixedHeader{}
	assert.ErrorIs(t, h.Unpack(buf), ErrProtocolViolationQosOutOfRange)
}
