package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnackScenarioS1(t *testing.T) {
	// Literal bytes: accepted CONNACK, session not present.
	decoded, err := Decode([]byte{0x20, 0x02, 0x00, 0x00})
	require.NoError(t, err)
	ack, ok := decoded.(*CONNACK)
	require.True(t, ok)
	assert.False(t, ack.SessionPresent)
	assert.Equal(t, ReasonCodeAccepted, ack.ReturnCode)
}

func TestConnackRefusedCode(t *testing.T) {
	decoded, err := Decode([]byte{0x20, 0x02, 0x00, 0x03})
	require.NoError(t, err)
	ack := decoded.(*CONNACK)
	assert.Equal(t, ReasonCodeRefusedServer, ack.ReturnCode)
}

func TestConnackUnknownCodeMapsToOther(t *testing.T) {
	decoded, err := Decode([]byte{0x20, 0x02, 0x00, 0x20})
	require.NoError(t, err)
	ack := decoded.(*CONNACK)
	assert.EqualValues(t, 0x20, ack.ReturnCode.Code)
}

func TestConnackPackUnpackRoundtrip(t *testing.T) {
	pkt := &CONNACK{FixedHeader: &FixedHeader{}, SessionPresent: true, ReturnCode: ReasonCodeAccepted}
	var buf bytes.Buffer
	require.NoError(t, pkt.Pack(&buf))

	decoded, err := Decode(buf.Bytes())
	require.NoError(t, err)
	got := decoded.(*CONNACK)
	assert.True(t, got.SessionPresent)
	assert.Equal(t, ReasonCodeAccepted, got.ReturnCode)
}
