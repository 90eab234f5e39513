package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubackScenarioS6(t *testing.T) {
	decoded, err := Decode([]byte{0x90, 0x04, 0x00, 0x02, 0x00, 0x00})
	require.NoError(t, err)
	ack, ok := decoded.(*SUBACK)
	require.True(t, ok)
	assert.EqualValues(t, 2, ack.PacketID)
	assert.Equal(t, []uint8{0x00, 0x00}, ack.ReturnCodes)
}

func TestSubackCapsReturnCodes(t *testing.T) {
	codes := make([]byte, 20)
	body := append([]byte{0x00, 0x01}, codes...)
	fixed := []byte{0x90}
	enc, err := encodeLength(uint32(len(body)))
	require.NoError(t, err)
	data := append(append(fixed, enc...), body...)

	decoded, err := Decode(data)
	require.NoError(t, err)
	ack := decoded.(*SUBACK)
	assert.Len(t, ack.ReturnCodes, MaxSubackCodes)
}
