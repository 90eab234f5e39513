package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubackDecode(t *testing.T) {
	decoded, err := Decode([]byte{0x40, 0x02, 0x00, 0x01})
	require.NoError(t, err)
	ack, ok := decoded.(*PUBACK)
	require.True(t, ok)
	assert.EqualValues(t, 1, ack.PacketID)
}
