package packet

import (
	"bytes"
	"fmt"
	"io"
)

// FixedHeader is the two-to-five byte header present on every MQTT control
// packet: a type/flags byte followed by a variable-length remaining-length
// integer.
//
//	byte 1   | packet type (bits 7-4) | flags (bits 3-0) |
//	byte 2.. | remaining length (1-4 bytes)              |
type FixedHeader struct {
	Kind   byte
	Dup    uint8
	QoS    uint8
	Retain uint8

	RemainingLength uint32
}

func (h *FixedHeader) String() string {
	return fmt.Sprintf("%s len=%d", Kind[h.Kind], h.RemainingLength)
}

func (h *FixedHeader) Pack(w io.Writer) error {
	b := make([]byte, 1, 5)
	b[0] = h.Kind<<4 | h.Dup<<3 | h.QoS<<1 | h.Retain

	enc, err := encodeLength(h.RemainingLength)
	if err != nil {
		return err
	}
	b = append(b, enc...)
	_, err = w.Write(b)
	return err
}

// Unpack reads a fixed header from buf. A buffer that ends before the type
// byte or inside the remaining-length field yields io.EOF, which is
// distinct from the ErrMalformedFlags and ErrMalformedVariableByteInteger
// reported for bad header bytes.
func (h *FixedHeader) Unpack(buf *bytes.Buffer) error {
	b, err := buf.ReadByte()
	if err != nil {
		return err
	}

	h.Kind = b >> 4
	h.Dup = b & 0b00001000 >> 3
	h.QoS = b & 0b00000110 >> 1
	h.Retain = b & 0b00000001

	// Section 2.2.2: flags marked "Reserved" must carry exactly the listed
	// value or the packet is malformed. SUBSCRIBE/UNSUBSCRIBE reserve
	// 0b0010 (Dup=0, QoS=1, Retain=0); PUBLISH is the only type whose QoS
	// bits vary. This engine never emits QoS above 0, but it accepts an
	// inbound PUBLISH at QoS 1 or 2 and rejects only the invalid value 3.
	switch h.Kind {
	case 0x3: // PUBLISH
		if h.QoS > 2 {
			return ErrProtocolViolationQosOutOfRange
		}
	case 0x8, 0xA: // SUBSCRIBE, UNSUBSCRIBE
		if h.Dup != 0 || h.QoS != 1 || h.Retain != 0 {
			return ErrMalformedFlags
		}
	default:
		if h.Dup != 0 || h.QoS != 0 || h.Retain != 0 {
			return ErrMalformedFlags
		}
	}

	h.RemainingLength, err = decodeLength(buf)
	return err
}
