package packet

import (
	"bytes"
	"io"
)

// Packet is implemented by every MQTT control packet this package knows
// how to encode or decode.
type Packet interface {
	Kind() byte
	Pack(w io.Writer) error
	Unpack(buf *bytes.Buffer) error
}

// Decode parses a single, complete MQTT control packet out of data: fixed
// header followed by exactly RemainingLength bytes of variable header and
// payload. Callers (the stream reassembler, in practice) are responsible
// for handing it exactly one packet's worth of bytes; Decode does not
// itself handle partial input.
func Decode(data []byte) (Packet, error) {
	buf := bytes.NewBuffer(data)

	fixed := &FixedHeader{}
	if err := fixed.Unpack(buf); err != nil {
		return nil, err
	}

	if buf.Len() < int(fixed.RemainingLength) {
		return nil, io.ErrUnexpectedEOF
	}
	body := bytes.NewBuffer(buf.Next(int(fixed.RemainingLength)))

	var pkt Packet
	switch fixed.Kind {
	case 0x1:
		pkt = &CONNECT{FixedHeader: fixed}
	case 0x2:
		pkt = &CONNACK{FixedHeader: fixed}
	case 0x3:
		pkt = &PUBLISH{FixedHeader: fixed}
	case 0x4:
		pkt = &PUBACK{FixedHeader: fixed}
	case 0x8:
		pkt = &SUBSCRIBE{FixedHeader: fixed}
	case 0x9:
		pkt = &SUBACK{FixedHeader: fixed}
	case 0xA:
		pkt = &UNSUBSCRIBE{FixedHeader: fixed}
	case 0xB:
		pkt = &UNSUBACK{FixedHeader: fixed}
	case 0xC:
		pkt = &PINGREQ{FixedHeader: fixed}
	case 0xD:
		pkt = &PINGRESP{FixedHeader: fixed}
	case 0xE:
		pkt = &DISCONNECT{FixedHeader: fixed}
	default:
		return nil, ErrMalformedPacket
	}
	if err := pkt.Unpack(body); err != nil {
		return nil, err
	}
	return pkt, nil
}

// ExpectedLength inspects the start of a byte stream and reports how many
// bytes the next complete packet needs, including its fixed header. It
// returns ok=false if data does not yet contain a full, decodable
// remaining-length field (either too short, or a malformed 5th-byte
// continuation).
func ExpectedLength(data []byte) (n int, ok bool) {
	if len(data) < 1 {
		return 0, false
	}
	buf := bytes.NewBuffer(data[1:])
	if len(data[1:]) == 0 {
		return 0, false
	}
	remaining, pos := uint32(0), 1
	var multiplier uint32 = 1
	for i := 0; i < 4; i++ {
		b, err := buf.ReadByte()
		if err != nil {
			return 0, false
		}
		pos++
		remaining += uint32(b&0x7F) * multiplier
		if b&0x80 == 0 {
			return int(remaining) + pos, true
		}
		multiplier *= 128
	}
	return 0, false
}
