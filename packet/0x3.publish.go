package packet

import (
	"bytes"
	"io"
)

// PUBLISH carries application data. Pack always writes QoS 0 with Dup 0
// and no packet identifier. Unpack also accepts QoS 1 and 2, reading the
// packet identifier that follows the topic in that case.
type PUBLISH struct {
	*FixedHeader

	Topic      string
	PacketID   uint16
	Payload    []byte
}

func (pkt *PUBLISH) Kind() byte { return 0x3 }

func (pkt *PUBLISH) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.Write(s2b(pkt.Topic))
	buf.Write(pkt.Payload)

	var retain uint8
	if pkt.FixedHeader != nil && pkt.FixedHeader.Retain != 0 {
		retain = 1
	}
	pkt.FixedHeader = &FixedHeader{
		Kind:            pkt.Kind(),
		Retain:          retain,
		RemainingLength: uint32(buf.Len()),
	}
	if err := pkt.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (pkt *PUBLISH) Unpack(buf *bytes.Buffer) error {
	topic, err := decodeUTF8[string](buf)
	if err != nil {
		return err
	}
	pkt.Topic = topic

	if pkt.FixedHeader.QoS > 0 {
		if buf.Len() < 2 {
			return ErrMalformedPacket
		}
		hi, _ := buf.ReadByte()
		lo, _ := buf.ReadByte()
		pkt.PacketID = uint16(hi)<<8 | uint16(lo)
	}

	pkt.Payload = buf.Bytes()
	return nil
}

// IsRetained reports whether the retain flag was set on this PUBLISH.
func (pkt *PUBLISH) IsRetained() bool {
	return pkt.FixedHeader != nil && pkt.FixedHeader.Retain != 0
}
