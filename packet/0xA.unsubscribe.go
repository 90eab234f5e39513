package packet

import (
	"bytes"
	"io"
)

// UNSUBSCRIBE removes one or more topic subscriptions. Like SUBSCRIBE, its
// fixed-header flags are reserved to 0b0010.
type UNSUBSCRIBE struct {
	*FixedHeader

	PacketID uint16
	Topics   []string
}

func (pkt *UNSUBSCRIBE) Kind() byte { return 0xA }

func (pkt *UNSUBSCRIBE) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.Write(i2b(pkt.PacketID))
	for _, topic := range pkt.Topics {
		buf.Write(s2b(topic))
	}

	pkt.FixedHeader = &FixedHeader{
		Kind:            pkt.Kind(),
		QoS:             1,
		RemainingLength: uint32(buf.Len()),
	}
	if err := pkt.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (pkt *UNSUBSCRIBE) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return ErrMalformedPacket
	}
	hi, _ := buf.ReadByte()
	lo, _ := buf.ReadByte()
	pkt.PacketID = uint16(hi)<<8 | uint16(lo)

	for buf.Len() > 0 {
		topic, err := decodeUTF8[string](buf)
		if err != nil {
			return err
		}
		pkt.Topics = append(pkt.Topics, topic)
	}
	return nil
}
