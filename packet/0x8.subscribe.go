package packet

import (
	"bytes"
	"io"
)

// Subscription is one (topic, requested QoS) entry in a SUBSCRIBE payload.
type Subscription struct {
	Topic string
	QoS   uint8
}

// SUBSCRIBE requests one or more topic subscriptions. Section 3.8.1 fixes
// the reserved fixed-header flags to 0b0010 (Dup=0, QoS=1, Retain=0); a
// packet without them is malformed, not merely unusual.
type SUBSCRIBE struct {
	*FixedHeader

	PacketID      uint16
	Subscriptions []Subscription
}

func (pkt *SUBSCRIBE) Kind() byte { return 0x8 }

func (pkt *SUBSCRIBE) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.Write(i2b(pkt.PacketID))
	for _, sub := range pkt.Subscriptions {
		buf.Write(s2b(sub.Topic))
		buf.WriteByte(sub.QoS)
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

func (pkt *SUBSCRIBE) Unpack(buf *bytes.Buffer) error {
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
		qos, err := buf.ReadByte()
		if err != nil {
			return err
		}
		pkt.Subscriptions = append(pkt.Subscriptions, Subscription{Topic: topic, QoS: qos})
	}
	return nil
}
