package packet

import (
	"bytes"
	"io"
)

// PUBACK acknowledges a QoS 1 PUBLISH. The engine never sends QoS above
// 0, so this type exists purely to decode unsolicited PUBACKs a peer may
// still send and hand the packet identifier back to the caller.
type PUBACK struct {
	*FixedHeader

	PacketID uint16
}

func (pkt *PUBACK) Kind() byte { return 0x4 }

func (pkt *PUBACK) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.Write(i2b(pkt.PacketID))

	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind(), RemainingLength: uint32(buf.Len())}
	if err := pkt.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (pkt *PUBACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return ErrMalformedPacket
	}
	hi, _ := buf.ReadByte()
	lo, _ := buf.ReadByte()
	pkt.PacketID = uint16(hi)<<8 | uint16(lo)
	return nil
}
