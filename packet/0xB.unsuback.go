package packet

import (
	"bytes"
	"io"
)

// UNSUBACK acknowledges an UNSUBSCRIBE. 3.1.1 carries no return codes,
// just the packet identifier being acknowledged.
type UNSUBACK struct {
	*FixedHeader

	PacketID uint16
}

func (pkt *UNSUBACK) Kind() byte { return 0xB }

func (pkt *UNSUBACK) Pack(w io.Writer) error {
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

func (pkt *UNSUBACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return ErrMalformedPacket
	}
	hi, _ := buf.ReadByte()
	lo, _ := buf.ReadByte()
	pkt.PacketID = uint16(hi)<<8 | uint16(lo)
	return nil
}
