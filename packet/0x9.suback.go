package packet

import (
	"bytes"
	"io"
)

// MaxSubackCodes bounds how many return codes a single SUBACK will report.
// A server replying to a SUBSCRIBE with more topic filters than this engine
// ever sends in one call is almost certainly misbehaving; the extras are
// dropped rather than grown without limit.
const MaxSubackCodes = 16

// SUBACK acknowledges a SUBSCRIBE with one return code per requested
// topic filter, in the same order they were subscribed.
type SUBACK struct {
	*FixedHeader

	PacketID    uint16
	ReturnCodes []uint8
}

func (pkt *SUBACK) Kind() byte { return 0x9 }

func (pkt *SUBACK) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.Write(i2b(pkt.PacketID))
	buf.Write(pkt.ReturnCodes)

	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind(), RemainingLength: uint32(buf.Len())}
	if err := pkt.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (pkt *SUBACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 3 {
		return ErrMalformedPacket
	}
	hi, _ := buf.ReadByte()
	lo, _ := buf.ReadByte()
	pkt.PacketID = uint16(hi)<<8 | uint16(lo)

	n := buf.Len()
	if n > MaxSubackCodes {
		n = MaxSubackCodes
	}
	pkt.ReturnCodes = make([]uint8, n)
	for i := 0; i < n; i++ {
		b, err := buf.ReadByte()
		if err != nil {
			return err
		}
		pkt.ReturnCodes[i] = b
	}
	return nil
}
