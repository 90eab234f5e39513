package packet

import (
	"bytes"
	"io"
)

// CONNACK acknowledges a CONNECT. The engine decodes SessionPresent but
// does not act on it.
type CONNACK struct {
	*FixedHeader

	SessionPresent bool
	ReturnCode     ReasonCode
}

func (pkt *CONNACK) Kind() byte { return 0x2 }

func (pkt *CONNACK) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if pkt.SessionPresent {
		buf.WriteByte(0x01)
	} else {
		buf.WriteByte(0x00)
	}
	buf.WriteByte(pkt.ReturnCode.Code)

	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind(), RemainingLength: uint32(buf.Len())}
	if err := pkt.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (pkt *CONNACK) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 2 {
		return ErrMalformedPacket
	}
	ack, err := buf.ReadByte()
	if err != nil {
		return err
	}
	pkt.SessionPresent = ack&0x01 != 0

	code, err := buf.ReadByte()
	if err != nil {
		return err
	}
	pkt.ReturnCode = ConnackReason(code)
	return nil
}
