package packet

import (
	"bytes"
	"io"
)

// PINGREQ is a two-byte keep-alive probe: fixed header, no variable
// header or payload.
type PINGREQ struct {
	*FixedHeader
}

func (pkt *PINGREQ) Kind() byte { return 0xC }

func (pkt *PINGREQ) Pack(w io.Writer) error {
	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind()}
	return pkt.FixedHeader.Pack(w)
}

func (pkt *PINGREQ) Unpack(_ *bytes.Buffer) error {
	return nil
}
