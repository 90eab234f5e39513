package packet

import (
	"bytes"
	"io"
)

// PINGRESP answers a PINGREQ: fixed header only.
type PINGRESP struct {
	*FixedHeader
}

func (pkt *PINGRESP) Kind() byte { return 0xD }

func (pkt *PINGRESP) Pack(w io.Writer) error {
	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind()}
	return pkt.FixedHeader.Pack(w)
}

func (pkt *PINGRESP) Unpack(_ *bytes.Buffer) error {
	return nil
}
