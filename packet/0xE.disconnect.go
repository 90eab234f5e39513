package packet

import (
	"bytes"
	"io"
)

// DISCONNECT is the graceful close notification. 3.1.1 carries no
// variable header or payload (those arrived in 5.0).
type DISCONNECT struct {
	*FixedHeader
}

func (pkt *DISCONNECT) Kind() byte { return 0xE }

func (pkt *DISCONNECT) Pack(w io.Writer) error {
	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind()}
	return pkt.FixedHeader.Pack(w)
}

func (pkt *DISCONNECT) Unpack(_ *bytes.Buffer) error {
	return nil
}
