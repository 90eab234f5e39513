package packet

import (
	"bytes"
	"io"
)

var protocolName = []byte{0x00, 0x04, 'M', 'Q', 'T', 'T'}

// Connect flag bits, section 3.1.2.3.
const (
	connectFlagCleanSession = 1 << 1
	connectFlagPassword     = 1 << 6
	connectFlagUsername     = 1 << 7
)

// CONNECT is the first packet a client sends. This engine never builds a
// will message, so the connect flags it emits are limited to the
// clean-session, username and password bits.
type CONNECT struct {
	*FixedHeader

	CleanSession bool
	KeepAlive    uint16
	ClientID     string
	Username     string
	Password     string
}

func (pkt *CONNECT) Kind() byte { return 0x1 }

func (pkt *CONNECT) Pack(w io.Writer) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.Write(protocolName)
	buf.WriteByte(VERSION311)

	var flags byte
	if pkt.CleanSession {
		flags |= connectFlagCleanSession
	}
	if pkt.Username != "" {
		flags |= connectFlagUsername
	}
	if pkt.Password != "" {
		flags |= connectFlagPassword
	}
	buf.WriteByte(flags)
	buf.Write(i2b(pkt.KeepAlive))

	buf.Write(s2b(pkt.ClientID))
	if pkt.Username != "" {
		buf.Write(s2b(pkt.Username))
	}
	if pkt.Password != "" {
		buf.Write(s2b(pkt.Password))
	}

	pkt.FixedHeader = &FixedHeader{Kind: pkt.Kind(), RemainingLength: uint32(buf.Len())}
	if err := pkt.FixedHeader.Pack(w); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (pkt *CONNECT) Unpack(buf *bytes.Buffer) error {
	if buf.Len() < 10 {
		return ErrMalformedPacket
	}
	name := buf.Next(6)
	if !bytes.Equal(name, protocolName) {
		return ErrMalformedPacket
	}

	level, err := buf.ReadByte()
	if err != nil {
		return err
	}
	if level != VERSION311 {
		return ErrMalformedPacket
	}

	flags, err := buf.ReadByte()
	if err != nil {
		return err
	}
	pkt.CleanSession = flags&connectFlagCleanSession != 0

	keepAliveHi, err := buf.ReadByte()
	if err != nil {
		return err
	}
	keepAliveLo, err := buf.ReadByte()
	if err != nil {
		return err
	}
	pkt.KeepAlive = uint16(keepAliveHi)<<8 | uint16(keepAliveLo)

	pkt.ClientID, err = decodeUTF8[string](buf)
	if err != nil {
		return err
	}

	if flags&connectFlagUsername != 0 {
		pkt.Username, err = decodeUTF8[string](buf)
		if err != nil {
			return err
		}
	}
	if flags&connectFlagPassword != 0 {
		pkt.Password, err = decodeUTF8[string](buf)
		if err != nil {
			return err
		}
	}
	return nil
}
