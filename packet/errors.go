package packet

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ReasonCode is a CONNACK connect-return-code, per section 3.2.2.3 of the
// MQTT 3.1.1 spec. It implements error so refusal codes can be returned
// and compared directly.
type ReasonCode struct {
	Code   uint8
	Reason string
}

func (rc ReasonCode) Error() string {
	return fmt.Sprintf("%d: %s", rc.Code, rc.Reason)
}

// CONNACK return codes, section 3.2.2.3. Codes above 5 are not part of the
// 3.1.1 table; callers should treat them as ReasonCodeRefusedOther.
var (
	ReasonCodeAccepted               = ReasonCode{Code: 0x00, Reason: "connection accepted"}
	ReasonCodeRefusedProtocolVersion = ReasonCode{Code: 0x01, Reason: "unacceptable protocol version"}
	ReasonCodeRefusedIdentifier      = ReasonCode{Code: 0x02, Reason: "identifier rejected"}
	ReasonCodeRefusedServer          = ReasonCode{Code: 0x03, Reason: "server unavailable"}
	ReasonCodeRefusedCredentials     = ReasonCode{Code: 0x04, Reason: "bad user name or password"}
	ReasonCodeRefusedAuth            = ReasonCode{Code: 0x05, Reason: "not authorized"}
	ReasonCodeRefusedOther           = ReasonCode{Code: 0xFF, Reason: "refused"}
)

// ConnackReason maps a wire return code to its ReasonCode, falling back to
// ReasonCodeRefusedOther (but preserving the original wire code) for
// anything outside the 3.1.1 table.
func ConnackReason(code uint8) ReasonCode {
	switch code {
	case ReasonCodeAccepted.Code:
		return ReasonCodeAccepted
	case ReasonCodeRefusedProtocolVersion.Code:
		return ReasonCodeRefusedProtocolVersion
	case ReasonCodeRefusedIdentifier.Code:
		return ReasonCodeRefusedIdentifier
	case ReasonCodeRefusedServer.Code:
		return ReasonCodeRefusedServer
	case ReasonCodeRefusedCredentials.Code:
		return ReasonCodeRefusedCredentials
	case ReasonCodeRefusedAuth.Code:
		return ReasonCodeRefusedAuth
	default:
		return ReasonCode{Code: code, Reason: ReasonCodeRefusedOther.Reason}
	}
}

// Wire and protocol errors. Defined with cockroachdb/errors so callers
// further up the stack can errors.Is/As through transport-level wrapping
// without losing the sentinel identity.
var (
	ErrPacketTooLarge               = errors.New("packet exceeds remaining-length limit")
	ErrMalformedVariableByteInteger = errors.New("malformed variable byte integer")
	ErrMalformedFlags               = errors.New("malformed fixed-header flags")
	ErrMalformedPacket              = errors.New("malformed packet")
	ErrBufferTooSmall               = errors.New("destination buffer too small")
	ErrShortString                  = errors.New("string exceeds 65535 bytes")
	ErrProtocolViolationQosOutOfRange = errors.New("qos out of range")
)
