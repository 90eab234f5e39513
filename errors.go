package mqttengine

import "github.com/cockroachdb/errors"

var (
	errNilSend                 = errors.New("mqttengine: handlers.Send must not be nil")
	errPasswordWithoutUsername = errors.New("mqttengine: password set without username")

	errNotDisconnected     = errors.New("mqttengine: connect requires Disconnected state")
	errAlreadyDisconnected = errors.New("mqttengine: already disconnected")
	errNotConnected        = errors.New("mqttengine: operation requires Connected state")

	errSendFailed = errors.New("mqttengine: send sink reported a short write")
)
