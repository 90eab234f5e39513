package mqttengine

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds the parameters for a single session. It is validated once,
// in New, rather than re-checked on every operation.
type Config struct {
	// ClientID identifies this session to the peer. Required, at most 23
	// bytes to stay compatible with servers enforcing the 3.1.1 floor.
	ClientID string `yaml:"client_id" validate:"required,max=23"`

	// Username and Password are each sent on CONNECT when non-empty.
	// Password without Username is rejected by Validate.
	Username string `yaml:"username" validate:"omitempty,max=65535"`
	Password string `yaml:"password" validate:"omitempty,max=65535"`

	// KeepAliveSeconds is the CONNECT keep-alive interval. 0 disables the
	// keep-alive state machine entirely: Timer ticks are accepted but
	// never produce a PINGREQ.
	KeepAliveSeconds uint16 `yaml:"keep_alive_seconds" validate:"max=65535"`

	// CleanSession is always sent as the clean-session bit in CONNECT;
	// session persistence across reconnects is not implemented.
	CleanSession bool `yaml:"clean_session"`

	// PacketTimeoutMS is advisory: the engine keeps it in its Config but
	// never reads it, and it drives no timeout or retry logic.
	PacketTimeoutMS uint32 `yaml:"packet_timeout_ms"`

	// MaxRetryCount is retained for configuration compatibility. The
	// engine does not retransmit anything (QoS 0 only), so it has no
	// effect on behavior.
	MaxRetryCount uint16 `yaml:"max_retry_count"`
}

// Validate checks field constraints and the username/password dependency
// that struct tags alone can't express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	// The max=23 tag counts characters; the wire limit is in bytes.
	if len(c.ClientID) > 23 {
		return errors.New("mqttengine: client id exceeds 23 bytes")
	}
	if c.Password != "" && c.Username == "" {
		return errPasswordWithoutUsername
	}
	return nil
}

// DefaultConfig returns a Config with a clean session and a 60 second
// keep-alive, suitable as a starting point for callers who only need to
// override ClientID.
func DefaultConfig(clientID string) Config {
	return Config{
		ClientID:         clientID,
		KeepAliveSeconds: 60,
		CleanSession:     true,
		PacketTimeoutMS:  5000,
	}
}

// LoadConfigFile reads a YAML document from path into a Config. It does
// not call Validate; callers get the same single validation point as
// every other construction path, inside New.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
