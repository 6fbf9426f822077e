package wsgateway

import "time"

// Config controls origin checks and connection keepalive.
// AllowedOrigins of "*" allows any origin; empty means same-origin only.
// A PingPeriod of zero is derived from PongWait.
type Config struct {
	AllowedOrigins []string
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
}

// DefaultConfig returns keepalive defaults with same-origin checking
func DefaultConfig() Config {
	return Config{
		WriteWait:      DefaultWriteWait,
		PongWait:       DefaultPongWait,
		MaxMessageSize: DefaultMaxMessageSize,
	}
}

func (c Config) withDefaults() Config {
	if c.WriteWait <= 0 {
		c.WriteWait = DefaultWriteWait
	}
	if c.PongWait <= 0 {
		c.PongWait = DefaultPongWait
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = (c.PongWait * 9) / 10
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	return c
}
