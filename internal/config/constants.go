package config

import "time"

// Environment variable names
const (
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvLogDir          = "LOG_DIR"
	EnvEnvironment     = "ENVIRONMENT"
	EnvServiceName     = "SERVICE_NAME"
	EnvVersion         = "VERSION"
	EnvStartingBalance = "STARTING_BALANCE"
	EnvSpinDelay       = "SPIN_DELAY"
	EnvAllowedOrigins  = "ALLOWED_ORIGINS"
	EnvTrustedProxies  = "TRUSTED_PROXIES"
	EnvRateLimit       = "RATE_LIMIT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

// Defaults
const (
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultServiceName     = "slot-machine"
	DefaultVersion         = "dev"
	DefaultStartingBalance = 100
	DefaultSpinDelay       = 1 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRateLimit       = 1000

	// MaxStartingBalance mirrors the max tag on Config.StartingBalance
	MaxStartingBalance = 1_000_000_000
)
