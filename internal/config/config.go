package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	// StaticDir points at built web assets served as the route fallback;
	// empty (the default) disables static serving.
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`
	// DatabasePath enables the sqlite activity log; empty disables it.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`
	// MessageRateLimit caps inbound ws messages per connection per minute.
	MessageRateLimit int `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		MessageRateLimit:  240,
	}
}
