package jobservice

import (
	"fmt"
	"time"
)

// DefaultCommandTimeoutMs bounds a job without its own timeout
const DefaultCommandTimeoutMs = 10 * 60 * 1000

// Config represents job service settings
type Config struct {
	CommandTimeoutMs int `json:"commandTimeoutMs,omitempty" yaml:"commandTimeoutMs,omitempty"`
}

// DefaultConfig returns default job service config
func DefaultConfig() Config {
	return Config{CommandTimeoutMs: DefaultCommandTimeoutMs}
}

// Timeout returns timeout for a job, preferring its own setting
func (c Config) Timeout(timeoutMs int) time.Duration {
	if timeoutMs > 0 {
		return time.Duration(timeoutMs) * time.Millisecond
	}
	if c.CommandTimeoutMs > 0 {
		return time.Duration(c.CommandTimeoutMs) * time.Millisecond
	}
	return DefaultCommandTimeoutMs * time.Millisecond
}

func (c Config) Validate() error {
	if c.CommandTimeoutMs < 0 {
		return fmt.Errorf("invalid commandTimeoutMs: %v", c.CommandTimeoutMs)
	}
	return nil
}
