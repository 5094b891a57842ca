package proxy

import (
	"fmt"
	"time"
)

// Config represents remote proxy retrieval settings
type Config struct {
	TimeoutMs    int `json:"timeoutMs" yaml:"timeoutMs"`
	Retries      int `json:"retries" yaml:"retries"`
	RetryDelayMs int `json:"retryDelayMs" yaml:"retryDelayMs"`
}

// DefaultConfig returns default proxy retrieval settings
func DefaultConfig() Config {
	return Config{
		TimeoutMs:    30000,
		Retries:      2,
		RetryDelayMs: 500,
	}
}

// Timeout returns per attempt timeout
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// RetryDelay returns delay between attempts
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// Validate checks settings
func (c Config) Validate() error {
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("proxy.timeoutMs must be > 0")
	}
	if c.Retries < 0 {
		return fmt.Errorf("proxy.retries must be >= 0")
	}
	if c.RetryDelayMs < 0 {
		return fmt.Errorf("proxy.retryDelayMs must be >= 0")
	}
	return nil
}
