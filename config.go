package gridgate

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/gridgate/service/jobservice"
	"github.com/viant/gridgate/service/meta"
	"github.com/viant/gridgate/service/proxy"
)

// Config is a serialisable representation of the service configuration. It can
// be populated from JSON or YAML; zero sections inherit their package defaults.
type Config struct {
	Proxy      proxy.Config      `json:"proxy" yaml:"proxy"`
	JobService jobservice.Config `json:"jobService" yaml:"jobService"`
	Events     EventsConfig      `json:"events" yaml:"events"`
	Store      StoreConfig       `json:"store" yaml:"store"`
}

// EventsConfig controls job state event queue
type EventsConfig struct {
	Buffer int `json:"buffer" yaml:"buffer"`
}

// StoreConfig selects infrastructure store; empty URL keeps infrastructures in memory
type StoreConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// DefaultConfig returns a Config populated with package defaults
func DefaultConfig() *Config {
	return &Config{
		Proxy:      proxy.DefaultConfig(),
		JobService: jobservice.DefaultConfig(),
		Events:     EventsConfig{Buffer: 100},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.Proxy.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.JobService.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Events.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("events.buffer must be > 0"))
	}
	return errors.Join(errs...)
}

// LoadConfig loads YAML config from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New()).Load(ctx, URL, ret, options...); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
