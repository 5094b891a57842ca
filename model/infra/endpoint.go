package infra

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Endpoint represents job service address
type Endpoint struct {
	URL    string `json:"url"`
	Scheme string `json:"scheme"`
	Host   string `json:"host"`
	Port   int    `json:"port,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Address returns host:port, using defaultPort when port was not specified
func (e *Endpoint) Address(defaultPort int) string {
	port := e.Port
	if port == 0 {
		port = defaultPort
	}
	if port == 0 {
		return e.Host
	}
	return net.JoinHostPort(e.Host, strconv.Itoa(port))
}

func (e *Endpoint) String() string {
	return e.URL
}

// ParseEndpoint parses jobservice value i.e. ssh://host:22 or wms://host:7443/path
func ParseEndpoint(value string) (*Endpoint, error) {
	parsed, err := url.Parse(value)
	if err != nil {
		return nil, NewConfigurationError("", fmt.Sprintf("invalid %v: %v", ParamJobService, value), err)
	}
	if parsed.Scheme == "" || parsed.Hostname() == "" {
		return nil, NewConfigurationError("", fmt.Sprintf("invalid %v: %v, expected <type>://<host>[:port][/path]", ParamJobService, value), nil)
	}
	ret := &Endpoint{
		URL:    value,
		Scheme: parsed.Scheme,
		Host:   parsed.Hostname(),
		Path:   parsed.Path,
	}
	if port := parsed.Port(); port != "" {
		if ret.Port, err = strconv.Atoi(port); err != nil {
			return nil, NewConfigurationError("", fmt.Sprintf("invalid %v port: %v", ParamJobService, port), err)
		}
	}
	return ret, nil
}
