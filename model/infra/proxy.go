package infra

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ProxySource represents remote proxy credential location
type ProxySource struct {
	URL         string       `json:"url,omitempty" yaml:"url,omitempty"`
	TokenServer *TokenServer `json:"tokenServer,omitempty" yaml:"tokenServer,omitempty"`
}

// TokenServer represents eToken server proxy request settings
type TokenServer struct {
	URL              string `json:"url" yaml:"url"`
	TokenID          string `json:"tokenId,omitempty" yaml:"tokenId,omitempty"`
	VO               string `json:"vo,omitempty" yaml:"vo,omitempty"`
	VORoles          string `json:"voRoles,omitempty" yaml:"voRoles,omitempty"`
	ProxyRenewal     bool   `json:"proxyRenewal" yaml:"proxyRenewal"`
	DisableVOMSProxy bool   `json:"disableVomsProxy" yaml:"disableVomsProxy"`
	RFCProxy         bool   `json:"rfcProxy" yaml:"rfcProxy"`
	User             string `json:"user,omitempty" yaml:"user,omitempty"`
}

// Location returns the URL the proxy is read from
func (s *ProxySource) Location() (string, error) {
	if s.URL != "" {
		parsed, err := url.Parse(s.URL)
		if err != nil || parsed.Scheme == "" {
			return "", NewConfigurationError("", fmt.Sprintf("%v is not a valid URL: %v", ParamProxyURL, s.URL), err)
		}
		return s.URL, nil
	}
	if s.TokenServer == nil {
		return "", NewConfigurationError("", "no proxy location in configuration parameters", nil)
	}
	return s.TokenServer.Location()
}

// Location builds the token server request URL:
// <base path>/<token id>?[<base query>&]voms=<vo>:<roles>&proxy-renewal=..&disable-voms-proxy=..&rfc-proxy=..&cn-label=[eToken:<user>]
func (t *TokenServer) Location() (string, error) {
	base, err := url.Parse(t.URL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", NewConfigurationError("", fmt.Sprintf("%v not properly configured: %v", ParamETokenServerURL, t.URL), err)
	}
	location := *base
	path := base.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	location.Path = path + t.TokenID
	location.RawPath = ""

	query := strings.Builder{}
	if base.RawQuery != "" {
		query.WriteString(base.RawQuery)
		query.WriteByte('&')
	}
	query.WriteString("voms=")
	query.WriteString(queryEscape(t.VO))
	query.WriteByte(':')
	query.WriteString(queryEscape(t.VORoles))
	query.WriteString("&proxy-renewal=")
	query.WriteString(strconv.FormatBool(t.ProxyRenewal))
	query.WriteString("&disable-voms-proxy=")
	query.WriteString(strconv.FormatBool(t.DisableVOMSProxy))
	query.WriteString("&rfc-proxy=")
	query.WriteString(strconv.FormatBool(t.RFCProxy))
	query.WriteString("&cn-label=")
	if t.User != "" {
		query.WriteString("eToken:")
		query.WriteString(queryEscape(t.User))
	}
	location.RawQuery = query.String()
	return location.String(), nil
}

// queryEscape escapes query value keeping ':' and '/' readable
func queryEscape(value string) string {
	escaped := url.QueryEscape(value)
	return strings.NewReplacer("%3A", ":", "%2F", "/").Replace(escaped)
}
