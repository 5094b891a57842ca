package infra

import (
	"fmt"
	"os"

	"github.com/viant/toolbox"
)

// Config represents validated, kind specific infrastructure configuration
type Config interface {
	Kind() Kind
	config()
}

// VOMSConfig represents wsgram/gatekeeper configuration
type VOMSConfig struct {
	Type  Kind        `json:"type" yaml:"type"`
	Proxy ProxySource `json:"proxy" yaml:"proxy"`
}

func (c *VOMSConfig) Kind() Kind { return c.Type }
func (c *VOMSConfig) config()    {}

// WMSConfig represents WMS configuration
type WMSConfig struct {
	VOMSConfig    `json:",inline" yaml:",inline"`
	RetryCount    int    `json:"retryCount" yaml:"retryCount"`
	MyProxyServer string `json:"myProxyServer,omitempty" yaml:"myProxyServer,omitempty"`
}

// JobServiceAttributes returns WMS job service vector attribute
func (c *WMSConfig) JobServiceAttributes() []string {
	return []string{
		fmt.Sprintf("wms.RetryCount=%d", c.RetryCount),
		"wms.rank=" + WMSRank,
		"wms.MyProxyServer=" + c.MyProxyServer,
	}
}

// OCCIConfig represents occi/rocci configuration
type OCCIConfig struct {
	Type       Kind        `json:"type" yaml:"type"`
	Proxy      ProxySource `json:"proxy" yaml:"proxy"`
	PublicKey  string      `json:"publicKey" yaml:"publicKey"`
	PrivateKey string      `json:"privateKey" yaml:"privateKey"`
}

func (c *OCCIConfig) Kind() Kind { return c.Type }
func (c *OCCIConfig) config()    {}

// SSHConfig represents ssh configuration
type SSHConfig struct {
	Username       string `json:"username,omitempty" yaml:"username,omitempty"`
	Password       string `json:"-" yaml:"-"`
	PasswordSecret string `json:"passwordSecret,omitempty" yaml:"passwordSecret,omitempty"`
	SecretKey      string `json:"secretKey,omitempty" yaml:"secretKey,omitempty"`
	Credentials    string `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	KnownHosts     string `json:"knownHosts,omitempty" yaml:"knownHosts,omitempty"`
}

func (c *SSHConfig) Kind() Kind { return KindSSH }
func (c *SSHConfig) config()    {}

// DataServiceAttributes returns ssh data service vector attribute
func (c *SSHConfig) DataServiceAttributes() []string {
	return []string{"sftp.KnownHosts=" + c.KnownHosts}
}

// Parse validates parameters and returns kind specific configuration
func Parse(source Source, user string) (Config, error) {
	kind, err := ResolveKind(source)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindWSGram, KindGatekeeper:
		proxy, err := parseProxySource(source, user)
		if err != nil {
			return nil, err
		}
		return &VOMSConfig{Type: kind, Proxy: *proxy}, nil
	case KindWMS:
		proxy, err := parseProxySource(source, user)
		if err != nil {
			return nil, err
		}
		ret := &WMSConfig{VOMSConfig: VOMSConfig{Type: kind, Proxy: *proxy}, RetryCount: DefaultRetryCount}
		if value, ok := Value(source, ParamRetryCount); ok {
			retryCount, err := toolbox.ToInt(value)
			if err != nil || retryCount < 0 {
				return nil, NewConfigurationError("", fmt.Sprintf("invalid %v: %v", ParamRetryCount, value), err)
			}
			ret.RetryCount = retryCount
		}
		ret.MyProxyServer = ValueOrDefault(source, ParamMyProxyServer, "")
		return ret, nil
	case KindOCCI, KindROCCI:
		proxy, err := parseProxySource(source, user)
		if err != nil {
			return nil, err
		}
		return &OCCIConfig{
			Type:       kind,
			Proxy:      *proxy,
			PublicKey:  os.ExpandEnv(ValueOrDefault(source, ParamSSHPublicKey, DefaultSSHPublicKey)),
			PrivateKey: os.ExpandEnv(ValueOrDefault(source, ParamSSHPrivateKey, DefaultSSHPrivateKey)),
		}, nil
	case KindSSH:
		ret := &SSHConfig{
			Username:       ValueOrDefault(source, ParamUsername, ""),
			Password:       ValueOrDefault(source, ParamPassword, ""),
			PasswordSecret: ValueOrDefault(source, ParamPasswordSecret, ""),
			SecretKey:      ValueOrDefault(source, ParamSecretKey, DefaultSecretKey),
			Credentials:    ValueOrDefault(source, ParamCredentials, ""),
			KnownHosts:     ValueOrDefault(source, ParamKnownHosts, ""),
		}
		if ret.Password != "" && ret.PasswordSecret != "" {
			return nil, NewConfigurationError("", fmt.Sprintf("%v and %v are mutually exclusive", ParamPassword, ParamPasswordSecret), nil)
		}
		return ret, nil
	}
	return nil, NewUnsupportedError("", fmt.Sprintf("infrastructure type %v is not supported yet", kind))
}

func parseProxySource(source Source, user string) (*ProxySource, error) {
	proxyURL, hasProxyURL := Value(source, ParamProxyURL)
	tokenServerURL, hasTokenServer := Value(source, ParamETokenServerURL)
	if (!hasProxyURL || proxyURL == "") && (!hasTokenServer || tokenServerURL == "") {
		return nil, NewConfigurationError("", fmt.Sprintf("no proxy location in configuration parameters, %v or %v is required", ParamProxyURL, ParamETokenServerURL), nil)
	}
	if hasProxyURL && proxyURL != "" {
		ret := &ProxySource{URL: proxyURL}
		if _, err := ret.Location(); err != nil {
			return nil, err
		}
		return ret, nil
	}
	server := &TokenServer{
		URL:     tokenServerURL,
		TokenID: ValueOrDefault(source, ParamETokenID, ""),
		VO:      ValueOrDefault(source, ParamVO, ""),
		VORoles: ValueOrDefault(source, ParamVORoles, ""),
		User:    user,
	}
	var err error
	if server.ProxyRenewal, err = boolParameter(source, ParamProxyRenewal, DefaultProxyRenewal); err != nil {
		return nil, err
	}
	if server.DisableVOMSProxy, err = boolParameter(source, ParamDisableVOMSProxy, DefaultDisableVOMSProxy); err != nil {
		return nil, err
	}
	if server.RFCProxy, err = boolParameter(source, ParamRFCProxy, DefaultRFCProxy); err != nil {
		return nil, err
	}
	ret := &ProxySource{TokenServer: server}
	if _, err = ret.Location(); err != nil {
		return nil, err
	}
	return ret, nil
}

func boolParameter(source Source, name string, defaultValue bool) (bool, error) {
	value, ok := Value(source, name)
	if !ok || value == "" {
		return defaultValue, nil
	}
	ret, err := toolbox.ToBoolean(value)
	if err != nil {
		return false, NewConfigurationError("", fmt.Sprintf("invalid %v: %v", name, value), err)
	}
	return ret, nil
}
