package infra

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		params      Parameters
		user        string
		expectErr   error
		check       func(t *testing.T, config Config)
	}{
		{
			description: "gatekeeper with proxy url",
			params:      Parameters{NewParameter("type", "gatekeeper"), NewParameter("proxyurl", "https://proxy/x509")},
			check: func(t *testing.T, config Config) {
				actual, ok := config.(*VOMSConfig)
				if assert.True(t, ok) {
					assert.Equal(t, KindGatekeeper, actual.Kind())
					assert.Equal(t, "https://proxy/x509", actual.Proxy.URL)
				}
			},
		},
		{
			description: "wms defaults",
			params:      Parameters{NewParameter("jobservice", "wms://wms.ct.infn.it:7443/glite_wms_wmproxy_server"), NewParameter("proxyurl", "https://proxy/x509")},
			check: func(t *testing.T, config Config) {
				actual, ok := config.(*WMSConfig)
				if assert.True(t, ok) {
					assert.Equal(t, KindWMS, actual.Kind())
					assert.Equal(t, DefaultRetryCount, actual.RetryCount)
					assert.Equal(t, []string{"wms.RetryCount=3", "wms.rank=other.GlueCEStateFreeCPUs", "wms.MyProxyServer="}, actual.JobServiceAttributes())
				}
			},
		},
		{
			description: "wms explicit values",
			params: Parameters{NewParameter("type", "wms"), NewParameter("proxyurl", "https://proxy/x509"),
				NewParameter("retrycount", "7"), NewParameter("myproxyserver", "myproxy.cnaf.infn.it")},
			check: func(t *testing.T, config Config) {
				actual := config.(*WMSConfig)
				assert.Equal(t, []string{"wms.RetryCount=7", "wms.rank=other.GlueCEStateFreeCPUs", "wms.MyProxyServer=myproxy.cnaf.infn.it"}, actual.JobServiceAttributes())
			},
		},
		{
			description: "wms invalid retry count",
			params:      Parameters{NewParameter("type", "wms"), NewParameter("proxyurl", "https://proxy/x509"), NewParameter("retrycount", "many")},
			expectErr:   ErrConfiguration,
		},
		{
			description: "rocci keys",
			params: Parameters{NewParameter("type", "rocci"), NewParameter("etokenserverurl", "http://etoken:8082/eToken"),
				NewParameter("sshpublickey", "/keys/id.pub"), NewParameter("sshprivatekey", "/keys/id")},
			user: "alice",
			check: func(t *testing.T, config Config) {
				actual := config.(*OCCIConfig)
				assert.Equal(t, "/keys/id.pub", actual.PublicKey)
				assert.Equal(t, "/keys/id", actual.PrivateKey)
				if assert.NotNil(t, actual.Proxy.TokenServer) {
					assert.True(t, actual.Proxy.TokenServer.ProxyRenewal)
					assert.Equal(t, "alice", actual.Proxy.TokenServer.User)
				}
			},
		},
		{
			description: "occi default keys",
			params:      Parameters{NewParameter("type", "occi"), NewParameter("proxyurl", "https://proxy/x509")},
			check: func(t *testing.T, config Config) {
				actual := config.(*OCCIConfig)
				assert.Equal(t, os.ExpandEnv(DefaultSSHPublicKey), actual.PublicKey)
				assert.Equal(t, os.ExpandEnv(DefaultSSHPrivateKey), actual.PrivateKey)
			},
		},
		{
			description: "token server flags",
			params: Parameters{NewParameter("type", "wsgram"), NewParameter("etokenserverurl", "http://etoken:8082/eToken"),
				NewParameter("proxyrenewal", "false"), NewParameter("rfcproxy", "true"), NewParameter("disablevomsproxy", "true")},
			check: func(t *testing.T, config Config) {
				server := config.(*VOMSConfig).Proxy.TokenServer
				assert.False(t, server.ProxyRenewal)
				assert.True(t, server.RFCProxy)
				assert.True(t, server.DisableVOMSProxy)
			},
		},
		{
			description: "invalid flag",
			params:      Parameters{NewParameter("type", "wsgram"), NewParameter("etokenserverurl", "http://etoken:8082/eToken"), NewParameter("rfcproxy", "maybe")},
			expectErr:   ErrConfiguration,
		},
		{
			description: "missing proxy source",
			params:      Parameters{NewParameter("type", "wms")},
			expectErr:   ErrConfiguration,
		},
		{
			description: "ssh",
			params:      Parameters{NewParameter("type", "ssh"), NewParameter("username", "futuregateway"), NewParameter("password", "secret")},
			check: func(t *testing.T, config Config) {
				actual := config.(*SSHConfig)
				assert.Equal(t, "futuregateway", actual.Username)
				assert.Equal(t, "secret", actual.Password)
				assert.Equal(t, []string{"sftp.KnownHosts="}, actual.DataServiceAttributes())
			},
		},
		{
			description: "ssh password conflict",
			params:      Parameters{NewParameter("type", "ssh"), NewParameter("password", "a"), NewParameter("passwordsecret", "mem://localhost/secret")},
			expectErr:   ErrConfiguration,
		},
		{
			description: "unsupported",
			params:      Parameters{NewParameter("type", "ourgrid")},
			expectErr:   ErrUnsupported,
		},
	}

	for _, testCase := range testCases {
		config, err := Parse(testCase.params.Map(), testCase.user)
		if testCase.expectErr != nil {
			assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
			assert.Nil(t, config, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		testCase.check(t, config)
	}
}
