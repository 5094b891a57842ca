package infra

// Recognized parameter names
const (
	ParamType             = "type"
	ParamJobService       = "jobservice"
	ParamRetryCount       = "retrycount"
	ParamMyProxyServer    = "myproxyserver"
	ParamSSHPublicKey     = "sshpublickey"
	ParamSSHPrivateKey    = "sshprivatekey"
	ParamUsername         = "username"
	ParamPassword         = "password"
	ParamPasswordSecret   = "passwordsecret"
	ParamSecretKey        = "secretkey"
	ParamCredentials      = "credentials"
	ParamKnownHosts       = "knownhosts"
	ParamProxyURL         = "proxyurl"
	ParamETokenServerURL  = "etokenserverurl"
	ParamETokenID         = "etokenid"
	ParamVO               = "vo"
	ParamVORoles          = "voroles"
	ParamProxyRenewal     = "proxyrenewal"
	ParamDisableVOMSProxy = "disablevomsproxy"
	ParamRFCProxy         = "rfcproxy"
)

// Default parameter values
const (
	DefaultRetryCount       = 3
	DefaultSSHPublicKey     = "${HOME}/.ssh/id_rsa.pub"
	DefaultSSHPrivateKey    = "${HOME}/.ssh/id_rsa"
	DefaultProxyRenewal     = true
	DefaultDisableVOMSProxy = false
	DefaultRFCProxy         = false
	DefaultSecretKey        = "blowfish://default"
	DefaultSSHUserID        = "root"
	WMSRank                 = "other.GlueCEStateFreeCPUs"
)
