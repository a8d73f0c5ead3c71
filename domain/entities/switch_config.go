package entities

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Transport names accepted in configuration
const (
	TransportSSH    = "ssh"
	TransportTelnet = "telnet"
	TransportSNMP   = "snmp"
)

// DefaultTimeout bounds every prompt wait and SNMP request
const DefaultTimeout = 30 * time.Second

// SwitchConfig defines how to reach and log into a single switch
type SwitchConfig struct {
	Target         string        `yaml:"target"`
	Platform       string        `yaml:"platform"`
	Transport      string        `yaml:"transport"`
	Port           int           `yaml:"port"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	EnablePassword string        `yaml:"enable_password"`
	SnmpCommunity  string        `yaml:"snmp_community"`
	Timeout        time.Duration `yaml:"timeout"`
	VerbosityLevel int           `yaml:"-"`
}

// AuthPrompt is a prompt-response pair of a login dialogue
type AuthPrompt struct {
	WaitFor string // prompt to wait for
	SendCmd string // text to send (empty means just wait)
}

// IsDebugEnabled returns true if debug logs are enabled
func (sc SwitchConfig) IsDebugEnabled() bool {
	return sc.VerbosityLevel == 1 || sc.VerbosityLevel == 3
}

// IsRawOutputEnabled returns true if raw switch output is enabled
func (sc SwitchConfig) IsRawOutputEnabled() bool {
	return sc.VerbosityLevel == 2 || sc.VerbosityLevel == 3
}

// PlatformID returns the normalized platform name, "ios" when unset
func (sc SwitchConfig) PlatformID() string {
	platform := strings.ToLower(strings.TrimSpace(sc.Platform))
	if platform == "" {
		return "ios"
	}
	return platform
}

// DefaultPort returns the well-known port of the configured transport
func (sc SwitchConfig) DefaultPort() int {
	switch sc.Transport {
	case TransportTelnet:
		return 23
	case TransportSNMP:
		return 161
	default:
		return 22
	}
}

// Address returns host:port, falling back to the transport default port
func (sc SwitchConfig) Address() string {
	port := sc.Port
	if port == 0 {
		port = sc.DefaultPort()
	}
	return net.JoinHostPort(sc.Target, strconv.Itoa(port))
}

// EffectiveTimeout returns Timeout or DefaultTimeout when unset
func (sc SwitchConfig) EffectiveTimeout() time.Duration {
	if sc.Timeout <= 0 {
		return DefaultTimeout
	}
	return sc.Timeout
}
