package platform

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/ports"
	"github.com/carlosrabelo/vlaninv/platform/ios"
	"github.com/carlosrabelo/vlaninv/platform/nxos"
)

// Auto asks Detect to pick the driver from "show version"
const Auto = "auto"

// SwitchDriver defines the behaviour required to support a switching platform.
type SwitchDriver interface {
	Name() string
	Detect(repo ports.SwitchRepository) (bool, error)

	// GetAuthenticationSequence returns the login dialogue for this platform
	GetAuthenticationSequence(username, password string) []entities.AuthPrompt

	// VLANCommand returns the command listing VLAN ids and names
	VLANCommand() string

	// IsCommandError reports whether output is the CLI rejecting a command
	IsCommandError(output string) bool
}

var registry = []SwitchDriver{
	ios.New(),
	nxos.New(),
}

// Get returns a driver by normalized platform name.
func Get(name string) (SwitchDriver, error) {
	normalized := normalizeName(name)
	for _, driver := range registry {
		if driver.Name() == normalized {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("unknown switch platform: %s", name)
}

// Names returns the names accepted in configuration, including "auto".
func Names() []string {
	names := make([]string, 0, len(registry)+1)
	for _, driver := range registry {
		names = append(names, driver.Name())
	}
	return append(names, Auto)
}

// Available returns all registered drivers.
func Available() []SwitchDriver {
	out := make([]SwitchDriver, len(registry))
	copy(out, registry)
	return out
}

// Detect tries all registered drivers until one matches.
func Detect(repo ports.SwitchRepository) (SwitchDriver, error) {
	var lastErr error
	for _, driver := range registry {
		matched, err := driver.Detect(repo)
		if err != nil {
			lastErr = err
			continue
		}
		if matched {
			return driver, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to detect switch platform")
}

// Resolve returns the configured driver, detecting it when name is "auto".
func Resolve(name string, repo ports.SwitchRepository) (SwitchDriver, error) {
	if normalizeName(name) == Auto {
		return Detect(repo)
	}
	return Get(name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
