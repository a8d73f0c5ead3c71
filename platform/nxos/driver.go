package nxos

import (
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/ports"
)

const driverName = "nxos"

// Driver implements the SwitchDriver behaviour for Cisco Nexus switches.
// NX-OS prints "show vlan brief" with the same three line header as IOS.
type Driver struct{}

// New creates a new NX-OS driver instance.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect inspects the device to determine whether it is running NX-OS.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("show version")
	if err != nil {
		return false, err
	}
	lower := strings.ToLower(output)
	return strings.Contains(lower, "nx-os") || strings.Contains(lower, "nexus"), nil
}

// GetAuthenticationSequence returns the NX-OS login prompts.
func (d *Driver) GetAuthenticationSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "login:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n"},
	}
}

// VLANCommand returns the VLAN summary command.
func (d *Driver) VLANCommand() string {
	return "show vlan brief"
}

// IsCommandError reports whether the switch rejected the last command.
func (d *Driver) IsCommandError(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "% invalid command") ||
		strings.Contains(lower, "% incomplete command") ||
		strings.Contains(lower, "syntax error while parsing")
}
