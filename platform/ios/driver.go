package ios

import (
	"strings"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/ports"
)

const driverName = "ios"

// Driver implements the SwitchDriver behaviour for Cisco IOS and IOS-XE switches.
type Driver struct{}

// New creates a new IOS driver instance.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect inspects the device to determine whether it is running IOS.
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
	return isIOSVersion(output), nil
}

// GetAuthenticationSequence returns the IOS login prompts.
func (d *Driver) GetAuthenticationSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "Username:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n"},
	}
}

// VLANCommand returns the VLAN summary command.
func (d *Driver) VLANCommand() string {
	return "show vlan brief"
}

// IsCommandError reports whether the switch rejected the last command.
func (d *Driver) IsCommandError(output string) bool {
	return strings.Contains(output, "% ") && isIOSCommandError(output)
}
