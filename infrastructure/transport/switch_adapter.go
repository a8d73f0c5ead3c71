package transport

import (
	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// SwitchAdapter implements the SwitchRepository port on top of a transport Client
type SwitchAdapter struct {
	client Client
}

// NewSwitchAdapter creates a new switch adapter
func NewSwitchAdapter(client Client) *SwitchAdapter {
	return &SwitchAdapter{
		client: client,
	}
}

// Connect connects to the switch
func (s *SwitchAdapter) Connect() error {
	return s.client.Connect()
}

// Disconnect disconnects from the switch
func (s *SwitchAdapter) Disconnect() {
	s.client.Disconnect()
}

// ExecuteCommand connects on demand and executes a command on the switch
func (s *SwitchAdapter) ExecuteCommand(cmd string) (string, error) {
	if !s.client.IsConnected() {
		if err := s.client.Connect(); err != nil {
			return "", err
		}
	}
	return s.client.ExecuteCommand(cmd)
}

// IsConnected checks if connected
func (s *SwitchAdapter) IsConnected() bool {
	return s.client.IsConnected()
}

// Client is a session to one switch over a concrete transport
type Client interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// AuthConfigurable allows setting authentication prompts after client creation
type AuthConfigurable interface {
	SetAuthSequence(prompts []entities.AuthPrompt)
}
