package ports

// SwitchRepository defines the port for a command session with a switch
type SwitchRepository interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}
