package transport

import (
	"fmt"
	"log/slog"

	"github.com/ziutek/telnet"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// TelnetClient manages a Telnet connection to a switch
type TelnetClient struct {
	conn         *telnet.Conn
	shell        *shell
	config       entities.SwitchConfig
	logger       *slog.Logger
	authSequence []entities.AuthPrompt
}

// NewTelnetClient creates a new Telnet client with the given configuration
func NewTelnetClient(cfg entities.SwitchConfig, logger *slog.Logger) *TelnetClient {
	return &TelnetClient{config: cfg, logger: orDiscard(logger)}
}

// SetAuthSequence configures the authentication sequence for this client
func (tc *TelnetClient) SetAuthSequence(prompts []entities.AuthPrompt) {
	tc.authSequence = prompts
}

// defaultAuthSequence accepts both IOS and NX-OS style username prompts
func (tc *TelnetClient) defaultAuthSequence() []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: PromptUsername + "|" + PromptLogin, SendCmd: tc.config.Username + "\n"},
		{WaitFor: PromptPassword, SendCmd: tc.config.Password + "\n"},
	}
}

// Connect establishes a Telnet connection to the switch
func (tc *TelnetClient) Connect() error {
	if tc.conn != nil {
		return nil
	}
	conn, err := telnet.DialTimeout("tcp", tc.config.Address(), tc.config.EffectiveTimeout())
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", tc.config.Target, err)
	}
	tc.conn = conn
	tc.shell = &shell{
		cfg:         tc.config,
		logger:      tc.logger,
		r:           conn,
		w:           conn,
		setDeadline: conn.SetReadDeadline,
	}
	if tc.config.IsDebugEnabled() {
		tc.logger.Debug("connected via telnet", "host", tc.config.Target)
	}

	prompts := tc.authSequence
	if len(prompts) == 0 {
		prompts = tc.defaultAuthSequence()
	}
	if err := tc.shell.login(prompts); err != nil {
		tc.Disconnect()
		return err
	}
	if err := tc.shell.prepare(); err != nil {
		tc.Disconnect()
		return err
	}
	return nil
}

// Disconnect closes the Telnet connection
func (tc *TelnetClient) Disconnect() {
	if tc.conn != nil {
		tc.conn.Close()
		if tc.config.IsDebugEnabled() {
			tc.logger.Debug("disconnected", "host", tc.config.Target)
		}
		tc.conn = nil
		tc.shell = nil
	}
}

func (tc *TelnetClient) IsConnected() bool {
	return tc.conn != nil
}

// ExecuteCommand sends a command to the switch and returns its output
func (tc *TelnetClient) ExecuteCommand(cmd string) (string, error) {
	if tc.shell == nil {
		return "", fmt.Errorf("not connected to %s", tc.config.Target)
	}
	return tc.shell.execute(cmd)
}
