package transport

import (
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/crypto/ssh"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

// SSHClient manages an interactive SSH shell on a switch
type SSHClient struct {
	config  entities.SwitchConfig
	logger  *slog.Logger
	client  *ssh.Client
	session *ssh.Session
	netConn net.Conn
	stdout  *pumpReader
	shell   *shell
}

// NewSSHClient creates a new SSH client with the given configuration
func NewSSHClient(cfg entities.SwitchConfig, logger *slog.Logger) *SSHClient {
	return &SSHClient{config: cfg, logger: orDiscard(logger)}
}

func (sc *SSHClient) clientConfig() *ssh.ClientConfig {
	password := sc.config.Password
	return &ssh.ClientConfig{
		User: sc.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         sc.config.EffectiveTimeout(),
	}
}

func (sc *SSHClient) Connect() error {
	if sc.IsConnected() {
		return nil
	}
	addr := sc.config.Address()

	dialer := &net.Dialer{Timeout: sc.config.EffectiveTimeout()}
	rawConn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s via SSH: %w", sc.config.Target, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(rawConn, addr, sc.clientConfig())
	if err != nil {
		rawConn.Close()
		return fmt.Errorf("failed to establish SSH client connection to %s: %w", sc.config.Target, err)
	}
	client := ssh.NewClient(clientConn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to create SSH session for %s: %w", sc.config.Target, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 9600,
		ssh.TTY_OP_OSPEED: 9600,
	}
	if err := session.RequestPty("vt100", 80, 40, modes); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to request PTY for %s: %w", sc.config.Target, err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to get stdin pipe for %s: %w", sc.config.Target, err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to get stdout pipe for %s: %w", sc.config.Target, err)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to start shell for %s: %w", sc.config.Target, err)
	}

	sc.client = client
	sc.session = session
	sc.netConn = rawConn
	sc.stdout = newPumpReader(stdout)
	sc.shell = &shell{
		cfg:    sc.config,
		logger: sc.logger,
		r:      sc.stdout,
		w:      stdin,
	}

	if sc.config.IsDebugEnabled() {
		sc.logger.Debug("connected via SSH", "host", sc.config.Target)
	}

	if err := sc.shell.prepare(); err != nil {
		sc.Disconnect()
		return err
	}
	return nil
}

func (sc *SSHClient) Disconnect() {
	if sc.session != nil {
		sc.session.Close()
		sc.session = nil
	}
	if sc.client != nil {
		sc.client.Close()
		sc.client = nil
	}
	if sc.netConn != nil {
		sc.netConn.Close()
		sc.netConn = nil
	}
	if sc.stdout != nil {
		sc.stdout.close()
		sc.stdout = nil
	}
	sc.shell = nil
	if sc.config.IsDebugEnabled() {
		sc.logger.Debug("disconnected", "host", sc.config.Target)
	}
}

func (sc *SSHClient) IsConnected() bool {
	return sc.session != nil && sc.client != nil
}

func (sc *SSHClient) ExecuteCommand(cmd string) (string, error) {
	if sc.shell == nil {
		return "", fmt.Errorf("not connected to %s", sc.config.Target)
	}
	return sc.shell.execute(cmd)
}
