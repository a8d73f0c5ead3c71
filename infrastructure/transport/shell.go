package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/carlosrabelo/vlaninv/domain/entities"
)

const (
	BufferSize        = 4096
	PromptUsername    = "Username:"
	PromptLogin       = "login:"
	PromptPassword    = "Password:"
	PromptEnable      = ">"
	PromptPrivileged  = "#"
	TerminalLengthCmd = "terminal length 0\n"

	pollInterval = 500 * time.Millisecond
)

// ErrPromptTimeout is returned when the switch never shows an expected prompt
var ErrPromptTimeout = errors.New("timeout waiting for prompt")

// shell drives a line-oriented switch CLI over a byte stream
type shell struct {
	cfg         entities.SwitchConfig
	logger      *slog.Logger
	r           io.Reader
	w           io.Writer
	setDeadline func(time.Time) error
}

func (s *shell) send(data string) error {
	_, err := s.w.Write([]byte(data))
	return err
}

func (s *shell) readUntil(pattern string) (string, error) {
	return s.readUntilAny([]string{pattern})
}

// readUntilAny reads until the output ends with one of patterns
func (s *shell) readUntilAny(patterns []string) (string, error) {
	buffer := make([]byte, BufferSize)
	var output strings.Builder
	output.Grow(BufferSize)
	deadline := time.Now().Add(s.cfg.EffectiveTimeout())

	for {
		if s.setDeadline != nil {
			_ = s.setDeadline(time.Now().Add(pollInterval))
		}

		n, err := s.r.Read(buffer)
		if n > 0 {
			output.Write(buffer[:n])
			if s.cfg.IsRawOutputEnabled() {
				s.logger.Info("switch output", "host", s.cfg.Target, "read", string(buffer[:n]))
			}
			if endsWithAny(output.String(), patterns) {
				return output.String(), nil
			}
		}

		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				if time.Now().After(deadline) {
					return output.String(), fmt.Errorf("%w %s", ErrPromptTimeout, strings.Join(patterns, ", "))
				}
				continue
			}
			return output.String(), fmt.Errorf("read error: %w", err)
		}

		if time.Now().After(deadline) {
			return output.String(), fmt.Errorf("%w %s", ErrPromptTimeout, strings.Join(patterns, ", "))
		}
	}
}

// login answers the prompts of sequence in order
func (s *shell) login(sequence []entities.AuthPrompt) error {
	for _, p := range sequence {
		output, err := s.readUntilAny(strings.Split(p.WaitFor, "|"))
		if err != nil {
			return fmt.Errorf("failed to wait for %s: %w, output: %s", p.WaitFor, err, output)
		}
		if p.SendCmd == "" {
			continue
		}
		if err := s.send(p.SendCmd); err != nil {
			return fmt.Errorf("failed to answer %s: %w", p.WaitFor, err)
		}
		if s.cfg.IsDebugEnabled() {
			s.logger.Debug("answered prompt", "host", s.cfg.Target, "prompt", p.WaitFor)
		}
	}
	return nil
}

// prepare waits for the CLI prompt, enters privileged mode when an enable
// password is configured, and disables paging
func (s *shell) prepare() error {
	initial, err := s.readUntilAny([]string{PromptPrivileged, PromptEnable})
	if err != nil {
		return err
	}

	if !endsWithAny(initial, []string{PromptPrivileged}) && s.cfg.EnablePassword != "" {
		if s.cfg.IsDebugEnabled() {
			s.logger.Debug("elevating to privileged mode", "host", s.cfg.Target)
		}
		if err := s.send("enable\n"); err != nil {
			return fmt.Errorf("failed to send enable command to %s: %w", s.cfg.Target, err)
		}
		if _, err := s.readUntil(PromptPassword); err != nil {
			return err
		}
		if err := s.send(s.cfg.EnablePassword + "\n"); err != nil {
			return fmt.Errorf("failed to send enable password to %s: %w", s.cfg.Target, err)
		}
		if _, err := s.readUntil(PromptPrivileged); err != nil {
			return fmt.Errorf("enable password rejected by %s: %w", s.cfg.Target, err)
		}
	}

	if err := s.send(TerminalLengthCmd); err != nil {
		return fmt.Errorf("failed to send terminal length command to %s: %w", s.cfg.Target, err)
	}
	_, err = s.readUntilAny([]string{PromptPrivileged, PromptEnable})
	return err
}

// execute sends cmd and returns its output without the echo and the prompt
func (s *shell) execute(cmd string) (string, error) {
	if s.cfg.IsDebugEnabled() {
		s.logger.Debug("executing", "host", s.cfg.Target, "command", cmd)
	}
	if err := s.send(cmd + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command %s: %w", cmd, err)
	}

	output, err := s.readUntilAny([]string{PromptPrivileged, PromptEnable})
	if err != nil {
		return "", fmt.Errorf("error executing %s: %w", cmd, err)
	}
	output = trimCommandOutput(output)

	if s.cfg.IsRawOutputEnabled() {
		s.logger.Info("command output", "host", s.cfg.Target, "command", cmd, "output", output)
	}
	return output, nil
}

// trimCommandOutput drops the echoed command line and the trailing prompt line
func trimCommandOutput(output string) string {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

func endsWithAny(text string, patterns []string) bool {
	trimmed := strings.TrimRight(text, " \t\r\n")
	for _, pattern := range patterns {
		if pattern != "" && strings.HasSuffix(trimmed, pattern) {
			return true
		}
	}
	return false
}

// pollTimeout is the net.Error returned by pumpReader when no data arrived in time
type pollTimeout struct{}

func (pollTimeout) Error() string   { return "poll timeout" }
func (pollTimeout) Timeout() bool   { return true }
func (pollTimeout) Temporary() bool { return true }

// pumpReader moves a blocking reader behind a channel so that reads can
// time out without touching the underlying connection
type pumpReader struct {
	data    chan []byte
	done    chan struct{}
	err     error
	pending []byte
}

func newPumpReader(r io.Reader) *pumpReader {
	p := &pumpReader{
		data: make(chan []byte, 16),
		done: make(chan struct{}),
	}
	go func() {
		buf := make([]byte, BufferSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case p.data <- chunk:
				case <-p.done:
					return
				}
			}
			if err != nil {
				p.err = err
				close(p.data)
				return
			}
		}
	}()
	return p
}

func (p *pumpReader) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		select {
		case chunk, ok := <-p.data:
			if !ok {
				return 0, p.err
			}
			p.pending = chunk
		case <-time.After(pollInterval):
			return 0, pollTimeout{}
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *pumpReader) close() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}
