package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyAnswer is returned when a required prompt is left blank
var ErrEmptyAnswer = errors.New("empty answer")

// Prompter asks for credentials on a terminal, or reads them line by line
// when input is not a terminal
type Prompter struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.readPassword = func() (string, error) {
			secret, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			return string(secret), err
		}
	} else {
		p.readPassword = p.readLine
	}
	return p
}

// Ask prints label and returns the trimmed answer
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("%w for %q", ErrEmptyAnswer, strings.TrimSpace(label))
	}
	return answer, nil
}

// AskSecret prints label and reads an answer without echo
func (p *Prompter) AskSecret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	secret, err := p.readPassword()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSpace(label), err)
	}
	return secret, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
