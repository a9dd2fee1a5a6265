package wallet

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Prompter asks the user to approve account access by entering the key file password.
// An empty answer means the request was declined.
type Prompter interface {
	Prompt(message string) ([]byte, error)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(message string) ([]byte, error)

// Prompt calls f(message)
func (f PrompterFunc) Prompt(message string) ([]byte, error) {
	return f(message)
}

// TerminalPrompter reads the password from the controlling terminal without echo
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter returns a prompter bound to stdin/stderr
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Prompt prints message and reads a hidden line.
// The caller must zero the returned slice after use.
func (p *TerminalPrompter) Prompt(message string) ([]byte, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(p.Out, message)
	defer fmt.Fprintln(p.Out)

	raw, err := term.ReadPassword(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
