// Package console implements the operator-facing terminal ports.
package console

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// Prompter implements ports.Prompter with a line editor.
type Prompter struct {
	rl        *readline.Instance
	closeOnce sync.Once
	closeErr  error
}

// NewPrompter creates a prompter reading from in and echoing to out.
func NewPrompter(in io.ReadCloser, out io.Writer) (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &Prompter{rl: rl}, nil
}

// Ask prints prompt and returns the trimmed answer. EOF yields an empty
// answer; an interrupt yields readline.ErrInterrupt.
func (p *Prompter) Ask(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Close releases the terminal. It is safe to call more than once.
func (p *Prompter) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.rl.Close()
	})
	return p.closeErr
}
