// Package console implements the interactive inventory menu and its actions.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned once the input stream is exhausted.
var ErrInputClosed = errors.New("input closed")

// Prompter writes prompts and reads answers one line at a time. Lines are
// read on a separate goroutine so a blocked read never outlives a cancelled
// context.
type Prompter struct {
	out   io.Writer
	lines chan string
	err   error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, lines: make(chan string)}
	go p.scan(in)
	return p
}

func (p *Prompter) scan(in io.Reader) {
	s := bufio.NewScanner(in)
	for s.Scan() {
		p.lines <- strings.TrimRight(s.Text(), "\r")
	}
	p.err = s.Err()
	close(p.lines)
}

// Ask prints prompt and waits for the next line of input.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", fmt.Errorf("read input: %w", p.err)
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}

// Confirm asks a [Yn] question. Anything but "n" or "N" counts as yes.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.Ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) != "n", nil
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}
