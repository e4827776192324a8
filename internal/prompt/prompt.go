// Package prompt asks the operator for free-form input.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the operator dismisses the prompt
var ErrAborted = errors.New("prompt aborted")

// Prompter reads one line of operator input
type Prompter interface {
	Input(ctx context.Context, question string) (string, error)
}

// New returns an interactive form prompter when stdin and stdout are a
// terminal and a plain line reader otherwise.
func New() Prompter {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return &FormPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormPrompter renders a single-field huh form
type FormPrompter struct{}

// Input implements Prompter
func (p *FormPrompter) Input(ctx context.Context, question string) (string, error) {
	var answer string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(question).
				Value(&answer),
		),
	).RunWithContext(ctx)
	return formAnswer(answer, err)
}

// formAnswer maps the result of a form run to a Prompter answer; Esc and
// Ctrl-C in the form become ErrAborted.
func formAnswer(answer string, err error) (string, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// LinePrompter reads answers line by line from a reader
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter; the question is written to out
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Input implements Prompter. End of input counts as an empty answer.
func (p *LinePrompter) Input(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "%s ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
