// Package operator implements the interactive terminal reviewer.
package operator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/agentstation/progmatch/internal/cmd/output"
	"github.com/agentstation/progmatch/internal/cmd/table"
	"github.com/agentstation/progmatch/pkg/disambiguate"
)

// SelectPrompt is printed before each blocking read.
const SelectPrompt = "Select the top match by index:"

const (
	bold  = "\033[1m"
	reset = "\033[0m"
)

type line struct {
	text string
	err  error
}

// Terminal reads operator replies from an input stream and renders
// candidate tables to an output stream.
type Terminal struct {
	in    io.Reader
	out   io.Writer
	color bool

	once    sync.Once
	lines   chan line
	done    chan struct{}
	stopped chan struct{}
	closed  sync.Once
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithColor toggles ANSI styling.
func WithColor(enabled bool) Option {
	return func(t *Terminal) {
		t.color = enabled
	}
}

// NewTerminal returns an operator reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:      in,
		out:     out,
		lines:   make(chan line),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var _ disambiguate.Operator = (*Terminal)(nil)

// Show renders the prompt's candidate table.
func (t *Terminal) Show(p disambiguate.Prompt) error {
	if err := t.render(p); err != nil {
		return err
	}
	if p.Mode == disambiguate.ModeAudit && len(p.Rows) > 0 {
		_, err := fmt.Fprintf(t.out, "Auto-accepted %q (composite %s >= %s)\n\n",
			p.Rows[0].Name, table.FormatComposite(p.Rows[0].Composite), table.FormatComposite(p.Threshold))
		return err
	}
	return nil
}

// Ask renders the prompt and waits for one line. The reply includes no line
// terminator.
func (t *Terminal) Ask(ctx context.Context, p disambiguate.Prompt) (string, error) {
	if err := t.render(p); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(t.out, "(type %q to finish)\n", p.Token); err != nil {
		return "", err
	}
	return t.Question(ctx, SelectPrompt)
}

// Question prints text and waits for one line of input.
func (t *Terminal) Question(ctx context.Context, text string) (string, error) {
	if _, err := fmt.Fprintf(t.out, "\n%s ", text); err != nil {
		return "", err
	}
	return t.readLine(ctx)
}

func (t *Terminal) render(p disambiguate.Prompt) error {
	title := p.Query
	if t.color {
		title = bold + title + reset
	}
	if _, err := fmt.Fprintf(t.out, "\nQuery: %s [%s]\n", title, p.Category); err != nil {
		return err
	}
	return output.NewFormatter(output.FormatTable).Format(t.out, table.CandidatesToTableData(p.Rows))
}

// Close stops the reader goroutine once its pending read returns. Reads
// after Close report io.EOF.
func (t *Terminal) Close() error {
	t.closed.Do(func() { close(t.done) })
	return nil
}

// readLine returns the next input line. A single goroutine owns the reader
// for the operator's lifetime so a cancelled read never loses input.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return "", io.EOF
	default:
	}
	t.once.Do(func() { go t.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.done:
		return "", io.EOF
	case l, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// scan reads whole lines of any length. A final line without a terminator
// is still delivered.
func (t *Terminal) scan() {
	defer close(t.stopped)
	defer close(t.lines)

	reader := bufio.NewReader(t.in)
	for {
		text, err := reader.ReadString('\n')
		if text != "" || err == nil {
			text = strings.TrimRight(text, "\r\n")
			if !t.send(line{text: text}) {
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				t.send(line{err: err})
			}
			return
		}
	}
}

func (t *Terminal) send(l line) bool {
	select {
	case t.lines <- l:
		return true
	case <-t.done:
		return false
	}
}
