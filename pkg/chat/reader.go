package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// LineReader reads one line of user input after showing the prompt.
// Implementations return readline.ErrInterrupt when the user hits
// Ctrl-C and io.EOF at the end of input.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	Close() error
}

type terminalReader struct {
	rl   *readline.Instance
	once sync.Once
}

// NewTerminalReader reads from the terminal with line editing, an
// in-memory history and exit-phrase completion.
func NewTerminalReader() (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		AutoComplete:    newExitCompleter(),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &terminalReader{rl: rl}, nil
}

func (t *terminalReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	// Closing the instance unblocks Readline with io.EOF.
	stop := context.AfterFunc(ctx, func() {
		t.Close()
	})
	defer stop()
	t.rl.SetPrompt(prompt)
	return t.rl.Readline()
}

func (t *terminalReader) Close() error {
	var err error
	t.once.Do(func() {
		err = t.rl.Close()
	})
	return err
}

type readResult struct {
	line string
	err  error
}

type plainReader struct {
	br  *bufio.Reader
	out io.Writer

	// pending is the read a canceled ReadLine left behind. The next
	// ReadLine picks up its result instead of reading concurrently.
	pending chan readResult
}

// NewReader reads lines from in, writing the prompt to out itself. It
// serves piped input where readline has no terminal to drive. Lines
// have no length limit.
func NewReader(in io.Reader, out io.Writer) LineReader {
	return &plainReader{
		br:  bufio.NewReader(in),
		out: out,
	}
}

func (p *plainReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	ch := p.pending
	if ch == nil {
		ch = make(chan readResult, 1)
		go p.read(ch)
		p.pending = ch
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		p.pending = nil
		return r.line, r.err
	}
}

func (p *plainReader) read(ch chan<- readResult) {
	line, err := p.br.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	ch <- readResult{line: line, err: err}
}

func (p *plainReader) Close() error {
	return nil
}
