package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/chzyer/readline"
	"github.com/smacpher/frarold/pkg/chat/agent"
	"github.com/smacpher/frarold/pkg/logs"
	"github.com/smacpher/frarold/pkg/session"
)

type Options struct {
	// Lang is the language tag sent with every query.
	Lang   string
	Scope  session.Scope
	Banner bool
	Logger *slog.Logger
}

type Chat struct {
	agent   agent.Agent
	lang    string
	banner  bool
	tracker *session.Tracker

	r   LineReader
	out io.Writer
	l   *slog.Logger

	bye sync.Once
}

func New(a agent.Agent, r LineReader, out io.Writer, opts Options) (*Chat, error) {
	if a == nil {
		return nil, errors.New("chat: nil agent")
	}
	if opts.Lang == "" {
		return nil, errors.New("chat: empty language tag")
	}
	tracker, err := session.NewTracker(opts.Scope)
	if err != nil {
		return nil, err
	}
	l := opts.Logger
	if l == nil {
		l = logs.Discard()
	}
	return &Chat{
		agent:   a,
		lang:    opts.Lang,
		banner:  opts.Banner,
		tracker: tracker,

		r:   r,
		out: out,
		l:   l,
	}, nil
}

// NewWithFactory builds the agent through f and then the Chat around it.
func NewWithFactory(ctx context.Context, f agent.Factory, r LineReader, out io.Writer, opts Options) (*Chat, error) {
	a, err := f.NewAgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return New(a, r, out, opts)
}

// Farewell says goodbye. Only the first call prints anything.
func (c *Chat) Farewell() {
	c.bye.Do(func() {
		PrintFarewell(c.out)
	})
}

// PrintFarewell writes the goodbye line to w. It is for interrupts that
// arrive before a Chat exists, such as at the token prompt.
func PrintFarewell(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", farewell)
}

// RunLoop reads and answers lines until an exit phrase, end of input or
// an interrupt, and then says farewell. Ctrl-C and cancellation of ctx
// both count as an interrupt and make RunLoop return nil. Any other
// failure is returned as is, without the farewell.
func (c *Chat) RunLoop(ctx context.Context) error {
	if c.banner {
		fmt.Fprint(c.out, banner)
	}
	c.l.Debug("Conversation started", "session_scope", c.tracker.Scope())
	for {
		if ctx.Err() != nil {
			c.l.Info("Interrupted before reading")
			c.Farewell()
			return nil
		}
		line, err := c.r.ReadLine(ctx, Prompt)
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || ctx.Err() != nil {
				c.l.Info("Interrupted while reading")
				c.Farewell()
				return nil
			}
			if errors.Is(err, io.EOF) {
				c.l.Info("End of input")
				c.Farewell()
				return nil
			}
			return err
		}
		if IsExitPhrase(line) {
			c.l.Debug("Exit phrase", "turns", c.tracker.Turns(), "last_session_id", c.tracker.Current())
			c.Farewell()
			return nil
		}
		if err := c.HandleMessage(ctx, line); err != nil {
			if ctx.Err() != nil {
				c.l.Info("Interrupted during query", "error", err)
				c.Farewell()
				return nil
			}
			c.l.Error("Query failed", "error", err)
			return err
		}
	}
}

// HandleMessage sends one line to the agent under a session identifier
// and prints the answer.
func (c *Chat) HandleMessage(ctx context.Context, input string) error {
	sessionID, err := c.tracker.Next()
	if err != nil {
		return err
	}
	req := &agent.Request{
		Query:     input,
		Lang:      c.lang,
		SessionID: sessionID,
	}
	c.l.Debug("Sending", "session_id", sessionID, "lang", req.Lang, "query_bytes", len(input))
	speech, err := c.agent.Query(ctx, req)
	if err != nil {
		return fmt.Errorf("query in session %s: %w", sessionID, err)
	}
	c.l.Debug("Received", "session_id", sessionID, "speech_bytes", len(speech))
	_, err = fmt.Fprintf(c.out, "\n%s%s\n\n", speaker, speech)
	return err
}
