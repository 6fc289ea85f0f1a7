package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/manifoldco/promptui"
	"github.com/smacpher/frarold/pkg/chat"
	"github.com/smacpher/frarold/pkg/config"
	"github.com/smacpher/frarold/pkg/logs"
)

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	terminal := readline.DefaultIsTerminal()
	var ask config.AskFunc
	if terminal {
		ask = config.AskMasked
	}
	if err := cfg.EnsureToken(ask); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			chat.PrintFarewell(os.Stdout)
			return nil
		}
		return err
	}

	logDir := cfg.LogDir
	if logDir == "" {
		logDir, err = logs.DefaultPath()
		if err != nil {
			return err
		}
	}
	ld, err := logs.Open(logDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer ld.Close()
	l, err := ld.Logger("chat")
	if err != nil {
		return err
	}

	var r chat.LineReader
	if terminal {
		r, err = chat.NewTerminalReader()
		if err != nil {
			return err
		}
	} else {
		r = chat.NewReader(os.Stdin, os.Stdout)
	}
	defer r.Close()

	c, err := chat.NewWithFactory(ctx, &cfg.Dialogflow, r, os.Stdout, chat.Options{
		Lang:   cfg.Dialogflow.Lang,
		Scope:  cfg.SessionScope,
		Banner: cfg.Banner,
		Logger: l,
	})
	if err != nil {
		return err
	}
	l.Info("Starting", "config", cfg.Path, "lang", cfg.Dialogflow.Lang, "session_scope", cfg.SessionScope, "log_dir", ld.Path())
	return c.RunLoop(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
