package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/blockfall/app"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/scheduler"
	"github.com/plus3/blockfall/term"
)

func main() {
	configFile := flag.String("config", "", "Config file; defaults to blockfall.yaml in the usual places.")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, "blockfall:", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return err
	}
	defer logger.Sync()

	randomizer, err := game.NewRandomizer(cfg.Game.Randomizer, cfg.Game.Seed)
	if err != nil {
		return err
	}
	keymap, err := term.NewKeymap(cfg.Keys.Bindings())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := game.NewSession(nil, randomizer)
	session.Subscribe(logger.NewEventLogger(logger.Log))
	sched := scheduler.New(session.Clock())

	if cfg.Metrics.Address != "" {
		collector := metrics.NewCollector()
		session.Subscribe(collector)
		sched.Register(collector)
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Address); err != nil {
				logger.Log.Errorw("metrics server stopped", "error", err)
			}
		}()
	}

	terminal, err := term.Open(keymap)
	if err != nil {
		return err
	}
	defer terminal.Close()

	logger.Log.Infow("game started", "session", session.ID().String(), "randomizer", cfg.Game.Randomizer)

	loop := app.NewLoop(session, sched, terminal, cfg.Loop.PollInterval)
	err = loop.Run(ctx, terminal.Commands(ctx))
	if errors.Is(err, game.ErrQuit) {
		err = nil
	}

	logger.Log.Infow("game finished", "score", session.Score(), "lines", session.Lines(), "state", session.State().String())
	return err
}
