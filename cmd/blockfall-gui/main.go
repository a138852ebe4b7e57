package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/gui"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/scheduler"
)

const Title = "blockfall"

func main() {
	configFile := flag.String("config", "", "Config file; defaults to blockfall.yaml in the usual places.")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	randomizer, err := game.NewRandomizer(cfg.Game.Randomizer, cfg.Game.Seed)
	if err != nil {
		log.Fatal(err)
	}
	keymap, err := gui.NewKeymap(cfg.Keys.Bindings())
	if err != nil {
		log.Fatal(err)
	}

	session := game.NewSession(nil, randomizer)
	session.Subscribe(logger.NewEventLogger(logger.Log))
	sched := scheduler.New(session.Clock())

	var overlay gui.Overlay
	g := gui.NewGame(session, sched, keymap, cfg.GUI.CellSize, nil)
	width, height := g.Size()

	if cfg.GUI.DebugOverlay {
		o := debugui.NewOverlay(Title, width*2, height)
		stats := debugui.NewSchedulerStats(sched, 120)
		sched.Register(stats)
		inspector := &debugui.SessionInspector{Session: session}
		o.Add(inspector.Item(), stats.Item())
		overlay = o
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(Title)
	}
	g.SetOverlay(overlay)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	logger.Log.Infow("game finished", "score", session.Score(), "lines", session.Lines())
}
