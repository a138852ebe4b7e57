package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/scheduler"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total wall-clock duration the test should run for.")
	configFile := flag.String("config", "", "Config file; defaults to blockfall.yaml in the usual places.")
	seed := flag.Uint64("seed", 0, "Randomizer seed; overrides the config when non-zero.")
	format := flag.String("format", "text", "Report format: text or yaml.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	log.Println("Starting blockfall stress test...")

	report, err := run(cfg, *duration)
	if err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	log.Println("Simulation finished.")

	switch *format {
	case "yaml":
		err = report.GenerateYAML(os.Stdout)
	default:
		fmt.Println("\n\n--- Stress Test Report ---")
		err = report.Generate(os.Stdout)
		fmt.Println("--- End of Report ---")
	}
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
}

// tally follows games across resets.
type tally struct {
	report *Report
}

func (t *tally) OnEvent(ev game.Event) {
	switch ev.Type {
	case game.EventLocked:
		t.report.Pieces++
	case game.EventLinesCleared:
		t.report.Lines += ev.Cleared
	case game.EventGameOver:
		t.report.Games++
	}
	if ev.Score > t.report.BestScore {
		t.report.BestScore = ev.Score
		t.report.BestSession = ev.Session.String()
	}
}

// run plays bot-driven games against a manual clock until duration of wall
// time has passed, advancing simulated time by one poll interval per update.
func run(cfg *config.Config, duration time.Duration) (*Report, error) {
	randomizer, err := game.NewRandomizer(cfg.Game.Randomizer, cfg.Game.Seed)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Duration:     duration,
		PollInterval: cfg.Loop.PollInterval,
		Randomizer:   cfg.Game.Randomizer,
		Seed:         cfg.Game.Seed,
	}

	start := time.Now()
	clock := scheduler.NewManualClock(start)
	session := game.NewSession(clock, randomizer)
	session.Subscribe(&tally{report: report})
	session.Subscribe(logger.NewEventLogger(logger.Log))

	collector := metrics.NewCollector()
	session.Subscribe(collector)

	sched := scheduler.New(clock)
	gravity := &game.GravitySystem{Session: session}
	sched.Register(gravity)
	sched.Register(collector)

	bot := autoplay.NewBot(autoplay.DefaultWeights)

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			clock.Advance(cfg.Loop.PollInterval)

			updateStart := time.Now()
			if session.State() == game.GameOver {
				session.Reset()
			} else if cmd, ok := bot.Next(session.Snapshot()); ok {
				if err := session.Apply(cmd); err != nil {
					return nil, err
				}
			}
			sched.Once()
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(start)
	report.SimulatedTime = clock.Now().Sub(start)
	report.Ticks = gravity.Ticks
	report.Systems = sched.GetStats().Systems
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report, nil
}
