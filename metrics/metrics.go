package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/logger"
	"github.com/plus3/blockfall/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "blockfall"

// Collector turns session events and scheduler polls into prometheus
// metrics. It registers on its own registry so several collectors can
// coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	LinesCleared *prometheus.CounterVec
	PiecesLocked prometheus.Counter
	GamesOver    prometheus.Counter
	Score        prometheus.Gauge
	Level        prometheus.Gauge
	PollDelta    prometheus.Histogram
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		LinesCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "lines_cleared_total",
			Help:      "Rows cleared, labelled by how many were cleared at once",
		}, []string{"size"}),
		PiecesLocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "pieces_locked_total",
			Help:      "Pieces merged into the board",
		}),
		GamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "games_over_total",
			Help:      "Games that ended by overflowing the board",
		}),
		Score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "score",
			Help:      "Score of the current game",
		}),
		Level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "level",
			Help:      "Level of the current game",
		}),
		PollDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "poll_delta_seconds",
			Help:      "Time between scheduler polls",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	c.registry.MustRegister(
		c.LinesCleared,
		c.PiecesLocked,
		c.GamesOver,
		c.Score,
		c.Level,
		c.PollDelta,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) OnEvent(ev game.Event) {
	switch ev.Type {
	case game.EventLocked:
		c.PiecesLocked.Inc()
	case game.EventLinesCleared:
		c.LinesCleared.WithLabelValues(strconv.Itoa(ev.Cleared)).Add(float64(ev.Cleared))
	case game.EventGameOver:
		c.GamesOver.Inc()
	}
	c.Score.Set(float64(ev.Score))
	c.Level.Set(float64(ev.Level))
}

// Execute records the delta of every poll after the first.
func (c *Collector) Execute(frame *scheduler.Frame) {
	if frame.DeltaTime > 0 {
		c.PollDelta.Observe(frame.DeltaTime.Seconds())
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Log.Infow("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
