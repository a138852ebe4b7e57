package logger

import (
	"fmt"

	"github.com/plus3/blockfall/game"
	"go.uber.org/zap"
)

// Log is the process-wide logger. It discards everything until Init is
// called.
var Log = zap.NewNop().Sugar()

// Init replaces Log with a JSON logger at level. An empty file keeps the
// no-op logger since the terminal frontend owns stdout and stderr.
func Init(level, file string) error {
	if file == "" {
		Log = zap.NewNop().Sugar()
		return nil
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Log = l.Sugar()
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

// EventLogger writes session events to a logger.
type EventLogger struct {
	Log *zap.SugaredLogger
}

func NewEventLogger(log *zap.SugaredLogger) *EventLogger {
	return &EventLogger{Log: log}
}

func (l *EventLogger) OnEvent(ev game.Event) {
	fields := []any{
		"session", ev.Session.String(),
		"score", ev.Score,
		"lines", ev.Lines,
		"level", ev.Level,
	}

	switch ev.Type {
	case game.EventSpawned, game.EventLocked:
		l.Log.Debugw(ev.Type.String(), append(fields, "piece", ev.Piece.Kind.String())...)
	case game.EventLinesCleared:
		l.Log.Infow(ev.Type.String(), append(fields, "cleared", ev.Cleared, "points", ev.Points)...)
	case game.EventGameOver:
		l.Log.Warnw(ev.Type.String(), fields...)
	default:
		l.Log.Infow(ev.Type.String(), fields...)
	}
}
