package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 10*time.Millisecond, cfg.Loop.PollInterval)
	assert.Equal(t, game.RandomizerUniform, cfg.Game.Randomizer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Address)
	assert.Equal(t, 24, cfg.GUI.CellSize)
	assert.Equal(t, []string{"Space"}, cfg.Keys.HardDrop)
	assert.Equal(t, []string{"q", "Esc", "Ctrl-C"}, cfg.Keys.Quit)
	assert.NoError(t, cfg.Validate())

	bindings := cfg.Keys.Bindings()
	for _, cmd := range game.Commands() {
		assert.NotEmpty(t, bindings[cmd], cmd.String())
	}
}

func TestLoad(t *testing.T) {
	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, `
loop:
  poll_interval: 5ms
game:
  randomizer: bag
  seed: 99
keys:
  hard_drop: [Space, Enter]
gui:
  cell_size: 32
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, 5*time.Millisecond, cfg.Loop.PollInterval)
		assert.Equal(t, game.RandomizerBag, cfg.Game.Randomizer)
		assert.EqualValues(t, 99, cfg.Game.Seed)
		assert.Equal(t, []string{"Space", "Enter"}, cfg.Keys.HardDrop)
		assert.Equal(t, 32, cfg.GUI.CellSize)
		assert.Equal(t, []string{"p"}, cfg.Keys.PauseToggle, "unset keys keep defaults")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, "metrics:\n  address: :9000\n")
		t.Setenv("BLOCKFALL_METRICS_ADDRESS", ":9100")
		t.Setenv("BLOCKFALL_LOG_LEVEL", "debug")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9100", cfg.Metrics.Address)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("no file found uses defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("explicit missing file fails", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "read config")
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		path := writeFile(t, "game:\n  randomizer: fair\n")
		_, err := config.Load(path)
		assert.ErrorContains(t, err, "game.randomizer")
	})
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Loop.PollInterval = 0
	assert.ErrorContains(t, cfg.Validate(), "poll_interval")

	cfg = config.Default()
	cfg.Keys.Rotate = nil
	assert.ErrorContains(t, cfg.Validate(), "rotate has no binding")

	cfg = config.Default()
	cfg.GUI.CellSize = 1
	assert.ErrorContains(t, cfg.Validate(), "cell_size")
}
