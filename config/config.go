package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "BLOCKFALL"
	FileName  = "blockfall"
)

type Config struct {
	Loop    LoopConfig    `mapstructure:"loop"`
	Game    GameConfig    `mapstructure:"game"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Keys    KeysConfig    `mapstructure:"keys"`
	GUI     GUIConfig     `mapstructure:"gui"`
}

type LoopConfig struct {
	// PollInterval is how often the loop checks the gravity deadline.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type GameConfig struct {
	Randomizer string `mapstructure:"randomizer"`
	// Seed 0 picks a random seed per run.
	Seed uint64 `mapstructure:"seed"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File is where JSON logs go. Empty disables logging.
	File string `mapstructure:"file"`
}

type MetricsConfig struct {
	// Address for the /metrics endpoint. Empty disables it.
	Address string `mapstructure:"address"`
}

// KeysConfig lists key names per command. Names are frontend key names such
// as "Left", "Esc", "Ctrl-C", "Space" or a single character.
type KeysConfig struct {
	MoveLeft    []string `mapstructure:"move_left"`
	MoveRight   []string `mapstructure:"move_right"`
	SoftDrop    []string `mapstructure:"soft_drop"`
	Rotate      []string `mapstructure:"rotate"`
	HardDrop    []string `mapstructure:"hard_drop"`
	PauseToggle []string `mapstructure:"pause_toggle"`
	Quit        []string `mapstructure:"quit"`
}

// Bindings returns the key names for every command.
func (k KeysConfig) Bindings() map[game.Command][]string {
	return map[game.Command][]string{
		game.MoveLeft:    k.MoveLeft,
		game.MoveRight:   k.MoveRight,
		game.SoftDrop:    k.SoftDrop,
		game.Rotate:      k.Rotate,
		game.HardDrop:    k.HardDrop,
		game.PauseToggle: k.PauseToggle,
		game.Quit:        k.Quit,
	}
}

type GUIConfig struct {
	CellSize     int  `mapstructure:"cell_size"`
	DebugOverlay bool `mapstructure:"debug_overlay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("loop.poll_interval", 10*time.Millisecond)
	v.SetDefault("game.randomizer", game.RandomizerUniform)
	v.SetDefault("game.seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.address", "")
	v.SetDefault("keys.move_left", []string{"Left", "a"})
	v.SetDefault("keys.move_right", []string{"Right", "d"})
	v.SetDefault("keys.soft_drop", []string{"Down", "s"})
	v.SetDefault("keys.rotate", []string{"Up", "w"})
	v.SetDefault("keys.hard_drop", []string{"Space"})
	v.SetDefault("keys.pause_toggle", []string{"p"})
	v.SetDefault("keys.quit", []string{"q", "Esc", "Ctrl-C"})
	v.SetDefault("gui.cell_size", 24)
	v.SetDefault("gui.debug_overlay", false)
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return &cfg
}

// Load reads file, or when file is empty searches the working directory and
// the user config directory for blockfall.yaml. A missing file is not an
// error; defaults and BLOCKFALL_* environment variables still apply.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Loop.PollInterval <= 0 {
		return fmt.Errorf("loop.poll_interval must be positive, got %v", c.Loop.PollInterval)
	}
	if _, err := game.NewRandomizer(c.Game.Randomizer, 1); err != nil {
		return fmt.Errorf("game.randomizer: %w", err)
	}
	if c.GUI.CellSize < 4 {
		return fmt.Errorf("gui.cell_size must be at least 4, got %d", c.GUI.CellSize)
	}
	for cmd, keys := range c.Keys.Bindings() {
		if len(keys) == 0 {
			return fmt.Errorf("keys: %s has no binding", cmd)
		}
	}
	return nil
}
