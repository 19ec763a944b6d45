// Package config loads application settings from defaults, an optional YAML
// file and MINESWEEPER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/samdwyer/minesweeper/internal/game"
)

// EnvPrefix is prepended to every environment override, e.g. MINESWEEPER_GAME_SIZE.
const EnvPrefix = "MINESWEEPER"

const (
	ModeTUI     = "tui"
	ModeConsole = "console"
)

// Config holds all configuration for the application
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GameConfig holds the board settings used for new games
type GameConfig struct {
	Size  int   `mapstructure:"size"`
	Mines int   `mapstructure:"mines"`
	Seed  int64 `mapstructure:"seed"`
}

// UIConfig selects the front-end
type UIConfig struct {
	Mode string `mapstructure:"mode"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TelemetryConfig holds tracing export settings
type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dataset string `mapstructure:"dataset"`
}

// GameSettings converts the game section into a game.Config.
func (c Config) GameSettings() game.Config {
	return game.Config{Size: c.Game.Size, Mines: c.Game.Mines, Seed: c.Game.Seed}
}

var (
	mu   sync.RWMutex
	cfg  *Config
	v    *viper.Viper
	file string // config file actually read, empty when none was found
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	def := game.DefaultConfig()
	v.SetDefault("game.size", def.Size)
	v.SetDefault("game.mines", def.Mines)
	v.SetDefault("game.seed", 0)

	v.SetDefault("ui.mode", ModeTUI)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dataset", "minesweeper")
}

// Init initializes the configuration. An empty configPath searches the
// default locations; a missing file is not an error.
func Init(configPath string) error {
	nv := viper.New()
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("$HOME/.config/minesweeper")
	}

	nv.SetEnvPrefix(EnvPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	loaded := ""
	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No config file in the search path; defaults and env apply
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
			// Explicit file missing; defaults and env apply
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		loaded = nv.ConfigFileUsed()
	}

	next := &Config{}
	if err := nv.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	v, cfg, file = nv, next, loaded
	mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration, initializing it with
// defaults on first use.
func Get() Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()

	if c == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return *c
}

// Set overrides a single key at runtime.
func Set(key string, value any) error {
	return Override(map[string]any{key: value})
}

// Override sets several keys and validates the result once, so related
// values such as game.size and game.mines can change together. Overrides
// take precedence over the file and survive reloads.
func Override(values map[string]any) error {
	mu.Lock()
	defer mu.Unlock()

	if v == nil {
		return errors.New("config not initialized - call Init() first")
	}
	for key, value := range values {
		v.Set(key, value)
	}
	return reload()
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return file
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the new configuration, or the error that kept the old one in place.
func WatchConfig(onChange func(Config, error)) {
	mu.RLock()
	w, path := v, file
	mu.RUnlock()
	if w == nil || path == "" {
		return
	}

	w.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		mu.Lock()
		err := reload()
		c := *cfg
		mu.Unlock()

		if onChange != nil {
			onChange(c, err)
		}
	})
	w.WatchConfig()
}

// reload re-decodes viper state into cfg, keeping the previous config when
// the new one is invalid. Callers hold mu.
func reload() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = next
	return nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if err := c.GameSettings().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	switch c.UI.Mode {
	case ModeTUI, ModeConsole:
	default:
		return fmt.Errorf("ui.mode must be %q or %q, got %q", ModeTUI, ModeConsole, c.UI.Mode)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
