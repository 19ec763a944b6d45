package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/minesweeper/internal/game"
)

func reset() {
	mu.Lock()
	cfg = nil
	v = nil
	file = ""
	mu.Unlock()
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInit(t *testing.T) {
	path := writeConfig(t, `
game:
  size: 12
  mines: 20
  seed: 42
ui:
  mode: console
logging:
  level: debug
  format: json
telemetry:
  enabled: true
  dataset: sweeper-dev
`)
	reset()

	require.NoError(t, Init(path))

	c := Get()
	assert.Equal(t, 12, c.Game.Size)
	assert.Equal(t, 20, c.Game.Mines)
	assert.Equal(t, int64(42), c.Game.Seed)
	assert.Equal(t, ModeConsole, c.UI.Mode)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.True(t, c.Telemetry.Enabled)
	assert.Equal(t, "sweeper-dev", c.Telemetry.Dataset)
	assert.Equal(t, path, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	reset()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	def := game.DefaultConfig()
	assert.Equal(t, def.Size, c.Game.Size)
	assert.Equal(t, def.Mines, c.Game.Mines)
	assert.Equal(t, int64(0), c.Game.Seed)
	assert.Equal(t, ModeTUI, c.UI.Mode)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.False(t, c.Telemetry.Enabled)
	assert.Equal(t, "minesweeper", c.Telemetry.Dataset)
}

func TestGetInitializesLazily(t *testing.T) {
	reset()

	c := Get()
	assert.Equal(t, game.DefaultConfig().Size, c.Game.Size)
}

func TestEnvironmentVariables(t *testing.T) {
	reset()
	t.Setenv("MINESWEEPER_GAME_SIZE", "16")
	t.Setenv("MINESWEEPER_GAME_MINES", "40")
	t.Setenv("MINESWEEPER_UI_MODE", "console")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 16, c.Game.Size)
	assert.Equal(t, 40, c.Game.Mines)
	assert.Equal(t, ModeConsole, c.UI.Mode)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "game:\n  size: 10\n  mines: 5\n")
	reset()
	t.Setenv("MINESWEEPER_GAME_MINES", "7")

	require.NoError(t, Init(path))

	c := Get()
	assert.Equal(t, 10, c.Game.Size)
	assert.Equal(t, 7, c.Game.Mines)
}

func TestInitRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"board too small", "game:\n  size: 3\n  mines: 1\n", game.ErrSizeTooSmall},
		{"board too large", "game:\n  size: 27\n  mines: 1\n", game.ErrSizeTooLarge},
		{"too many mines", "game:\n  size: 4\n  mines: 6\n", game.ErrTooManyMines},
		{"negative mines", "game:\n  size: 4\n  mines: -1\n", game.ErrNegativeMines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			reset()

			err := Init(path)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestInitRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "game: [size\n")
	reset()

	err := Init(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Game:    GameConfig{Size: 9, Mines: 10},
			UI:      UIConfig{Mode: ModeTUI},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	require.NoError(t, Validate(valid()))

	c := valid()
	c.UI.Mode = "gui"
	assert.ErrorContains(t, Validate(c), "ui.mode")

	c = valid()
	c.Logging.Level = "trace"
	assert.ErrorContains(t, Validate(c), "logging.level")

	c = valid()
	c.Logging.Level = "WARN"
	assert.NoError(t, Validate(c))

	c = valid()
	c.Logging.Format = "xml"
	assert.ErrorContains(t, Validate(c), "logging.format")
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	require.NoError(t, Set("game.size", 20))
	require.NoError(t, Set("game.mines", 50))

	c := Get()
	assert.Equal(t, 20, c.Game.Size)
	assert.Equal(t, 50, c.Game.Mines)
	assert.Equal(t, game.Config{Size: 20, Mines: 50}, c.GameSettings())
}

func TestSetKeepsPreviousOnInvalid(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	err := Set("game.mines", 1000)
	assert.ErrorIs(t, err, game.ErrTooManyMines)
	assert.Equal(t, game.DefaultConfig().Mines, Get().Game.Mines)
}

func TestOverrideValidatesTogether(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	// 4x4 cannot hold the default 10 mines on its own
	assert.ErrorIs(t, Set("game.size", 4), game.ErrTooManyMines)

	reset()
	require.NoError(t, Init(""))
	require.NoError(t, Override(map[string]any{"game.size": 4, "game.mines": 3}))

	c := Get()
	assert.Equal(t, 4, c.Game.Size)
	assert.Equal(t, 3, c.Game.Mines)
}

func TestSetBeforeInit(t *testing.T) {
	reset()

	assert.Error(t, Set("game.size", 5))
}

func TestGetReturnsCopy(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	c := Get()
	c.Game.Size = 4
	assert.Equal(t, game.DefaultConfig().Size, Get().Game.Size)
}

func TestWatchConfig(t *testing.T) {
	path := writeConfig(t, "game:\n  size: 8\n  mines: 4\n")
	reset()
	require.NoError(t, Init(path))

	changed := make(chan Config, 16)
	WatchConfig(func(c Config, err error) {
		if err != nil {
			return
		}
		select {
		case changed <- c:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("game:\n  size: 10\n  mines: 12\n"), 0644))

	// A write may be observed half-done, so wait for the final contents.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.Game.Size != 10 {
				continue
			}
			assert.Equal(t, 12, c.Game.Mines)
			assert.Equal(t, 12, Get().Game.Mines)
			return
		case <-timeout:
			t.Fatal("config change was not observed")
		}
	}
}

func TestWatchConfigWithoutFile(t *testing.T) {
	reset()
	require.NoError(t, Init("/non/existent/config.yaml"))
	assert.Empty(t, ConfigFilePath())

	assert.NotPanics(t, func() { WatchConfig(nil) })
}
