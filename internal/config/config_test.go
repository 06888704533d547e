package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 3000\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 210*time.Second, cfg.Game.ClassUnlockDelay)
	assert.Equal(t, 30*time.Second, cfg.Game.LobbyResetDelay)
	assert.Equal(t, 4, cfg.Game.KillerCooldownSecs)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 8080
logging:
  level: debug
  format: console
game:
  class_unlock_delay: 5s
  lobby_reset_delay: 1s
  killer_cooldown_secs: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Game.ClassUnlockDelay)
	assert.Equal(t, time.Second, cfg.Game.LobbyResetDelay)
	assert.Equal(t, 2, cfg.Game.KillerCooldownSecs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_BadPort(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidate_BadLogLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidate_BadDelays(t *testing.T) {
	path := writeConfig(t, "game:\n  class_unlock_delay: 0s\n  lobby_reset_delay: -1s\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.class_unlock_delay")
	assert.Contains(t, err.Error(), "game.lobby_reset_delay")
}
