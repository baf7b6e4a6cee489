package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Minute, cfg.Server.IdleTimeout)
	assert.Equal(t, 180, cfg.Game.RoundDuration)
	assert.Equal(t, []int{120, 60}, cfg.Game.HintCheckpoints)
	assert.Equal(t, 3*time.Second, cfg.Game.Cooldown)
	assert.Equal(t, 60*time.Millisecond, cfg.Game.DrawInterval)
	assert.Equal(t, 3, cfg.Game.DefaultMaxRounds)
	assert.Equal(t, 20, cfg.Game.MaxRoundsLimit)
	assert.Equal(t, 1000, cfg.Game.StrokeBuffer)
	assert.Equal(t, 40, cfg.AI.MinStrokes)
	assert.Equal(t, 6, cfg.AI.MaxGuesses)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  http_address: ":9000"
game:
  round_duration: 90
  hint_checkpoints: [60, 30]
database:
  postgres:
    dbname: archive
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("GAME_COOLDOWN", "1s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 90, cfg.Game.RoundDuration)
	assert.Equal(t, []int{60, 30}, cfg.Game.HintCheckpoints)
	assert.Equal(t, time.Second, cfg.Game.Cooldown)
	assert.Equal(t, "archive", cfg.Database.Postgres.DBName)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("game: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
