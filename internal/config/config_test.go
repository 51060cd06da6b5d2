package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Radar.MinUsers)
	assert.Equal(t, 8, cfg.Radar.MaxUsers)
	assert.Equal(t, 0.3, cfg.Radar.NudgeAckProbability)
	assert.Equal(t, 3*time.Second, cfg.Radar.JitterInterval)
	assert.Equal(t, 15.0, cfg.Radar.CompassStep)
	assert.Equal(t, time.Second, cfg.Chat.ReplyMinDelay)
	assert.Equal(t, 3*time.Second, cfg.Chat.ReplyMaxDelay)
	assert.Equal(t, 16, cfg.Ambient.Buildings)
	assert.Equal(t, 37.7749, cfg.Maps.DefaultLat)
	assert.True(t, cfg.UsingDefaultSecret())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "nudge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
radar:
  maxUsers: 5
  jitterInterval: 1s
chat:
  replyMaxDelay: 4s
`), 0o644))

	t.Setenv("NUDGE_RADAR_MINUSERS", "4")
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("MAPS_API_KEY", "maps-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Radar.MinUsers)
	assert.Equal(t, 5, cfg.Radar.MaxUsers)
	assert.Equal(t, time.Second, cfg.Radar.JitterInterval)
	assert.Equal(t, 4*time.Second, cfg.Chat.ReplyMaxDelay)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "maps-key", cfg.Maps.APIKey)
	assert.False(t, cfg.UsingDefaultSecret())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NUDGE_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("NUDGE_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.Radar.MinUsers = 9
	bad.Radar.NudgeAckProbability = 1.5
	bad.Chat.ReplyMinDelay = 5 * time.Second
	bad.Radar.JitterInterval = 0
	bad.Session.ReapInterval = 0
	bad.Session.IdleTTL = -time.Minute
	bad.Ambient.Buildings = -1

	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radar user range")
	assert.Contains(t, err.Error(), "radar.nudgeAckProbability")
	assert.Contains(t, err.Error(), "chat reply delay")
	assert.Contains(t, err.Error(), "radar.jitterInterval")
	assert.Contains(t, err.Error(), "session.reapInterval")
	assert.Contains(t, err.Error(), "session.idleTTL")
	assert.Contains(t, err.Error(), "ambient.buildings")
}

func TestLoadRejectsZeroReapInterval(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NUDGE_SESSION_REAPINTERVAL", "0s")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.reapInterval")
}
