package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")
	t.Setenv("TG_CHAT_ID", "")
	t.Setenv("POLL_INTERVAL_MS", "")
	t.Setenv("MESSAGE_MAX_AGE_MS", "")
	t.Setenv("STATE_BACKEND", "")

	cfg := Load()
	require.Equal(t, 60*time.Second, cfg.PollInterval)
	require.Equal(t, 24*time.Hour, cfg.MessageMaxAge)
	require.Equal(t, "memory", cfg.StateBackend)
	require.Equal(t, "ripple", cfg.CoinID)
	require.False(t, cfg.PinMessage)
	require.False(t, cfg.RunOnce)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL_MS", "1500")
	t.Setenv("MESSAGE_MAX_AGE_MS", "-5")
	t.Setenv("PIN_MESSAGE", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	require.Equal(t, 1500*time.Millisecond, cfg.PollInterval)
	require.Equal(t, 24*time.Hour, cfg.MessageMaxAge)
	require.True(t, cfg.PinMessage)
	require.Equal(t, 3, cfg.RedisDB)
}

func TestValidate_MissingCredentials(t *testing.T) {
	err := Config{StateBackend: "memory"}.Validate()
	require.ErrorIs(t, err, ErrConfigMissing)
	require.Contains(t, err.Error(), "TG_BOT_TOKEN")
	require.Contains(t, err.Error(), "TG_CHAT_ID")
}

func TestValidate_PGNeedsDatabaseURL(t *testing.T) {
	err := Config{BotToken: "t", ChatID: "1", StateBackend: "pg"}.Validate()
	require.ErrorIs(t, err, ErrConfigMissing)
	require.Contains(t, err.Error(), "DATABASE_URL")

	require.NoError(t, Config{BotToken: "t", ChatID: "1", StateBackend: "memory"}.Validate())
}

func TestHTTPEnabled(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	require.True(t, Load().HTTPEnabled())
	t.Setenv("HTTP_ADDR", "off")
	require.False(t, Load().HTTPEnabled())
}
