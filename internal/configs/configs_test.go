package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)

	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CHAT_HOST", "")
	t.Setenv("CHAT_PORT", "")
	t.Setenv("ADMIN_PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("MAX_LINE_BYTES", "")

	cfg, err := LoadConfig()
	req.NoError(err)

	req.Equal("development", cfg.Environment)
	req.Equal("127.0.0.1:34255", cfg.ChatAddr())
	req.Equal(8080, cfg.AdminPort)
	req.Empty(cfg.AllowedOrigins)
	req.Equal(8192, cfg.MaxLineBytes)
}

func TestLoadConfig_ParsesOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_RejectsBadPorts(t *testing.T) {
	req := require.New(t)

	t.Setenv("CHAT_PORT", "not-a-port")
	_, err := LoadConfig()
	req.Error(err)

	t.Setenv("CHAT_PORT", "80")
	_, err = LoadConfig()
	req.Error(err)

	t.Setenv("CHAT_PORT", "9000")
	t.Setenv("ADMIN_PORT", "9000")
	_, err = LoadConfig()
	req.Error(err)
}
