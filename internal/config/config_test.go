package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudalerts/internal/models"
)

func TestLoadConfig_Defaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(t.TempDir(), "absent.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `me: AQAAAAAAAAA
log_level: debug
storage:
  client_db: /tmp/client.db
alerts:
  cloud_new_share: false
  contacts_fcr_del: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "AQAAAAAAAAA", cfg.Me)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "/tmp/client.db", cfg.Storage.ClientDB)
	assert.Equal(t, "cloudalerts-directory.db", cfg.Storage.DirectoryDB, "unset keys keep defaults")

	want := models.DefaultAlertFlags()
	want.CloudNewShare = false
	want.ContactsFcrDel = false
	assert.Equal(t, want, cfg.Alerts)

	me, err := cfg.MeHandle()
	require.NoError(t, err)
	assert.Equal(t, models.Handle(1), me)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alerts: [\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("CLOUDALERTS_LOG_LEVEL", "warn")
	t.Setenv("CLOUDALERTS_ALERTS_CONTACTS_ENABLED", "false")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.False(t, cfg.Alerts.ContactsEnabled)
	assert.True(t, cfg.Alerts.CloudEnabled)
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Me = models.Handle(7).Encode(models.UserHandleSize)
	cfg.Alerts.CloudDelShare = false
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMeHandle_Invalid(t *testing.T) {
	tests := []struct {
		name string
		me   string
	}{
		{name: "empty", me: ""},
		{name: "not base64", me: "***"},
		{name: "node sized", me: models.Handle(5).Encode(models.NodeHandleSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Me: tt.me}
			h, err := cfg.MeHandle()
			assert.ErrorIs(t, err, ErrInvalidHandle)
			assert.True(t, h.IsUndef())
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.in}
			assert.Equal(t, tt.want, cfg.Level())
		})
	}
}
