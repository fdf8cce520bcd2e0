// Package config loads the client configuration from a YAML file,
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iudanet/cloudalerts/internal/models"
)

// EnvPrefix prefixes environment overrides, e.g. CLOUDALERTS_LOG_LEVEL.
const EnvPrefix = "CLOUDALERTS"

// ErrInvalidHandle is returned when the configured local account handle
// is missing or is not an 8-byte base64url handle.
var ErrInvalidHandle = errors.New("invalid local user handle")

// StorageConfig holds the paths of the local databases.
type StorageConfig struct {
	// ClientDB is the bbolt file with session metadata and queued commands.
	ClientDB string `mapstructure:"client_db" yaml:"client_db"`

	// DirectoryDB is the SQLite file with the user and node directory.
	DirectoryDB string `mapstructure:"directory_db" yaml:"directory_db"`
}

// Config is the top-level client configuration.
type Config struct {
	Me       string            `mapstructure:"me" yaml:"me"`               // base64 handle локального аккаунта
	LogLevel string            `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Storage  StorageConfig     `mapstructure:"storage" yaml:"storage"`
	Alerts   models.AlertFlags `mapstructure:"alerts" yaml:"alerts"`
}

// MeHandle decodes the local account handle.
func (c *Config) MeHandle() (models.Handle, error) {
	h, ok := models.DecodeHandle(c.Me, models.UserHandleSize)
	if !ok {
		return models.Undef, fmt.Errorf("%w: %q", ErrInvalidHandle, c.Me)
	}
	return h, nil
}

// Level parses LogLevel; unknown values fall back to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// DefaultConfigPath returns ~/.config/cloudalerts/config.yaml, or
// config.yaml in the working directory when the home is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "cloudalerts", "config.yaml")
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Storage: StorageConfig{
			ClientDB:    "cloudalerts-client.db",
			DirectoryDB: "cloudalerts-directory.db",
		},
		Alerts: models.DefaultAlertFlags(),
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("me", d.Me)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("storage.client_db", d.Storage.ClientDB)
	v.SetDefault("storage.directory_db", d.Storage.DirectoryDB)

	v.SetDefault("alerts.cloud_enabled", d.Alerts.CloudEnabled)
	v.SetDefault("alerts.cloud_new_files", d.Alerts.CloudNewFiles)
	v.SetDefault("alerts.cloud_new_share", d.Alerts.CloudNewShare)
	v.SetDefault("alerts.cloud_del_share", d.Alerts.CloudDelShare)
	v.SetDefault("alerts.contacts_enabled", d.Alerts.ContactsEnabled)
	v.SetDefault("alerts.contacts_fcr_in", d.Alerts.ContactsFcrIn)
	v.SetDefault("alerts.contacts_fcr_del", d.Alerts.ContactsFcrDel)
	v.SetDefault("alerts.contacts_fcr_acpt", d.Alerts.ContactsFcrAcpt)
}

// LoadConfig reads the YAML file at path and applies CLOUDALERTS_*
// environment overrides. A missing file (or an empty path) is not an
// error: defaults and the environment are used instead.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to a YAML file at path, creating parent
// directories if needed.
func SaveConfig(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("me", cfg.Me)
	v.Set("log_level", cfg.LogLevel)
	v.Set("storage", cfg.Storage)
	v.Set("alerts", cfg.Alerts)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
