// Package config loads runtime configuration from flags, environment and an
// optional config file through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g.
// HOTPROSPECTS_STORAGE_BACKEND.
const EnvPrefix = "HOTPROSPECTS"

const (
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"

	SinkLog    = "log"
	SinkHTTP   = "http"
	SinkPubSub = "pubsub"
)

// Config holds the application's configuration.
type Config struct {
	DataDir      string          `mapstructure:"data_dir"`
	GCPProjectID string          `mapstructure:"gcp_project_id"`
	Storage      StorageConfig   `mapstructure:"storage"`
	Reminders    RemindersConfig `mapstructure:"reminders"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

type StorageConfig struct {
	Backend             string `mapstructure:"backend"`
	FileName            string `mapstructure:"file_name"`
	EncryptionKeyFile   string `mapstructure:"encryption_key_file"`
	SQLiteFileName      string `mapstructure:"sqlite_file_name"`
	FirestoreCollection string `mapstructure:"firestore_collection"`
}

type RemindersConfig struct {
	Sink string `mapstructure:"sink"`
	// Authorized is the answer given when notification permission is requested.
	Authorized bool   `mapstructure:"authorized"`
	GatewayURL string `mapstructure:"gateway_url"`
	Topic      string `mapstructure:"topic"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("gcp_project_id", "")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.file_name", "SavedData")
	v.SetDefault("storage.encryption_key_file", "")
	v.SetDefault("storage.sqlite_file_name", "prospects.db")
	v.SetDefault("storage.firestore_collection", "prospects")
	v.SetDefault("reminders.sink", SinkLog)
	v.SetDefault("reminders.authorized", true)
	v.SetDefault("reminders.gateway_url", "http://localhost:8082")
	v.SetDefault("reminders.topic", "prospect-reminders")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the config file named by the "config" key, if any, and decodes
// everything into a validated Config.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(expandHome(file))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Storage.EncryptionKeyFile = expandHome(cfg.Storage.EncryptionKeyFile)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Reminders.Sink = strings.ToLower(strings.TrimSpace(cfg.Reminders.Sink))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
		if c.Storage.Backend != BackendMemory && c.DataDir == "" {
			return fmt.Errorf("data_dir must be set for the %s backend", c.Storage.Backend)
		}
	case BackendFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("gcp_project_id must be set for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	switch c.Reminders.Sink {
	case SinkLog:
	case SinkHTTP:
		if c.Reminders.GatewayURL == "" {
			return fmt.Errorf("reminders.gateway_url must be set for the http sink")
		}
	case SinkPubSub:
		if c.GCPProjectID == "" || c.Reminders.Topic == "" {
			return fmt.Errorf("gcp_project_id and reminders.topic must be set for the pubsub sink")
		}
	default:
		return fmt.Errorf("unknown reminders.sink %q", c.Reminders.Sink)
	}
	return nil
}

// StatePath is the JSON file used by the file backend.
func (c Config) StatePath() string {
	return filepath.Join(c.DataDir, c.Storage.FileName)
}

// SQLitePath is the database used by the sqlite backend.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, c.Storage.SQLiteFileName)
}

// DefaultDataDir is an application-private directory under the user's config dir.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", ".hotprospects")
	}
	return filepath.Join(dir, "hotprospects")
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return filepath.Clean(p)
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
