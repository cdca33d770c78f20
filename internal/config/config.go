package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend identifiers accepted by STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Spreadsheet styling strategies accepted by SHEETS_STYLE.
const (
	StylePlain  = "plain"
	StyleStyled = "styled"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Fields  FieldsConfig
	Sheets  SheetsConfig
	Notify  NotifyConfig
	Backup  BackupConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects and parameterizes the local key-value slot backend.
type StorageConfig struct {
	Backend string
	Path    string
	Key     string
}

// FieldsConfig controls the active wizard field set.
type FieldsConfig struct {
	ModelEnabled        bool
	DefaultManufacturer string
}

// SheetsConfig contains configuration required to interact with Google
// Sheets. An empty CredentialsPath disables the spreadsheet export.
type SheetsConfig struct {
	CredentialsPath string
	Style           string
}

// Enabled reports whether the spreadsheet export is configured.
func (c SheetsConfig) Enabled() bool { return c.CredentialsPath != "" }

// NotifyConfig holds the optional webhook notification fan-out. An empty
// WebhookURL disables it.
type NotifyConfig struct {
	WebhookURL string
}

// BackupConfig holds the scheduled automatic backup settings.
type BackupConfig struct {
	Enabled      bool
	CronSchedule string
	Dir          string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance. Every knob defaults; the tool must come up
// with zero configuration.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Backend: getenvWithDefault("STORAGE_BACKEND", BackendFile),
			Path:    getenvWithDefault("STORAGE_PATH", "data"),
			Key:     getenvWithDefault("STORAGE_KEY", "inventario_registros"),
		},
		Fields: FieldsConfig{
			ModelEnabled:        getenvBool("FIELD_MODEL_ENABLED", true),
			DefaultManufacturer: getenvWithDefault("DEFAULT_MANUFACTURER", "Dell"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			Style:           getenvWithDefault("SHEETS_STYLE", StyleStyled),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
		Backup: BackupConfig{
			Enabled:      getenvBool("BACKUP_ENABLED", true),
			CronSchedule: getenvWithDefault("BACKUP_CRON_SCHEDULE", "0 20 * * *"),
			Dir:          getenvWithDefault("BACKUP_DIR", "backups"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is internally consistent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must not be empty")
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.Backend)
	}

	if c.Storage.Path == "" {
		return errors.New("STORAGE_PATH must not be empty")
	}
	if c.Storage.Key == "" {
		return errors.New("STORAGE_KEY must not be empty")
	}

	switch c.Sheets.Style {
	case StylePlain, StyleStyled:
	default:
		return fmt.Errorf("SHEETS_STYLE must be %q or %q, got %q", StylePlain, StyleStyled, c.Sheets.Style)
	}

	if c.Backup.Enabled {
		if c.Backup.CronSchedule == "" {
			return errors.New("BACKUP_CRON_SCHEDULE must not be empty when backups are enabled")
		}
		if c.Backup.Dir == "" {
			return errors.New("BACKUP_DIR must not be empty when backups are enabled")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
