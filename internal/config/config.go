// Package config loads server configuration from an optional YAML file and ROSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "ROSTER"

// Config конфигурация сервера
type Config struct {
	Auth    AuthConfig    `mapstructure:"auth"`
	Backend BackendConfig `mapstructure:"backend"`
	Intent  IntentConfig  `mapstructure:"intent"`
	Logging LoggingConfig `mapstructure:"logging"`
	Roster  RosterConfig  `mapstructure:"roster"`
	Server  ServerConfig  `mapstructure:"server"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Remote  RemoteConfig  `mapstructure:"remote"`
}

// ServerConfig HTTP сервер
type ServerConfig struct {
	Address         string        `mapstructure:"address" validate:"required"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	RatePerSecond   float64       `mapstructure:"rate_per_second" validate:"gte=0"`
	RateBurst       int           `mapstructure:"rate_burst" validate:"gte=0"`
}

// AuthConfig JWT и список допущенных пользователей
type AuthConfig struct {
	Secret       string        `mapstructure:"secret" validate:"required,min=16"`
	AllowedUsers []string      `mapstructure:"allowed_users"`
	Admins       []string      `mapstructure:"admins"`
	TokenTTL     time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// BackendConfig удаленное хранилище таблицы
type BackendConfig struct {
	Kind   string       `mapstructure:"kind" validate:"oneof=sqlite sheets"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	// SpoolPath файл bbolt для теплого старта ("" - выключено)
	SpoolPath string `mapstructure:"spool_path"`
}

// SQLiteConfig локальная эмуляция таблицы
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// SheetsConfig Google Sheets
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Sheet           string `mapstructure:"sheet"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// IntentConfig AI сервис классификации вопросов
type IntentConfig struct {
	Provider         string        `mapstructure:"provider" validate:"oneof=gemini anthropic"`
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	BaseURL          string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RatePerSecond    float64       `mapstructure:"rate_per_second" validate:"gte=0"`
	Burst            int           `mapstructure:"burst" validate:"gte=0"`
	BreakerThreshold uint32        `mapstructure:"breaker_threshold"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout"`
}

// LoggingConfig журналирование
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// RosterConfig словари схемы и правила запросов
type RosterConfig struct {
	Groups          []string      `mapstructure:"groups"`
	Statuses        []string      `mapstructure:"statuses"`
	UnassignedGroup string        `mapstructure:"unassigned_group"`
	Timezone        string        `mapstructure:"timezone" validate:"required"`
	Similarity      float64       `mapstructure:"similarity" validate:"gt=0,lte=1"`
	MaxWriteBaseAge time.Duration `mapstructure:"max_write_base_age" validate:"gte=0"`
	CommitTimeout   time.Duration `mapstructure:"commit_timeout" validate:"gt=0"`
}

// SyncConfig фоновая синхронизация
type SyncConfig struct {
	Interval   time.Duration `mapstructure:"interval" validate:"gt=0"`
	StaleAfter time.Duration `mapstructure:"stale_after" validate:"gt=0"`
}

// RemoteConfig повторы и предохранитель для удаленного хранилища
type RemoteConfig struct {
	CallTimeout      time.Duration `mapstructure:"call_timeout" validate:"gt=0"`
	BaseBackoff      time.Duration `mapstructure:"base_backoff" validate:"gt=0"`
	MaxBackoff       time.Duration `mapstructure:"max_backoff" validate:"gtefield=BaseBackoff"`
	BreakerTimeout   time.Duration `mapstructure:"breaker_timeout" validate:"gte=0"`
	ReadAttempts     int           `mapstructure:"read_attempts" validate:"gte=1"`
	WriteAttempts    int           `mapstructure:"write_attempts" validate:"gte=1"`
	BreakerThreshold uint32        `mapstructure:"breaker_threshold"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_per_second", 10.0)
	v.SetDefault("server.rate_burst", 20)

	v.SetDefault("server.allowed_origins", []string{})

	// Ключи без значений по умолчанию тоже регистрируем, иначе AutomaticEnv их не увидит
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.allowed_users", []string{})
	v.SetDefault("auth.admins", []string{})
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("backend.kind", "sqlite")
	v.SetDefault("backend.sqlite.path", "roster.db")
	v.SetDefault("backend.sheets.spreadsheet_id", "")
	v.SetDefault("backend.sheets.sheet", "Sheet1")
	v.SetDefault("backend.sheets.credentials_file", "")
	v.SetDefault("backend.spool_path", "")

	v.SetDefault("intent.provider", "gemini")
	v.SetDefault("intent.api_key", "")
	v.SetDefault("intent.model", "")
	v.SetDefault("intent.base_url", "")
	v.SetDefault("intent.timeout", 20*time.Second)
	v.SetDefault("intent.rate_per_second", 1.0)
	v.SetDefault("intent.burst", 5)
	v.SetDefault("intent.breaker_threshold", 5)
	v.SetDefault("intent.breaker_timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)

	v.SetDefault("roster.groups", []string{})
	v.SetDefault("roster.statuses", []string{})
	v.SetDefault("roster.unassigned_group", "")
	v.SetDefault("roster.timezone", "Europe/Moscow")
	v.SetDefault("roster.similarity", 0.7)
	v.SetDefault("roster.max_write_base_age", 10*time.Minute)
	v.SetDefault("roster.commit_timeout", 30*time.Second)

	v.SetDefault("sync.interval", 5*time.Minute)
	v.SetDefault("sync.stale_after", 15*time.Minute)

	v.SetDefault("remote.call_timeout", 10*time.Second)
	v.SetDefault("remote.base_backoff", 200*time.Millisecond)
	v.SetDefault("remote.max_backoff", 5*time.Second)
	v.SetDefault("remote.breaker_timeout", 30*time.Second)
	v.SetDefault("remote.read_attempts", 3)
	v.SetDefault("remote.write_attempts", 2)
	v.SetDefault("remote.breaker_threshold", 5)
}

// Load reads configuration. path may be empty; values from ROSTER_* variables
// (e.g. ROSTER_SERVER_ADDRESS) take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	var errs []error
	if c.Backend.Kind == "sheets" && c.Backend.Sheets.SpreadsheetID == "" {
		errs = append(errs, errors.New("backend.sheets.spreadsheet_id is required for the sheets backend"))
	}
	if c.Backend.Kind == "sqlite" && c.Backend.SQLite.Path == "" {
		errs = append(errs, errors.New("backend.sqlite.path is required for the sqlite backend"))
	}
	if c.Intent.APIKey == "" && c.Intent.BaseURL == "" {
		errs = append(errs, errors.New("intent.api_key is required"))
	}
	if _, err := time.LoadLocation(c.Roster.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("roster.timezone: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Roster.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
