// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConverterCSVURL = "https://raw.githubusercontent.com/KHwang9883/MobileModels-csv/refs/heads/main/models.csv"
	DefaultSyncerCSVURL    = "https://raw.githubusercontent.com/YuleBest/MobileModels-csv/refs/heads/main/models.csv"
)

// ErrIncompleteStorageConfig means one or more object storage settings are missing.
// Callers treat it as a skip condition rather than a failure.
var ErrIncompleteStorageConfig = errors.New("incomplete storage configuration")

type ConverterConfig struct {
	CSVURL          string        `yaml:"csv_url"`
	OutputFile      string        `yaml:"output_file"`
	FetchTimeoutStr string        `yaml:"fetch_timeout"`
	SQLitePath      string        `yaml:"sqlite_path"`
	FetchTimeout    time.Duration `yaml:"-"` // Parsed duration
}

type SyncerConfig struct {
	CSVURL               string        `yaml:"csv_url"`
	FingerprintFile      string        `yaml:"fingerprint_file"`
	ObjectKey            string        `yaml:"object_key"`
	ContentType          string        `yaml:"content_type"`
	CacheControl         string        `yaml:"cache_control"`
	FetchTimeoutStr      string        `yaml:"fetch_timeout"`
	ReportUTCOffsetHours int           `yaml:"report_utc_offset_hours"`
	FetchTimeout         time.Duration `yaml:"-"` // Parsed duration, zero means no timeout
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Converter ConverterConfig `yaml:"converter"`
	Syncer    SyncerConfig    `yaml:"syncer"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Default returns the configuration both tools run with when no file is given.
func Default() *Config {
	return &Config{
		Converter: ConverterConfig{
			CSVURL:          DefaultConverterCSVURL,
			OutputFile:      "update.sql",
			FetchTimeoutStr: "30s",
		},
		Syncer: SyncerConfig{
			CSVURL:               DefaultSyncerCSVURL,
			FingerprintFile:      "last_csv_md5.txt",
			ObjectKey:            "models.json",
			ContentType:          "application/json",
			CacheControl:         "public, max-age=3600",
			ReportUTCOffsetHours: 8,
		},
		Storage: StorageConfig{
			Region: "auto",
		},
		Database: DatabaseConfig{
			Host: "127.0.0.1",
			Port: "3306",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the YAML file at configPath on top of the defaults.
// An empty configPath yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// Parse durations
	var err error
	if cfg.Converter.FetchTimeoutStr != "" {
		cfg.Converter.FetchTimeout, err = time.ParseDuration(cfg.Converter.FetchTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse converter fetch_timeout: %w", err)
		}
	}
	if cfg.Syncer.FetchTimeoutStr != "" {
		cfg.Syncer.FetchTimeout, err = time.ParseDuration(cfg.Syncer.FetchTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse syncer fetch_timeout: %w", err)
		}
	}

	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "auto"
	}
	return cfg, nil
}

// FindConfigFile returns the first existing candidate path, or "" when none exists.
func FindConfigFile(candidates ...string) string {
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ApplyEnv loads envFile (if present) into the process environment and then
// overrides credentials with the R2_* and DB_PASSWORD variables.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	overrides := []struct {
		key    string
		target *string
	}{
		{"R2_ACCESS_KEY", &c.Storage.AccessKey},
		{"R2_SECRET_KEY", &c.Storage.SecretKey},
		{"R2_BUCKET_NAME", &c.Storage.Bucket},
		{"R2_ENDPOINT_URL", &c.Storage.Endpoint},
		{"DB_PASSWORD", &c.Database.Password},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
	return nil
}

// Validate reports every missing storage setting in one error wrapping ErrIncompleteStorageConfig.
func (s StorageConfig) Validate() error {
	var missing []string
	if s.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if s.AccessKey == "" {
		missing = append(missing, "access_key")
	}
	if s.SecretKey == "" {
		missing = append(missing, "secret_key")
	}
	if s.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteStorageConfig, strings.Join(missing, ", "))
	}
	return nil
}
