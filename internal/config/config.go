package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted by STORAGE_DRIVER.
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Reporting ReportingConfig
	Notify    NotifyConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects and parameterizes the entity store driver.
type StorageConfig struct {
	Driver      string
	MongoURI    string
	MongoDBName string
}

// ReportingConfig holds report cache and scheduler settings.
type ReportingConfig struct {
	CacheTTL      time.Duration // 0 disables the report cache
	CacheSize     int
	AnalyticsCron string
	SweepCron     string
	Timezone      string
}

// NotifyConfig contains credentials for the WhatsApp Cloud API used to
// deliver alerts. Optional: alerts are logged only when unset.
type NotifyConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	RecipientID   string
}

// Enabled reports whether outbound notifications are configured.
func (n NotifyConfig) Enabled() bool {
	return n.AccessToken != "" && n.PhoneNumberID != "" && n.RecipientID != ""
}

// SheetsConfig configures the optional spreadsheet export sink.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether sheet export is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cacheTTL, err := time.ParseDuration(getenvWithDefault("REPORT_CACHE_TTL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_CACHE_TTL: %w", err)
	}
	cacheSize, err := strconv.Atoi(getenvWithDefault("REPORT_CACHE_SIZE", "128"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_CACHE_SIZE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Driver:      getenvWithDefault("STORAGE_DRIVER", DriverMongoDB),
			MongoURI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "poultryfarm"),
		},
		Reporting: ReportingConfig{
			CacheTTL:      cacheTTL,
			CacheSize:     cacheSize,
			AnalyticsCron: getenvWithDefault("ANALYTICS_CRON_SCHEDULE", "30 0 * * *"),
			SweepCron:     getenvWithDefault("LOW_STOCK_CRON_SCHEDULE", "0 7 * * *"),
			Timezone:      getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		Notify: NotifyConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			RecipientID:   os.Getenv("ALERT_RECIPIENT_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverMongoDB:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.Storage.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Reporting.CacheTTL < 0 {
		return errors.New("REPORT_CACHE_TTL must not be negative")
	}
	if c.Reporting.CacheSize <= 0 {
		return errors.New("REPORT_CACHE_SIZE must be positive")
	}
	if c.Reporting.AnalyticsCron == "" {
		return errors.New("ANALYTICS_CRON_SCHEDULE must be provided")
	}
	if c.Reporting.SweepCron == "" {
		return errors.New("LOW_STOCK_CRON_SCHEDULE must be provided")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
