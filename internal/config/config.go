package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Log     LogConfig
	CORS    CORSConfig
	Billing BillingConfig
	Email   EmailConfig
	Reports ReportsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BillingConfig holds bill generation and scheduler settings.
//
// DueDateOffsetDays is relative to the first day of the month following the
// billed month: 0 means bills fall due on the 1st of the next month. It is a
// policy constant, not business law.
type BillingConfig struct {
	DueDateOffsetDays int           `mapstructure:"due_date_offset_days"`
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	RunHourUTC        int           `mapstructure:"run_hour_utc"`
	SchedulerEnabled  bool          `mapstructure:"scheduler_enabled"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ReportsConfig holds bill register export/archive settings.
type ReportsConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads configuration from environment variables with the RENTDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rentdesk")
	v.SetDefault("db.password", "rentdesk_secret")
	v.SetDefault("db.name", "rentdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "rentdesk")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Billing defaults
	v.SetDefault("billing.due_date_offset_days", 0)
	v.SetDefault("billing.tick_interval", "1h")
	v.SetDefault("billing.run_hour_utc", 9)
	v.SetDefault("billing.scheduler_enabled", true)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@rentdesk.local")
	v.SetDefault("email.from_name", "Rentdesk")

	// Reports defaults
	v.SetDefault("reports.bucket", "")
	v.SetDefault("reports.region", "us-east-1")
	v.SetDefault("reports.endpoint", "")
	v.SetDefault("reports.access_key", "")
	v.SetDefault("reports.secret_key", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "RENTDESK_SERVER_PORT",
		"server.read_timeout":          "RENTDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "RENTDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":           "RENTDESK_SERVER_ENVIRONMENT",
		"db.host":                      "RENTDESK_DB_HOST",
		"db.port":                      "RENTDESK_DB_PORT",
		"db.user":                      "RENTDESK_DB_USER",
		"db.password":                  "RENTDESK_DB_PASSWORD",
		"db.name":                      "RENTDESK_DB_NAME",
		"db.sslmode":                   "RENTDESK_DB_SSLMODE",
		"db.max_open":                  "RENTDESK_DB_MAX_OPEN",
		"db.max_idle":                  "RENTDESK_DB_MAX_IDLE",
		"jwt.secret":                   "RENTDESK_JWT_SECRET",
		"jwt.access_expiry":            "RENTDESK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":           "RENTDESK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                   "RENTDESK_JWT_ISSUER",
		"log.level":                    "RENTDESK_LOG_LEVEL",
		"log.format":                   "RENTDESK_LOG_FORMAT",
		"cors.allowed_origins":         "RENTDESK_CORS_ALLOWED_ORIGINS",
		"billing.due_date_offset_days": "RENTDESK_BILLING_DUE_DATE_OFFSET_DAYS",
		"billing.tick_interval":        "RENTDESK_BILLING_TICK_INTERVAL",
		"billing.run_hour_utc":         "RENTDESK_BILLING_RUN_HOUR_UTC",
		"billing.scheduler_enabled":    "RENTDESK_BILLING_SCHEDULER_ENABLED",
		"email.provider":               "RENTDESK_EMAIL_PROVIDER",
		"email.region":                 "RENTDESK_EMAIL_REGION",
		"email.from_address":           "RENTDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":              "RENTDESK_EMAIL_FROM_NAME",
		"reports.bucket":               "RENTDESK_REPORTS_BUCKET",
		"reports.region":               "RENTDESK_REPORTS_REGION",
		"reports.endpoint":             "RENTDESK_REPORTS_ENDPOINT",
		"reports.access_key":           "RENTDESK_REPORTS_ACCESS_KEY",
		"reports.secret_key":           "RENTDESK_REPORTS_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RENTDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RENTDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Billing = BillingConfig{
		DueDateOffsetDays: v.GetInt("billing.due_date_offset_days"),
		TickInterval:      v.GetDuration("billing.tick_interval"),
		RunHourUTC:        v.GetInt("billing.run_hour_utc"),
		SchedulerEnabled:  v.GetBool("billing.scheduler_enabled"),
	}
	if cfg.Billing.RunHourUTC < 0 || cfg.Billing.RunHourUTC > 23 {
		return nil, fmt.Errorf("billing.run_hour_utc must be 0-23, got %d", cfg.Billing.RunHourUTC)
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Reports = ReportsConfig{
		Bucket:    v.GetString("reports.bucket"),
		Region:    v.GetString("reports.region"),
		Endpoint:  v.GetString("reports.endpoint"),
		AccessKey: v.GetString("reports.access_key"),
		SecretKey: v.GetString("reports.secret_key"),
	}

	return cfg, nil
}
