package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Alerts holds the dashboard thresholds. Day counts are calendar days.
	Alerts struct {
		VisaExpiryDays        int    `yaml:"visa_expiry_days" env:"ALERT_VISA_EXPIRY_DAYS"`
		CertificateExpiryDays int    `yaml:"certificate_expiry_days" env:"ALERT_CERTIFICATE_EXPIRY_DAYS"`
		HealthCheckDays       int    `yaml:"health_check_days" env:"ALERT_HEALTH_CHECK_DAYS"`
		InterviewMonths       int    `yaml:"interview_months" env:"ALERT_INTERVIEW_MONTHS"`
		NewTraineeMonths      int    `yaml:"new_trainee_months" env:"ALERT_NEW_TRAINEE_MONTHS"`
		EvaluationWindowDays  int    `yaml:"evaluation_window_days" env:"ALERT_EVALUATION_WINDOW_DAYS"`
		RecentActivitiesLimit int    `yaml:"recent_activities_limit" env:"ALERT_RECENT_ACTIVITIES_LIMIT"`
		Timezone              string `yaml:"timezone" env:"ALERT_TIMEZONE"`
	} `yaml:"alerts"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Jobs struct {
		Enabled       bool   `yaml:"enabled" env:"JOBS_ENABLED"`
		AlertScanCron string `yaml:"alert_scan_cron" env:"JOBS_ALERT_SCAN_CRON"`
		Concurrency   int    `yaml:"concurrency" env:"JOBS_CONCURRENCY"`
	} `yaml:"jobs"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "traineehub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "168h"
	config.JWT.Issuer = "traineehub.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Alerts.VisaExpiryDays = 60
	config.Alerts.CertificateExpiryDays = 30
	config.Alerts.HealthCheckDays = 90
	config.Alerts.InterviewMonths = 3
	config.Alerts.NewTraineeMonths = 3
	config.Alerts.EvaluationWindowDays = 90
	config.Alerts.RecentActivitiesLimit = 10
	config.Alerts.Timezone = "UTC"

	config.Redis.Addr = "localhost:6379"

	config.Jobs.Enabled = false
	config.Jobs.AlertScanCron = "@every 6h"
	config.Jobs.Concurrency = 2
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	thresholds := map[string]int{
		"visa_expiry_days":        config.Alerts.VisaExpiryDays,
		"certificate_expiry_days": config.Alerts.CertificateExpiryDays,
		"health_check_days":       config.Alerts.HealthCheckDays,
		"interview_months":        config.Alerts.InterviewMonths,
		"new_trainee_months":      config.Alerts.NewTraineeMonths,
		"evaluation_window_days":  config.Alerts.EvaluationWindowDays,
		"recent_activities_limit": config.Alerts.RecentActivitiesLimit,
	}
	for name, value := range thresholds {
		if value <= 0 {
			return fmt.Errorf("alerts.%s must be positive, got %d", name, value)
		}
	}

	if _, err := time.LoadLocation(config.Alerts.Timezone); err != nil {
		return fmt.Errorf("invalid alerts timezone %q: %w", config.Alerts.Timezone, err)
	}

	if config.Jobs.Enabled {
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required when jobs are enabled")
		}
		if strings.TrimSpace(config.Jobs.AlertScanCron) == "" {
			return fmt.Errorf("jobs alert scan schedule is required when jobs are enabled")
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// Location returns the time zone used to decide what "today" means for alerts.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Alerts.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
