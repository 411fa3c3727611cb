package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Admission struct {
		// DefaultWaitlistFactor sizes the waitlist relative to total seats
		// when a generation request does not supply one.
		DefaultWaitlistFactor float64 `yaml:"default_waitlist_factor" env:"ADMISSION_DEFAULT_WAITLIST_FACTOR"`
		// ScoringConcurrency bounds how many applicants are scored in
		// parallel during merit-list generation.
		ScoringConcurrency int `yaml:"scoring_concurrency" env:"ADMISSION_SCORING_CONCURRENCY"`
		DefaultWeights     struct {
			Academic   float64 `yaml:"academic" env:"ADMISSION_WEIGHT_ACADEMIC"`
			EntryTest  float64 `yaml:"entry_test" env:"ADMISSION_WEIGHT_ENTRY_TEST"`
			Interview  float64 `yaml:"interview" env:"ADMISSION_WEIGHT_INTERVIEW"`
			Experience float64 `yaml:"experience" env:"ADMISSION_WEIGHT_EXPERIENCE"`
		} `yaml:"default_weights"`
	} `yaml:"admission"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; environment variables can carry everything.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Environment variables override file values
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return config, nil
}

// setDefaults fills in sane defaults before the file and environment are applied
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.DBName = "admitly"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 25
	config.Database.ConnMaxLifetime = "30m"

	config.JWT.Secret = "change-me-in-production"
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "admitly"

	config.Admission.DefaultWaitlistFactor = 0.2
	config.Admission.ScoringConcurrency = 8
	config.Admission.DefaultWeights.Academic = 0.6
	config.Admission.DefaultWeights.EntryTest = 0.25
	config.Admission.DefaultWeights.Interview = 0.15

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// GetPostgresConnectionString builds the connection string for pgx
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
