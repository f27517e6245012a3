package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvDevelopment is the only environment in which the fallback admin
	// credentials and session secret are accepted.
	EnvDevelopment = "development"

	devAdminEmail    = "a@gmail.com"
	devAdminPassword = "12345"
	devSessionSecret = "dev-session-secret"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AdminConfig holds the static admin credentials and session settings.
// PasswordHash, when set, takes precedence over Password and is compared
// with bcrypt.
type AdminConfig struct {
	Email         string
	Password      string
	PasswordHash  string
	SessionSecret string
	SessionTTLSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables and passed explicitly to
// every component; there are no ambient singletons.
type AppConfig struct {
	Env      string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Admin    AdminConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:  getEnv("APP_ENV", EnvDevelopment),
		Port: getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "pdfs"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Admin: AdminConfig{
			Email:         getEnv("ADMIN_EMAIL", ""),
			Password:      getEnv("ADMIN_PASSWORD", ""),
			PasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SessionTTLSec: getEnvInt("SESSION_TTL_SEC", 86400),
		},
	}
}

// Validate fills in development fallbacks for missing credentials and
// rejects missing credentials everywhere else. The well-known defaults
// exist so the service runs out of the box locally; outside development
// the process must not start with guessable credentials.
func (c *AppConfig) Validate() error {
	missingCreds := c.Admin.Email == "" || (c.Admin.Password == "" && c.Admin.PasswordHash == "")
	missingSecret := c.Admin.SessionSecret == ""

	if c.Env != EnvDevelopment {
		if missingCreds {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH) must be set when APP_ENV is %q", c.Env)
		}
		if missingSecret {
			return fmt.Errorf("SESSION_SECRET must be set when APP_ENV is %q", c.Env)
		}
		return nil
	}

	if c.Admin.Email == "" {
		c.Admin.Email = devAdminEmail
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		c.Admin.Password = devAdminPassword
	}
	if missingSecret {
		c.Admin.SessionSecret = devSessionSecret
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
