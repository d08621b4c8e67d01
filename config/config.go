// Package config reads the service settings from the environment and job
// manifests from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/candidatos-info/civic-enrichers/logger"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	LogMode         string
	DBDriver        string
	DatabaseURL     string
	ServerPort      string
	UserName        string
	Password        string
	ArchiveLocation string // where merge summaries are written: a local dir, gs://bucket/dir or s3://bucket/dir
	Workers         int
	Attempts        int // tries per staging or merge transaction

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
}

// Load reads envFile when it exists, then the environment. Variables already
// set in the environment win over the file.
func Load(envFile string, log *logger.Logger) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file [%s], error %w", envFile, err)
		}
	}
	c := &Config{
		LogMode:            GetEnv("LOG_MODE", "development", log),
		DBDriver:           GetEnv("DB_DRIVER", "postgres", log),
		DatabaseURL:        GetEnv("DATABASE_URL", "", log),
		ServerPort:         GetEnv("SERVER_PORT", "8080", log),
		UserName:           GetEnv("USER_NAME", "", log),
		Password:           GetEnv("PASSWORD", "", log),
		ArchiveLocation:    GetEnv("ARCHIVE_LOCATION", "archive", log),
		Workers:            GetEnvAsInt("WORKERS", 0, log),
		Attempts:           GetEnvAsInt("ATTEMPTS", 3, log),
		AWSAccessKeyID:     GetEnv("ACCESS_KEY_ID", "", log),
		AWSSecretAccessKey: GetEnv("SECRET_ACCESS_KEY", "", log),
		AWSRegion:          GetEnv("AWS_REGION", "us-east-1", log),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER [%s], use postgres or sqlite", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("missing DATABASE_URL environment variable")
	}
	if c.Attempts < 1 {
		return fmt.Errorf("invalid ATTEMPTS [%d], must be at least 1", c.Attempts)
	}
	return nil
}

// GetEnv returns the variable named key, or defaultVal when it is unset.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	if log != nil {
		log.Debug("Environment variable found, using environment")
	}
	return val
}

// GetEnvAsInt is GetEnv for integers. Values that do not parse fall back to
// defaultVal.
func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable could not be parsed as int, using default", "provided", valStr, "default", defaultVal, "error", err.Error())
		}
		return defaultVal
	}
	return i
}
