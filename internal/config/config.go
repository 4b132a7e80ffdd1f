package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIURL         string        `env:"SEEKER_API_URL" envDefault:"http://localhost:5001"`
	PushPath       string        `env:"SEEKER_PUSH_PATH" envDefault:"/ws"`
	RequestTimeout time.Duration `env:"SEEKER_REQUEST_TIMEOUT" envDefault:"30s"`
	DBPath         string        `env:"SEEKER_DB_PATH"`
	LogLevel       string        `env:"SEEKER_LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"SEEKER_LOG_FILE"`
}

// Load reads an optional env file, then the process environment. An empty
// envFile means ".env" in the working directory, which may be absent.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file '%s': %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("SEEKER_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	if cfg.DBPath == "" || cfg.LogFile == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(dir, "seeker.db")
		}
		if cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(dir, "seeker.log")
		}
	}

	return cfg, nil
}

// DataDir returns the per-user directory for the database and log file.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "seeker"), nil
}
