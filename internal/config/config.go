package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
)

type Config struct {
	// Persistence backend: file, sqlite or memory.
	DataBackend string

	// File backend
	DataFilePath string

	// SQLite backend
	SQLiteDBPath string

	// Logging
	LogLevel string
}

func defaults() Config {
	return Config{
		DataBackend:  "file",
		DataFilePath: "./data/financial-control.json",
		SQLiteDBPath: "./data/fincontrol.db",
		LogLevel:     "info",
	}
}

// Load reads configuration from the environment and fills the gaps with
// defaults.
func Load() *Config {
	cfg := &Config{
		DataBackend:  os.Getenv("DATA_BACKEND"),
		DataFilePath: os.Getenv("DATA_FILE_PATH"),
		SQLiteDBPath: os.Getenv("SQLITE_DB_PATH"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}
	// mergo fills only the zero-valued fields, so anything set in the
	// environment wins over the default.
	_ = mergo.Merge(cfg, defaults())
	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "file" {
		if c.DataFilePath == "" {
			errors = append(errors, "data file path cannot be empty when using file backend")
		} else if err := ensureDir(c.DataFilePath); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, err.Error())
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create data directory '%s': %v", dir, err)
		}
	}
	return nil
}
