// Package cli provides common CLI initialization: logging, .env loading,
// config validation and backend construction.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"fincontrol/internal/backend"
	"fincontrol/internal/config"
	"fincontrol/internal/log"
	"fincontrol/internal/store"
)

// SetupLogger initializes structured logging and installs it as default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.ParseLevel(level), log.ComponentApp)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	return cfg
}

// OpenStore constructs the configured blob backend and wraps it in a data
// store. Exits the process on backend failure.
func OpenStore(logger *log.Logger, cfg *config.Config) (*store.Store, backend.CleanupFunc) {
	res, err := backend.Open(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		DataFilePath: cfg.DataFilePath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("failed to initialize backend",
			log.FieldError, err.Error(),
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	logger.Debug("backend initialized", log.FieldBackend, cfg.DataBackend)

	st := store.New(res.Store, store.WithLogger(logger.WithComponent(log.ComponentStore)))
	cleanup := res.Cleanup
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return st, cleanup
}
