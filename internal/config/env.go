package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvContentRoot = "DOCSITE_CONTENT_ROOT"
	EnvOutputDir   = "DOCSITE_OUTPUT_DIR"
	EnvLogLevel    = "DOCSITE_LOG_LEVEL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads each existing file in order. godotenv never replaces a
// variable that is already set, so the process environment wins and earlier
// files win over later ones.
func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		slog.Debug("Loaded environment file", slog.String("path", p))
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvContentRoot); v != "" {
		cfg.Content.Root = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.Output.Directory = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.Logging.Level = lvl
	}
	return nil
}
