package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultExecutable is the launcher name looked up on PATH when nothing else is configured.
const DefaultExecutable = "dereplicator.py"

// Config represents environment-derived settings.
type Config struct {
	Executable string
	TmpDir     string
	Debug      bool
	LogLevel   string
}

// Load reads .env (if present) and validates the environment defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Executable: strings.TrimSpace(os.Getenv("DEREPLICATOR_EXECUTABLE")),
		TmpDir:     strings.TrimSpace(os.Getenv("DEREPLICATOR_TMP_DIR")),
		LogLevel:   strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}
	if cfg.Executable == "" {
		cfg.Executable = DefaultExecutable
	}

	if raw := strings.TrimSpace(os.Getenv("DEREPLICATOR_DEBUG")); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("DEREPLICATOR_DEBUG must be a boolean: %q", raw)
		}
		cfg.Debug = debug
	}

	if cfg.TmpDir != "" && !filepath.IsAbs(cfg.TmpDir) {
		return cfg, fmt.Errorf("DEREPLICATOR_TMP_DIR must be an absolute path: %q", cfg.TmpDir)
	}

	return cfg, nil
}
