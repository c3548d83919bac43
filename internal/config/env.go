package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable overrides. A .env file in the working directory is
// honored but never required.
const (
	envLogLevel    = "SITEGEN_LOG_LEVEL"
	envLogFormat   = "SITEGEN_LOG_FORMAT"
	envOutputDir   = "SITEGEN_OUTPUT_DIR"
	envCachePath   = "SITEGEN_CACHE"
	envParallelism = "SITEGEN_PARALLELISM"
)

// LoadDotEnv loads a .env file into the process environment if one exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv applies environment variable overrides on top of the loaded
// configuration. Environment beats file; CLI flags beat both.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
	if v := os.Getenv(envLogFormat); v != "" {
		cfg.Logging.Format = NormalizeLogFormat(v)
	}
	if v := os.Getenv(envOutputDir); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv(envCachePath); v != "" {
		cfg.Output.Cache = v
	}
	if v := os.Getenv(envParallelism); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Parallelism = n
		}
	}
}
