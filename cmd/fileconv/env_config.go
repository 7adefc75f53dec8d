package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-fileconv/internal/config"
	"github.com/alnah/go-fileconv/internal/fileutil"
	"github.com/alnah/go-fileconv/internal/hints"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // FILECONV_CONFIG: config file name or path
	SassBinary string // FILECONV_SASS_BINARY: Dart Sass executable
	OutputDir  string // FILECONV_OUTPUT_DIR: default output directory
	Workers    int    // FILECONV_WORKERS: parallel workers
}

// knownEnvVars lists valid FILECONV_* environment variables.
var knownEnvVars = map[string]bool{
	"FILECONV_CONFIG":      true,
	"FILECONV_SASS_BINARY": true,
	"FILECONV_OUTPUT_DIR":  true,
	"FILECONV_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid FILECONV_WORKERS values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("FILECONV_CONFIG"),
		SassBinary: os.Getenv("FILECONV_SASS_BINARY"),
		OutputDir:  os.Getenv("FILECONV_OUTPUT_DIR"),
	}

	if workers := os.Getenv("FILECONV_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized FILECONV_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "FILECONV_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// Flags are merged afterwards, giving: flags > env > config > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SassBinary != "" {
		cfg.Stylesheet.SassBinary = env.SassBinary
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}

// resolveConfig loads the config named by the flag or FILECONV_CONFIG
// and applies environment overrides. No name means defaults.
func resolveConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
