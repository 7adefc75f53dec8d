package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-fileconv/internal/fileutil"
	"github.com/alnah/go-fileconv/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the user config directory (~/.config/go-fileconv).
const AppName = "go-fileconv"

// Field length limits.
const (
	MaxTokenLength      = 200  // Origin placeholder
	MaxParamLength      = 50   // Query parameter name
	MaxPathLength       = 4096 // File system paths
	MaxStyleLength      = 50   // Chroma style name
	MaxIncludePathCount = 64
)

// Config holds all configuration for file conversion.
type Config struct {
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Stylesheet StylesheetConfig `yaml:"stylesheet"`
	Output     OutputConfig     `yaml:"output"`
}

// MarkdownConfig defines Markdown rendering options.
type MarkdownConfig struct {
	OriginToken       string `yaml:"originToken"`       // Empty = "{% origin %}"
	PageParam         string `yaml:"pageParam"`         // Empty = "page"
	CloseDeepHeadings bool   `yaml:"closeDeepHeadings"` // Emit </b> for level 4+ headings
	RawHTML           bool   `yaml:"rawHTML"`           // Pass raw HTML through
	GFM               bool   `yaml:"gfm"`               // Linkify and task lists
	Footnotes         bool   `yaml:"footnotes"`
	HardWraps         bool   `yaml:"hardWraps"`
	Highlight         string `yaml:"highlight"` // Chroma style name (empty = no highlighting)
}

// StylesheetConfig defines SCSS compilation options.
type StylesheetConfig struct {
	SourceMap    string   `yaml:"sourceMap"`    // "embedded", "linked", "none" (default: "embedded")
	EmptyMapFile bool     `yaml:"emptyMapFile"` // With sourceMap none: write an empty .map file
	IncludePaths []string `yaml:"includePaths"`
	SassBinary   string   `yaml:"sassBinary"` // Empty = "sass" from PATH
	Timeout      string   `yaml:"timeout"`    // Go duration, e.g. "30s" (empty = library default)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
}

// Validate checks enum values and field lengths.
// Called automatically by LoadConfig, but available for callers that
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("markdown.originToken", c.Markdown.OriginToken, MaxTokenLength); err != nil {
		return err
	}
	if err := validateFieldLength("markdown.pageParam", c.Markdown.PageParam, MaxParamLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Markdown.PageParam, "&=?# ") {
		return fmt.Errorf("%w: markdown.pageParam %q contains a reserved character", ErrInvalidValue, c.Markdown.PageParam)
	}
	if err := validateFieldLength("markdown.highlight", c.Markdown.Highlight, MaxStyleLength); err != nil {
		return err
	}

	switch c.Stylesheet.SourceMap {
	case "", "embedded", "linked", "none":
		// valid
	default:
		return fmt.Errorf("%w: stylesheet.sourceMap %q (must be embedded, linked, or none)", ErrInvalidValue, c.Stylesheet.SourceMap)
	}
	if c.Stylesheet.EmptyMapFile && c.Stylesheet.SourceMap != "none" {
		return fmt.Errorf("%w: stylesheet.emptyMapFile requires sourceMap none", ErrInvalidValue)
	}
	if len(c.Stylesheet.IncludePaths) > MaxIncludePathCount {
		return fmt.Errorf("%w: stylesheet.includePaths (%d entries, max %d)", ErrFieldTooLong, len(c.Stylesheet.IncludePaths), MaxIncludePathCount)
	}
	for i, p := range c.Stylesheet.IncludePaths {
		if err := validateFieldLength(fmt.Sprintf("stylesheet.includePaths[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("stylesheet.sassBinary", c.Stylesheet.SassBinary, MaxPathLength); err != nil {
		return err
	}
	if _, err := c.Stylesheet.TimeoutDuration(); err != nil {
		return err
	}

	return validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength)
}

// TimeoutDuration parses Stylesheet.Timeout. Empty yields zero.
func (s StylesheetConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: stylesheet.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, s.Timeout)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Stylesheet: StylesheetConfig{SourceMap: "embedded"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// name.yaml and name.yml in the current directory, then in
// ~/.config/go-fileconv/ (the platform user config directory).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
