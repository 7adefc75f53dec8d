package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Markdown.OriginToken != "" {
		t.Errorf("Markdown.OriginToken = %q, want empty", cfg.Markdown.OriginToken)
	}
	if cfg.Markdown.CloseDeepHeadings {
		t.Error("Markdown.CloseDeepHeadings = true, want false")
	}
	if cfg.Stylesheet.SourceMap != "embedded" {
		t.Errorf("Stylesheet.SourceMap = %q, want %q", cfg.Stylesheet.SourceMap, "embedded")
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty", "", 10, false},
		{"at limit", strings.Repeat("a", 10), 10, false},
		{"over limit", strings.Repeat("a", 11), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("field", tt.value, tt.max)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"linked map", func(c *Config) { c.Stylesheet.SourceMap = "linked" }, nil},
		{"none with empty map file", func(c *Config) {
			c.Stylesheet.SourceMap = "none"
			c.Stylesheet.EmptyMapFile = true
		}, nil},
		{"empty map file without none", func(c *Config) { c.Stylesheet.EmptyMapFile = true }, ErrInvalidValue},
		{"unknown source map", func(c *Config) { c.Stylesheet.SourceMap = "inline" }, ErrInvalidValue},
		{"bad timeout", func(c *Config) { c.Stylesheet.Timeout = "soon" }, ErrInvalidValue},
		{"negative timeout", func(c *Config) { c.Stylesheet.Timeout = "-5s" }, ErrInvalidValue},
		{"page param with separator", func(c *Config) { c.Markdown.PageParam = "a&b" }, ErrInvalidValue},
		{"origin token too long", func(c *Config) { c.Markdown.OriginToken = strings.Repeat("x", MaxTokenLength+1) }, ErrFieldTooLong},
		{"highlight too long", func(c *Config) { c.Markdown.Highlight = strings.Repeat("x", MaxStyleLength+1) }, ErrFieldTooLong},
		{"too many include paths", func(c *Config) {
			c.Stylesheet.IncludePaths = make([]string, MaxIncludePathCount+1)
		}, ErrFieldTooLong},
		{"include path too long", func(c *Config) {
			c.Stylesheet.IncludePaths = []string{strings.Repeat("p", MaxPathLength+1)}
		}, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStylesheetConfig_TimeoutDuration(t *testing.T) {
	d, err := StylesheetConfig{}.TimeoutDuration()
	if err != nil || d != 0 {
		t.Errorf("empty timeout = (%v, %v), want (0, nil)", d, err)
	}

	d, err = StylesheetConfig{Timeout: "45s"}.TimeoutDuration()
	if err != nil || d != 45*time.Second {
		t.Errorf("45s timeout = (%v, %v), want (45s, nil)", d, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "site.yaml")
		content := `markdown:
  originToken: "{{ origin }}"
  pageParam: "p"
  closeDeepHeadings: true
  highlight: "monokai"
stylesheet:
  sourceMap: "linked"
  includePaths:
    - "vendor/scss"
  timeout: "20s"
output:
  defaultDir: "public"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Markdown.OriginToken != "{{ origin }}" {
			t.Errorf("Markdown.OriginToken = %q", cfg.Markdown.OriginToken)
		}
		if cfg.Markdown.PageParam != "p" {
			t.Errorf("Markdown.PageParam = %q", cfg.Markdown.PageParam)
		}
		if !cfg.Markdown.CloseDeepHeadings {
			t.Error("Markdown.CloseDeepHeadings = false, want true")
		}
		if cfg.Stylesheet.SourceMap != "linked" {
			t.Errorf("Stylesheet.SourceMap = %q, want linked", cfg.Stylesheet.SourceMap)
		}
		if len(cfg.Stylesheet.IncludePaths) != 1 || cfg.Stylesheet.IncludePaths[0] != "vendor/scss" {
			t.Errorf("Stylesheet.IncludePaths = %v", cfg.Stylesheet.IncludePaths)
		}
		if cfg.Output.DefaultDir != "public" {
			t.Errorf("Output.DefaultDir = %q", cfg.Output.DefaultDir)
		}
	})

	t.Run("omitted source map keeps default", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "site.yaml")
		if err := os.WriteFile(configPath, []byte("markdown:\n  gfm: true\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Stylesheet.SourceMap != "embedded" {
			t.Errorf("Stylesheet.SourceMap = %q, want embedded", cfg.Stylesheet.SourceMap)
		}
		if !cfg.Markdown.GFM {
			t.Error("Markdown.GFM = false, want true")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(configPath, []byte("markdown:\n  originTokn: x\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(configPath, []byte("stylesheet:\n  sourceMap: inline\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("config name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte("output:\n  defaultDir: out\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.DefaultDir != "out" {
			t.Errorf("Output.DefaultDir = %q, want out", cfg.Output.DefaultDir)
		}
	})

	t.Run("unknown config name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("fileconv-missing-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "fileconv-missing-config.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("local candidates = %v, want [site.yaml site.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user candidate %q should live under %s", p, AppName)
		}
	}
}
