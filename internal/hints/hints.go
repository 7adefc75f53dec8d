// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-fileconv/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForSassUnavailable returns hints for a missing or failing Dart Sass binary.
func ForSassUnavailable() string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "install the standalone Dart Sass release in the image (the npm sass package lacks --embedded)")
	} else {
		hints = append(hints, "install Dart Sass: https://sass-lang.com/install")
	}

	if os.Getenv("FILECONV_SASS_BINARY") == "" {
		hints = append(hints, "set FILECONV_SASS_BINARY to use a sass executable outside PATH")
	}

	return formatHints(hints)
}

// ForSCSSCompile returns a hint for SCSS compilation errors.
func ForSCSSCompile() string {
	return format("imports resolve against the file's directory and --include paths")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-fileconv/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-fileconv") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForHighlightStyle returns hints for unknown chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
