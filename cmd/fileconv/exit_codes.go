package main

import (
	"errors"
	"io/fs"

	fileconv "github.com/alnah/go-fileconv"
	"github.com/alnah/go-fileconv/internal/config"
)

// Exit codes for the fileconv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitCompiler = 4 // Dart Sass missing or compilation failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Compiler errors (exit 4)
	if errors.Is(err, fileconv.ErrSassUnavailable) ||
		errors.Is(err, fileconv.ErrSCSSCompile) {
		return ExitCompiler
	}

	// I/O errors (exit 3)
	if errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFilesFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, fileconv.ErrUnsupportedFormat) ||
		errors.Is(err, fileconv.ErrUnsupportedContent) ||
		errors.Is(err, fileconv.ErrUnknownHighlightStyle) ||
		errors.Is(err, fileconv.ErrInvalidSourceMapMode) {
		return ExitUsage
	}

	return ExitGeneral
}
