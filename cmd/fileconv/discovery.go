package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-fileconv/internal/fileutil"
)

// MaxWorkers caps the --workers flag.
const MaxWorkers = 64

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("unexpected file extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoFilesFound       = errors.New("no matching files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// fileKind describes the inputs a command accepts and how it names outputs.
type fileKind struct {
	exts      []string // Accepted input extensions (case-insensitive)
	outExt    string   // Output extension
	skipUnder bool     // Skip "_"-prefixed files when walking (SCSS partials)
}

// outputPath returns the output path for an input under outputDir.
// baseDir is the walked directory root, empty for files given directly.
func (k fileKind) outputPath(inputPath, outputDir, baseDir string) string {
	if outputDir == "" {
		return fileutil.SwapExt(inputPath, k.outExt, k.exts...)
	}

	if fileutil.HasExtension(outputDir, k.outExt) {
		return outputDir
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + k.outExt
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base)
		}
	}
	return filepath.Join(outputDir, base)
}

// discoverFiles expands inputs into files to convert. Files are taken as
// given after an extension check; directories are walked for matching
// files, skipping SCSS partials.
func discoverFiles(inputs []string, outputDir string, kind fileKind) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.HasExtension(input, kind.exts...) {
				return nil, fmt.Errorf("%w: %s (want %s)", ErrInvalidExtension, input, strings.Join(kind.exts, ", "))
			}
			files = append(files, FileToConvert{
				InputPath:  input,
				OutputPath: kind.outputPath(input, outputDir, ""),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !fileutil.HasExtension(path, kind.exts...) {
				return nil
			}
			if kind.skipUnder && strings.HasPrefix(d.Name(), "_") {
				return nil
			}
			files = append(files, FileToConvert{
				InputPath:  path,
				OutputPath: kind.outputPath(path, outputDir, input),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFilesFound, strings.Join(inputs, ", "))
	}
	if len(files) > 1 && fileutil.HasExtension(outputDir, kind.outExt) {
		return nil, fmt.Errorf("%w: --output %s names a single file but %d files were found", ErrUsage, outputDir, len(files))
	}
	return files, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
