package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	fileconv "github.com/alnah/go-fileconv"
	"github.com/alnah/go-fileconv/internal/config"
)

// stylesheetKind accepts .scss files and writes .css.
var stylesheetKind = fileKind{
	exts:      []string{".scss"},
	outExt:    ".css",
	skipUnder: true,
}

// newCompiler starts the SCSS compiler. Replaced in tests.
var newCompiler = func(opts fileconv.DartSassOptions) (compilerCloser, error) {
	return fileconv.NewDartSassCompiler(opts)
}

// compilerCloser is an SCSS compiler holding a process to release.
type compilerCloser interface {
	fileconv.SCSSCompiler
	Close() error
}

// runStylesheet compiles SCSS files and directories to CSS. One Dart Sass
// process serves every file.
func runStylesheet(ctx context.Context, args []string, env *Environment) (err error) {
	flags, inputs, err := parseStylesheetFlags(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: scss needs at least one file or directory", ErrNoInput)
	}
	if err := validateWorkers(flags.batch.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeStylesheetFlags(&flags.stylesheet, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := stylesheetOptions(cfg.Stylesheet)
	if err != nil {
		return err
	}

	outputDir := flags.batch.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	files, err := discoverFiles(inputs, outputDir, stylesheetKind)
	if err != nil {
		return err
	}

	timeout, err := cfg.Stylesheet.TimeoutDuration()
	if err != nil {
		return err
	}
	compiler, err := newCompiler(fileconv.DartSassOptions{
		Binary:  cfg.Stylesheet.SassBinary,
		Timeout: timeout,
	})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, compiler.Close()) }()

	workers := resolveWorkers(flags.batch.workers, envCfg.Workers, len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Compiling %d file(s) with %d worker(s), source map %s\n", len(files), workers, opts.SourceMap)
	}

	conv := fileconv.NewStylesheetConverter(compiler)
	start := env.Now()
	results := convertBatch(ctx, files, workers, func(f FileToConvert) error {
		fileOpts := opts
		fileOpts.ExportPath = f.OutputPath
		return conv.ConvertFile(f.InputPath, fileOpts)
	})
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return batchOutcome(results, printResults(results, flags.common.quiet, flags.common.verbose, env))
}

// mergeStylesheetFlags merges CLI flags into config. CLI values override config values.
func mergeStylesheetFlags(f *stylesheetFlags, cfg *config.Config) {
	if f.sourceMap != "" {
		cfg.Stylesheet.SourceMap = f.sourceMap
	}
	if f.emptyMapFile {
		cfg.Stylesheet.EmptyMapFile = true
	}
	if len(f.includePaths) > 0 {
		cfg.Stylesheet.IncludePaths = append(cfg.Stylesheet.IncludePaths, f.includePaths...)
	}
	if f.sassBinary != "" {
		cfg.Stylesheet.SassBinary = f.sassBinary
	}
	if f.timeout != "" {
		cfg.Stylesheet.Timeout = f.timeout
	}
}

// stylesheetOptions converts validated config into library options.
func stylesheetOptions(sc config.StylesheetConfig) (fileconv.StylesheetOptions, error) {
	mode, err := fileconv.ParseSourceMapMode(sc.SourceMap)
	if err != nil {
		return fileconv.StylesheetOptions{}, err
	}
	return fileconv.StylesheetOptions{
		SourceMap:    mode,
		EmptyMapFile: sc.EmptyMapFile,
		IncludePaths: sc.IncludePaths,
	}, nil
}
