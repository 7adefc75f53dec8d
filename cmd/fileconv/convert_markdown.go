package main

import (
	"context"
	"fmt"

	fileconv "github.com/alnah/go-fileconv"
	"github.com/alnah/go-fileconv/internal/config"
)

// markdownKind accepts .md and .markdown files and writes .html.
var markdownKind = fileKind{
	exts:   []string{".md", ".markdown"},
	outExt: ".html",
}

// runMarkdown converts Markdown files and directories to HTML.
func runMarkdown(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseMarkdownFlags(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: md needs at least one file or directory", ErrNoInput)
	}
	if err := validateWorkers(flags.batch.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeMarkdownFlags(&flags.markdown, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	outputDir := flags.batch.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	files, err := discoverFiles(inputs, outputDir, markdownKind)
	if err != nil {
		return err
	}

	conv, err := markdownConverter(cfg.Markdown)
	if err != nil {
		return err
	}

	workers := resolveWorkers(flags.batch.workers, envCfg.Workers, len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), workers)
	}

	results := convertBatch(ctx, files, workers, func(f FileToConvert) error {
		return conv.ConvertFile(f.InputPath, f.OutputPath)
	})
	return batchOutcome(results, printResults(results, flags.common.quiet, flags.common.verbose, env))
}

// mergeMarkdownFlags merges CLI flags into config. CLI values override config values.
func mergeMarkdownFlags(f *markdownFlags, cfg *config.Config) {
	if f.originToken != "" {
		cfg.Markdown.OriginToken = f.originToken
	}
	if f.pageParam != "" {
		cfg.Markdown.PageParam = f.pageParam
	}
	if f.highlight != "" {
		cfg.Markdown.Highlight = f.highlight
	}
	if f.closeDeepHeadings {
		cfg.Markdown.CloseDeepHeadings = true
	}
	if f.rawHTML {
		cfg.Markdown.RawHTML = true
	}
	if f.gfm {
		cfg.Markdown.GFM = true
	}
	if f.footnotes {
		cfg.Markdown.Footnotes = true
	}
	if f.hardWraps {
		cfg.Markdown.HardWraps = true
	}
}

// markdownConverter builds a converter from config. An unknown highlight
// style is reported before any file is touched.
func markdownConverter(mc config.MarkdownConfig) (*fileconv.MarkdownConverter, error) {
	var opts []fileconv.MarkdownOption

	if mc.OriginToken != "" {
		opts = append(opts, fileconv.WithOriginToken(mc.OriginToken))
	}
	if mc.PageParam != "" {
		opts = append(opts, fileconv.WithPageParam(mc.PageParam))
	}
	if mc.CloseDeepHeadings {
		opts = append(opts, fileconv.WithClosedDeepHeadings())
	}
	if mc.RawHTML {
		opts = append(opts, fileconv.WithRawHTML())
	}
	if mc.GFM {
		opts = append(opts, fileconv.WithGFM())
	}
	if mc.Footnotes {
		opts = append(opts, fileconv.WithFootnotes())
	}
	if mc.HardWraps {
		opts = append(opts, fileconv.WithHardWraps())
	}
	if mc.Highlight != "" {
		if _, err := fileconv.HighlightCSS(mc.Highlight); err != nil {
			return nil, err
		}
		opts = append(opts, fileconv.WithHighlighting(mc.Highlight))
	}

	return fileconv.NewMarkdownConverter(opts...), nil
}
