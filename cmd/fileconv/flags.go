package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// batchFlags holds output and parallelism flags for file commands.
type batchFlags struct {
	output  string
	workers int
}

// markdownFlags holds rendering flags for the md command.
type markdownFlags struct {
	originToken       string
	pageParam         string
	closeDeepHeadings bool
	rawHTML           bool
	gfm               bool
	footnotes         bool
	hardWraps         bool
	highlight         string
}

// stylesheetFlags holds compilation flags for the scss command.
type stylesheetFlags struct {
	sourceMap    string
	emptyMapFile bool
	includePaths []string
	sassBinary   string
	timeout      string
}

// mdCmdFlags holds all flags for the md command.
type mdCmdFlags struct {
	common   commonFlags
	batch    batchFlags
	markdown markdownFlags
}

// scssCmdFlags holds all flags for the scss command.
type scssCmdFlags struct {
	common     commonFlags
	batch      batchFlags
	stylesheet stylesheetFlags
}

// dataCmdFlags holds all flags for the data command.
type dataCmdFlags struct {
	common commonFlags
	from   string
	to     string
}

// simpleCmdFlags holds flags for commands without their own options.
type simpleCmdFlags struct {
	common commonFlags
	output string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addBatchFlags adds output and worker flags to a FlagSet.
func addBatchFlags(fs *flag.FlagSet, f *batchFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addMarkdownFlags adds rendering flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringVar(&f.originToken, "origin", "", "placeholder prepended to relative links")
	fs.StringVar(&f.pageParam, "page-param", "", "query key for relative link targets")
	fs.BoolVar(&f.closeDeepHeadings, "close-deep-headings", false, "close <b> in level 4+ headings")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "pass raw HTML through")
	fs.BoolVar(&f.gfm, "gfm", false, "enable GitHub Flavored Markdown")
	fs.BoolVar(&f.footnotes, "footnotes", false, "enable footnotes")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render soft line breaks as <br>")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for fenced code blocks")
}

// addStylesheetFlags adds compilation flags to a FlagSet.
func addStylesheetFlags(fs *flag.FlagSet, f *stylesheetFlags) {
	fs.StringVar(&f.sourceMap, "source-map", "", "source map mode: embedded, linked, none")
	fs.BoolVar(&f.emptyMapFile, "empty-map", false, "write an empty .map file with --source-map none")
	fs.StringSliceVarP(&f.includePaths, "include", "I", nil, "extra SCSS load path (repeatable)")
	fs.StringVar(&f.sassBinary, "sass", "", "Dart Sass executable")
	fs.StringVar(&f.timeout, "timeout", "", "compilation timeout (e.g., 30s)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
// Usage is printed by the caller on ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseWith parses args and wraps parse failures in ErrUsage.
func parseWith(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseMarkdownFlags parses md command flags and returns positional args.
func parseMarkdownFlags(args []string) (*mdCmdFlags, []string, error) {
	fs := newFlagSet("md")
	f := &mdCmdFlags{}
	addCommonFlags(fs, &f.common)
	addBatchFlags(fs, &f.batch)
	addMarkdownFlags(fs, &f.markdown)

	rest, err := parseWith(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseStylesheetFlags parses scss command flags and returns positional args.
func parseStylesheetFlags(args []string) (*scssCmdFlags, []string, error) {
	fs := newFlagSet("scss")
	f := &scssCmdFlags{}
	addCommonFlags(fs, &f.common)
	addBatchFlags(fs, &f.batch)
	addStylesheetFlags(fs, &f.stylesheet)

	rest, err := parseWith(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseDataFlags parses data command flags and returns positional args.
func parseDataFlags(args []string) (*dataCmdFlags, []string, error) {
	fs := newFlagSet("data")
	f := &dataCmdFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.from, "from", "", "input format: plain, json, yaml (default: by extension)")
	fs.StringVar(&f.to, "to", "", "output format: plain, json, yaml (default: by extension)")

	rest, err := parseWith(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseSimpleFlags parses flags for rm and highlight-css.
func parseSimpleFlags(name string, args []string, withOutput bool) (*simpleCmdFlags, []string, error) {
	fs := newFlagSet(name)
	f := &simpleCmdFlags{}
	addCommonFlags(fs, &f.common)
	if withOutput {
		fs.StringVarP(&f.output, "output", "o", "", "output file")
	}

	rest, err := parseWith(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}
