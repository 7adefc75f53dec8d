package fileconv

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/bep/godartsass/v2"

	"github.com/alnah/go-fileconv/internal/fileutil"
)

// DefaultSassBinary is the Dart Sass executable looked up in PATH.
const DefaultSassBinary = "sass"

// SourceMapMode controls source map generation.
type SourceMapMode int

const (
	// SourceMapEmbedded embeds the map in the CSS as a data URI and also
	// writes it to <export>.map. Default.
	SourceMapEmbedded SourceMapMode = iota

	// SourceMapLinked writes <export>.map and references it by file name
	// from the CSS.
	SourceMapLinked

	// SourceMapNone generates no map. See StylesheetOptions.EmptyMapFile.
	SourceMapNone
)

// String returns the mode name used in configuration files.
func (m SourceMapMode) String() string {
	switch m {
	case SourceMapEmbedded:
		return "embedded"
	case SourceMapLinked:
		return "linked"
	case SourceMapNone:
		return "none"
	default:
		return fmt.Sprintf("SourceMapMode(%d)", int(m))
	}
}

// ParseSourceMapMode resolves embedded, linked or none. Empty means embedded.
func ParseSourceMapMode(s string) (SourceMapMode, error) {
	switch s {
	case "", "embedded":
		return SourceMapEmbedded, nil
	case "linked":
		return SourceMapLinked, nil
	case "none":
		return SourceMapNone, nil
	default:
		return SourceMapEmbedded, fmt.Errorf("%w: %q (must be embedded, linked, or none)", ErrInvalidSourceMapMode, s)
	}
}

// StylesheetOptions configures an SCSS to CSS conversion.
type StylesheetOptions struct {
	// ExportPath is the CSS output file. Default: DefaultCSSPath(scssPath).
	ExportPath string

	// SourceMap selects map generation. Default: SourceMapEmbedded.
	SourceMap SourceMapMode

	// EmptyMapFile writes an empty <export>.map when SourceMap is
	// SourceMapNone. Default: no map file is written.
	EmptyMapFile bool

	// IncludePaths are extra load paths searched after the SCSS file's
	// own directory.
	IncludePaths []string
}

// CompileRequest is a single SCSS compilation.
type CompileRequest struct {
	Path         string // Source file path, used to resolve relative imports
	Source       string
	IncludePaths []string
	SourceMap    bool
}

// CompileResult holds compressed CSS and, when requested, the source map JSON.
type CompileResult struct {
	CSS       string
	SourceMap string
}

// SCSSCompiler compiles SCSS source into compressed CSS.
type SCSSCompiler interface {
	Compile(req CompileRequest) (CompileResult, error)
}

// DartSassOptions configures the Dart Sass compiler process.
type DartSassOptions struct {
	// Binary is the Dart Sass executable. Default: DefaultSassBinary.
	Binary string

	// Timeout bounds a single compilation. Zero uses the godartsass default.
	Timeout time.Duration
}

// DartSassCompiler compiles SCSS through the Dart Sass embedded protocol.
// Safe for concurrent use. Close stops the Dart Sass process.
type DartSassCompiler struct {
	transpiler *godartsass.Transpiler
}

// Compile-time interface implementation check.
var _ SCSSCompiler = (*DartSassCompiler)(nil)

// NewDartSassCompiler starts a Dart Sass process.
func NewDartSassCompiler(opts DartSassOptions) (*DartSassCompiler, error) {
	bin := opts.Binary
	if bin == "" {
		bin = DefaultSassBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSassUnavailable, err)
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: path,
		Timeout:                  opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSassUnavailable, err)
	}
	return &DartSassCompiler{transpiler: t}, nil
}

// Compile implements SCSSCompiler.
func (c *DartSassCompiler) Compile(req CompileRequest) (CompileResult, error) {
	args := godartsass.Args{
		Source:                  req.Source,
		OutputStyle:             godartsass.OutputStyleCompressed,
		SourceSyntax:            godartsass.SourceSyntaxSCSS,
		IncludePaths:            req.IncludePaths,
		EnableSourceMap:         req.SourceMap,
		SourceMapIncludeSources: req.SourceMap,
	}
	if req.Path != "" {
		if abs, err := filepath.Abs(req.Path); err == nil {
			args.URL = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
		}
	}

	res, err := c.transpiler.Execute(args)
	if err != nil {
		return CompileResult{}, fmt.Errorf("%w: %s: %v", ErrSCSSCompile, req.Path, err)
	}
	return CompileResult{CSS: res.CSS, SourceMap: res.SourceMap}, nil
}

// Close stops the Dart Sass process.
func (c *DartSassCompiler) Close() error {
	return c.transpiler.Close()
}

// StylesheetConverter converts SCSS files to CSS files.
type StylesheetConverter struct {
	compiler SCSSCompiler
}

// NewStylesheetConverter creates a converter over the given compiler.
func NewStylesheetConverter(compiler SCSSCompiler) *StylesheetConverter {
	return &StylesheetConverter{compiler: compiler}
}

// ConvertFile compiles the SCSS file at scssPath to compressed CSS and writes
// it to opts.ExportPath, plus the source map to <export>.map per opts.SourceMap.
func (s *StylesheetConverter) ConvertFile(scssPath string, opts StylesheetOptions) error {
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = DefaultCSSPath(scssPath)
	}
	mapPath := exportPath + ".map"
	wantMap := opts.SourceMap != SourceMapNone

	source, err := ReadText(scssPath)
	if err != nil {
		return err
	}

	includePaths := append([]string{filepath.Dir(scssPath)}, opts.IncludePaths...)
	res, err := s.compiler.Compile(CompileRequest{
		Path:         scssPath,
		Source:       source,
		IncludePaths: includePaths,
		SourceMap:    wantMap,
	})
	if err != nil {
		return err
	}

	css := res.CSS
	switch opts.SourceMap {
	case SourceMapEmbedded:
		css += "\n/*# sourceMappingURL=data:application/json;charset=utf-8;base64," +
			base64.StdEncoding.EncodeToString([]byte(res.SourceMap)) + " */"
	case SourceMapLinked:
		css += "\n/*# sourceMappingURL=" + filepath.Base(mapPath) + " */"
	}

	if err := WriteFile(exportPath, css, FormatPlain); err != nil {
		return err
	}

	switch {
	case wantMap:
		return WriteFile(mapPath, res.SourceMap, FormatPlain)
	case opts.EmptyMapFile:
		return WriteFile(mapPath, "", FormatPlain)
	default:
		return nil
	}
}

// ConvertSCSSFileToCSS compiles one SCSS file with a short-lived Dart Sass
// process. Use a StylesheetConverter over a shared DartSassCompiler for
// many files.
func ConvertSCSSFileToCSS(scssPath string, opts StylesheetOptions) (err error) {
	compiler, err := NewDartSassCompiler(DartSassOptions{})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, compiler.Close()) }()

	return NewStylesheetConverter(compiler).ConvertFile(scssPath, opts)
}

// DefaultCSSPath derives the CSS output path: a trailing ".scss" becomes
// ".css", any other path gets ".css" appended.
func DefaultCSSPath(scssPath string) string {
	return fileutil.SwapSuffix(scssPath, ".scss", ".css")
}
