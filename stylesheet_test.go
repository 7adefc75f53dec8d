package fileconv

// Notes:
// - StylesheetConverter is tested with a fake compiler so path defaulting and
//   source map handling run without Dart Sass.
// - DartSassCompiler tests skip when the sass binary is not in PATH.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// fakeCompiler records requests and returns canned output.
type fakeCompiler struct {
	css       string
	sourceMap string
	err       error
	requests  []CompileRequest
}

func (f *fakeCompiler) Compile(req CompileRequest) (CompileResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return CompileResult{}, f.err
	}
	res := CompileResult{CSS: f.css}
	if req.SourceMap {
		res.SourceMap = f.sourceMap
	}
	return res, nil
}

func writeSCSS(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestStylesheetConverter_ConvertFile - Output paths and source map modes
// ---------------------------------------------------------------------------

func TestStylesheetConverter_ConvertFile(t *testing.T) {
	t.Parallel()

	const (
		css       = "a{color:red}"
		sourceMap = `{"version":3,"sources":["style.scss"]}`
	)

	t.Run("defaults write css and map", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scss := writeSCSS(t, dir, "style.scss", "a { color: red; }")
		fake := &fakeCompiler{css: css, sourceMap: sourceMap}

		if err := NewStylesheetConverter(fake).ConvertFile(scss, StylesheetOptions{}); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		gotCSS := readString(t, filepath.Join(dir, "style.css"))
		wantCSS := css + "\n/*# sourceMappingURL=data:application/json;charset=utf-8;base64," +
			base64.StdEncoding.EncodeToString([]byte(sourceMap)) + " */"
		if gotCSS != wantCSS {
			t.Errorf("style.css = %q, want %q", gotCSS, wantCSS)
		}
		if got := readString(t, filepath.Join(dir, "style.css.map")); got != sourceMap {
			t.Errorf("style.css.map = %q, want %q", got, sourceMap)
		}

		if len(fake.requests) != 1 {
			t.Fatalf("compiler called %d times, want 1", len(fake.requests))
		}
		req := fake.requests[0]
		if req.Source != "a { color: red; }" || !req.SourceMap || req.Path != scss {
			t.Errorf("unexpected request: %+v", req)
		}
		if !reflect.DeepEqual(req.IncludePaths, []string{dir}) {
			t.Errorf("IncludePaths = %v, want [%s]", req.IncludePaths, dir)
		}
	})

	t.Run("linked map", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scss := writeSCSS(t, dir, "main.scss", "b { x: y }")
		export := filepath.Join(dir, "dist.css")
		fake := &fakeCompiler{css: css, sourceMap: sourceMap}

		err := NewStylesheetConverter(fake).ConvertFile(scss, StylesheetOptions{
			ExportPath:   export,
			SourceMap:    SourceMapLinked,
			IncludePaths: []string{"vendor"},
		})
		if err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		if got := readString(t, export); got != css+"\n/*# sourceMappingURL=dist.css.map */" {
			t.Errorf("dist.css = %q", got)
		}
		if got := readString(t, export+".map"); got != sourceMap {
			t.Errorf("dist.css.map = %q", got)
		}
		if !reflect.DeepEqual(fake.requests[0].IncludePaths, []string{dir, "vendor"}) {
			t.Errorf("IncludePaths = %v", fake.requests[0].IncludePaths)
		}
	})

	t.Run("no map skips map file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scss := writeSCSS(t, dir, "style.scss", "a{}")
		fake := &fakeCompiler{css: css, sourceMap: sourceMap}

		if err := NewStylesheetConverter(fake).ConvertFile(scss, StylesheetOptions{SourceMap: SourceMapNone}); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		if got := readString(t, filepath.Join(dir, "style.css")); got != css {
			t.Errorf("style.css = %q, want %q", got, css)
		}
		if _, err := os.Stat(filepath.Join(dir, "style.css.map")); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("map file should not exist, stat error = %v", err)
		}
		if fake.requests[0].SourceMap {
			t.Error("compiler asked for a source map with SourceMapNone")
		}
	})

	t.Run("no map with empty map file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scss := writeSCSS(t, dir, "style.scss", "a{}")
		fake := &fakeCompiler{css: css}

		err := NewStylesheetConverter(fake).ConvertFile(scss, StylesheetOptions{
			SourceMap:    SourceMapNone,
			EmptyMapFile: true,
		})
		if err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}
		if got := readString(t, filepath.Join(dir, "style.css.map")); got != "" {
			t.Errorf("style.css.map = %q, want empty", got)
		}
	})

	t.Run("path without scss suffix", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scss := writeSCSS(t, dir, "theme", "a{}")
		fake := &fakeCompiler{css: css}

		if err := NewStylesheetConverter(fake).ConvertFile(scss, StylesheetOptions{SourceMap: SourceMapNone}); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}
		if got := readString(t, filepath.Join(dir, "theme.css")); got != css {
			t.Errorf("theme.css = %q", got)
		}
		if got := readString(t, scss); got != "a{}" {
			t.Errorf("source file was modified: %q", got)
		}
	})

	t.Run("compile error propagates and writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scss := writeSCSS(t, dir, "bad.scss", "a {")
		fake := &fakeCompiler{err: ErrSCSSCompile}

		err := NewStylesheetConverter(fake).ConvertFile(scss, StylesheetOptions{})
		if !errors.Is(err, ErrSCSSCompile) {
			t.Fatalf("error = %v, want ErrSCSSCompile", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "bad.css")); !errors.Is(err, fs.ErrNotExist) {
			t.Error("CSS file written despite compile error")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCompiler{}
		err := NewStylesheetConverter(fake).ConvertFile(filepath.Join(t.TempDir(), "none.scss"), StylesheetOptions{})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
		if len(fake.requests) != 0 {
			t.Error("compiler called for a missing source")
		}
	})
}

// ---------------------------------------------------------------------------
// TestSourceMapMode - Parsing and names
// ---------------------------------------------------------------------------

func TestParseSourceMapMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    SourceMapMode
		wantErr bool
	}{
		{"", SourceMapEmbedded, false},
		{"embedded", SourceMapEmbedded, false},
		{"linked", SourceMapLinked, false},
		{"none", SourceMapNone, false},
		{"inline", SourceMapEmbedded, true},
	}

	for _, tt := range tests {
		got, err := ParseSourceMapMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSourceMapMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSourceMapMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !tt.wantErr && tt.input != "" && got.String() != tt.input {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.input)
		}
	}
}

func TestDefaultCSSPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"style.scss":           "style.css",
		"assets/scss/app.scss": "assets/scss/app.css",
		"a.scss.d/b.scss":      "a.scss.d/b.css",
		"theme":                "theme.css",
	}
	for in, want := range tests {
		if got := DefaultCSSPath(in); got != want {
			t.Errorf("DefaultCSSPath(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDartSass - Real compiler, skipped without Dart Sass
// ---------------------------------------------------------------------------

func requireSass(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultSassBinary); err != nil {
		t.Skip("dart sass not installed")
	}
}

func TestNewDartSassCompiler_MissingBinary(t *testing.T) {
	t.Parallel()

	_, err := NewDartSassCompiler(DartSassOptions{Binary: "fileconv-no-such-sass"})
	if !errors.Is(err, ErrSassUnavailable) {
		t.Errorf("error = %v, want ErrSassUnavailable", err)
	}
}

func TestConvertSCSSFileToCSS(t *testing.T) {
	requireSass(t)
	t.Parallel()

	dir := t.TempDir()
	writeSCSS(t, dir, "_vars.scss", "$brand: #ff0000;")
	scss := writeSCSS(t, dir, "style.scss", "@use 'vars';\n.a {\n  .b { color: vars.$brand; }\n}\n")

	if err := ConvertSCSSFileToCSS(scss, StylesheetOptions{}); err != nil {
		t.Fatalf("ConvertSCSSFileToCSS() error = %v", err)
	}

	css := readString(t, filepath.Join(dir, "style.css"))
	if !strings.HasPrefix(css, ".a .b{color:") {
		t.Errorf("style.css = %q, want compressed nested rule", css)
	}
	if !strings.Contains(css, "sourceMappingURL=data:application/json") {
		t.Errorf("style.css missing embedded source map: %q", css)
	}
	if m := readString(t, filepath.Join(dir, "style.css.map")); !strings.Contains(m, `"version":3`) {
		t.Errorf("style.css.map = %q, want source map JSON", m)
	}
}

func TestConvertSCSSFileToCSS_SyntaxError(t *testing.T) {
	requireSass(t)
	t.Parallel()

	scss := writeSCSS(t, t.TempDir(), "broken.scss", ".a { color: ")
	err := ConvertSCSSFileToCSS(scss, StylesheetOptions{SourceMap: SourceMapNone})
	if !errors.Is(err, ErrSCSSCompile) {
		t.Errorf("error = %v, want ErrSCSSCompile", err)
	}
}
