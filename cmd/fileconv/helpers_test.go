package main

// Notes:
// - This file contains test helpers shared across the CLI tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	fileconv "github.com/alnah/go-fileconv"
)

// testEnv returns an Environment writing to buffers with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeFile creates a file (and parents) under dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// readFile returns a file's content.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// fakeCompiler is a compilerCloser returning canned CSS.
type fakeCompiler struct {
	css    string
	err    error
	closed bool
	opts   fileconv.DartSassOptions
}

func (f *fakeCompiler) Compile(req fileconv.CompileRequest) (fileconv.CompileResult, error) {
	if f.err != nil {
		return fileconv.CompileResult{}, f.err
	}
	res := fileconv.CompileResult{CSS: f.css}
	if req.SourceMap {
		res.SourceMap = `{"version":3}`
	}
	return res, nil
}

func (f *fakeCompiler) Close() error {
	f.closed = true
	return nil
}

// useFakeCompiler swaps newCompiler for the test's duration.
// Tests calling it must not run in parallel.
func useFakeCompiler(t *testing.T, fake *fakeCompiler) {
	t.Helper()
	orig := newCompiler
	newCompiler = func(opts fileconv.DartSassOptions) (compilerCloser, error) {
		fake.opts = opts
		return fake, nil
	}
	t.Cleanup(func() { newCompiler = orig })
}
