// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Permission bits for files and directories created by this module.
const (
	FilePerm = 0o644 // rw-r--r--
	DirPerm  = 0o750 // rwxr-x---
)

// SwapSuffix replaces a trailing from-suffix with to. When path does not end
// with from, to is appended, so the result never equals the input path.
//
// Examples:
//   - ("notes.md", ".md", ".html") -> "notes.html"
//   - ("a.md/notes.md", ".md", ".html") -> "a.md/notes.html"
//   - ("README", ".md", ".html") -> "README.html"
func SwapSuffix(path, from, to string) string {
	return strings.TrimSuffix(path, from) + to
}

// SwapExt replaces the extension of path with to when it matches one of exts
// (case-insensitive). Any other path gets to appended.
//
// Examples:
//   - ("notes.MD", ".html", ".md") -> "notes.html"
//   - ("notes.markdown", ".html", ".md", ".markdown") -> "notes.html"
//   - ("README", ".html", ".md") -> "README.html"
func SwapExt(path, to string, exts ...string) string {
	if HasExtension(path, exts...) {
		return strings.TrimSuffix(path, filepath.Ext(path)) + to
	}
	return path + to
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "fileconv" -> false (name)
//   - "./fileconv.yaml" -> true (relative path)
//   - "/etc/fileconv.yaml" -> true (absolute)
//   - "C:\config\fileconv.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExtension reports whether path ends with one of exts (case-insensitive).
func HasExtension(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
