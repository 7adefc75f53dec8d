package fileconv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-fileconv/internal/fileutil"
	"github.com/alnah/go-fileconv/internal/jsonutil"
	"github.com/alnah/go-fileconv/internal/yamlutil"
)

// Format selects how file content is encoded.
type Format int

const (
	FormatPlain Format = iota // UTF-8 text, passed through unchanged
	FormatJSON                // JSON without escaping non-ASCII characters
	FormatYAML                // YAML, Unicode preserved
)

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat resolves a format name (case-insensitive).
// Accepts plain, text, txt, json, yaml and yml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "text", "txt":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatPlain, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath infers the format from the file extension.
// Unknown extensions are plain text.
func FormatFromPath(path string) Format {
	switch {
	case fileutil.HasExtension(path, ".json"):
		return FormatJSON
	case fileutil.HasExtension(path, ".yaml", ".yml"):
		return FormatYAML
	default:
		return FormatPlain
	}
}

// ReadFile reads the file at path and decodes it per format.
// Plain returns a string. JSON and YAML return the decoded generic value:
// map[string]any, []any, a scalar, or nil for an empty YAML document.
func ReadFile(path string, format Format) (any, error) {
	if format == FormatPlain {
		return ReadText(path)
	}
	var v any
	if err := DecodeFile(path, format, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadText reads the file at path as UTF-8 text. Content that is not valid
// UTF-8 fails with ErrDecode.
func ReadText(path string) (string, error) {
	data, err := readAll(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeFile reads the file at path and decodes it into v.
// For FormatPlain, v must be a *string.
func DecodeFile(path string, format Format, v any) error {
	if v == nil {
		return ErrNilDestination
	}

	data, err := readAll(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatPlain:
		s, ok := v.(*string)
		if !ok {
			return fmt.Errorf("%w: plain text needs *string, got %T", ErrUnsupportedContent, v)
		}
		*s = string(data)
		return nil
	case FormatJSON:
		err = jsonutil.Unmarshal(data, v)
	case FormatYAML:
		err = yamlutil.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return nil
}

// WriteFile encodes content per format and writes it to path, replacing any
// existing file. Plain accepts string, []byte and fmt.Stringer. Content is
// encoded before the file is opened, so an encode failure leaves path untouched.
func WriteFile(path string, content any, format Format) error {
	data, err := encode(content, format)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileutil.FilePerm) // #nosec G304 -- caller-supplied path
	if err != nil {
		return err
	}
	_, writeErr := f.Write(data)
	closeErr := f.Close()
	return errors.Join(writeErr, closeErr)
}

// DeleteFile removes the file at path.
func DeleteFile(path string) error {
	return os.Remove(path)
}

// PathOf joins segments and returns the cleaned absolute path.
// With no segments it returns the working directory.
func PathOf(segments ...string) (string, error) {
	return filepath.Abs(filepath.Join(segments...))
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s: invalid UTF-8", ErrDecode, path)
	}
	return data, nil
}

func encode(content any, format Format) ([]byte, error) {
	switch format {
	case FormatPlain:
		switch c := content.(type) {
		case string:
			return []byte(c), nil
		case []byte:
			return c, nil
		case fmt.Stringer:
			return []byte(c.String()), nil
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedContent, content)
		}
	case FormatJSON:
		data, err := jsonutil.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return data, nil
	case FormatYAML:
		data, err := yamlutil.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
