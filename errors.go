package fileconv

import "errors"

// Sentinel errors for library operations.
var (
	// File I/O errors.
	ErrDecode             = errors.New("failed to decode file content")
	ErrEncode             = errors.New("failed to encode file content")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrUnsupportedContent = errors.New("content type not supported for plain text")
	ErrNilDestination     = errors.New("nil decode destination")

	// Markdown errors.
	ErrHTMLConversion        = errors.New("HTML conversion failed")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")

	// Stylesheet errors.
	ErrInvalidSourceMapMode = errors.New("invalid source map mode")
	ErrSCSSCompile          = errors.New("SCSS compilation failed")
	ErrSassUnavailable      = errors.New("dart sass compiler unavailable")
)
