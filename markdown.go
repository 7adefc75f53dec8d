package fileconv

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-fileconv/internal/fileutil"
	"github.com/alnah/go-fileconv/internal/render"
)

// MarkdownOption configures a MarkdownConverter.
type MarkdownOption func(*markdownConfig)

type markdownConfig struct {
	render         render.Options
	gfm            bool
	footnotes      bool
	hardWraps      bool
	xhtml          bool
	highlightStyle string
}

// WithOriginToken sets the placeholder prefixed to internal links.
// Default: "{% origin %}".
func WithOriginToken(token string) MarkdownOption {
	return func(c *markdownConfig) { c.render.OriginToken = token }
}

// WithPageParam sets the query key carrying internal link targets.
// Default: "page".
func WithPageParam(param string) MarkdownOption {
	return func(c *markdownConfig) { c.render.PageParam = param }
}

// WithClosedDeepHeadings renders level 4+ headings as <p><b>...</b></p>
// instead of the historical <p><b>...<b></p>.
func WithClosedDeepHeadings() MarkdownOption {
	return func(c *markdownConfig) { c.render.CloseDeepHeadings = true }
}

// WithRawHTML passes raw HTML and dangerous link destinations through.
// Only use with trusted input.
func WithRawHTML() MarkdownOption {
	return func(c *markdownConfig) { c.render.Unsafe = true }
}

// WithGFM enables GitHub Flavored Markdown: tables, strikethrough,
// bare URL autolinks and task lists.
func WithGFM() MarkdownOption {
	return func(c *markdownConfig) { c.gfm = true }
}

// WithFootnotes enables [^1] footnotes.
func WithFootnotes() MarkdownOption {
	return func(c *markdownConfig) { c.footnotes = true }
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps() MarkdownOption {
	return func(c *markdownConfig) { c.hardWraps = true }
}

// WithXHTML renders self-closing tags (<br />, <hr />).
func WithXHTML() MarkdownOption {
	return func(c *markdownConfig) { c.xhtml = true }
}

// WithHighlighting enables chroma syntax highlighting of fenced code blocks.
// Output uses CSS classes; pair it with HighlightCSS for the stylesheet.
func WithHighlighting(style string) MarkdownOption {
	return func(c *markdownConfig) { c.highlightStyle = style }
}

// MarkdownConverter converts Markdown to HTML using goldmark with the
// heading and link overrides. Safe for concurrent use.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a converter. Without options it parses
// CommonMark plus tables and strikethrough and escapes raw HTML.
func NewMarkdownConverter(opts ...MarkdownOption) *MarkdownConverter {
	var cfg markdownConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	exts := []goldmark.Extender{render.New(cfg.render)}
	if cfg.gfm {
		exts = append(exts, extension.GFM)
	} else {
		exts = append(exts, extension.Table, extension.Strikethrough)
	}
	if cfg.footnotes {
		exts = append(exts, extension.Footnote)
	}
	if cfg.highlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.highlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	var rendererOpts []renderer.Option
	if cfg.render.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if cfg.hardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if cfg.xhtml {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &MarkdownConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *MarkdownConverter) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// ConvertFile reads markdownPath, converts it and writes the HTML to htmlPath,
// replacing any existing file. An empty htmlPath means DefaultHTMLPath(markdownPath).
func (c *MarkdownConverter) ConvertFile(markdownPath, htmlPath string) error {
	if htmlPath == "" {
		htmlPath = DefaultHTMLPath(markdownPath)
	}

	content, err := ReadText(markdownPath)
	if err != nil {
		return err
	}
	out, err := c.ToHTML(content)
	if err != nil {
		return fmt.Errorf("%s: %w", markdownPath, err)
	}
	return WriteFile(htmlPath, out, FormatPlain)
}

var defaultMarkdown = sync.OnceValue(func() *MarkdownConverter {
	return NewMarkdownConverter()
})

// ConvertMarkdownToHTML converts Markdown to HTML with the default converter.
func ConvertMarkdownToHTML(markdown string) (string, error) {
	return defaultMarkdown().ToHTML(markdown)
}

// MarkdownFileOptions configures ConvertMarkdownFileToHTML.
type MarkdownFileOptions struct {
	// HTMLPath is the output file. Default: DefaultHTMLPath(markdownPath).
	HTMLPath string

	// Converter renders the HTML. Default: NewMarkdownConverter().
	Converter *MarkdownConverter
}

// ConvertMarkdownFileToHTML converts the Markdown file at markdownPath and
// writes the result, creating or overwriting the output file.
func ConvertMarkdownFileToHTML(markdownPath string, opts MarkdownFileOptions) error {
	conv := opts.Converter
	if conv == nil {
		conv = defaultMarkdown()
	}
	return conv.ConvertFile(markdownPath, opts.HTMLPath)
}

// DefaultHTMLPath derives the HTML output path: a trailing ".md" becomes
// ".html", any other path gets ".html" appended.
func DefaultHTMLPath(markdownPath string) string {
	return fileutil.SwapSuffix(markdownPath, ".md", ".html")
}

// HighlightCSS returns the chroma stylesheet matching the classes emitted
// by WithHighlighting for the same style.
func HighlightCSS(style string) (string, error) {
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
