// Package render overrides goldmark's HTML output for headings and links.
//
// Overrides are kept in a table keyed on node kind and registered ahead of
// goldmark's default HTML renderer, so every other node kind keeps the
// default CommonMark rendering.
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Priority places the overrides ahead of goldmark's HTML renderer (1000)
// and of extension renderers such as tables (500) and highlighting (200).
const Priority = 100

// Defaults for internal link rewriting.
const (
	DefaultOriginToken = "{% origin %}"
	DefaultPageParam   = "page"
)

// Options configures the override rules.
type Options struct {
	// OriginToken prefixes internal links. Left for a downstream template
	// engine to substitute. Default: DefaultOriginToken.
	OriginToken string

	// PageParam is the query key carrying the internal link target.
	// Default: DefaultPageParam.
	PageParam string

	// CloseDeepHeadings emits "</b>" for headings of level 4 and deeper.
	// When false the historical "<b>" closing tag is kept for output
	// compatibility with pages generated by earlier versions.
	CloseDeepHeadings bool

	// Unsafe keeps dangerous link destinations (javascript:, vbscript:, ...).
	// Mirrors goldmark's html.WithUnsafe.
	Unsafe bool
}

// Overrides is a goldmark extension and node renderer holding the rule table.
type Overrides struct {
	opts  Options
	rules map[ast.NodeKind]renderer.NodeRendererFunc
}

// Compile-time interface implementation checks.
var (
	_ goldmark.Extender     = (*Overrides)(nil)
	_ renderer.NodeRenderer = (*Overrides)(nil)
)

// New builds the heading and link rules with defaults applied to opts.
func New(opts Options) *Overrides {
	if opts.OriginToken == "" {
		opts.OriginToken = DefaultOriginToken
	}
	if opts.PageParam == "" {
		opts.PageParam = DefaultPageParam
	}

	o := &Overrides{opts: opts}
	o.rules = map[ast.NodeKind]renderer.NodeRendererFunc{
		ast.KindHeading: o.renderHeading,
		ast.KindLink:    o.renderLink,
	}
	return o
}

// Extend registers the overrides on a goldmark instance.
func (o *Overrides) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(o, Priority),
	))
}

// RegisterFuncs implements renderer.NodeRenderer.
func (o *Overrides) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for kind, fn := range o.rules {
		reg.Register(kind, fn)
	}
}

func (o *Overrides) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	open, closing := HeadingTags(n.Level, o.opts.CloseDeepHeadings)
	if entering {
		_, _ = w.WriteString(open)
	} else {
		_, _ = w.WriteString(closing)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (o *Overrides) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(o.Href(n.Destination))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

// HeadingTags returns the opening and closing markup for a heading level.
// Levels 1-3 shift down to h3-h5; deeper levels become a bold paragraph.
func HeadingTags(level int, closeDeep bool) (open, closing string) {
	switch level {
	case 1:
		return "<h3>", "</h3>"
	case 2:
		return "<h4>", "</h4>"
	case 3:
		return "<h5>", "</h5>"
	}
	if closeDeep {
		return "<p><b>", "</b></p>"
	}
	return "<p><b>", "<b></p>"
}

// Href escapes a link destination and rewrites it into an internal link
// unless the escaped value starts with "http".
func (o *Overrides) Href(dest []byte) []byte {
	var escaped []byte
	if o.opts.Unsafe || !html.IsDangerousURL(dest) {
		escaped = util.EscapeHTML(util.URLEscape(dest, true))
	}
	if bytes.HasPrefix(escaped, []byte("http")) {
		return escaped
	}

	out := make([]byte, 0, len(o.opts.OriginToken)+len(o.opts.PageParam)+len(escaped)+2)
	out = append(out, o.opts.OriginToken...)
	out = append(out, '?')
	out = append(out, o.opts.PageParam...)
	out = append(out, '=')
	return append(out, escaped...)
}
