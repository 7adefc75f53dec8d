// Package fileconv converts site source files: Markdown to HTML, SCSS to CSS,
// and text, JSON or YAML data to and from disk.
//
// # Markdown
//
// Markdown is parsed as CommonMark (plus tables and strikethrough) by goldmark
// and rendered with two overrides:
//
//   - headings shift down: # → <h3>, ## → <h4>, ### → <h5>, deeper levels
//     become <p><b>...<b></p> (use WithClosedDeepHeadings for </b>);
//   - links whose escaped destination does not start with "http" become
//     internal links: [About](about) → <a href="{% origin %}?page=about">.
//
// The {% origin %} token is left for a downstream template engine.
//
//	html, err := fileconv.ConvertMarkdownToHTML("# Title")
//	// html == "<h3>Title</h3>\n"
//
//	err = fileconv.ConvertMarkdownFileToHTML("notes.md", fileconv.MarkdownFileOptions{})
//	// writes notes.html
//
// # Stylesheets
//
// SCSS is compiled to compressed CSS by Dart Sass through the embedded
// protocol (github.com/bep/godartsass). The sass executable must be in PATH
// or configured with DartSassOptions.Binary.
//
//	err := fileconv.ConvertSCSSFileToCSS("style.scss", fileconv.StylesheetOptions{})
//	// writes style.css and style.css.map
//
// For many files, share one compiler:
//
//	compiler, err := fileconv.NewDartSassCompiler(fileconv.DartSassOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer compiler.Close()
//	conv := fileconv.NewStylesheetConverter(compiler)
//
// # Data files
//
// ReadFile, DecodeFile and WriteFile handle FormatPlain, FormatJSON and
// FormatYAML. JSON and YAML are written with Unicode unescaped. Failures are
// the underlying filesystem error (errors.Is(err, fs.ErrNotExist)) or wrap
// ErrDecode / ErrEncode.
//
// Every operation is synchronous. Writes replace existing files and are not
// coordinated between callers.
package fileconv
