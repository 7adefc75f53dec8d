package main

import (
	"fmt"

	fileconv "github.com/alnah/go-fileconv"
)

// defaultHighlightStyle is used when highlight-css gets no style and the
// config names none.
const defaultHighlightStyle = "github"

// runHighlightCSS prints or writes the stylesheet for a chroma style.
func runHighlightCSS(args []string, env *Environment) error {
	flags, rest, err := parseSimpleFlags("highlight-css", args, true)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: highlight-css takes at most one style", ErrUsage)
	}

	style := defaultHighlightStyle
	if len(rest) == 1 {
		style = rest[0]
	} else {
		cfg, err := resolveConfig(flags.common.config, loadEnvConfig())
		if err != nil {
			return err
		}
		if cfg.Markdown.Highlight != "" {
			style = cfg.Markdown.Highlight
		}
	}

	css, err := fileconv.HighlightCSS(style)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := fmt.Fprint(env.Stdout, css)
		return err
	}
	if err := fileconv.WriteFile(flags.output, css, fileconv.FormatPlain); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
