package main

import (
	"fmt"

	fileconv "github.com/alnah/go-fileconv"
)

// runData re-encodes a file between plain, JSON and YAML. Formats default
// to the file extensions.
func runData(args []string, env *Environment) error {
	flags, paths, err := parseDataFlags(args)
	if err != nil {
		return err
	}
	if len(paths) != 2 {
		return fmt.Errorf("%w: data needs <input> <output>, got %d argument(s)", ErrUsage, len(paths))
	}
	in, out := paths[0], paths[1]

	from, err := formatFor(flags.from, in)
	if err != nil {
		return err
	}
	to, err := formatFor(flags.to, out)
	if err != nil {
		return err
	}

	content, err := fileconv.ReadFile(in, from)
	if err != nil {
		return err
	}
	if err := fileconv.WriteFile(out, content, to); err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "%s (%s) -> %s (%s)\n", in, from, out, to)
	} else if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}

// formatFor returns the named format, or the one implied by path.
func formatFor(name, path string) (fileconv.Format, error) {
	if name == "" {
		return fileconv.FormatFromPath(path), nil
	}
	return fileconv.ParseFormat(name)
}
