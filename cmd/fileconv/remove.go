package main

import (
	"errors"
	"fmt"

	fileconv "github.com/alnah/go-fileconv"
)

// runRemove deletes files. Every path is attempted; failures are joined.
func runRemove(args []string, env *Environment) error {
	flags, paths, err := parseSimpleFlags("rm", args, false)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: rm needs at least one file", ErrNoInput)
	}

	var errs []error
	for _, p := range paths {
		abs, err := fileconv.PathOf(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := fileconv.DeleteFile(abs); err != nil {
			errs = append(errs, err)
			continue
		}

		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "Removed %s\n", abs)
		} else if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Removed %s\n", p)
		}
	}
	return errors.Join(errs...)
}
