package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	fileconv "github.com/alnah/go-fileconv"
	"github.com/alnah/go-fileconv/internal/fileutil"
	"github.com/alnah/go-fileconv/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input specified")
)

// commands lists the subcommand names accepted as the first argument.
var commands = map[string]bool{
	"md":            true,
	"scss":          true,
	"data":          true,
	"rm":            true,
	"highlight-css": true,
	"version":       true,
	"help":          true,
}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches the command in args[1] and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "-h" || cmd == "--help":
		cmd, rest = "help", nil
	case !isCommand(cmd):
		if implied := impliedCommand(cmd); implied != "" {
			cmd, rest = implied, args[1:]
		}
	}

	var err error
	switch cmd {
	case "md":
		err = runMarkdown(ctx, rest, env)
	case "scss":
		err = runStylesheet(ctx, rest, env)
	case "data":
		err = runData(rest, env)
	case "rm":
		err = runRemove(rest, env)
	case "highlight-css":
		err = runHighlightCSS(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-fileconv %s\n", Version)
	case "help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		_ = runHelp([]string{cmd}, env)
		return ExitSuccess
	}

	var be *batchError
	switch {
	case err == nil:
	case errors.As(err, &be):
		fmt.Fprintln(env.Stderr, err)
	default:
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// impliedCommand maps a bare input path to the command converting it,
// so "fileconv notes.md" works like "fileconv md notes.md".
func impliedCommand(arg string) string {
	switch {
	case fileutil.HasExtension(arg, markdownKind.exts...):
		return "md"
	case fileutil.HasExtension(arg, stylesheetKind.exts...):
		return "scss"
	default:
		return ""
	}
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}

// batchError reports failed conversions. Each failure was already printed.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

// Unwrap exposes the first failure so exit codes follow its cause.
func (e *batchError) Unwrap() error { return e.first }

// batchOutcome returns a batchError when any result failed.
func batchOutcome(results []ConversionResult, failed int) error {
	if failed == 0 {
		return nil
	}
	for _, r := range results {
		if r.Err != nil {
			return &batchError{failed: failed, first: r.Err}
		}
	}
	return &batchError{failed: failed}
}

// hintFor returns an actionable hint for known failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, fileconv.ErrSassUnavailable):
		return hints.ForSassUnavailable()
	case errors.Is(err, fileconv.ErrSCSSCompile):
		return hints.ForSCSSCompile()
	case errors.Is(err, fileconv.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(styles.Names())
	case errors.Is(err, fs.ErrPermission):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
