package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fileconv <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  md             Convert markdown files to HTML")
	fmt.Fprintln(w, "  scss           Compile SCSS files to CSS")
	fmt.Fprintln(w, "  data           Convert a file between plain, JSON and YAML")
	fmt.Fprintln(w, "  rm             Delete files")
	fmt.Fprintln(w, "  highlight-css  Print the stylesheet for a highlight style")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A bare .md or .scss path runs md or scss: 'fileconv notes.md'.")
	fmt.Fprintln(w, "Run 'fileconv help <command>' for details on a specific command.")
}

// printCommonFlags prints flags shared by every command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printBatchFlags prints output and worker flags.
func printBatchFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
}

// printMarkdownUsage prints usage for the md command.
func printMarkdownUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fileconv md <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to HTML fragments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (walked for .md and .markdown)")
	fmt.Fprintln(w)
	printBatchFlags(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --origin <s>          Placeholder for relative links (default \"{% origin %}\")")
	fmt.Fprintln(w, "      --page-param <s>      Query key for relative links (default \"page\")")
	fmt.Fprintln(w, "      --close-deep-headings Emit </b> for level 4+ headings")
	fmt.Fprintln(w, "      --raw-html            Pass raw HTML through")
	fmt.Fprintln(w, "      --gfm                 GitHub Flavored Markdown")
	fmt.Fprintln(w, "      --footnotes           Enable footnotes")
	fmt.Fprintln(w, "      --hard-wraps          Render line breaks as <br>")
	fmt.Fprintln(w, "      --highlight <style>   Highlight code blocks with a chroma style")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printStylesheetUsage prints usage for the scss command.
func printStylesheetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fileconv scss <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile SCSS files to compressed CSS with Dart Sass.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    SCSS file or directory (partials starting with _ are skipped)")
	fmt.Fprintln(w)
	printBatchFlags(w)
	fmt.Fprintln(w, "Compilation:")
	fmt.Fprintln(w, "      --source-map <mode>   embedded (default), linked, none")
	fmt.Fprintln(w, "      --empty-map           Write an empty .map file with --source-map none")
	fmt.Fprintln(w, "  -I, --include <dir>       Extra load path (repeatable)")
	fmt.Fprintln(w, "      --sass <path>         Dart Sass executable (default \"sass\")")
	fmt.Fprintln(w, "      --timeout <d>         Compilation timeout (e.g., 30s)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printDataUsage prints usage for the data command.
func printDataUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fileconv data <input> <output> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a file and write its content in another format.")
	fmt.Fprintln(w, "Formats default to the file extensions (.json, .yaml, .yml, otherwise plain).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats:")
	fmt.Fprintln(w, "      --from <format>       plain, json, yaml")
	fmt.Fprintln(w, "      --to <format>         plain, json, yaml")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	w := env.Stdout
	switch args[0] {
	case "md":
		printMarkdownUsage(w)
	case "scss":
		printStylesheetUsage(w)
	case "data":
		printDataUsage(w)
	case "rm":
		fmt.Fprintln(w, "Usage: fileconv rm <file>... [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Delete files. Every file is attempted even if one fails.")
		fmt.Fprintln(w)
		printCommonFlags(w)
	case "highlight-css":
		fmt.Fprintln(w, "Usage: fileconv highlight-css [style] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the CSS for a chroma style (default: config markdown.highlight, then github).")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
		printCommonFlags(w)
	case "version":
		fmt.Fprintln(w, "Usage: fileconv version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: fileconv help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
