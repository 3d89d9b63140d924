package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  create     Create a journal project from a template")
	fmt.Fprintln(w, "  update     Convert .docx parts into article fragments")
	fmt.Fprintln(w, "  compile    Typeset the project, rebuilding on changes")
	fmt.Fprintln(w, "  inspect    Preview how a .docx splits into articles")
	fmt.Fprintln(w, "  doctor     Check converter, typesetter and template")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'newman help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printCreateUsage prints usage for the create command.
func printCreateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman create <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create a new project in an empty or missing directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --template <dir>      Template directory (default: built-in)")
	printCommonFlags(w)
}

// printUpdateUsage prints usage for the update command.
func printUpdateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman update <file.docx>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert each document into numbered fragments under the source")
	fmt.Fprintln(w, "directory, extract its images and add \\input lines to the master.")
	fmt.Fprintln(w, "The part name is the file name without extension.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -C, --project <dir>       Project directory (default: .)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent conversions (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>         Conversion timeout per document (e.g., 30s)")
	fmt.Fprintln(w, "      --keep-preamble       Keep text before the first marker")
	printCommonFlags(w)
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman compile [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Typeset the master document, then watch the project and rebuild")
	fmt.Fprintln(w, "after changes settle. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -C, --project <dir>       Project directory (default: .)")
	fmt.Fprintln(w, "      --once                Compile once and exit")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before a rebuild (e.g., 500ms)")
	printCommonFlags(w)
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman inspect <file.docx> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the document structure and the articles update would write,")
	fmt.Fprintln(w, "without creating any file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output JSON")
	fmt.Fprintln(w, "      --timeout <d>         Conversion timeout (e.g., 30s)")
	printCommonFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the converter, typesetter and template are usable.")
	fmt.Fprintln(w, "Exits 1 when a blocking problem is found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output JSON")
	printCommonFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: newman config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after file and environment overrides.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	name := args[0]
	if !isCommand(name) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", name)
		printUsage(env.Stderr)
		return ExitUsage
	}

	w := env.Stdout
	switch name {
	case "create":
		printCreateUsage(w)
	case "update":
		printUpdateUsage(w)
	case "compile":
		printCompileUsage(w)
	case "inspect":
		printInspectUsage(w)
	case "doctor":
		printDoctorUsage(w)
	case "config":
		printConfigUsage(w)
	case "version":
		fmt.Fprintln(w, "Usage: newman version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: newman help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	}
	return ExitSuccess
}
