// Command emp is the EMP compiler driver: module loading, the T->O->B->D
// semantic pipeline, and the diagnostic/AST/token dump modes described in
// spec.md §6.1. LLVM IR emission and native linking are mechanical glue
// outside this repo's scope; the build paths that would reach them are
// left as clearly labeled not-yet-implemented stubs (see buildNative).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Version info, overridden by -ldflags at release build time.
	Version = "dev"
	Commit  = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

const (
	exitOK    = 0
	exitDiags = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("emp", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		astFlag     = fs.Bool("ast", false, "print the flattened AST as JSON instead of building")
		jsonFlag    = fs.Bool("json", false, "print diagnostics as JSON instead of colorized text")
		lexFlag     = fs.Bool("lex", false, "print the token stream instead of building")
		llFlag      = fs.Bool("ll", false, "emit LLVM IR (.ll) instead of a native executable")
		irFlag      = fs.Bool("ir", false, "alias for --ll")
		nobinFlag   = fs.Bool("nobin", false, "stop after emitting .ll; do not invoke the linker")
		outFlag     = fs.String("out", "", "output path")
		outShort    = fs.String("o", "", "shorthand for --out")
		helpFlag    = fs.Bool("help", false, "show help")
		helpShort   = fs.Bool("h", false, "shorthand for --help")
		versionFlag = fs.Bool("version", false, "print version information")
	)

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *helpFlag || *helpShort {
		printHelp()
		return exitOK
	}
	if *versionFlag {
		printVersion()
		return exitOK
	}
	if fs.NArg() == 0 {
		printHelp()
		return exitUsage
	}

	modeCount := boolCount(*astFlag, *jsonFlag, *lexFlag, *llFlag, *irFlag)
	if modeCount > 1 {
		fmt.Fprintf(os.Stderr, "%s: --ast, --json, --lex and --ll/--ir are mutually exclusive\n", red("Error"))
		return exitUsage
	}
	out := *outFlag
	if out == "" {
		out = *outShort
	}

	command := fs.Arg(0)
	if command == "new" {
		if fs.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing project name\n", red("Error"))
			fmt.Fprintln(os.Stderr, "Usage: emp new <project-name>")
			return exitUsage
		}
		return scaffold(fs.Arg(1))
	}

	file := command
	opts := buildOpts{
		ast:   *astFlag,
		json:  *jsonFlag,
		lex:   *lexFlag,
		ll:    *llFlag || *irFlag,
		nobin: *nobinFlag,
		out:   out,
	}
	return build(file, opts)
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func printVersion() {
	fmt.Printf("emp %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(bold("emp - the EMP compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cyan("emp new <project-name>"))
	fmt.Printf("  %s\n", cyan("emp <file.em> [flags]"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --ast          print the flattened AST as JSON")
	fmt.Println("  --json         print diagnostics as JSON")
	fmt.Println("  --lex          print the token stream")
	fmt.Println("  --ll, --ir     emit LLVM IR instead of a native executable")
	fmt.Println("  --nobin        stop after emitting .ll; skip linking")
	fmt.Println("  --out, -o      output path")
	fmt.Println("  --help, -h     show this help message")
	fmt.Println("  --version      print version information")
	fmt.Println()
	fmt.Println("Exit codes: 0 success, 1 diagnostics/external tool failure, 2 usage error")
}
