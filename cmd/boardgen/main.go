// Command boardgen is the CLI surface described in §6 of the external
// interfaces: a subcommand family with PATH-style dispatch to sibling
// tool executables, plus a local "build" subcommand that runs the core
// pipeline directly. Everything here is a thin wrapper; the pipeline's
// own contract is neutral about exit codes and formatting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/diag"
	"github.com/boardgen/boardcore/pkg/pipeline"
	"github.com/boardgen/boardcore/pkg/schematic"
)

const version = "0.1.0"

// dispatched lists subcommands that have no local implementation and
// are instead forwarded to a PATH sibling executable named
// "boardgen-<name>", matching the owning tool's plugin model.
var dispatched = map[string]bool{
	"layout": true,
	"fmt":    true,
	"clean":  true,
	"open":   true,
	"lsp":    true,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "-version", "--version":
		fmt.Printf("boardgen version %s\n", version)
		os.Exit(0)
	case "-help", "--help", "help":
		printUsage()
		os.Exit(0)
	case "build":
		os.Exit(runBuild(os.Args[2:]))
	case "export":
		os.Exit(runExport(os.Args[2:]))
	default:
		if dispatched[cmd] {
			os.Exit(dispatchSibling(cmd, os.Args[2:]))
		}
		fmt.Fprintf(os.Stderr, "boardgen: unknown subcommand %q\n", cmd)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: boardgen <build|layout|export|fmt|clean|open|lsp> [flags]")
	fmt.Fprintln(os.Stderr, "  build   run the schematic -> refdes -> placement -> routing -> render pipeline locally")
	fmt.Fprintln(os.Stderr, "  export  hand off to the PCB tool named by $KICAD_CLI (default \"kicad-cli\")")
	fmt.Fprintln(os.Stderr, "  layout, fmt, clean, open, lsp  dispatched to boardgen-<name> on $PATH")
}

// runBuild loads a schematic and a config, runs the pipeline, writes the
// rendered SVG, and reports diagnostics. Exit code is 0 on success, 1 if
// the run failed or produced an Error-severity diagnostic.
func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	schematicPath := fs.String("schematic", "", "path to the input schematic JSON (required)")
	configPath := fs.String("config", "", "path to the YAML board config (optional, defaults applied if omitted)")
	outPath := fs.String("out", "board.svg", "output path for the rendered SVG")
	seedFlag := fs.Uint64("seed", 0, "override the seed from config (0 = use config seed)")
	verbose := fs.Bool("verbose", false, "print stage timing and diagnostics detail")
	fs.Parse(args)

	if *schematicPath == "" {
		fmt.Fprintln(os.Stderr, "boardgen build: -schematic is required")
		return 1
	}

	cfg := boardconfig.DefaultConfig()
	if *configPath != "" {
		loaded, err := boardconfig.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "boardgen build: loading config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	s, err := schematic.LoadJSON(*schematicPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boardgen build: loading schematic: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Printf("boardgen build: seed=%d components=%d\n", cfg.Seed, len(s.Components()))
	}

	start := time.Now()
	result, err := pipeline.Runner{}.Run(context.Background(), s, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boardgen build: pipeline failed: %v\n", err)
		return 1
	}
	if *verbose {
		fmt.Printf("boardgen build: completed in %v\n", time.Since(start))
	}

	if err := os.WriteFile(*outPath, result.SVG, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "boardgen build: writing %s: %v\n", *outPath, err)
		return 1
	}

	printDiagnostics(result.Diagnostics)
	if result.Diagnostics.HasErrors() {
		return 1
	}
	return 0
}

func printDiagnostics(diags diag.List) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d.Error())
	}
}

// runExport hands off to the external PCB tool named by $KICAD_CLI
// (defaulting to "kicad-cli" on PATH). KiCad export is explicitly out
// of scope for the core; this subcommand only models the ambient CLI
// surface that would host it.
func runExport(args []string) int {
	tool := os.Getenv("KICAD_CLI")
	if tool == "" {
		tool = "kicad-cli"
	}
	path, err := exec.LookPath(tool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boardgen export: %s not found on PATH: %v\n", tool, err)
		return 1
	}
	return runSibling(path, args)
}

// dispatchSibling forwards a subcommand to "boardgen-<name>" on PATH,
// the plugin model for subcommands the core module doesn't implement.
func dispatchSibling(name string, args []string) int {
	sibling := "boardgen-" + name
	path, err := exec.LookPath(sibling)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boardgen: %s not found on PATH: %v\n", sibling, err)
		return 1
	}
	return runSibling(path, args)
}

func runSibling(path string, args []string) int {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "boardgen: %v\n", err)
		return 1
	}
	return 0
}
