// Command mines interprets a Minesweeper-board-as-program source file.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dnek/mines/internal/debugger"
	"github.com/dnek/mines/internal/iosource"
	"github.com/dnek/mines/internal/parser"
	"github.com/dnek/mines/internal/runtime"
)

const version = "mines 0.1.0"

func init() {
	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: mines [OPTIONS] SOURCE

mines runs a program written as a Minesweeper board plus a trailing list of
click operations.

Options:
`)
		pflag.PrintDefaults()
	}
}

var (
	inputPath = pflag.StringP("input", "i", "", "read program input from `file` instead of stdin")
	echoInput = pflag.StringP("echo", "e", "", "inject a literal `string` as program input")
	debugFlag = pflag.BoolP("debug", "d", false, "run with the interactive step debugger (requires a tty)")
	showVer   = pflag.BoolP("version", "V", false, "print version and exit")
)

func main() {
	pflag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	os.Exit(run(pflag.Arg(0)))
}

func run(sourcePath string) int {
	code, err := os.ReadFile(sourcePath) //nolint:gosec // G304: path is the CLI's own positional argument
	if err != nil {
		fmt.Fprintf(os.Stderr, "mines: %v\n", err)
		return 1
	}

	program, err := parser.Parse(string(code))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mines: %v\n", err)
		return 1
	}

	source, err := inputSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mines: %v\n", err)
		return 1
	}

	if *debugFlag {
		return runDebugger(program, source)
	}

	runner := runtime.NewRunner(program, source, os.Stdout, nil)
	runner.Run()
	return 0
}

func inputSource() (runtime.InputSource, error) {
	switch {
	case *inputPath != "":
		return iosource.File(*inputPath)
	case *echoInput != "":
		return iosource.Echo(*echoInput), nil
	default:
		return iosource.Stdin(os.Stdin), nil
	}
}

func runDebugger(program *parser.Program, source runtime.InputSource) int {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "mines: --debug requires an interactive terminal")
		return 1
	}

	runner := runtime.NewRunner(program, source, os.Stdout, nil)
	p := tea.NewProgram(debugger.New(runner), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "mines: %v\n", err)
		return 1
	}
	return 0
}
