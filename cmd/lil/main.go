package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/earl-sudo/lilcxx-sub000/lil"
	"golang.org/x/term"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// exitError carries the status requested by a script's exit command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	debug := fs.Bool("debug", false, "log interpreter activity to stderr")
	maxDepth := fs.Int("max-depth", 0, "maximum nesting of parse calls")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("lil run: script path required")
	}

	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exitCode := -1
	interp, err := lil.NewInterp(lil.Config{
		Logger:        logger,
		MaxParseDepth: *maxDepth,
		Callbacks: lil.Callbacks{
			Exit: func(_ *lil.Interp, code *lil.Value) {
				exitCode = 0
				if code != nil {
					exitCode = int(code.IntOr(0))
				}
				cancel()
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create interpreter: %w", err)
	}

	scriptArgs := lil.NewList()
	for _, raw := range remaining[1:] {
		scriptArgs.Append(lil.NewString(raw))
	}
	interp.SetVar("argv", scriptArgs.ToValue(true), lil.SetGlobal)
	interp.SetVar("argc", lil.NewInt(int64(scriptArgs.Len())), lil.SetGlobal)

	_, err = interp.EvalContext(ctx, input)
	if exitCode >= 0 {
		if exitCode == 0 {
			return nil
		}
		return &exitError{code: exitCode}
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("lil check: script path required")
	}

	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	err = lil.CheckSyntax(input)
	if err == nil {
		fmt.Println("No issues found")
		return nil
	}
	var syntaxErr *lil.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}
	fmt.Printf("%s:%d:%d: %s\n", remaining[0], syntaxErr.Line, syntaxErr.Column, syntaxErr.Message)
	return errors.New("check found 1 issue(s)")
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	lineMode := fs.Bool("line", false, "use the line-oriented REPL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lineMode || !term.IsTerminal(int(os.Stdin.Fd())) {
		return runLineREPL(os.Stdout)
	}
	return runREPL()
}

func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
		return string(data), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := lil.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return input, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] <script|-> [args...]")
	fmt.Fprintln(os.Stderr, "    evaluate a script; argv and argc hold the remaining arguments")
	fmt.Fprintln(os.Stderr, "  check <script>")
	fmt.Fprintln(os.Stderr, "    report unbalanced braces, brackets and quotes without running")
	fmt.Fprintln(os.Stderr, "  repl [-line]")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "Run flags:")
	fmt.Fprintln(os.Stderr, "  -debug")
	fmt.Fprintln(os.Stderr, "    log interpreter activity to stderr")
	fmt.Fprintln(os.Stderr, "  -max-depth int")
	fmt.Fprintln(os.Stderr, "    maximum nesting of parse calls (default 1000)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
