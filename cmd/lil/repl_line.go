package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/earl-sudo/lilcxx-sub000/lil"
	"github.com/peterh/liner"
)

const (
	historyFile = ".lil_history"
	promptMain  = "# "
	promptCont  = "> "
)

// prompter reads one line of input after showing a prompt.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// runLineREPL is the plain REPL used when stdin is not a terminal or when
// the full-screen one is not wanted.
func runLineREPL(out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	interp := lil.MustNewInterp(lil.Config{Stdout: out})
	ln.SetCompleter(func(line string) []string {
		var matches []string
		for _, name := range interp.FuncNames() {
			if strings.HasPrefix(name, line) {
				matches = append(matches, name)
			}
		}
		return matches
	})

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	fmt.Fprintf(out, "Little Interpreted Language v%s\n", lil.Version)
	lineLoop(interp, ln, out, ln.AppendHistory)

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// lineLoop evaluates complete commands read from in until EOF. Each
// non-empty result is echoed on its own line.
func lineLoop(interp *lil.Interp, in prompter, out io.Writer, remember func(string)) {
	for {
		code, ok := readComplete(in)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		if remember != nil {
			remember(strings.ReplaceAll(code, "\n", " "))
		}

		result, err := interp.Eval(code)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if s := result.String(); s != "" {
			fmt.Fprintln(out, s)
		}
	}
}

// readComplete keeps reading continuation lines while the buffer has an
// open brace, bracket or quote.
func readComplete(in prompter) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !lil.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}
