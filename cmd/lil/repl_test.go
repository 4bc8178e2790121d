package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateHelpCommandTogglesPanel(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":help")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)
	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting || !rm.showHelp {
		t.Fatalf("unexpected state: quitting=%v showHelp=%v", rm.quitting, rm.showHelp)
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUpdateEnterEvaluatesAndRecordsHistory(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("set score [expr 40 + 2]")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)
	if len(rm.history) != 1 || rm.history[0].output != "42" || rm.history[0].isErr {
		t.Fatalf("unexpected history: %+v", rm.history)
	}
	if len(rm.cmdHistory) != 1 {
		t.Fatalf("command not remembered: %v", rm.cmdHistory)
	}
	if got := rm.interp.GetVar("score").String(); got != "42" {
		t.Fatalf("score = %q", got)
	}

	model, _ = rm.Update(tea.KeyMsg{Type: tea.KeyUp})
	rm = model.(replModel)
	if rm.textInput.Value() != "set score [expr 40 + 2]" {
		t.Fatalf("history recall = %q", rm.textInput.Value())
	}
}

func TestEvaluateCapturesPrintedOutput(t *testing.T) {
	m := newREPLModel()

	output, isErr := m.evaluate("print hi; quote done")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output != "hi\ndone" {
		t.Fatalf("unexpected output %q", output)
	}

	output, isErr = m.evaluate("write only")
	if isErr || output != "only" {
		t.Fatalf("unexpected output %q (err=%v)", output, isErr)
	}
}

func TestEvaluateReportsErrors(t *testing.T) {
	m := newREPLModel()

	output, isErr := m.evaluate("nosuch 1 2")
	if !isErr {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(output, "unknown function nosuch") {
		t.Fatalf("unexpected error output %q", output)
	}
}

func TestResetCommandStartsFreshInterpreter(t *testing.T) {
	m := newREPLModel()
	if _, isErr := m.evaluate("set keep 1; func mine {} {}"); isErr {
		t.Fatalf("setup failed")
	}

	m, _ = m.handleCommand(":reset")
	if got := m.interp.GetVar("keep").String(); got != "" {
		t.Fatalf("variable survived reset: %q", got)
	}
	if m.interp.FindFunc("mine") != nil {
		t.Fatalf("function survived reset")
	}
	if output, _ := m.evaluate("print again"); output != "again" {
		t.Fatalf("print not captured after reset: %q", output)
	}
}

func TestAutocompleteCommandsAndVariables(t *testing.T) {
	m := newREPLModel()
	if _, isErr := m.evaluate("set unique-name 1"); isErr {
		t.Fatalf("setup failed")
	}

	m.textInput.SetValue("jaile")
	m = m.handleAutocomplete()
	if m.textInput.Value() != "jaileval" {
		t.Fatalf("command completion = %q", m.textInput.Value())
	}

	m.textInput.SetValue("print $uniq")
	m = m.handleAutocomplete()
	if m.textInput.Value() != "print $unique-name" {
		t.Fatalf("variable completion = %q", m.textInput.Value())
	}

	m.textInput.SetValue("st")
	m = m.handleAutocomplete()
	last := m.history[len(m.history)-1]
	if !strings.HasPrefix(last.output, "Completions: ") || !strings.Contains(last.output, "store") {
		t.Fatalf("expected completion list, got %q", last.output)
	}
}

func TestViewShowsTranscriptAndGlobals(t *testing.T) {
	m := newREPLModel()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)

	m.textInput.SetValue("set greeting [quote hello there]")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(replModel)
	m.textInput.SetValue(":vars")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(replModel)

	view := m.View()
	for _, want := range []string{"set greeting [quote hello there]", "Globals", "greeting", "hello there", "ctrl+k"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = m.handleCommand(":nope")
	if last := m.history[len(m.history)-1]; !last.isErr || !strings.Contains(last.output, ":nope") {
		t.Fatalf("unexpected entry for unknown session command: %+v", last)
	}
}
