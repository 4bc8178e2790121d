package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/earl-sudo/lilcxx-sub000/lil"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	varNameStyle = lipgloss.NewStyle().
			Foreground(highlightColor)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput textinput.Model
	interp    *lil.Interp
	// printed collects text written by print and write during one
	// evaluation.
	printed     *strings.Builder
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear transcript"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "globals"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "help"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "lil> "

	m := replModel{
		textInput:  ti,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
	m.interp, m.printed = newREPLInterp()
	return m
}

func newREPLInterp() (*lil.Interp, *strings.Builder) {
	printed := new(strings.Builder)
	interp := lil.MustNewInterp(lil.Config{
		Callbacks: lil.Callbacks{
			Write: func(_ *lil.Interp, text string) {
				printed.WriteString(text)
			},
		},
	})
	return interp, printed
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlK):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{
				input:  input,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.interp, m.printed = newREPLInterp()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "started a fresh interpreter",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("%s is not a session command, try :help", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	lastWord := words[len(words)-1]
	prefix := strings.TrimSuffix(input, lastWord)

	lookup := lastWord
	sigil := ""
	if strings.HasPrefix(lastWord, "$") {
		sigil = "$"
		lookup = lastWord[1:]
	}

	var candidates []string
	if sigil == "" {
		candidates = m.interp.FuncNames()
	} else {
		candidates = m.interp.GlobalNames()
	}

	var completions []string
	for _, name := range candidates {
		if strings.HasPrefix(name, lookup) {
			completions = append(completions, sigil+name)
		}
	}
	sort.Strings(completions)

	if len(completions) == 1 {
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate runs input in the session interpreter. Printed text comes
// before the result.
func (m replModel) evaluate(input string) (string, bool) {
	m.printed.Reset()
	result, err := m.interp.Eval(input)
	printed := strings.TrimSuffix(m.printed.String(), "\n")
	if err != nil {
		msg := err.Error()
		if printed != "" {
			msg = printed + "\n" + msg
		}
		return msg, true
	}

	out := result.String()
	switch {
	case printed == "":
	case out == "":
		out = printed
	default:
		out = printed + "\n" + out
	}
	return out, false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("bye\n")
	}

	globals := m.interp.GlobalNames()

	var b strings.Builder
	b.WriteString(headerStyle.Render("lil") + mutedStyle.Render(fmt.Sprintf(
		"v%s  %d commands, %d globals", lil.Version, len(m.interp.FuncNames()), len(globals))) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	panels := 0
	if m.showHelp {
		panels += len(helpRows) + len(syntaxRows) + 5
	}
	if m.showVars {
		panels += len(globals) + 3
	}
	b.WriteString(m.renderTranscript(m.height - 8 - panels))

	if m.showVars {
		b.WriteString(renderGlobalsPanel(m.interp, globals) + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelpPanel() + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(renderKeyHints(keys.CtrlK, keys.CtrlV, keys.CtrlL, keys.CtrlC))
	return b.String()
}

// renderTranscript draws the most recent entries that fit in rows lines.
func (m replModel) renderTranscript(rows int) string {
	var b strings.Builder
	start := max(len(m.history)-rows, 0)
	for _, entry := range m.history[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  # ") + entry.input + "\n")
		}
		switch {
		case entry.isErr:
			b.WriteString(indent(errorStyle.Render(entry.output)) + "\n")
		case entry.output != "":
			b.WriteString(indent(resultStyle.Render(entry.output)) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func indent(text string) string {
	return "    " + strings.ReplaceAll(text, "\n", "\n    ")
}

func renderKeyHints(bindings ...key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}

const maxShownValue = 48

// renderGlobalsPanel lists root-frame variables. Long values are cut
// short so the panel stays one line per variable.
func renderGlobalsPanel(interp *lil.Interp, names []string) string {
	if len(names) == 0 {
		return borderStyle.Render(mutedStyle.Render("no globals set"))
	}

	lines := []string{panelTitleStyle.Render("Globals")}
	root := interp.RootEnv()
	for _, name := range names {
		val := ""
		if v, ok := root.Var(name); ok {
			val = v.Value().String()
		}
		if len(val) > maxShownValue {
			val = val[:maxShownValue] + "..."
		}
		lines = append(lines, "  "+varNameStyle.Render(name)+" "+mutedStyle.Render("{")+val+mutedStyle.Render("}"))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

type helpRow struct {
	key  string
	desc string
}

var helpRows = []helpRow{
	{"↑/↓", "walk command history"},
	{"tab", "complete a command, or a global after $"},
	{":vars", "show or hide globals"},
	{":clear", "drop the transcript"},
	{":reset", "discard all commands and variables"},
	{":quit", "leave"},
}

var syntaxRows = []helpRow{
	{"{...}", "literal text, evaluated later"},
	{"[...]", "replaced by the command's result"},
	{"$name", "value of a variable"},
}

func renderHelpPanel() string {
	lines := []string{panelTitleStyle.Render("Session")}
	for _, h := range helpRows {
		lines = append(lines, fmt.Sprintf("  %s %s", helpKeyStyle.Render(fmt.Sprintf("%-7s", h.key)), helpDescStyle.Render(h.desc)))
	}
	lines = append(lines, "", panelTitleStyle.Render("Syntax"))
	for _, h := range syntaxRows {
		lines = append(lines, fmt.Sprintf("  %s %s", helpKeyStyle.Render(fmt.Sprintf("%-7s", h.key)), helpDescStyle.Render(h.desc)))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
