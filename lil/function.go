package lil

import (
	"fmt"
	"sort"
)

// CommandFunc implements a native command. args holds the words after the
// command name; implementations must not retain them. Returning ErrBadArgs
// reports an argument error without aborting the script. Any other error
// becomes the interpreter's script error.
type CommandFunc func(interp *Interp, args []*Value) (*Value, error)

// Function is an entry in the command table: either a native command or a
// script function with argument names and a body.
type Function struct {
	name     string
	argNames *List
	body     *Value
	native   CommandFunc
}

func (f *Function) Name() string { return f.name }

// Native reports whether the function is implemented in Go.
func (f *Function) Native() bool { return f.native != nil }

func (f *Function) ArgNames() *List { return f.argNames }

func (f *Function) Body() *Value { return f.body }

// Register installs or replaces a native command.
func (interp *Interp) Register(name string, fn CommandFunc) {
	interp.cmds[name] = &Function{name: name, native: fn}
}

// defineFunc installs a script function. The table entry is replaced in a
// single assignment so lookups see either the old or the new definition.
func (interp *Interp) defineFunc(name string, argNames *List, body *Value) *Function {
	fn := &Function{name: name, argNames: argNames, body: body}
	interp.cmds[name] = fn
	return fn
}

// FindFunc looks a command up by name.
func (interp *Interp) FindFunc(name string) *Function {
	return interp.cmds[name]
}

// SystemFunc returns the command registered under name when the interpreter
// was created, even if scripts have since renamed or redefined it.
func (interp *Interp) SystemFunc(name string) *Function {
	return interp.sysCmds[name]
}

// RenameFunc moves a command to a new name. An empty new name deletes it.
func (interp *Interp) RenameFunc(oldName, newName string) error {
	fn := interp.cmds[oldName]
	if fn == nil {
		return fmt.Errorf("%w '%s'", ErrUnknownCommand, oldName)
	}
	delete(interp.cmds, oldName)
	if newName == "" {
		return nil
	}
	fn.name = newName
	interp.cmds[newName] = fn
	return nil
}

// DeleteFunc removes a command and reports whether it existed.
func (interp *Interp) DeleteFunc(name string) bool {
	if _, ok := interp.cmds[name]; !ok {
		return false
	}
	delete(interp.cmds, name)
	return true
}

// FuncNames returns all command names, sorted.
func (interp *Interp) FuncNames() []string {
	names := make([]string, 0, len(interp.cmds))
	for name := range interp.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnusedName returns a name that is neither a command nor a visible
// variable.
func (interp *Interp) UnusedName(part string) string {
	for i := 0; ; i++ {
		name := fmt.Sprintf("!!un!%s!%09d!nu!!", part, i)
		if interp.cmds[name] == nil && interp.env.lookup(name, interp.root) == nil {
			return name
		}
	}
}

// hostCommands returns the native commands registered after construction.
func (interp *Interp) hostCommands() []*Function {
	var out []*Function
	for _, name := range interp.FuncNames() {
		fn := interp.cmds[name]
		if fn.native != nil && interp.sysCmds[name] != fn {
			out = append(out, fn)
		}
	}
	return out
}
