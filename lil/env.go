package lil

import "sort"

// SetMode selects the frame SetVar writes to.
type SetMode int

const (
	// SetGlobal writes to the root environment.
	SetGlobal SetMode = iota
	// SetLocal updates an existing variable in the current frame or the root
	// or creates it in the current frame.
	SetLocal
	// SetLocalNew always creates the variable in the current frame.
	SetLocalNew
	// SetLocalOnly updates or creates the variable in the current frame only.
	SetLocalOnly
)

// Variable is a named value owned by one environment.
type Variable struct {
	name  string
	value *Value
	watch string
	env   *Env
}

func (v *Variable) Name() string  { return v.name }
func (v *Variable) Value() *Value { return v.value }
func (v *Variable) Watch() string { return v.watch }
func (v *Variable) Env() *Env     { return v.env }

// Env is a call frame. Frames form a chain through their callers ending at
// the interpreter's root environment; the chain drives upeval and downeval,
// not variable resolution.
type Env struct {
	parent     *Env
	vars       map[string]*Variable
	fn         *Function
	retval     *Value
	retvalSet  bool
	breakrun   bool
	catcherFor *Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]*Variable)}
}

func (e *Env) Parent() *Env { return e.parent }

// Function returns the function executing in this frame, if any.
func (e *Env) Function() *Function { return e.fn }

func (e *Env) lookupLocal(name string) *Variable {
	return e.vars[name]
}

// lookup resolves name in the frame itself and then in root. Intermediate
// callers are never consulted.
func (e *Env) lookup(name string, root *Env) *Variable {
	if v, ok := e.vars[name]; ok {
		return v
	}
	if root != nil && root != e {
		return root.vars[name]
	}
	return nil
}

func (e *Env) define(name string, val *Value) *Variable {
	v := &Variable{name: name, value: val, env: e}
	e.vars[name] = v
	return v
}

// Names returns the frame's own variable names, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Var returns the variable declared in this frame.
func (e *Env) Var(name string) (*Variable, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) release() {
	clear(e.vars)
	e.retval = nil
	e.retvalSet = false
	e.catcherFor = nil
}
