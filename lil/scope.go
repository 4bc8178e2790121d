package lil

import "errors"

// UpEval evaluates code in the caller's frame. The frame it was called from
// becomes the down frame for DownEval. At the root it is a plain eval.
func (interp *Interp) UpEval(code string) *Value {
	this := interp.env
	if this.parent == nil {
		return interp.parse(code, false)
	}
	down := interp.downEnv
	interp.env, interp.downEnv = this.parent, this
	defer func() { interp.env, interp.downEnv = this, down }()
	return interp.parse(code, false)
}

// DownEval evaluates code in the frame an enclosing UpEval or TopEval was
// called from. Without such a frame it is a plain eval.
func (interp *Interp) DownEval(code string) *Value {
	down := interp.downEnv
	if down == nil {
		return interp.parse(code, false)
	}
	up := interp.env
	interp.env, interp.downEnv = down, nil
	defer func() { interp.env, interp.downEnv = up, down }()
	return interp.parse(code, false)
}

// TopEval evaluates code in the root frame. At the root it is a plain eval.
func (interp *Interp) TopEval(code string) *Value {
	this := interp.env
	if this == interp.root {
		return interp.parse(code, false)
	}
	down := interp.downEnv
	interp.env, interp.downEnv = interp.root, this
	defer func() { interp.env, interp.downEnv = this, down }()
	return interp.parse(code, false)
}

// EnvEval evaluates code in a fresh frame attached to the root. The
// variables named by inVars are copied in from the current scope first; the
// variables named by outVars are copied back out afterwards.
func (interp *Interp) EnvEval(code string, inVars, outVars []string) *Value {
	vals := make([]*Value, len(inVars))
	for i, name := range inVars {
		vals[i] = interp.GetVar(name).Clone()
	}

	env := newEnv(interp.root)
	var result *Value
	outVals := make([]*Value, len(outVars))
	func() {
		defer interp.enterEnv(env)()
		for i, name := range inVars {
			interp.SetVar(name, vals[i], SetLocalNew)
		}
		result = interp.parse(code, false)
		for i, name := range outVars {
			outVals[i] = interp.GetVar(name).Clone()
		}
	}()

	for i, name := range outVars {
		interp.SetVar(name, outVals[i], SetLocal)
	}
	return result
}

// JailEval evaluates code in a new interpreter that shares nothing with this
// one except the output destination. Unless clean is set, native commands
// the host registered on this interpreter are made available in the jail.
// Errors raised in the jail stay there, except a fatal abort, which is
// reported here as a script error.
func (interp *Interp) JailEval(code string, clean bool) *Value {
	jail := MustNewInterp(Config{
		Stdout:          interp.config.Stdout,
		Logger:          interp.logger,
		MaxParseDepth:   interp.config.MaxParseDepth,
		MaxCatcherDepth: interp.config.MaxCatcherDepth,
		Callbacks:       Callbacks{Write: interp.callbacks.Write},
	})
	if !clean {
		for _, fn := range interp.hostCommands() {
			jail.Register(fn.name, fn.native)
		}
	}
	interp.logger.Debug("jail created", "clean", clean)

	val, err := jail.EvalContext(interp.ctx, code)
	var fatal *FatalError
	if errors.As(err, &fatal) {
		interp.failErr(fatal)
		return Empty()
	}
	return val
}
