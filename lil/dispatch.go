package lil

import (
	"errors"
	"fmt"
)

// parse evaluates code command by command and returns the last command's
// result. With funcLevel set, a return in the current frame supplies the
// result and clears the frame's break flag.
func (interp *Interp) parse(code string, funcLevel bool) *Value {
	p := &parser{interp: interp, code: code, root: len(interp.frames) == 0}
	if p.root {
		interp.rootCode = code
	}
	interp.frames = append(interp.frames, p)
	interp.parseDepth++
	defer func() {
		interp.frames = interp.frames[:len(interp.frames)-1]
		interp.parseDepth--
	}()

	if interp.parseDepth > interp.config.MaxParseDepth {
		interp.logger.Debug("parse depth exceeded", "limit", interp.config.MaxParseDepth)
		panic(abortSignal{err: &FatalError{
			Message: fmt.Sprintf("too many recursive calls (limit %d)", interp.config.MaxParseDepth),
			Depth:   interp.parseDepth,
		}})
	}
	if interp.parseDepth == 1 {
		interp.err = nil
	}
	if funcLevel {
		interp.env.breakrun = false
	}

	var val *Value
	p.skipSpaces()
	for !p.done() && interp.err == nil {
		val = nil
		p.cmdStart = p.head
		if err := interp.ctx.Err(); err != nil {
			interp.fail(p, p.head, err, "evaluation cancelled: "+err.Error())
			break
		}
		words := p.substitute()
		if words == nil || interp.err != nil {
			break
		}
		if words.Len() > 0 {
			val = interp.dispatch(p, words)
		}
		if interp.env.breakrun {
			break
		}
		p.skipSpaces()
		for p.atEOL() {
			p.head++
		}
		p.skipSpaces()
	}

	if interp.err != nil && interp.parseDepth == 1 && interp.callbacks.Error != nil {
		interp.callbacks.Error(interp, interp.err)
	}
	if funcLevel && interp.env.retvalSet {
		val = interp.env.retval
		interp.env.retval = nil
		interp.env.retvalSet = false
		interp.env.breakrun = false
	}
	if val == nil {
		val = Empty()
	}
	return val
}

func (interp *Interp) dispatch(p *parser, words *List) *Value {
	name := words.At(0).String()
	fn := interp.cmds[name]
	if fn == nil {
		if name == "" {
			return nil
		}
		if interp.catcher != "" {
			return interp.runCatcher(p, words)
		}
		interp.fail(p, p.cmdStart, ErrUnknownCommand, "unknown function "+name)
		return nil
	}
	if fn.native != nil {
		return interp.callNative(fn, words.Tail(1))
	}
	return interp.callFunc(fn, words.Tail(1))
}

func (interp *Interp) callNative(fn *Function, args []*Value) *Value {
	res, err := fn.native(interp, args)
	if err != nil {
		if errors.Is(err, ErrBadArgs) {
			interp.stats.ArgErrors++
			return nil
		}
		interp.stats.CommandErrors++
		interp.failErr(err)
		return nil
	}
	interp.stats.Successes++
	return res
}

func (interp *Interp) callFunc(fn *Function, args []*Value) *Value {
	interp.logger.Debug("call function", "name", fn.name, "args", len(args))
	env := newEnv(interp.env)
	env.fn = fn
	defer interp.enterEnv(env)()

	names := fn.argNames.Values()
	if len(names) == 1 && names[0].String() == "args" {
		interp.SetVar("args", ValuesToList(args).ToValue(true), SetLocalNew)
	} else {
		for i, n := range names {
			name := n.String()
			if name == "args" && i == len(names)-1 {
				interp.SetVar(name, ValuesToList(tail(args, i)).ToValue(true), SetLocalNew)
				break
			}
			var arg *Value
			if i < len(args) {
				arg = args[i]
			}
			interp.SetVar(name, arg, SetLocalNew)
		}
	}
	return interp.parse(fn.body.String(), true)
}

func tail(vals []*Value, from int) []*Value {
	if from >= len(vals) {
		return nil
	}
	return vals[from:]
}

// runCatcher handles an unknown command with the catcher code. The code runs
// in a new frame with args bound to the full command line.
func (interp *Interp) runCatcher(p *parser, words *List) *Value {
	name := words.At(0).String()
	if interp.inCatcher >= interp.config.MaxCatcherDepth {
		interp.fail(p, p.cmdStart, ErrCatcherLimit, "catcher limit reached while trying to call unknown function "+name)
		return nil
	}
	interp.logger.Debug("catcher invoked", "name", name)
	interp.inCatcher++
	defer func() { interp.inCatcher-- }()

	env := newEnv(interp.env)
	env.catcherFor = words.At(0).Clone()
	defer interp.enterEnv(env)()
	interp.SetVar("args", words.ToValue(true), SetLocalNew)
	return interp.parse(interp.catcher, true)
}
