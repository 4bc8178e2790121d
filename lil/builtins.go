package lil

import "strings"

func registerBuiltins(interp *Interp) {
	for name, fn := range map[string]CommandFunc{
		"reflect":    builtinReflect,
		"func":       builtinFunc,
		"rename":     builtinRename,
		"unusedname": builtinUnusedName,
		"set":        builtinSet,
		"local":      builtinLocal,
		"eval":       builtinEval,
		"upeval":     builtinUpEval,
		"downeval":   builtinDownEval,
		"topeval":    builtinTopEval,
		"enveval":    builtinEnvEval,
		"jaileval":   builtinJailEval,
		"return":     builtinReturn,
		"result":     builtinResult,
		"catcher":    builtinCatcher,
		"watch":      builtinWatch,

		"expr":    builtinExpr,
		"inc":     builtinInc,
		"dec":     builtinDec,
		"if":      builtinIf,
		"while":   builtinWhile,
		"for":     builtinFor,
		"foreach": builtinForeach,
		"try":     builtinTry,
		"error":   builtinError,
		"exit":    builtinExit,

		"print":  builtinPrint,
		"write":  builtinWrite,
		"read":   builtinRead,
		"store":  builtinStore,
		"source": builtinSource,

		"list":    builtinList,
		"count":   builtinCount,
		"index":   builtinIndex,
		"indexof": builtinIndexOf,
		"append":  builtinAppend,
		"slice":   builtinSlice,
		"filter":  builtinFilter,
		"lmap":    builtinLmap,
		"concat":  builtinConcat,
		"subst":   builtinSubst,
		"split":   builtinSplit,
		"quote":   builtinQuote,

		"length":  builtinLength,
		"char":    builtinChar,
		"charat":  builtinCharAt,
		"codeat":  builtinCodeAt,
		"substr":  builtinSubstr,
		"strpos":  builtinStrpos,
		"trim":    builtinTrim,
		"ltrim":   builtinLtrim,
		"rtrim":   builtinRtrim,
		"strcmp":  builtinStrcmp,
		"streq":   builtinStreq,
		"repstr":  builtinRepstr,
		"rand":    builtinRand,
	} {
		interp.Register(name, fn)
	}
}

// joinArgs concatenates the arguments with single spaces, without escaping.
func joinArgs(args []*Value) *Value {
	out := Empty()
	for i, a := range args {
		if i > 0 {
			out.AppendByte(' ')
		}
		out.AppendValue(a)
	}
	return out
}

// codeArg is the single argument as code, or all arguments joined.
func codeArg(args []*Value) string {
	if len(args) == 1 {
		return args[0].String()
	}
	return joinArgs(args).String()
}

func builtinReflect(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	arg := func(i int) string {
		if i < len(args) {
			return args[i].String()
		}
		return ""
	}
	switch args[0].String() {
	case "version":
		return NewString(Version), nil
	case "args", "body":
		fn := interp.FindFunc(arg(1))
		if fn == nil || fn.native != nil {
			return nil, nil
		}
		if args[0].String() == "args" {
			return fn.argNames.ToValue(true), nil
		}
		return fn.body.Clone(), nil
	case "func-count":
		return NewInt(int64(len(interp.cmds))), nil
	case "funcs":
		return stringsToValue(interp.FuncNames()), nil
	case "vars":
		names := interp.env.Names()
		if interp.env != interp.root {
			for _, name := range interp.root.Names() {
				if _, ok := interp.env.vars[name]; !ok {
					names = append(names, name)
				}
			}
		}
		return stringsToValue(names), nil
	case "globals":
		return stringsToValue(interp.GlobalNames()), nil
	case "has-func":
		if interp.FindFunc(arg(1)) != nil {
			return NewString("1"), nil
		}
		return nil, nil
	case "has-var":
		if interp.env.lookup(arg(1), interp.root) != nil {
			return NewString("1"), nil
		}
		return nil, nil
	case "has-global":
		if _, ok := interp.root.vars[arg(1)]; ok {
			return NewString("1"), nil
		}
		return nil, nil
	case "error":
		if interp.err == nil {
			return nil, nil
		}
		return NewString(interp.err.Message), nil
	case "dollar-prefix":
		old := NewString(interp.dollarPrefix)
		if len(args) > 1 {
			interp.dollarPrefix = args[1].String()
		}
		return old, nil
	case "this", "name":
		env := interp.env
		for env != interp.root && env.catcherFor == nil && env.fn == nil {
			env = env.parent
		}
		if args[0].String() == "this" {
			switch {
			case env.catcherFor != nil:
				return NewString(interp.catcher), nil
			case env == interp.root:
				return NewString(interp.rootCode), nil
			case env.fn.native == nil:
				return env.fn.body.Clone(), nil
			}
			return nil, nil
		}
		switch {
		case env.catcherFor != nil:
			return env.catcherFor.Clone(), nil
		case env == interp.root:
			return nil, nil
		}
		return NewString(env.fn.name), nil
	}
	return nil, nil
}

func stringsToValue(names []string) *Value {
	l := NewList()
	for _, name := range names {
		l.Append(NewString(name))
	}
	return l.ToValue(true)
}

func builtinFunc(interp *Interp, args []*Value) (*Value, error) {
	var (
		name     string
		argNames *List
		body     *Value
	)
	switch len(args) {
	case 0:
		return nil, ErrBadArgs
	case 1:
		name = interp.UnusedName("anonymous-function")
		argNames = NewList(NewString("args"))
		body = args[0]
	case 2:
		name = interp.UnusedName("anonymous-function")
		argNames = interp.SubstToList(args[0])
		body = args[1]
	default:
		name = args[0].String()
		argNames = interp.SubstToList(args[1])
		body = args[2]
	}
	interp.defineFunc(name, argNames, body.Clone())
	return NewString(name), nil
}

func builtinRename(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	oldName := args[0].String()
	if err := interp.RenameFunc(oldName, args[1].String()); err != nil {
		return nil, err
	}
	return NewString(oldName), nil
}

func builtinUnusedName(interp *Interp, args []*Value) (*Value, error) {
	part := "unusedname"
	if len(args) > 0 {
		part = args[0].String()
	}
	return NewString(interp.UnusedName(part)), nil
}

func builtinSet(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	mode := SetLocal
	i := 0
	if args[0].String() == "global" {
		mode = SetGlobal
		i = 1
	}
	var v *Variable
	for ; i < len(args); i += 2 {
		if i+1 == len(args) {
			return interp.GetVar(args[i].String()).Clone(), nil
		}
		v = interp.SetVar(args[i].String(), args[i+1], mode)
	}
	if v == nil {
		return nil, nil
	}
	return v.value.Clone(), nil
}

func builtinLocal(interp *Interp, args []*Value) (*Value, error) {
	for _, a := range args {
		name := a.String()
		if interp.env.lookupLocal(name) == nil {
			interp.SetVar(name, Empty(), SetLocalNew)
		}
	}
	return nil, nil
}

func builtinEval(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return interp.parse(codeArg(args), false), nil
}

func builtinUpEval(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return interp.UpEval(codeArg(args)), nil
}

func builtinDownEval(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return interp.DownEval(codeArg(args)), nil
}

func builtinTopEval(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return interp.TopEval(codeArg(args)), nil
}

func builtinEnvEval(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	var in, out []string
	switch len(args) {
	case 1:
	case 2:
		in = interp.SubstToList(args[0]).Strings()
		out = in
	default:
		in = interp.SubstToList(args[0]).Strings()
		out = interp.SubstToList(args[1]).Strings()
	}
	return interp.EnvEval(args[len(args)-1].String(), in, out), nil
}

func builtinJailEval(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	clean := len(args) > 1 && args[0].String() == "clean"
	return interp.JailEval(args[len(args)-1].String(), clean), nil
}

func builtinReturn(interp *Interp, args []*Value) (*Value, error) {
	env := interp.env
	env.breakrun = true
	env.retvalSet = true
	env.retval = nil
	if len(args) == 0 {
		return nil, nil
	}
	env.retval = args[0].Clone()
	return args[0].Clone(), nil
}

func builtinResult(interp *Interp, args []*Value) (*Value, error) {
	env := interp.env
	if len(args) > 0 {
		env.retval = args[0].Clone()
		env.retvalSet = true
	}
	if !env.retvalSet {
		return nil, nil
	}
	return env.retval.Clone(), nil
}

func builtinCatcher(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return NewString(interp.catcher), nil
	}
	interp.SetCatcher(args[0].String())
	return nil, nil
}

func builtinWatch(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	code := args[len(args)-1].String()
	for _, name := range args[:len(args)-1] {
		if name.Len() == 0 {
			continue
		}
		interp.Watch(name.String(), code)
	}
	return nil, nil
}

func builtinQuote(interp *Interp, args []*Value) (*Value, error) {
	return joinArgs(args), nil
}

func builtinSubst(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	return interp.SubstToValue(args[0]), nil
}

func builtinPrint(interp *Interp, args []*Value) (*Value, error) {
	var b strings.Builder
	b.WriteString(joinArgs(args).String())
	b.WriteByte('\n')
	interp.write(b.String())
	return nil, nil
}

func builtinWrite(interp *Interp, args []*Value) (*Value, error) {
	interp.write(joinArgs(args).String())
	return nil, nil
}

func builtinRead(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	data, err := interp.readFile(args[0].String())
	if err != nil {
		interp.logger.Debug("read failed", "name", args[0].String(), "error", err)
		return nil, nil
	}
	return NewString(data), nil
}

func builtinStore(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	if err := interp.storeFile(args[0].String(), args[1].String()); err != nil {
		interp.logger.Debug("store failed", "name", args[0].String(), "error", err)
		return nil, nil
	}
	return args[1].Clone(), nil
}

func builtinSource(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	code, err := interp.sourceFile(args[0].String())
	if err != nil {
		interp.logger.Debug("source failed", "name", args[0].String(), "error", err)
		return nil, nil
	}
	return interp.parse(code, true), nil
}

func builtinExit(interp *Interp, args []*Value) (*Value, error) {
	if interp.callbacks.Exit == nil {
		return nil, nil
	}
	var code *Value
	if len(args) > 0 {
		code = args[0]
	}
	interp.callbacks.Exit(interp, code)
	return nil, nil
}
