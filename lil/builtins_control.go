package lil

import (
	"strconv"
	"strings"
)

func builtinExpr(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	if len(args) == 1 {
		return interp.EvalExpr(args[0]), nil
	}
	return interp.EvalExpr(joinArgs(args)), nil
}

// toNumber reads a value as an integer when it is one, else as a float.
// Non-numeric text counts as zero.
func toNumber(v *Value) number {
	s := strings.TrimSpace(v.String())
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return intNum(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatNum(f)
	}
	return intNum(0)
}

func (n number) value() *Value {
	if n.float {
		return NewFloat(n.f)
	}
	return NewInt(n.i)
}

func adjustVar(interp *Interp, args []*Value, sign int64) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	name := args[0].String()
	cur := toNumber(interp.GetVar(name))
	by := intNum(1)
	if len(args) > 1 {
		by = toNumber(args[1])
	}
	var next number
	if cur.float || by.float {
		next = floatNum(cur.asFloat() + float64(sign)*by.asFloat())
	} else {
		next = intNum(cur.i + sign*by.i)
	}
	val := next.value()
	interp.SetVar(name, val, SetLocal)
	return val, nil
}

func builtinInc(interp *Interp, args []*Value) (*Value, error) {
	return adjustVar(interp, args, 1)
}

func builtinDec(interp *Interp, args []*Value) (*Value, error) {
	return adjustVar(interp, args, -1)
}

// condition evaluates an expression as a boolean. ok is false when the
// expression failed.
func condition(interp *Interp, code *Value, negate bool) (truth, ok bool) {
	v := interp.EvalExpr(code)
	if v == nil || interp.err != nil {
		return false, false
	}
	return v.Bool() != negate, true
}

// negation strips a leading "not" argument.
func negation(args []*Value) ([]*Value, bool) {
	if len(args) > 0 && args[0].String() == "not" {
		return args[1:], true
	}
	return args, false
}

func builtinIf(interp *Interp, args []*Value) (*Value, error) {
	args, not := negation(args)
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	truth, ok := condition(interp, args[0], not)
	if !ok {
		return nil, nil
	}
	if truth {
		return interp.ParseValue(args[1], false), nil
	}
	if len(args) > 2 {
		return interp.ParseValue(args[2], false), nil
	}
	return nil, nil
}

func builtinWhile(interp *Interp, args []*Value) (*Value, error) {
	args, not := negation(args)
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	var result *Value
	for interp.err == nil && !interp.env.breakrun {
		truth, ok := condition(interp, args[0], not)
		if !ok || !truth {
			break
		}
		result = interp.ParseValue(args[1], false)
	}
	return result, nil
}

func builtinFor(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 4 {
		return nil, ErrBadArgs
	}
	var result *Value
	interp.ParseValue(args[0], false)
	for interp.err == nil && !interp.env.breakrun {
		truth, ok := condition(interp, args[1], false)
		if !ok || !truth {
			break
		}
		result = interp.ParseValue(args[3], false)
		if interp.err != nil || interp.env.breakrun {
			break
		}
		interp.ParseValue(args[2], false)
	}
	return result, nil
}

// builtinForeach runs code for each element and collects the non-empty
// results into a list.
func builtinForeach(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	name := "i"
	if len(args) > 2 {
		name = args[0].String()
		args = args[1:]
	}
	items := interp.SubstToList(args[0])
	out := NewList()
	for _, item := range items.Values() {
		interp.SetVar(name, item, SetLocalOnly)
		r := interp.ParseValue(args[1], false)
		if r.Len() > 0 {
			out.Append(r)
		}
		if interp.err != nil || interp.env.breakrun {
			break
		}
	}
	return out.ToValue(true), nil
}

// builtinTry runs code and, if it raised an error, clears the error and
// runs the optional handler instead.
func builtinTry(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	if interp.err != nil {
		return nil, nil
	}
	r := interp.ParseValue(args[0], false)
	if interp.err == nil {
		return r, nil
	}
	interp.err = nil
	if len(args) > 1 {
		return interp.ParseValue(args[1], false), nil
	}
	return nil, nil
}

func builtinError(interp *Interp, args []*Value) (*Value, error) {
	msg := ""
	if len(args) > 0 {
		msg = args[0].String()
	}
	interp.SetError(msg)
	return nil, nil
}
