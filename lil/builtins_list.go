package lil

import "strings"

func builtinList(interp *Interp, args []*Value) (*Value, error) {
	return ValuesToList(args).ToValue(true), nil
}

func builtinCount(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return NewInt(0), nil
	}
	return NewInt(int64(interp.SubstToList(args[0]).Len())), nil
}

func builtinIndex(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	list := interp.SubstToList(args[0])
	i, ok := args[1].Int()
	if !ok || i < 0 || i >= int64(list.Len()) {
		return nil, nil
	}
	return list.At(int(i)).Clone(), nil
}

func builtinIndexOf(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	for i, v := range interp.SubstToList(args[0]).Values() {
		if v.Equal(args[1]) {
			return NewInt(int64(i)), nil
		}
	}
	return nil, nil
}

// builtinAppend appends values to the list stored in a variable.
func builtinAppend(interp *Interp, args []*Value) (*Value, error) {
	mode := SetLocal
	if len(args) > 0 && args[0].String() == "global" {
		mode = SetGlobal
		args = args[1:]
	}
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	name := args[0].String()
	list := interp.SubstToList(interp.GetVar(name))
	for _, v := range args[1:] {
		list.Append(v.Clone())
	}
	out := list.ToValue(true)
	interp.SetVar(name, out, mode)
	return out, nil
}

func builtinSlice(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	list := interp.SubstToList(args[0])
	n := int64(list.Len())
	from := args[1].IntOr(0)
	if from < 0 {
		from = 0
	}
	to := n
	if len(args) > 2 {
		to = args[2].IntOr(n)
	}
	if to > n {
		to = n
	}
	if to < from {
		to = from
	}
	out := NewList()
	for i := from; i < to; i++ {
		out.Append(list.At(int(i)).Clone())
	}
	return out.ToValue(true), nil
}

// builtinFilter keeps the elements for which the expression is true. The
// element is bound to the named variable, x by default.
func builtinFilter(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	name := "x"
	if len(args) > 2 {
		name = args[0].String()
		args = args[1:]
	}
	out := NewList()
	for _, item := range interp.SubstToList(args[0]).Values() {
		interp.SetVar(name, item, SetLocalOnly)
		r := interp.EvalExpr(args[1])
		if interp.err != nil {
			break
		}
		if r.Bool() {
			out.Append(item.Clone())
		}
		if interp.env.breakrun {
			break
		}
	}
	return out.ToValue(true), nil
}

// builtinLmap assigns successive list elements to the named variables.
func builtinLmap(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	list := interp.SubstToList(args[0])
	for i, name := range args[1:] {
		interp.SetVar(name.String(), list.At(i), SetLocal)
	}
	return nil, nil
}

func builtinConcat(interp *Interp, args []*Value) (*Value, error) {
	out := Empty()
	for _, a := range args {
		out.AppendValue(interp.SubstToList(a).ToValue(true))
	}
	return out, nil
}

// builtinSplit splits a string at any of the separator characters, space by
// default. Empty pieces are kept.
func builtinSplit(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	seps := " "
	if len(args) > 1 {
		seps = args[1].String()
	}
	out := NewList()
	piece := Empty()
	for _, c := range args[0].Bytes() {
		if strings.IndexByte(seps, c) >= 0 {
			out.Append(piece)
			piece = Empty()
			continue
		}
		piece.AppendByte(c)
	}
	out.Append(piece)
	return out.ToValue(true), nil
}

