package lil

import (
	"math/rand/v2"
	"strings"
)

const defaultTrimSet = " \f\n\r\t\v"

func builtinLength(interp *Interp, args []*Value) (*Value, error) {
	total := 0
	for i, a := range args {
		if i > 0 {
			total++
		}
		total += a.Len()
	}
	return NewInt(int64(total)), nil
}

func builtinChar(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	return NewBytes([]byte{byte(args[0].IntOr(0))}), nil
}

func byteAt(args []*Value) (byte, bool) {
	s := args[0].Bytes()
	i, ok := args[1].Int()
	if !ok || i < 0 || i >= int64(len(s)) {
		return 0, false
	}
	return s[i], true
}

func builtinCharAt(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	c, ok := byteAt(args)
	if !ok {
		return nil, nil
	}
	return NewBytes([]byte{c}), nil
}

func builtinCodeAt(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	c, ok := byteAt(args)
	if !ok {
		return nil, nil
	}
	return NewInt(int64(c)), nil
}

// builtinSubstr returns the bytes from start up to, not including, end.
func builtinSubstr(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	s := args[0].Bytes()
	n := int64(len(s))
	start := args[1].IntOr(0)
	if start < 0 {
		start = 0
	}
	end := n
	if len(args) > 2 {
		end = args[2].IntOr(n)
	}
	if end > n {
		end = n
	}
	if start >= n || end <= start {
		return nil, nil
	}
	return NewBytes(s[start:end]), nil
}

func builtinStrpos(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	s := args[0].String()
	from := 0
	if len(args) > 2 {
		from = int(args[2].IntOr(0))
		if from < 0 {
			from = 0
		}
		if from > len(s) {
			return NewInt(-1), nil
		}
	}
	i := strings.Index(s[from:], args[1].String())
	if i < 0 {
		return NewInt(-1), nil
	}
	return NewInt(int64(from + i)), nil
}

func trimSet(args []*Value) string {
	if len(args) > 1 {
		return args[1].String()
	}
	return defaultTrimSet
}

func builtinTrim(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	return NewString(strings.Trim(args[0].String(), trimSet(args))), nil
}

func builtinLtrim(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	return NewString(strings.TrimLeft(args[0].String(), trimSet(args))), nil
}

func builtinRtrim(interp *Interp, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrBadArgs
	}
	return NewString(strings.TrimRight(args[0].String(), trimSet(args))), nil
}

func builtinStrcmp(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	return NewInt(int64(strings.Compare(args[0].String(), args[1].String()))), nil
}

func builtinStreq(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, ErrBadArgs
	}
	return NewBool(args[0].Equal(args[1])), nil
}

func builtinRepstr(interp *Interp, args []*Value) (*Value, error) {
	if len(args) < 3 {
		return nil, ErrBadArgs
	}
	if args[1].Len() == 0 {
		return args[0].Clone(), nil
	}
	return NewString(strings.ReplaceAll(args[0].String(), args[1].String(), args[2].String())), nil
}

func builtinRand(interp *Interp, args []*Value) (*Value, error) {
	return NewFloat(rand.Float64()), nil
}
