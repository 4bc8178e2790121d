package lil

import (
	"errors"
	"math"
	"strconv"
)

// number is an expression operand: an integer or a float.
type number struct {
	float bool
	i     int64
	f     float64
}

func intNum(i int64) number     { return number{i: i} }
func floatNum(f float64) number { return number{float: true, f: f} }

func boolNum(b bool) number {
	if b {
		return intNum(1)
	}
	return intNum(0)
}

func (n number) asFloat() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

func (n number) asInt() int64 {
	if n.float {
		return int64(n.f)
	}
	return n.i
}

func (n number) isZero() bool {
	if n.float {
		return n.f == 0
	}
	return n.i == 0
}

// errInvalidExpr marks a non-numeric operand. Each expression level turns it
// into the value 1 instead of failing.
var errInvalidExpr = errors.New("invalid expression")

// exprEval is the scratch state of one expression evaluation.
type exprEval struct {
	code string
	head int
	err  error
}

func (e *exprEval) peek(off int) byte {
	if e.head+off < len(e.code) {
		return e.code[e.head+off]
	}
	return 0
}

func (e *exprEval) skipSpaces() {
	for e.head < len(e.code) && isSpace(e.code[e.head]) {
		e.head++
	}
}

// EvalExpr evaluates an arithmetic expression after substituting $ and [ ]
// in it. The empty expression is 0. On failure the script error is set and
// nil is returned.
func (interp *Interp) EvalExpr(code *Value) *Value {
	text := interp.SubstToValue(code)
	if interp.err != nil {
		return nil
	}
	if text.Len() == 0 {
		return NewInt(0)
	}
	ev := &exprEval{code: text.String()}
	n := ev.expr()
	if ev.err != nil {
		interp.failErr(ev.err)
		return nil
	}
	if n.float {
		return NewFloat(n.f)
	}
	return NewInt(n.i)
}

func (e *exprEval) expr() number {
	n := e.logor()
	if errors.Is(e.err, errInvalidExpr) {
		e.err = nil
		n = intNum(1)
	}
	return n
}

func (e *exprEval) logor() number {
	l := e.logand()
	for e.err == nil {
		e.skipSpaces()
		if e.peek(0) != '|' || e.peek(1) != '|' {
			break
		}
		e.head += 2
		r := e.logand()
		if e.err != nil {
			break
		}
		l = boolNum(!l.isZero() || !r.isZero())
	}
	return l
}

func (e *exprEval) logand() number {
	l := e.bitor()
	for e.err == nil {
		e.skipSpaces()
		if e.peek(0) != '&' || e.peek(1) != '&' {
			break
		}
		e.head += 2
		r := e.bitor()
		if e.err != nil {
			break
		}
		l = boolNum(!l.isZero() && !r.isZero())
	}
	return l
}

func (e *exprEval) bitor() number {
	l := e.bitand()
	for e.err == nil {
		e.skipSpaces()
		if e.peek(0) != '|' || e.peek(1) == '|' {
			break
		}
		e.head++
		r := e.bitand()
		if e.err != nil {
			break
		}
		l = intNum(l.asInt() | r.asInt())
	}
	return l
}

func (e *exprEval) bitand() number {
	l := e.equals()
	for e.err == nil {
		e.skipSpaces()
		if e.peek(0) != '&' || e.peek(1) == '&' {
			break
		}
		e.head++
		r := e.equals()
		if e.err != nil {
			break
		}
		l = intNum(l.asInt() & r.asInt())
	}
	return l
}

func (e *exprEval) equals() number {
	l := e.compare()
	for e.err == nil {
		e.skipSpaces()
		op := e.peek(0)
		if (op != '=' && op != '!') || e.peek(1) != '=' {
			break
		}
		e.head += 2
		r := e.compare()
		if e.err != nil {
			break
		}
		var eq bool
		if l.float || r.float {
			eq = l.asFloat() == r.asFloat()
		} else {
			eq = l.i == r.i
		}
		l = boolNum(eq == (op == '='))
	}
	return l
}

func (e *exprEval) compare() number {
	l := e.shift()
	for e.err == nil {
		e.skipSpaces()
		op := e.peek(0)
		if (op != '<' && op != '>') || e.peek(1) == op {
			break
		}
		orEqual := e.peek(1) == '='
		e.head++
		if orEqual {
			e.head++
		}
		r := e.shift()
		if e.err != nil {
			break
		}
		var c int
		if l.float || r.float {
			c = compareFloat(l.asFloat(), r.asFloat())
		} else {
			c = compareInt(l.i, r.i)
		}
		switch {
		case op == '<' && orEqual:
			l = boolNum(c <= 0)
		case op == '<':
			l = boolNum(c < 0)
		case orEqual:
			l = boolNum(c >= 0)
		default:
			l = boolNum(c > 0)
		}
	}
	return l
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (e *exprEval) shift() number {
	l := e.addsub()
	for e.err == nil {
		e.skipSpaces()
		op := e.peek(0)
		if (op != '<' && op != '>') || e.peek(1) != op {
			break
		}
		e.head += 2
		r := e.addsub()
		if e.err != nil {
			break
		}
		count := r.asInt()
		if count < 0 {
			e.err = ErrInvalidType
			break
		}
		if op == '<' {
			l = intNum(l.asInt() << uint64(count))
		} else {
			l = intNum(l.asInt() >> uint64(count))
		}
	}
	return l
}

func (e *exprEval) addsub() number {
	l := e.muldiv()
	for e.err == nil {
		e.skipSpaces()
		op := e.peek(0)
		if op != '+' && op != '-' {
			break
		}
		e.head++
		r := e.muldiv()
		if e.err != nil {
			break
		}
		switch {
		case l.float || r.float:
			if op == '+' {
				l = floatNum(l.asFloat() + r.asFloat())
			} else {
				l = floatNum(l.asFloat() - r.asFloat())
			}
		case op == '+':
			l = intNum(l.i + r.i)
		default:
			l = intNum(l.i - r.i)
		}
	}
	return l
}

func (e *exprEval) muldiv() number {
	l := e.unary()
	for e.err == nil {
		e.skipSpaces()
		op := e.peek(0)
		if op != '*' && op != '/' && op != '\\' && op != '%' {
			break
		}
		e.head++
		r := e.unary()
		if e.err != nil {
			break
		}
		mixed := l.float || r.float
		switch op {
		case '*':
			if mixed {
				l = floatNum(l.asFloat() * r.asFloat())
			} else {
				l = intNum(l.i * r.i)
			}
		case '/':
			if r.isZero() {
				e.err = ErrDivisionByZero
				return l
			}
			l = floatNum(l.asFloat() / r.asFloat())
		case '\\':
			if r.isZero() {
				e.err = ErrDivisionByZero
				return l
			}
			if mixed {
				l = intNum(int64(l.asFloat() / r.asFloat()))
			} else {
				l = intNum(l.i / r.i)
			}
		case '%':
			if r.isZero() {
				e.err = ErrDivisionByZero
				return l
			}
			if mixed {
				l = floatNum(math.Mod(l.asFloat(), r.asFloat()))
			} else {
				l = intNum(l.i % r.i)
			}
		}
	}
	return l
}

func (e *exprEval) unary() number {
	e.skipSpaces()
	switch op := e.peek(0); op {
	case '-', '+', '~', '!':
		e.head++
		n := e.unary()
		if e.err != nil {
			return n
		}
		switch op {
		case '-':
			if n.float {
				return floatNum(-n.f)
			}
			return intNum(-n.i)
		case '~':
			return intNum(^n.asInt())
		case '!':
			if n.float {
				if n.f == 0 {
					return floatNum(1)
				}
				return floatNum(0)
			}
			return boolNum(n.i == 0)
		}
		return n
	}
	return e.paren()
}

func (e *exprEval) paren() number {
	e.skipSpaces()
	if e.peek(0) != '(' {
		return e.element()
	}
	e.head++
	n := e.expr()
	if e.err != nil {
		return n
	}
	e.skipSpaces()
	if e.peek(0) != ')' {
		e.err = ErrExprSyntax
		return n
	}
	e.head++
	return n
}

// element reads a numeric literal: digits with at most one decimal point.
func (e *exprEval) element() number {
	start := e.head
	dot := false
	for e.head < len(e.code) {
		c := e.code[e.head]
		if c == '.' && !dot && e.head > start {
			dot = true
		} else if !isDigit(c) {
			break
		}
		e.head++
	}
	if e.head == start {
		e.err = errInvalidExpr
		return intNum(1)
	}
	text := e.code[start:e.head]
	if dot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			e.err = errInvalidExpr
			return intNum(1)
		}
		return floatNum(f)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(text, 64)
		return floatNum(f)
	}
	return intNum(n)
}
