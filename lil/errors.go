package lil

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadArgs is returned by commands called with the wrong arguments. It
	// is counted in Stats and yields an empty result without aborting.
	ErrBadArgs        = errors.New("bad arguments")
	ErrUnknownCommand = errors.New("unknown function")
	ErrSyntax         = errors.New("syntax error")
	ErrDivisionByZero = errors.New("division by zero in expression")
	ErrInvalidType    = errors.New("mixing invalid types in expression")
	ErrExprSyntax     = errors.New("expression syntax error")
	ErrMaxParseDepth  = errors.New("maximum parse depth exceeded")
	ErrCatcherLimit   = errors.New("catcher limit reached")
)

// ScriptError is the interpreter's sticky error. Pos is a byte offset into
// the top-level code passed to Eval.
type ScriptError struct {
	Message   string
	Pos       int
	Line      int
	Column    int
	CodeFrame string
	Cause     error
}

func (e *ScriptError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "error at %d:%d: %s", e.Line, e.Column, e.Message)
	} else {
		fmt.Fprintf(&b, "error at %d: %s", e.Pos, e.Message)
	}
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// FatalError reports an abort that scripts cannot catch, such as runaway
// recursion. It is only ever returned from the outermost Eval.
type FatalError struct {
	Message string
	Depth   int
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %s (depth %d)", e.Message, e.Depth)
}

func (e *FatalError) Unwrap() error {
	return ErrMaxParseDepth
}

// abortSignal carries a FatalError through panics to the Eval boundary.
type abortSignal struct {
	err *FatalError
}

// errorOffset maps a position in the innermost parse buffer to an offset in
// the top-level buffer. Positions inside nested buffers resolve to the start
// of the top-level command that is running.
func (interp *Interp) errorOffset(p *parser, pos int) int {
	if p != nil && p.root {
		return pos
	}
	if len(interp.frames) > 0 {
		return interp.frames[0].cmdStart
	}
	return 0
}

func (interp *Interp) fail(p *parser, pos int, cause error, msg string) {
	if interp.err != nil {
		return
	}
	off := interp.errorOffset(p, pos)
	line, col := lineColumn(interp.rootCode, off)
	interp.err = &ScriptError{
		Message:   msg,
		Pos:       off,
		Line:      line,
		Column:    col,
		CodeFrame: formatCodeFrame(interp.rootCode, line, col),
		Cause:     cause,
	}
	interp.logger.Debug("script error", "message", msg, "pos", off)
}

func (interp *Interp) failErr(err error) {
	p := interp.innermost()
	pos := 0
	if p != nil {
		pos = p.cmdStart
	}
	interp.fail(p, pos, err, err.Error())
}

// SetError raises a script error at the command currently running. The
// first error wins until it is cleared.
func (interp *Interp) SetError(msg string) {
	p := interp.innermost()
	pos := 0
	if p != nil {
		pos = p.cmdStart
	}
	interp.fail(p, pos, nil, msg)
}

// SetErrorAt raises a script error at pos, a byte offset in the code being
// parsed by the innermost parse.
func (interp *Interp) SetErrorAt(pos int, msg string) {
	interp.fail(interp.innermost(), pos, nil, msg)
}

// Err returns the pending script error, or nil.
func (interp *Interp) Err() *ScriptError {
	return interp.err
}

func (interp *Interp) HasError() bool {
	return interp.err != nil
}

func (interp *Interp) ClearError() {
	interp.err = nil
}
