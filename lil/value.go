package lil

import (
	"strconv"
	"strings"
)

// Value is the universal LIL datum: a mutable byte string. Numbers, lists and
// code are all interpretations of the same text, parsed on demand.
//
// A nil *Value reads as the empty string. Mutating methods require a non-nil
// receiver.
type Value struct {
	buf []byte
}

// Empty returns a new empty value.
func Empty() *Value {
	return &Value{}
}

func NewString(s string) *Value {
	return &Value{buf: []byte(s)}
}

// NewBytes copies b into a new value.
func NewBytes(b []byte) *Value {
	return &Value{buf: append([]byte(nil), b...)}
}

func NewInt(n int64) *Value {
	return &Value{buf: strconv.AppendInt(nil, n, 10)}
}

func NewFloat(f float64) *Value {
	return &Value{buf: strconv.AppendFloat(nil, f, 'f', -1, 64)}
}

// NewBool returns "1" for true and "0" for false.
func NewBool(b bool) *Value {
	if b {
		return NewString("1")
	}
	return NewString("0")
}

func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return string(v.buf)
}

// Bytes exposes the underlying buffer. Callers must not modify it.
func (v *Value) Bytes() []byte {
	if v == nil {
		return nil
	}
	return v.buf
}

func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	return len(v.buf)
}

func (v *Value) IsEmpty() bool {
	return v.Len() == 0
}

// Clone returns a deep copy. Cloning nil yields an empty value.
func (v *Value) Clone() *Value {
	if v == nil {
		return Empty()
	}
	return NewBytes(v.buf)
}

func (v *Value) AppendString(s string) {
	v.buf = append(v.buf, s...)
}

func (v *Value) AppendByte(c byte) {
	v.buf = append(v.buf, c)
}

func (v *Value) AppendValue(o *Value) {
	if o == nil {
		return
	}
	v.buf = append(v.buf, o.buf...)
}

// Equal reports whether both values hold the same text.
func (v *Value) Equal(o *Value) bool {
	return v.String() == o.String()
}

// Int interprets the value as an integer. Decimal text is truncated toward
// zero. The boolean is false when the text is not numeric.
func (v *Value) Int() (int64, bool) {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// Float interprets the value as a floating point number.
func (v *Value) Float() (float64, bool) {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IntOr is Int with a fallback for non-numeric text.
func (v *Value) IntOr(def int64) int64 {
	if n, ok := v.Int(); ok {
		return n
	}
	return def
}

// Bool is false for the empty string and for text made only of zeros with at
// most one decimal point ("0", "000", "0.0"). Everything else is true.
func (v *Value) Bool() bool {
	if v.Len() == 0 {
		return false
	}
	dots := 0
	for _, c := range v.buf {
		switch c {
		case '0':
		case '.':
			dots++
			if dots > 1 {
				return true
			}
		default:
			return true
		}
	}
	return false
}
