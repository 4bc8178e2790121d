package lil

import (
	"bytes"
	"testing"
)

func newTestInterp(t *testing.T) (*Interp, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	interp, err := NewInterp(Config{Stdout: &out})
	if err != nil {
		t.Fatalf("NewInterp: %v", err)
	}
	return interp, &out
}

func mustEval(t *testing.T, interp *Interp, code string) string {
	t.Helper()
	v, err := interp.Eval(code)
	if err != nil {
		t.Fatalf("eval %q: %v", code, err)
	}
	return v.String()
}

func evalString(t *testing.T, code string) string {
	t.Helper()
	interp, _ := newTestInterp(t)
	return mustEval(t, interp, code)
}
