package lil

import (
	"errors"
	"testing"
)

func TestEvalExprValues(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"1 + (2*3)", "7"},
		{"1+(2*3)", "7"},
		{"1+~(2*3)", "-6"},
		{"1*!(2+2)", "0"},
		{"5/2", "2.5"},
		{`5\2`, "2"},
		{"1 +~*(2*3)", "1"},
		{"", "0"},
		{"abc", "1"},
		{"7 % 3", "1"},
		{"7.5 % 2", "1.5"},
		{`7.9 \ 2`, "3"},
		{"10 / 4", "2.5"},
		{"2 * 1.5", "3"},
		{"-3 + 1", "-2"},
		{"1 << 4", "16"},
		{"256 >> 2", "64"},
		{"3 < 5", "1"},
		{"3 >= 5", "0"},
		{"5 <= 5", "1"},
		{"2 == 2.0", "1"},
		{"1 != 2", "1"},
		{"1 && 0", "0"},
		{"0 || 2", "1"},
		{"6 & 3", "2"},
		{"6 | 3", "7"},
		{"1 + 2 * 3 - 4", "3"},
		{"!0.0", "1"},
		{"1 < 2 == 1", "1"},
	}
	for _, tc := range cases {
		interp, _ := newTestInterp(t)
		got := interp.EvalExpr(NewString(tc.expr))
		if err := interp.Err(); err != nil {
			t.Fatalf("expr %q: unexpected error %v", tc.expr, err)
		}
		if got.String() != tc.want {
			t.Fatalf("expr %q = %q, want %q", tc.expr, got, tc.want)
		}
	}
}

func TestEvalExprErrors(t *testing.T) {
	cases := []struct {
		expr string
		want error
	}{
		{"1/0", ErrDivisionByZero},
		{`4 \ 0`, ErrDivisionByZero},
		{"1 % 0", ErrDivisionByZero},
		{"1.5 / 0.0", ErrDivisionByZero},
		{"(1 + 2", ErrExprSyntax},
		{"1 << -1", ErrInvalidType},
	}
	for _, tc := range cases {
		interp, _ := newTestInterp(t)
		if got := interp.EvalExpr(NewString(tc.expr)); got != nil {
			t.Fatalf("expr %q: expected nil result, got %q", tc.expr, got)
		}
		err := interp.Err()
		if err == nil || !errors.Is(err, tc.want) {
			t.Fatalf("expr %q: expected %v, got %v", tc.expr, tc.want, err)
		}
	}
}

func TestExprCommand(t *testing.T) {
	interp, _ := newTestInterp(t)
	if got := mustEval(t, interp, "set a 4; expr $a * 2 + 1"); got != "9" {
		t.Fatalf("got %q", got)
	}
	if got := mustEval(t, interp, "expr {$a / 8}"); got != "0.5" {
		t.Fatalf("braced expression = %q", got)
	}

	_, err := interp.Eval("expr 1 / 0")
	if err == nil || err.Error() == "" {
		t.Fatalf("expected division error")
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) || scriptErr.Message != "division by zero in expression" {
		t.Fatalf("unexpected error %v", err)
	}
}
