package lil

import "testing"

func TestValueBool(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"0":     false,
		"000":   false,
		"0.0":   false,
		".":     false,
		"0.0.0": true,
		"1":     true,
		"abc":   true,
		" 0":    true,
		"-0":    true,
	}
	for text, want := range cases {
		if got := NewString(text).Bool(); got != want {
			t.Fatalf("Bool(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestValueNumbers(t *testing.T) {
	if n, ok := NewString(" 42 ").Int(); !ok || n != 42 {
		t.Fatalf("Int(42) = %d, %v", n, ok)
	}
	if n, ok := NewString("3.9").Int(); !ok || n != 3 {
		t.Fatalf("Int(3.9) = %d, %v", n, ok)
	}
	if _, ok := NewString("abc").Int(); ok {
		t.Fatalf("expected Int(abc) to fail")
	}
	if f, ok := NewString("2.5").Float(); !ok || f != 2.5 {
		t.Fatalf("Float(2.5) = %v, %v", f, ok)
	}
	if _, ok := Empty().Float(); ok {
		t.Fatalf("expected Float of empty value to fail")
	}
	if got := NewString("x").IntOr(7); got != 7 {
		t.Fatalf("IntOr fallback = %d", got)
	}
}

func TestValueFormatting(t *testing.T) {
	cases := []struct {
		val  *Value
		want string
	}{
		{NewInt(-12), "-12"},
		{NewFloat(2.5), "2.5"},
		{NewFloat(2), "2"},
		{NewFloat(-0.25), "-0.25"},
		{NewBool(true), "1"},
		{NewBool(false), "0"},
	}
	for _, tc := range cases {
		if got := tc.val.String(); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestValueCloneIsIndependent(t *testing.T) {
	orig := NewString("abc")
	clone := orig.Clone()
	clone.AppendString("def")
	orig.AppendByte('!')
	if orig.String() != "abc!" || clone.String() != "abcdef" {
		t.Fatalf("clone shares storage: orig=%q clone=%q", orig, clone)
	}

	var nilVal *Value
	if nilVal.String() != "" || nilVal.Len() != 0 {
		t.Fatalf("nil value should read as empty")
	}
	if c := nilVal.Clone(); c == nil || c.Len() != 0 {
		t.Fatalf("cloning nil should give an empty value")
	}
}
