package lil

import (
	"errors"
	"strings"
	"testing"
)

func TestQuotedWords(t *testing.T) {
	interp, _ := newTestInterp(t)
	if got := mustEval(t, interp, `set a "x\ty\o\c"`); got != "x\ty{}" {
		t.Fatalf("escapes = %q", got)
	}
	if got := mustEval(t, interp, `set a 'it"s'`); got != `it"s` {
		t.Fatalf("single quotes = %q", got)
	}
	if got := mustEval(t, interp, `set n 3; set a "n=$n [expr $n * 2]"`); got != "n=3 6" {
		t.Fatalf("substitution in quotes = %q", got)
	}
	if got := mustEval(t, interp, `set a {no $subst [here]}`); got != "no $subst [here]" {
		t.Fatalf("braces = %q", got)
	}
}

func TestWordConcatenation(t *testing.T) {
	if got := evalString(t, "set b 2; set a x$b{y}[quote z]"); got != "x2yz" {
		t.Fatalf("got %q", got)
	}
}

func TestCommentsAndContinuations(t *testing.T) {
	interp, _ := newTestInterp(t)
	code := "# leading comment\n" +
		"set a 1 ;# trailing\n" +
		"## block\ncomment ##\n" +
		"set b \\\n   2\n" +
		"### single line\n" +
		"set c 3"
	if got := mustEval(t, interp, code); got != "3" {
		t.Fatalf("result = %q", got)
	}
	if got := mustEval(t, interp, "quote $a $b $c"); got != "1 2 3" {
		t.Fatalf("vars = %q", got)
	}
}

func TestNestedBrackets(t *testing.T) {
	if got := evalString(t, "set a [quote [quote x] y]"); got != "x y" {
		t.Fatalf("got %q", got)
	}
}

func TestSyntaxErrorsCarryPosition(t *testing.T) {
	cases := []struct {
		code string
		pos  int
		msg  string
	}{
		{"set a {abc", 6, "unterminated brace"},
		{"set a 1\nset b [quote x", 14, "unterminated bracket"},
		{`print "abc`, 6, "unterminated quoted string"},
		{"set a }", 6, "unexpected '}'"},
		{"## open comment", 0, "unterminated comment"},
	}
	for _, tc := range cases {
		interp, _ := newTestInterp(t)
		_, err := interp.Eval(tc.code)
		var scriptErr *ScriptError
		if !errors.As(err, &scriptErr) {
			t.Fatalf("%q: expected ScriptError, got %v", tc.code, err)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q: expected ErrSyntax, got %v", tc.code, err)
		}
		if scriptErr.Pos != tc.pos || scriptErr.Message != tc.msg {
			t.Fatalf("%q: got %q at %d, want %q at %d", tc.code, scriptErr.Message, scriptErr.Pos, tc.msg, tc.pos)
		}
	}
}

func TestErrorPositionAndCodeFrame(t *testing.T) {
	interp, _ := newTestInterp(t)
	_, err := interp.Eval("set a 1\nnosuch 2")
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected ScriptError, got %v", err)
	}
	if scriptErr.Pos != 8 || scriptErr.Line != 2 || scriptErr.Column != 1 {
		t.Fatalf("position = %d (%d:%d)", scriptErr.Pos, scriptErr.Line, scriptErr.Column)
	}
	if !strings.Contains(scriptErr.CodeFrame, "2 | nosuch 2") {
		t.Fatalf("code frame missing source line:\n%s", scriptErr.CodeFrame)
	}

	_, err = interp.Eval("set a 1; set b [nosuch]")
	if !errors.As(err, &scriptErr) || scriptErr.Pos != 9 {
		t.Fatalf("nested error should point at the enclosing command, got %v", err)
	}
}

func TestDollarPrefix(t *testing.T) {
	interp, _ := newTestInterp(t)
	if got := mustEval(t, interp, "reflect dollar-prefix {quote got:}"); got != "set " {
		t.Fatalf("old prefix = %q", got)
	}
	if got := mustEval(t, interp, "set r $foo; reflect dollar-prefix {set }; set r"); got != "got:foo" {
		t.Fatalf("custom prefix result = %q", got)
	}
	if interp.DollarPrefix() != "set " {
		t.Fatalf("prefix not restored: %q", interp.DollarPrefix())
	}
}

func TestDollarWithBracesAndSpaces(t *testing.T) {
	interp, _ := newTestInterp(t)
	mustEval(t, interp, "set {odd name} 7")
	if got := mustEval(t, interp, "set r ${odd name}"); got != "7" {
		t.Fatalf("got %q", got)
	}
}
