package lil

import (
	"errors"
	"testing"
)

func TestCheckSyntax(t *testing.T) {
	valid := []string{
		"",
		"set a 1",
		"func f {a} {\n\treturn [expr $a + 1]\n}",
		`print "a [quote {x}] ${b}"`,
		"# comment with { brace\nset a 1",
		"## block\n{ ##\nset a 1",
		"set a \\\n 1",
		`set a a\{b}`,
		`print "x\"y"`,
	}
	for _, code := range valid {
		if err := CheckSyntax(code); err != nil {
			t.Fatalf("CheckSyntax(%q) = %v", code, err)
		}
	}

	invalid := []struct {
		code       string
		incomplete bool
		line, col  int
	}{
		{"set a {b", true, 1, 7},
		{"func f {} {\n  print 1\n", true, 1, 11},
		{"set a [quote b", true, 1, 7},
		{`print "abc`, true, 1, 7},
		{"## open", true, 1, 1},
		{"set a }", false, 1, 7},
		{"set a ]", false, 1, 7},
		{"set a [quote }]", false, 1, 14},
		{`set a a\}`, false, 1, 9},
		{`set a \}`, false, 1, 8},
	}
	for _, tc := range invalid {
		err := CheckSyntax(tc.code)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("CheckSyntax(%q): expected SyntaxError, got %v", tc.code, err)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("CheckSyntax(%q): expected ErrSyntax", tc.code)
		}
		if se.Incomplete != tc.incomplete || se.Line != tc.line || se.Column != tc.col {
			t.Fatalf("CheckSyntax(%q) = %+v", tc.code, se)
		}
		if Incomplete(tc.code) != tc.incomplete {
			t.Fatalf("Incomplete(%q) = %v", tc.code, !tc.incomplete)
		}
	}
}

func TestCheckSyntaxAgreesWithEval(t *testing.T) {
	cases := []string{`set a a\}`, `set a \}`, `set a a\{b}`, "set a \\\n 1", `set a x\y`}
	for _, code := range cases {
		checkErr := CheckSyntax(code)
		_, evalErr := MustNewInterp(Config{}).Eval(code)
		if (checkErr == nil) != (evalErr == nil) {
			t.Fatalf("%q: CheckSyntax = %v, Eval = %v", code, checkErr, evalErr)
		}
	}
}
