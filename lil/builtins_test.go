package lil

import (
	"strings"
	"testing"
)

func TestListCommands(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{`list a {b c} ""`, "a {b c} {}"},
		{"count {a b {c d}}", "3"},
		{"count", "0"},
		{"index {a b c} 1", "b"},
		{"index {a b c} 7", ""},
		{"indexof {a b c} c", "2"},
		{"indexof {a b c} z", ""},
		{"set l {}; append l x; append l {y z}; set l", "x {y z}"},
		{"append global gl 1; append global gl 2; set gl", "1 2"},
		{"slice {a b c d} 1 3", "b c"},
		{"slice {a b c d} 2", "c d"},
		{"slice {a b c d} 3 1", ""},
		{"filter {1 2 3 4} {$x > 2}", "3 4"},
		{"filter n {5 6 7} {$n != 6}", "5 7"},
		{"foreach x {a b c} { quote $x$x }", "aa bb cc"},
		{"foreach {a b} { quote $i }", "a b"},
		{"foreach x {1 2 3} { if {$x != 2} { quote $x } }", "1 3"},
		{"lmap {1 2} p q; quote $p $q", "1 2"},
		{"split a,b,,c ,", "a b {} c"},
		{"split {a b}", "a b"},
		{"concat {a b} {c}", "a bc"},
		{"set v 3; subst {v=$v}", "v=3"},
		{"quote a {b c} d", "a b c d"},
	}
	for _, tc := range cases {
		if got := evalString(t, tc.code); got != tc.want {
			t.Fatalf("%q = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestStringCommands(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"length abc", "3"},
		{"length ab cd", "5"},
		{"substr hello 1 3", "el"},
		{"substr hello 2", "llo"},
		{"substr hello 9", ""},
		{"strpos hello l", "2"},
		{"strpos hello l 3", "3"},
		{"strpos hello z", "-1"},
		{`trim "  hi  "`, "hi"},
		{`ltrim "  hi  "`, "hi  "},
		{"rtrim xxhixx x", "xxhi"},
		{"charat abc 1", "b"},
		{"charat abc 5", ""},
		{"codeat A 0", "65"},
		{"char 65", "A"},
		{"strcmp a b", "-1"},
		{"streq a a", "1"},
		{"streq a b", "0"},
		{"repstr aXbX X -", "a-b-"},
	}
	for _, tc := range cases {
		if got := evalString(t, tc.code); got != tc.want {
			t.Fatalf("%q = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestControlCommands(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"set s 0; for {set i 0} {$i < 5} {inc i} {set s [expr $s + $i]}; set s", "10"},
		{"set n 0; while {$n < 3} {inc n}; set n", "3"},
		{"set n 5; while not {$n == 0} {dec n}; set n", "0"},
		{"if not {0} {quote yes} {quote no}", "yes"},
		{"if {0} {quote yes} {quote no}", "no"},
		{"if {0} {quote yes}", ""},
		{"set i 0; inc i", "1"},
		{"set i 1.5; inc i 2", "3.5"},
		{"dec missing 2", "-2"},
		{"func f {} { foreach x {1 2 3} { if {$x == 2} { return found } } ; return none }; f", "found"},
		{"func f {} { while {1} { return out } }; f", "out"},
		{"func f {} { result partial; quote ignored }; f", "partial"},
		{"eval {set a 1} ; eval set b 2; quote $a $b", "1 2"},
		{"unusedname", "!!un!unusedname!000000000!nu!!"},
	}
	for _, tc := range cases {
		if got := evalString(t, tc.code); got != tc.want {
			t.Fatalf("%q = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestRandIsAFraction(t *testing.T) {
	v, ok := NewString(evalString(t, "rand")).Float()
	if !ok || v < 0 || v >= 1 {
		t.Fatalf("rand = %v", v)
	}
}

func TestArgumentErrorsDoNotAbort(t *testing.T) {
	interp, _ := newTestInterp(t)
	got := mustEval(t, interp, "index; slice; set r ok")
	if got != "ok" {
		t.Fatalf("got %q", got)
	}
	if interp.Stats().ArgErrors != 2 {
		t.Fatalf("arg errors = %d", interp.Stats().ArgErrors)
	}
}

func TestReadStoreSourceThroughCallbacks(t *testing.T) {
	interp, _ := newTestInterp(t)
	files := map[string]string{"lib.lil": "func twice {x} { expr $x * 2 }"}
	interp.SetCallbacks(Callbacks{
		Read: func(_ *Interp, name string) (string, error) {
			return files[name], nil
		},
		Store: func(_ *Interp, name, data string) error {
			files[name] = data
			return nil
		},
	})
	if got := mustEval(t, interp, "source lib.lil; twice 21"); got != "42" {
		t.Fatalf("source = %q", got)
	}
	mustEval(t, interp, "store out.txt {some data}")
	if files["out.txt"] != "some data" {
		t.Fatalf("store wrote %q", files["out.txt"])
	}
	if got := mustEval(t, interp, "read out.txt"); !strings.HasPrefix(got, "some") {
		t.Fatalf("read = %q", got)
	}
}
