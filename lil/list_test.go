package lil

import "testing"

func TestListRoundTrip(t *testing.T) {
	interp, _ := newTestInterp(t)
	elems := []string{"plain", "a b", "", "x{y}z", "}{", "$v", "[cmd]", `back\slash`, "semi;colon", "quote\"d", "line\nbreak"}

	list := NewList()
	for _, e := range elems {
		list.Append(NewString(e))
	}
	encoded := list.ToValue(true)
	back := interp.SubstToList(encoded)
	if interp.Err() != nil {
		t.Fatalf("unexpected error: %v", interp.Err())
	}
	if back.Len() != len(elems) {
		t.Fatalf("round trip of %q gave %d elements, want %d: %q", encoded, back.Len(), len(elems), back.Strings())
	}
	for i, e := range elems {
		if got := back.At(i).String(); got != e {
			t.Fatalf("element %d: got %q, want %q (encoded %q)", i, got, e, encoded)
		}
	}
}

func TestListEscaping(t *testing.T) {
	list := NewList(NewString("a"), NewString("b c"), NewString(""), NewString("{x}"))
	if got := list.ToValue(true).String(); got != `a {b c} {} {}"\o"{x}"\c"{}` {
		t.Fatalf("escaped list = %q", got)
	}
	if got := list.ToValue(false).String(); got != "a b c  {x}" {
		t.Fatalf("unescaped list = %q", got)
	}
}

func TestListAccessors(t *testing.T) {
	list := NewList(NewString("a"), nil, NewString("c"))
	if list.Len() != 3 {
		t.Fatalf("len = %d", list.Len())
	}
	if list.At(1) == nil || list.At(1).Len() != 0 {
		t.Fatalf("nil append should store an empty value")
	}
	if list.At(3) != nil || list.At(-1) != nil {
		t.Fatalf("out of range access should return nil")
	}
	if tail := list.Tail(1); len(tail) != 2 || tail[1].String() != "c" {
		t.Fatalf("tail = %v", tail)
	}
	clone := list.Clone()
	clone.At(0).AppendString("!")
	if list.At(0).String() != "a" {
		t.Fatalf("clone shares values")
	}
}

func TestSubstToListPerformsSubstitution(t *testing.T) {
	interp, _ := newTestInterp(t)
	mustEval(t, interp, "set v 5")
	list := interp.SubstToList(NewString("a $v\n[quote b c];d"))
	want := []string{"a", "5", "b c", "d"}
	if list.Len() != len(want) {
		t.Fatalf("got %q", list.Strings())
	}
	for i, w := range want {
		if list.At(i).String() != w {
			t.Fatalf("element %d = %q, want %q", i, list.At(i), w)
		}
	}
}
