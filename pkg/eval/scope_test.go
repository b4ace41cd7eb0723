package eval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScope_ExtendAndLookup(t *testing.T) {
	base := EmptyScope.Extend([]string{"x", "y"}, []Value{Num(1), Str("a")})
	extended := base.Extend([]string{"x", "z"}, []Value{Num(2), Bool(false)})

	for _, test := range []struct {
		sc     Scope
		name   string
		want   Value
		wantOK bool
	}{
		{base, "x", Num(1), true},
		{base, "y", Str("a"), true},
		{base, "z", nil, false},
		{extended, "x", Num(2), true},
		{extended, "y", Str("a"), true},
		{extended, "z", Bool(false), true},
	} {
		v, ok := test.sc.Lookup(test.name)
		if v != test.want || ok != test.wantOK {
			t.Errorf("Lookup(%q) -> (%v, %v), want (%v, %v)",
				test.name, v, ok, test.want, test.wantOK)
		}
	}
	if base.Len() != 2 || extended.Len() != 3 {
		t.Errorf("got lengths %d and %d, want 2 and 3", base.Len(), extended.Len())
	}
}

func TestScope_DuplicateNamesBindLeftToRight(t *testing.T) {
	sc := EmptyScope.Extend([]string{"x", "x"}, []Value{Num(1), Num(2)})
	if v, _ := sc.Lookup("x"); v != Num(2) {
		t.Errorf("x -> %v, want 2", v)
	}
}

func TestScope_ZeroValueIsEmpty(t *testing.T) {
	var sc Scope
	if _, ok := sc.Lookup("x"); ok {
		t.Errorf("zero Scope has a binding for x")
	}
	if sc.Len() != 0 {
		t.Errorf("zero Scope has length %d", sc.Len())
	}
	sc = sc.Extend([]string{"x"}, []Value{Num(1)})
	if v, ok := sc.Lookup("x"); !ok || v != Num(1) {
		t.Errorf("x -> %v, %v; want 1", v, ok)
	}
}

func TestScope_Names(t *testing.T) {
	sc := EmptyScope.Extend([]string{"b", "a", "c", "a"}, []Value{Num(1), Num(2), Num(3), Num(4)})
	if diff := cmp.Diff([]string{"a", "b", "c"}, sc.Names()); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}
}

func TestScope_ExtendPanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Extend did not panic")
		}
	}()
	EmptyScope.Extend([]string{"x"}, nil)
}
