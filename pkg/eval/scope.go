package eval

import (
	"sort"

	"github.com/xiaq/persistent/hash"
	"github.com/xiaq/persistent/hashmap"
)

// Scope is an immutable mapping from names to values. Extending a scope
// returns a new one and leaves the original untouched; the two share
// structure. The zero value is an empty scope.
type Scope struct {
	m hashmap.Map
}

// EmptyScope has no bindings.
var EmptyScope = Scope{newMap()}

func newMap() hashmap.Map {
	return hashmap.New(
		func(a, b any) bool { return a.(string) == b.(string) },
		func(k any) uint32 { return hash.String(k.(string)) })
}

func (s Scope) get() hashmap.Map {
	if s.m == nil {
		return EmptyScope.m
	}
	return s.m
}

// Lookup finds the binding of name. The second return value reports whether
// the binding exists.
func (s Scope) Lookup(name string) (Value, bool) {
	v, ok := s.get().Index(name)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Extend returns a scope that binds names[i] to values[i] on top of s. Names
// are bound left to right, so a later duplicate wins. It panics if the two
// slices have different lengths.
func (s Scope) Extend(names []string, values []Value) Scope {
	if len(names) != len(values) {
		panic("eval: Scope.Extend called with mismatched names and values")
	}
	m := s.get()
	for i, name := range names {
		m = m.Assoc(name, values[i])
	}
	return Scope{m}
}

// Len returns the number of distinct names bound in s.
func (s Scope) Len() int { return s.get().Len() }

// Names returns all names bound in s, sorted.
func (s Scope) Names() []string {
	names := make([]string, 0, s.Len())
	for it := s.get().Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		names = append(names, k.(string))
	}
	sort.Strings(names)
	return names
}
