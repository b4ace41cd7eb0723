package eval

import (
	"src.zlang.sh/pkg/ast"
	"src.zlang.sh/pkg/bridge"
)

// Value is a runtime value. The set of value types is closed: Num, Str, Bool,
// *Closure and *Primitive.
type Value interface {
	// Kind returns the name of the value's kind.
	Kind() string
	isValue()
}

// Num is a number.
type Num float64

// Str is a string.
type Str string

// Bool is a boolean.
type Bool bool

// Closure is a user-defined function together with the scope it was defined
// in.
type Closure struct {
	Params   []string
	Body     ast.Expr
	Captured Scope
}

// PrimitiveArity is the number of arguments every primitive takes.
const PrimitiveArity = 2

// Primitive is a function provided by the bridge.
type Primitive struct {
	Name string
	Op   bridge.Op
}

func (Num) Kind() string        { return "number" }
func (Str) Kind() string        { return "string" }
func (Bool) Kind() string       { return "bool" }
func (*Closure) Kind() string   { return "fn" }
func (*Primitive) Kind() string { return "primitive" }

func (Num) isValue()        {}
func (Str) isValue()        {}
func (Bool) isValue()       {}
func (*Closure) isValue()   {}
func (*Primitive) isValue() {}

// Kind returns the kind of v.
func Kind(v Value) string { return v.Kind() }

// Returns what the bridge sees of v.
func payload(v Value) any {
	switch v := v.(type) {
	case Num:
		return float64(v)
	case Str:
		return string(v)
	case Bool:
		return bool(v)
	}
	return v
}
