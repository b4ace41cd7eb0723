// Package bridge defines the primitive operations the evaluator's base scope
// is built from, and a pure Go implementation of them.
package bridge

import (
	"fmt"
	"sort"
	"strings"

	"src.zlang.sh/pkg/eval/errs"
)

// Op is a binary primitive operation. The arguments are the payloads of the
// operand values: float64 for numbers, string for strings, bool for booleans,
// and the value itself for anything else. The result must be a float64 or a
// bool.
type Op func(x, y any) (any, error)

// Table maps names to primitive operations.
type Table map[string]Op

// Required lists the names every Table must provide.
var Required = []string{"+", "-", "*", "/", "<=", "equal?"}

// MissingOpsError is returned by Check when some required names are absent.
type MissingOpsError struct {
	Names []string
}

func (e *MissingOpsError) Error() string {
	return "bridge is missing required operations: " + strings.Join(e.Names, ", ")
}

// Check returns a *MissingOpsError if t lacks any of the required names, or
// one of them is bound to nil.
func (t Table) Check() error {
	var missing []string
	for _, name := range Required {
		if t[name] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingOpsError{missing}
	}
	return nil
}

// Names returns the names in t, sorted.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Native returns a Table implementing the required operations in Go.
func Native() Table {
	return Table{
		"+": arith("+", func(x, y float64) float64 { return x + y }),
		"-": arith("-", func(x, y float64) float64 { return x - y }),
		"*": arith("*", func(x, y float64) float64 { return x * y }),
		"/": func(x, y any) (any, error) {
			a, b, err := Operands("/", x, y)
			if err != nil {
				return nil, err
			}
			if b == 0 {
				return nil, errs.Arithmetic{Op: "/", Message: "division by zero"}
			}
			return a / b, nil
		},
		"<=":     compare("<=", func(x, y float64) bool { return x <= y }),
		"equal?": compare("equal?", func(x, y float64) bool { return x == y }),
	}
}

func arith(name string, f func(x, y float64) float64) Op {
	return func(x, y any) (any, error) {
		a, b, err := Operands(name, x, y)
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	}
}

func compare(name string, f func(x, y float64) bool) Op {
	return func(x, y any) (any, error) {
		a, b, err := Operands(name, x, y)
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	}
}

// Operands checks that both payloads are numbers, and returns them. Otherwise
// it returns an errs.TypeError naming the first offending operand.
func Operands(name string, x, y any) (float64, float64, error) {
	a, ok := x.(float64)
	if !ok {
		return 0, 0, operandError(name, 1, x)
	}
	b, ok := y.(float64)
	if !ok {
		return 0, 0, operandError(name, 2, y)
	}
	return a, b, nil
}

func operandError(name string, i int, v any) error {
	return errs.TypeError{
		What:   fmt.Sprintf("operand %d of %s", i, name),
		Want:   "number",
		Actual: Kind(v),
	}
}

// Kind returns the kind of a payload. Values that are not plain payloads
// report their own kind through a Kind method.
func Kind(v any) string {
	switch v := v.(type) {
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case interface{ Kind() string }:
		return v.Kind()
	}
	return fmt.Sprintf("%T", v)
}
