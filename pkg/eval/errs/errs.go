// Package errs declares the errors raised during evaluation.
package errs

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrType is matched by [errors.Is] against both [TypeError] and
// [NotCallable].
var ErrType = errors.New("type error")

// UnboundVariable is raised when an identifier has no binding.
type UnboundVariable struct {
	Name string
}

func (e UnboundVariable) Error() string {
	return "unbound variable: " + e.Name
}

// TypeError is raised when a value has the wrong kind for the place it is
// used in.
type TypeError struct {
	What   string
	Want   string
	Actual string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("type error: %s must be %s, but is %s", e.What, e.Want, e.Actual)
}

// Is reports whether target is ErrType.
func (e TypeError) Is(target error) bool { return target == ErrType }

// NotCallable is raised when the callee of an application is neither a
// closure nor a primitive. It is a kind of type error.
type NotCallable struct {
	Kind string
}

func (e NotCallable) Error() string {
	return "type error: " + e.Kind + " is not callable"
}

// Is reports whether target is ErrType.
func (e NotCallable) Is(target error) bool { return target == ErrType }

// ArityMismatch is raised when a function is called with the wrong number of
// arguments.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// Arithmetic is raised by a primitive operation that cannot produce a
// result, like a division by zero.
type Arithmetic struct {
	Op      string
	Message string
	// Cause is the underlying failure of the primitive, if any.
	Cause error
}

func (e Arithmetic) Error() string {
	return "arithmetic error: " + e.Op + ": " + e.Message
}

func (e Arithmetic) Unwrap() error { return e.Cause }

// StackOverflow is raised when evaluation nests deeper than the configured
// limit.
type StackOverflow struct {
	Depth int
}

func (e StackOverflow) Error() string {
	return fmt.Sprintf("stack overflow: evaluation exceeded depth %d", e.Depth)
}
