package errs

import (
	"errors"
	"io"
	"testing"
)

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{
		UnboundVariable{Name: "x"},
		"unbound variable: x",
	},
	{
		TypeError{What: "condition", Want: "bool", Actual: "number"},
		"type error: condition must be bool, but is number",
	},
	{
		NotCallable{Kind: "string"},
		"type error: string is not callable",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: 2, Actual: 1},
		"arity mismatch: arguments must be 2 values, but is 1 value",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 1, ValidHigh: 1, Actual: 0},
		"arity mismatch: arguments must be 1 value, but is 0 values",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: -1, Actual: 1},
		"arity mismatch: arguments must be 2 or more values, but is 1 value",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 1, ValidHigh: 3, Actual: 4},
		"arity mismatch: arguments must be 1 to 3 values, but is 4 values",
	},
	{
		Arithmetic{Op: "/", Message: "division by zero"},
		"arithmetic error: /: division by zero",
	},
	{
		StackOverflow{Depth: 100},
		"stack overflow: evaluation exceeded depth 100",
	},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %v, want %v", gotMsg, test.wantMsg)
		}
	}
}

func TestErrType(t *testing.T) {
	if !errors.Is(TypeError{}, ErrType) {
		t.Errorf("TypeError is not ErrType")
	}
	if !errors.Is(NotCallable{Kind: "number"}, ErrType) {
		t.Errorf("NotCallable is not ErrType")
	}
	if errors.Is(UnboundVariable{Name: "x"}, ErrType) {
		t.Errorf("UnboundVariable is ErrType")
	}
}

func TestArithmetic_Unwrap(t *testing.T) {
	err := Arithmetic{Op: "+", Message: "bridge failed", Cause: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Arithmetic does not unwrap to its cause")
	}
}
