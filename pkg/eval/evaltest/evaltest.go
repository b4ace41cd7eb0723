// Package evaltest provides a framework for testing code in the text syntax.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("(+ 1 2)").Puts("3"),
//	    That("(f 1)").Throws(errs.UnboundVariable{Name: "f"}))
//
// To use an Evaler other than the default one, use the TestWith function.
package evaltest

import (
	"math"
	"reflect"
	"testing"

	"src.zlang.sh/pkg/bridge"
	"src.zlang.sh/pkg/eval"
	"src.zlang.sh/pkg/lit"
	"src.zlang.sh/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	name string
	code string
	tree any
	// Whether tree is used instead of code.
	isTree bool
	want   result
}

type result struct {
	// Set when the display form is checked.
	output *string
	// Set when the value is checked.
	value eval.Value
	// Set when the result is checked to be a number within
	// ApproximatelyThreshold.
	approx *float64
	err    error
}

// That returns a new Case that reads and evaluates the given code. The code
// must contain exactly one form.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "(+ 1 2)" evaluates to 3 reads:
//
//	That("(+ 1 2)").Puts("3")
func That(code string) Case {
	return Case{name: code, code: code}
}

// ThatTree returns a new Case that evaluates the given literal tree directly.
func ThatTree(name string, tree any) Case {
	return Case{name: name, tree: tree, isTree: true}
}

// Puts returns an altered Case that requires the result to have the given
// display form.
func (c Case) Puts(s string) Case {
	c.want.output = &s
	return c
}

// PutsValue returns an altered Case that requires the result to match the
// given value. Numbers are compared so that NaN matches NaN.
func (c Case) PutsValue(v eval.Value) Case {
	c.want.value = v
	return c
}

// PutsApproximately returns an altered Case that requires the result to be a
// number within ApproximatelyThreshold of f.
func (c Case) PutsApproximately(f float64) Case {
	c.want.approx = &f
	return c
}

// Throws returns an altered Case that requires evaluation to fail with the
// given error. The error supports special matcher values constructed by
// functions like ErrorWithMessage.
func (c Case) Throws(err error) Case {
	c.want.err = err
	return c
}

// DoesNotParse returns an altered Case that requires the code to fail reading
// or parsing.
func (c Case) DoesNotParse() Case {
	c.want.err = AnyParseError
	return c
}

// Test runs test cases with an Evaler using the native bridge.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWith(t, func() (*eval.Evaler, error) { return eval.NewEvaler(bridge.Native()) }, tests...)
}

// TestWith runs test cases. For each test case, a new Evaler is created with
// newEvaler.
func TestWith(t *testing.T, newEvaler func() (*eval.Evaler, error), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Helper()
			ev, err := newEvaler()
			if err != nil {
				t.Fatalf("create Evaler: %v", err)
			}
			v, err := evalCase(ev, tc)

			if !matchErr(tc.want.err, err) {
				t.Errorf("got error %T: %v", err, err)
				t.Errorf("want error %v", tc.want.err)
				return
			}
			if err != nil {
				return
			}
			if tc.want.output != nil {
				if got := eval.ToString(v); got != *tc.want.output {
					t.Errorf("got output %q, want %q", got, *tc.want.output)
				}
			}
			if tc.want.value != nil && !match(v, tc.want.value) {
				t.Errorf("got value %s, want %s", eval.Repr(v), eval.Repr(tc.want.value))
			}
			if tc.want.approx != nil {
				if n, ok := v.(eval.Num); !ok ||
					!matchFloat64(float64(n), *tc.want.approx, ApproximatelyThreshold) {
					t.Errorf("got value %s, want approximately %v", eval.Repr(v), *tc.want.approx)
				}
			}
		})
	}
}

func evalCase(ev *eval.Evaler, tc Case) (eval.Value, error) {
	if tc.isTree {
		return ev.RunValue(tc.tree)
	}
	tree, err := lit.Read(lit.Source{Name: "[test]", Code: tc.code})
	if err != nil {
		return nil, err
	}
	expr, err := parse.ParseTree(tree)
	if err != nil {
		return nil, err
	}
	return ev.Eval(expr, ev.Global())
}

// ApproximatelyThreshold defines the threshold for matching numbers in
// PutsApproximately.
var ApproximatelyThreshold = 1e-15

func match(got, want eval.Value) bool {
	if got, ok := got.(eval.Num); ok {
		if want, ok := want.(eval.Num); ok {
			return matchFloat64(float64(got), float64(want), 0)
		}
	}
	return reflect.DeepEqual(got, want)
}

func matchFloat64(a, b, threshold float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, 0) && math.IsInf(b, 0) &&
		math.Signbit(a) == math.Signbit(b) {
		return true
	}
	return math.Abs(a-b) <= threshold
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}
