package ast

import (
	"strings"
	"testing"

	"src.zlang.sh/pkg/testutil"
)

func TestPprint(t *testing.T) {
	expr := &Application{
		Callee: &FunctionDefinition{
			Params: []string{"x", "y"},
			Body: &Conditional{
				Test: &Identifier{Name: "x"},
				Then: &String{Value: "yes\n"},
				Else: &Number{Value: 0.5},
			},
		},
		Args: []Expr{&Identifier{Name: "true"}, &Number{Value: -3}},
	}
	var sb strings.Builder
	Pprint(&sb, expr)
	want := testutil.Dedent(`
		Application
		  callee: FunctionDefinition [x y]
		    body: Conditional
		      test: Identifier x
		      then: String "yes\n"
		      else: Number 0.5
		  arg: Identifier true
		  arg: Number -3
		`)
	if got := sb.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
