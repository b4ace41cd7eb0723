package parse

import (
	"encoding/json"
	"testing"

	"src.zlang.sh/pkg/ast"
	"src.zlang.sh/pkg/diag"
	"src.zlang.sh/pkg/lit"
	"src.zlang.sh/pkg/tt"
)

func at(p ...int) ast.Node {
	if len(p) == 0 {
		return ast.Node{}
	}
	return ast.Node{Path: p}
}

func perr(msg string, p ...int) error {
	if len(p) == 0 {
		return &Error{Message: msg}
	}
	return &Error{Path: p, Message: msg}
}

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", Parse), tt.Table{
		// Atoms
		tt.Args(42).Rets(&ast.Number{Node: at(), Value: 42}, nil),
		tt.Args(uint8(7)).Rets(&ast.Number{Node: at(), Value: 7}, nil),
		tt.Args(2.5).Rets(&ast.Number{Node: at(), Value: 2.5}, nil),
		tt.Args(float32(0.5)).Rets(&ast.Number{Node: at(), Value: 0.5}, nil),
		tt.Args(json.Number("-3")).Rets(&ast.Number{Node: at(), Value: -3}, nil),
		tt.Args("`x").Rets(&ast.Identifier{Node: at(), Name: "x"}, nil),
		tt.Args("x").Rets(&ast.String{Node: at(), Value: "x"}, nil),
		tt.Args("").Rets(&ast.String{Node: at(), Value: ""}, nil),

		// Applications
		tt.Args([]any{"+", []any{21, 21}}).Rets(
			&ast.Application{Node: at(),
				Callee: &ast.Identifier{Node: at(0), Name: "+"},
				Args: []ast.Expr{
					&ast.Number{Node: at(1, 0), Value: 21},
					&ast.Number{Node: at(1, 1), Value: 21},
				}}, nil),
		tt.Args([]any{"`f"}).Rets(
			&ast.Application{Node: at(),
				Callee: &ast.Identifier{Node: at(0), Name: "f"},
				Args:   []ast.Expr{}}, nil),
		tt.Args([]any{"`f", []any{"s", "`y"}}).Rets(
			&ast.Application{Node: at(),
				Callee: &ast.Identifier{Node: at(0), Name: "f"},
				Args: []ast.Expr{
					&ast.String{Node: at(1, 0), Value: "s"},
					&ast.Identifier{Node: at(1, 1), Name: "y"},
				}}, nil),
		tt.Args([]any{1, []any{}}).Rets(
			&ast.Application{Node: at(),
				Callee: &ast.Number{Node: at(0), Value: 1},
				Args:   []ast.Expr{}}, nil),

		// Special forms
		tt.Args([]any{"if", []any{"`c", 1, 2}}).Rets(
			&ast.Conditional{Node: at(),
				Test: &ast.Identifier{Node: at(1, 0), Name: "c"},
				Then: &ast.Number{Node: at(1, 1), Value: 1},
				Else: &ast.Number{Node: at(1, 2), Value: 2}}, nil),
		tt.Args([]any{"`lambda", []any{[]any{"`x", "y", "`x"}, "`x"}}).Rets(
			&ast.FunctionDefinition{Node: at(),
				Params: []string{"x", "y", "x"},
				Body:   &ast.Identifier{Node: at(1, 1), Name: "x"}}, nil),
		tt.Args([]any{"lambda", []any{[]any{}, 0}}).Rets(
			&ast.FunctionDefinition{Node: at(),
				Params: []string{},
				Body:   &ast.Number{Node: at(1, 1), Value: 0}}, nil),

		// Errors
		tt.Args(nil).Rets(nil, perr("unsupported literal null")),
		tt.Args(true).Rets(nil, perr("unsupported literal boolean true")),
		tt.Args(map[string]any{"a": 1}).Rets(nil, perr("unsupported literal mapping")),
		tt.Args("`").Rets(nil, perr("empty identifier")),
		tt.Args([]any{}).Rets(nil, perr("empty sequence")),
		tt.Args([]any{"`f", 1}).Rets(nil,
			perr("arguments must be a sequence, got value of type int", 1)),
		tt.Args([]any{"`f", []any{}, 3}).Rets(nil,
			perr("unexpected element; an application has the form [callee, [arg...]]", 2)),
		tt.Args([]any{"`f", []any{1, []any{}}}).Rets(nil, perr("empty sequence", 1, 1)),
		tt.Args([]any{"if", []any{1, 2}}).Rets(nil,
			perr("if needs exactly 3 operands, got 2", 1)),
		tt.Args([]any{"if"}).Rets(nil, perr("if needs exactly 3 operands, got 0")),
		tt.Args([]any{"lambda", []any{"`x", "`x"}}).Rets(nil,
			perr(`parameter list must be a sequence, got string "`+"`x"+`"`, 1, 0)),
		tt.Args([]any{"lambda", []any{[]any{"`x", 1}, "`x"}}).Rets(nil,
			perr("parameter must be a string, got value of type int", 1, 0, 1)),
		tt.Args([]any{"lambda", []any{[]any{"`x"}}}).Rets(nil,
			perr("lambda needs a parameter list and a body, got 1 operands", 1)),
		tt.Args([]any{"lambda", []any{[]any{"`"}, 1}}).Rets(nil,
			perr("empty parameter name", 1, 0, 0)),
	})
}

func TestError_Error(t *testing.T) {
	tt.Test(t, tt.Fn("Error.Error", (*Error).Error), tt.Table{
		tt.Args(&Error{Message: "empty sequence"}).Rets("parse error: empty sequence"),
		tt.Args(&Error{Path: lit.Path{1, 0}, Message: "empty sequence"}).
			Rets("parse error: at 1/0: empty sequence"),
	})
}

func TestParseTree_AttachesContext(t *testing.T) {
	src := lit.Source{Name: "[test]", Code: "(f 1 (if x))"}
	tree, err := lit.Read(src)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ParseTree(tree)
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got error %v, want *Error", err)
	}
	if perr.Context == nil {
		t.Fatalf("got no context")
	}
	wantRange := diag.Ranging{From: 5, To: 11}
	if perr.Range() != wantRange {
		t.Errorf("got range %v, want %v", perr.Range(), wantRange)
	}
	wantMsg := "parse error: [test]:1:6: if needs exactly 3 operands, got 1"
	if perr.Error() != wantMsg {
		t.Errorf("got message %q, want %q", perr.Error(), wantMsg)
	}
}

func TestParseTree_NoSpans(t *testing.T) {
	tree := &lit.Tree{Root: []any{}, Source: lit.Source{Name: "a.json", Code: "[]"}}
	_, err := ParseTree(tree)
	if err == nil || err.(*Error).Context != nil {
		t.Errorf("got %#v, want error without context", err)
	}
	if show := err.(*Error).Show(""); show != "Parse error: empty sequence" {
		t.Errorf("Show() -> %q", show)
	}
}

func TestParseTree_Success(t *testing.T) {
	tree, err := lit.Read(lit.Source{Name: "[test]", Code: "(lambda [x] x)"})
	if err != nil {
		t.Fatal(err)
	}
	expr, err := ParseTree(tree)
	if err != nil {
		t.Fatalf("ParseTree returns error %v", err)
	}
	if _, ok := expr.(*ast.FunctionDefinition); !ok {
		t.Errorf("got %T, want *ast.FunctionDefinition", expr)
	}
}

func TestParseTree_TextRequiresIdentifiers(t *testing.T) {
	tests := []struct {
		code    string
		wantErr string
	}{
		{code: `("+" 1 2)`},
		{code: `("if" 1 2 3)`},
		{code: `(lambda ["x"] x)`, wantErr: `parameter must be an identifier, got string "x"`},
	}
	for _, test := range tests {
		tree, err := lit.Read(lit.Source{Name: "[test]", Code: test.code})
		if err != nil {
			t.Fatal(err)
		}
		expr, err := ParseTree(tree)
		if test.wantErr != "" {
			if perr, ok := err.(*Error); !ok || perr.Message != test.wantErr {
				t.Errorf("%s: got error %v, want %q", test.code, err, test.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: got error %v", test.code, err)
			continue
		}
		app, ok := expr.(*ast.Application)
		if !ok {
			t.Errorf("%s: got %T, want *ast.Application", test.code, expr)
			continue
		}
		if _, ok := app.Callee.(*ast.String); !ok {
			t.Errorf("%s: got callee %T, want *ast.String", test.code, app.Callee)
		}
	}
}
