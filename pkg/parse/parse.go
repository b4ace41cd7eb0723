// Package parse turns literal trees into expressions.
package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"src.zlang.sh/pkg/ast"
	"src.zlang.sh/pkg/diag"
	"src.zlang.sh/pkg/lit"
)

// Names of special forms. They are recognized in callee position. Parse also
// recognizes them without the identifier marker; ParseTree does not when the
// tree was read from text.
const (
	If     = "if"
	Lambda = "lambda"
)

// ErrorTag is the tag of parse errors shown with a source context.
type ErrorTag struct{}

// ErrorTag returns "parse error".
func (ErrorTag) ErrorTag() string { return "parse error" }

// Error is a parse error. It identifies the offending node by its path in the
// literal tree.
type Error struct {
	Path    lit.Path
	Message string
	// Context is set by ParseTree when the tree carries source spans.
	Context *diag.Context
}

func (e *Error) Error() string {
	if e.Context != nil {
		return e.withContext().Error()
	}
	if len(e.Path) == 0 {
		return "parse error: " + e.Message
	}
	return "parse error: at " + e.Path.String() + ": " + e.Message
}

// Show shows the error, with the source context if there is one.
func (e *Error) Show(indent string) string {
	if e.Context != nil {
		return e.withContext().Show(indent)
	}
	return "Parse error: " + e.Error()[len("parse error: "):]
}

// Range returns the source range of the error, or a zero Ranging if there is
// no context.
func (e *Error) Range() diag.Ranging {
	if e.Context != nil {
		return e.Context.Range()
	}
	return diag.Ranging{}
}

func (e *Error) withContext() *diag.Error[ErrorTag] {
	return &diag.Error[ErrorTag]{Message: e.Message, Context: *e.Context}
}

func errorf(p lit.Path, format string, args ...any) error {
	return &Error{Path: p, Message: fmt.Sprintf(format, args...)}
}

// Parse parses a literal tree into an expression. The error, if any, is always
// an *Error.
//
// A string without the identifier marker in callee position or in a
// parameter list is taken as an identifier, since a string literal can never
// be called or bound. This keeps hand-written JSON and YAML trees short.
func Parse(node any) (ast.Expr, error) {
	return (&parser{}).parseNode(node, nil)
}

// ParseTree is like Parse, but attaches a source context to the error when
// the tree has a span for the offending node or one of its ancestors.
//
// Trees read from text, which have spans, are parsed strictly: only strings
// with the identifier marker are identifiers. A quoted string in callee
// position stays a string literal, so ("if" true 1 2) is an application
// that fails to call a string.
func ParseTree(t *lit.Tree) (ast.Expr, error) {
	ps := &parser{strict: t.Spans != nil}
	expr, err := ps.parseNode(t.Root, nil)
	if err != nil {
		perr := err.(*Error)
		for p := perr.Path; ; p = p[:len(p)-1] {
			if r, ok := t.Span(p); ok {
				perr.Context = diag.NewContext(t.Source.Name, t.Source.Code, r)
				break
			}
			if len(p) == 0 {
				break
			}
		}
		return nil, perr
	}
	return expr, nil
}

type parser struct {
	// Whether the identifier marker is required in callee position and in
	// parameter lists.
	strict bool
}

// Returns the identifier a string node names where a name is expected.
func (ps *parser) name(s string) (string, bool) {
	if name, ok := strings.CutPrefix(s, lit.IdentMarker); ok {
		return name, true
	}
	return s, !ps.strict
}

func (ps *parser) parseNode(node any, p lit.Path) (ast.Expr, error) {
	switch node := node.(type) {
	case string:
		if name, ok := strings.CutPrefix(node, lit.IdentMarker); ok {
			if name == "" {
				return nil, errorf(p, "empty identifier")
			}
			return &ast.Identifier{Node: ast.Node{Path: p}, Name: name}, nil
		}
		return &ast.String{Node: ast.Node{Path: p}, Value: node}, nil
	case []any:
		return ps.parseSeq(node, p)
	}
	if f, ok := toFloat(node); ok {
		return &ast.Number{Node: ast.Node{Path: p}, Value: f}, nil
	}
	return nil, errorf(p, "unsupported literal %s", describe(node))
}

func (ps *parser) parseSeq(seq []any, p lit.Path) (ast.Expr, error) {
	var argNodes []any
	switch len(seq) {
	case 0:
		return nil, errorf(p, "empty sequence")
	case 1:
	case 2:
		args, ok := seq[1].([]any)
		if !ok {
			return nil, errorf(p.Child(1), "arguments must be a sequence, got %s", describe(seq[1]))
		}
		argNodes = args
	default:
		return nil, errorf(p.Child(2), "unexpected element; an application has the form [callee, [arg...]]")
	}

	var callee ast.Expr
	if s, ok := seq[0].(string); ok {
		if name, ok := ps.name(s); ok {
			switch name {
			case "":
				return nil, errorf(p.Child(0), "empty identifier")
			case If:
				return ps.parseIf(seq, argNodes, p)
			case Lambda:
				return ps.parseLambda(seq, argNodes, p)
			}
			callee = &ast.Identifier{Node: ast.Node{Path: p.Child(0)}, Name: name}
		}
	}
	if callee == nil {
		var err error
		callee, err = ps.parseNode(seq[0], p.Child(0))
		if err != nil {
			return nil, err
		}
	}

	args, err := ps.parseAll(argNodes, p.Child(1))
	if err != nil {
		return nil, err
	}
	return &ast.Application{Node: ast.Node{Path: p}, Callee: callee, Args: args}, nil
}

func (ps *parser) parseAll(nodes []any, p lit.Path) ([]ast.Expr, error) {
	exprs := make([]ast.Expr, len(nodes))
	for i, node := range nodes {
		expr, err := ps.parseNode(node, p.Child(i))
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return exprs, nil
}

// Returns the path to blame for a malformed special form: the operand
// sequence if there is one, the form itself otherwise.
func operandsPath(seq []any, p lit.Path) lit.Path {
	if len(seq) == 2 {
		return p.Child(1)
	}
	return p
}

func (ps *parser) parseIf(seq, operands []any, p lit.Path) (ast.Expr, error) {
	if len(seq) != 2 || len(operands) != 3 {
		return nil, errorf(operandsPath(seq, p), "if needs exactly 3 operands, got %d", len(operands))
	}
	exprs, err := ps.parseAll(operands, p.Child(1))
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Node: ast.Node{Path: p},
		Test: exprs[0], Then: exprs[1], Else: exprs[2]}, nil
}

func (ps *parser) parseLambda(seq, operands []any, p lit.Path) (ast.Expr, error) {
	if len(seq) != 2 || len(operands) != 2 {
		return nil, errorf(operandsPath(seq, p), "lambda needs a parameter list and a body, got %d operands", len(operands))
	}
	paramsPath := p.Child(1).Child(0)
	paramNodes, ok := operands[0].([]any)
	if !ok {
		return nil, errorf(paramsPath, "parameter list must be a sequence, got %s", describe(operands[0]))
	}
	params := make([]string, len(paramNodes))
	for i, paramNode := range paramNodes {
		s, ok := paramNode.(string)
		if !ok {
			return nil, errorf(paramsPath.Child(i), "parameter must be a string, got %s", describe(paramNode))
		}
		name, ok := ps.name(s)
		if !ok {
			return nil, errorf(paramsPath.Child(i), "parameter must be an identifier, got %s", describe(paramNode))
		}
		if name == "" {
			return nil, errorf(paramsPath.Child(i), "empty parameter name")
		}
		params[i] = name
	}
	body, err := ps.parseNode(operands[1], p.Child(1).Child(1))
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{Node: ast.Node{Path: p}, Params: params, Body: body}, nil
}

func toFloat(node any) (float64, bool) {
	switch node := node.(type) {
	case json.Number:
		f, err := node.Float64()
		return f, err == nil
	case float64:
		return node, true
	case float32:
		return float64(node), true
	}
	v := reflect.ValueOf(node)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	}
	return 0, false
}

func describe(node any) string {
	switch node := node.(type) {
	case nil:
		return "null"
	case bool:
		return fmt.Sprintf("boolean %v", node)
	case string:
		return fmt.Sprintf("string %q", node)
	case []any:
		return "sequence"
	case json.Number:
		return "number " + node.String()
	}
	switch reflect.ValueOf(node).Kind() {
	case reflect.Map:
		return "mapping"
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("unsupported sequence type %T", node)
	}
	return fmt.Sprintf("value of type %T", node)
}
