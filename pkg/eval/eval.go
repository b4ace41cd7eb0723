// Package eval implements the evaluator: values, scopes, evaluation of
// expressions and serialization of results.
package eval

import (
	"errors"
	"fmt"

	"src.zlang.sh/pkg/ast"
	"src.zlang.sh/pkg/bridge"
	"src.zlang.sh/pkg/eval/errs"
	"src.zlang.sh/pkg/parse"
)

// DefaultMaxDepth is the nesting limit of evaluation used when none is
// configured.
const DefaultMaxDepth = 10000

// Evaler evaluates expressions against a base scope built from a bridge. It
// holds no mutable state, and can be used concurrently as long as the
// operations of its bridge can.
type Evaler struct {
	global   Scope
	maxDepth int
}

// Option configures an Evaler.
type Option func(*Evaler)

// WithMaxDepth sets how deeply evaluation may nest before failing with
// errs.StackOverflow. A value of 0 or less selects DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(ev *Evaler) {
		if n > 0 {
			ev.maxDepth = n
		}
	}
}

// NewEvaler builds an Evaler whose global scope binds every operation in
// table, plus true and false. It fails with a *bridge.MissingOpsError if table
// lacks a required operation.
func NewEvaler(table bridge.Table, opts ...Option) (*Evaler, error) {
	if err := table.Check(); err != nil {
		return nil, err
	}
	names := []string{"true", "false"}
	values := []Value{Bool(true), Bool(false)}
	for _, name := range table.Names() {
		if table[name] == nil {
			continue
		}
		names = append(names, name)
		values = append(values, &Primitive{Name: name, Op: table[name]})
	}
	ev := &Evaler{global: EmptyScope.Extend(names, values), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(ev)
	}
	return ev, nil
}

// Global returns the base scope.
func (ev *Evaler) Global() Scope { return ev.global }

// MaxDepth returns the nesting limit of evaluation.
func (ev *Evaler) MaxDepth() int { return ev.maxDepth }

// Run parses a literal tree, evaluates it in the global scope and serializes
// the result.
func (ev *Evaler) Run(tree any) (string, error) {
	v, err := ev.RunValue(tree)
	if err != nil {
		return "", err
	}
	return ToString(v), nil
}

// RunValue is like Run, but returns the value without serializing it.
func (ev *Evaler) RunValue(tree any) (Value, error) {
	expr, err := parse.Parse(tree)
	if err != nil {
		return nil, err
	}
	return ev.Eval(expr, ev.global)
}

// Eval evaluates expr in sc.
func (ev *Evaler) Eval(expr ast.Expr, sc Scope) (Value, error) {
	return ev.eval(expr, sc, 0)
}

func (ev *Evaler) eval(expr ast.Expr, sc Scope, depth int) (Value, error) {
	if depth > ev.maxDepth {
		return nil, errs.StackOverflow{Depth: ev.maxDepth}
	}
	switch e := expr.(type) {
	case *ast.Number:
		return Num(e.Value), nil
	case *ast.String:
		return Str(e.Value), nil
	case *ast.Identifier:
		v, ok := sc.Lookup(e.Name)
		if !ok {
			return nil, errs.UnboundVariable{Name: e.Name}
		}
		return v, nil
	case *ast.Conditional:
		test, err := ev.eval(e.Test, sc, depth+1)
		if err != nil {
			return nil, err
		}
		b, ok := test.(Bool)
		if !ok {
			return nil, errs.TypeError{What: "condition", Want: "bool", Actual: Kind(test)}
		}
		if b {
			return ev.eval(e.Then, sc, depth+1)
		}
		return ev.eval(e.Else, sc, depth+1)
	case *ast.FunctionDefinition:
		return &Closure{Params: e.Params, Body: e.Body, Captured: sc}, nil
	case *ast.Application:
		args := make([]Value, len(e.Args))
		for i, argExpr := range e.Args {
			arg, err := ev.eval(argExpr, sc, depth+1)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		callee, err := ev.eval(e.Callee, sc, depth+1)
		if err != nil {
			return nil, err
		}
		return ev.call(callee, args, depth)
	default:
		panic(fmt.Sprintf("eval: unknown expression type %T", expr))
	}
}

func (ev *Evaler) call(callee Value, args []Value, depth int) (Value, error) {
	switch f := callee.(type) {
	case *Closure:
		if len(args) != len(f.Params) {
			return nil, errs.ArityMismatch{What: "arguments",
				ValidLow: len(f.Params), ValidHigh: len(f.Params), Actual: len(args)}
		}
		return ev.eval(f.Body, f.Captured.Extend(f.Params, args), depth+1)
	case *Primitive:
		if len(args) != PrimitiveArity {
			return nil, errs.ArityMismatch{What: "arguments of " + f.Name,
				ValidLow: PrimitiveArity, ValidHigh: PrimitiveArity, Actual: len(args)}
		}
		result, err := f.Op(payload(args[0]), payload(args[1]))
		if err != nil {
			return nil, bridgeError(f.Name, err)
		}
		switch result := result.(type) {
		case float64:
			return Num(result), nil
		case bool:
			return Bool(result), nil
		}
		return nil, errs.TypeError{What: "result of " + f.Name,
			Want: "number or bool", Actual: bridge.Kind(result)}
	default:
		return nil, errs.NotCallable{Kind: Kind(callee)}
	}
}

// Errors from the evaluation taxonomy pass through; anything else the bridge
// reports becomes an arithmetic error of the operation.
func bridgeError(name string, err error) error {
	var (
		typeErr  errs.TypeError
		arithErr errs.Arithmetic
	)
	if errors.As(err, &typeErr) || errors.As(err, &arithErr) {
		return err
	}
	return errs.Arithmetic{Op: name, Message: err.Error(), Cause: err}
}
