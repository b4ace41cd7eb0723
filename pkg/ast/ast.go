// Package ast defines the expression tree produced by the parser.
//
// The set of node types is closed. Code that consumes an Expr is expected to
// switch over all of the types below.
package ast

import "src.zlang.sh/pkg/lit"

// Expr is an expression node.
type Expr interface {
	// LitPath returns the path of the literal node the expression was
	// parsed from.
	LitPath() lit.Path
	isExpr()
}

// Node is embedded in all expression types.
type Node struct{ Path lit.Path }

func (n *Node) LitPath() lit.Path { return n.Path }
func (*Node) isExpr()             {}

// Number is a numeric literal.
type Number struct {
	Node
	Value float64
}

// Identifier is a reference to a binding.
type Identifier struct {
	Node
	Name string
}

// String is a string literal.
type String struct {
	Node
	Value string
}

// Conditional evaluates Test, and then exactly one of Then and Else.
type Conditional struct {
	Node
	Test, Then, Else Expr
}

// Application calls Callee with Args.
type Application struct {
	Node
	Callee Expr
	Args   []Expr
}

// FunctionDefinition creates a closure.
type FunctionDefinition struct {
	Node
	Params []string
	Body   Expr
}
