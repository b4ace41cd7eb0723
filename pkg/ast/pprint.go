package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Pprint writes a human-readable dump of the expression, one node per line,
// with children indented under their parents.
func Pprint(w io.Writer, e Expr) {
	pprint(w, e, "", "")
}

func pprint(w io.Writer, e Expr, indent, label string) {
	fmt.Fprint(w, indent, label)
	switch e := e.(type) {
	case *Number:
		fmt.Fprintln(w, "Number", strconv.FormatFloat(e.Value, 'f', -1, 64))
	case *Identifier:
		fmt.Fprintln(w, "Identifier", e.Name)
	case *String:
		fmt.Fprintln(w, "String", strconv.Quote(e.Value))
	case *Conditional:
		fmt.Fprintln(w, "Conditional")
		pprint(w, e.Test, indent+"  ", "test: ")
		pprint(w, e.Then, indent+"  ", "then: ")
		pprint(w, e.Else, indent+"  ", "else: ")
	case *Application:
		fmt.Fprintln(w, "Application")
		pprint(w, e.Callee, indent+"  ", "callee: ")
		for _, arg := range e.Args {
			pprint(w, arg, indent+"  ", "arg: ")
		}
	case *FunctionDefinition:
		fmt.Fprintf(w, "FunctionDefinition [%s]\n", strings.Join(e.Params, " "))
		pprint(w, e.Body, indent+"  ", "body: ")
	default:
		fmt.Fprintf(w, "?%T\n", e)
	}
}
