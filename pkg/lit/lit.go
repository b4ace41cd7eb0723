// Package lit defines literal trees, the nested-sequence encoding that the
// parser consumes, and the ways of obtaining them: decoding JSON or YAML
// documents, and reading the text surface syntax.
//
// A literal node is a number (any Go integer or floating point type, or
// [json.Number]), a string, or a []any of literal nodes. A string that starts
// with [IdentMarker] denotes an identifier.
package lit

import (
	"strconv"
	"strings"
)

// IdentMarker is the prefix that marks a string node as an identifier.
const IdentMarker = "`"

// Path is the position of a node within a literal tree, expressed as the
// indices followed from the root. The root itself has an empty path.
type Path []int

// Child returns the path of the i-th child of the node at p. It never shares
// the underlying array with p.
func (p Path) Child(i int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = i
	return child
}

// String renders the path as slash-separated indices, like "1/0". The root
// path renders as the empty string.
func (p Path) String() string {
	var sb strings.Builder
	for i, idx := range p {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

// Ident returns the string node for an identifier with the given name.
func Ident(name string) string {
	return IdentMarker + name
}
