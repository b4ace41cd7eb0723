package lit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.zlang.sh/pkg/diag"
)

// Source is a piece of text and the name it is shown under in errors.
type Source struct {
	Name string
	Code string
}

// Tree is a literal tree read from text, together with the source range of
// every node.
type Tree struct {
	Root   any
	Source Source
	// Spans maps the String form of a node's Path to its range in
	// Source.Code. The root has the key "".
	Spans map[string]diag.Ranging
}

// Span returns the source range of the node at p.
func (t *Tree) Span(p Path) (diag.Ranging, bool) {
	if t.Spans == nil {
		return diag.Ranging{}, false
	}
	r, ok := t.Spans[p.String()]
	return r, ok
}

// Text returns the text of the whole tree. For trees that were not read from
// text, it returns the entire source.
func (t *Tree) Text() string {
	if r, ok := t.Span(nil); ok {
		return t.Source.Code[r.From:r.To]
	}
	return t.Source.Code
}

// ErrorTag is the tag of read errors.
type ErrorTag struct{}

// ErrorTag returns "read error".
func (ErrorTag) ErrorTag() string { return "read error" }

// Error is a read error.
type Error = diag.Error[ErrorTag]

// Read reads exactly one form from the source.
func Read(src Source) (*Tree, error) {
	trees, err := ReadAll(src)
	if err != nil {
		return nil, err
	}
	switch len(trees) {
	case 0:
		return nil, newError(src, diag.PointRanging(len(src.Code)), "no form to read")
	case 1:
		return trees[0], nil
	default:
		extra := trees[1].Spans[""]
		return nil, newError(src, extra, "unexpected form after the first")
	}
}

// ReadAll reads all top-level forms from the source. Paths and spans of each
// returned Tree are relative to its own root.
func ReadAll(src Source) ([]*Tree, error) {
	rd := &reader{src: src}
	var trees []*Tree
	for {
		rd.skipSpace()
		if rd.eof() {
			return trees, nil
		}
		rd.spans = make(map[string]diag.Ranging)
		root, err := rd.form(nil)
		if err != nil {
			return nil, err
		}
		trees = append(trees, &Tree{Root: root, Source: src, Spans: rd.spans})
	}
}

type reader struct {
	src   Source
	pos   int
	spans map[string]diag.Ranging
}

const eof rune = -1

func (rd *reader) eof() bool { return rd.pos >= len(rd.src.Code) }

func (rd *reader) peek() rune {
	if rd.eof() {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(rd.src.Code[rd.pos:])
	return r
}

func (rd *reader) next() rune {
	if rd.eof() {
		return eof
	}
	r, size := utf8.DecodeRuneInString(rd.src.Code[rd.pos:])
	rd.pos += size
	return r
}

func (rd *reader) skipSpace() {
	for !rd.eof() {
		switch r := rd.peek(); {
		case r == ';':
			for !rd.eof() && rd.peek() != '\n' {
				rd.next()
			}
		case unicode.IsSpace(r):
			rd.next()
		default:
			return
		}
	}
}

func (rd *reader) errorf(r diag.Ranging, format string, args ...any) error {
	return newError(rd.src, r, format, args...)
}

func newError(src Source, r diag.Ranging, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Message: msg, Context: *diag.NewContext(src.Name, src.Code, r)}
}

func (rd *reader) form(p Path) (any, error) {
	begin := rd.pos
	var v any
	var err error
	switch r := rd.peek(); r {
	case '(':
		v, err = rd.application(p)
	case '[':
		v, err = rd.sequence(p)
	case '"':
		v, err = rd.str()
	case ')', ']':
		rd.next()
		return nil, rd.errorf(diag.Ranging{From: begin, To: rd.pos}, "unexpected %q", r)
	default:
		v, err = rd.atom()
	}
	if err != nil {
		return nil, err
	}
	rd.spans[p.String()] = diag.Ranging{From: begin, To: rd.pos}
	return v, nil
}

// Reads elements until the closing delimiter. The i-th element gets the path
// elemPath(i).
func (rd *reader) elements(close rune, open int, elemPath func(int) Path) ([]any, error) {
	elems := []any{}
	for {
		rd.skipSpace()
		switch rd.peek() {
		case eof:
			return nil, rd.errorf(diag.Ranging{From: open, To: open + 1},
				"unclosed %q", rd.src.Code[open])
		case close:
			rd.next()
			return elems, nil
		}
		elem, err := rd.form(elemPath(len(elems)))
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

// (f a b) reads as [f, [a, b]]; the argument sequence spans the whole list.
func (rd *reader) application(p Path) (any, error) {
	open := rd.pos
	rd.next()
	args := p.Child(1)
	elems, err := rd.elements(')', open, func(i int) Path {
		if i == 0 {
			return p.Child(0)
		}
		return args.Child(i - 1)
	})
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, rd.errorf(diag.Ranging{From: open, To: rd.pos}, "empty application")
	}
	rd.spans[args.String()] = diag.Ranging{From: open, To: rd.pos}
	return []any{elems[0], elems[1:]}, nil
}

func (rd *reader) sequence(p Path) (any, error) {
	open := rd.pos
	rd.next()
	return rd.elements(']', open, p.Child)
}

func (rd *reader) str() (any, error) {
	begin := rd.pos
	rd.next()
	var sb strings.Builder
	for {
		switch r := rd.next(); r {
		case eof:
			return nil, rd.errorf(diag.Ranging{From: begin, To: rd.pos}, "unterminated string")
		case '"':
			s := sb.String()
			if strings.HasPrefix(s, IdentMarker) {
				return nil, rd.errorf(diag.Ranging{From: begin, To: rd.pos},
					"string cannot start with %s", IdentMarker)
			}
			return s, nil
		case '\\':
			escBegin := rd.pos - 1
			switch e := rd.next(); e {
			case '"', '\\':
				sb.WriteRune(e)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return nil, rd.errorf(diag.Ranging{From: escBegin, To: rd.pos},
					"invalid escape sequence")
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func isDelimiter(r rune) bool {
	return r == eof || unicode.IsSpace(r) || strings.ContainsRune(`()[]";`, r)
}

// An atom is a number if it parses as one and starts like one; otherwise it
// is an identifier.
func (rd *reader) atom() (any, error) {
	begin := rd.pos
	for !isDelimiter(rd.peek()) {
		rd.next()
	}
	text := rd.src.Code[begin:rd.pos]
	if looksNumeric(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, rd.errorf(diag.Ranging{From: begin, To: rd.pos}, "bad number %s", text)
		}
		return f, nil
	}
	if strings.HasPrefix(text, IdentMarker) {
		return nil, rd.errorf(diag.Ranging{From: begin, To: rd.pos},
			"identifier cannot start with %s", IdentMarker)
	}
	return Ident(text), nil
}

func looksNumeric(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		s = s[1:]
	}
	return s != "" && '0' <= s[0] && s[0] <= '9'
}

// WordAt returns the atom that covers the byte index idx of code, and its
// range. It returns an empty string when idx is not within or right after
// an atom.
func WordAt(code string, idx int) (string, diag.Ranging) {
	if idx < 0 || idx > len(code) {
		return "", diag.PointRanging(idx)
	}
	from := idx
	for from > 0 {
		r, size := utf8.DecodeLastRuneInString(code[:from])
		if isDelimiter(r) {
			break
		}
		from -= size
	}
	to := idx
	for to < len(code) {
		r, size := utf8.DecodeRuneInString(code[to:])
		if isDelimiter(r) {
			break
		}
		to += size
	}
	return code[from:to], diag.Ranging{From: from, To: to}
}
