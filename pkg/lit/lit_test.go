package lit

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.zlang.sh/pkg/diag"
	"src.zlang.sh/pkg/tt"
)

func TestPath(t *testing.T) {
	tt.Test(t, tt.Fn("Path.String", Path.String), tt.Table{
		tt.Args(nil).Rets(""),
		tt.Args(Path{3}).Rets("3"),
		tt.Args(Path{1, 0, 2}).Rets("1/0/2"),
	})
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	p := make(Path, 1, 4)
	a := p.Child(1)
	b := p.Child(2)
	if a.String() != "0/1" || b.String() != "0/2" {
		t.Errorf("got %v and %v, want 0/1 and 0/2", a, b)
	}
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON(strings.NewReader(`["+", [21, 2.5]]`))
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	want := []any{"+", []any{json.Number("21"), json.Number("2.5")}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("DecodeJSON (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	for _, code := range []string{``, `[1`, `[1] [2]`} {
		if _, err := DecodeJSON(strings.NewReader(code)); err == nil {
			t.Errorf("DecodeJSON(%q) returns no error", code)
		}
	}
}

func TestDecodeYAML(t *testing.T) {
	v, err := DecodeYAML(strings.NewReader("- '`lambda'\n- [['`x'], '`x']\n"))
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	want := []any{"`lambda", []any{[]any{"`x"}, "`x"}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("DecodeYAML (-want +got):\n%s", diff)
	}
}

func TestDecodeYAML_Errors(t *testing.T) {
	for _, code := range []string{"", "[1", "1\n---\n2\n"} {
		if _, err := DecodeYAML(strings.NewReader(code)); err == nil {
			t.Errorf("DecodeYAML(%q) returns no error", code)
		}
	}
}

var readTests = []struct {
	code      string
	wantRoot  any
	wantSpans map[string]diag.Ranging
}{
	{
		code:      "42",
		wantRoot:  42.0,
		wantSpans: map[string]diag.Ranging{"": {From: 0, To: 2}},
	},
	{
		code:      `"a\"b\n"`,
		wantRoot:  "a\"b\n",
		wantSpans: map[string]diag.Ranging{"": {From: 0, To: 8}},
	},
	{
		code:     "(+ 1 2)",
		wantRoot: []any{"`+", []any{1.0, 2.0}},
		wantSpans: map[string]diag.Ranging{
			"":    {From: 0, To: 7},
			"0":   {From: 1, To: 2},
			"1":   {From: 0, To: 7},
			"1/0": {From: 3, To: 4},
			"1/1": {From: 5, To: 6},
		},
	},
	{
		code:     "(lambda [x] x)",
		wantRoot: []any{"`lambda", []any{[]any{"`x"}, "`x"}},
		wantSpans: map[string]diag.Ranging{
			"":      {From: 0, To: 14},
			"0":     {From: 1, To: 7},
			"1":     {From: 0, To: 14},
			"1/0":   {From: 8, To: 11},
			"1/0/0": {From: 9, To: 10},
			"1/1":   {From: 12, To: 13},
		},
	},
	{
		code:     "  ; leading comment\n(f) ; trailing",
		wantRoot: []any{"`f", []any{}},
		wantSpans: map[string]diag.Ranging{
			"":  {From: 20, To: 23},
			"0": {From: 21, To: 22},
			"1": {From: 20, To: 23},
		},
	},
}

func TestRead(t *testing.T) {
	for _, test := range readTests {
		tree, err := Read(Source{Name: "[test]", Code: test.code})
		if err != nil {
			t.Errorf("Read(%q) returns error %v", test.code, err)
			continue
		}
		if diff := cmp.Diff(test.wantRoot, tree.Root); diff != "" {
			t.Errorf("Read(%q) root (-want +got):\n%s", test.code, diff)
		}
		if diff := cmp.Diff(test.wantSpans, tree.Spans); diff != "" {
			t.Errorf("Read(%q) spans (-want +got):\n%s", test.code, diff)
		}
	}
}

func TestRead_Numbers(t *testing.T) {
	for code, want := range map[string]any{
		"-3.5": -3.5,
		"+2":   2.0,
		".5":   0.5,
		"1e3":  1000.0,
		"-":    "`-",
		"<=":   "`<=",
		"x1":   "`x1",
	} {
		tree, err := Read(Source{Name: "[test]", Code: code})
		if err != nil {
			t.Errorf("Read(%q) returns error %v", code, err)
			continue
		}
		if tree.Root != want {
			t.Errorf("Read(%q) -> %v, want %v", code, tree.Root, want)
		}
	}
}

var readErrorTests = []struct {
	code    string
	wantErr string
}{
	{"", "read error: [test]:1:1: no form to read"},
	{"(+ 1", "read error: [test]:1:1: unclosed '('"},
	{"[1 2", "read error: [test]:1:1: unclosed '['"},
	{")", "read error: [test]:1:1: unexpected ')'"},
	{"(f ]", "read error: [test]:1:4: unexpected ']'"},
	{"()", "read error: [test]:1:1: empty application"},
	{`"abc`, "read error: [test]:1:1: unterminated string"},
	{`"\q"`, "read error: [test]:1:2: invalid escape sequence"},
	{"\"`x\"", "read error: [test]:1:1: string cannot start with `"},
	{"`x", "read error: [test]:1:1: identifier cannot start with `"},
	{"1abc", "read error: [test]:1:1: bad number 1abc"},
	{"1 2", "read error: [test]:1:3: unexpected form after the first"},
	{"(f\n  (g", "read error: [test]:2:3: unclosed '('"},
}

func TestRead_Errors(t *testing.T) {
	for _, test := range readErrorTests {
		_, err := Read(Source{Name: "[test]", Code: test.code})
		if err == nil {
			t.Errorf("Read(%q) returns no error", test.code)
			continue
		}
		if _, ok := err.(*Error); !ok {
			t.Errorf("Read(%q) returns %T, want *Error", test.code, err)
		}
		if err.Error() != test.wantErr {
			t.Errorf("Read(%q) returns error %q, want %q", test.code, err.Error(), test.wantErr)
		}
	}
}

func TestReadAll(t *testing.T) {
	src := Source{Name: "[test]", Code: "1 ; one\n(f x)\n"}
	trees, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll returns error %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("ReadAll returns %d trees, want 2", len(trees))
	}
	if got := trees[0].Text(); got != "1" {
		t.Errorf("first tree text %q, want %q", got, "1")
	}
	if got := trees[1].Text(); got != "(f x)" {
		t.Errorf("second tree text %q, want %q", got, "(f x)")
	}
	if r, _ := trees[1].Span(Path{1, 0}); r != (diag.Ranging{From: 11, To: 12}) {
		t.Errorf("span of x is %v, want 11-12", r)
	}
}

func TestTree_TextWithoutSpans(t *testing.T) {
	tree := &Tree{Root: 1.0, Source: Source{Name: "a.json", Code: "1\n"}}
	if got := tree.Text(); got != "1\n" {
		t.Errorf("Text() -> %q, want whole source", got)
	}
	if _, ok := tree.Span(nil); ok {
		t.Errorf("Span(nil) found a span in a tree without spans")
	}
}

func TestWordAt(t *testing.T) {
	tt.Test(t, tt.Fn("WordAt", WordAt), tt.Table{
		tt.Args("(equal? x 1)", 3).Rets("equal?", diag.Ranging{From: 1, To: 7}),
		tt.Args("(equal? x 1)", 7).Rets("equal?", diag.Ranging{From: 1, To: 7}),
		tt.Args("(f x)", 0).Rets("", diag.Ranging{From: 0, To: 0}),
		tt.Args("(f x)", 99).Rets("", diag.Ranging{From: 99, To: 99}),
	})
}
