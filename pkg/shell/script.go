package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"src.zlang.sh/pkg/ast"
	"src.zlang.sh/pkg/diag"
	"src.zlang.sh/pkg/eval"
	"src.zlang.sh/pkg/lit"
	"src.zlang.sh/pkg/parse"
	"src.zlang.sh/pkg/prog"
	"src.zlang.sh/pkg/store/storedefs"
)

// Input formats.
const (
	formatSexp = "sexp"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	return f == formatSexp || f == formatJSON || f == formatYAML
}

// Derives the input format from a file name.
func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatSexp
	}
}

type source struct {
	lit.Source
	format string
}

func (p *Program) readSource(stdin *os.File, args []string) (source, error) {
	var src source
	switch {
	case p.codeInArg:
		src = source{lit.Source{Name: "code from -c", Code: args[0]}, formatSexp}
	case len(args) > 0:
		name, err := filepath.Abs(args[0])
		if err != nil {
			return source{}, fmt.Errorf("cannot get full path of script %q: %w", args[0], err)
		}
		code, err := readFileUTF8(name)
		if err != nil {
			return source{}, fmt.Errorf("cannot read script %q: %w", name, err)
		}
		src = source{lit.Source{Name: name, Code: code}, formatOf(name)}
	default:
		code, err := io.ReadAll(stdin)
		if err != nil {
			return source{}, fmt.Errorf("cannot read stdin: %w", err)
		}
		if !utf8.Valid(code) {
			return source{}, errSourceNotUTF8
		}
		src = source{lit.Source{Name: "[stdin]", Code: string(code)}, formatSexp}
	}
	if p.format != "" {
		src.format = p.format
	}
	return src, nil
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// Reads the literal trees in a source. Text syntax may hold any number of
// trees; JSON and YAML hold exactly one.
func readTrees(src source) ([]*lit.Tree, error) {
	var decode func(io.Reader) (any, error)
	switch src.format {
	case formatJSON:
		decode = lit.DecodeJSON
	case formatYAML:
		decode = lit.DecodeYAML
	default:
		return lit.ReadAll(src.Source)
	}
	root, err := decode(strings.NewReader(src.Code))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	return []*lit.Tree{{Root: root, Source: src.Source}}, nil
}

// Evaluates trees in turn, stopping at the first error.
func script(fds [3]*os.File, out *outputter, src source) error {
	trees, err := readTrees(src)
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(2)
	}
	for _, tree := range trees {
		if !out.eval(fds, tree) {
			return prog.Exit(2)
		}
	}
	return nil
}

type outputter struct {
	ev   *eval.Evaler
	st   storedefs.Store
	repr bool
}

// Evaluates one tree, writing the result to stdout or the error to stderr, and
// records it in the history. It reports whether the evaluation succeeded.
func (o *outputter) eval(fds [3]*os.File, tree *lit.Tree) bool {
	result, err := o.evalTree(tree)
	record(o.st, tree.Text(), result, err)
	if err != nil {
		diag.ShowError(fds[2], err)
		return false
	}
	fmt.Fprintln(fds[1], result)
	return true
}

func (o *outputter) evalTree(tree *lit.Tree) (string, error) {
	expr, err := parse.ParseTree(tree)
	if err != nil {
		return "", err
	}
	v, err := o.ev.Eval(expr, o.ev.Global())
	if err != nil {
		return "", err
	}
	if o.repr {
		return eval.Repr(v), nil
	}
	return eval.ToString(v), nil
}

// Parses the source without evaluating it. The trees are shown as an AST dump,
// or the literal trees as JSON when asJSON is true.
func parseOnly(fds [3]*os.File, src source, asJSON bool) error {
	trees, err := readTrees(src)
	if err != nil {
		return showParseErrors(fds, asJSON, err)
	}
	var errs []error
	for _, tree := range trees {
		expr, err := parse.ParseTree(tree)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if asJSON {
			bs, err := json.Marshal(tree.Root)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			fmt.Fprintf(fds[1], "%s\n", bs)
		} else {
			ast.Pprint(fds[1], expr)
		}
	}
	if len(errs) > 0 {
		return showParseErrors(fds, asJSON, errs...)
	}
	return nil
}

func showParseErrors(fds [3]*os.File, asJSON bool, errs ...error) error {
	if asJSON {
		fmt.Fprintf(fds[1], "%s\n", errorsToJSON(errs))
	} else {
		for _, err := range errs {
			diag.ShowError(fds[2], err)
		}
	}
	return prog.Exit(2)
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName,omitempty"`
	Path     string `json:"path,omitempty"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

func errorsToJSON(errs []error) []byte {
	converted := make([]errorInJSON, 0, len(errs))
	for _, err := range errs {
		var readErr *lit.Error
		var parseErr *parse.Error
		switch {
		case errors.As(err, &readErr):
			c := readErr.Context
			converted = append(converted,
				errorInJSON{FileName: c.Name, Start: c.From, End: c.To, Message: readErr.Message})
		case errors.As(err, &parseErr):
			e := errorInJSON{Path: parseErr.Path.String(), Message: parseErr.Message}
			if c := parseErr.Context; c != nil {
				e.FileName, e.Start, e.End = c.Name, c.From, c.To
			}
			converted = append(converted, e)
		default:
			converted = append(converted, errorInJSON{Message: err.Error()})
		}
	}
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
