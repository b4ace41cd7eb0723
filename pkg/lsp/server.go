package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.zlang.sh/pkg/bridge"
	"src.zlang.sh/pkg/diag"
	"src.zlang.sh/pkg/eval"
	"src.zlang.sh/pkg/lit"
	"src.zlang.sh/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

var specialForms = []string{parse.If, parse.Lambda}

type server struct {
	evaler  *eval.Evaler
	content map[lsp.DocumentURI]string
}

func newServer() (*server, error) {
	ev, err := eval.NewEvaler(bridge.Native())
	if err != nil {
		return nil, err
	}
	return &server{ev, make(map[lsp.DocumentURI]string)}, nil
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"textDocument/didClose": s.didClose,
		// Required by the protocol.
		"initialized": noop,
		// Sent by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// Only full syncs are advertised in initialize, so the last change has the
	// full text.
	uri := params.TextDocument.URI
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	word, r := lit.WordAt(content, lspPositionToIdx(content, params.Position))
	var text string
	if v, ok := s.evaler.Global().Lookup(word); ok {
		text = "`" + word + "`: " + eval.Kind(v)
	} else if isSpecialForm(word) {
		text = "`" + word + "`: special form"
	} else {
		return lsp.Hover{}, nil
	}
	rng := lspRangeFromRange(content, r)
	return lsp.Hover{Contents: []lsp.MarkedString{lsp.RawMarkedString(text)}, Range: &rng}, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	idx := lspPositionToIdx(content, params.Position)
	word, r := lit.WordAt(content, idx)
	// Only the part before the cursor is the prefix to complete.
	prefix := word[:idx-r.From]
	lspRange := lspRangeFromRange(content, r)

	type candidate struct {
		name string
		kind lsp.CompletionItemKind
	}
	var candidates []candidate
	for _, name := range s.evaler.Global().Names() {
		v, _ := s.evaler.Global().Lookup(name)
		kind := lsp.CIKVariable
		if eval.Kind(v) == "primitive" {
			kind = lsp.CIKFunction
		}
		candidates = append(candidates, candidate{name, kind})
	}
	for _, name := range specialForms {
		candidates = append(candidates, candidate{name, lsp.CIKKeyword})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].name < candidates[j].name })

	items := []lsp.CompletionItem{}
	for _, c := range candidates {
		if !strings.HasPrefix(c.name, prefix) {
			continue
		}
		items = append(items, lsp.CompletionItem{
			Label: c.name,
			Kind:  c.kind,
			TextEdit: &lsp.TextEdit{
				Range:   lspRange,
				NewText: c.name,
			},
		})
	}
	return items, nil
}

func isSpecialForm(name string) bool {
	for _, form := range specialForms {
		if name == form {
			return true
		}
	}
	return false
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
	if err != nil {
		logger.Println("publishing diagnostics:", err)
	}
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	trees, err := lit.ReadAll(lit.Source{Name: string(uri), Code: content})
	if err != nil {
		var readErr *lit.Error
		if !errors.As(err, &readErr) {
			return []lsp.Diagnostic{}
		}
		return []lsp.Diagnostic{{
			Range:    lspRangeFromRange(content, readErr),
			Severity: lsp.Error,
			Source:   "read",
			Message:  readErr.Message,
		}}
	}

	diags := []lsp.Diagnostic{}
	for _, tree := range trees {
		_, err := parse.ParseTree(tree)
		if err == nil {
			continue
		}
		parseErr := err.(*parse.Error)
		r := diag.Ranger(parseErr)
		if parseErr.Context == nil {
			r, _ = tree.Span(nil)
		}
		diags = append(diags, lsp.Diagnostic{
			Range:    lspRangeFromRange(content, r),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  parseErr.Message,
		})
	}
	return diags
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// One UTF-16 unit.
			p.Character++
		default:
			// Two UTF-16 units.
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
