package lit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a single JSON document into a literal tree. Numbers are
// decoded as [json.Number] so that no precision is lost before parsing.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode JSON: unexpected data after the document")
	}
	return v, nil
}

// DecodeYAML decodes a single YAML document into a literal tree. Mappings and
// other values outside the literal grammar are kept as is, so that the parser
// can report them.
func DecodeYAML(r io.Reader) (any, error) {
	dec := yaml.NewDecoder(r)
	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, errors.New("decode YAML: empty document")
		}
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, errors.New("decode YAML: unexpected data after the document")
	}
	return v, nil
}
